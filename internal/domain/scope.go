package domain

// EntityType names a resource kind guarded by ownership rules
type EntityType string

const (
	EntityCategory    EntityType = "category"
	EntityBudget      EntityType = "budget"
	EntityBudgetEntry EntityType = "budget_entry"
)

// Intent is the kind of access a caller asks for
type Intent string

const (
	IntentList     Intent = "list"
	IntentRetrieve Intent = "retrieve"
	IntentCreate   Intent = "create"
	IntentMutate   Intent = "mutate"
)

// Scope narrows the records an operation may see.
// When Restricted is false every record of the entity is visible.
// OwnerID is also the owner assigned to records created under the scope.
type Scope struct {
	Entity     EntityType
	Intent     Intent
	Restricted bool
	OwnerID    int64
}

// Unrestricted returns a scope that sees every record of the entity
func Unrestricted(entity EntityType, intent Intent) Scope {
	return Scope{Entity: entity, Intent: intent}
}

// OwnedBy returns a scope limited to records owned by userID
func OwnedBy(entity EntityType, intent Intent, userID int64) Scope {
	return Scope{Entity: entity, Intent: intent, Restricted: true, OwnerID: userID}
}

// Permits reports whether a record owned by ownerID is visible under the scope
func (s Scope) Permits(ownerID int64) bool {
	return !s.Restricted || s.OwnerID == ownerID
}
