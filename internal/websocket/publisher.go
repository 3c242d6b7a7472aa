package websocket

// EventPublisher delivers change events about records owned by ownerID
type EventPublisher interface {
	Publish(ownerID int64, event Event)
}

// NoOpPublisher drops every event
type NoOpPublisher struct{}

// Publish does nothing
func (n *NoOpPublisher) Publish(ownerID int64, event Event) {}

// MultiPublisher fans an event out to several publishers in order
type MultiPublisher []EventPublisher

// Publish forwards the event to every non-nil publisher
func (m MultiPublisher) Publish(ownerID int64, event Event) {
	for _, p := range m {
		if p != nil {
			p.Publish(ownerID, event)
		}
	}
}
