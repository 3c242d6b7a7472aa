package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/dafibh/budgetbook/budgetbook-backend/internal/domain"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// scopeOwner turns a scope into the nullable owner argument of the scoped queries.
// NULL disables the owner predicate.
func scopeOwner(scope domain.Scope) pgtype.Int8 {
	if !scope.Restricted {
		return pgtype.Int8{}
	}
	return pgtype.Int8{Int64: scope.OwnerID, Valid: true}
}

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isPgUniqueViolation checks if an error is a PostgreSQL unique constraint violation
func isPgUniqueViolation(err error) bool {
	return pgErrorCode(err) == pgUniqueViolation
}

// isPgForeignKeyViolation checks if an error is a PostgreSQL foreign key violation
func isPgForeignKeyViolation(err error) bool {
	return pgErrorCode(err) == pgForeignKeyViolation
}

func decimalToPgNumeric(d decimal.Decimal) (pgtype.Numeric, error) {
	var num pgtype.Numeric
	if err := num.Scan(d.String()); err != nil {
		return pgtype.Numeric{}, err
	}
	return num, nil
}

func pgNumericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}

func pageArgs(page domain.PageRequest) (limit, offset int32) {
	return int32(page.Limit()), int32(page.Offset())
}
