package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanDefault is the persisted default record row.
type LoanDefault struct {
	DefaultID     string          `db:"default_id"`
	LoanID        string          `db:"loan_id"`
	DefaultAmount decimal.Decimal `db:"default_amount"`
	DefaultDate   time.Time       `db:"default_date"`
	Reason        string          `db:"reason"`
	Status        string          `db:"status"`
	ResolvedAt    *time.Time      `db:"resolved_at"`    // Nullable
	WrittenOffAt  *time.Time      `db:"written_off_at"` // Nullable
	AuditFields
}
