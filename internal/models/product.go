package models

import "github.com/shopspring/decimal"

// ProductTerms is the persisted lending product configuration.
type ProductTerms struct {
	ProductID         string           `db:"product_id"`
	ProviderID        string           `db:"provider_id"`
	Name              string           `db:"name"`
	InterestRate      decimal.Decimal  `db:"interest_rate"`
	InterestType      string           `db:"interest_type"`
	TermPeriod        string           `db:"term_period"`
	MinAmount         decimal.Decimal  `db:"min_amount"`
	MaxAmount         decimal.Decimal  `db:"max_amount"`
	MinTerm           int              `db:"min_term"`
	MaxTerm           int              `db:"max_term"`
	ProcessingFee     *decimal.Decimal `db:"processing_fee"` // Nullable
	ProcessingFeeType string           `db:"processing_fee_type"`
	InsuranceFee      *decimal.Decimal `db:"insurance_fee"` // Nullable
	InsuranceFeeType  string           `db:"insurance_fee_type"`
	IsActive          bool             `db:"is_active"`
	AuditFields
}
