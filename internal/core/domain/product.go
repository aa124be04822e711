package domain

import "github.com/shopspring/decimal"

// InterestType selects the interest model for a product.
type InterestType string

const (
	InterestFlat            InterestType = "FLAT"
	InterestReducingBalance InterestType = "REDUCING_BALANCE"
)

// TermPeriod is the unit a loan term is expressed in.
type TermPeriod string

const (
	PeriodDay   TermPeriod = "DAY"
	PeriodWeek  TermPeriod = "WEEK"
	PeriodMonth TermPeriod = "MONTH"
	PeriodYear  TermPeriod = "YEAR"
)

// FeeType selects how a product fee is computed.
type FeeType string

const (
	FeeFixed      FeeType = "FIXED"
	FeePercentage FeeType = "PERCENTAGE"
)

// ProductTerms is a lending product's rate, fee and term-limit configuration.
// It is reference data: loans copy the values they commit to at approval time
// and never read the product again afterwards.
type ProductTerms struct {
	ProductID         string           `json:"productID"`
	ProviderID        string           `json:"providerID"` // Owning FSP
	Name              string           `json:"name"`
	InterestRate      decimal.Decimal  `json:"interestRate"` // Percent, monthly-equivalent
	InterestType      InterestType     `json:"interestType"`
	TermPeriod        TermPeriod       `json:"termPeriod"`
	MinAmount         decimal.Decimal  `json:"minAmount"`
	MaxAmount         decimal.Decimal  `json:"maxAmount"`
	MinTerm           int              `json:"minTerm"`
	MaxTerm           int              `json:"maxTerm"`
	ProcessingFee     *decimal.Decimal `json:"processingFee"` // Nil means no fee
	ProcessingFeeType FeeType          `json:"processingFeeType"`
	InsuranceFee      *decimal.Decimal `json:"insuranceFee"` // Nil means no fee
	InsuranceFeeType  FeeType          `json:"insuranceFeeType"`
	IsActive          bool             `json:"isActive"`
	AuditFields
}

// AmountWithinBounds reports whether the amount falls inside the product limits.
func (p ProductTerms) AmountWithinBounds(amount decimal.Decimal) bool {
	return amount.GreaterThanOrEqual(p.MinAmount) && amount.LessThanOrEqual(p.MaxAmount)
}

// TermWithinBounds reports whether the term falls inside the product limits.
func (p ProductTerms) TermWithinBounds(term int) bool {
	return term >= p.MinTerm && term <= p.MaxTerm
}
