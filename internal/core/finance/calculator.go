// Package finance holds the pure interest, fee and amortization arithmetic.
// All functions are side-effect free and deterministic; every intermediate
// money figure is rounded to 2 decimal places half-up before it is summed, so
// results stay byte-stable against historically stored values.
package finance

import (
	"fmt"

	"github.com/emkopo/employee_lending_app/internal/apperrors"
	"github.com/emkopo/employee_lending_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	// Month approximations used when a term is expressed in days or weeks.
	daysPerMonth  = decimal.NewFromInt(30)
	weeksPerMonth = decimal.NewFromInt(4)
	monthsPerYear = decimal.NewFromInt(12)
)

// TermInMonths converts a term in its unit to a (possibly fractional) month
// count. The interest rate is always a monthly-equivalent rate, so all
// interest math runs on months.
func TermInMonths(term int, period domain.TermPeriod) decimal.Decimal {
	t := decimal.NewFromInt(int64(term))
	switch period {
	case domain.PeriodDay:
		return t.Div(daysPerMonth)
	case domain.PeriodWeek:
		return t.Div(weeksPerMonth)
	case domain.PeriodYear:
		return t.Mul(monthsPerYear)
	default:
		return t
	}
}

// InstallmentCount is the whole number of monthly periods used for
// amortization, never less than one.
func InstallmentCount(term int, period domain.TermPeriod) int {
	months := TermInMonths(term, period)
	n := int(months.Round(0).IntPart())
	if n < 1 {
		n = 1
	}
	return n
}

// CalculateInterest computes total interest on a principal over a term.
//
// FLAT charges the monthly-equivalent rate on the full principal for every
// month of the term. REDUCING_BALANCE iterates month by month, charging the
// rate on the remaining principal while the principal amortizes in equal
// per-period shares. The equal-principal model is deliberate and distinct from
// the annuity installment used for schedule display in GenerateSchedule.
func CalculateInterest(principal decimal.Decimal, term int, period domain.TermPeriod, rate decimal.Decimal, interestType domain.InterestType) (decimal.Decimal, error) {
	if term <= 0 {
		return decimal.Zero, fmt.Errorf("term %d: %w", term, apperrors.ErrInvalidTerm)
	}
	if rate.IsNegative() {
		return decimal.Zero, fmt.Errorf("rate %s: %w", rate, apperrors.ErrInvalidRate)
	}

	monthlyRate := rate.Div(hundred)

	if interestType == domain.InterestReducingBalance {
		n := InstallmentCount(term, period)
		periods := decimal.NewFromInt(int64(n))
		principalShare := principal.Div(periods)

		remaining := principal
		interest := decimal.Zero
		for i := 0; i < n; i++ {
			interest = interest.Add(remaining.Mul(monthlyRate).Round(2))
			remaining = remaining.Sub(principalShare)
		}
		return interest.Round(2), nil
	}

	months := TermInMonths(term, period)
	return principal.Mul(monthlyRate).Mul(months).Round(2), nil
}

// CalculateFee resolves a product fee against a base amount. A nil fee value
// means the product carries no such fee.
func CalculateFee(base decimal.Decimal, feeValue *decimal.Decimal, feeType domain.FeeType) decimal.Decimal {
	if feeValue == nil {
		return decimal.Zero
	}
	if feeType == domain.FeePercentage {
		return feeValue.Div(hundred).Mul(base).Round(2)
	}
	return feeValue.Round(2)
}

// CalculateTotal sums principal, interest and fees into the total payable.
func CalculateTotal(principal, interest, fees decimal.Decimal) decimal.Decimal {
	return principal.Add(interest).Add(fees).Round(2)
}

// CommittedFigures bundles the numbers a loan commits to at approval time.
type CommittedFigures struct {
	Interest decimal.Decimal
	Fees     decimal.Decimal
	Total    decimal.Decimal
}

// CommitFigures computes interest, combined fees and total payable for a
// principal/term against a product's fee configuration. Fees and interest are
// rounded separately before the final sum.
func CommitFigures(product domain.ProductTerms, principal decimal.Decimal, term int, rate decimal.Decimal, interestType domain.InterestType) (CommittedFigures, error) {
	interest, err := CalculateInterest(principal, term, product.TermPeriod, rate, interestType)
	if err != nil {
		return CommittedFigures{}, err
	}
	processing := CalculateFee(principal, product.ProcessingFee, product.ProcessingFeeType)
	insurance := CalculateFee(principal, product.InsuranceFee, product.InsuranceFeeType)
	fees := processing.Add(insurance)
	return CommittedFigures{
		Interest: interest,
		Fees:     fees,
		Total:    CalculateTotal(principal, interest, fees),
	}, nil
}
