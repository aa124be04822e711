package finance

import (
	"fmt"
	"time"

	"github.com/emkopo/employee_lending_app/internal/apperrors"
	"github.com/emkopo/employee_lending_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SchedulePeriod is one row of a repayment schedule.
type SchedulePeriod struct {
	PeriodNumber  int             `json:"periodNumber"`
	PaymentDate   time.Time       `json:"paymentDate"`
	Principal     decimal.Decimal `json:"principalComponent"`
	Interest      decimal.Decimal `json:"interestComponent"`
	Total         decimal.Decimal `json:"totalComponent"`
	EndingBalance decimal.Decimal `json:"endingBalance"` // Remaining principal after the period
}

// GenerateSchedule builds the period-by-period repayment schedule for display
// on statements and agreements. It is recomputed on demand and never
// persisted; identical inputs always yield an identical sequence.
//
// REDUCING_BALANCE schedules use the level annuity installment
// EMI = P*r*(1+r)^n / ((1+r)^n - 1). This intentionally differs from the
// equal-principal model CalculateInterest uses for total interest; the two can
// disagree by rounding and both are kept as-is. FLAT schedules divide
// principal plus flat interest evenly. In both models the final period absorbs
// the rounding residue so the ending balance lands on exactly zero.
func GenerateSchedule(principal decimal.Decimal, term int, period domain.TermPeriod, rate decimal.Decimal, interestType domain.InterestType, startDate time.Time) ([]SchedulePeriod, error) {
	if term <= 0 {
		return nil, fmt.Errorf("term %d: %w", term, apperrors.ErrInvalidTerm)
	}
	if rate.IsNegative() {
		return nil, fmt.Errorf("rate %s: %w", rate, apperrors.ErrInvalidRate)
	}

	n := InstallmentCount(term, period)
	if interestType == domain.InterestReducingBalance {
		return reducingSchedule(principal, n, rate, startDate), nil
	}
	return flatSchedule(principal, term, period, n, rate, startDate)
}

func flatSchedule(principal decimal.Decimal, term int, period domain.TermPeriod, n int, rate decimal.Decimal, startDate time.Time) ([]SchedulePeriod, error) {
	totalInterest, err := CalculateInterest(principal, term, period, rate, domain.InterestFlat)
	if err != nil {
		return nil, err
	}
	total := principal.Add(totalInterest)
	periods := decimal.NewFromInt(int64(n))

	installment := total.Div(periods).Round(2)
	principalShare := principal.Div(periods).Round(2)

	schedule := make([]SchedulePeriod, 0, n)
	remainingPrincipal := principal
	remainingTotal := total
	for i := 1; i <= n; i++ {
		p := principalShare
		t := installment
		if i == n {
			// Last period absorbs the rounding residue.
			p = remainingPrincipal
			t = remainingTotal
		}
		remainingPrincipal = remainingPrincipal.Sub(p)
		remainingTotal = remainingTotal.Sub(t)
		schedule = append(schedule, SchedulePeriod{
			PeriodNumber:  i,
			PaymentDate:   startDate.AddDate(0, i, 0),
			Principal:     p,
			Interest:      t.Sub(p),
			Total:         t,
			EndingBalance: remainingPrincipal,
		})
	}
	return schedule, nil
}

func reducingSchedule(principal decimal.Decimal, n int, rate decimal.Decimal, startDate time.Time) []SchedulePeriod {
	monthlyRate := rate.Div(hundred)
	periods := decimal.NewFromInt(int64(n))

	var emi decimal.Decimal
	if monthlyRate.IsZero() {
		emi = principal.Div(periods).Round(2)
	} else {
		// EMI = P*r*(1+r)^n / ((1+r)^n - 1)
		compound := decimal.NewFromInt(1).Add(monthlyRate).Pow(periods)
		emi = principal.Mul(monthlyRate).Mul(compound).Div(compound.Sub(decimal.NewFromInt(1))).Round(2)
	}

	schedule := make([]SchedulePeriod, 0, n)
	balance := principal
	for i := 1; i <= n; i++ {
		interest := balance.Mul(monthlyRate).Round(2)
		p := emi.Sub(interest)
		t := emi
		if i == n {
			p = balance
			t = p.Add(interest)
		}
		balance = balance.Sub(p)
		schedule = append(schedule, SchedulePeriod{
			PeriodNumber:  i,
			PaymentDate:   startDate.AddDate(0, i, 0),
			Principal:     p,
			Interest:      interest,
			Total:         t,
			EndingBalance: balance,
		})
	}
	return schedule
}

// ExpectedEndDate advances a start date by a term in its own unit.
func ExpectedEndDate(start time.Time, term int, period domain.TermPeriod) time.Time {
	switch period {
	case domain.PeriodDay:
		return start.AddDate(0, 0, term)
	case domain.PeriodWeek:
		return start.AddDate(0, 0, 7*term)
	case domain.PeriodYear:
		return start.AddDate(term, 0, 0)
	default:
		return start.AddDate(0, term, 0)
	}
}
