package debtplanner

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/darkmoney-backend/internal/calendar"
	"github.com/simaogato/darkmoney-backend/internal/domain"
)

const (
	// MaxPayoffMonths caps the simulation at 30 years so a payment that never
	// covers the accruing interest still terminates
	MaxPayoffMonths = 360

	centPlaces = 2
)

var (
	// FallbackMinimumRate is the share of the balance used when a debt has no minimum payment
	FallbackMinimumRate = decimal.RequireFromString("0.02")
	// FallbackMinimumFloor is the smallest derived minimum payment
	FallbackMinimumFloor = decimal.NewFromInt(25)
	// AcceleratedFactor is the suggested payment as a multiple of the minimum
	AcceleratedFactor = decimal.RequireFromString("1.5")
	// SurplusFactor is the total cash assumed available for debt as a multiple of all minimums
	SurplusFactor = decimal.RequireFromString("1.2")

	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// Payoff is the projected amortization of a single debt
type Payoff struct {
	DebtID               string               `json:"debtId"`
	MonthsToPayoff       int                  `json:"monthsToPayoff"`
	TotalInterest        decimal.Decimal      `json:"totalInterest"`
	SuggestedPayment     decimal.Decimal      `json:"suggestedPayment"`
	AmortizationSchedule []domain.DebtPayment `json:"amortizationSchedule"`
}

// Allocation is the monthly amount assigned to one debt
type Allocation struct {
	DebtID string          `json:"debtId"`
	Amount decimal.Decimal `json:"amount"`
}

// Strategy is a prioritized multi-debt repayment plan
type Strategy struct {
	Order              []domain.Debt   `json:"order"`
	MonthlyAllocation  []Allocation    `json:"monthlyAllocation"`
	TotalMonths        int             `json:"totalMonths"`
	TotalInterestSaved decimal.Decimal `json:"totalInterestSaved"`
}

// MinimumPayment returns the debt's minimum payment, or max(2% of the remaining
// balance, 25) when none is set
func MinimumPayment(debt domain.Debt) decimal.Decimal {
	if debt.MinimumPayment.IsPositive() {
		return debt.MinimumPayment
	}
	return decimal.Max(debt.RemainingAmount.Mul(FallbackMinimumRate), FallbackMinimumFloor)
}

// CalculatePayoff simulates month-by-month amortization paying 1.5x the minimum.
// Logic:
//   - interest = balance * annualRate/12/100, rounded to cents every month
//   - principal = min(payment - interest, balance); it goes negative when the payment
//     does not cover the interest, so the balance grows until the cap is reached
//   - every simulated month appends a projected, unpaid DebtPayment dated now+k months
//     carrying the balance left after it
//   - the loop stops once the balance reaches zero or after MaxPayoffMonths
func CalculatePayoff(debt domain.Debt, now time.Time) Payoff {
	monthlyRate := debt.InterestRate.Div(twelve).Div(hundred)
	suggestedPayment := MinimumPayment(debt).Mul(AcceleratedFactor)

	balance := debt.RemainingAmount
	totalInterest := decimal.Zero
	schedule := make([]domain.DebtPayment, 0)
	months := 0

	for balance.IsPositive() && months < MaxPayoffMonths {
		interestCharge := balance.Mul(monthlyRate).Round(centPlaces)
		principalPayment := decimal.Min(suggestedPayment.Sub(interestCharge), balance)

		totalInterest = totalInterest.Add(interestCharge)
		balance = balance.Sub(principalPayment)
		months++

		schedule = append(schedule, domain.DebtPayment{
			ID:               scheduleEntryID(debt.ID, months),
			Amount:           suggestedPayment,
			Date:             calendar.FormatDate(calendar.AddMonths(now, months)),
			IsPaid:           false,
			RemainingBalance: balance,
		})
	}

	return Payoff{
		DebtID:               debt.ID,
		MonthsToPayoff:       months,
		TotalInterest:        totalInterest,
		SuggestedPayment:     suggestedPayment,
		AmortizationSchedule: schedule,
	}
}

// GeneratePaymentStrategy builds an avalanche repayment plan.
// Logic:
//  1. Order debts by interest rate, highest first (stable for equal rates)
//  2. Assume 20% more than the sum of minimums is available
//  3. Every debt gets its minimum; the whole surplus goes to the first debt
//  4. Interest saved compares each debt's payoff at its minimum vs at its allocation
//  5. TotalMonths is the longest accelerated payoff
func GeneratePaymentStrategy(debts []domain.Debt, now time.Time) Strategy {
	order := make([]domain.Debt, len(debts))
	copy(order, debts)
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].InterestRate.GreaterThan(order[j].InterestRate)
	})

	totalMinimum := decimal.Zero
	for _, d := range debts {
		totalMinimum = totalMinimum.Add(d.MinimumPayment)
	}
	availableForDebt := totalMinimum.Mul(SurplusFactor)
	surplus := availableForDebt.Sub(totalMinimum)

	allocation := make([]Allocation, 0, len(order))
	for _, d := range order {
		allocation = append(allocation, Allocation{DebtID: d.ID, Amount: d.MinimumPayment})
	}
	if len(allocation) > 0 {
		allocation[0].Amount = allocation[0].Amount.Add(surplus)
	}

	maxMonths := 0
	interestSaved := decimal.Zero
	for i, d := range order {
		standard := CalculatePayoff(d, now)

		accelerated := d
		accelerated.MinimumPayment = allocation[i].Amount
		acceleratedPayoff := CalculatePayoff(accelerated, now)

		if acceleratedPayoff.MonthsToPayoff > maxMonths {
			maxMonths = acceleratedPayoff.MonthsToPayoff
		}
		interestSaved = interestSaved.Add(standard.TotalInterest.Sub(acceleratedPayoff.TotalInterest))
	}

	return Strategy{
		Order:              order,
		MonthlyAllocation:  allocation,
		TotalMonths:        maxMonths,
		TotalInterestSaved: interestSaved,
	}
}

// scheduleEntryID derives a stable ID so identical inputs yield identical schedules
func scheduleEntryID(debtID string, month int) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("debt-payment/%s/%d", debtID, month))).String()
}
