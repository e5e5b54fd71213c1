package suggestion

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/darkmoney-backend/internal/domain"
	"github.com/simaogato/darkmoney-backend/internal/usecase/trend"
)

var (
	// DefaultMonthlyIncome is the placeholder income the savings-rate rule compares against.
	// It is not inferred from transaction data.
	DefaultMonthlyIncome = decimal.NewFromInt(5000)

	// TargetSavingsRate is the savings rate below which a savings suggestion is emitted
	TargetSavingsRate = decimal.RequireFromString("0.2")

	unusualSavingsFraction = decimal.RequireFromString("0.3")
	unusualConfidence      = decimal.RequireFromString("0.7")
	savingsRateConfidence  = decimal.RequireFromString("0.9")
	four                   = decimal.NewFromInt(4)
)

// Engine evaluates the suggestion rules
type Engine struct {
	Rules         []KeywordRule
	MonthlyIncome decimal.Decimal
}

// NewEngine creates an Engine with the default rule table.
// A non-positive monthlyIncome falls back to DefaultMonthlyIncome.
func NewEngine(monthlyIncome decimal.Decimal) *Engine {
	if !monthlyIncome.IsPositive() {
		monthlyIncome = DefaultMonthlyIncome
	}
	return &Engine{
		Rules:         DefaultRules,
		MonthlyIncome: monthlyIncome,
	}
}

// Generate produces suggestions in a fixed order:
//  1. One per keyword rule whose matched total exceeds its threshold
//  2. A savings-rate suggestion when the current month's expenses leave less than
//     TargetSavingsRate of MonthlyIncome
//  3. One spending alert per unusual category of the analysis
func (e *Engine) Generate(transactions []domain.Transaction, analysis trend.SpendAnalysis) []domain.SmartSuggestion {
	suggestions := make([]domain.SmartSuggestion, 0)

	for _, rule := range e.Rules {
		if s, ok := applyRule(rule, transactions); ok {
			suggestions = append(suggestions, s)
		}
	}

	if s, ok := e.savingsRate(analysis); ok {
		suggestions = append(suggestions, s)
	}

	for _, u := range analysis.UnusualSpending {
		suggestions = append(suggestions, unusualSpending(u))
	}

	return suggestions
}

// MatchedTotal sums the transactions whose notes contain any keyword, case-insensitively
func MatchedTotal(transactions []domain.Transaction, keywords []string) decimal.Decimal {
	total := decimal.Zero
	for _, t := range transactions {
		notes := strings.ToLower(t.Notes)
		for _, k := range keywords {
			if strings.Contains(notes, k) {
				total = total.Add(t.Amount)
				break
			}
		}
	}
	return total
}

func applyRule(rule KeywordRule, transactions []domain.Transaction) (domain.SmartSuggestion, bool) {
	total := MatchedTotal(transactions, rule.Keywords)
	if !total.GreaterThan(rule.Threshold) {
		return domain.SmartSuggestion{}, false
	}

	savings := total.Mul(rule.SavingsFraction)
	return domain.SmartSuggestion{
		ID:                  suggestionID(rule.Key),
		Kind:                rule.Kind,
		Title:               rule.Title,
		Description:         rule.Describe(total, savings),
		PotentialSavings:    savings,
		Category:            rule.Category,
		Confidence:          rule.Confidence,
		ImplementationSteps: append([]string(nil), rule.Steps...),
	}, true
}

func (e *Engine) savingsRate(analysis trend.SpendAnalysis) (domain.SmartSuggestion, bool) {
	rate := e.MonthlyIncome.Sub(analysis.TotalComparison.CurrentTotal).Div(e.MonthlyIncome)
	if !rate.LessThan(TargetSavingsRate) {
		return domain.SmartSuggestion{}, false
	}

	recommended := e.MonthlyIncome.Mul(TargetSavingsRate)
	return domain.SmartSuggestion{
		ID:               suggestionID("savings_rate"),
		Kind:             domain.SuggestionSaving,
		Title:            "Boost Your Savings",
		Description:      fmt.Sprintf("Set up automatic savings of $%s weekly to reach the recommended 20%% savings rate.", recommended.Div(four).StringFixed(2)),
		PotentialSavings: recommended,
		Confidence:       savingsRateConfidence,
		ImplementationSteps: []string{
			"Set up automatic transfers to savings",
			"Start with small weekly transfers",
			"Gradually increase the amount",
			"Review and adjust monthly",
		},
	}, true
}

func unusualSpending(u trend.UnusualSpending) domain.SmartSuggestion {
	return domain.SmartSuggestion{
		ID:               suggestionID("unusual/" + u.CategoryID),
		Kind:             domain.SuggestionSpending,
		Title:            fmt.Sprintf("High %s Spending", u.Name),
		Description:      fmt.Sprintf("Your %s spending is %s%% higher than usual. Consider setting a budget.", u.Name, u.PercentageAboveNormal.StringFixed(0)),
		PotentialSavings: u.Amount.Mul(unusualSavingsFraction),
		Category:         u.Name,
		Confidence:       unusualConfidence,
		ImplementationSteps: []string{
			fmt.Sprintf("Review your %s expenses", u.Name),
			"Identify unnecessary purchases",
			"Set a realistic budget",
			"Track spending regularly",
		},
	}
}

func suggestionID(key string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("suggestion/"+key)).String()
}
