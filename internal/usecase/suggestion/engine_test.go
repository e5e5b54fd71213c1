package suggestion

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/darkmoney-backend/internal/domain"
	"github.com/simaogato/darkmoney-backend/internal/usecase/trend"
)

func note(amount, notes string) domain.Transaction {
	return domain.Transaction{
		ID:     notes,
		Amount: decimal.RequireFromString(amount),
		Notes:  notes,
		Date:   time.Date(2024, time.May, 3, 0, 0, 0, 0, time.UTC),
		Kind:   domain.TransactionKindExpense,
	}
}

// quietAnalysis keeps the savings-rate and unusual-spending rules silent
func quietAnalysis() trend.SpendAnalysis {
	return trend.SpendAnalysis{TotalComparison: trend.TotalComparison{CurrentTotal: decimal.NewFromInt(100)}}
}

func titles(s []domain.SmartSuggestion) []string {
	out := make([]string, 0, len(s))
	for _, x := range s {
		out = append(out, x.Title)
	}
	return out
}

func TestMatchedTotal_CaseInsensitive(t *testing.T) {
	txs := []domain.Transaction{
		note("15.99", "NETFLIX monthly"),
		note("9.99", "Spotify Premium"),
		note("40", "Gym Membership"),
		note("30", "groceries"),
	}

	total := MatchedTotal(txs, DefaultRules[0].Keywords)
	assert.True(t, total.Equal(decimal.RequireFromString("65.98")))
}

func TestGenerate_KeywordRules(t *testing.T) {
	engine := NewEngine(decimal.Zero)
	txs := []domain.Transaction{
		note("30", "Netflix"),
		note("25", "Spotify"),       // subscriptions: 55 > 50
		note("60", "DoorDash"),      // delivery
		note("50", "home delivery"), // delivery: 110 > 100
		note("150", "Lyft to airport"),
		note("40", "taxi"), // transport: 190, not above 200
	}

	suggestions := engine.Generate(txs, quietAnalysis())

	require.Len(t, suggestions, 2)

	subs := suggestions[0]
	assert.Equal(t, "Review Your Subscriptions", subs.Title)
	assert.Equal(t, domain.SuggestionSaving, subs.Kind)
	assert.True(t, subs.PotentialSavings.Equal(decimal.RequireFromString("16.5")))
	assert.True(t, subs.Confidence.Equal(decimal.RequireFromString("0.8")))
	assert.Contains(t, subs.Description, "$55.00")
	assert.Len(t, subs.ImplementationSteps, 4)

	food := suggestions[1]
	assert.Equal(t, "Reduce Food Delivery Expenses", food.Title)
	assert.Equal(t, "Food", food.Category)
	assert.True(t, food.PotentialSavings.Equal(decimal.NewFromInt(77)))
	assert.Contains(t, food.Description, "$27.50 weekly")
}

func TestGenerate_ThresholdIsStrict(t *testing.T) {
	engine := NewEngine(decimal.Zero)

	suggestions := engine.Generate([]domain.Transaction{note("50", "subscription box")}, quietAnalysis())

	assert.Empty(t, suggestions)
}

func TestGenerate_TransportRule(t *testing.T) {
	engine := NewEngine(decimal.Zero)
	txs := []domain.Transaction{note("120", "Uber home"), note("100", "taxi")}

	suggestions := engine.Generate(txs, quietAnalysis())

	require.Len(t, suggestions, 1)
	assert.Equal(t, "Optimize Transportation Costs", suggestions[0].Title)
	assert.True(t, suggestions[0].PotentialSavings.Equal(decimal.NewFromInt(88)))
	assert.Contains(t, suggestions[0].Description, "$88.00")
}

func TestGenerate_SavingsRate(t *testing.T) {
	tests := []struct {
		name         string
		income       int64
		currentTotal int64
		want         bool
	}{
		{"default income, heavy spending", 0, 4500, true},
		{"default income, exactly 20 percent saved", 0, 4000, false},
		{"default income, light spending", 0, 1000, false},
		{"custom income", 2000, 1700, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewEngine(decimal.NewFromInt(tt.income))
			analysis := trend.SpendAnalysis{TotalComparison: trend.TotalComparison{CurrentTotal: decimal.NewFromInt(tt.currentTotal)}}

			suggestions := engine.Generate(nil, analysis)

			if !tt.want {
				assert.Empty(t, suggestions)
				return
			}
			require.Len(t, suggestions, 1)
			assert.Equal(t, "Boost Your Savings", suggestions[0].Title)
			assert.True(t, suggestions[0].PotentialSavings.Equal(engine.MonthlyIncome.Mul(TargetSavingsRate)))
		})
	}
}

func TestGenerate_UnusualSpendingAlerts(t *testing.T) {
	engine := NewEngine(decimal.Zero)
	analysis := quietAnalysis()
	analysis.UnusualSpending = []trend.UnusualSpending{
		{CategoryID: "1", Name: "Food", Amount: decimal.NewFromInt(400), PercentageAboveNormal: decimal.RequireFromString("45.6")},
		{CategoryID: "4", Name: "Entertainment", Amount: decimal.NewFromInt(90), PercentageAboveNormal: decimal.NewFromInt(100)},
	}

	suggestions := engine.Generate(nil, analysis)

	assert.Equal(t, []string{"High Food Spending", "High Entertainment Spending"}, titles(suggestions))
	assert.True(t, suggestions[0].PotentialSavings.Equal(decimal.NewFromInt(120)))
	assert.Contains(t, suggestions[0].Description, "46% higher")
	assert.Equal(t, "Food", suggestions[0].Category)
	assert.Equal(t, domain.SuggestionSpending, suggestions[1].Kind)
	assert.True(t, suggestions[1].PotentialSavings.Equal(decimal.NewFromInt(27)))
}

func TestGenerate_IsDeterministic(t *testing.T) {
	engine := NewEngine(decimal.Zero)
	txs := []domain.Transaction{note("80", "netflix"), note("300", "uber eats")}
	analysis := trend.SpendAnalysis{TotalComparison: trend.TotalComparison{CurrentTotal: decimal.NewFromInt(4900)}}

	assert.Equal(t, engine.Generate(txs, analysis), engine.Generate(txs, analysis))
}
