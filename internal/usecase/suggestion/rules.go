package suggestion

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/simaogato/darkmoney-backend/internal/domain"
)

// KeywordRule matches transaction notes against a keyword set and emits one
// suggestion when the matched total exceeds Threshold
type KeywordRule struct {
	Key             string
	Keywords        []string
	Threshold       decimal.Decimal
	SavingsFraction decimal.Decimal
	Confidence      decimal.Decimal
	Kind            domain.SuggestionKind
	Category        string
	Title           string
	// Describe renders the description from the matched total and the savings estimate
	Describe func(total, savings decimal.Decimal) string
	Steps    []string
}

// DefaultRules is the ordered keyword rule table
var DefaultRules = []KeywordRule{
	{
		Key:             "subscriptions",
		Keywords:        []string{"netflix", "spotify", "subscription", "membership"},
		Threshold:       decimal.NewFromInt(50),
		SavingsFraction: decimal.RequireFromString("0.3"),
		Confidence:      decimal.RequireFromString("0.8"),
		Kind:            domain.SuggestionSaving,
		Title:           "Review Your Subscriptions",
		Describe: func(total, savings decimal.Decimal) string {
			return fmt.Sprintf("You're spending $%s monthly on subscriptions. Consider reviewing and canceling unused ones.", total.StringFixed(2))
		},
		Steps: []string{
			"List all your active subscriptions",
			"Identify services you rarely use",
			"Cancel or downgrade unnecessary subscriptions",
			"Consider sharing family plans for better value",
		},
	},
	{
		Key:             "food_delivery",
		Keywords:        []string{"uber eats", "doordash", "grubhub", "delivery"},
		Threshold:       decimal.NewFromInt(100),
		SavingsFraction: decimal.RequireFromString("0.7"),
		Confidence:      decimal.RequireFromString("0.85"),
		Kind:            domain.SuggestionSpending,
		Category:        "Food",
		Title:           "Reduce Food Delivery Expenses",
		Describe: func(total, savings decimal.Decimal) string {
			weekly := total.Div(decimal.NewFromInt(4))
			return fmt.Sprintf("You're spending about $%s weekly on food delivery. Cooking at home could save you significantly.", weekly.StringFixed(2))
		},
		Steps: []string{
			"Plan your meals for the week",
			"Buy groceries in bulk",
			"Prepare meals in advance",
			"Limit food delivery to once a week",
		},
	},
	{
		Key:             "transport",
		Keywords:        []string{"uber", "lyft", "taxi"},
		Threshold:       decimal.NewFromInt(200),
		SavingsFraction: decimal.RequireFromString("0.4"),
		Confidence:      decimal.RequireFromString("0.75"),
		Kind:            domain.SuggestionSaving,
		Category:        "Transport",
		Title:           "Optimize Transportation Costs",
		Describe: func(total, savings decimal.Decimal) string {
			return fmt.Sprintf("You could save $%s by using public transport or carpooling more often.", savings.StringFixed(2))
		},
		Steps: []string{
			"Check public transport routes and schedules",
			"Consider monthly transit passes",
			"Look for carpooling opportunities",
			"Plan trips in advance to combine errands",
		},
	},
}
