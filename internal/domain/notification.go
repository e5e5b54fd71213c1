package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// NotificationKind represents what triggered a notification
type NotificationKind string

const (
	NotificationBudgetWarning   NotificationKind = "budget_warning"
	NotificationBillDue         NotificationKind = "bill_due"
	NotificationSpendAnalysis   NotificationKind = "spend_analysis"
	NotificationSmartSuggestion NotificationKind = "smart_suggestion"
)

// ActionKind represents the suggested reaction to a notification
type ActionKind string

const (
	ActionSave   ActionKind = "save"
	ActionReduce ActionKind = "reduce"
	ActionInvest ActionKind = "invest"
)

// Action is an optional call to action attached to a notification
type Action struct {
	Kind        ActionKind      `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// Notification is a derived warning or reminder. It is recomputed on demand
// and carries no persistence of its own.
type Notification struct {
	ID        string           `json:"id"`
	Kind      NotificationKind `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Date      time.Time        `json:"date"`
	Read      bool             `json:"read"`
	RelatedID string           `json:"relatedId,omitempty"`
	Action    *Action          `json:"action,omitempty"`
}

// SuggestionKind represents the category of a smart suggestion
type SuggestionKind string

const (
	SuggestionSaving     SuggestionKind = "saving"
	SuggestionSpending   SuggestionKind = "spending"
	SuggestionInvestment SuggestionKind = "investment"
)

// ActionKind maps a suggestion kind onto the action a notification should offer
func (k SuggestionKind) ActionKind() ActionKind {
	switch k {
	case SuggestionSaving:
		return ActionSave
	case SuggestionSpending:
		return ActionReduce
	case SuggestionInvestment:
		return ActionInvest
	default:
		return ActionSave
	}
}

// SmartSuggestion is a rule-derived savings recommendation
type SmartSuggestion struct {
	ID                  string          `json:"id"`
	Kind                SuggestionKind  `json:"type"`
	Title               string          `json:"title"`
	Description         string          `json:"description"`
	PotentialSavings    decimal.Decimal `json:"potentialSavings"`
	Category            string          `json:"category,omitempty"`
	Confidence          decimal.Decimal `json:"confidence"` // 0-1
	ImplementationSteps []string        `json:"implementationSteps"`
}
