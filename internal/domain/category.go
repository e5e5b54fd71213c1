package domain

import "errors"

// Category groups transactions of a single kind
type Category struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Emoji string          `json:"emoji"`
	Color string          `json:"color"`
	Kind  TransactionKind `json:"type"`
}

// Validate ensures the category adheres to domain rules
func (c *Category) Validate() error {
	if c.Name == "" {
		return errors.New("category name cannot be empty")
	}

	if !c.Kind.Valid() {
		return errors.New("category type must be expense or income")
	}

	return nil
}

// DefaultCategories returns the starter category set used when a store has no snapshot yet
func DefaultCategories() []Category {
	return []Category{
		{ID: "1", Name: "Food", Emoji: "🍔", Color: "#FF3C78", Kind: TransactionKindExpense},
		{ID: "2", Name: "Transport", Emoji: "🚗", Color: "#4FC3F7", Kind: TransactionKindExpense},
		{ID: "3", Name: "Shopping", Emoji: "🛍️", Color: "#FFC107", Kind: TransactionKindExpense},
		{ID: "4", Name: "Entertainment", Emoji: "🎬", Color: "#9C27B0", Kind: TransactionKindExpense},
		{ID: "5", Name: "Bills", Emoji: "📝", Color: "#F44336", Kind: TransactionKindExpense},
		{ID: "6", Name: "Health", Emoji: "💊", Color: "#00E676", Kind: TransactionKindExpense},
		{ID: "7", Name: "Salary", Emoji: "💰", Color: "#00E676", Kind: TransactionKindIncome},
		{ID: "8", Name: "Freelance", Emoji: "💻", Color: "#4FC3F7", Kind: TransactionKindIncome},
		{ID: "9", Name: "Gifts", Emoji: "🎁", Color: "#FF3C78", Kind: TransactionKindIncome},
	}
}
