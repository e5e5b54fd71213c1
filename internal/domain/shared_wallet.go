package domain

import "errors"

// SharedWallet is a pool of expenses shared between members.
// Members is the universe of balances used by settlement.
type SharedWallet struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Members      []string      `json:"members"`
	Transactions []Transaction `json:"transactions"`
	OwnerID      string        `json:"ownerId"`
}

// HasMember reports whether id belongs to the wallet
func (w *SharedWallet) HasMember(id string) bool {
	for _, m := range w.Members {
		if m == id {
			return true
		}
	}
	return false
}

// Validate ensures the wallet adheres to domain rules
func (w *SharedWallet) Validate() error {
	if w.Name == "" {
		return errors.New("shared wallet name cannot be empty")
	}

	if len(w.Members) == 0 {
		return errors.New("shared wallet must have at least one member")
	}

	seen := make(map[string]bool, len(w.Members))
	for _, m := range w.Members {
		if seen[m] {
			return errors.New("shared wallet members must be unique")
		}
		seen[m] = true
	}

	return nil
}
