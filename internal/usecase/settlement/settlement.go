package settlement

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/simaogato/darkmoney-backend/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// MemberBalance is a member's net position in a shared wallet.
// Positive means the member is owed money, negative means the member owes.
type MemberBalance struct {
	MemberID string          `json:"memberId"`
	Balance  decimal.Decimal `json:"balance"`
}

// Payment is a single transfer that moves a debtor towards zero
type Payment struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

// Plan is the list of payments that zeroes every balance
type Plan struct {
	WalletID string          `json:"walletId"`
	Payments []Payment       `json:"payments"`
	Balances []MemberBalance `json:"balances"`
}

// CalculateMemberBalances computes every member's net balance, in wallet member order.
// Logic:
//   - Every member starts at zero
//   - Only transactions with a shared split are considered
//   - SharedWith[0] is the payer and is credited amount * splitPercentage / 100
//   - The same amount is debited evenly from the other participants; the last one
//     absorbs the rounding remainder so the balances always sum to exactly zero
//
// Participants that are not wallet members are skipped, as are splits with no
// participant besides the payer.
func CalculateMemberBalances(wallet domain.SharedWallet) []MemberBalance {
	balances := make(map[string]decimal.Decimal, len(wallet.Members))
	for _, m := range wallet.Members {
		balances[m] = decimal.Zero
	}

	for _, t := range wallet.Transactions {
		if t.Shared == nil || len(t.Shared.SharedWith) == 0 {
			continue
		}

		payer := t.Shared.SharedWith[0]
		if !wallet.HasMember(payer) {
			continue
		}

		others := make([]string, 0, len(t.Shared.SharedWith)-1)
		for _, id := range t.Shared.SharedWith[1:] {
			if id != payer && wallet.HasMember(id) {
				others = append(others, id)
			}
		}
		if len(others) == 0 {
			continue
		}

		memberShare := t.Amount.Mul(t.Shared.SplitPercentage).Div(hundred)
		perPerson := memberShare.Div(decimal.NewFromInt(int64(len(others))))

		balances[payer] = balances[payer].Add(memberShare)

		debited := decimal.Zero
		for i, id := range others {
			share := perPerson
			if i == len(others)-1 {
				share = memberShare.Sub(debited)
			}
			balances[id] = balances[id].Sub(share)
			debited = debited.Add(share)
		}
	}

	result := make([]MemberBalance, 0, len(wallet.Members))
	seen := make(map[string]bool, len(wallet.Members))
	for _, m := range wallet.Members {
		if seen[m] {
			continue
		}
		seen[m] = true
		result = append(result, MemberBalance{MemberID: m, Balance: balances[m]})
	}
	return result
}

// BalanceMap indexes balances by member ID
func BalanceMap(balances []MemberBalance) map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(balances))
	for _, b := range balances {
		m[b.MemberID] = b.Balance
	}
	return m
}

// GenerateSettlementPlan produces the payments that settle a wallet.
// Logic:
//  1. Debtors (balance < 0) are sorted most negative first, creditors (balance > 0) largest first
//  2. The current debtor pays the current creditor min(|debt|, credit)
//  3. A side whose remaining balance reaches zero advances to the next member;
//     both advance when the amounts match exactly
//  4. Stop when either side is exhausted
//
// Sorting is stable so equal balances keep wallet member order. The plan has at most
// members-1 payments.
func GenerateSettlementPlan(wallet domain.SharedWallet) Plan {
	balances := CalculateMemberBalances(wallet)

	debtors := make([]MemberBalance, 0)
	creditors := make([]MemberBalance, 0)
	for _, b := range balances {
		if b.Balance.IsNegative() {
			debtors = append(debtors, b)
		} else if b.Balance.IsPositive() {
			creditors = append(creditors, b)
		}
		// Zero balance means the member is already settled, skip
	}

	sort.SliceStable(debtors, func(i, j int) bool {
		return debtors[i].Balance.LessThan(debtors[j].Balance)
	})
	sort.SliceStable(creditors, func(i, j int) bool {
		return creditors[i].Balance.GreaterThan(creditors[j].Balance)
	})

	payments := make([]Payment, 0)
	debtorIndex, creditorIndex := 0, 0

	// Remaining amounts are tracked as positive values
	var owed, credit decimal.Decimal
	if len(debtors) > 0 {
		owed = debtors[0].Balance.Abs()
	}
	if len(creditors) > 0 {
		credit = creditors[0].Balance
	}

	for debtorIndex < len(debtors) && creditorIndex < len(creditors) {
		amount := decimal.Min(owed, credit)

		if amount.IsPositive() {
			payments = append(payments, Payment{
				From:   debtors[debtorIndex].MemberID,
				To:     creditors[creditorIndex].MemberID,
				Amount: amount,
			})
		}

		owed = owed.Sub(amount)
		credit = credit.Sub(amount)

		if !owed.IsPositive() {
			debtorIndex++
			if debtorIndex < len(debtors) {
				owed = debtors[debtorIndex].Balance.Abs()
			}
		}
		if !credit.IsPositive() {
			creditorIndex++
			if creditorIndex < len(creditors) {
				credit = creditors[creditorIndex].Balance
			}
		}
	}

	return Plan{
		WalletID: wallet.ID,
		Payments: payments,
		Balances: balances,
	}
}
