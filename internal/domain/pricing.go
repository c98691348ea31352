package domain

import (
	"sort"
	"time"
)

// ─── Pricing & Eligibility Engine ───────────────────────────────────────────
// Quote is the one non-trivial computation in the system. It is pure and
// safe to re-invoke on every form keystroke: no side effects, no state.

// DebtLimitDays is the fixed aging threshold past which an agent's
// outstanding balance blocks new credit orders.
const DebtLimitDays = 30

// Quote is a priced order candidate plus the credit checks that gate it.
type Quote struct {
	Subtotal        int64 `json:"subtotal"`
	DiscountPercent int   `json:"discount_percent"`
	DiscountAmount  int64 `json:"discount_amount"`
	Total           int64 `json:"total"`
	DebtAgeDays     int   `json:"debt_age_days"`
	IsDebtOverdue   bool  `json:"is_debt_overdue"`
	IsOverLimit     bool  `json:"is_over_limit"`
	Eligible        bool  `json:"eligible"`
}

// SelectPolicy picks the applicable discount tier for a cumulative
// quantity: the policy with the largest MinQuantity that does not exceed
// it. Returns ok=false when the quantity is below every threshold.
// Duplicate thresholds resolve to the first found after descending sort.
func SelectPolicy(policies []DiscountPolicy, quantity int) (DiscountPolicy, bool) {
	sorted := make([]DiscountPolicy, len(policies))
	copy(sorted, policies)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MinQuantity > sorted[j].MinQuantity
	})
	for _, p := range sorted {
		if p.MinQuantity <= quantity {
			return p, true
		}
	}
	return DiscountPolicy{}, false
}

// roundPercent computes round-half-up of amount*percent/100 in integer
// arithmetic. Inputs are non-negative in practice.
func roundPercent(amount int64, percent int) int64 {
	return (amount*int64(percent) + 50) / 100
}

// ComputeQuote prices a candidate order and evaluates credit eligibility.
//
// battery and customer may be nil: an unknown battery prices at 0 rather
// than failing, and a nil customer is an ad-hoc retail buyer with no
// history. quantity below 1 is clamped to 1 so the computation is always
// defined while the form is half-filled.
//
// The discount tier is selected against the customer's projected monthly
// volume (accumulated quantity plus this order), and the credit checks
// are hard blocks for agents only — retail orders surface them as
// warnings but stay eligible.
func ComputeQuote(battery *Battery, quantity int, customerType CustomerType, customer *Customer, policies []DiscountPolicy, now time.Time) Quote {
	if quantity < 1 {
		quantity = 1
	}

	projected := quantity
	if customer != nil {
		projected += customer.MonthlyQuantity
	}

	var percent int
	if p, ok := SelectPolicy(policies, projected); ok {
		percent = p.DiscountPercent
	}

	var price int64
	if battery != nil {
		price = battery.Price
	}
	subtotal := price * int64(quantity)
	discount := roundPercent(subtotal, percent)
	total := subtotal - discount

	q := Quote{
		Subtotal:        subtotal,
		DiscountPercent: percent,
		DiscountAmount:  discount,
		Total:           total,
	}

	q.DebtAgeDays = customer.DebtAgeDays(now)
	q.IsDebtOverdue = q.DebtAgeDays > DebtLimitDays
	if customerType == CustomerAgent && customer != nil {
		q.IsOverLimit = customer.TotalDebt+total > customer.CreditLimit
	}

	q.Eligible = true
	if customerType == CustomerAgent && (q.IsDebtOverdue || q.IsOverLimit) {
		q.Eligible = false
	}
	return q
}

// NextVolumeTier returns the smallest policy threshold strictly above the
// customer's current monthly quantity — the CRM progress target. ok is
// false when the customer has passed every tier.
func NextVolumeTier(policies []DiscountPolicy, monthlyQuantity int) (int, bool) {
	best := 0
	found := false
	for _, p := range policies {
		if p.MinQuantity > monthlyQuantity && (!found || p.MinQuantity < best) {
			best = p.MinQuantity
			found = true
		}
	}
	return best, found
}
