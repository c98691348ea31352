package domain

import (
	"testing"
	"time"
)

func standardPolicies() []DiscountPolicy {
	return []DiscountPolicy{
		{MinQuantity: 50, DiscountPercent: 12},
		{MinQuantity: 20, DiscountPercent: 8},
		{MinQuantity: 10, DiscountPercent: 5},
		{MinQuantity: 5, DiscountPercent: 2},
	}
}

// ─── Policy Selection ───────────────────────────────────────────────────────

func TestSelectPolicy(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		wantPct  int
		wantOK   bool
	}{
		{"below every threshold", 4, 0, false},
		{"exactly lowest tier", 5, 2, true},
		{"between tiers", 9, 2, true},
		{"exactly mid tier", 10, 5, true},
		{"top tier", 75, 12, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := SelectPolicy(standardPolicies(), tt.quantity)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && p.DiscountPercent != tt.wantPct {
				t.Errorf("DiscountPercent = %d, want %d", p.DiscountPercent, tt.wantPct)
			}
		})
	}
}

func TestSelectPolicy_PicksMaxApplicableThreshold(t *testing.T) {
	// No policy with a higher threshold <= quantity may be skipped,
	// regardless of input order.
	shuffled := []DiscountPolicy{
		{MinQuantity: 5, DiscountPercent: 2},
		{MinQuantity: 50, DiscountPercent: 12},
		{MinQuantity: 10, DiscountPercent: 5},
		{MinQuantity: 20, DiscountPercent: 8},
	}
	for qty := 0; qty <= 120; qty++ {
		got, ok := SelectPolicy(shuffled, qty)
		var want int
		for _, p := range shuffled {
			if p.MinQuantity <= qty && p.MinQuantity > want {
				want = p.MinQuantity
			}
		}
		if qty < 5 {
			if ok {
				t.Fatalf("qty %d: selected %+v, want none", qty, got)
			}
			continue
		}
		if !ok || got.MinQuantity != want {
			t.Fatalf("qty %d: selected threshold %d, want %d", qty, got.MinQuantity, want)
		}
	}
}

func TestSelectPolicy_DuplicateThresholds(t *testing.T) {
	dup := []DiscountPolicy{
		{MinQuantity: 10, DiscountPercent: 5},
		{MinQuantity: 10, DiscountPercent: 7},
	}
	p, ok := SelectPolicy(dup, 15)
	if !ok {
		t.Fatal("expected a policy match")
	}
	// Stable descending sort keeps the first-listed duplicate first.
	if p.DiscountPercent != 5 {
		t.Errorf("DiscountPercent = %d, want 5 (first listed wins)", p.DiscountPercent)
	}
}

// ─── Quote Computation ──────────────────────────────────────────────────────

func TestComputeQuote_VolumeDiscount(t *testing.T) {
	// Battery 350,000đ × 10, no accumulated volume → 5% tier.
	b := &Battery{ID: "b1", Price: 350_000}
	q := ComputeQuote(b, 10, CustomerRetail, nil, standardPolicies(), time.Now())

	if q.Subtotal != 3_500_000 {
		t.Errorf("Subtotal = %d, want 3500000", q.Subtotal)
	}
	if q.DiscountPercent != 5 {
		t.Errorf("DiscountPercent = %d, want 5", q.DiscountPercent)
	}
	if q.DiscountAmount != 175_000 {
		t.Errorf("DiscountAmount = %d, want 175000", q.DiscountAmount)
	}
	if q.Total != 3_325_000 {
		t.Errorf("Total = %d, want 3325000", q.Total)
	}
	if !q.Eligible {
		t.Error("retail order must be eligible")
	}
}

func TestComputeQuote_AgentCreditChecks(t *testing.T) {
	now := time.Now()
	overdue := now.AddDate(0, 0, -45)
	recent := now.AddDate(0, 0, -25)
	b := &Battery{ID: "b1", Price: 350_000}

	tests := []struct {
		name        string
		cust        Customer
		wantOverdue bool
		wantOver    bool
		wantElig    bool
	}{
		{
			// 15.4M debt + 3.325M order ≤ 50M limit, but 45-day-old debt
			// blocks regardless of headroom.
			name:        "overdue debt blocks within limit",
			cust:        Customer{Type: CustomerAgent, TotalDebt: 15_400_000, CreditLimit: 50_000_000, DebtSince: &overdue},
			wantOverdue: true,
			wantElig:    false,
		},
		{
			name:     "recent debt within limit passes",
			cust:     Customer{Type: CustomerAgent, TotalDebt: 8_200_000, CreditLimit: 100_000_000, DebtSince: &recent},
			wantElig: true,
		},
		{
			name:     "order pushes past credit limit",
			cust:     Customer{Type: CustomerAgent, TotalDebt: 18_000_000, CreditLimit: 20_000_000, DebtSince: &recent},
			wantOver: true,
			wantElig: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := ComputeQuote(b, 10, CustomerAgent, &tt.cust, standardPolicies(), now)
			if q.IsDebtOverdue != tt.wantOverdue {
				t.Errorf("IsDebtOverdue = %v, want %v", q.IsDebtOverdue, tt.wantOverdue)
			}
			if q.IsOverLimit != tt.wantOver {
				t.Errorf("IsOverLimit = %v, want %v", q.IsOverLimit, tt.wantOver)
			}
			if q.Eligible != tt.wantElig {
				t.Errorf("Eligible = %v, want %v", q.Eligible, tt.wantElig)
			}
		})
	}
}

func TestComputeQuote_RetailNeverBlocked(t *testing.T) {
	// The credit flags are warnings only for retail buyers.
	now := time.Now()
	overdue := now.AddDate(0, 0, -90)
	c := &Customer{Type: CustomerRetail, TotalDebt: 5_000_000, CreditLimit: 0, DebtSince: &overdue}
	b := &Battery{Price: 2_850_000}

	q := ComputeQuote(b, 1, CustomerRetail, c, standardPolicies(), now)
	if !q.IsDebtOverdue {
		t.Error("IsDebtOverdue = false, want true")
	}
	if !q.Eligible {
		t.Error("retail order must stay eligible despite overdue debt")
	}
	if q.DiscountPercent != 0 || q.Total != 2_850_000 {
		t.Errorf("quote = %d%% / %d, want 0%% / 2850000", q.DiscountPercent, q.Total)
	}
}

func TestComputeQuote_NoPolicyMatch(t *testing.T) {
	b := &Battery{Price: 2_850_000}
	q := ComputeQuote(b, 1, CustomerRetail, nil, standardPolicies(), time.Now())
	if q.DiscountPercent != 0 {
		t.Errorf("DiscountPercent = %d, want 0", q.DiscountPercent)
	}
	if q.Total != q.Subtotal {
		t.Errorf("Total = %d, want Subtotal %d", q.Total, q.Subtotal)
	}
}

func TestComputeQuote_ProjectedQuantityIncludesMonthlyVolume(t *testing.T) {
	// 35 accumulated + 1 this order = 36 → 20-unit tier (8%).
	c := &Customer{Type: CustomerAgent, MonthlyQuantity: 35, CreditLimit: 50_000_000}
	b := &Battery{Price: 1_000_000}
	q := ComputeQuote(b, 1, CustomerAgent, c, standardPolicies(), time.Now())
	if q.DiscountPercent != 8 {
		t.Errorf("DiscountPercent = %d, want 8", q.DiscountPercent)
	}
}

func TestComputeQuote_MissingBatteryPricesAtZero(t *testing.T) {
	q := ComputeQuote(nil, 3, CustomerRetail, nil, standardPolicies(), time.Now())
	if q.Subtotal != 0 || q.Total != 0 || q.DiscountAmount != 0 {
		t.Errorf("quote = %+v, want all-zero amounts", q)
	}
	if !q.Eligible {
		t.Error("zero-priced retail quote must be eligible")
	}
}

func TestComputeQuote_ClampsQuantity(t *testing.T) {
	b := &Battery{Price: 100_000}
	for _, qty := range []int{0, -5} {
		q := ComputeQuote(b, qty, CustomerRetail, nil, standardPolicies(), time.Now())
		if q.Subtotal != 100_000 {
			t.Errorf("quantity %d: Subtotal = %d, want 100000 (clamped to 1)", qty, q.Subtotal)
		}
	}
}

func TestComputeQuote_NoRoundingLeakage(t *testing.T) {
	// discount + total == subtotal for awkward percentages too.
	policies := []DiscountPolicy{{MinQuantity: 1, DiscountPercent: 7}}
	for price := int64(1); price < 500; price += 13 {
		b := &Battery{Price: price}
		q := ComputeQuote(b, 3, CustomerRetail, nil, policies, time.Now())
		if q.DiscountAmount+q.Total != q.Subtotal {
			t.Fatalf("price %d: discount %d + total %d != subtotal %d",
				price, q.DiscountAmount, q.Total, q.Subtotal)
		}
	}
}

func TestRoundPercent_HalfUp(t *testing.T) {
	tests := []struct {
		amount  int64
		percent int
		want    int64
	}{
		{1000, 5, 50},
		{1010, 5, 51},  // 50.5 rounds up
		{1009, 5, 50},  // 50.45 rounds down
		{333, 3, 10},   // 9.99 → 10
		{0, 12, 0},
	}
	for _, tt := range tests {
		if got := roundPercent(tt.amount, tt.percent); got != tt.want {
			t.Errorf("roundPercent(%d, %d) = %d, want %d", tt.amount, tt.percent, got, tt.want)
		}
	}
}

// ─── Status Chain ───────────────────────────────────────────────────────────

func TestOrderStatus_Next(t *testing.T) {
	chain := map[OrderStatus]OrderStatus{
		StatusAssigned:   StatusEnRoute,
		StatusEnRoute:    StatusInstalling,
		StatusInstalling: StatusCompleted,
	}
	for from, want := range chain {
		got, ok := from.Next()
		if !ok || got != want {
			t.Errorf("%s.Next() = %s, %v; want %s, true", from, got, ok, want)
		}
	}
	for _, terminal := range []OrderStatus{StatusNew, StatusCompleted, StatusPaid} {
		if _, ok := terminal.Next(); ok {
			t.Errorf("%s.Next() ok = true, want false", terminal)
		}
	}
}

// ─── Debt Aging ─────────────────────────────────────────────────────────────

func TestCustomer_DebtAgeDays(t *testing.T) {
	now := time.Now()
	since := now.AddDate(0, 0, -45)

	c := &Customer{TotalDebt: 1_000_000, DebtSince: &since}
	if got := c.DebtAgeDays(now); got != 45 {
		t.Errorf("DebtAgeDays = %d, want 45", got)
	}

	clean := &Customer{}
	if got := clean.DebtAgeDays(now); got != 0 {
		t.Errorf("DebtAgeDays (no debt) = %d, want 0", got)
	}

	var none *Customer
	if got := none.DebtAgeDays(now); got != 0 {
		t.Errorf("DebtAgeDays (nil customer) = %d, want 0", got)
	}
}

// ─── CRM Tier Progress ──────────────────────────────────────────────────────

func TestNextVolumeTier(t *testing.T) {
	tests := []struct {
		monthly int
		want    int
		wantOK  bool
	}{
		{0, 5, true},
		{12, 20, true},
		{35, 50, true},
		{62, 0, false}, // past every tier
	}
	for _, tt := range tests {
		got, ok := NextVolumeTier(standardPolicies(), tt.monthly)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("NextVolumeTier(%d) = %d, %v; want %d, %v", tt.monthly, got, ok, tt.want, tt.wantOK)
		}
	}
}
