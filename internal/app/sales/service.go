// Package sales implements the order lifecycle: quoting, creation,
// technician dispatch, status advancement and payment settlement.
//
// All business arithmetic lives in the domain package; this service
// resolves entities through the store, applies the transition side
// effects and keeps the customer debt invariant (DebtSince non-nil iff
// TotalDebt > 0) on every mutation.
package sales

import (
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/voltdesk/voltdesk/internal/domain"
	"github.com/voltdesk/voltdesk/internal/infra/observability"
)

// Service executes order operations over the injected store.
type Service struct {
	store   domain.Store
	metrics *observability.Metrics
}

// New creates the sales service.
func New(store domain.Store, m *observability.Metrics) *Service {
	return &Service{store: store, metrics: m}
}

// ─── Quoting ────────────────────────────────────────────────────────────────

// QuoteRequest is a candidate order to price. Safe to submit on every
// form change; nothing is mutated.
type QuoteRequest struct {
	CustomerType domain.CustomerType `json:"customer_type"`
	CustomerID   string              `json:"customer_id,omitempty"`
	BatteryID    string              `json:"battery_id"`
	Quantity     int                 `json:"quantity"`
}

// Quote prices a candidate order. Unknown battery ids price at zero and
// unknown customer ids quote with no history — lookups degrade, they do
// not fail.
func (s *Service) Quote(req QuoteRequest) (domain.Quote, error) {
	battery, err := s.store.GetBattery(req.BatteryID)
	if err != nil {
		return domain.Quote{}, err
	}
	var customer *domain.Customer
	if req.CustomerID != "" {
		if customer, err = s.store.GetCustomer(req.CustomerID); err != nil {
			return domain.Quote{}, err
		}
	}
	policies, err := s.store.ListPolicies()
	if err != nil {
		return domain.Quote{}, err
	}
	return domain.ComputeQuote(battery, req.Quantity, req.CustomerType, customer, policies, time.Now()), nil
}

// ─── Order Creation ─────────────────────────────────────────────────────────

// CreateOrderRequest is the order submission form.
type CreateOrderRequest struct {
	CustomerType domain.CustomerType `json:"customer_type"`
	CustomerID   string              `json:"customer_id,omitempty"`   // agent orders
	CustomerName string              `json:"customer_name,omitempty"` // retail orders
	Address      string              `json:"address"`
	BatteryID    string              `json:"battery_id"`
	Quantity     int                 `json:"quantity"`
	TechnicianID string              `json:"technician_id,omitempty"` // retail orders, optional
}

func (r *CreateOrderRequest) validate() error {
	if r.Quantity < 1 {
		return &domain.ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}
	if strings.TrimSpace(r.Address) == "" {
		return &domain.ValidationError{Field: "address", Reason: "required"}
	}
	switch r.CustomerType {
	case domain.CustomerAgent:
		if r.CustomerID == "" {
			return &domain.ValidationError{Field: "customer_id", Reason: "required for agent orders"}
		}
	case domain.CustomerRetail:
		if strings.TrimSpace(r.CustomerName) == "" {
			return &domain.ValidationError{Field: "customer_name", Reason: "required for retail orders"}
		}
	default:
		return &domain.ValidationError{Field: "customer_type", Reason: "must be retail or agent"}
	}
	return nil
}

// CreateOrder prices, gates and persists a new order.
//
// Agent orders enter the lifecycle at Completed (fulfilled out-of-band),
// accrue the order total as debt, add the quantity to the customer's
// monthly volume and open a debt period when the balance was zero. They
// are rejected with ErrOrderNotEligible when the credit checks fail.
//
// Retail orders enter at New, or at Assigned when a known technician is
// chosen; the customer record is resolved or created by display name and
// carries no debt. Order, stock decrement and customer write commit in
// one transaction.
func (s *Service) CreateOrder(req CreateOrderRequest) (*domain.Order, *domain.Quote, error) {
	if err := req.validate(); err != nil {
		return nil, nil, err
	}

	battery, err := s.store.GetBattery(req.BatteryID)
	if err != nil {
		return nil, nil, err
	}
	policies, err := s.store.ListPolicies()
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	isAgent := req.CustomerType == domain.CustomerAgent

	var customer *domain.Customer
	if isAgent {
		if customer, err = s.store.GetCustomer(req.CustomerID); err != nil {
			return nil, nil, err
		}
		if customer == nil {
			return nil, nil, &domain.ValidationError{Field: "customer_id", Reason: "unknown agent"}
		}
	} else {
		if customer, err = s.store.FindCustomerByName(strings.TrimSpace(req.CustomerName)); err != nil {
			return nil, nil, err
		}
	}

	quote := domain.ComputeQuote(battery, req.Quantity, req.CustomerType, customer, policies, now)
	if isAgent && !quote.Eligible {
		reason := "over_limit"
		if quote.IsDebtOverdue {
			reason = "overdue"
		}
		s.metrics.OrdersBlocked.WithLabelValues(reason).Inc()
		return nil, &quote, domain.ErrOrderNotEligible
	}

	order := domain.Order{
		ID:             uuid.NewString(),
		Address:        strings.TrimSpace(req.Address),
		BatteryID:      req.BatteryID,
		Quantity:       req.Quantity,
		Status:         domain.StatusNew,
		TotalAmount:    quote.Total,
		DiscountAmount: quote.DiscountAmount,
		CreatedAt:      now,
	}

	if isAgent {
		order.Status = domain.StatusCompleted
		order.CustomerID = customer.ID
		order.CustomerName = customer.Name

		if customer.TotalDebt == 0 {
			since := now
			customer.DebtSince = &since
		}
		customer.TotalDebt += quote.Total
		customer.MonthlyQuantity += req.Quantity
		customer.LastOrderAt = now
	} else {
		if req.TechnicianID != "" {
			// Unknown technician ids are ignored; the order stays New.
			tech, err := s.store.GetTechnician(req.TechnicianID)
			if err != nil {
				return nil, nil, err
			}
			if tech != nil {
				order.TechnicianID = tech.ID
				order.Status = domain.StatusAssigned
			}
		}
		if customer == nil {
			customer = &domain.Customer{
				ID:   uuid.NewString(),
				Name: strings.TrimSpace(req.CustomerName),
				Type: domain.CustomerRetail,
				Tier: domain.TierBronze,
			}
		}
		customer.LastOrderAt = now
		order.CustomerID = customer.ID
		order.CustomerName = customer.Name
	}

	if err := s.store.InsertOrder(order, customer); err != nil {
		return nil, nil, err
	}

	s.metrics.OrdersCreated.WithLabelValues(string(req.CustomerType)).Inc()
	s.metrics.DiscountGranted.Add(float64(quote.DiscountAmount))
	log.Printf("order %s created: %s ×%d for %s (%dđ, -%dđ discount)",
		order.ID, order.BatteryID, order.Quantity, order.CustomerName,
		order.TotalAmount, order.DiscountAmount)
	return &order, &quote, nil
}

// ─── Dispatch & Status ──────────────────────────────────────────────────────

// AssignTechnician binds a technician to an order and moves it to
// Assigned. Unknown order or technician ids are silent no-ops; orders
// already past dispatch are rejected. Rebinding an Assigned order is
// allowed.
func (s *Service) AssignTechnician(orderID, technicianID string) (*domain.Order, error) {
	order, err := s.store.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	tech, err := s.store.GetTechnician(technicianID)
	if err != nil {
		return nil, err
	}
	if tech == nil {
		return nil, nil
	}
	if order.Status != domain.StatusNew && order.Status != domain.StatusAssigned {
		return nil, &domain.TransitionError{OrderID: orderID, From: order.Status, To: domain.StatusAssigned}
	}

	order.TechnicianID = tech.ID
	order.Status = domain.StatusAssigned
	if err := s.store.UpdateOrder(*order); err != nil {
		return nil, err
	}
	s.metrics.StatusTransitions.WithLabelValues(string(domain.StatusAssigned)).Inc()
	return order, nil
}

// AdvanceStatus moves an order one step along the fulfilment chain.
// next must be the single valid successor of the current status; anything
// else is a TransitionError. Unknown order ids are silent no-ops.
func (s *Service) AdvanceStatus(orderID string, next domain.OrderStatus) (*domain.Order, error) {
	order, err := s.store.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}

	want, ok := order.Status.Next()
	if !ok || next != want {
		return nil, &domain.TransitionError{OrderID: orderID, From: order.Status, To: next}
	}

	order.Status = next
	if err := s.store.UpdateOrder(*order); err != nil {
		return nil, err
	}
	s.metrics.StatusTransitions.WithLabelValues(string(next)).Inc()
	return order, nil
}

// ─── Payment ────────────────────────────────────────────────────────────────

// ConfirmPayment settles a Completed order: paidAmount is set to the
// order total and the customer's debt is reduced by it, floored at zero.
// A zero balance closes the debt period (DebtSince = nil). Confirming an
// already-Paid order is a TransitionError, so a double confirmation never
// double-decrements. Unknown order ids are silent no-ops.
func (s *Service) ConfirmPayment(orderID string) (*domain.Order, error) {
	order, err := s.store.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	if order.Status != domain.StatusCompleted {
		return nil, &domain.TransitionError{OrderID: orderID, From: order.Status, To: domain.StatusPaid}
	}

	order.Status = domain.StatusPaid
	order.PaidAmount = order.TotalAmount

	customer, err := s.store.GetCustomer(order.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer != nil {
		customer.TotalDebt -= order.TotalAmount
		if customer.TotalDebt <= 0 {
			customer.TotalDebt = 0
			customer.DebtSince = nil
		}
	}

	if err := s.store.SettlePayment(*order, customer); err != nil {
		return nil, err
	}
	s.metrics.PaymentsConfirmed.Inc()
	s.metrics.RevenueCollected.Add(float64(order.PaidAmount))
	s.metrics.StatusTransitions.WithLabelValues(string(domain.StatusPaid)).Inc()
	log.Printf("order %s paid: %dđ collected from %s", order.ID, order.PaidAmount, order.CustomerName)
	return order, nil
}

// ─── Administration ─────────────────────────────────────────────────────────

// UpsertBattery creates or replaces a catalog entry. An empty id gets a
// generated one. Stock and price are stored as given.
func (s *Service) UpsertBattery(b domain.Battery) (domain.Battery, error) {
	if strings.TrimSpace(b.Name) == "" {
		return domain.Battery{}, &domain.ValidationError{Field: "name", Reason: "required"}
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Vehicle == "" {
		b.Vehicle = domain.VehicleCar
	}
	return b, s.store.UpsertBattery(b)
}

// UpsertTechnician creates or replaces a roster entry.
func (s *Service) UpsertTechnician(t domain.Technician) (domain.Technician, error) {
	if strings.TrimSpace(t.Name) == "" {
		return domain.Technician{}, &domain.ValidationError{Field: "name", Reason: "required"}
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Status == "" {
		t.Status = domain.TechnicianAvailable
	}
	return t, s.store.UpsertTechnician(t)
}

// SetPolicies replaces the discount policy set wholesale. Duplicate or
// overlapping thresholds are permitted; selection resolves them by the
// descending-sort rule in the pricing engine.
func (s *Service) SetPolicies(ps []domain.DiscountPolicy) error {
	return s.store.ReplacePolicies(ps)
}

// ─── Listings ───────────────────────────────────────────────────────────────

// OrderFilter narrows ListOrders. Zero values mean no filtering.
type OrderFilter struct {
	Status       domain.OrderStatus
	TechnicianID string
}

// ListOrders returns orders newest first, optionally filtered for the
// dispatch board (by status) or the technician app (by assignee).
func (s *Service) ListOrders(f OrderFilter) ([]domain.Order, error) {
	orders, err := s.store.ListOrders()
	if err != nil {
		return nil, err
	}
	if f.Status == "" && f.TechnicianID == "" {
		return orders, nil
	}
	out := orders[:0]
	for _, o := range orders {
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if f.TechnicianID != "" && o.TechnicianID != f.TechnicianID {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (s *Service) ListBatteries() ([]domain.Battery, error)      { return s.store.ListBatteries() }
func (s *Service) ListTechnicians() ([]domain.Technician, error) { return s.store.ListTechnicians() }
func (s *Service) ListCustomers() ([]domain.Customer, error)     { return s.store.ListCustomers() }
func (s *Service) ListPolicies() ([]domain.DiscountPolicy, error) {
	return s.store.ListPolicies()
}
func (s *Service) GetOrder(id string) (*domain.Order, error) { return s.store.GetOrder(id) }

// ─── Dashboard ──────────────────────────────────────────────────────────────

// LowStockThreshold flags batteries the dashboard warns about.
const LowStockThreshold = 10

// Summary is the dashboard snapshot.
type Summary struct {
	OrderCount       int              `json:"order_count"`
	OpenOrders       int              `json:"open_orders"`
	RevenueCollected int64            `json:"revenue_collected"`
	OutstandingDebt  int64            `json:"outstanding_debt"`
	LowStock         []domain.Battery `json:"low_stock"`
}

// Summarize computes the dashboard snapshot from current state.
func (s *Service) Summarize() (*Summary, error) {
	orders, err := s.store.ListOrders()
	if err != nil {
		return nil, err
	}
	customers, err := s.store.ListCustomers()
	if err != nil {
		return nil, err
	}
	batteries, err := s.store.ListBatteries()
	if err != nil {
		return nil, err
	}

	sum := &Summary{OrderCount: len(orders)}
	for _, o := range orders {
		sum.RevenueCollected += o.PaidAmount
		if o.Status != domain.StatusPaid {
			sum.OpenOrders++
		}
	}
	for _, c := range customers {
		sum.OutstandingDebt += c.TotalDebt
	}
	for _, b := range batteries {
		if b.Stock <= LowStockThreshold {
			sum.LowStock = append(sum.LowStock, b)
		}
	}
	return sum, nil
}
