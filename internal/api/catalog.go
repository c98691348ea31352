package api

import (
	"net/http"
	"time"

	"github.com/voltdesk/voltdesk/internal/domain"
)

// ─── Catalog & CRM Handlers ─────────────────────────────────────────────────

// handleListBatteries returns the catalog.
// GET /api/batteries
func (s *Server) handleListBatteries(w http.ResponseWriter, r *http.Request) {
	batteries, err := s.sales.ListBatteries()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if batteries == nil {
		batteries = []domain.Battery{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"batteries": batteries})
}

// handleUpsertBattery creates or replaces a catalog entry.
// POST /api/batteries
func (s *Server) handleUpsertBattery(w http.ResponseWriter, r *http.Request) {
	var b domain.Battery
	if !decodeBody(w, r, &b) {
		return
	}
	saved, err := s.sales.UpsertBattery(b)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// handleListTechnicians returns the KTV roster.
// GET /api/technicians
func (s *Server) handleListTechnicians(w http.ResponseWriter, r *http.Request) {
	techs, err := s.sales.ListTechnicians()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if techs == nil {
		techs = []domain.Technician{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"technicians": techs})
}

// handleUpsertTechnician creates or replaces a roster entry.
// POST /api/technicians
func (s *Server) handleUpsertTechnician(w http.ResponseWriter, r *http.Request) {
	var t domain.Technician
	if !decodeBody(w, r, &t) {
		return
	}
	saved, err := s.sales.UpsertTechnician(t)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// customerView is a CRM row: the customer plus the derived columns the
// debt table shows (aging, overdue flag, next volume-tier target).
type customerView struct {
	domain.Customer
	DebtAgeDays   int  `json:"debt_age_days"`
	IsDebtOverdue bool `json:"is_debt_overdue"`
	NextTier      int  `json:"next_tier,omitempty"`
}

// handleListCustomers returns the CRM table.
// GET /api/customers
func (s *Server) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := s.sales.ListCustomers()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	policies, err := s.sales.ListPolicies()
	if err != nil {
		writeDomainError(w, err)
		return
	}

	now := time.Now()
	views := make([]customerView, 0, len(customers))
	for _, c := range customers {
		v := customerView{Customer: c}
		v.DebtAgeDays = c.DebtAgeDays(now)
		v.IsDebtOverdue = v.DebtAgeDays > domain.DebtLimitDays
		if next, ok := domain.NextVolumeTier(policies, c.MonthlyQuantity); ok {
			v.NextTier = next
		}
		views = append(views, v)
	}
	writeJSON(w, http.StatusOK, map[string]any{"customers": views})
}

// handleListPolicies returns the discount ladder in configured order.
// GET /api/policies
func (s *Server) handleListPolicies(w http.ResponseWriter, r *http.Request) {
	policies, err := s.sales.ListPolicies()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if policies == nil {
		policies = []domain.DiscountPolicy{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"policies": policies})
}

// handleUpdatePolicies replaces the discount ladder wholesale.
// PUT /api/policies
func (s *Server) handleUpdatePolicies(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Policies []domain.DiscountPolicy `json:"policies"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.sales.SetPolicies(req.Policies); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"policies": req.Policies})
}

// handleDashboard returns the admin dashboard snapshot.
// GET /api/dashboard
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sum, err := s.sales.Summarize()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}
