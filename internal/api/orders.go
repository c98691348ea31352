package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/voltdesk/voltdesk/internal/app/sales"
	"github.com/voltdesk/voltdesk/internal/domain"
)

// ─── Order Handlers ─────────────────────────────────────────────────────────

// handleQuote prices a candidate order without mutating anything.
// POST /api/orders/quote
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req sales.QuoteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	quote, err := s.sales.Quote(req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

// handleCreateOrder creates an order from the submission form.
// POST /api/orders
//
// An agent order failing the credit checks returns 422 with the quote so
// the client can show which check blocked it.
func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req sales.CreateOrderRequest
	if !decodeBody(w, r, &req) {
		return
	}
	order, quote, err := s.sales.CreateOrder(req)
	if errors.Is(err, domain.ErrOrderNotEligible) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error": map[string]any{"message": err.Error(), "type": "not_eligible"},
			"quote": quote,
		})
		return
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"order": order,
		"quote": quote,
	})
}

// handleListOrders lists orders newest first, optionally filtered.
// GET /api/orders?status=New&technician_id=k1
func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	filter := sales.OrderFilter{
		Status:       domain.OrderStatus(r.URL.Query().Get("status")),
		TechnicianID: r.URL.Query().Get("technician_id"),
	}
	if filter.Status != "" && !filter.Status.Valid() {
		writeError(w, http.StatusBadRequest, "unknown status "+string(filter.Status))
		return
	}
	orders, err := s.sales.ListOrders(filter)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

// handleGetOrder returns a single order.
// GET /api/orders/{id}
func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := s.sales.GetOrder(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if order == nil {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// handleAssignTechnician binds a technician to an order.
// POST /api/orders/{id}/assign
//
// Unknown order or technician ids are accepted as no-ops (updated=false),
// matching the dispatcher board's fire-and-forget behavior.
func (s *Server) handleAssignTechnician(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TechnicianID string `json:"technician_id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	order, err := s.sales.AssignTechnician(chi.URLParam(r, "id"), req.TechnicianID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"updated": order != nil,
		"order":   order,
	})
}

// handleAdvanceStatus moves an order one step along the fulfilment chain.
// POST /api/orders/{id}/status
func (s *Server) handleAdvanceStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status domain.OrderStatus `json:"status"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	order, err := s.sales.AdvanceStatus(chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"updated": order != nil,
		"order":   order,
	})
}

// handleConfirmPayment settles a completed order. The response carries
// the static payment QR for the technician's collection screen.
// POST /api/orders/{id}/payment
func (s *Server) handleConfirmPayment(w http.ResponseWriter, r *http.Request) {
	order, err := s.sales.ConfirmPayment(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"updated":    order != nil,
		"order":      order,
		"payment_qr": paymentQR,
	})
}
