// Package domain contains pure business types with ZERO infrastructure imports.
// This is the innermost ring of clean architecture — it depends on nothing.
package domain

import "time"

// ─── Catalog Types ──────────────────────────────────────────────────────────

// BatteryBrand is one of the brands the shop carries.
type BatteryBrand string

const (
	BrandGS        BatteryBrand = "GS"
	BrandVarta     BatteryBrand = "Varta"
	BrandDongNai   BatteryBrand = "Đồng Nai"
	BrandPanasonic BatteryBrand = "Panasonic"
	BrandExide     BatteryBrand = "Exide"
)

// Brands lists all carried brands in catalog order.
func Brands() []BatteryBrand {
	return []BatteryBrand{BrandGS, BrandVarta, BrandDongNai, BrandPanasonic, BrandExide}
}

// VehicleType classifies what a battery is sold for.
type VehicleType string

const (
	VehicleCar       VehicleType = "Car"
	VehicleMotorbike VehicleType = "Motorbike"
)

// Battery is a stocked product. Price is in whole đồng; Stock may go
// negative after a sale — the shop oversells against incoming supply.
type Battery struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Brand    BatteryBrand `json:"brand"`
	Capacity string       `json:"capacity"`
	Stock    int          `json:"stock"`
	Price    int64        `json:"price"`
	Vehicle  VehicleType  `json:"vehicle"`
}

// ─── Technician (KTV) Types ─────────────────────────────────────────────────

// TechnicianStatus is display/filter state only. No lifecycle transition
// ever flips it; the dispatcher sets it by hand.
type TechnicianStatus string

const (
	TechnicianAvailable TechnicianStatus = "Available"
	TechnicianBusy      TechnicianStatus = "Busy"
)

// Technician is a field installer (KTV) who fulfils delivery jobs and
// collects payment on site.
type Technician struct {
	ID     string           `json:"id"`
	Name   string           `json:"name"`
	Phone  string           `json:"phone"`
	Status TechnicianStatus `json:"status"`
}

// ─── Customer Types ─────────────────────────────────────────────────────────

// CustomerType distinguishes walk-in retail buyers from wholesale agents.
// Only agents are subject to credit-limit and debt-aging checks.
type CustomerType string

const (
	CustomerRetail CustomerType = "retail"
	CustomerAgent  CustomerType = "agent"
)

// CustomerTier is an informational loyalty label.
type CustomerTier string

const (
	TierBronze CustomerTier = "Bronze"
	TierSilver CustomerTier = "Silver"
	TierGold   CustomerTier = "Gold"
	TierVIP    CustomerTier = "VIP"
)

// Customer is a buyer record. Invariant: DebtSince is non-nil exactly when
// TotalDebt > 0 — every mutation of TotalDebt maintains this.
type Customer struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Type            CustomerType `json:"type"`
	Tier            CustomerTier `json:"tier"`
	Phone           string       `json:"phone"`
	TotalDebt       int64        `json:"total_debt"`
	CreditLimit     int64        `json:"credit_limit"`
	MonthlyQuantity int          `json:"monthly_quantity"`
	LastOrderAt     time.Time    `json:"last_order_at"`
	DebtSince       *time.Time   `json:"debt_since,omitempty"`
}

// DebtAgeDays returns whole days since the current unpaid-debt period
// started, 0 when the customer owes nothing.
func (c *Customer) DebtAgeDays(now time.Time) int {
	if c == nil || c.DebtSince == nil {
		return 0
	}
	return int(now.Sub(*c.DebtSince).Hours() / 24)
}

// ─── Discount Policy ────────────────────────────────────────────────────────

// DiscountPolicy maps a cumulative monthly volume threshold to a percentage
// discount. The policy set forms a step function over quantity.
type DiscountPolicy struct {
	MinQuantity     int `json:"min_quantity"`
	DiscountPercent int `json:"discount_percent"`
}

// ─── Order Types ────────────────────────────────────────────────────────────

// OrderStatus is the delivery/installation lifecycle state.
type OrderStatus string

const (
	StatusNew        OrderStatus = "New"
	StatusAssigned   OrderStatus = "Assigned"
	StatusEnRoute    OrderStatus = "EnRoute"
	StatusInstalling OrderStatus = "Installing"
	StatusCompleted  OrderStatus = "Completed"
	StatusPaid       OrderStatus = "Paid"
)

// Next returns the single valid successor in the fulfilment chain.
// ok is false for terminal states (Paid) and for New, which advances only
// through technician assignment, not through the chain.
func (s OrderStatus) Next() (OrderStatus, bool) {
	switch s {
	case StatusAssigned:
		return StatusEnRoute, true
	case StatusEnRoute:
		return StatusInstalling, true
	case StatusInstalling:
		return StatusCompleted, true
	default:
		return "", false
	}
}

// Valid reports whether s is a known lifecycle state.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusNew, StatusAssigned, StatusEnRoute, StatusInstalling, StatusCompleted, StatusPaid:
		return true
	}
	return false
}

// Order is a sale. CustomerID is a real foreign key resolved at creation;
// CustomerName is the denormalized display name kept for the dispatch and
// history views. PaidAmount is 0 until payment, then equals TotalAmount.
type Order struct {
	ID             string      `json:"id"`
	CustomerID     string      `json:"customer_id"`
	CustomerName   string      `json:"customer_name"`
	Address        string      `json:"address"`
	BatteryID      string      `json:"battery_id"`
	Quantity       int         `json:"quantity"`
	TechnicianID   string      `json:"technician_id,omitempty"`
	Status         OrderStatus `json:"status"`
	TotalAmount    int64       `json:"total_amount"`
	DiscountAmount int64       `json:"discount_amount"`
	PaidAmount     int64       `json:"paid_amount"`
	CreatedAt      time.Time   `json:"created_at"`
}
