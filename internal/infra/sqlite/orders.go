package sqlite

import (
	"database/sql"
	"errors"

	"github.com/voltdesk/voltdesk/internal/domain"
)

// ─── Order Operations ───────────────────────────────────────────────────────

const orderColumns = `id, customer_id, customer_name, address, battery_id,
	quantity, technician_id, status, total_amount, discount_amount,
	paid_amount, created_at`

// GetOrder returns the order or (nil, nil) when absent.
func (db *DB) GetOrder(id string) (*domain.Order, error) {
	row := db.db.QueryRow(`SELECT `+orderColumns+` FROM orders WHERE id = ?`, id)
	return scanOrder(row)
}

// ListOrders returns all orders, newest first.
func (db *DB) ListOrders() ([]domain.Order, error) {
	rows, err := db.db.Query(`SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		if o != nil {
			out = append(out, *o)
		}
	}
	return out, rows.Err()
}

// UpdateOrder rewrites a single order row (status advances, technician
// binding). Missing ids update zero rows, which the callers treat as a
// no-op.
func (db *DB) UpdateOrder(o domain.Order) error {
	return updateOrder(db.db, o)
}

func updateOrder(e execer, o domain.Order) error {
	_, err := e.Exec(`
		UPDATE orders SET
			customer_id     = ?,
			customer_name   = ?,
			address         = ?,
			battery_id      = ?,
			quantity        = ?,
			technician_id   = ?,
			status          = ?,
			total_amount    = ?,
			discount_amount = ?,
			paid_amount     = ?
		WHERE id = ?
	`, o.CustomerID, o.CustomerName, o.Address, o.BatteryID, o.Quantity,
		o.TechnicianID, string(o.Status), o.TotalAmount, o.DiscountAmount,
		o.PaidAmount, o.ID)
	return err
}

// InsertOrder writes a new order, decrements battery stock by the order
// quantity and, when c is non-nil, upserts the customer — one transaction.
// Stock may go negative; an unknown battery id decrements nothing.
func (db *DB) InsertOrder(o domain.Order, c *domain.Customer) error {
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO orders (id, customer_id, customer_name, address, battery_id,
			quantity, technician_id, status, total_amount, discount_amount,
			paid_amount, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, o.ID, o.CustomerID, o.CustomerName, o.Address, o.BatteryID, o.Quantity,
		o.TechnicianID, string(o.Status), o.TotalAmount, o.DiscountAmount,
		o.PaidAmount, encodeTime(o.CreatedAt)); err != nil {
		return err
	}

	if _, err := tx.Exec(`
		UPDATE batteries SET stock = stock - ? WHERE id = ?
	`, o.Quantity, o.BatteryID); err != nil {
		return err
	}

	if c != nil {
		if err := upsertCustomer(tx, *c); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// SettlePayment writes the paid order and, when c is non-nil, the settled
// customer ledger in one transaction.
func (db *DB) SettlePayment(o domain.Order, c *domain.Customer) error {
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := updateOrder(tx, o); err != nil {
		return err
	}
	if c != nil {
		if err := upsertCustomer(tx, *c); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var o domain.Order
	var status, createdAt string
	err := row.Scan(&o.ID, &o.CustomerID, &o.CustomerName, &o.Address,
		&o.BatteryID, &o.Quantity, &o.TechnicianID, &status, &o.TotalAmount,
		&o.DiscountAmount, &o.PaidAmount, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	o.Status = domain.OrderStatus(status)
	o.CreatedAt = decodeTime(createdAt)
	return &o, nil
}
