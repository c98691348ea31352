package sqlite

import (
	"database/sql"
	"errors"

	"github.com/voltdesk/voltdesk/internal/domain"
)

// ─── Customer Operations ────────────────────────────────────────────────────

const customerColumns = `id, name, type, tier, phone, total_debt, credit_limit,
	monthly_quantity, last_order_at, debt_since`

// UpsertCustomer inserts or replaces a customer by id.
func (db *DB) UpsertCustomer(c domain.Customer) error {
	return upsertCustomer(db.db, c)
}

// upsertCustomer works on either *sql.DB or *sql.Tx.
func upsertCustomer(e execer, c domain.Customer) error {
	_, err := e.Exec(`
		INSERT INTO customers (id, name, type, tier, phone, total_debt,
			credit_limit, monthly_quantity, last_order_at, debt_since)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name             = excluded.name,
			type             = excluded.type,
			tier             = excluded.tier,
			phone            = excluded.phone,
			total_debt       = excluded.total_debt,
			credit_limit     = excluded.credit_limit,
			monthly_quantity = excluded.monthly_quantity,
			last_order_at    = excluded.last_order_at,
			debt_since       = excluded.debt_since
	`, c.ID, c.Name, string(c.Type), string(c.Tier), c.Phone, c.TotalDebt,
		c.CreditLimit, c.MonthlyQuantity, encodeTime(c.LastOrderAt), encodeNullTime(c.DebtSince))
	return err
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// GetCustomer returns the customer or (nil, nil) when absent.
func (db *DB) GetCustomer(id string) (*domain.Customer, error) {
	row := db.db.QueryRow(`SELECT `+customerColumns+` FROM customers WHERE id = ?`, id)
	return scanCustomer(row)
}

// FindCustomerByName returns the first customer with the given display
// name, or (nil, nil). Used for the retail upsert-by-name path.
func (db *DB) FindCustomerByName(name string) (*domain.Customer, error) {
	row := db.db.QueryRow(`
		SELECT `+customerColumns+` FROM customers WHERE name = ? ORDER BY rowid LIMIT 1
	`, name)
	return scanCustomer(row)
}

// ListCustomers returns all customers ordered by name.
func (db *DB) ListCustomers() ([]domain.Customer, error) {
	rows, err := db.db.Query(`SELECT ` + customerColumns + ` FROM customers ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		if c != nil {
			out = append(out, *c)
		}
	}
	return out, rows.Err()
}

func scanCustomer(row rowScanner) (*domain.Customer, error) {
	var c domain.Customer
	var ctype, tier, lastOrder string
	var debtSince sql.NullString
	err := row.Scan(&c.ID, &c.Name, &ctype, &tier, &c.Phone, &c.TotalDebt,
		&c.CreditLimit, &c.MonthlyQuantity, &lastOrder, &debtSince)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	c.Type = domain.CustomerType(ctype)
	c.Tier = domain.CustomerTier(tier)
	c.LastOrderAt = decodeTime(lastOrder)
	c.DebtSince = decodeNullTime(debtSince)
	return &c, nil
}
