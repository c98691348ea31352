package sqlite

import (
	"database/sql"
	"errors"

	"github.com/voltdesk/voltdesk/internal/domain"
)

// ─── Battery Operations ─────────────────────────────────────────────────────

// UpsertBattery inserts or replaces a battery by id. No bounds are
// enforced on stock or price.
func (db *DB) UpsertBattery(b domain.Battery) error {
	_, err := db.db.Exec(`
		INSERT INTO batteries (id, name, brand, capacity, stock, price, vehicle)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name     = excluded.name,
			brand    = excluded.brand,
			capacity = excluded.capacity,
			stock    = excluded.stock,
			price    = excluded.price,
			vehicle  = excluded.vehicle
	`, b.ID, b.Name, string(b.Brand), b.Capacity, b.Stock, b.Price, string(b.Vehicle))
	return err
}

// GetBattery returns the battery or (nil, nil) when absent.
func (db *DB) GetBattery(id string) (*domain.Battery, error) {
	row := db.db.QueryRow(`
		SELECT id, name, brand, capacity, stock, price, vehicle
		FROM batteries WHERE id = ?
	`, id)
	return scanBattery(row)
}

// ListBatteries returns the catalog ordered by name.
func (db *DB) ListBatteries() ([]domain.Battery, error) {
	rows, err := db.db.Query(`
		SELECT id, name, brand, capacity, stock, price, vehicle
		FROM batteries ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Battery
	for rows.Next() {
		var b domain.Battery
		var brand, vehicle string
		if err := rows.Scan(&b.ID, &b.Name, &brand, &b.Capacity, &b.Stock, &b.Price, &vehicle); err != nil {
			return nil, err
		}
		b.Brand = domain.BatteryBrand(brand)
		b.Vehicle = domain.VehicleType(vehicle)
		out = append(out, b)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBattery(row rowScanner) (*domain.Battery, error) {
	var b domain.Battery
	var brand, vehicle string
	err := row.Scan(&b.ID, &b.Name, &brand, &b.Capacity, &b.Stock, &b.Price, &vehicle)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	b.Brand = domain.BatteryBrand(brand)
	b.Vehicle = domain.VehicleType(vehicle)
	return &b, nil
}

// ─── Technician Operations ──────────────────────────────────────────────────

// UpsertTechnician inserts or replaces a roster entry by id.
func (db *DB) UpsertTechnician(t domain.Technician) error {
	_, err := db.db.Exec(`
		INSERT INTO technicians (id, name, phone, status)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name   = excluded.name,
			phone  = excluded.phone,
			status = excluded.status
	`, t.ID, t.Name, t.Phone, string(t.Status))
	return err
}

// GetTechnician returns the technician or (nil, nil) when absent.
func (db *DB) GetTechnician(id string) (*domain.Technician, error) {
	var t domain.Technician
	var status string
	err := db.db.QueryRow(`
		SELECT id, name, phone, status FROM technicians WHERE id = ?
	`, id).Scan(&t.ID, &t.Name, &t.Phone, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	t.Status = domain.TechnicianStatus(status)
	return &t, nil
}

// ListTechnicians returns the roster ordered by name.
func (db *DB) ListTechnicians() ([]domain.Technician, error) {
	rows, err := db.db.Query(`SELECT id, name, phone, status FROM technicians ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Technician
	for rows.Next() {
		var t domain.Technician
		var status string
		if err := rows.Scan(&t.ID, &t.Name, &t.Phone, &status); err != nil {
			return nil, err
		}
		t.Status = domain.TechnicianStatus(status)
		out = append(out, t)
	}
	return out, rows.Err()
}

// ─── Discount Policy Operations ─────────────────────────────────────────────

// ReplacePolicies swaps the whole policy set, preserving the given order.
func (db *DB) ReplacePolicies(ps []domain.DiscountPolicy) error {
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM discount_policies`); err != nil {
		return err
	}
	for _, p := range ps {
		if _, err := tx.Exec(`
			INSERT INTO discount_policies (min_quantity, discount_percent) VALUES (?, ?)
		`, p.MinQuantity, p.DiscountPercent); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ListPolicies returns the policy set in configured (insertion) order.
func (db *DB) ListPolicies() ([]domain.DiscountPolicy, error) {
	rows, err := db.db.Query(`
		SELECT min_quantity, discount_percent FROM discount_policies ORDER BY rowid
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.DiscountPolicy
	for rows.Next() {
		var p domain.DiscountPolicy
		if err := rows.Scan(&p.MinQuantity, &p.DiscountPercent); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
