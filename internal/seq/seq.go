// Package seq allocates human-readable sequential identifiers.
//
// Each identifier class owns one row in id_sequences. Next advances that row
// inside the caller's transaction, so the row lock serializes concurrent
// allocators and a rollback returns the value to the pool.
package seq

import (
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"airline-ops-backend/internal/access"
	"airline-ops-backend/internal/model"
)

// Class describes one identifier space.
type Class struct {
	Name   string
	Table  string
	Filter string // optional WHERE clause used when seeding from existing rows
	Args   []any
	Width  int
	Prefix string
}

var (
	Reservation = Class{Name: "reservation", Table: "reservations", Width: 4, Prefix: "R"}
	Repair      = Class{Name: "repair", Table: "repairs"}
	Request     = Class{Name: "request", Table: "maintenance_requests"}
	Technician  = Class{Name: "technician", Table: "users", Filter: "role = ?", Args: []any{access.RoleTechnician}, Width: 3, Prefix: "T"}
	Pilot       = Class{Name: "pilot", Table: "users", Filter: "role = ?", Args: []any{access.RolePilot}, Width: 3, Prefix: "P"}
	Customer    = Class{Name: "customer", Table: "users", Filter: "role = ?", Args: []any{access.RoleCustomer}}
)

// ForRole returns the identifier class for role-scoped IDs. Management has none.
func ForRole(role access.Role) (Class, bool) {
	switch role {
	case access.RoleTechnician:
		return Technician, true
	case access.RolePilot:
		return Pilot, true
	case access.RoleCustomer:
		return Customer, true
	}
	return Class{}, false
}

// Format renders n as an identifier of this class.
func (c Class) Format(n int64) string {
	return Format(n, c.Width, c.Prefix)
}

// Format left-pads n with zeros to width and prepends prefix.
// Values wider than width are rendered unpadded.
func Format(n int64, width int, prefix string) string {
	s := strconv.FormatInt(n, 10)
	if pad := width - len(s); pad > 0 {
		s = strings.Repeat("0", pad) + s
	}
	return prefix + s
}

// Next returns the next value for c. tx must be an open transaction; the
// caller commits or rolls back together with the dependent insert.
func Next(tx *gorm.DB, c Class) (int64, error) {
	bumped, err := bump(tx, c.Name)
	if err != nil {
		return 0, err
	}
	if !bumped {
		if err := seed(tx, c); err != nil {
			return 0, err
		}
		if bumped, err = bump(tx, c.Name); err != nil {
			return 0, err
		}
		if !bumped {
			return 0, fmt.Errorf("sequence %s: counter row missing after seed", c.Name)
		}
	}

	var row model.IDSequence
	if err := tx.Where("name = ?", c.Name).Take(&row).Error; err != nil {
		return 0, fmt.Errorf("sequence %s: read back: %w", c.Name, err)
	}
	return row.Value, nil
}

// NextID is Next followed by Format.
func NextID(tx *gorm.DB, c Class) (string, error) {
	n, err := Next(tx, c)
	if err != nil {
		return "", err
	}
	return c.Format(n), nil
}

func bump(tx *gorm.DB, name string) (bool, error) {
	res := tx.Model(&model.IDSequence{}).
		Where("name = ?", name).
		UpdateColumn("value", gorm.Expr("value + ?", 1))
	if res.Error != nil {
		return false, fmt.Errorf("sequence %s: advance: %w", name, res.Error)
	}
	return res.RowsAffected == 1, nil
}

// seed creates the counter row starting from the number of rows the class
// already has, so existing data continues at count+1.
func seed(tx *gorm.DB, c Class) error {
	var count int64
	q := tx.Table(c.Table)
	if c.Filter != "" {
		q = q.Where(c.Filter, c.Args...)
	}
	if err := q.Count(&count).Error; err != nil {
		return fmt.Errorf("sequence %s: count %s: %w", c.Name, c.Table, err)
	}

	err := tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.IDSequence{Name: c.Name, Value: count}).Error
	if err != nil {
		return fmt.Errorf("sequence %s: seed: %w", c.Name, err)
	}
	return nil
}
