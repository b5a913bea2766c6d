package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// ColumnType is the closed set of data types a column may declare. The stored
// cell value is always text; the type governs how that text is interpreted.
type ColumnType string

const (
	ColumnText     ColumnType = "text"
	ColumnNotes    ColumnType = "notes"
	ColumnNumber   ColumnType = "number"
	ColumnCurrency ColumnType = "currency"
	ColumnDate     ColumnType = "date"
	ColumnSelect   ColumnType = "select"
)

func (t ColumnType) Valid() bool {
	switch t {
	case ColumnText, ColumnNotes, ColumnNumber, ColumnCurrency, ColumnDate, ColumnSelect:
		return true
	}
	return false
}

// Numeric reports whether values under this type can seed a booking's
// snapshot price.
func (t ColumnType) Numeric() bool {
	return t == ColumnNumber || t == ColumnCurrency
}

// Textual reports whether values under this type can seed a booking's
// snapshot description.
func (t ColumnType) Textual() bool {
	return t == ColumnText || t == ColumnNotes
}

type Column struct {
	ID                 int64          `json:"id" gorm:"primaryKey"`
	TableID            int64          `json:"table_id" gorm:"index"`
	Name               string         `json:"name" validate:"required"`
	DataType           ColumnType     `json:"data_type" validate:"required"`
	Position           int            `json:"position"`
	VisibleOnFrontend  bool           `json:"visible_on_frontend"`
	RequiredForBooking bool           `json:"required_for_booking"`
	Config             datatypes.JSON `json:"config,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

func (Column) TableName() string { return "rate_columns" }

// SelectOptions returns the configured options for a select column.
func (c Column) SelectOptions() []string {
	if len(c.Config) == 0 {
		return nil
	}
	var cfg struct {
		Options []string `json:"options"`
	}
	if err := json.Unmarshal(c.Config, &cfg); err != nil {
		return nil
	}
	return cfg.Options
}

// CoerceValue interprets a raw cell value under the column's declared type.
// This is advisory, for display: the server never rejects a cell write on
// coercion failure.
func (c Column) CoerceValue(raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	switch c.DataType {
	case ColumnText, ColumnNotes:
		return raw, nil
	case ColumnNumber, ColumnCurrency:
		return ParseAmount(raw)
	case ColumnDate:
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", raw, err)
		}
		return t, nil
	case ColumnSelect:
		opts := c.SelectOptions()
		if len(opts) == 0 {
			return raw, nil
		}
		for _, o := range opts {
			if o == raw {
				return raw, nil
			}
		}
		return nil, fmt.Errorf("value %q is not a configured option", raw)
	default:
		return nil, fmt.Errorf("unknown column type %q", c.DataType)
	}
}

// ParseAmount parses a number or currency cell value. Currency symbols and
// thousands separators are tolerated so "$1,200.50" and "40" both parse.
func ParseAmount(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, "$€£₸ ")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	return v, nil
}
