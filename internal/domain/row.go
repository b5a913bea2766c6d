package domain

import "time"

type Row struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	TableID   int64     `json:"table_id" gorm:"index"`
	Position  int       `json:"position"`
	Bookable  bool      `json:"bookable"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Cells []Cell `json:"cells,omitempty" gorm:"foreignKey:RowID"`
}

func (Row) TableName() string { return "rate_rows" }

// Cell stores the single textual value for one (row, column) pair.
// The unique index makes writes for an existing pair an update, never a
// duplicate.
type Cell struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	RowID     int64     `json:"row_id" gorm:"uniqueIndex:idx_cells_row_column"`
	ColumnID  int64     `json:"column_id" gorm:"uniqueIndex:idx_cells_row_column"`
	Value     string    `json:"value" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Column *Column `json:"column,omitempty" gorm:"foreignKey:ColumnID"`
}
