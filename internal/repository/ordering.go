package repository

import (
	"gorm.io/gorm"
)

// PositionUpdate is one (id, newPosition) pair of a bulk reorder batch.
type PositionUpdate struct {
	ID       int64 `json:"id" binding:"required"`
	Position int   `json:"position"`
}

// nextPosition places a new sibling after every existing one within the
// parent scope: max(position)+1, or 0 for the first child.
func nextPosition(tx *gorm.DB, table, parentColumn string, parentID int64) (int, error) {
	var next int
	err := tx.Table(table).
		Select("COALESCE(MAX(position) + 1, 0)").
		Where(parentColumn+" = ?", parentID).
		Scan(&next).Error
	return next, err
}

// applyReorder updates sibling positions as one batch. The caller has already
// verified ownership of the parent; here we only refuse ids that are not
// siblings under it, which rolls the whole batch back.
func applyReorder(tx *gorm.DB, table, parentColumn string, parentID int64, updates []PositionUpdate) error {
	ids := make([]int64, 0, len(updates))
	for _, u := range updates {
		ids = append(ids, u.ID)
	}

	var cnt int64
	err := tx.Table(table).
		Where("id IN ? AND "+parentColumn+" = ?", ids, parentID).
		Count(&cnt).Error
	if err != nil {
		return err
	}
	if cnt != int64(len(ids)) {
		return gorm.ErrRecordNotFound
	}

	for _, u := range updates {
		err := tx.Table(table).
			Where("id = ?", u.ID).
			Update("position", u.Position).Error
		if err != nil {
			return err
		}
	}
	return nil
}
