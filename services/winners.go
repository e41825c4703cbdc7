package services

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"squares-pool/models"
	"squares-pool/utils/logger"
)

// FilterQuarters keeps the recognized quarter tags in first-seen order and
// silently drops anything else, including repeats.
func FilterQuarters(quarters []string) []string {
	valid := make(map[string]bool, len(models.Quarters))
	for _, q := range models.Quarters {
		valid[q] = true
	}

	out := []string{}
	seen := map[string]bool{}
	for _, q := range quarters {
		if valid[q] && !seen[q] {
			seen[q] = true
			out = append(out, q)
		}
	}
	return out
}

// SetWinners replaces a square's winning quarters. Nothing ties a quarter to
// a single square; that call is left to the admin.
func (s *SquaresService) SetWinners(ctx context.Context, code string, row, col int, adminID uint, quarters []string) ([]string, error) {
	if !validCell(row, col) {
		return nil, ErrInvalidCell
	}
	winners := FilterQuarters(quarters)

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		game, err := lockGame(tx, code)
		if err != nil {
			return err
		}
		if !game.IsAdmin(adminID) {
			return ErrNotAdmin
		}
		if !game.AcceptsWinners() {
			return ErrGameNotStarted
		}

		res := tx.Model(&models.Square{}).
			Where("game_id = ? AND row_index = ? AND col_index = ?", game.ID, row, col).
			Update("winners", datatypes.JSONSlice[string](winners))
		if res.Error != nil {
			return internal("set winners", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrInvalidCell
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("winners set", "game", CanonicalCode(code), "row", row, "col", col, "winners", winners)
	s.publish(code, EventWinnerUpdated, WinnerUpdatedPayload{Row: row, Col: col, Winners: winners})
	return winners, nil
}
