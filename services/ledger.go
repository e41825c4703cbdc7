package services

import (
	"context"

	"gorm.io/gorm"

	"squares-pool/models"
	"squares-pool/utils/logger"
)

// Claim gives an available square to a player. The player's squares-to-buy
// target grows when the new count passes it, and their pick lock reopens.
func (s *SquaresService) Claim(ctx context.Context, code string, row, col int, userID uint) error {
	if !validCell(row, col) {
		return ErrInvalidCell
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		game, err := lockGame(tx, code)
		if err != nil {
			return err
		}
		user, err := findUser(tx, game.ID, userID)
		if err != nil {
			return err
		}
		if !game.IsPending() {
			return ErrGameNotPending
		}

		sq, err := findSquare(tx, game.ID, row, col)
		if err != nil {
			return err
		}
		if sq.UserID != nil {
			return ErrSquareTaken
		}

		held, err := PerUserCount(tx, game.ID, user.ID)
		if err != nil {
			return err
		}
		available, err := Available(tx, game.ID)
		if err != nil {
			return err
		}
		if !canClaim(held, available) {
			return ErrPoolExhausted
		}

		// Only claim if still unowned.
		res := tx.Model(&models.Square{}).
			Where("id = ? AND user_id IS NULL", sq.ID).
			Update("user_id", user.ID)
		if res.Error != nil {
			return internal("claim square", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrSquareTaken
		}

		return reopenPicks(tx, user, targetAfterClaim(held+1, user.SquaresToBuy))
	})
	if err != nil {
		return err
	}

	logger.Infow("square claimed", "game", CanonicalCode(code), "row", row, "col", col, "user_id", userID)
	s.publish(code, EventSquareUpdated, SquareUpdatedPayload{Row: row, Col: col, UserID: &userID})
	return nil
}

// Release returns a player's own square to the pool. The target shrinks to
// the new count, but never to zero, and the pick lock reopens.
func (s *SquaresService) Release(ctx context.Context, code string, row, col int, userID uint) error {
	if !validCell(row, col) {
		return ErrInvalidCell
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		game, err := lockGame(tx, code)
		if err != nil {
			return err
		}
		user, err := findUser(tx, game.ID, userID)
		if err != nil {
			return err
		}
		if !game.IsPending() {
			return ErrGameNotPending
		}

		sq, err := findSquare(tx, game.ID, row, col)
		if err != nil {
			return err
		}
		if sq.UserID == nil || *sq.UserID != user.ID {
			return ErrNotSquareOwner
		}

		held, err := PerUserCount(tx, game.ID, user.ID)
		if err != nil {
			return err
		}

		// Only release if still owned by the requester.
		res := tx.Model(&models.Square{}).
			Where("id = ? AND user_id = ?", sq.ID, user.ID).
			Update("user_id", nil)
		if res.Error != nil {
			return internal("release square", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotSquareOwner
		}

		return reopenPicks(tx, user, targetAfterRelease(held-1, user.SquaresToBuy))
	})
	if err != nil {
		return err
	}

	logger.Infow("square released", "game", CanonicalCode(code), "row", row, "col", col, "user_id", userID)
	s.publish(code, EventSquareUpdated, SquareUpdatedPayload{Row: row, Col: col})
	return nil
}

// Reassign is the admin override: it sets or clears a square's owner with no
// capacity or ownership checks and leaves every player's target and pick lock alone.
func (s *SquaresService) Reassign(ctx context.Context, code string, row, col int, adminID uint, target *uint) error {
	if !validCell(row, col) {
		return ErrInvalidCell
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		game, err := lockGame(tx, code)
		if err != nil {
			return err
		}
		if !game.IsAdmin(adminID) {
			return ErrNotAdmin
		}
		if !game.IsPending() {
			return ErrGameNotPending
		}
		if target != nil {
			if _, err := findUser(tx, game.ID, *target); err != nil {
				if KindOf(err) == KindNotFound {
					return ErrInvalidAssignee
				}
				return err
			}
		}

		res := tx.Model(&models.Square{}).
			Where("game_id = ? AND row_index = ? AND col_index = ?", game.ID, row, col).
			Update("user_id", target)
		if res.Error != nil {
			return internal("reassign square", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrInvalidCell
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Infow("square reassigned", "game", CanonicalCode(code), "row", row, "col", col, "target", target)
	s.publish(code, EventSquareUpdated, SquareUpdatedPayload{Row: row, Col: col, UserID: target})
	return nil
}

// reopenPicks clears the pick lock and stores the adjusted target.
func reopenPicks(tx *gorm.DB, user *models.User, target int) error {
	updates := map[string]interface{}{"picks_submitted": false}
	if target != user.SquaresToBuy {
		updates["squares_to_buy"] = target
	}
	err := tx.Model(&models.User{}).
		Where("id = ? AND game_id = ?", user.ID, user.GameID).
		Updates(updates).Error
	if err != nil {
		return internal("update user picks", err)
	}
	return nil
}

// targetAfterClaim raises the target to the new count when the count passes it.
func targetAfterClaim(count, target int) int {
	if count > target {
		return count
	}
	return target
}

// targetAfterRelease lowers the target to the new count, but leaves it as is
// when the count drops to zero.
func targetAfterRelease(count, target int) int {
	if count >= 1 && count < target {
		return count
	}
	return target
}
