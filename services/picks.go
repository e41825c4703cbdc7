package services

import (
	"context"

	"gorm.io/gorm"

	"squares-pool/models"
	"squares-pool/utils/logger"
)

// SubmitPicks locks in a player's selection. It is only granted when the
// number of squares held equals the player's squares-to-buy target.
func (s *SquaresService) SubmitPicks(ctx context.Context, code string, userID uint) error {
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

		held, err := PerUserCount(tx, game.ID, user.ID)
		if err != nil {
			return err
		}
		if held != user.SquaresToBuy {
			return ErrPicksMismatch
		}

		err = tx.Model(&models.User{}).
			Where("id = ? AND game_id = ?", user.ID, game.ID).
			Update("picks_submitted", true).Error
		if err != nil {
			return internal("submit picks", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Infow("picks submitted", "game", CanonicalCode(code), "user_id", userID)
	s.publish(code, EventPicksSubmitted, PicksSubmittedPayload{UserID: userID})
	return nil
}
