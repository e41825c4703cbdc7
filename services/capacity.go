package services

import (
	"gorm.io/gorm"

	"squares-pool/models"
)

// TakenCount counts owned squares in a game. Inside a transaction it sees
// the transaction's view, which is what the ledger's capacity check needs.
func TakenCount(db *gorm.DB, gameID uint) (int, error) {
	var n int64
	err := db.Model(&models.Square{}).
		Where("game_id = ? AND user_id IS NOT NULL", gameID).
		Count(&n).Error
	if err != nil {
		return 0, internal("count taken squares", err)
	}
	return int(n), nil
}

// Available is the number of unowned squares in a game.
func Available(db *gorm.DB, gameID uint) (int, error) {
	taken, err := TakenCount(db, gameID)
	if err != nil {
		return 0, err
	}
	return models.TotalSquares - taken, nil
}

// PerUserCount counts the squares one user owns.
func PerUserCount(db *gorm.DB, gameID, userID uint) (int, error) {
	var n int64
	err := db.Model(&models.Square{}).
		Where("game_id = ? AND user_id = ?", gameID, userID).
		Count(&n).Error
	if err != nil {
		return 0, internal("count user squares", err)
	}
	return int(n), nil
}

// canClaim: a player may never hold as many squares as currently remain
// unclaimed pool-wide. With nothing available nobody can claim.
func canClaim(held, available int) bool {
	return held < available
}
