package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"squares-pool/models"
)

// SquaresService is the square-claim and game-state engine. Every mutation
// runs in one transaction holding the game row lock, commits, then notifies.
type SquaresService struct {
	DB       *gorm.DB
	notifier Notifier
	archiver Archiver
	perm     func(n int) []int
}

// NewSquaresService wires the engine. A nil notifier or archiver disables that side effect.
func NewSquaresService(db *gorm.DB, notifier Notifier, archiver Archiver) *SquaresService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &SquaresService{
		DB:       db,
		notifier: notifier,
		archiver: archiver,
		perm:     randomPerm,
	}
}

// CanonicalCode is the stored form of a game code.
func CanonicalCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func validCell(row, col int) bool {
	return row >= 0 && row < models.GridSize && col >= 0 && col < models.GridSize
}

// lockGame loads the game and holds its row lock until the transaction ends.
// Holding it serializes every grid mutation of one game, so the capacity
// check and the write that follows observe the same state.
func lockGame(tx *gorm.DB, code string) (*models.Game, error) {
	var game models.Game
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("code = ?", CanonicalCode(code)).
		First(&game).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, internal("lock game", err)
	}
	return &game, nil
}

// GameByCode loads a game without locking it.
func (s *SquaresService) GameByCode(ctx context.Context, code string) (*models.Game, error) {
	return findGame(s.DB.WithContext(ctx), code)
}

func findGame(db *gorm.DB, code string) (*models.Game, error) {
	var game models.Game
	if err := db.Where("code = ?", CanonicalCode(code)).First(&game).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, internal("find game", err)
	}
	return &game, nil
}

func findUser(db *gorm.DB, gameID, userID uint) (*models.User, error) {
	var user models.User
	if err := db.Where("id = ? AND game_id = ?", userID, gameID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, internal("find user", err)
	}
	return &user, nil
}

func findSquare(db *gorm.DB, gameID uint, row, col int) (*models.Square, error) {
	var sq models.Square
	err := db.Where("game_id = ? AND row_index = ? AND col_index = ?", gameID, row, col).First(&sq).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCell
		}
		return nil, internal("find square", err)
	}
	return &sq, nil
}
