package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"squares-pool/models"
)

// Session is the identity tuple a client keeps after login or join. It is a
// convenience cache only; every mutation re-checks ids against the store.
type Session struct {
	UserID       uint   `json:"userId"`
	GameID       uint   `json:"gameId"`
	Code         string `json:"code,omitempty"`
	IsAdmin      bool   `json:"isAdmin"`
	Name         string `json:"name"`
	SquaresToBuy int    `json:"squaresToBuy"`
}

func sessionOf(game *models.Game, user *models.User) *Session {
	return &Session{
		UserID:       user.ID,
		GameID:       game.ID,
		Code:         game.Code,
		IsAdmin:      user.IsAdmin,
		Name:         user.Name,
		SquaresToBuy: user.SquaresToBuy,
	}
}

// Login resolves a phone number to a user of the given game.
func (s *SquaresService) Login(ctx context.Context, code, phone string) (*Session, error) {
	phone = strings.TrimSpace(phone)
	if !HasPhoneDigits(phone) {
		return nil, invalidArgument("Phone number is required")
	}

	db := s.DB.WithContext(ctx)
	game, err := findGame(db, code)
	if err != nil {
		return nil, err
	}

	var user models.User
	err = db.Where("game_id = ? AND phone = ?", game.ID, NormalizePhone(phone)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoAccount
		}
		return nil, internal("login", err)
	}
	return sessionOf(game, &user), nil
}
