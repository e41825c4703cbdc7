package services

import (
	"context"
	"crypto/rand"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"squares-pool/models"
	"squares-pool/utils/logger"
)

const (
	codeLength   = 6
	codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789" // no 0/O or 1/I
	codeAttempts = 5
)

// CreateGameInput describes a new pool and its admin.
type CreateGameInput struct {
	Name           string
	AdminName      string
	AdminPhone     string
	PricePerSquare decimal.Decimal
	PayoutQ1       decimal.Decimal
	PayoutQ2       decimal.Decimal
	PayoutQ3       decimal.Decimal
	PayoutFinal    decimal.Decimal
}

func (in CreateGameInput) validate() error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.AdminName) == "" || !HasPhoneDigits(in.AdminPhone) {
		return invalidArgument("name, adminName and adminPhone are required")
	}
	for _, d := range []decimal.Decimal{in.PricePerSquare, in.PayoutQ1, in.PayoutQ2, in.PayoutQ3, in.PayoutFinal} {
		if d.IsNegative() {
			return invalidArgument("Amounts cannot be negative")
		}
	}
	return nil
}

// JoinInput registers a player in a pending game.
type JoinInput struct {
	Name         string
	Phone        string
	SquaresToBuy int
}

func generateCode() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}

// CreateGame creates a pending game, its admin user and all 100 squares in one transaction.
func (s *SquaresService) CreateGame(ctx context.Context, in CreateGameInput) (*Session, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < codeAttempts; attempt++ {
		code, err := generateCode()
		if err != nil {
			return nil, internal("generate code", err)
		}

		session, err := s.createGame(ctx, code, in)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			logger.Debugf("game code %s collided, retrying", code)
			continue
		}
		return session, err
	}
	return nil, internal("create game", errors.New("could not allocate a unique game code"))
}

func (s *SquaresService) createGame(ctx context.Context, code string, in CreateGameInput) (*Session, error) {
	game := &models.Game{
		Code:           code,
		Name:           strings.TrimSpace(in.Name),
		Status:         models.GameStatusPending,
		PricePerSquare: in.PricePerSquare,
		PayoutQ1:       in.PayoutQ1,
		PayoutQ2:       in.PayoutQ2,
		PayoutQ3:       in.PayoutQ3,
		PayoutFinal:    in.PayoutFinal,
	}
	admin := &models.User{
		Name:    strings.TrimSpace(in.AdminName),
		Phone:   NormalizePhone(in.AdminPhone),
		IsAdmin: true,
	}

	err := s.DB.WithContext(ctx).Session(&gorm.Session{TranslateError: true}).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(game).Error; err != nil {
			return err
		}

		admin.GameID = game.ID
		if err := tx.Create(admin).Error; err != nil {
			return err
		}
		if err := tx.Model(game).Update("admin_id", admin.ID).Error; err != nil {
			return err
		}
		game.AdminID = &admin.ID

		squares := make([]models.Square, 0, models.TotalSquares)
		for r := 0; r < models.GridSize; r++ {
			for c := 0; c < models.GridSize; c++ {
				squares = append(squares, models.Square{GameID: game.ID, RowIndex: r, ColIndex: c})
			}
		}
		return tx.Create(&squares).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		return nil, internal("create game", err)
	}

	logger.Infow("game created", "game", game.Code, "admin_id", admin.ID)
	return sessionOf(game, admin), nil
}

// Join adds a non-admin player to a pending game.
func (s *SquaresService) Join(ctx context.Context, code string, in JoinInput) (*Session, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || !HasPhoneDigits(in.Phone) {
		return nil, invalidArgument("name and phone are required")
	}
	if in.SquaresToBuy < 0 {
		return nil, invalidArgument("squaresToBuy cannot be negative")
	}
	phone := NormalizePhone(in.Phone)

	var joined *Session
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		game, err := lockGame(tx, code)
		if err != nil {
			return err
		}
		if !game.IsPending() {
			return ErrJoinClosed
		}

		var existing int64
		if err := tx.Model(&models.User{}).Where("game_id = ? AND phone = ?", game.ID, phone).Count(&existing).Error; err != nil {
			return internal("check phone", err)
		}
		if existing > 0 {
			return ErrPhoneTaken
		}

		available, err := Available(tx, game.ID)
		if err != nil {
			return err
		}
		if in.SquaresToBuy > available {
			return ErrTooManyToBuy
		}

		user := &models.User{
			GameID:       game.ID,
			Name:         name,
			Phone:        phone,
			SquaresToBuy: in.SquaresToBuy,
		}
		if err := tx.Create(user).Error; err != nil {
			return internal("create user", err)
		}
		joined = sessionOf(game, user)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("player joined", "game", joined.Code, "user_id", joined.UserID)
	s.publish(code, EventUserJoined, UserJoinedPayload{UserID: joined.UserID, Name: joined.Name})
	return joined, nil
}
