package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"squares-pool/models"
)

// Cell is one entry of the board grid.
type Cell struct {
	UserID   *uint    `json:"userId"`
	UserName *string  `json:"userName"`
	Winners  []string `json:"winners"`
}

// Board is a read-only snapshot of a game's grid, keyed "row-col".
type Board struct {
	Grid            map[string]Cell `json:"grid"`
	RowNumbers      []int           `json:"rowNumbers"`
	ColNumbers      []int           `json:"colNumbers"`
	NumbersAssigned bool            `json:"numbersAssigned"`
}

// CellKey is the grid key of a square.
func CellKey(row, col int) string {
	return fmt.Sprintf("%d-%d", row, col)
}

type boardRow struct {
	RowIndex int
	ColIndex int
	UserID   *uint
	UserName *string
	Winners  datatypes.JSONSlice[string]
}

// Board returns the grid snapshot. Reads take no locks.
func (s *SquaresService) Board(ctx context.Context, code string) (*Board, error) {
	db := s.DB.WithContext(ctx)
	game, err := findGame(db, code)
	if err != nil {
		return nil, err
	}

	var rows []boardRow
	err = db.Table("squares AS s").
		Select("s.row_index, s.col_index, s.user_id, s.winners, u.name AS user_name").
		Joins("LEFT JOIN users u ON s.user_id = u.id").
		Where("s.game_id = ?", game.ID).
		Order("s.row_index, s.col_index").
		Scan(&rows).Error
	if err != nil {
		return nil, internal("load board", err)
	}

	board := &Board{
		Grid:            make(map[string]Cell, len(rows)),
		NumbersAssigned: game.NumbersAssigned,
	}
	if game.NumbersAssigned {
		board.RowNumbers = game.RowNumbers
		board.ColNumbers = game.ColNumbers
	}
	for _, r := range rows {
		winners := []string(r.Winners)
		if winners == nil {
			winners = []string{}
		}
		board.Grid[CellKey(r.RowIndex, r.ColIndex)] = Cell{UserID: r.UserID, UserName: r.UserName, Winners: winners}
	}
	return board, nil
}

// PlayerSummary is one row of the game info roster.
type PlayerSummary struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	SquaresToBuy   int    `json:"squaresToBuy"`
	SelectedCount  int    `json:"selectedCount"`
	PicksSubmitted bool   `json:"picksSubmitted"`
	IsAdmin        bool   `json:"isAdmin"`
}

// GameInfo is the game header plus availability and the roster.
type GameInfo struct {
	ID               uint            `json:"id"`
	Code             string          `json:"code"`
	Name             string          `json:"name"`
	PricePerSquare   decimal.Decimal `json:"pricePerSquare"`
	PayoutQ1         decimal.Decimal `json:"payoutQ1"`
	PayoutQ2         decimal.Decimal `json:"payoutQ2"`
	PayoutQ3         decimal.Decimal `json:"payoutQ3"`
	PayoutFinal      decimal.Decimal `json:"payoutFinal"`
	TotalPot         decimal.Decimal `json:"totalPot"`
	Status           string          `json:"status"`
	TakenSquares     int             `json:"takenSquares"`
	AvailableSquares int             `json:"availableSquares"`
	NumbersAssigned  bool            `json:"numbersAssigned"`
	RowNumbers       []int           `json:"rowNumbers"`
	ColNumbers       []int           `json:"colNumbers"`
	Users            []PlayerSummary `json:"users"`
}

// Info returns the game header, derived counts and per-player state.
func (s *SquaresService) Info(ctx context.Context, code string) (*GameInfo, error) {
	db := s.DB.WithContext(ctx)
	game, err := findGame(db, code)
	if err != nil {
		return nil, err
	}

	taken, err := TakenCount(db, game.ID)
	if err != nil {
		return nil, err
	}

	var users []models.User
	if err := db.Where("game_id = ?", game.ID).Order("id ASC").Find(&users).Error; err != nil {
		return nil, internal("load users", err)
	}

	type ownerCount struct {
		UserID uint
		Count  int
	}
	var counts []ownerCount
	err = db.Model(&models.Square{}).
		Select("user_id, COUNT(*) AS count").
		Where("game_id = ? AND user_id IS NOT NULL", game.ID).
		Group("user_id").
		Scan(&counts).Error
	if err != nil {
		return nil, internal("count squares per user", err)
	}
	perUser := make(map[uint]int, len(counts))
	for _, c := range counts {
		perUser[c.UserID] = c.Count
	}

	info := &GameInfo{
		ID:               game.ID,
		Code:             game.Code,
		Name:             game.Name,
		PricePerSquare:   game.PricePerSquare,
		PayoutQ1:         game.PayoutQ1,
		PayoutQ2:         game.PayoutQ2,
		PayoutQ3:         game.PayoutQ3,
		PayoutFinal:      game.PayoutFinal,
		TotalPot:         potTotal(game.PricePerSquare, taken),
		Status:           game.Status,
		TakenSquares:     taken,
		AvailableSquares: models.TotalSquares - taken,
		NumbersAssigned:  game.NumbersAssigned,
		Users:            make([]PlayerSummary, 0, len(users)),
	}
	if game.NumbersAssigned {
		info.RowNumbers = game.RowNumbers
		info.ColNumbers = game.ColNumbers
	}
	for _, u := range users {
		info.Users = append(info.Users, PlayerSummary{
			ID:             u.ID,
			Name:           u.Name,
			SquaresToBuy:   u.SquaresToBuy,
			SelectedCount:  perUser[u.ID],
			PicksSubmitted: u.PicksSubmitted,
			IsAdmin:        u.IsAdmin,
		})
	}
	return info, nil
}

func potTotal(price decimal.Decimal, taken int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(taken)))
}
