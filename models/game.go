// models/game.go
package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	GameStatusPending   = "pending"   // squares open for selection
	GameStatusStarted   = "started"   // numbers assigned, grid frozen
	GameStatusCompleted = "completed" // terminal
)

// GridSize is the number of rows (and columns) on a board.
const GridSize = 10

// TotalSquares is the number of cells on every board.
const TotalSquares = GridSize * GridSize

// Game is one squares pool. Code is stored uppercase.
type Game struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	Code   string `json:"code" gorm:"type:varchar(16);uniqueIndex;not null"`
	Name   string `json:"name" gorm:"not null"`
	Status string `json:"status" gorm:"type:varchar(16);not null;default:'pending'"`

	// 💵 Money
	PricePerSquare decimal.Decimal `json:"price_per_square" gorm:"type:numeric(10,2);not null;default:0"`
	PayoutQ1       decimal.Decimal `json:"payout_q1" gorm:"type:numeric(10,2);not null;default:0"`
	PayoutQ2       decimal.Decimal `json:"payout_q2" gorm:"type:numeric(10,2);not null;default:0"`
	PayoutQ3       decimal.Decimal `json:"payout_q3" gorm:"type:numeric(10,2);not null;default:0"`
	PayoutFinal    decimal.Decimal `json:"payout_final" gorm:"type:numeric(10,2);not null;default:0"`

	// 🔢 Digit permutations: both nil until the game starts, then both hold 10 digits.
	NumbersAssigned bool                     `json:"numbers_assigned" gorm:"not null;default:false"`
	RowNumbers      datatypes.JSONSlice[int] `json:"row_numbers,omitempty"`
	ColNumbers      datatypes.JSONSlice[int] `json:"col_numbers,omitempty"`

	AdminID *uint `json:"admin_id,omitempty" gorm:"index"`

	Users   []User   `json:"users,omitempty" gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE"`
	Squares []Square `json:"squares,omitempty" gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE"`

	Timestamps
}

// IsPending reports whether players may still change the grid.
func (g *Game) IsPending() bool {
	return g.Status == GameStatusPending
}

// AcceptsWinners reports whether winning squares may be marked.
func (g *Game) AcceptsWinners() bool {
	return g.Status == GameStatusStarted || g.Status == GameStatusCompleted
}

// IsAdmin reports whether userID is the game's admin.
func (g *Game) IsAdmin(userID uint) bool {
	return g.AdminID != nil && *g.AdminID == userID
}
