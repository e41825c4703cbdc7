package models

import "gorm.io/datatypes"

// Quarter tags a square can win.
const (
	QuarterQ1    = "Q1"
	QuarterQ2    = "Q2"
	QuarterQ3    = "Q3"
	QuarterFinal = "Final"
)

// Quarters lists the valid quarter tags in payout order.
var Quarters = []string{QuarterQ1, QuarterQ2, QuarterQ3, QuarterFinal}

// Square is one cell of a game's grid. UserID nil means available.
type Square struct {
	ID       uint                        `json:"id" gorm:"primaryKey"`
	GameID   uint                        `json:"game_id" gorm:"not null;uniqueIndex:idx_squares_cell;index:idx_squares_owner"`
	RowIndex int                         `json:"row_index" gorm:"not null;uniqueIndex:idx_squares_cell;check:row_index >= 0 AND row_index <= 9"`
	ColIndex int                         `json:"col_index" gorm:"not null;uniqueIndex:idx_squares_cell;check:col_index >= 0 AND col_index <= 9"`
	UserID   *uint                       `json:"user_id" gorm:"index:idx_squares_owner"`
	Winners  datatypes.JSONSlice[string] `json:"winners"`

	User *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`

	Timestamps
}
