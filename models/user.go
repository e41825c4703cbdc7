package models

// User is a participant of exactly one game. The same phone number in two
// games yields two unrelated users.
type User struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	GameID         uint   `json:"game_id" gorm:"not null;uniqueIndex:idx_users_game_phone"`
	Name           string `json:"name" gorm:"not null"`
	Phone          string `json:"-" gorm:"type:varchar(32);not null;uniqueIndex:idx_users_game_phone"` // normalized
	IsAdmin        bool   `json:"is_admin" gorm:"not null;default:false"`
	SquaresToBuy   int    `json:"squares_to_buy" gorm:"not null;default:0"`
	PicksSubmitted bool   `json:"picks_submitted" gorm:"not null;default:false"`

	Timestamps
}
