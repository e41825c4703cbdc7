package services

import (
	"context"
	"math/rand"

	"squares-pool/models"
	"squares-pool/utils/logger"
)

// Realtime event names published on the uppercase game code topic.
const (
	EventSquareUpdated  = "square-updated"
	EventWinnerUpdated  = "winner-updated"
	EventPicksSubmitted = "picks-submitted"
	EventGameUpdated    = "game-updated"
	EventUserJoined     = "user-joined"
)

// Notifier fans committed changes out to realtime subscribers. Publish must
// not block and has no failure mode the caller can observe.
type Notifier interface {
	Publish(topic, event string, payload any)
}

// Archiver stores the final board of a completed game and returns its URL.
type Archiver interface {
	Archive(ctx context.Context, game *models.Game, body []byte) (string, error)
}

type SquareUpdatedPayload struct {
	Row    int   `json:"row"`
	Col    int   `json:"col"`
	UserID *uint `json:"userId"`
}

type WinnerUpdatedPayload struct {
	Row     int      `json:"row"`
	Col     int      `json:"col"`
	Winners []string `json:"winners"`
}

type PicksSubmittedPayload struct {
	UserID uint `json:"userId"`
}

type GameUpdatedPayload struct {
	Status     string `json:"status"`
	RowNumbers []int  `json:"rowNumbers"`
	ColNumbers []int  `json:"colNumbers"`
}

type UserJoinedPayload struct {
	UserID uint   `json:"userId"`
	Name   string `json:"name"`
}

type nopNotifier struct{}

func (nopNotifier) Publish(string, string, any) {}

// publish is called only after commit; a misbehaving notifier is logged and ignored.
func (s *SquaresService) publish(code, event string, payload any) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warnw("realtime publish failed", "game", code, "event", event, "panic", r)
		}
	}()
	s.notifier.Publish(CanonicalCode(code), event, payload)
}

func randomPerm(n int) []int {
	return rand.Perm(n)
}
