package services

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"squares-pool/models"
	"squares-pool/utils/logger"
)

// archiveTimeout bounds the best-effort results upload after completion.
const archiveTimeout = 30 * time.Second

// transitions lists the only legal lifecycle moves.
var transitions = map[string]string{
	models.GameStatusPending: models.GameStatusStarted,
	models.GameStatusStarted: models.GameStatusCompleted,
}

func canTransition(from, to string) bool {
	next, ok := transitions[from]
	return ok && next == to
}

// digitPermutation returns a shuffle of 0-9 drawn from perm.
func digitPermutation(perm func(int) []int) []int {
	digits := perm(models.GridSize)
	out := make([]int, len(digits))
	copy(out, digits)
	return out
}

// StartGame freezes the grid and assigns the row and column digits, both
// in the same update as the status change.
func (s *SquaresService) StartGame(ctx context.Context, code string, adminID uint) (*models.Game, error) {
	var started *models.Game
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		game, err := lockGame(tx, code)
		if err != nil {
			return err
		}
		if !game.IsAdmin(adminID) {
			return ErrNotAdmin
		}
		if !canTransition(game.Status, models.GameStatusStarted) || game.NumbersAssigned {
			return ErrGameNotPending
		}

		rows := datatypes.JSONSlice[int](digitPermutation(s.perm))
		cols := datatypes.JSONSlice[int](digitPermutation(s.perm))
		err = tx.Model(&models.Game{}).
			Where("id = ? AND status = ?", game.ID, models.GameStatusPending).
			Updates(map[string]interface{}{
				"status":           models.GameStatusStarted,
				"numbers_assigned": true,
				"row_numbers":      rows,
				"col_numbers":      cols,
			}).Error
		if err != nil {
			return internal("start game", err)
		}

		game.Status = models.GameStatusStarted
		game.NumbersAssigned = true
		game.RowNumbers = rows
		game.ColNumbers = cols
		started = game
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("game started", "game", started.Code, "rows", []int(started.RowNumbers), "cols", []int(started.ColNumbers))
	s.publish(code, EventGameUpdated, GameUpdatedPayload{
		Status:     started.Status,
		RowNumbers: started.RowNumbers,
		ColNumbers: started.ColNumbers,
	})
	return started, nil
}

// CompleteGame finalizes a started game and archives its board in the background.
func (s *SquaresService) CompleteGame(ctx context.Context, code string, adminID uint) (*models.Game, error) {
	var completed *models.Game
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		game, err := lockGame(tx, code)
		if err != nil {
			return err
		}
		if !game.IsAdmin(adminID) {
			return ErrNotAdmin
		}
		if !canTransition(game.Status, models.GameStatusCompleted) {
			return ErrCannotComplete
		}

		err = tx.Model(&models.Game{}).
			Where("id = ? AND status = ?", game.ID, models.GameStatusStarted).
			Update("status", models.GameStatusCompleted).Error
		if err != nil {
			return internal("complete game", err)
		}
		game.Status = models.GameStatusCompleted
		completed = game
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("game completed", "game", completed.Code)
	s.publish(code, EventGameUpdated, GameUpdatedPayload{
		Status:     completed.Status,
		RowNumbers: completed.RowNumbers,
		ColNumbers: completed.ColNumbers,
	})

	if s.archiver != nil {
		go s.archiveResults(completed)
	}
	return completed, nil
}

// ResultsSnapshot is the archived form of a finished game.
type ResultsSnapshot struct {
	Info       *GameInfo `json:"info"`
	Board      *Board    `json:"board"`
	ArchivedAt time.Time `json:"archivedAt"`
}

func (s *SquaresService) archiveResults(game *models.Game) {
	ctx, cancel := context.WithTimeout(context.Background(), archiveTimeout)
	defer cancel()

	info, err := s.Info(ctx, game.Code)
	if err != nil {
		logger.Warnw("archive: load info failed", "game", game.Code, "error", err)
		return
	}
	board, err := s.Board(ctx, game.Code)
	if err != nil {
		logger.Warnw("archive: load board failed", "game", game.Code, "error", err)
		return
	}
	body, err := json.Marshal(ResultsSnapshot{Info: info, Board: board, ArchivedAt: time.Now().UTC()})
	if err != nil {
		logger.Warnw("archive: encode failed", "game", game.Code, "error", err)
		return
	}

	url, err := s.archiver.Archive(ctx, game, body)
	if err != nil {
		logger.Warnw("archive: upload failed", "game", game.Code, "error", err)
		return
	}
	logger.Infow("results archived", "game", game.Code, "url", url)
}
