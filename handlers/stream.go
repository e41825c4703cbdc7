package handlers

import (
	"bufio"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"squares-pool/broadcast"
	"squares-pool/services"
	"squares-pool/utils/logger"
)

const keepaliveFrame = ":\n\n"

// Stream pushes a game's change events as Server-Sent Events. Delivery is
// best-effort; clients refetch the board after reconnecting.
func (h *SquaresHandler) Stream(c *fiber.Ctx) error {
	game, err := h.svc.GameByCode(c.UserContext(), c.Params("code"))
	if err != nil {
		return writeError(c, err)
	}
	topic := services.CanonicalCode(game.Code)

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("X-Accel-Buffering", "no") // nginx

	sub := h.hub.Subscribe(topic)
	logger.Debugf("stream %s opened for %s", sub.ID, topic)

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer func() {
			h.hub.Unsubscribe(sub)
			logger.Debugf("stream %s closed for %s", sub.ID, topic)
		}()
		pumpEvents(w, sub)
	})

	return nil
}

// writeFrame renders one message as an SSE frame. Keepalives are comments.
func writeFrame(w io.Writer, msg broadcast.Message) error {
	if msg.Event == "" {
		_, err := io.WriteString(w, keepaliveFrame)
		return err
	}
	_, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.Event, msg.Data)
	return err
}

// pumpEvents writes an opening keepalive, then every message of sub until
// its channel closes or a flush fails.
func pumpEvents(w *bufio.Writer, sub *broadcast.Subscription) {
	w.WriteString(keepaliveFrame)
	if err := w.Flush(); err != nil {
		return
	}

	for msg := range sub.C {
		if err := writeFrame(w, msg); err != nil {
			return
		}
		// A failed flush means the client went away.
		if err := w.Flush(); err != nil {
			return
		}
	}
}
