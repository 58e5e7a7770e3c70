package http

import (
	"log/slog"
	"net/http"
	"time"

	"quiz-bot-service/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	feedSize     = 10
	feedInterval = 5 * time.Second
)

type feedMessage struct {
	Type    string        `json:"type"`
	Payload []domain.User `json:"payload"`
}

// LeaderboardFeed streams the current top users over a websocket: one
// snapshot on connect, then one per poll interval.
type LeaderboardFeed struct {
	ledger   Ledger
	log      *slog.Logger
	upgrader websocket.Upgrader
	interval time.Duration
}

func NewLeaderboardFeed(ledger Ledger, log *slog.Logger) *LeaderboardFeed {
	return &LeaderboardFeed{
		ledger: ledger,
		log:    log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		interval: feedInterval,
	}
}

func (f *LeaderboardFeed) Serve(c *gin.Context) {
	conn, err := f.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		f.log.Warn("ws upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	send := make(chan feedMessage, 4)
	done := make(chan struct{})
	writerDone := make(chan struct{})
	pollerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				f.log.Warn("ws write error", "err", err)
				return
			}
		}
	}()

	go func() {
		defer close(pollerDone)
		ticker := time.NewTicker(f.interval)
		defer ticker.Stop()
		for {
			top, err := f.ledger.TopN(c.Request.Context(), feedSize)
			if err != nil {
				f.log.Error("leaderboard feed", "err", err)
			} else {
				select {
				case send <- feedMessage{Type: "leaderboard", Payload: top}:
				case <-done:
					return
				}
			}
			select {
			case <-ticker.C:
			case <-done:
				return
			}
		}
	}()

	// Read loop only detects the client going away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	close(done)
	<-pollerDone
	close(send)
	<-writerDone
}
