package main

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorgonia/c4uct/game"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// frame is what the stream sends after every move.
type frame struct {
	Name   string        `json:"name"`
	Game   int           `json:"game"`
	Board  []game.Colour `json:"board"`
	ToMove game.Player   `json:"toMove"`
	Ended  bool          `json:"ended"`
	Winner game.Player   `json:"winner"`
}

var upgrader = websocket.Upgrader{} // use default options

// Streamer is an output encoder that broadcasts every state to the connected websocket clients.
// Slow clients miss frames rather than hold up the games.
type Streamer struct {
	sync.Mutex
	subs   map[chan []byte]struct{}
	logger zerolog.Logger
}

func NewStreamer(logger zerolog.Logger) *Streamer {
	return &Streamer{
		subs:   make(map[chan []byte]struct{}),
		logger: logger,
	}
}

func (s *Streamer) subscribe() chan []byte {
	ch := make(chan []byte, 64)
	s.Lock()
	s.subs[ch] = struct{}{}
	s.Unlock()
	return ch
}

func (s *Streamer) unsubscribe(ch chan []byte) {
	s.Lock()
	delete(s.subs, ch)
	s.Unlock()
}

// Clients returns the number of connected clients.
func (s *Streamer) Clients() int {
	s.Lock()
	defer s.Unlock()
	return len(s.subs)
}

func (s *Streamer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn().Err(err).Msg("upgrade")
		return
	}
	defer c.Close()

	ch := s.subscribe()
	defer s.unsubscribe(ch)

	// clients send nothing, but reading processes close frames and notices dropped connections
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case b := <-ch:
			if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
				s.logger.Debug().Err(err).Msg("write")
				return
			}
		case <-gone:
			return
		case <-r.Context().Done():
			return
		}
	}
}

// Encode a game
func (s *Streamer) Encode(ms game.MetaState) error {
	g := ms.State()
	f := frame{
		Name:   ms.Name(),
		Game:   ms.GameNumber(),
		Board:  g.Board(),
		ToMove: g.ToMove(),
		Ended:  g.Ended(),
	}
	if f.Ended {
		f.Winner = g.Result().Winner()
	}
	b, err := json.Marshal(f)
	if err != nil {
		return errors.WithStack(err)
	}

	s.Lock()
	defer s.Unlock()
	for ch := range s.subs {
		select {
		case ch <- b:
		default:
			s.logger.Debug().Msg("dropped frame")
		}
	}
	return nil
}

// Flush ...
func (s *Streamer) Flush() error { return nil }
