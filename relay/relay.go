// This file is part of Chimeraboy.
//
// Chimeraboy is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Chimeraboy is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Chimeraboy.  If not, see <https://www.gnu.org/licenses/>.

// Package relay exposes the session's notifications to external observers
// over a websocket. A UI can present them; a test harness can assert on
// them. The relay is strictly one-way: observers receive event frames and
// anything they send is discarded.
package relay

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/jetsetilly/chimeraboy/creature"
	"github.com/jetsetilly/chimeraboy/logger"
	"github.com/jetsetilly/chimeraboy/notifications"
)

// Event is the JSON frame sent to observers.
type Event struct {
	Notice  string `json:"notice"`
	Detail  string `json:"detail,omitempty"`
	Outcome string `json:"outcome,omitempty"`
	State   string `json:"state,omitempty"`

	Creature *CreatureSummary `json:"creature,omitempty"`
}

// CreatureSummary is the observer's view of a creature. The sprite bitmap
// is deliberately omitted: observers that want pixels can take them from
// the guest's own video output.
type CreatureSummary struct {
	Name    string `json:"name"`
	Species string `json:"species"`
	Level   int    `json:"level"`
	Types   [2]int `json:"types"`
	Moves   [4]int `json:"moves"`
	Stats   [5]int `json:"stats"`
}

// Relay broadcasts notifications to any number of websocket observers.
// It implements the notifications.Notify interface.
type Relay struct {
	upgrader websocket.Upgrader

	crit  sync.Mutex
	conns map[*websocket.Conn]chan []byte
}

// NewRelay is the preferred method of initialisation for the Relay type.
func NewRelay() *Relay {
	return &Relay{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		conns: make(map[*websocket.Conn]chan []byte),
	}
}

// Handler returns the http handler that upgrades observer connections.
func (rel *Relay) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := rel.upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}

		out := make(chan []byte, 64)
		rel.crit.Lock()
		rel.conns[conn] = out
		rel.crit.Unlock()
		logger.Logf(logger.Allow, "relay", "observer connected (%s)", conn.RemoteAddr())

		// writer goroutine. the reader loop below owns disconnection
		go func() {
			for b := range out {
				_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
				if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
					return
				}
			}
		}()

		// reader loop. observers have nothing to say but the read is how
		// we learn the connection has gone
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}

		rel.crit.Lock()
		delete(rel.conns, conn)
		rel.crit.Unlock()
		close(out)
		conn.Close()
		logger.Logf(logger.Allow, "relay", "observer disconnected (%s)", conn.RemoteAddr())
	}
}

// Notify implements the notifications.Notify interface. A slow observer
// does not block the session: frames to a full connection buffer are
// dropped.
func (rel *Relay) Notify(notice notifications.Notice, args ...interface{}) error {
	b, err := json.Marshal(BuildEvent(notice, args...))
	if err != nil {
		return err
	}

	rel.crit.Lock()
	defer rel.crit.Unlock()
	for _, out := range rel.conns {
		select {
		case out <- b:
		default:
		}
	}
	return nil
}

// BuildEvent converts a notification and its arguments into the frame sent
// to observers.
func BuildEvent(notice notifications.Notice, args ...interface{}) Event {
	ev := Event{Notice: string(notice)}

	if len(args) == 0 {
		return ev
	}

	switch notice {
	case notifications.NotifyBattleEnded:
		ev.Outcome = fmt.Sprint(args[0])
	case notifications.NotifyStateChanged:
		ev.State = fmt.Sprint(args[0])
	case notifications.NotifyGenerationFailed:
		ev.Detail = fmt.Sprint(args[0])
	case notifications.NotifyCreatureReady:
		if cr, ok := args[0].(*creature.Creature); ok && cr != nil {
			ev.Creature = summarise(cr)
		}
	default:
		ev.Detail = fmt.Sprint(args[0])
	}

	return ev
}

func summarise(cr *creature.Creature) *CreatureSummary {
	s := &CreatureSummary{
		Name:    cr.Name,
		Species: cr.Species,
		Level:   int(cr.Level),
		Types:   [2]int{int(cr.Types[0]), int(cr.Types[1])},
		Stats: [5]int{
			int(cr.Base.HP), int(cr.Base.Attack), int(cr.Base.Defence),
			int(cr.Base.Speed), int(cr.Base.Special),
		},
	}
	for i, m := range cr.Moves {
		s.Moves[i] = int(m)
	}
	return s
}
