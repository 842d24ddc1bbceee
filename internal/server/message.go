package server

import (
	"encoding/json"
	"time"

	"github.com/lox/pokertable/internal/game"
)

// Message is one event sent to observers. Hole cards are only included
// where a spectator could see them.
type Message struct {
	Type     game.EventType  `json:"type"`
	Time     time.Time       `json:"time"`
	TableID  string          `json:"table_id"`
	PlayerID string          `json:"player_id,omitempty"`
	Option   *game.Option    `json:"option,omitempty"`
	Pot      *game.PotResult `json:"pot,omitempty"`
	Snapshot game.Snapshot   `json:"snapshot"`
}

// NewMessage converts a game event for observers.
func NewMessage(e game.Event) Message {
	return Message{
		Type:     e.Type,
		Time:     e.Time,
		TableID:  e.Snapshot.TableID,
		PlayerID: e.PlayerID,
		Option:   e.Option,
		Pot:      e.Pot,
		Snapshot: e.Snapshot.Public(),
	}
}

func (m Message) encode() ([]byte, error) {
	return json.Marshal(m)
}
