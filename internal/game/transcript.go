package game

import (
	"fmt"
	"io"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/mitchelldurbincs/obelisk/internal/game/core"
)

// TranscriptRecorder receives every resolved turn of a match.
type TranscriptRecorder interface {
	// OnTurn is called after a turn has been resolved
	OnTurn(turn int, before, after []core.Player, actions []core.Action)

	// OnGameEnd is called once, when the match is over
	OnGameEnd(turn int, final []core.Player, winner int)
}

// TurnRecord is one resolved turn.
type TurnRecord struct {
	Turn    int           `yaml:"turn"`
	Actions []string      `yaml:"actions"`
	Players []PlayerState `yaml:"players"`
}

// PlayerState is the yaml form of a player after a turn.
type PlayerState struct {
	Walls    uint8  `yaml:"walls"`
	Soldiers uint32 `yaml:"soldiers"`
	Barracks uint8  `yaml:"barracks"`
	Obelisks uint8  `yaml:"obelisks"`
	Defense  uint8  `yaml:"defense"`
}

func playerStates(players []core.Player) []PlayerState {
	out := make([]PlayerState, len(players))
	for i, p := range players {
		out[i] = PlayerState{Walls: p.Walls, Soldiers: p.Soldiers, Barracks: p.Barracks, Obelisks: p.Obelisks, Defense: p.Defense}
	}
	return out
}

// Transcript keeps the whole match in memory.
type Transcript struct {
	mu       sync.Mutex
	GameID   string        `yaml:"game_id"`
	Initial  []PlayerState `yaml:"initial"`
	Turns    []TurnRecord  `yaml:"turns"`
	Winner   int           `yaml:"winner"`
	Finished bool          `yaml:"finished"`
}

func NewTranscript(gameID string, initial []core.Player) *Transcript {
	return &Transcript{GameID: gameID, Initial: playerStates(initial), Winner: -1}
}

func (t *Transcript) OnTurn(turn int, _, after []core.Player, actions []core.Action) {
	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = a.String()
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.Turns = append(t.Turns, TurnRecord{Turn: turn, Actions: names, Players: playerStates(after)})
}

func (t *Transcript) OnGameEnd(_ int, _ []core.Player, winner int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Winner = winner
	t.Finished = true
}

// Len returns the number of recorded turns.
func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.Turns)
}

// WriteYAML encodes the transcript as a single YAML document.
func (t *Transcript) WriteYAML(w io.Writer) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("encoding transcript %s: %w", t.GameID, err)
	}
	return enc.Close()
}
