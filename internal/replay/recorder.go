// Package replay records the inputs of a catch session and re-simulates
// them. A recording holds the seed, the resolved config and every applied
// input; scores and rounds are always derived by running it again.
package replay

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-catch/internal/config"
)

// EventKind identifies an applied input.
type EventKind string

const (
	KindTap     EventKind = "tap"     // Catcher moved to X
	KindRestart EventKind = "restart" // Round abandoned by the player
)

// Event is one input, applied before engine step Step runs.
type Event struct {
	Step uint64
	Kind EventKind
	X    float64
}

// Recording is everything needed to reproduce a session.
type Recording struct {
	ID        int64
	GameID    string
	Seed      int64
	Config    []byte // Resolved config as YAML
	Events    []Event
	Steps     uint64 // Engine steps run when the session ended
	CreatedAt time.Time
}

// Recorder collects inputs from a running game.
type Recorder struct {
	rec Recording
}

// NewRecorder starts a recording for a session of gameID.
func NewRecorder(gameID string, seed int64, cfg config.CatchConfig) (*Recorder, error) {
	data, err := config.MarshalCatch(cfg)
	if err != nil {
		return nil, fmt.Errorf("replay: cannot snapshot config: %w", err)
	}
	return &Recorder{rec: Recording{
		GameID: gameID,
		Seed:   seed,
		Config: data,
	}}, nil
}

// RecordTap records a catcher move.
func (r *Recorder) RecordTap(step uint64, x float64) {
	r.rec.Events = append(r.rec.Events, Event{Step: step, Kind: KindTap, X: x})
}

// RecordRestart records a manual restart.
func (r *Recorder) RecordRestart(step uint64) {
	r.rec.Events = append(r.rec.Events, Event{Step: step, Kind: KindRestart})
}

// Len returns the number of recorded events.
func (r *Recorder) Len() int {
	return len(r.rec.Events)
}

// Finish closes the recording at the given engine step count and returns
// a copy of it. The recorder can keep recording afterwards.
func (r *Recorder) Finish(steps uint64) *Recording {
	out := r.rec
	out.Steps = steps
	out.Events = append([]Event(nil), r.rec.Events...)
	out.Config = append([]byte(nil), r.rec.Config...)
	out.CreatedAt = time.Now()
	return &out
}
