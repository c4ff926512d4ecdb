package replay

import (
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/gocarina/gocsv"

	"github.com/vovakirdan/tui-catch/internal/config"
	"github.com/vovakirdan/tui-catch/internal/games/catch"
)

// ErrInvalidRecording is returned for recordings that cannot be replayed.
var ErrInvalidRecording = errors.New("replay: invalid recording")

// How a round ended.
const (
	EndMissed     = "missed"
	EndRestarted  = "restarted"
	EndUnfinished = "unfinished"
)

// Round is one round of a replayed session.
type Round struct {
	Number    int     `csv:"round"`
	Score     int     `csv:"score"`
	StartStep uint64  `csv:"start_step"`
	EndStep   uint64  `csv:"end_step"`
	PeakSpeed float64 `csv:"peak_speed"`
	End       string  `csv:"end"`
}

// Result is the outcome of a replay.
type Result struct {
	Final  catch.Snapshot
	Rounds []Round
}

// Best returns the highest round score.
func (r Result) Best() int {
	best := 0
	for _, rd := range r.Rounds {
		best = max(best, rd.Score)
	}
	return best
}

// roundTracker turns engine outcomes into rounds.
type roundTracker struct {
	rounds []Round
	cur    *Round
	base   float64
}

func (t *roundTracker) open(step uint64) {
	t.cur = &Round{Number: len(t.rounds) + 1, StartStep: step, PeakSpeed: t.base}
}

func (t *roundTracker) close(step uint64, end string) {
	if t.cur == nil {
		return
	}
	t.cur.EndStep = step
	t.cur.End = end
	t.rounds = append(t.rounds, *t.cur)
	t.cur = nil
}

func (t *roundTracker) observe(o catch.Outcome, s catch.Snapshot) {
	switch o {
	case catch.OutcomeCaught:
		t.cur.Score = s.Score
		t.cur.PeakSpeed = max(t.cur.PeakSpeed, s.FallSpeed)
	case catch.OutcomeMissed:
		t.close(s.Step, EndMissed)
	case catch.OutcomeRestarted:
		t.open(s.Step)
	}
}

// Run re-simulates rec headlessly. The same recording always produces the
// same result.
func Run(rec *Recording) (Result, error) {
	if rec == nil {
		return Result{}, fmt.Errorf("%w: nil recording", ErrInvalidRecording)
	}
	if err := validate(rec); err != nil {
		return Result{}, err
	}

	cfg, err := config.ParseCatch(rec.Config)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidRecording, err)
	}
	engine, err := catch.NewEngine(catch.ParamsFromConfig(cfg), rand.New(rand.NewSource(rec.Seed)))
	if err != nil {
		return Result{}, fmt.Errorf("replay: %w", err)
	}

	t := &roundTracker{base: engine.Params().BaseSpeed}
	t.open(0)

	advance := func(to uint64) {
		for engine.Steps() < to {
			o := engine.Step()
			t.observe(o, engine.Snapshot())
		}
	}

	for _, ev := range rec.Events {
		advance(ev.Step)
		switch ev.Kind {
		case KindTap:
			engine.SetCatcherPosition(ev.X)
		case KindRestart:
			t.close(engine.Steps(), EndRestarted)
			engine.Reset()
			t.open(engine.Steps())
		}
	}
	advance(rec.Steps)
	t.close(engine.Steps(), EndUnfinished)

	return Result{Final: engine.Snapshot(), Rounds: t.rounds}, nil
}

// validate checks event order and kinds.
func validate(rec *Recording) error {
	var last uint64
	for i, ev := range rec.Events {
		if ev.Kind != KindTap && ev.Kind != KindRestart {
			return fmt.Errorf("%w: event %d has unknown kind %q", ErrInvalidRecording, i, ev.Kind)
		}
		if ev.Step < last {
			return fmt.Errorf("%w: event %d at step %d precedes step %d", ErrInvalidRecording, i, ev.Step, last)
		}
		if ev.Step > rec.Steps {
			return fmt.Errorf("%w: event %d at step %d is past the end (%d)", ErrInvalidRecording, i, ev.Step, rec.Steps)
		}
		last = ev.Step
	}
	return nil
}

// ExportCSV writes rounds as CSV with a header row.
func ExportCSV(w io.Writer, rounds []Round) error {
	if err := gocsv.Marshal(rounds, w); err != nil {
		return fmt.Errorf("replay: cannot export csv: %w", err)
	}
	return nil
}
