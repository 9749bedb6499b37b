package match

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-territory/internal/core"
	"github.com/vovakirdan/tui-territory/internal/registry"
)

// Input is one action from one player, sent to a running match.
type Input struct {
	Player core.PlayerID
	Action core.Action
}

// Options configures a Runner.
type Options struct {
	// Runtime is passed to the game's Reset. TickInterval paces the loop;
	// zero steps as fast as possible.
	Runtime core.RuntimeConfig

	// Bots generate input for the listed players every tick.
	Bots map[core.PlayerID]Bot

	// Saver, when set, receives the result once the match ends.
	Saver ResultSaver

	// OnTick is called after every step from the runner goroutine.
	OnTick func(core.StepResult)

	// Logger receives lifecycle messages. Nil discards them.
	Logger *log.Logger
}

// Runner plays one match of a game to completion.
type Runner struct {
	id     string
	game   registry.Game
	opts   Options
	logger *log.Logger

	inputChan chan Input
	frame     core.MultiInputFrame
	tick      uint64
}

// NewRunner creates a runner for game. The game is reset when Run starts.
func NewRunner(game registry.Game, opts Options) *Runner {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	id := NewID()

	return &Runner{
		id:        id,
		game:      game,
		opts:      opts,
		logger:    logger.With("match", id[:8]),
		inputChan: make(chan Input, 64),
		frame:     core.NewMultiInputFrame(),
	}
}

// ID returns the match identifier.
func (r *Runner) ID() string {
	return r.id
}

// Send queues an input for the next tick.
// Non-blocking; returns false when the buffer is full and the input was dropped.
func (r *Runner) Send(in Input) bool {
	select {
	case r.inputChan <- in:
		return true
	default:
		return false
	}
}

// Run resets the game and steps it until it reports game over or ctx is done.
// The result is always returned; on cancellation err wraps ctx.Err().
func (r *Runner) Run(ctx context.Context) (Result, error) {
	if err := r.game.Reset(r.opts.Runtime); err != nil {
		return Result{}, fmt.Errorf("match: cannot start %s: %w", r.game.ID(), err)
	}

	started := time.Now()
	r.logger.Info("match started", "game", r.game.ID(), "players", len(r.game.Players()))

	var tickC <-chan time.Time
	if r.opts.Runtime.TickInterval > 0 {
		ticker := time.NewTicker(r.opts.Runtime.TickInterval)
		defer ticker.Stop()
		tickC = ticker.C
	}

	for {
		if tickC != nil {
			select {
			case <-ctx.Done():
				return r.finish(EndReasonCancelled, started, ctx.Err())
			case <-tickC:
			}
		} else if err := ctx.Err(); err != nil {
			return r.finish(EndReasonCancelled, started, err)
		}

		if r.runTick().State.GameOver {
			return r.finish(EndReasonCompleted, started, nil)
		}
	}
}

func (r *Runner) runTick() core.StepResult {
	r.drainInputs()
	for id, bot := range r.opts.Bots {
		r.frame.Add(id, bot.Next(r.tick))
	}

	result := r.game.Step(r.frame)
	r.frame.Clear()
	r.tick++

	if r.opts.OnTick != nil {
		r.opts.OnTick(result)
	}
	return result
}

func (r *Runner) drainInputs() {
	for {
		select {
		case in := <-r.inputChan:
			r.frame.Add(in.Player, in.Action)
		default:
			return
		}
	}
}

func (r *Runner) finish(reason EndReason, started time.Time, cause error) (Result, error) {
	result := BuildResult(r.id, r.game, reason, r.tick, started)
	r.logger.Info("match ended",
		"reason", reason,
		"ticks", r.tick,
		"winner", result.WinnerName(),
	)

	if r.opts.Saver != nil {
		if err := r.opts.Saver.SaveMatchResult(result); err != nil {
			r.logger.Error("could not save result", "error", err)
		}
	}

	if cause != nil {
		return result, fmt.Errorf("match: %s interrupted: %w", r.id, cause)
	}
	return result, nil
}
