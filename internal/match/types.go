// Package match drives a game headlessly on a fixed tick and reports the
// outcome. It is the engine room of the simulate command and the source of
// every result written to storage.
package match

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-territory/internal/core"
	"github.com/vovakirdan/tui-territory/internal/registry"
)

// EndReason describes why a match ended.
type EndReason int

const (
	EndReasonCompleted EndReason = iota // game reported game over
	EndReasonCancelled                  // context cancelled or player quit
)

// String returns the stored name of the reason.
func (r EndReason) String() string {
	switch r {
	case EndReasonCompleted:
		return "completed"
	case EndReasonCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// ParseEndReason is the inverse of String. Unknown names map to cancelled.
func ParseEndReason(s string) EndReason {
	if s == EndReasonCompleted.String() {
		return EndReasonCompleted
	}
	return EndReasonCancelled
}

// PlayerResult is one player's line in a finished match.
type PlayerResult struct {
	ID     core.PlayerID
	Name   string
	Color  core.Color
	Score  int // owned cells at the end
	Best   int // largest territory held during the match
	Kills  int
	Deaths int
	Rank   int // 1-based, shared on ties
}

// Result contains the outcome of a match.
type Result struct {
	MatchID   string
	GameID    string
	Reason    EndReason
	Winner    core.PlayerID // NoPlayer on a tie
	Ticks     uint64
	Duration  time.Duration
	StartedAt time.Time
	Players   []PlayerResult // ordered by rank
}

// WinnerName returns the winner's name, or "" on a tie.
func (r Result) WinnerName() string {
	for _, p := range r.Players {
		if p.ID == r.Winner && r.Winner != core.NoPlayer {
			return p.Name
		}
	}
	return ""
}

// ResultSaver persists finished matches.
// This allows the runner to save results without depending on the storage package.
type ResultSaver interface {
	SaveMatchResult(result Result) error
}

// NewID returns a fresh match identifier.
func NewID() string {
	return uuid.New().String()
}

// BuildResult collects the current state of game into a Result.
func BuildResult(id string, game registry.Game, reason EndReason, ticks uint64, started time.Time) Result {
	state := game.State()
	infos := game.Players()

	players := make([]PlayerResult, 0, len(infos))
	for _, info := range infos {
		stats := state.Stats[info.ID]
		players = append(players, PlayerResult{
			ID:     info.ID,
			Name:   info.Name,
			Color:  info.Color,
			Score:  state.Scores[info.ID],
			Best:   max(stats.Best, state.Scores[info.ID]),
			Kills:  stats.Kills,
			Deaths: stats.Deaths,
		})
	}
	rank(players)

	return Result{
		MatchID:   id,
		GameID:    game.ID(),
		Reason:    reason,
		Winner:    state.Leader,
		Ticks:     ticks,
		Duration:  time.Since(started),
		StartedAt: started,
		Players:   players,
	}
}

// rank orders players by score, then kills, then ID, and assigns shared ranks
// to equal scores.
func rank(players []PlayerResult) {
	sort.SliceStable(players, func(i, j int) bool {
		a, b := players[i], players[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Kills != b.Kills {
			return a.Kills > b.Kills
		}
		return a.ID < b.ID
	})
	for i := range players {
		if i > 0 && players[i].Score == players[i-1].Score {
			players[i].Rank = players[i-1].Rank
		} else {
			players[i].Rank = i + 1
		}
	}
}
