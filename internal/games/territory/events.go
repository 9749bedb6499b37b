package territory

import (
	"fmt"

	"github.com/vovakirdan/tui-territory/internal/core"
	"github.com/vovakirdan/tui-territory/internal/games/territory/engine"
)

// feedSize is the number of event lines kept for the HUD.
const feedSize = 4

// record folds one tick of engine events into stats, the feed and the log.
func (g *Game) record(res engine.StepResult) {
	for _, id := range res.Blocked {
		g.logger.Debug("hit the wall", "player", g.playerName(id), "tick", res.Tick)
	}

	for _, ev := range res.Closures {
		id := core.PlayerID(ev.Player)
		st := g.stats[id]
		st.Closures++
		g.stats[id] = st

		if !ev.PathFound {
			g.logger.Warn("closure without a path through owned ground",
				"player", g.playerName(ev.Player),
				"trail", ev.TrailLen,
				"tick", res.Tick,
			)
		}
		g.logger.Debug("loop closed",
			"player", g.playerName(ev.Player),
			"trail", ev.TrailLen,
			"gained", ev.Gained,
		)
		if ev.Gained > 0 {
			g.push(fmt.Sprintf("%s +%d", g.playerName(ev.Player), ev.Gained))
		}
	}

	for _, ev := range res.Eliminations {
		victim := core.PlayerID(ev.Player)
		st := g.stats[victim]
		st.Deaths++
		g.stats[victim] = st

		if ev.By != ev.Player {
			killer := core.PlayerID(ev.By)
			ks := g.stats[killer]
			ks.Kills++
			g.stats[killer] = ks
			g.push(fmt.Sprintf("%s cut %s", g.playerName(ev.By), g.playerName(ev.Player)))
		} else {
			g.push(fmt.Sprintf("%s crossed own trail", g.playerName(ev.Player)))
		}

		g.logger.Info("player eliminated",
			"player", g.playerName(ev.Player),
			"by", g.playerName(ev.By),
			"released", ev.Released,
			"tick", res.Tick,
		)
	}

	for _, ev := range res.Respawns {
		g.logger.Info("player respawned",
			"player", g.playerName(ev.Player),
			"at", ev.Spawn.String(),
		)
	}

	for id, st := range g.stats {
		if score := g.sim.Score(engine.PlayerID(id)); score > st.Best {
			st.Best = score
			g.stats[id] = st
		}
	}
}

func (g *Game) push(msg string) {
	g.feed = append(g.feed, msg)
	if len(g.feed) > feedSize {
		g.feed = g.feed[len(g.feed)-feedSize:]
	}
}
