package run

import (
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/player"
)

// Snapshot is a serializable view of the scene for spectators.
type Snapshot struct {
	Tick       int                `json:"tick"`
	Score      int                `json:"score"`
	Best       int                `json:"best"`
	Lives      int                `json:"lives"`
	Speed      float64            `json:"speed"`
	Distance   float64            `json:"distance"`
	Lane       int                `json:"lane"`
	Player     core.Vec3          `json:"player"`
	Airborne   bool               `json:"airborne"`
	Invincible bool               `json:"invincible"`
	GameOver   bool               `json:"game_over"`
	Obstacles  []ObstacleSnapshot `json:"obstacles"`
	Frame      string             `json:"frame,omitempty"`
}

// ObstacleSnapshot is one obstacle in a Snapshot.
type ObstacleSnapshot struct {
	ID   int     `json:"id"`
	Kind string  `json:"kind"`
	Lane int     `json:"lane"`
	Z    float64 `json:"z"`
	Hit  bool    `json:"hit"`
}

// Snapshot captures the current scene state. When dst is non-nil the scene
// is rendered into it and included as plain text.
func (g *Game) Snapshot(dst *core.Screen) Snapshot {
	st := g.State()
	snap := Snapshot{
		Tick:       g.tick,
		Score:      st.Score,
		Best:       st.BestScore,
		Lives:      st.Lives,
		Distance:   st.Distance,
		GameOver:   st.GameOver,
		Speed:      g.move.Speed(),
		Lane:       g.move.Lane(),
		Player:     g.move.Position(),
		Airborne:   g.move.State() == player.Airborne,
		Invincible: g.health.IsInvincible(),
	}

	if g.world != nil {
		items := g.world.Obstacles.Items()
		snap.Obstacles = make([]ObstacleSnapshot, 0, len(items))
		for _, it := range items {
			ob := it.Value
			snap.Obstacles = append(snap.Obstacles, ObstacleSnapshot{
				ID:   ob.ID,
				Kind: ob.Kind.Name,
				Lane: ob.Lane,
				Z:    ob.Pos.Z,
				Hit:  ob.Hit,
			})
		}
	}

	if dst != nil {
		g.Render(dst)
		snap.Frame = dst.String()
	}
	return snap
}
