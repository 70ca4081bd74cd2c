package world

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
)

type fakePlayer struct {
	z float64
}

func (p *fakePlayer) Travel() float64 { return p.z }

func TestGroundPrimesAroundPlayer(t *testing.T) {
	cfg := config.GroundConfig{TileLength: 10, TilesAhead: 10, TilesBehind: 5}
	g := NewGround(cfg, nil)
	if err := g.Start(&fakePlayer{}); err != nil {
		t.Fatal(err)
	}

	tiles := g.Tiles()
	if len(tiles) != 15 {
		t.Fatalf("primed %d tiles, expected 15", len(tiles))
	}
	if tiles[0].Pos != -50 || tiles[len(tiles)-1].Pos != 90 {
		t.Errorf("tiles span %v..%v, expected -50..90", tiles[0].Pos, tiles[len(tiles)-1].Pos)
	}
}

func TestGroundStreamsAndCleans(t *testing.T) {
	cfg := config.GroundConfig{TileLength: 10, TilesAhead: 10, TilesBehind: 5}
	g := NewGround(cfg, nil)
	p := &fakePlayer{}
	_ = g.Start(p)

	for p.z = 0; p.z < 500; p.z += 3.7 {
		g.Update()
		for _, it := range g.Tiles() {
			if it.Pos < p.z-50 {
				t.Fatalf("tile at %v left behind player at %v", it.Pos, p.z)
			}
		}
		if next := g.Spawner().Next(); next > p.z+100+1e-9 || next < p.z+90 {
			t.Fatalf("next %v out of window at player %v", next, p.z)
		}
	}
}

func TestGroundWithoutTemplateIsDisabled(t *testing.T) {
	g := NewGround(config.GroundConfig{TilesAhead: 10}, nil)
	err := g.Start(&fakePlayer{})
	if !errors.Is(err, core.ErrMissingDependency) {
		t.Fatalf("expected ErrMissingDependency, got %v", err)
	}
	g.Update()
	if g.Enabled() || len(g.Tiles()) != 0 {
		t.Error("ground without a template must stay disabled and empty")
	}
}

func TestPickLanes(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, chance := range []float64{0, 0.5, 1} {
		for i := 0; i < 2000; i++ {
			lanes := PickLanes(rng, chance)
			if len(lanes) < 1 || len(lanes) > 2 {
				t.Fatalf("chance %v: got %d lanes", chance, len(lanes))
			}
			if chance == 0 && len(lanes) != 1 {
				t.Fatalf("doubleLaneChance 0 produced %v", lanes)
			}
			if chance == 1 && len(lanes) != 2 {
				t.Fatalf("doubleLaneChance 1 produced %v", lanes)
			}
			for _, l := range lanes {
				if l < 0 || l >= LaneCount {
					t.Fatalf("lane %d out of range", l)
				}
			}
			if len(lanes) == 2 && lanes[0] == lanes[1] {
				t.Fatalf("same lane picked twice: %v", lanes)
			}
		}
	}
}

func obstacleConfig() config.ObstacleConfig {
	return config.DefaultRunnerConfig().Obstacles
}

func TestObstaclesSingleLaneWhenNoDoubleChance(t *testing.T) {
	cfg := obstacleConfig()
	cfg.DoubleLaneChance = 0
	cfg.SpawnChance = 1

	o, err := NewObstacles(cfg, rand.New(rand.NewSource(3)), nil)
	if err != nil {
		t.Fatal(err)
	}
	p := &fakePlayer{}
	if err := o.Start(p); err != nil {
		t.Fatal(err)
	}
	for p.z = 0; p.z < 1000; p.z += 5 {
		o.Update()
	}

	perZ := map[float64]int{}
	for _, it := range o.Items() {
		perZ[it.Pos]++
	}
	if len(perZ) == 0 {
		t.Fatal("no obstacles spawned")
	}
	for z, n := range perZ {
		if n != 1 {
			t.Errorf("event at %v produced %d obstacles", z, n)
		}
	}
}

func TestObstaclesNeverBlockAllLanes(t *testing.T) {
	cfg := obstacleConfig()
	cfg.DoubleLaneChance = 1
	cfg.SpawnChance = 1

	o, _ := NewObstacles(cfg, rand.New(rand.NewSource(9)), nil)
	p := &fakePlayer{}
	_ = o.Start(p)
	for p.z = 0; p.z < 1000; p.z += 5 {
		o.Update()

		lanes := map[float64]map[int]bool{}
		for _, it := range o.Items() {
			if lanes[it.Pos] == nil {
				lanes[it.Pos] = map[int]bool{}
			}
			if lanes[it.Pos][it.Value.Lane] {
				t.Fatalf("lane %d used twice at %v", it.Value.Lane, it.Pos)
			}
			lanes[it.Pos][it.Value.Lane] = true
		}
		for z, set := range lanes {
			if len(set) >= LaneCount {
				t.Fatalf("all lanes blocked at %v", z)
			}
		}
	}
}

func TestObstaclesInitialAttempts(t *testing.T) {
	cfg := obstacleConfig()
	cfg.SpawnChance = 1
	cfg.DoubleLaneChance = 0
	cfg.MinSpacing, cfg.MaxSpacing = 10, 10

	o, _ := NewObstacles(cfg, rand.New(rand.NewSource(1)), nil)
	_ = o.Start(&fakePlayer{z: 5})

	items := o.Items()
	if len(items) != 3 {
		t.Fatalf("initial attempts spawned %d, expected 3", len(items))
	}
	expected := []float64{65, 75, 85}
	for i, it := range items {
		if math.Abs(it.Pos-expected[i]) > 1e-9 {
			t.Errorf("obstacle %d at %v, expected %v", i, it.Pos, expected[i])
		}
		if it.Value.Pos.X != cfg.LanePositions[it.Value.Lane] {
			t.Errorf("obstacle x %v does not match lane %d", it.Value.Pos.X, it.Value.Lane)
		}
	}
}

func TestObstaclesWithoutKindsDisabled(t *testing.T) {
	cfg := obstacleConfig()
	cfg.Kinds = nil

	o, _ := NewObstacles(cfg, rand.New(rand.NewSource(1)), nil)
	err := o.Start(&fakePlayer{})
	if !errors.Is(err, core.ErrMissingDependency) {
		t.Fatalf("expected ErrMissingDependency, got %v", err)
	}
	o.Update()
	if o.Enabled() || len(o.Items()) != 0 {
		t.Error("obstacles without kinds must stay disabled")
	}
}

func TestObstaclesWithoutPlayerDisabled(t *testing.T) {
	o, _ := NewObstacles(obstacleConfig(), rand.New(rand.NewSource(1)), nil)
	if err := o.Start(nil); !errors.Is(err, core.ErrMissingDependency) {
		t.Fatalf("expected ErrMissingDependency, got %v", err)
	}
	if o.Enabled() {
		t.Error("expected disabled obstacles")
	}
}

func TestAdjustDifficulty(t *testing.T) {
	tests := []struct {
		multiplier       float64
		spawn, double    float64
		minSpace, maxSpc float64
	}{
		{1, 0.4, 0.15, 15, 25},
		{2, 0.7, 0.3, 8, 12.5},
		{0.5, 0.3, 0.1, 20, 30},
	}

	for _, tc := range tests {
		o, _ := NewObstacles(obstacleConfig(), rand.New(rand.NewSource(1)), nil)
		o.AdjustDifficulty(tc.multiplier)

		minS, maxS := o.Spacing()
		if math.Abs(o.SpawnChance()-tc.spawn) > 1e-9 ||
			math.Abs(o.DoubleLaneChance()-tc.double) > 1e-9 ||
			math.Abs(minS-tc.minSpace) > 1e-9 ||
			math.Abs(maxS-tc.maxSpc) > 1e-9 {
			t.Errorf("AdjustDifficulty(%v) = %v %v %v %v", tc.multiplier,
				o.SpawnChance(), o.DoubleLaneChance(), minS, maxS)
		}
	}
}

func TestClearAllRestartsAheadOfPlayer(t *testing.T) {
	o, _ := NewObstacles(obstacleConfig(), rand.New(rand.NewSource(1)), nil)
	p := &fakePlayer{}
	_ = o.Start(p)

	p.z = 200
	o.ClearAll()
	if len(o.Items()) != 0 {
		t.Errorf("ClearAll left %d obstacles", len(o.Items()))
	}
	if o.Spawner().Next() != 250 {
		t.Errorf("Next() = %v, expected 250", o.Spawner().Next())
	}
}

func TestClassify(t *testing.T) {
	chances := config.DecorChances{VolcanoRock: 0.4, FireCrystal: 0.3, Torch: 0.2, Geyser: 0.1}
	tests := []struct {
		r        float64
		expected DecorKind
	}{
		{0, VolcanoRock},
		{0.39, VolcanoRock},
		{0.4, FireCrystal},
		{0.69, FireCrystal},
		{0.71, Torch},
		{0.95, Geyser},
		{0.999, Geyser},
	}
	for _, tc := range tests {
		if got := Classify(chances, tc.r); got != tc.expected {
			t.Errorf("Classify(%v) = %v, expected %v", tc.r, got, tc.expected)
		}
	}

	// Weights summing below 1 fall back to volcano rock.
	partial := config.DecorChances{FireCrystal: 0.2, Torch: 0.2}
	if got := Classify(partial, 0.8); got != VolcanoRock {
		t.Errorf("fallback = %v, expected volcano_rock", got)
	}
}

func TestClampLateral(t *testing.T) {
	tests := []struct {
		x, expected float64
	}{
		{5, 12},
		{-5, -12},
		{0, 12},
		{10, 10},
		{-25, -25},
	}
	for _, tc := range tests {
		if got := ClampLateral(tc.x, 10); got != tc.expected {
			t.Errorf("ClampLateral(%v) = %v, expected %v", tc.x, got, tc.expected)
		}
	}
}

func TestPlaceDecorNeverRejects(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	d := NewDecorField(cfg.Decor, cfg.Ground, rand.New(rand.NewSource(1)), nil)

	dec := d.PlaceDecor(5, 30)
	if dec.Pos.X != 12 || dec.Pos.Z != 30 {
		t.Errorf("PlaceDecor(5, 30) at %+v, expected x=12", dec.Pos)
	}
}

func TestDecorChunksStayOffTrack(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	d := NewDecorField(cfg.Decor, cfg.Ground, rand.New(rand.NewSource(5)), nil)
	p := &fakePlayer{}
	if err := d.Start(p); err != nil {
		t.Fatal(err)
	}

	// 20 primed chunks of 6 side objects plus optional mountains.
	if got := d.Spawner().Stats().Batches; got != 20 {
		t.Errorf("primed %d chunks, expected 20", got)
	}

	for p.z = 0; p.z < 400; p.z += 2 {
		d.Update()
	}
	jitter := cfg.Ground.TileLength * cfg.Decor.ZJitter
	for _, it := range d.Items() {
		dec := it.Value
		ax := math.Abs(dec.Pos.X)
		switch dec.Kind {
		case Mountain:
			if ax < mountainMinX || ax > mountainMaxX {
				t.Errorf("mountain at x=%v", dec.Pos.X)
			}
		default:
			if ax < cfg.Decor.MinSideDistance || ax > cfg.Decor.MaxSideDistance {
				t.Errorf("%v at x=%v inside forbidden band", dec.Kind, dec.Pos.X)
			}
			if math.Abs(dec.Pos.Z-it.Pos) > jitter+1e-9 {
				t.Errorf("%v jitter %v exceeds %v", dec.Kind, dec.Pos.Z-it.Pos, jitter)
			}
		}
	}
}

func TestDecorSyncWithoutGroundDisabled(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.Ground.TileLength = 0
	d := NewDecorField(cfg.Decor, cfg.Ground, rand.New(rand.NewSource(1)), nil)
	if err := d.Start(&fakePlayer{}); !errors.Is(err, core.ErrMissingDependency) {
		t.Fatalf("expected ErrMissingDependency, got %v", err)
	}
	if d.Enabled() {
		t.Error("decor should be disabled")
	}
}

func TestWorldDeterministicPerSeed(t *testing.T) {
	run := func(seed int64) []float64 {
		w, err := New(config.DefaultRunnerConfig(), seed, nil)
		if err != nil {
			t.Fatal(err)
		}
		p := &fakePlayer{}
		if err := w.Start(p); err != nil {
			t.Fatal(err)
		}
		for p.z = 0; p.z < 300; p.z += 1.5 {
			w.Update()
		}
		var out []float64
		for _, it := range w.Obstacles.Items() {
			out = append(out, it.Pos, it.Value.Pos.X)
		}
		for _, it := range w.Decor.Items() {
			out = append(out, it.Value.Pos.X, it.Value.Pos.Z)
		}
		return out
	}

	a, b := run(42), run(42)
	if len(a) != len(b) {
		t.Fatalf("runs differ in length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("runs differ at %d: %v vs %v", i, a[i], b[i])
		}
	}
}
