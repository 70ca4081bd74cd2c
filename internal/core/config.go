package core

// RuntimeConfig contains configuration passed to scenes at initialization.
// Scenes use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickSeconds returns the duration of one simulation tick in seconds.
func (c RuntimeConfig) TickSeconds() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}

// GameState represents the current state of a scene.
// Returned by Scene.State() to communicate status to the platform.
type GameState struct {
	Score     int     // Current score
	BestScore int     // Best score known to the scene
	Distance  float64 // Distance travelled along the travel axis
	Elapsed   float64 // Seconds of gameplay time
	Lives     int     // Remaining lives
	GameOver  bool    // Whether the run has ended
	Paused    bool    // Whether the scene is paused
}

// StepResult is returned by Scene.Step() after each simulation tick.
type StepResult struct {
	State GameState

	// NextScene, when non-empty, asks the platform to load the named scene.
	NextScene string
}
