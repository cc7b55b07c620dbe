package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int // Terminal/screen width in cells
	ScreenH  int // Terminal/screen height in cells
	TickRate int // Simulation ticks per second (default 60)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// Outcome describes why a session ended.
type Outcome string

const (
	OutcomeNone  Outcome = ""
	OutcomeQuit  Outcome = "quit"
	OutcomeEnemy Outcome = "enemy"
)

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int     // Current score
	Coins    int     // Coins collected this session
	Frames   int     // Simulated frames so far
	GameOver bool    // Whether the game has ended
	Paused   bool    // Whether the game is paused
	Outcome  Outcome // Set once GameOver is true
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State     GameState
	Collected int // Coins picked up during this tick
}
