package core

// RuntimeConfig contains the settings a maze view is started with.
// Rows or Cols of 0 mean "fit to the screen".
type RuntimeConfig struct {
	ScreenW int   // Screen width in characters
	ScreenH int   // Screen height in characters
	Rows    int   // Maze rows
	Cols    int   // Maze columns
	Speed   int   // Autoplay speed level, 1 (slowest) to 100 (fastest)
	Seed    int64 // RNG seed for reproducible mazes
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Speed:   90,
		Seed:    0, // 0 means use current time in platform layer
	}
}
