package config

import (
	_ "embed"
)

//go:embed defaults/blocks.yaml
var defaultBlocksYAML []byte

// DefaultBlocksConfig returns the default falling-block configuration:
// a 20x10 well, one fall step per second and the seven classic pieces.
func DefaultBlocksConfig() BlocksConfig {
	return BlocksConfig{
		Grid: GridConfig{
			Rows: 20,
			Cols: 10,
		},
		Timing: TimingConfig{
			FallIntervalMS: 1000,
		},
		Pieces: []PieceConfig{
			{Name: "I", Color: "red", Shape: []string{"XXXX"}},
			{Name: "O", Color: "yellow", Shape: []string{"XX", "XX"}},
			{Name: "T", Color: "bright-cyan", Shape: []string{".X.", "XXX"}},
			{Name: "S", Color: "bright-magenta", Shape: []string{"XX.", ".XX"}},
			{Name: "Z", Color: "green", Shape: []string{".XX", "XX."}},
			{Name: "J", Color: "magenta", Shape: []string{"X..", "XXX"}},
			{Name: "L", Color: "cyan", Shape: []string{"..X", "XXX"}},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultBlocksYAML
}
