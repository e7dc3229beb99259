package core

import (
	"errors"
	"fmt"

	"github.com/hubastard/lumen/engine/colors"
)

var ErrInvalidConfig = errors.New("invalid engine config")

// Config for the engine run.
type Config struct {
	Title      string       `toml:"title"`
	Width      int          `toml:"width"`
	Height     int          `toml:"height"`
	VSync      bool         `toml:"vsync"`
	ClearColor colors.Color `toml:"clear_color"` // RGBA

	// TextureSlots caps the texture units handed to the slot manager.
	// 0 uses every unit the driver reports.
	TextureSlots int  `toml:"texture_slots"`
	GLDebug      bool `toml:"gl_debug"`
	LogDebug     bool `toml:"log_debug"`
}

func DefaultConfig() Config {
	return Config{
		Title:      "lumen",
		Width:      1450,
		Height:     875,
		VSync:      true,
		ClearColor: colors.Background,
	}
}

func (c Config) Validate() error {
	if c.Width < 1 || c.Height < 1 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.TextureSlots < 0 {
		return fmt.Errorf("%w: texture_slots %d", ErrInvalidConfig, c.TextureSlots)
	}
	for i, v := range c.ClearColor {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: clear_color[%d] = %g", ErrInvalidConfig, i, v)
		}
	}
	return nil
}
