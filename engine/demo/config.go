package demo

import (
	"errors"
	"fmt"
)

var ErrInvalidConfig = errors.New("invalid demo config")

// MaxGridRadius bounds the grid so its densest sphere, level 2r, stays within
// the levels of the sphere line.
const MaxGridRadius = lineLevels / 2

// Config shapes the showcase scene and the fly camera.
type Config struct {
	GridRadius  int     `toml:"grid_radius"` // grid is (2r+1)², sphere level = column index
	GridSpacing float32 `toml:"grid_spacing"`
	SphereLine  bool    `toml:"sphere_line"` // icospheres of level 0..5 in a row

	// ProceduralTextures checkerboards are generated in addition to the
	// images found in TextureDir.
	ProceduralTextures int    `toml:"procedural_textures"`
	TextureDir         string `toml:"texture_dir"`

	ShaderDir    string `toml:"shader_dir"` // empty: built-in shaders
	WatchShaders bool   `toml:"watch_shaders"`

	MoveSpeed float32 `toml:"move_speed"`
	LookSpeed float32 `toml:"look_speed"`
	FOV       float32 `toml:"fov"`
}

func DefaultConfig() Config {
	return Config{
		GridRadius:         2,
		GridSpacing:        7.5,
		SphereLine:         true,
		ProceduralTextures: 6,
		MoveSpeed:          6,
		LookSpeed:          0.0005,
		FOV:                45,
	}
}

func (c Config) Validate() error {
	switch {
	case c.GridRadius < 0 || c.GridRadius > MaxGridRadius:
		return fmt.Errorf("%w: grid_radius %d", ErrInvalidConfig, c.GridRadius)
	case c.GridSpacing <= 0:
		return fmt.Errorf("%w: grid_spacing %g", ErrInvalidConfig, c.GridSpacing)
	case c.ProceduralTextures < 0:
		return fmt.Errorf("%w: procedural_textures %d", ErrInvalidConfig, c.ProceduralTextures)
	case c.MoveSpeed < 0 || c.LookSpeed < 0:
		return fmt.Errorf("%w: negative camera speed", ErrInvalidConfig)
	case c.FOV <= 0 || c.FOV >= 180:
		return fmt.Errorf("%w: fov %g", ErrInvalidConfig, c.FOV)
	case c.WatchShaders && c.ShaderDir == "":
		return fmt.Errorf("%w: watch_shaders needs shader_dir", ErrInvalidConfig)
	}
	return nil
}
