package demo

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/hubastard/lumen/engine/core"
)

// File is the TOML config read by the binaries:
//
//	[engine]
//	width = 1450
//	[demo]
//	grid_radius = 2
type File struct {
	Engine core.Config `toml:"engine"`
	Demo   Config      `toml:"demo"`
}

func DefaultFile() File {
	return File{Engine: core.DefaultConfig(), Demo: DefaultConfig()}
}

// LoadFile reads path over the defaults. A missing file yields the defaults;
// unknown keys are an error.
func LoadFile(path string) (File, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultFile(), nil
	}
	if err != nil {
		return File{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	cfg, err := DecodeFile(f)
	if err != nil {
		return File{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// DecodeFile decodes TOML from r over the defaults and validates the result.
func DecodeFile(r io.Reader) (File, error) {
	cfg := DefaultFile()
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return File{}, fmt.Errorf("unknown keys:\n%s", strict.String())
		}
		return File{}, err
	}
	if err := cfg.Engine.Validate(); err != nil {
		return File{}, err
	}
	if err := cfg.Demo.Validate(); err != nil {
		return File{}, err
	}
	return cfg, nil
}
