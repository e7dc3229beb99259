package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubastard/lumen/engine/logging"
)

func TestRunWritesPNG(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "lumen.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[engine]\ntexture_slots = 2\n[demo]\ngrid_radius = 1\n"), 0o644))

	var out bytes.Buffer
	o := options{
		config: cfgPath,
		out:    filepath.Join(dir, "shot.png"),
		width:  48,
		height: 32,
		frames: 2,
		flat:   true,
	}
	require.NoError(t, run(o, logging.New(&out, &out, "", false)))

	f, err := os.Open(o.out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 48, img.Bounds().Dx())
	assert.Equal(t, 32, img.Bounds().Dy())

	assert.Contains(t, out.String(), "rendered 2 frames in ")
	assert.Contains(t, out.String(), "flat shading")
	assert.Contains(t, out.String(), "texture slots (2)")
}

func TestRunRejectsBadConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "lumen.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[demo]\nbogus = 1\n"), 0o644))

	err := run(options{config: cfgPath, out: filepath.Join(dir, "x.png")}, logging.Nop())
	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "x.png"))
}
