package config

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, path, body string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, path, []byte(body), 0o644))
	return fs
}

func TestLoad(t *testing.T) {
	fs := writeConfig(t, "/config/export.json", `{
		"source": "scenes/quad.lisp",
		"node": "/obj/quad",
		"output": "out",
		"name": "quad",
		"frame": 12,
		"format": "Binary"
	}`)

	cfg, err := Load(fs, "/config/export.json")
	require.NoError(t, err)
	assert.Equal(t, "scenes/quad.lisp", cfg.Source)
	assert.Equal(t, "/obj/quad", cfg.Node)
	assert.Equal(t, "out", cfg.Output)
	assert.Equal(t, "quad", cfg.Name)
	require.NotNil(t, cfg.Frame)
	assert.Equal(t, 12, *cfg.Frame)
	assert.Equal(t, "npy", cfg.Format)
}

func TestLoadDefaults(t *testing.T) {
	fs := writeConfig(t, "/c.json", `{"source": "s.lisp", "node": "/obj/a", "output": "out", "name": "a"}`)

	cfg, err := Load(fs, "/c.json")
	require.NoError(t, err)
	assert.Nil(t, cfg.Frame)
	assert.Equal(t, "npy", cfg.Format)
}

func TestLoadHipAlias(t *testing.T) {
	fs := writeConfig(t, "/c.json", `{"hip": "legacy.lisp", "node": "/obj/a", "output": "out", "name": "a"}`)

	cfg, err := Load(fs, "/c.json")
	require.NoError(t, err)
	assert.Equal(t, "legacy.lisp", cfg.Source)
}

func TestLoadSourceWinsOverHip(t *testing.T) {
	fs := writeConfig(t, "/c.json", `{"hip": "old.lisp", "source": "new.lisp", "node": "/obj/a", "output": "out", "name": "a"}`)

	cfg, err := Load(fs, "/c.json")
	require.NoError(t, err)
	assert.Equal(t, "new.lisp", cfg.Source)
}

func TestLoadYAML(t *testing.T) {
	fs := writeConfig(t, "/c.yaml", "source: s.lisp\nnode: /obj/a\noutput: out\nname: a\nformat: ascii\n")

	cfg, err := Load(fs, "/c.yaml")
	require.NoError(t, err)
	assert.Equal(t, "ascii", cfg.Format)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"missing node", `{"source": "s.lisp", "output": "out", "name": "a"}`, `missing required key "node"`},
		{"missing source", `{"node": "/obj/a", "output": "out", "name": "a"}`, `missing required key "source"`},
		{"bad format", `{"source": "s.lisp", "node": "/obj/a", "output": "out", "name": "a", "format": "pickle"}`, "pickle"},
		{"malformed", `{"source": `, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := writeConfig(t, "/c.json", tt.body)
			_, err := Load(fs, "/c.json")
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfiguration), "got %v", err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(afero.NewMemMapFs(), "/config/export_test.json")
	assert.True(t, errors.Is(err, ErrConfiguration), "got %v", err)
}
