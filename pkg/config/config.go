// Package config loads export configuration files.
//
// A configuration is a JSON (or YAML) document:
//
//	{
//	    "source": "scenes/quad.lisp",
//	    "node": "/obj/quad",
//	    "output": "out",
//	    "name": "quad",
//	    "frame": 1,
//	    "format": "npy"
//	}
//
// "hip" is accepted as an alias of "source".
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/chazu/geoschema/pkg/format"
)

// ErrConfiguration is returned for a missing, unreadable or incomplete
// configuration file.
var ErrConfiguration = errors.New("config: invalid configuration")

// Config describes one export.
type Config struct {
	Source string `mapstructure:"source" validate:"required"` // scene file
	Node   string `mapstructure:"node" validate:"required"`   // node path inside the scene
	Output string `mapstructure:"output" validate:"required"` // output root directory
	Name   string `mapstructure:"name" validate:"required"`   // export name
	Frame  *int   `mapstructure:"frame"`                      // nil: scene frame
	Format string `mapstructure:"format"`                     // normalized format name
}

// Load reads the configuration at path from fs. Format is normalized, so
// an empty or legacy name comes back as its canonical form.
func Load(fs afero.Fs, path string) (*Config, error) {
	v := viper.New()
	v.SetFs(fs)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfiguration, path, err)
	}
	if !v.IsSet("source") && v.IsSet("hip") {
		v.Set("source", v.Get("hip"))
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfiguration, path, err)
	}
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfiguration, path, err)
	}

	f, err := format.Normalize(cfg.Format)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfiguration, path, err)
	}
	cfg.Format = string(f)
	return cfg, nil
}

func validate(cfg *Config) error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		// Report keys as they appear in the file.
		return strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
	})

	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		if e.Tag() == "required" {
			msgs = append(msgs, fmt.Sprintf("missing required key %q", e.Field()))
			continue
		}
		msgs = append(msgs, fmt.Sprintf("key %q failed %q validation", e.Field(), e.ActualTag()))
	}
	return errors.New(strings.Join(msgs, ", "))
}
