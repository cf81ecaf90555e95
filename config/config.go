// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config is the configuration of the asset pipeline: its
// sources, worker pools and logging. It is read from TOML or YAML,
// chosen by file extension.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"cogentcore.org/xyzasset/asset"
	"cogentcore.org/xyzasset/base/errors"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Source configures one named asset source.
type Source struct {

	// Name is the name used in asset paths: name://path.
	Name string `toml:"name" yaml:"name"`

	// Dir is the directory of the source; a leading ~ is the home
	// directory. Empty means an in-memory source.
	Dir string `toml:"dir" yaml:"dir"`

	// Writable allows assembled documents to be written to the source.
	Writable bool `toml:"writable" yaml:"writable"`
}

// Config is the configuration of the pipeline.
type Config struct {

	// Sources are the asset sources; the defaults are assets and
	// packages, read-only, and saves, writable.
	Sources []Source `toml:"sources" yaml:"sources"`

	// LoadWorkers is the maximum number of concurrent loads.
	LoadWorkers int `toml:"load_workers" yaml:"load_workers"`

	// WriteWorkers is the maximum number of concurrent writes.
	WriteWorkers int `toml:"write_workers" yaml:"write_workers"`

	// LogLevel is the minimum level of logged messages:
	// debug, info, warn or error.
	LogLevel string `toml:"log_level" yaml:"log_level"`

	// Metrics enables prometheus metrics.
	Metrics bool `toml:"metrics" yaml:"metrics"`

	// Watch reloads assets of directory sources when their files change.
	Watch bool `toml:"watch" yaml:"watch"`
}

// Defaults sets default values for unset fields.
func (cf *Config) Defaults() {
	if len(cf.Sources) == 0 {
		cf.Sources = []Source{
			{Name: asset.SourceAssets},
			{Name: asset.SourcePackages},
			{Name: asset.SourceSaves, Writable: true},
		}
	}
	if cf.LoadWorkers <= 0 {
		cf.LoadWorkers = 4
	}
	if cf.WriteWorkers <= 0 {
		cf.WriteWorkers = 2
	}
	if cf.LogLevel == "" {
		cf.LogLevel = "info"
	}
}

// New returns a default config.
func New() *Config {
	cf := &Config{}
	cf.Defaults()
	return cf
}

// Open reads the config from the given file, in TOML or YAML by its
// extension, and sets defaults for anything the file leaves unset.
func Open(filename string) (*Config, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	cf, err := Parse(b, filepath.Ext(filename))
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", filename, err)
	}
	return cf, nil
}

// Parse parses a config in the format of the given extension.
func Parse(b []byte, ext string) (*Config, error) {
	cf := &Config{}
	var err error
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "toml":
		err = toml.Unmarshal(b, cf)
	case "yaml", "yml":
		err = yaml.Unmarshal(b, cf)
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return nil, err
	}
	cf.Defaults()
	return cf, cf.Validate()
}

// Save writes the config to the given file, in TOML or YAML by its
// extension.
func (cf *Config) Save(filename string) error {
	var b []byte
	var err error
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		b, err = toml.Marshal(cf)
	case ".yaml", ".yml":
		b, err = yaml.Marshal(cf)
	default:
		return fmt.Errorf("unsupported config format %q", filepath.Ext(filename))
	}
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0o644)
}

// Validate checks that source names are valid and unique.
func (cf *Config) Validate() error {
	seen := map[string]bool{}
	var errs []error
	for _, s := range cf.Sources {
		switch {
		case s.Name == "" || strings.ContainsAny(s.Name, ":/#"):
			errs = append(errs, errors.New(errors.KindSource, s.Name, "invalid source name"))
		case seen[s.Name]:
			errs = append(errs, errors.New(errors.KindSource, s.Name, "duplicate source"))
		}
		seen[s.Name] = true
	}
	if _, err := cf.Level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Level returns the log level.
func (cf *Config) Level() (slog.Level, error) {
	var lv slog.Level
	err := lv.UnmarshalText([]byte(cf.LogLevel))
	return lv, err
}

// AssetSources opens the configured sources.
func (cf *Config) AssetSources() (*asset.Sources, error) {
	srcs := asset.NewSources()
	for _, s := range cf.Sources {
		var src *asset.Source
		var err error
		if s.Dir == "" {
			src, err = asset.MemSource(s.Name, s.Writable)
		} else {
			var dir string
			dir, err = homedir.Expand(s.Dir)
			if err == nil {
				src, err = asset.DirSource(s.Name, dir, s.Writable)
			}
		}
		if err != nil {
			return nil, err
		}
		srcs.Add(src)
	}
	return srcs, nil
}
