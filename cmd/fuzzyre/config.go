package main

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/coregx/fuzzyre"
)

// fileConfig is the TOML shape of --config. Absent fields keep their
// defaults.
type fileConfig struct {
	Costs struct {
		Substitute int `toml:"substitute"`
		Delete     int `toml:"delete"`
		Insert     int `toml:"insert"`
	} `toml:"costs"`
	Markers struct {
		DeleteOpen       string `toml:"delete_open"`
		DeleteClose      string `toml:"delete_close"`
		InsertOpen       string `toml:"insert_open"`
		InsertClose      string `toml:"insert_close"`
		ClassPlaceholder string `toml:"class_placeholder"`
	} `toml:"markers"`
	Prefilter *bool `toml:"prefilter"`
}

// loadConfig builds the engine configuration, overlaying the TOML file at
// path on the defaults when path is non-empty.
func loadConfig(path string) (fuzzyre.Config, error) {
	config := fuzzyre.DefaultConfig()
	if path == "" {
		return config, nil
	}

	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return config, fmt.Errorf("loading config %s: %w", path, err)
	}

	if fc.Costs.Substitute != 0 {
		config.Costs.Substitute = fc.Costs.Substitute
	}
	if fc.Costs.Delete != 0 {
		config.Costs.Delete = fc.Costs.Delete
	}
	if fc.Costs.Insert != 0 {
		config.Costs.Insert = fc.Costs.Insert
	}

	if fc.Markers.DeleteOpen != "" {
		config.Markers.DeleteOpen = fc.Markers.DeleteOpen
	}
	if fc.Markers.DeleteClose != "" {
		config.Markers.DeleteClose = fc.Markers.DeleteClose
	}
	if fc.Markers.InsertOpen != "" {
		config.Markers.InsertOpen = fc.Markers.InsertOpen
	}
	if fc.Markers.InsertClose != "" {
		config.Markers.InsertClose = fc.Markers.InsertClose
	}
	if fc.Markers.ClassPlaceholder != "" {
		runes := []rune(fc.Markers.ClassPlaceholder)
		if len(runes) != 1 {
			return config, fmt.Errorf("config %s: class_placeholder must be a single character", path)
		}
		config.Markers.ClassPlaceholder = runes[0]
	}

	if fc.Prefilter != nil {
		config.EnablePrefilter = *fc.Prefilter
	}

	return config, nil
}
