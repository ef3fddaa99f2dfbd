package main

import (
	"os"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// configFile, when present in the working directory, supplies defaults for
// flags not given on the command line.
const configFile = "slc.toml"

type config struct {
	Compile struct {
		// Output is the default output path for the compile subcommand.
		Output string `toml:"output"`
	} `toml:"compile"`
	Run struct {
		// Engine is the default engine for the run subcommand.
		Engine string `toml:"engine"`
	} `toml:"run"`
}

// loadConfig reads slc.toml if it exists; a missing file is not an error.
func loadConfig() (config, error) {
	var cfg config
	data, err := os.ReadFile(configFile)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing %s", configFile)
	}
	logrus.WithField("file", configFile).Debug("loaded config")
	return cfg, nil
}
