// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package config holds the settings of a stakepoints node, as read from a YAML file.
package config

import (
	"bytes"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/stakepoints/log"
)

type API struct {
	Addr                 string        `yaml:"addr"`
	Cors                 string        `yaml:"cors"`
	LogsLimit            uint64        `yaml:"logs-limit"`
	EnableLogs           bool          `yaml:"enable-logs"`
	SlowQueriesThreshold time.Duration `yaml:"slow-queries-threshold"`
	Log5xxErrors         bool          `yaml:"log-5xx-errors"`
	Pprof                bool          `yaml:"pprof"`
}

type Server struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

type Auth struct {
	// Window bounds the distance between a request timestamp and the node clock.
	Window time.Duration `yaml:"window"`
}

type NTP struct {
	Server    string        `yaml:"server"`
	Tolerance time.Duration `yaml:"tolerance"`
	Interval  time.Duration `yaml:"interval"`
}

type Config struct {
	DataDir   string `yaml:"data-dir"`
	Cache     int    `yaml:"cache"` // MiB
	Dev       bool   `yaml:"dev"`
	Verbosity uint64 `yaml:"verbosity"`
	JSONLogs  bool   `yaml:"json-logs"`

	API     API    `yaml:"api"`
	Metrics Server `yaml:"metrics"`
	Admin   Server `yaml:"admin"`
	Auth    Auth   `yaml:"auth"`
	NTP     NTP    `yaml:"ntp"`
}

// Default returns the configuration used when neither a file nor flags say otherwise.
func Default() *Config {
	return &Config{
		Cache:     256,
		Verbosity: log.LegacyLevelInfo,
		API: API{
			Addr:      "localhost:8670",
			LogsLimit: 1000,
		},
		Metrics: Server{Addr: "localhost:2112"},
		Admin:   Server{Addr: "localhost:2113"},
		Auth:    Auth{Window: 30 * time.Second},
		NTP: NTP{
			Server:    "pool.ntp.org",
			Tolerance: 10 * time.Second,
			Interval:  time.Hour,
		},
	}
}

// Load reads the file at path over the defaults. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, errors.Wrapf(err, "decode config [%v]", path)
	}
	return cfg, nil
}

// Write saves cfg to path.
func Write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "encode config")
	}
	return errors.Wrap(os.WriteFile(path, data, 0600), "write config")
}

const maxVerbosity = 9

func validAddr(addr string) error {
	_, _, err := net.SplitHostPort(addr)
	return err
}

// Validate reports the first setting the node cannot run with.
func (c *Config) Validate() error {
	if c.Verbosity > maxVerbosity {
		return fmt.Errorf("verbosity: %d out of range 0-%d", c.Verbosity, maxVerbosity)
	}
	if c.Cache < 0 {
		return fmt.Errorf("cache: negative size %d", c.Cache)
	}
	if err := validAddr(c.API.Addr); err != nil {
		return errors.WithMessage(err, "api.addr")
	}
	if c.API.LogsLimit == 0 {
		return errors.New("api.logs-limit: must be greater than 0")
	}
	if c.API.SlowQueriesThreshold < 0 {
		return errors.New("api.slow-queries-threshold: negative duration")
	}
	if c.Metrics.Enabled {
		if err := validAddr(c.Metrics.Addr); err != nil {
			return errors.WithMessage(err, "metrics.addr")
		}
	}
	if c.Admin.Enabled {
		if err := validAddr(c.Admin.Addr); err != nil {
			return errors.WithMessage(err, "admin.addr")
		}
	}
	if c.Auth.Window < time.Second {
		return errors.New("auth.window: must be at least 1s")
	}
	if c.NTP.Server != "" && c.NTP.Interval <= 0 {
		return errors.New("ntp.interval: must be positive")
	}
	return nil
}
