// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/stakepoints/config"
	"github.com/vechain/stakepoints/types"
)

// copy from go-ethereum
func defaultDataDir() string {
	// Try to place the data folder in the user's home dir
	if home := homeDir(); home != "" {
		if runtime.GOOS == "darwin" {
			return filepath.Join(home, "Library", "Application Support", "org.vechain.stakepoints")
		} else if runtime.GOOS == "windows" {
			return filepath.Join(home, "AppData", "Roaming", "org.vechain.stakepoints")
		} else {
			return filepath.Join(home, ".org.vechain.stakepoints")
		}
	}
	// As we cannot guess a stable location, return empty and handle later
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

// loadConfig reads the config file when one is given, then applies the flags set on the command line.
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if path := ctx.String(configFlag.Name); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	// the file has no say on the data dir default, which depends on the host
	if cfg.DataDir == "" || ctx.IsSet(dataDirFlag.Name) {
		cfg.DataDir = ctx.String(dataDirFlag.Name)
	}

	if ctx.IsSet(cacheFlag.Name) {
		cfg.Cache = ctx.Int(cacheFlag.Name)
	}
	if ctx.IsSet(devFlag.Name) {
		cfg.Dev = ctx.Bool(devFlag.Name)
	}
	if ctx.IsSet(verbosityFlag.Name) {
		cfg.Verbosity = ctx.Uint64(verbosityFlag.Name)
	}
	if ctx.IsSet(jsonLogsFlag.Name) {
		cfg.JSONLogs = ctx.Bool(jsonLogsFlag.Name)
	}
	if ctx.IsSet(apiAddrFlag.Name) {
		cfg.API.Addr = ctx.String(apiAddrFlag.Name)
	}
	if ctx.IsSet(apiCorsFlag.Name) {
		cfg.API.Cors = ctx.String(apiCorsFlag.Name)
	}
	if ctx.IsSet(apiLogsLimitFlag.Name) {
		cfg.API.LogsLimit = ctx.Uint64(apiLogsLimitFlag.Name)
	}
	if ctx.IsSet(enableAPILogsFlag.Name) {
		cfg.API.EnableLogs = ctx.Bool(enableAPILogsFlag.Name)
	}
	if ctx.IsSet(apiSlowQueriesThresholdFlag.Name) {
		cfg.API.SlowQueriesThreshold = ctx.Duration(apiSlowQueriesThresholdFlag.Name)
	}
	if ctx.IsSet(apiLog5xxErrorsFlag.Name) {
		cfg.API.Log5xxErrors = ctx.Bool(apiLog5xxErrorsFlag.Name)
	}
	if ctx.IsSet(pprofFlag.Name) {
		cfg.API.Pprof = ctx.Bool(pprofFlag.Name)
	}
	if ctx.IsSet(authWindowFlag.Name) {
		cfg.Auth.Window = ctx.Duration(authWindowFlag.Name)
	}
	if ctx.IsSet(ntpServerFlag.Name) {
		cfg.NTP.Server = ctx.String(ntpServerFlag.Name)
	}
	if ctx.IsSet(enableMetricsFlag.Name) {
		cfg.Metrics.Enabled = ctx.Bool(enableMetricsFlag.Name)
	}
	if ctx.IsSet(metricsAddrFlag.Name) {
		cfg.Metrics.Addr = ctx.String(metricsAddrFlag.Name)
	}
	if ctx.IsSet(enableAdminFlag.Name) {
		cfg.Admin.Enabled = ctx.Bool(enableAdminFlag.Name)
	}
	if ctx.IsSet(adminAddrFlag.Name) {
		cfg.Admin.Addr = ctx.String(adminAddrFlag.Name)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.WithMessage(err, "config")
	}
	return cfg, nil
}

func parseAddressFlag(ctx *cli.Context, flag cli.StringFlag) (*types.Address, error) {
	s := ctx.String(flag.Name)
	if s == "" {
		return nil, nil
	}
	addr, err := types.ParseAddress(s)
	if err != nil {
		return nil, errors.Wrapf(err, "-%v", flag.Name)
	}
	return &addr, nil
}

// handleExitSignal returns a context cancelled on the first interrupt or termination signal.
func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, syscall.SIGINT, syscall.SIGTERM)

		sig := <-exitSignalCh
		logger.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}
