// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/stakepoints/api"
	"github.com/vechain/stakepoints/api/admin"
	"github.com/vechain/stakepoints/auth"
	"github.com/vechain/stakepoints/clock"
	"github.com/vechain/stakepoints/co"
	"github.com/vechain/stakepoints/health"
	"github.com/vechain/stakepoints/log"
	"github.com/vechain/stakepoints/metrics"
	"github.com/vechain/stakepoints/runtime"
	"github.com/vechain/stakepoints/storage"
)

var (
	version   string
	gitCommit string
	gitTag    string
	logger    = log.WithContext("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "Stakepoints",
		Usage:     "Staking points ledger and escrow service",
		Copyright: "2025 VeChain Foundation <https://vechain.org/>",
		Flags: []cli.Flag{
			configFlag,
			dataDirFlag,
			cacheFlag,
			devFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiLogsLimitFlag,
			enableAPILogsFlag,
			apiSlowQueriesThresholdFlag,
			apiLog5xxErrorsFlag,
			pprofFlag,
			authWindowFlag,
			ntpServerFlag,
			verbosityFlag,
			jsonLogsFlag,
			enableMetricsFlag,
			metricsAddrFlag,
			enableAdminFlag,
			adminAddrFlag,
		},
		Action: defaultAction,
		Commands: []cli.Command{
			{
				Name:  "master-key",
				Usage: "print the address of the node master key, generating it when missing",
				Flags: []cli.Flag{
					dataDirFlag,
					exportMasterKeyFlag,
				},
				Action: masterKeyAction,
			},
			{
				Name:  "inspect",
				Usage: "dump stored records of a stopped node",
				Flags: []cli.Flag{
					dataDirFlag,
					accountFlag,
					escrowFlag,
					holderFlag,
					listAccountsFlag,
				},
				Action: inspectAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	exitSignal := handleExitSignal()

	defer func() { logger.Info("exited") }()

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	logLevel := initLogger(cfg)

	if cfg.Metrics.Enabled {
		metrics.InitializePrometheusMetrics()
	}

	dataDir, err := makeDataDir(cfg)
	if err != nil {
		return err
	}
	master, err := auth.LoadOrGenerateKey(masterKeyPath(dataDir))
	if err != nil {
		return errors.WithMessage(err, "master key")
	}

	mainDB, cacheRecords, err := openMainDB(cfg, dataDir)
	if err != nil {
		return err
	}
	defer func() { logger.Info("closing main database..."); mainDB.Close() }()

	store, err := storage.NewStore(mainDB, cacheRecords)
	if err != nil {
		return err
	}

	logDB, err := openLogDB(dataDir)
	if err != nil {
		return err
	}
	defer func() { logger.Info("closing journal database..."); logDB.Close() }()

	nodeHealth := health.New(cfg.NTP.Tolerance)
	rt := runtime.New(store, clock.System{}, logDB, runtime.Options{Dev: cfg.Dev, Health: nodeHealth})
	defer func() { logger.Info("closing runtime..."); rt.Close() }()

	var goes co.Goes
	defer func() {
		if !goes.WaitTimeout(5 * time.Second) {
			logger.Warn("background routines still running", "n", goes.Running())
		}
	}()
	if cfg.NTP.Server != "" {
		goes.Go(func() {
			clock.Watch(exitSignal, cfg.NTP.Server, cfg.NTP.Tolerance, cfg.NTP.Interval, nodeHealth.ClockOffset)
		})
	}

	apiLogs := &atomic.Bool{}
	apiLogs.Store(cfg.API.EnableLogs)

	apiHandler, closeAPI := api.New(rt, logDB, auth.NewVerifier(clock.System{}, cfg.Auth.Window), api.Options{
		AllowedOrigins:       cfg.API.Cors,
		PprofOn:              cfg.API.Pprof,
		EnableMetrics:        cfg.Metrics.Enabled,
		EnableReqLogger:      apiLogs,
		SlowQueriesThreshold: cfg.API.SlowQueriesThreshold,
		Log5xxErrors:         cfg.API.Log5xxErrors,
		LogsLimit:            cfg.API.LogsLimit,
	})
	defer func() { logger.Info("closing subscriptions..."); closeAPI() }()

	var (
		servers serverGroup
		urls    serverURLs
	)
	if urls.api, err = servers.listen("API", cfg.API.Addr, apiHandler, "/"); err != nil {
		return err
	}
	if cfg.Metrics.Enabled {
		if urls.metrics, err = servers.listen("metrics", cfg.Metrics.Addr, metricsHandler(), "/metrics"); err != nil {
			return err
		}
	}
	if cfg.Admin.Enabled {
		if urls.admin, err = servers.listen("admin", cfg.Admin.Addr, admin.New(logLevel, apiLogs, nodeHealth), "/admin"); err != nil {
			return err
		}
	}

	printStartupMessage(cfg, logDB, auth.KeyAddress(master), urls)

	return servers.run(exitSignal)
}
