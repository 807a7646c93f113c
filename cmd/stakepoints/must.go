// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	goruntime "runtime"
	"runtime/debug"

	"github.com/elastic/gosigar"
	"github.com/ethereum/go-ethereum/common/fdlimit"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"

	"github.com/vechain/stakepoints/config"
	"github.com/vechain/stakepoints/log"
	"github.com/vechain/stakepoints/logdb"
	"github.com/vechain/stakepoints/lvldb"
	"github.com/vechain/stakepoints/types"
)

// records are small, a MiB of record cache holds about this many of them
const recordsPerMB = 4096

func initLogger(cfg *config.Config) *slog.LevelVar {
	var level slog.LevelVar
	level.Set(log.FromLegacyLevel(int(cfg.Verbosity)))

	var handler slog.Handler
	if cfg.JSONLogs {
		handler = log.JSONHandlerWithLevel(os.Stderr, &level)
	} else {
		useColor := (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
		handler = log.NewTerminalHandlerWithLevel(os.Stderr, &level, useColor)
	}
	log.SetDefault(log.NewLogger(handler))
	return &level
}

func makeDataDir(cfg *config.Config) (string, error) {
	if cfg.DataDir == "" {
		return "", fmt.Errorf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name)
	}
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return "", errors.Wrapf(err, "create data dir [%v]", cfg.DataDir)
	}
	return cfg.DataDir, nil
}

// openMainDB opens the ledger database and returns it with the number of records to cache above it.
func openMainDB(cfg *config.Config, dataDir string) (*lvldb.LevelDB, int, error) {
	cacheMB := normalizeCacheSize(cfg.Cache)
	logger.Debug("cache size(MB)", "size", cacheMB)

	// go-ethereum stuff
	// Ensure Go's GC ignores the database cache for trigger percentage
	gogc := math.Max(20, math.Min(100, 100/(float64(cacheMB)/1024)))

	logger.Debug("sanitize Go's GC trigger", "percent", int(gogc))
	debug.SetGCPercent(int(gogc))

	fdCache, err := suggestFDCache()
	if err != nil {
		return nil, 0, err
	}
	logger.Debug("fd cache", "n", fdCache)

	dir := filepath.Join(dataDir, "main.db")
	db, err := lvldb.New(dir, lvldb.Options{
		CacheSize:              cacheMB / 2,
		OpenFilesCacheCapacity: fdCache,
	})
	if err != nil {
		return nil, 0, errors.Wrapf(err, "open main database [%v]", dir)
	}
	return db, cacheMB / 2 * recordsPerMB, nil
}

func normalizeCacheSize(sizeMB int) int {
	if sizeMB < 16 {
		sizeMB = 16
	}

	var mem gosigar.Mem
	if err := mem.Get(); err != nil {
		logger.Warn("failed to get total mem:", "err", err)
	} else {
		// limit to 1/2 os physical ram
		limitMB := int(mem.Total / 1024 / 1024 / 2)
		if sizeMB > limitMB {
			sizeMB = limitMB
			logger.Warn("cache size(MB) limited", "limit", limitMB)
		}
	}
	return sizeMB
}

func suggestFDCache() (int, error) {
	limit, err := fdlimit.Current()
	if err != nil {
		return 0, errors.Wrap(err, "get fd limit")
	}
	if limit <= 1024 {
		logger.Warn("low fd limit, increase it if possible", "limit", limit)
	}

	n := limit / 2
	if n > 5120 {
		return 5120, nil
	}
	return n, nil
}

func openLogDB(dataDir string) (*logdb.LogDB, error) {
	path := filepath.Join(dataDir, "journal.db")
	db, err := logdb.New(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open journal database [%v]", path)
	}
	return db, nil
}

func masterKeyPath(dataDir string) string {
	return filepath.Join(dataDir, "master.key")
}

func printStartupMessage(cfg *config.Config, journal *logdb.LogDB, master types.Address, urls serverURLs) {
	optional := func(url string) string {
		if url == "" {
			return "disabled"
		}
		return url
	}
	mode := "production"
	if cfg.Dev {
		mode = "dev (faucet enabled)"
	}

	fmt.Printf(`Starting %v
    Mode         [ %v ]
    Data dir     [ %v ]
    Journal      [ %v sqlite %v ]
    Master       [ %v ]
    API portal   [ %v ]
    Metrics      [ %v ]
    Admin        [ %v ]
`,
		fmt.Sprintf("Stakepoints/v%s/%s/%s", fullVersion(), goruntime.GOOS, goruntime.Version()),
		mode,
		cfg.DataDir,
		journal.Path(), journal.DriverVersion(),
		master,
		urls.api,
		optional(urls.metrics),
		optional(urls.admin))
}
