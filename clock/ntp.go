// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package clock

import (
	"context"
	"time"

	"github.com/beevik/ntp"
	"github.com/ethereum/go-ethereum/common"

	"github.com/vechain/stakepoints/log"
)

var logger = log.WithContext("pkg", "clock")

// DefaultNTPServer is queried when no server is configured.
const DefaultNTPServer = "pool.ntp.org"

// query is swapped in tests.
var query = func(server string) (time.Duration, error) {
	resp, err := ntp.Query(server)
	if err != nil {
		return 0, err
	}
	return resp.ClockOffset, nil
}

// CheckOffset queries server and warns when the local clock is off by more than tolerance.
func CheckOffset(server string, tolerance time.Duration) (time.Duration, error) {
	offset, err := query(server)
	if err != nil {
		logger.Debug("failed to access NTP", "err", err)
		return 0, err
	}
	if offset < 0 {
		offset = -offset
	}
	if offset > tolerance {
		logger.Warn("clock offset detected", "offset", common.PrettyDuration(offset))
	}
	return offset, nil
}

// Watch checks the clock offset every interval until ctx is done. Each result is
// passed to report when it is not nil.
func Watch(ctx context.Context, server string, tolerance, interval time.Duration, report func(time.Duration, error)) {
	logger.Debug("enter clock watch")
	defer logger.Debug("leave clock watch")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	check := func() {
		offset, err := CheckOffset(server, tolerance)
		if report != nil {
			report(offset, err)
		}
	}

	check()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			check()
		}
	}
}
