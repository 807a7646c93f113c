// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

//go:build linux

package metrics

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

// ioFields maps the /proc/[pid]/io keys to the exported counter suffix and help.
var ioFields = []struct {
	key, name, help string
}{
	{"syscr", "read_syscalls_total", "Read syscalls issued by the process."},
	{"syscw", "write_syscalls_total", "Write syscalls issued by the process."},
	{"read_bytes", "read_bytes_total", "Bytes the process caused to be fetched from storage."},
	{"write_bytes", "write_bytes_total", "Bytes the process caused to be sent to storage."},
}

// IOCollector exports the process io counters, which is where leveldb batch
// commits and journal inserts show up on a busy node.
type IOCollector struct {
	path  string
	descs map[string]*prometheus.Desc
}

// NewIOCollector creates a collector for the current process.
func NewIOCollector() *IOCollector {
	c := &IOCollector{
		path:  fmt.Sprintf("/proc/%d/io", os.Getpid()),
		descs: make(map[string]*prometheus.Desc, len(ioFields)),
	}
	for _, f := range ioFields {
		c.descs[f.key] = prometheus.NewDesc(prometheus.BuildFQName(namespace, "process", f.name), f.help, nil, nil)
	}
	return c
}

// Describe implements prometheus.Collector.
func (c *IOCollector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range c.descs {
		ch <- d
	}
}

// Collect implements prometheus.Collector. Nothing is sent when /proc is unreadable.
func (c *IOCollector) Collect(ch chan<- prometheus.Metric) {
	values, err := c.read()
	if err != nil {
		logger.Debug("unable to read process io", "err", err)
		return
	}
	for key, v := range values {
		ch <- prometheus.MustNewConstMetric(c.descs[key], prometheus.CounterValue, float64(v))
	}
}

func (c *IOCollector) read() (map[string]int64, error) {
	file, err := os.Open(c.path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	values := make(map[string]int64, len(c.descs))
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		key, raw, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}
		if _, known := c.descs[key]; !known {
			continue
		}
		v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			logger.Warn("unable to parse io value", "key", key, "err", err)
			continue
		}
		values[key] = v
	}
	return values, scanner.Err()
}

var ioRegistered atomic.Bool

func registerIOCollector() {
	if ioRegistered.CompareAndSwap(false, true) {
		prometheus.MustRegister(NewIOCollector())
	}
}
