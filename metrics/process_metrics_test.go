// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

//go:build linux

package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIOCollectorRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "io")
	require.NoError(t, os.WriteFile(path, []byte(
		"rchar: 100\nwchar: 200\nsyscr: 3\nsyscw: 4\nread_bytes: 4096\nwrite_bytes: 8192\ncancelled_write_bytes: 0\n",
	), 0600))

	c := NewIOCollector()
	c.path = path

	values, err := c.read()
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{
		"syscr":       3,
		"syscw":       4,
		"read_bytes":  4096,
		"write_bytes": 8192,
	}, values)

	ch := make(chan prometheus.Metric, len(ioFields))
	c.Collect(ch)
	assert.Len(t, ch, len(ioFields))
}

func TestIOCollectorMissingFile(t *testing.T) {
	c := NewIOCollector()
	c.path = filepath.Join(t.TempDir(), "missing")

	ch := make(chan prometheus.Metric, len(ioFields))
	c.Collect(ch)
	assert.Len(t, ch, 0)
}
