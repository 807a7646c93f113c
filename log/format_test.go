// Copyright 2017 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package log

import (
	"bytes"
	"log/slog"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/holiman/uint256"
)

var sink []byte

func BenchmarkPrettyInt64Logfmt(b *testing.B) {
	buf := make([]byte, 100)
	b.ReportAllocs()
	for b.Loop() {
		sink = appendInt64(buf, rand.Int64()) //#nosec G404
	}
}

func BenchmarkPrettyUint64Logfmt(b *testing.B) {
	buf := make([]byte, 100)
	b.ReportAllocs()
	for b.Loop() {
		sink = appendUint64(buf, rand.Uint64(), false) //#nosec G404
	}
}

func TestPrettyInt64(t *testing.T) {
	tests := []struct {
		n int64
		s string
	}{
		{0, "0"},
		{10, "10"},
		{-10, "-10"},
		{99999, "99999"},
		{100000, "100,000"},
		{-1000000, "-1,000,000"},
		{86400000000, "86,400,000,000"},
	}
	for _, tt := range tests {
		if have := string(appendInt64(nil, tt.n)); have != tt.s {
			t.Errorf("invalid formatting: have %v, want %v", have, tt.s)
		}
	}
}

func TestPrettyUint256(t *testing.T) {
	n := new(uint256.Int).Lsh(uint256.NewInt(1), 70)
	if have, want := string(appendU256(nil, n)), "1,180,591,620,717,411,303,424"; have != want {
		t.Errorf("invalid formatting: have %v, want %v", have, want)
	}
}

func TestTerminalHandler(t *testing.T) {
	out := new(bytes.Buffer)
	l := NewLogger(NewTerminalHandlerWithLevel(out, func() *slog.LevelVar {
		var v slog.LevelVar
		v.Set(slog.LevelInfo)
		return &v
	}(), false))

	l.Debug("hidden")
	l.Info("points claimed", "owner", "alice", "points", uint64(2_000_000))

	have := out.String()
	if strings.Contains(have, "hidden") {
		t.Fatalf("debug record should be filtered: %q", have)
	}
	if !strings.HasPrefix(have, "INFO[") || !strings.Contains(have, "owner=alice") || !strings.Contains(have, "points=2,000,000") {
		t.Fatalf("unexpected output %q", have)
	}
}

func TestWithContextFollowsRoot(t *testing.T) {
	pkgLogger := WithContext("pkg", "staker")

	out := new(bytes.Buffer)
	prev := Root()
	SetDefault(NewLogger(NewTerminalHandler(out, false)))
	defer SetDefault(prev)

	pkgLogger.Warn("treasury balance low")
	if !strings.Contains(out.String(), "pkg=staker") {
		t.Fatalf("expected context in output, got %q", out.String())
	}
}
