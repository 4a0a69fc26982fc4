// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"
)

func TestNewColorizer(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
		noColor string
		term    string
		want    bool
	}{
		{"disabled", false, "", "xterm", false},
		{"enabled", true, "", "xterm-256color", true},
		{"no color", true, "1", "xterm", false},
		{"dumb", true, "", "dumb", false},
		{"no term", true, "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", tt.noColor)
			t.Setenv("TERM", tt.term)
			if got := NewColorizer(tt.enabled).Enabled; got != tt.want {
				t.Errorf("NewColorizer(%v).Enabled = %v, want %v", tt.enabled, got, tt.want)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	on := Colorizer{Enabled: true}
	if got := on.Wrap(Red, "boom"); got != "\x1b[31mboom\x1b[0m" {
		t.Errorf("Wrap(Red) = %q", got)
	}
	if got := on.Wrap(Plain, "boom"); got != "boom" {
		t.Errorf("Wrap(Plain) = %q, want boom", got)
	}
	if got := (Colorizer{}).Wrap(Red, "boom"); got != "boom" {
		t.Errorf("disabled Wrap(Red) = %q, want boom", got)
	}
}

func TestIsTerminal(t *testing.T) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pty.Open: %v", err)
	}
	defer ptmx.Close()
	defer tty.Close()

	if !IsTerminal(tty) {
		t.Error("IsTerminal(pty) = false, want true")
	}
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if IsTerminal(f) {
		t.Error("IsTerminal(file) = true, want false")
	}
	if IsTerminal(nil) {
		t.Error("IsTerminal(nil) = true, want false")
	}

	t.Setenv("NO_COLOR", "")
	t.Setenv("TERM", "xterm")
	if !ForFile(tty).Enabled || ForFile(f).Enabled {
		t.Error("ForFile did not follow terminal detection")
	}
}

type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

func TestProgress(t *testing.T) {
	var out syncBuffer
	p := NewProgress(&out, "parsing", 3, WithInterval(time.Millisecond))
	p.Start()
	p.Start()
	var wg sync.WaitGroup
	for range 3 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Add(1)
		}()
	}
	wg.Wait()
	time.Sleep(20 * time.Millisecond)
	p.Stop()
	p.Stop()

	if p.Done() != 3 {
		t.Errorf("Done() = %d, want 3", p.Done())
	}
	got := out.String()
	if !strings.Contains(got, "parsing 0/3") || !strings.Contains(got, "parsing 3/3") {
		t.Errorf("output missing progress counts: %q", got)
	}
	if !strings.HasSuffix(got, "\r\033[K") {
		t.Errorf("output does not end by clearing the line: %q", got)
	}
}
