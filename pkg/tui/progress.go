// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"
)

var DefaultFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Progress redraws a single "frame label done/total" line until stopped.
// Add may be called from any goroutine.
type Progress struct {
	out      io.Writer
	label    string
	total    int
	interval time.Duration
	color    Colorizer

	done atomic.Int64

	mu      sync.Mutex
	idx     int
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// ProgressOption configures a Progress.
type ProgressOption func(*Progress)

func WithInterval(d time.Duration) ProgressOption {
	return func(p *Progress) {
		if d > 0 {
			p.interval = d
		}
	}
}

func WithColor(c Colorizer) ProgressOption {
	return func(p *Progress) {
		p.color = c
	}
}

func NewProgress(out io.Writer, label string, total int, opts ...ProgressOption) *Progress {
	p := &Progress{
		out:      out,
		label:    label,
		total:    total,
		interval: 120 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Add records n more finished items.
func (p *Progress) Add(n int) {
	p.done.Add(int64(n))
}

// Done returns the number of finished items.
func (p *Progress) Done() int {
	return int(p.done.Load())
}

func (p *Progress) Start() {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.stopCh = make(chan struct{})
	p.doneCh = make(chan struct{})
	p.mu.Unlock()

	p.render(0)
	go p.loop()
}

// Stop ends the redraw loop and erases the line.
func (p *Progress) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	stopCh, doneCh := p.stopCh, p.doneCh
	p.running = false
	p.mu.Unlock()

	close(stopCh)
	<-doneCh
	fmt.Fprint(p.out, "\r\033[K")
}

func (p *Progress) loop() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.mu.Lock()
			p.idx = (p.idx + 1) % len(DefaultFrames)
			idx := p.idx
			p.mu.Unlock()
			p.render(idx)
		case <-p.stopCh:
			close(p.doneCh)
			return
		}
	}
}

func (p *Progress) render(idx int) {
	frame := p.color.Wrap(Yellow, DefaultFrames[idx%len(DefaultFrames)])
	fmt.Fprintf(p.out, "\r\033[K%s %s %d/%d", frame, p.label, p.Done(), p.total)
}
