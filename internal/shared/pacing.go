package shared

import (
	"math/rand"
	"time"
)

// Pacer issues the uniform-random blocking waits that space out remote calls.
// The component issuing a delay owns that wait; nothing else proceeds until
// it elapses.
//
// The sleep function is injectable so tests run without waiting.
type Pacer struct {
	cfg   PacingConfig
	sleep func(time.Duration)
	rand  *rand.Rand
}

// NewPacer creates a Pacer from the given pacing windows.
func NewPacer(cfg PacingConfig) *Pacer {
	return &Pacer{
		cfg:   cfg,
		sleep: time.Sleep,
		rand:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewTestPacer creates a Pacer whose waits invoke the provided sleep function.
// Pass a no-op to make tests instantaneous.
func NewTestPacer(cfg PacingConfig, sleep func(time.Duration)) *Pacer {
	p := NewPacer(cfg)
	if sleep != nil {
		p.sleep = sleep
	}
	return p
}

func (p *Pacer) wait(minSec, maxSec float64) {
	if maxSec <= 0 || maxSec < minSec {
		return
	}
	span := maxSec - minSec
	d := time.Duration((minSec + p.rand.Float64()*span) * float64(time.Second))
	p.sleep(d)
}

// General blocks for a small randomized delay between ordinary actions.
func (p *Pacer) General() {
	p.wait(p.cfg.GeneralMinSeconds, p.cfg.GeneralMaxSeconds)
}

// BetweenBatches blocks for the larger randomized delay inserted before every
// batch after the first.
func (p *Pacer) BetweenBatches() {
	p.wait(p.cfg.BatchMinSeconds, p.cfg.BatchMaxSeconds)
}

// PostCreate blocks for the fixed wait after playlist creation so the remote
// service can sync before items are added.
func (p *Pacer) PostCreate() {
	if d := p.cfg.PostCreateDelay(); d > 0 {
		p.sleep(d)
	}
}
