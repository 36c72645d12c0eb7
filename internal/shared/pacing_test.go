package shared

import (
	"testing"
	"time"
)

func recordingPacer(cfg PacingConfig) (*Pacer, *[]time.Duration) {
	var sleeps []time.Duration
	p := NewTestPacer(cfg, func(d time.Duration) { sleeps = append(sleeps, d) })
	return p, &sleeps
}

func TestPacerGeneral(t *testing.T) {
	cfg := PacingConfig{GeneralMinSeconds: 1.5, GeneralMaxSeconds: 4.0}
	p, sleeps := recordingPacer(cfg)

	for range 20 {
		p.General()
	}

	if len(*sleeps) != 20 {
		t.Fatalf("slept %d times, want 20", len(*sleeps))
	}
	for _, d := range *sleeps {
		if d < 1500*time.Millisecond || d > 4*time.Second {
			t.Errorf("delay %v outside the [1.5s, 4s] window", d)
		}
	}
}

func TestPacerBetweenBatches(t *testing.T) {
	cfg := PacingConfig{BatchMinSeconds: 10, BatchMaxSeconds: 20}
	p, sleeps := recordingPacer(cfg)

	p.BetweenBatches()

	if len(*sleeps) != 1 {
		t.Fatalf("slept %d times, want 1", len(*sleeps))
	}
	if d := (*sleeps)[0]; d < 10*time.Second || d > 20*time.Second {
		t.Errorf("delay %v outside the [10s, 20s] window", d)
	}
}

func TestPacerPostCreate(t *testing.T) {
	p, sleeps := recordingPacer(PacingConfig{PostCreateDelaySeconds: 5})
	p.PostCreate()
	if len(*sleeps) != 1 || (*sleeps)[0] != 5*time.Second {
		t.Errorf("sleeps = %v, want exactly [5s]", *sleeps)
	}
}

func TestPacerZeroConfigSkipsWaits(t *testing.T) {
	p, sleeps := recordingPacer(PacingConfig{})
	p.General()
	p.BetweenBatches()
	p.PostCreate()
	if len(*sleeps) != 0 {
		t.Errorf("sleeps = %v, want none with a zero config", *sleeps)
	}
}
