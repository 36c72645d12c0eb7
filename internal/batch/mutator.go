package batch

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
)

// Config collects the mutation engine's tuning constants in one immutable
// value. Zero values are replaced with the defaults the remote service is
// known to tolerate.
type Config struct {
	BatchSize            int
	MaxRetries           int
	InitialRetryDelay    time.Duration
	RetryDelayMultiplier int
}

func (c Config) withDefaults() Config {
	if c.BatchSize <= 0 {
		c.BatchSize = 25
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.InitialRetryDelay <= 0 {
		c.InitialRetryDelay = 10 * time.Second
	}
	if c.RetryDelayMultiplier <= 0 {
		c.RetryDelayMultiplier = 2
	}
	return c
}

// AddFunc is the abstract remote mutation call. It submits ids to the
// playlist and returns the raw, shape-polymorphic response body. The remote
// side is not trusted to deduplicate repeated IDs.
type AddFunc func(ctx context.Context, playlistID string, ids []string) (json.RawMessage, error)

// BatchState is the per-batch retry state: the IDs not yet confirmed, the
// IDs confirmed so far in confirmation order, and the number of attempts
// used. States are values; each attempt produces a successor via apply.
type BatchState struct {
	Pending   []string
	Confirmed []string
	Attempt   int
}

// NewBatchState creates the initial state for one batch of IDs.
func NewBatchState(ids []string) BatchState {
	return BatchState{Pending: append([]string(nil), ids...)}
}

// apply returns the successor state after one attempt that confirmed the
// given IDs. Only IDs actually pending move to the confirmed set; an ID is
// removed from pending the moment it is confirmed, so it can never also
// land in unconfirmed.
func (s BatchState) apply(confirmed []string) BatchState {
	next := BatchState{
		Pending:   append([]string(nil), s.Pending...),
		Confirmed: append([]string(nil), s.Confirmed...),
		Attempt:   s.Attempt + 1,
	}
	for _, id := range confirmed {
		for i, pending := range next.Pending {
			if pending == id {
				next.Pending = append(next.Pending[:i], next.Pending[i+1:]...)
				next.Confirmed = append(next.Confirmed, id)
				break
			}
		}
	}
	return next
}

// Resolved reports whether the batch needs no further attempts.
func (s BatchState) Resolved(maxRetries int) bool {
	return len(s.Pending) == 0 || s.Attempt >= maxRetries
}

// Report is the final confirmed/unconfirmed partition of a run. The two
// lists are disjoint by construction and together cover every attempted ID.
type Report struct {
	Confirmed   []string // in confirmation order
	Unconfirmed []string // in exhaustion order
	Attempted   int
}

// Mutator partitions target IDs into fixed-size batches and submits each
// with bounded retries, resubmitting only the still-pending subset so that
// a flaky call followed by a clean retry never re-adds confirmed items.
type Mutator struct {
	add            AddFunc
	cfg            Config
	sleep          func(time.Duration)
	betweenBatches func()
	logger         *log.Logger
}

// MutatorOpts configures a Mutator. Sleep defaults to [time.Sleep];
// BetweenBatches defaults to no pacing; Logger to the package default.
type MutatorOpts struct {
	Add            AddFunc
	Config         Config
	Sleep          func(time.Duration)
	BetweenBatches func()
	Logger         *log.Logger
}

// NewMutator creates a Mutator around the given remote add call.
func NewMutator(opts MutatorOpts) *Mutator {
	if opts.Sleep == nil {
		opts.Sleep = time.Sleep
	}
	if opts.BetweenBatches == nil {
		opts.BetweenBatches = func() {}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Mutator{
		add:            opts.Add,
		cfg:            opts.Config.withDefaults(),
		sleep:          opts.Sleep,
		betweenBatches: opts.BetweenBatches,
		logger:         opts.Logger,
	}
}

// AddAll adds ids to the playlist in strictly sequential batches and returns
// the run's confirmed/unconfirmed partition. Batch b+1 never starts before
// batch b fully resolves. Transport errors and unrecognized responses count
// as zero-information attempts; retry-budget exhaustion is a normal terminal
// state surfaced through the unconfirmed set, not an error.
func (m *Mutator) AddAll(ctx context.Context, playlistID string, ids []string) *Report {
	report := &Report{Attempted: len(ids)}
	unconfirmedSeen := make(map[string]bool)

	batchNum := 0
	for start := 0; start < len(ids); start += m.cfg.BatchSize {
		end := min(start+m.cfg.BatchSize, len(ids))
		batchNum++

		if start > 0 {
			m.betweenBatches()
		}

		state := m.runBatch(ctx, playlistID, batchNum, ids[start:end])

		report.Confirmed = append(report.Confirmed, state.Confirmed...)
		for _, id := range state.Pending {
			if !unconfirmedSeen[id] {
				unconfirmedSeen[id] = true
				report.Unconfirmed = append(report.Unconfirmed, id)
			}
		}
	}

	return report
}

// runBatch drives one batch's bounded retry loop to resolution.
func (m *Mutator) runBatch(ctx context.Context, playlistID string, batchNum int, ids []string) BatchState {
	state := NewBatchState(ids)
	logger := m.logger.With("batch", batchNum)

	for !state.Resolved(m.cfg.MaxRetries) {
		if state.Attempt > 0 {
			delay := m.retryDelay(state.Attempt)
			logger.Info("retrying unconfirmed tracks",
				"pending", len(state.Pending),
				"attempt", state.Attempt+1,
				"max_attempts", m.cfg.MaxRetries,
				"delay", delay)
			m.sleep(delay)
		}

		var confirmed []string
		raw, err := m.add(ctx, playlistID, state.Pending)
		if err != nil {
			// Zero information gained: nothing confirmed, everything stays
			// pending for the next attempt.
			logger.Warn("add call failed", "attempt", state.Attempt+1, "err", err)
		} else {
			confirmed = ParseConfirmed(raw, state.Pending)
			if len(confirmed) == 0 {
				logger.Warn("response lacked a clear success indicator", "attempt", state.Attempt+1)
			}
		}

		state = state.apply(confirmed)
		if len(confirmed) > 0 {
			logger.Info("tracks confirmed this attempt",
				"confirmed", len(confirmed), "pending", len(state.Pending))
		}
	}

	if len(state.Pending) > 0 {
		logger.Warn("retry budget exhausted with unconfirmed tracks",
			"unconfirmed", len(state.Pending), "attempts", state.Attempt)
	}

	return state
}

// retryDelay computes initial * multiplier^(attempt-1) for attempts >= 1.
func (m *Mutator) retryDelay(attempt int) time.Duration {
	delay := m.cfg.InitialRetryDelay
	for i := 1; i < attempt; i++ {
		delay *= time.Duration(m.cfg.RetryDelayMultiplier)
	}
	return delay
}
