package probe

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/rileyhilliard/solprobe/internal/config"
	"github.com/rileyhilliard/solprobe/internal/errors"
	"github.com/rileyhilliard/solprobe/internal/logger"
)

// ErrConfirmationTimeout is returned when the slot does not advance within
// the confirmation budget.
var ErrConfirmationTimeout = errors.New(errors.ErrTimeout,
	"No confirmation observed",
	"The node's slot did not advance within the confirmation budget; it may be stalled or far behind")

// Settings are the thresholds and budgets used during evaluation.
type Settings struct {
	ExpectedVersion  string
	LatencyThreshold time.Duration
	CongestionTPS    float64
	ConfirmTimeout   time.Duration
	ConfirmInterval  time.Duration
	BlockWindow      uint64
}

// DefaultSettings mirrors config.DefaultConfig.
func DefaultSettings() Settings {
	return SettingsFrom(config.DefaultConfig())
}

// SettingsFrom extracts evaluation settings from a loaded config.
func SettingsFrom(cfg *config.Config) Settings {
	return Settings{
		ExpectedVersion:  cfg.ExpectedVersion,
		LatencyThreshold: cfg.Thresholds.Latency,
		CongestionTPS:    cfg.Thresholds.CongestionTPS,
		ConfirmTimeout:   cfg.Confirmation.Timeout,
		ConfirmInterval:  cfg.Confirmation.Interval,
		BlockWindow:      cfg.BlockWindow,
	}
}

// Evaluator runs the node queries and folds them into snapshots.
// It holds no state between evaluations.
type Evaluator struct {
	src      Source
	clock    Clock
	settings Settings
	log      logger.Logger
}

// EvaluatorOption configures an Evaluator.
type EvaluatorOption func(*Evaluator)

// WithClock replaces the wall clock.
func WithClock(c Clock) EvaluatorOption {
	return func(e *Evaluator) {
		e.clock = c
	}
}

// WithSettings replaces the default thresholds.
func WithSettings(s Settings) EvaluatorOption {
	return func(e *Evaluator) {
		e.settings = s
	}
}

// WithLogger sets the logger used to trace failed queries.
func WithLogger(l logger.Logger) EvaluatorOption {
	return func(e *Evaluator) {
		e.log = l
	}
}

// NewEvaluator creates an evaluator reading from src.
func NewEvaluator(src Source, opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{
		src:      src,
		clock:    RealClock{},
		settings: DefaultSettings(),
		log:      logger.Noop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Settings returns the thresholds in use.
func (e *Evaluator) Settings() Settings {
	return e.settings
}

// Evaluate runs every query once and returns a complete snapshot.
// Queries shared between sections (health, version, slot, performance
// sample) are made once, so the TPS shown and the congestion flag agree.
func (e *Evaluator) Evaluate(ctx context.Context) Snapshot {
	health := e.NodeHealth(ctx)
	perf, tps := e.networkPerformance(ctx)
	trouble := e.troubleshoot(ctx, health.Responsive, health.Version, health.Slot, tps)

	return Snapshot{
		Health:       health,
		Performance:  perf,
		Troubleshoot: trouble,
		EvaluatedAt:  e.clock.Now(),
	}
}

// NodeHealth queries responsiveness, version, slot, epoch and cluster size.
func (e *Evaluator) NodeHealth(ctx context.Context) NodeHealth {
	var h NodeHealth

	if err := e.src.Health(ctx); err != nil {
		e.log.Debug("health check failed: %v", err)
	} else {
		h.Responsive = true
	}

	if v, err := e.src.Version(ctx); err != nil {
		e.log.Debug("version query failed: %v", err)
	} else {
		h.Version = ptr(v)
	}

	if slot, err := e.src.Slot(ctx); err != nil {
		e.log.Debug("slot query failed: %v", err)
	} else {
		h.Slot = ptr(slot)
	}

	if info, err := e.src.EpochInfo(ctx); err != nil {
		e.log.Debug("epoch query failed: %v", err)
	} else {
		h.Epoch = ptr(info.Epoch)
	}

	if n, err := e.src.ClusterNodeCount(ctx); err != nil {
		e.log.Debug("cluster nodes query failed: %v", err)
	} else {
		h.TotalNodes = ptr(n)
	}

	return h
}

// NetworkPerformance derives TPS and block time from the latest sample and
// times one slot advance.
func (e *Evaluator) NetworkPerformance(ctx context.Context) NetworkPerformance {
	p, _ := e.networkPerformance(ctx)
	return p
}

// networkPerformance also returns the sample's TPS, nil if the sample
// query failed.
func (e *Evaluator) networkPerformance(ctx context.Context) (NetworkPerformance, *float64) {
	var p NetworkPerformance
	var sampleTPS *float64

	if sample, err := e.src.RecentPerformanceSample(ctx); err != nil {
		e.log.Debug("performance sample query failed: %v", err)
	} else {
		if tps, ok := TPS(sample); ok {
			p.TPS = tps
		}
		sampleTPS = ptr(p.TPS)
		if avg, ok := AvgBlockTime(sample); ok {
			p.AvgBlockTime = ptr(avg)
		}
	}

	if d, err := e.ConfirmationTime(ctx); err != nil {
		p.ConfirmationTimeout = stderrors.Is(err, ErrConfirmationTimeout)
		e.log.Debug("confirmation probe: %v", err)
	} else {
		p.ConfirmationTime = ptr(d)
	}

	return p, sampleTPS
}

// Troubleshoot runs the diagnostic checks on their own.
func (e *Evaluator) Troubleshoot(ctx context.Context) Troubleshoot {
	responsive := e.src.Health(ctx) == nil

	var version *string
	if v, err := e.src.Version(ctx); err == nil {
		version = ptr(v)
	}

	return e.troubleshoot(ctx, responsive, version, nil, nil)
}

// troubleshoot evaluates the diagnostic flags given the already known health
// results. slot may be nil, in which case the timed latency query supplies it.
// tps may be nil, in which case the performance sample is fetched here.
func (e *Evaluator) troubleshoot(ctx context.Context, responsive bool, version *string, slot *uint64, tps *float64) Troubleshoot {
	t := Troubleshoot{
		ConnectionOK:    responsive,
		VersionMismatch: VersionMismatch(version, e.settings.ExpectedVersion),
	}

	start := e.clock.Now()
	if s, err := e.src.Slot(ctx); err != nil {
		e.log.Debug("latency probe failed: %v", err)
	} else {
		elapsed := e.clock.Now().Sub(start)
		t.HighLatency = HighLatency(elapsed, e.settings.LatencyThreshold)
		if slot == nil {
			slot = ptr(s)
		}
	}

	if tps == nil {
		if sample, err := e.src.RecentPerformanceSample(ctx); err != nil {
			e.log.Debug("performance sample query failed: %v", err)
		} else if v, ok := TPS(sample); ok {
			tps = ptr(v)
		}
	}
	if tps != nil {
		t.NetworkCongestion = Congested(*tps, e.settings.CongestionTPS)
	}

	if va, err := e.src.VoteAccounts(ctx); err != nil {
		e.log.Debug("vote accounts query failed: %v", err)
	} else {
		t.DelinquentValidators = ptr(uint64(len(va.Delinquent)))
	}

	if slot != nil {
		from := blockRangeStart(*slot, e.settings.BlockWindow)
		if blocks, err := e.src.BlocksWithLimit(ctx, from, e.settings.BlockWindow); err != nil {
			e.log.Debug("blocks query from slot %d failed: %v", from, err)
		} else {
			t.EmptyBlocks = ptr(uint64(len(blocks)))
		}
	}

	if accounts, err := e.src.LargestAccounts(ctx); err != nil {
		e.log.Debug("largest accounts query failed: %v", err)
	} else {
		t.LargeAccounts = ptr(uint64(len(accounts)))
	}

	return t
}

// ConfirmationTime records the current slot and polls until it advances.
// It returns ErrConfirmationTimeout if the slot does not move within the
// confirmation budget.
func (e *Evaluator) ConfirmationTime(ctx context.Context) (time.Duration, error) {
	start := e.clock.Now()
	startSlot, err := e.src.Slot(ctx)
	if err != nil {
		return 0, err
	}

	for {
		if e.clock.Now().Sub(start) > e.settings.ConfirmTimeout {
			return 0, ErrConfirmationTimeout
		}

		current, err := e.src.Slot(ctx)
		if err != nil {
			return 0, err
		}
		if current > startSlot {
			return e.clock.Now().Sub(start), nil
		}

		if err := e.clock.Sleep(ctx, e.settings.ConfirmInterval); err != nil {
			return 0, err
		}
	}
}
