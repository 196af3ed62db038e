// Package agg runs the full probe catalog concurrently and assembles
// snapshots.
//
// One Run is one aggregation cycle: drive enumeration starts immediately,
// drive-independent probes run concurrently with it, drive-dependent probes
// block on its result. Every probe resolves to an outcome — success or
// failure — before the snapshot is returned; a slow probe delays nothing but
// itself, so total cycle latency is bounded by the slowest single probe
// budget, not the sum.
package agg

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hostsnap/hostsnap/internal/drives"
	"github.com/hostsnap/hostsnap/internal/probe"
	"github.com/hostsnap/hostsnap/internal/probes"
	"github.com/hostsnap/hostsnap/internal/snapshot"
	"github.com/hostsnap/hostsnap/internal/toolrun"
)

// DefaultTimeout is the per-probe budget when no override is configured.
const DefaultTimeout = 10 * time.Second

// Options tunes per-probe execution budgets.
type Options struct {
	// DefaultTimeout bounds each probe (and drive enumeration) unless
	// overridden. Zero means DefaultTimeout.
	DefaultTimeout time.Duration
	// ProbeTimeouts overrides the budget for individual probes by name.
	ProbeTimeouts map[string]time.Duration
}

// Aggregator runs aggregation cycles over a fixed probe catalog. It holds no
// mutable state, so a single instance can serve concurrent cycles.
type Aggregator struct {
	runner  toolrun.Runner
	entries []probes.Entry
	opts    Options
}

// New creates an Aggregator. It fails if the catalog is empty or declares
// the same probe name twice, since the snapshot invariant (exactly one
// outcome per name) could never hold.
func New(runner toolrun.Runner, entries []probes.Entry, opts Options) (*Aggregator, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("probe catalog is empty")
	}
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("probe catalog contains an unnamed entry")
		}
		if seen[e.Name] {
			return nil, fmt.Errorf("probe catalog declares %q twice", e.Name)
		}
		seen[e.Name] = true
	}
	return &Aggregator{runner: runner, entries: entries, opts: opts}, nil
}

// enumeration is the shared drive-list result. done is closed once List
// returns; refs and err are read-only afterwards.
type enumeration struct {
	done chan struct{}
	refs []string
	err  error
}

// Run executes one aggregation cycle and returns the completed snapshot.
// Probe failures are contained in the snapshot; the returned error is
// non-nil only when the cycle itself could not run.
func (a *Aggregator) Run(ctx context.Context) (*snapshot.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	started := time.Now()
	cycle := uuid.NewString()
	log := slog.With("cycle", cycle)

	enum := &enumeration{done: make(chan struct{})}
	go func() {
		defer close(enum.done)
		enumCtx, cancel := context.WithTimeout(ctx, a.timeoutFor("drives"))
		defer cancel()
		enum.refs, enum.err = drives.List(enumCtx, a.runner)
		if enum.err != nil {
			log.Warn("drive enumeration failed", "error", enum.err)
		} else {
			log.Debug("drive enumeration complete", "count", len(enum.refs))
		}
	}()

	outcomes := make([]probe.Outcome, len(a.entries))
	var wg sync.WaitGroup
	for i, e := range a.entries {
		wg.Add(1)
		go func() {
			defer wg.Done()
			probeStart := time.Now()
			outcomes[i] = a.runOne(ctx, e, enum)
			log.Debug("probe resolved",
				"name", e.Name,
				"failed", outcomes[i].Failed(),
				"duration_ms", time.Since(probeStart).Milliseconds(),
			)
		}()
	}
	wg.Wait()

	merged := make(map[string]probe.Outcome, len(a.entries))
	for i, e := range a.entries {
		out := outcomes[i]
		if out.Value == nil && out.Err == nil {
			// A probe may never be silently absent; an empty slot is a timeout.
			out = probe.Failf(probe.CategoryTimeout, "probe %q did not resolve", e.Name)
		}
		merged[e.Name] = out
	}
	if len(merged) != len(a.entries) {
		return nil, fmt.Errorf("snapshot holds %d outcomes for %d probes", len(merged), len(a.entries))
	}

	hostname, _ := os.Hostname()
	snap := &snapshot.Snapshot{
		ID:         cycle,
		Hostname:   hostname,
		StartedAt:  started.UTC(),
		DurationMs: time.Since(started).Milliseconds(),
		Probes:     merged,
	}

	log.Info("aggregation cycle complete",
		"probes", len(snap.Probes),
		"duration_ms", snap.DurationMs,
	)
	return snap, nil
}

// runOne resolves a single probe to an outcome. It never returns before the
// probe has an outcome and never blocks past the probe's budget, even if the
// collector itself misbehaves.
func (a *Aggregator) runOne(ctx context.Context, e probes.Entry, enum *enumeration) probe.Outcome {
	budget := a.timeoutFor(e.Name)
	probeCtx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	var refs []string
	if e.NeedsDrives {
		select {
		case <-enum.done:
		case <-probeCtx.Done():
			return probe.Failf(probe.CategoryTimeout, "drive enumeration did not finish within %s", budget)
		}
		if enum.err != nil {
			return probe.Failf(probe.CategoryDependency, "drive enumeration failed: %v", enum.err)
		}
		refs = enum.refs
	}

	out := make(chan probe.Outcome, 1)
	go func() {
		out <- e.Collect(probeCtx, a.runner, refs)
	}()

	select {
	case o := <-out:
		return o
	case <-probeCtx.Done():
		return probe.Failf(probe.CategoryTimeout, "probe did not resolve within %s", budget)
	}
}

func (a *Aggregator) timeoutFor(name string) time.Duration {
	if t, ok := a.opts.ProbeTimeouts[name]; ok && t > 0 {
		return t
	}
	if a.opts.DefaultTimeout > 0 {
		return a.opts.DefaultTimeout
	}
	return DefaultTimeout
}
