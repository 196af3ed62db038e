// Package snapshot defines the immutable composite result of one
// aggregation cycle.
package snapshot

import (
	"time"

	"github.com/hostsnap/hostsnap/internal/probe"
)

// Snapshot is the composite result of one aggregation cycle. It is fully
// populated before being handed to a delivery adapter and never mutated
// afterwards. Probes maps probe name to outcome; encoding/json serializes
// map keys in sorted order, so the wire shape is deterministic regardless
// of probe completion order.
type Snapshot struct {
	ID         string                   `json:"id"`
	Hostname   string                   `json:"hostname,omitempty"`
	StartedAt  time.Time                `json:"started_at"`
	DurationMs int64                    `json:"duration_ms"`
	Probes     map[string]probe.Outcome `json:"probes"`
}
