// Package docker provides the container-failures probe implementation.
package docker

import (
	"context"
	"sort"
	"strings"

	"github.com/hostsnap/hostsnap/internal/probe"
	"github.com/hostsnap/hostsnap/internal/toolrun"
)

// Name is the probe name in the snapshot.
const Name = "container-failures"

// Descriptor returns the probe descriptor.
func Descriptor() probe.Descriptor {
	return probe.Descriptor{Name: Name, Kind: probe.KindList}
}

// Collect lists containers that exited, died, or report an unhealthy health
// check. The value is the deduplicated, lexicographically sorted list of
// container names; an empty list is a success, not a failure.
func Collect(ctx context.Context, r toolrun.Runner) probe.Outcome {
	stopped, err := r.Output(ctx, "docker", "ps", "-a",
		"--filter", "status=exited",
		"--filter", "status=dead",
		"--format", "{{.Names}}")
	if err != nil {
		return probe.FromToolError(err)
	}

	unhealthy, err := r.Output(ctx, "docker", "ps",
		"--filter", "health=unhealthy",
		"--format", "{{.Names}}")
	if err != nil {
		return probe.FromToolError(err)
	}

	return probe.OK(MergeNames(stopped, unhealthy))
}

// MergeNames combines newline-delimited name lists into one deduplicated,
// sorted slice. The result is never nil so it serializes as [].
func MergeNames(lists ...[]byte) []string {
	seen := make(map[string]bool)
	names := make([]string, 0)

	for _, list := range lists {
		for _, name := range strings.Split(string(list), "\n") {
			name = strings.TrimSpace(name)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}

	sort.Strings(names)
	return names
}
