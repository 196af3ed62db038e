// Package probes provides the fixed probe catalog.
package probes

import (
	"context"

	"github.com/hostsnap/hostsnap/internal/probe"
	"github.com/hostsnap/hostsnap/internal/probes/docker"
	"github.com/hostsnap/hostsnap/internal/probes/loadavg"
	"github.com/hostsnap/hostsnap/internal/probes/memory"
	"github.com/hostsnap/hostsnap/internal/probes/osrelease"
	"github.com/hostsnap/hostsnap/internal/probes/smart"
	"github.com/hostsnap/hostsnap/internal/probes/uptime"
	"github.com/hostsnap/hostsnap/internal/probes/zpool"
	"github.com/hostsnap/hostsnap/internal/toolrun"
)

// Entry binds a probe descriptor to its collector. Collectors for probes
// that do not need the drive list ignore the driveRefs argument.
type Entry struct {
	probe.Descriptor
	Collect func(ctx context.Context, r toolrun.Runner, driveRefs []string) probe.Outcome
}

// Catalog returns the full probe set. The catalog is built once at startup
// and treated as immutable afterwards.
func Catalog(pool string) []Entry {
	return []Entry{
		{
			Descriptor: uptime.Descriptor(),
			Collect: func(ctx context.Context, _ toolrun.Runner, _ []string) probe.Outcome {
				return uptime.Collect(ctx)
			},
		},
		{
			Descriptor: osrelease.Descriptor(),
			Collect: func(ctx context.Context, _ toolrun.Runner, _ []string) probe.Outcome {
				return osrelease.Collect(ctx)
			},
		},
		{
			Descriptor: loadavg.Descriptor(),
			Collect: func(ctx context.Context, _ toolrun.Runner, _ []string) probe.Outcome {
				return loadavg.Collect(ctx)
			},
		},
		{
			Descriptor: memory.Descriptor(),
			Collect: func(ctx context.Context, r toolrun.Runner, _ []string) probe.Outcome {
				return memory.Collect(ctx, r)
			},
		},
		{
			Descriptor: zpool.HealthDescriptor(),
			Collect: func(ctx context.Context, r toolrun.Runner, _ []string) probe.Outcome {
				return zpool.CollectHealth(ctx, r)
			},
		},
		{
			Descriptor: zpool.SpaceDescriptor(),
			Collect: func(ctx context.Context, r toolrun.Runner, _ []string) probe.Outcome {
				return zpool.CollectSpace(ctx, r, pool)
			},
		},
		{
			Descriptor: smart.HealthDescriptor(),
			Collect: func(ctx context.Context, r toolrun.Runner, driveRefs []string) probe.Outcome {
				return smart.CollectHealth(ctx, r, driveRefs)
			},
		},
		{
			Descriptor: smart.TempDescriptor(),
			Collect: func(ctx context.Context, r toolrun.Runner, driveRefs []string) probe.Outcome {
				return smart.CollectTemperature(ctx, r, driveRefs)
			},
		},
		{
			Descriptor: docker.Descriptor(),
			Collect: func(ctx context.Context, r toolrun.Runner, _ []string) probe.Outcome {
				return docker.Collect(ctx, r)
			},
		},
	}
}

// Descriptors returns just the descriptors of the full probe set.
func Descriptors(pool string) []probe.Descriptor {
	entries := Catalog(pool)
	descs := make([]probe.Descriptor, 0, len(entries))
	for _, e := range entries {
		descs = append(descs, e.Descriptor)
	}
	return descs
}
