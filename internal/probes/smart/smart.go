// Package smart provides the per-drive SMART health and temperature probes.
//
// Both probes depend on the drive list produced by the enumerator and invoke
// smartctl once per drive, in parallel. The shared Runner bounds the actual
// subprocess fan-out.
package smart

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/hostsnap/hostsnap/internal/probe"
	"github.com/hostsnap/hostsnap/internal/toolrun"
	"golang.org/x/sync/errgroup"
)

// Probe names in the snapshot.
const (
	HealthName = "drive-health"
	TempName   = "drive-temp"
)

// Attribute 194 is Temperature_Celsius; the reading is the last
// whitespace-delimited field of its line.
const temperatureAttrID = "194"

const passedPhrase = "PASSED"

// Temperature is the drive-temp payload, aggregated over all drives that
// yielded a usable reading.
type Temperature struct {
	Max int `json:"max"`
	Avg int `json:"avg"`
}

// HealthDescriptor returns the drive-health probe descriptor.
func HealthDescriptor() probe.Descriptor {
	return probe.Descriptor{Name: HealthName, Kind: probe.KindBoolean, NeedsDrives: true}
}

// TempDescriptor returns the drive-temp probe descriptor.
func TempDescriptor() probe.Descriptor {
	return probe.Descriptor{Name: TempName, Kind: probe.KindAggregate, NeedsDrives: true}
}

// CollectHealth runs `smartctl -H` for every drive and ANDs the individual
// assessments. With no drives present the result is vacuously true. A drive
// whose smartctl invocation fails altogether fails the probe with the tool
// error instead of guessing at its health.
func CollectHealth(ctx context.Context, r toolrun.Runner, driveRefs []string) probe.Outcome {
	healthy := make([]bool, len(driveRefs))

	g, gctx := errgroup.WithContext(ctx)
	for i, ref := range driveRefs {
		g.Go(func() error {
			out, err := r.Output(gctx, "smartctl", "-H", ref)
			if err != nil {
				return err
			}
			healthy[i] = ParseHealth(out)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return probe.FromToolError(err)
	}

	all := true
	for _, ok := range healthy {
		all = all && ok
	}
	return probe.OK(all)
}

// ParseHealth reports whether `smartctl -H` output contains the passing
// overall-health assessment.
func ParseHealth(out []byte) bool {
	for _, line := range strings.Split(string(out), "\n") {
		if strings.Contains(line, "overall-health self-assessment") {
			return strings.Contains(line, passedPhrase)
		}
	}
	return false
}

// CollectTemperature runs `smartctl -A` for every drive and aggregates the
// temperature readings. Drives without a usable reading are skipped; if no
// drive yields one the probe fails with a parse error rather than producing
// a garbage aggregate.
func CollectTemperature(ctx context.Context, r toolrun.Runner, driveRefs []string) probe.Outcome {
	readings := make([]int, 0, len(driveRefs))

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, ref := range driveRefs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := r.Output(ctx, "smartctl", "-A", ref)
			if err != nil {
				return
			}
			if temp, ok := ParseTemperature(out); ok {
				mu.Lock()
				readings = append(readings, temp)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(readings) == 0 {
		return probe.Failf(probe.CategoryParseError, "no usable temperature reading from %d drive(s)", len(driveRefs))
	}
	return probe.OK(Aggregate(readings))
}

// ParseTemperature extracts the temperature from `smartctl -A` output: the
// last field of the attribute 194 line.
func ParseTemperature(out []byte) (int, bool) {
	for _, line := range strings.Split(string(out), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 || fields[0] != temperatureAttrID {
			continue
		}
		temp, err := strconv.Atoi(fields[len(fields)-1])
		if err != nil {
			return 0, false
		}
		return temp, true
	}
	return 0, false
}

// Aggregate reduces per-drive readings to max and truncated integer mean.
func Aggregate(readings []int) Temperature {
	maxTemp, sum := readings[0], 0
	for _, t := range readings {
		if t > maxTemp {
			maxTemp = t
		}
		sum += t
	}
	return Temperature{Max: maxTemp, Avg: sum / len(readings)}
}
