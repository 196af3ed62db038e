// Package probe defines the probe catalog types and the outcome variant
// produced by every probe execution.
package probe

import (
	"errors"
	"fmt"
	"math"

	"github.com/hostsnap/hostsnap/internal/toolrun"
)

// Kind classifies the payload shape a probe produces.
type Kind string

const (
	KindScalar     Kind = "scalar"
	KindStructured Kind = "structured"
	KindBoolean    Kind = "boolean"
	KindList       Kind = "list"
	KindAggregate  Kind = "aggregate"
)

// Category classifies why a probe failed.
type Category string

const (
	CategoryTimeout    Category = "timeout"
	CategoryToolError  Category = "external-tool-error"
	CategoryParseError Category = "parse-error"
	CategoryDependency Category = "dependency-unavailable"
)

// Descriptor identifies one probe in the catalog. Descriptors are defined at
// process start and never change afterwards.
type Descriptor struct {
	Name        string `json:"name"`
	Kind        Kind   `json:"kind"`
	NeedsDrives bool   `json:"needs_drives,omitempty"`
}

// Failure describes why a probe did not produce a value.
type Failure struct {
	Reason   string   `json:"reason"`
	Category Category `json:"category"`
}

// Outcome is the result of one probe execution. Exactly one of Value and Err
// is set.
type Outcome struct {
	Value any      `json:"value,omitempty"`
	Err   *Failure `json:"error,omitempty"`
}

// OK returns a successful outcome carrying v.
func OK(v any) Outcome {
	return Outcome{Value: v}
}

// Failf returns a failed outcome with the given category.
func Failf(cat Category, format string, args ...any) Outcome {
	return Outcome{Err: &Failure{Reason: fmt.Sprintf(format, args...), Category: cat}}
}

// FromToolError converts a Runner error into a failure outcome, mapping
// timeouts to CategoryTimeout and everything else to CategoryToolError.
func FromToolError(err error) Outcome {
	var re *toolrun.RunError
	if errors.As(err, &re) && re.Timeout {
		return Failf(CategoryTimeout, "%v", err)
	}
	return Failf(CategoryToolError, "%v", err)
}

// Failed reports whether the outcome is a failure.
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// TruncatePercent derives an integer percentage from used and available
// figures, truncated toward zero. All percentage probes share this so their
// rounding behavior cannot drift apart.
func TruncatePercent(used, avail uint64) int {
	total := used + avail
	if total == 0 {
		return 0
	}
	return int(100 * used / total)
}

// Truncate2 truncates v to two decimal digits, toward zero.
func Truncate2(v float64) float64 {
	return math.Trunc(v*100) / 100
}
