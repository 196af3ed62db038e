package toolrun

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Fake is a scripted Runner for tests. Responses are keyed by the full
// command line ("tool arg1 arg2"); a command with no scripted response fails
// like a missing binary.
type Fake struct {
	mu        sync.Mutex
	responses map[string]FakeResponse
	calls     []string
}

// FakeResponse is one scripted tool result.
type FakeResponse struct {
	Out   []byte
	Err   error
	Delay time.Duration
}

// NewFake creates an empty scripted runner.
func NewFake() *Fake {
	return &Fake{responses: make(map[string]FakeResponse)}
}

// Script registers the response for a command line.
func (f *Fake) Script(commandLine string, resp FakeResponse) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[commandLine] = resp
}

// Calls returns the command lines invoked so far, in invocation order.
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// Output implements Runner.
func (f *Fake) Output(ctx context.Context, tool string, args ...string) ([]byte, error) {
	commandLine := strings.Join(append([]string{tool}, args...), " ")

	f.mu.Lock()
	f.calls = append(f.calls, commandLine)
	resp, ok := f.responses[commandLine]
	f.mu.Unlock()

	if !ok {
		return nil, &RunError{Tool: tool, Err: &missingScriptError{commandLine}}
	}

	if resp.Delay > 0 {
		select {
		case <-time.After(resp.Delay):
		case <-ctx.Done():
			return nil, &RunError{Tool: tool, Timeout: true, Err: ctx.Err()}
		}
	}

	if resp.Err != nil {
		return nil, resp.Err
	}
	return resp.Out, nil
}

type missingScriptError struct {
	commandLine string
}

func (e *missingScriptError) Error() string {
	return "no scripted response for " + e.commandLine
}
