package testsupport

import (
	"context"
	"sync"

	"reelgate/internal/gate"
)

// FakeOracle answers membership checks from a scripted per-channel table and
// records every call in order. Channels without a scripted answer report
// NotMember.
type FakeOracle struct {
	mu      sync.Mutex
	answers map[string]gate.Membership
	err     error
	calls   []string
}

// NewFakeOracle returns an oracle with no scripted answers.
func NewFakeOracle() *FakeOracle {
	return &FakeOracle{answers: make(map[string]gate.Membership)}
}

// Set scripts the answer for a channel.
func (o *FakeOracle) Set(channel string, membership gate.Membership) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.answers[channel] = membership
}

// Fail makes every subsequent call return err, simulating oracle outage.
func (o *FakeOracle) Fail(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.err = err
}

// Member implements gate.Oracle.
func (o *FakeOracle) Member(_ context.Context, channel string, _ int64) (gate.Membership, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, channel)
	if o.err != nil {
		return gate.NotMember, o.err
	}
	if answer, ok := o.answers[channel]; ok {
		return answer, nil
	}
	return gate.NotMember, nil
}

// Calls returns the channels queried so far, in order.
func (o *FakeOracle) Calls() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	calls := make([]string, len(o.calls))
	copy(calls, o.calls)
	return calls
}

// CallCount returns how many membership checks have been made.
func (o *FakeOracle) CallCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.calls)
}

// Reset clears the recorded calls but keeps the scripted answers.
func (o *FakeOracle) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = nil
}
