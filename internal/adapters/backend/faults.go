package backend

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/talentflow/talentflow/pkg/metrics"
)

// Default fault policy constants. Latency models round-trip variance of a
// flaky network; failure rates match the rates the UI is tuned against.
const (
	defaultMinLatency         = 200 * time.Millisecond
	defaultMaxLatency         = 1200 * time.Millisecond
	defaultWriteFailureRate   = 0.10
	defaultReorderFailureRate = 0.08
)

// FaultPolicy is the pluggable unreliability of the simulated backend:
// a latency distribution plus per-endpoint Bernoulli failure probabilities.
// It is configuration data, not inline randomness, so tests substitute
// deterministic seeds or zero rates.
type FaultPolicy struct {
	mu sync.Mutex

	minLatency time.Duration
	maxLatency time.Duration

	writeRate   float64
	reorderRate float64

	rng *rand.Rand
}

// PolicyOption applies a configuration option to the FaultPolicy.
type PolicyOption func(*FaultPolicy)

// WithLatencyRange sets the injected latency bounds.
func WithLatencyRange(minLatency, maxLatency time.Duration) PolicyOption {
	return func(p *FaultPolicy) {
		if minLatency >= 0 && maxLatency >= minLatency {
			p.minLatency = minLatency
			p.maxLatency = maxLatency
		}
	}
}

// WithWriteFailureRate sets the failure probability for mutating endpoints.
func WithWriteFailureRate(rate float64) PolicyOption {
	return func(p *FaultPolicy) {
		if rate >= 0 && rate <= 1 {
			p.writeRate = rate
		}
	}
}

// WithReorderFailureRate sets the failure probability for job reorders.
func WithReorderFailureRate(rate float64) PolicyOption {
	return func(p *FaultPolicy) {
		if rate >= 0 && rate <= 1 {
			p.reorderRate = rate
		}
	}
}

// WithSeed seeds the policy rng for reproducible runs.
func WithSeed(seed int64) PolicyOption {
	return func(p *FaultPolicy) {
		p.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // deterministic seed for reproducible fault injection
	}
}

// NewFaultPolicy builds a policy with the default rates applied.
func NewFaultPolicy(opts ...PolicyOption) *FaultPolicy {
	p := &FaultPolicy{
		minLatency:  defaultMinLatency,
		maxLatency:  defaultMaxLatency,
		writeRate:   defaultWriteFailureRate,
		reorderRate: defaultReorderFailureRate,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // fault injection needs no crypto rand
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// latency draws the next injected delay.
func (p *FaultPolicy) latency() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.maxLatency <= p.minLatency {
		return p.minLatency
	}
	return p.minLatency + time.Duration(p.rng.Int63n(int64(p.maxLatency-p.minLatency)))
}

// shouldFail draws a Bernoulli trial for the given endpoint.
func (p *FaultPolicy) shouldFail(endpoint string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	rate := p.writeRate
	if endpoint == endpointReorderJob {
		rate = p.reorderRate
	}
	if rate <= 0 {
		return false
	}
	if p.rng.Float64() >= rate {
		return false
	}
	metrics.RecordFaultInjected(endpoint)
	return true
}

// fail produces the injected server error for an endpoint.
func fail(endpoint string) error {
	return fmt.Errorf("%s: %w", endpoint, ErrTransient)
}
