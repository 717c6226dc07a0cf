package rpc

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

// ErrNoHealthyRPC is returned when no healthy RPC endpoint is available.
var ErrNoHealthyRPC = errors.New("no healthy RPC endpoint available")

// Algorithm defines how an RPC endpoint is selected.
type Algorithm string

const (
	AlgorithmFastest    Algorithm = "fastest"
	AlgorithmRoundRobin Algorithm = "round-robin"
	AlgorithmFailover   Algorithm = "failover"

	// Discard nodes more than this many blocks behind the best.
	staleBlockThreshold = 3
)

// ParseAlgorithm validates an algorithm name as stored in config.json.
// The empty string means fastest.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch a := Algorithm(strings.ToLower(strings.TrimSpace(s))); a {
	case "":
		return AlgorithmFastest, nil
	case AlgorithmFastest, AlgorithmRoundRobin, AlgorithmFailover:
		return a, nil
	default:
		return "", fmt.Errorf("unknown RPC algorithm %q (want fastest, round-robin or failover)", s)
	}
}

// Endpoint represents a single RPC endpoint with its measured attributes.
type Endpoint struct {
	URL         string
	Latency     time.Duration
	BlockNumber uint64
	Healthy     bool // meaningful only when Checked == true
	Checked     bool // true when the endpoint has been health-checked
}

// Picker selects one RPC endpoint per command run according to the
// configured algorithm. Round-robin starts at a random healthy endpoint so
// separate invocations spread their load; repeated picks on the same Picker
// move to the next one.
type Picker struct {
	algo Algorithm
	next int
}

// NewPicker creates a new Picker with the given algorithm.
func NewPicker(algo Algorithm) *Picker {
	return &Picker{algo: algo, next: rand.IntN(1 << 16)}
}

// Algorithm reports the configured selection algorithm.
func (p *Picker) Algorithm() Algorithm { return p.algo }

// Pick selects an endpoint from the provided list according to the algorithm.
func (p *Picker) Pick(endpoints []Endpoint) (*Endpoint, error) {
	if len(endpoints) == 0 {
		return nil, ErrNoHealthyRPC
	}

	switch p.algo {
	case AlgorithmRoundRobin:
		return p.pickRoundRobin(endpoints)
	case AlgorithmFailover:
		return pickFailover(endpoints)
	default:
		return pickFastest(endpoints)
	}
}

// pickFastest scores the healthy endpoints that are not stale and returns the best.
func pickFastest(endpoints []Endpoint) (*Endpoint, error) {
	var bestBlock uint64
	for _, e := range endpoints {
		if e.BlockNumber > bestBlock {
			bestBlock = e.BlockNumber
		}
	}

	var winner *Endpoint
	var bestScore float64
	for _, e := range healthyEndpoints(endpoints) {
		if bestBlock > 0 && bestBlock-e.BlockNumber > staleBlockThreshold {
			continue
		}
		if s := score(e, bestBlock); winner == nil || s > bestScore {
			winner, bestScore = e, s
		}
	}
	if winner == nil {
		return nil, ErrNoHealthyRPC
	}
	return winner, nil
}

func (p *Picker) pickRoundRobin(endpoints []Endpoint) (*Endpoint, error) {
	healthy := healthyEndpoints(endpoints)
	if len(healthy) == 0 {
		return nil, ErrNoHealthyRPC
	}
	e := healthy[p.next%len(healthy)]
	p.next++
	return e, nil
}

// pickFailover always tries endpoints in order, skipping explicitly unhealthy ones.
func pickFailover(endpoints []Endpoint) (*Endpoint, error) {
	for i := range endpoints {
		e := &endpoints[i]
		// Skip checked endpoints that are unhealthy.
		if e.Checked && !e.Healthy {
			continue
		}
		return e, nil
	}
	return nil, ErrNoHealthyRPC
}

// --- scoring ---

func score(e *Endpoint, bestBlock uint64) float64 {
	var s float64

	// Latency score: higher = faster.
	if e.Latency > 0 {
		s += 1000.0 / float64(e.Latency.Milliseconds())
	}

	// Block recency bonus: closer to best block = +10.
	if bestBlock > 0 {
		behind := bestBlock - e.BlockNumber
		s += float64(10-behind) // loses 1 point per block behind
	}

	return s
}

// healthyEndpoints returns endpoints eligible for selection.
// When Checked == true, only Healthy endpoints are returned.
// When Checked == false, the endpoint is treated as a candidate regardless of Healthy.
func healthyEndpoints(endpoints []Endpoint) []*Endpoint {
	anyChecked := false
	for _, e := range endpoints {
		if e.Checked {
			anyChecked = true
			break
		}
	}

	if !anyChecked {
		// No health data: every endpoint is a candidate.
		all := make([]*Endpoint, len(endpoints))
		for i := range endpoints {
			all[i] = &endpoints[i]
		}
		return all
	}

	// Filter: include only checked+healthy endpoints.
	var out []*Endpoint
	for i := range endpoints {
		e := &endpoints[i]
		if !e.Checked || e.Healthy {
			out = append(out, e)
		}
	}
	return out
}
