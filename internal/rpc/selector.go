package rpc

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Selector resolves one RPC URL out of a chain's endpoint list.
type Selector struct {
	picker  *Picker
	timeout time.Duration
	log     *zap.Logger
}

// NewSelector returns a Selector using algo. A nil logger is replaced by a
// no-op logger.
func NewSelector(algo Algorithm, timeout time.Duration, log *zap.Logger) *Selector {
	if log == nil {
		log = zap.NewNop()
	}
	return &Selector{picker: NewPicker(algo), timeout: timeout, log: log}
}

// Select returns the chosen URL. A single URL is returned without probing.
// Failover skips probing as well: the first URL wins until it is explicitly
// checked and found unhealthy.
func (s *Selector) Select(ctx context.Context, urls []string) (string, error) {
	switch len(urls) {
	case 0:
		return "", ErrNoHealthyRPC
	case 1:
		return urls[0], nil
	}

	var endpoints []Endpoint
	if s.picker.Algorithm() == AlgorithmFailover {
		endpoints = make([]Endpoint, len(urls))
		for i, u := range urls {
			endpoints[i] = Endpoint{URL: u}
		}
	} else {
		endpoints = ProbeAll(ctx, urls, s.timeout)
		for _, e := range endpoints {
			s.log.Debug("probed rpc",
				zap.String("url", e.URL),
				zap.Duration("latency", e.Latency),
				zap.Uint64("block", e.BlockNumber),
				zap.Bool("healthy", e.Healthy),
			)
		}
	}

	winner, err := s.picker.Pick(endpoints)
	if err != nil {
		return "", err
	}
	s.log.Debug("selected rpc", zap.String("url", winner.URL), zap.String("algorithm", string(s.picker.Algorithm())))
	return winner.URL, nil
}
