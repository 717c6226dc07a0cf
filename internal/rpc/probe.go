package rpc

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cryptodevs/whitelist-dapp/internal/chain"
)

// maxConcurrentProbes bounds how many endpoints are pinged at once.
const maxConcurrentProbes = 8

// Probe pings a single EVM RPC. The endpoint is healthy when the ping
// succeeds within timeout; staleness against other endpoints is decided by
// ProbeAll.
func Probe(ctx context.Context, url string, timeout time.Duration) Endpoint {
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	latency, block, err := chain.NewEVMClient(url).Ping(pingCtx)
	return Endpoint{
		URL:         url,
		Latency:     latency,
		BlockNumber: block,
		Healthy:     err == nil,
		Checked:     true,
	}
}

// ProbeAll pings every URL in parallel and returns the endpoints in input
// order. Endpoints more than staleBlockThreshold blocks behind the best
// responder are marked unhealthy.
func ProbeAll(ctx context.Context, urls []string, timeout time.Duration) []Endpoint {
	endpoints := make([]Endpoint, len(urls))

	var g errgroup.Group
	g.SetLimit(maxConcurrentProbes)
	for i, u := range urls {
		g.Go(func() error {
			endpoints[i] = Probe(ctx, u, timeout)
			return nil
		})
	}
	_ = g.Wait()

	markStale(endpoints)
	return endpoints
}

func markStale(endpoints []Endpoint) {
	var best uint64
	for _, e := range endpoints {
		if e.Healthy && e.BlockNumber > best {
			best = e.BlockNumber
		}
	}
	if best == 0 {
		return
	}
	for i := range endpoints {
		if endpoints[i].Healthy && best-endpoints[i].BlockNumber > staleBlockThreshold {
			endpoints[i].Healthy = false
		}
	}
}
