// Package scan implements the concurrent TCP port-liveness engine. It
// fans a candidate port set out across a bounded pool of connect
// probes, collects open-port results as they complete, and seals them
// into a deterministic, ascending-port session.
package scan

import (
	"context"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Zilvh/Vesta-Sries/internal/errors"
	"github.com/Zilvh/Vesta-Sries/internal/logging"
	"github.com/Zilvh/Vesta-Sries/internal/metrics"
)

// resolveTimeout bounds the single host resolution performed before
// probes are dispatched.
const resolveTimeout = 5 * time.Second

// probeFn is the probe implementation used by the pool; tests swap it
// out to instrument concurrency without real sockets.
var probeFn = probe

// ProgressFunc observes scan progress as completed/total probe counts.
// It is advisory only: it may be called from multiple worker
// goroutines, done advances monotonically, and no scanning behavior
// depends on it.
type ProgressFunc func(done, total int)

// Run performs a scan with a background context and no progress
// observer.
func Run(target Target) (*Session, error) {
	return RunWithContext(context.Background(), target, nil)
}

// RunWithContext scans the target's port set and returns the sealed
// session. The call is synchronous: it blocks until every dispatched
// probe has completed or, on context cancellation, until in-flight
// probes have drained, in which case the partial session is still
// returned without error.
//
// The only error class raised is configuration: empty or out-of-range
// port set, non-positive concurrency, or an unresolvable host, all
// detected before any probe is dispatched. Per-port failures are
// absence, never errors.
func RunWithContext(ctx context.Context, target Target, onProgress ProgressFunc) (*Session, error) {
	target = target.withDefaults()
	scanStart := time.Now()

	if err := target.Validate(); err != nil {
		metrics.GetGlobalMetrics().IncrementScanErrors("config_invalid")
		return nil, err
	}
	if err := resolveHost(ctx, target.Host); err != nil {
		metrics.GetGlobalMetrics().IncrementScanErrors("host_unresolvable")
		return nil, errors.WrapScanErrorWithTarget(
			errors.CodeTargetInvalid, "unable to resolve host", target.Host, err)
	}

	ports := target.dedupedPorts()
	session := NewSession(target.Host)
	log := logging.Default().WithSessionID(session.ID.String())

	log.InfoScan("Starting port scan", target.Host,
		"ports", len(ports),
		"workers", target.Concurrency,
		"banner", target.WithBanner)

	defer func() {
		metrics.GetGlobalMetrics().RecordScanDuration(time.Since(scanStart))
		log.InfoScan("Port scan completed", target.Host,
			"open_ports", len(session.Results),
			"duration", session.Duration)
	}()

	runPool(ctx, &target, ports, session, log, onProgress)

	session.Complete()
	return session, nil
}

// runPool fans the port set out across a bounded worker pool and
// gathers results in completion order. At most target.Concurrency
// probes are in flight at any time; as each completes the next queued
// port is admitted, keeping the file-descriptor ceiling fixed
// regardless of port-set size.
func runPool(ctx context.Context, target *Target, ports []int, session *Session, log *logging.Logger, onProgress ProgressFunc) {
	workers := target.Concurrency
	if workers > len(ports) {
		workers = len(ports)
	}

	jobs := make(chan int)
	results := make(chan PortResult)
	total := len(ports)

	var completed int64
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for port := range jobs {
				result := probeFn(target, port)
				metrics.GetGlobalMetrics().IncrementProbes()
				if result != nil {
					results <- *result
				}
				if onProgress != nil {
					onProgress(int(atomic.AddInt64(&completed, 1)), total)
				} else {
					atomic.AddInt64(&completed, 1)
				}
			}
		}()
	}

	// Dispatcher: admit queued ports until the set is exhausted or the
	// scan is canceled, then close the pool down and release the
	// collector.
	go func() {
		defer func() {
			close(jobs)
			wg.Wait()
			close(results)
		}()
		for _, port := range ports {
			select {
			case jobs <- port:
			case <-ctx.Done():
				log.InfoScan("Scan interrupted, sealing partial results", target.Host,
					"dispatched", atomic.LoadInt64(&completed))
				return
			}
		}
	}()

	// Collector: the session's result slice is only ever touched here,
	// so worker goroutines never share mutable state.
	for result := range results {
		session.Results = append(session.Results, result)
		metrics.GetGlobalMetrics().IncrementOpenPorts()
	}
}

// resolveHost verifies the target host resolves before any probe is
// dispatched. Literal IPs pass without a lookup.
func resolveHost(ctx context.Context, host string) error {
	if net.ParseIP(host) != nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, resolveTimeout)
	defer cancel()
	_, err := net.DefaultResolver.LookupHost(ctx, host)
	return err
}
