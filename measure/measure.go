// Package measure provides the small global counter map instrumentation
// used throughout the module, in the shape the teacher's measureutil
// package consumes (SnapshotAndReset). Counters are additive byte/word
// tallies keyed by a slash-separated path, e.g. "mpcproto/proof/aux_bytes".
package measure

import "sync"

// Enabled gates whether Add does any work. Disabled by default so that
// normal sign/verify calls pay no bookkeeping cost; set true by callers
// (benchmarks, cmd/picnicbench) that want a size/shape breakdown.
var Enabled = false

type counters struct {
	mu   sync.Mutex
	vals map[string]int64
}

// Global is the process-wide counter map, mirroring the teacher's
// measure.Global.
var Global = &counters{vals: make(map[string]int64)}

// Add accumulates n under key. No-op when Enabled is false.
func (c *counters) Add(key string, n int64) {
	if !Enabled {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals[key] += n
}

// Set overwrites the counter under key unconditionally of Enabled, for
// gauges (e.g. "binmat/selected_backend" encoded as a small integer) that
// a caller wants recorded regardless of the Enabled flag.
func (c *counters) Set(key string, n int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals[key] = n
}

// SnapshotAndReset returns a copy of the accumulated counters and clears
// the map, matching measureutil.SnapshotAndReset's contract.
func (c *counters) SnapshotAndReset() map[string]int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]int64, len(c.vals))
	for k, v := range c.vals {
		out[k] = v
	}
	c.vals = make(map[string]int64)
	return out
}
