// Package metrics exposes expvar-published counters for the editing engine:
// hydration cycles, emissions (including corrective ones issued after id
// self-healing), and records dropped while rebuilding a graph from a
// malformed snapshot. It intentionally avoids external dependencies and is
// readable through the standard /debug/vars endpoint when a host application
// serves expvar.
package metrics
