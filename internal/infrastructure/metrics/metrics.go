package metrics

import (
	"expvar"
)

// Hydration / emission counters.
var (
	hydrationsTotal          = new(expvar.Int)
	emissionsTotal           = new(expvar.Int)
	correctiveEmissionsTotal = new(expvar.Int)
)

// Records dropped during hydration, keyed by reason
// ("duplicate_node_id", "duplicate_edge_id", "dangling_edge").
var droppedRecords = expvar.NewMap("rulegraph_dropped_records_total")

func init() {
	expvar.Publish("rulegraph_hydrations_total", hydrationsTotal)
	expvar.Publish("rulegraph_emissions_total", emissionsTotal)
	expvar.Publish("rulegraph_corrective_emissions_total", correctiveEmissionsTotal)
}

func IncHydrations() { hydrationsTotal.Add(1) }

func IncEmissions() { emissionsTotal.Add(1) }

func IncCorrectiveEmissions() { correctiveEmissionsTotal.Add(1) }

func IncDropped(reason string) { droppedRecords.Add(reason, 1) }
