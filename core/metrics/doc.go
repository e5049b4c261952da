// Package metrics defines the sinks that observe a simulation run. Sinks
// record charge attempts and, when they implement the optional recorder
// interfaces, arrivals and end-of-turn snapshots. Implementations live in
// infra/metrics (Prometheus, InfluxDB) and infra/mqtt; several sinks are
// combined with NewMultiSink.
package metrics
