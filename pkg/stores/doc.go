// Package stores provides the persistence collaborators around the pure
// matching engine: a CSV-backed snapshot store mirroring the fleet
// spreadsheets (pilot_roster.csv, drone_fleet.csv, missions.csv) and a
// SQLite audit store recording scan runs and status-change events.
//
// The engine itself never touches these; the CLI and HTTP layers load a
// snapshot, invoke the engine, and apply any resulting changes back
// through the store.
package stores
