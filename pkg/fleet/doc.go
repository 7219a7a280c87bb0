// Package fleet defines the domain model for the drone operations
// coordinator: pilots, drones, missions, and the immutable Snapshot the
// matching and conflict-detection engine computes over.
//
// All records are plain data. A Snapshot is built once per engine
// invocation from whatever backing store the surrounding service uses
// (CSV files, a spreadsheet export) and is never mutated afterwards;
// status and assignment changes are applied out-of-band and the engine
// is re-invoked against a fresh snapshot.
package fleet
