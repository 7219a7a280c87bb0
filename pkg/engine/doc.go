// Package engine implements the resource matching and conflict-detection
// engine for drone operations: candidate ranking for missions, full-snapshot
// conflict scanning, urgent reassignment planning, and cost estimation.
//
// The engine is a pure, synchronous computation over a fleet.Snapshot
// supplied by the caller. It performs no I/O, holds no state between
// invocations, and never mutates its inputs; persistence, natural-language
// rendering, and session bookkeeping belong to the surrounding service.
// Multiple invocations may run in parallel against independently built
// snapshots.
//
// Entry points:
//
//	eng := engine.New(logger)
//	candidates, err := eng.FindCandidates(snap, "PRJ001", fleet.KindPilot)
//	report := eng.ScanAll(snap)
//	plan, err := eng.PlanReassignment(snap, "PRJ001", "P003", fleet.KindPilot)
//	cost, err := eng.EstimateCost(snap, "P001", "PRJ001")
//
// Rule violations found during a scan are first-class successful outputs,
// not errors. The only engine errors are reference errors (an identifier
// absent from the snapshot) and invalid arguments; malformed records are
// excluded at snapshot construction and reported as advisories alongside
// normal results.
package engine
