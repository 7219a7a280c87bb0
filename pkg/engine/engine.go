package engine

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/samy8144/AI-Operations-Coordinator/pkg/fleet"
)

// Weights are the composite-score weights. Location dominates, then skill
// coverage, then certification coverage, then budget fit; the priority
// order is fixed even though the magnitudes are tunable. Coverage terms
// scale with the matched fraction of required tags, so matching more
// criteria never lowers a score.
type Weights struct {
	// Location is awarded in full on an exact location match.
	Location float64

	// Skills scales with the fraction of required skills (pilots) or
	// required capabilities (drones) the resource covers.
	Skills float64

	// Certs scales with the fraction of required certifications covered.
	// Not applicable to drones.
	Certs float64

	// Budget is awarded in full when the pilot's engagement cost fits the
	// mission budget. Not applicable to drones.
	Budget float64
}

// DefaultWeights returns the fixed production weights. Tests depend on
// these values; change them only together with the test fixtures.
func DefaultWeights() Weights {
	return Weights{
		Location: 40,
		Skills:   30,
		Certs:    20,
		Budget:   10,
	}
}

// Engine computes matches, conflict scans, and reassignment plans over
// fleet snapshots. It is stateless apart from its configuration and safe
// for concurrent use.
type Engine struct {
	logger  zerolog.Logger
	weights Weights
}

// New creates an engine with the default scoring weights.
func New(logger zerolog.Logger) *Engine {
	return &Engine{
		logger:  logger.With().Str("component", "engine").Logger(),
		weights: DefaultWeights(),
	}
}

// WithWeights overrides the scoring weights. Intended for experiments;
// production callers should keep the defaults so rankings stay comparable
// across runs.
func (e *Engine) WithWeights(w Weights) *Engine {
	e.weights = w
	return e
}

// EstimateCost computes the pilot's total engagement cost for a mission:
// daily rate times the inclusive mission duration in days. It is
// independent of any budget check.
func (e *Engine) EstimateCost(snap *fleet.Snapshot, pilotID, missionID string) (float64, error) {
	pilot := snap.Pilot(pilotID)
	if pilot == nil {
		return 0, NewReferenceError(fmt.Sprintf("pilot %s not in snapshot", pilotID)).
			WithResource(pilotID).
			WithOperation("EstimateCost")
	}
	mission := snap.Mission(missionID)
	if mission == nil {
		return 0, NewReferenceError(fmt.Sprintf("mission %s not in snapshot", missionID)).
			WithResource(missionID).
			WithOperation("EstimateCost")
	}
	return pilot.DailyRate * float64(mission.Days()), nil
}
