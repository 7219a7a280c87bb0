package engine

import (
	"fmt"
	"sort"

	"github.com/samy8144/AI-Operations-Coordinator/pkg/fleet"
)

// FindCandidates ranks the resources of the given kind that pass every
// hard constraint for the mission, best first. Ties are broken by
// ascending resource ID so repeated calls over an unchanged snapshot
// return identical ordering. An empty list is a normal result, not an
// error; only an unknown mission ID or resource kind fails the call.
func (e *Engine) FindCandidates(snap *fleet.Snapshot, missionID string, kind fleet.ResourceKind) ([]Candidate, error) {
	candidates, _, err := e.match(snap, missionID, kind, matchOptions{})
	return candidates, err
}

// match evaluates every resource of the kind against the mission and
// splits the outcome into ranked eligible candidates and the blockers
// that excluded the rest.
func (e *Engine) match(snap *fleet.Snapshot, missionID string, kind fleet.ResourceKind, opts matchOptions) ([]Candidate, []Blocker, error) {
	if err := kind.Validate(); err != nil {
		return nil, nil, NewValidationError(err.Error()).WithOperation("FindCandidates")
	}
	mission := snap.Mission(missionID)
	if mission == nil {
		return nil, nil, NewReferenceError(fmt.Sprintf("mission %s not in snapshot", missionID)).
			WithResource(missionID).
			WithOperation("FindCandidates")
	}

	var evals []evaluation
	switch kind {
	case fleet.KindPilot:
		for i := range snap.Pilots {
			evals = append(evals, e.evaluatePilot(snap, &snap.Pilots[i], mission, opts))
		}
	case fleet.KindDrone:
		for i := range snap.Drones {
			evals = append(evals, e.evaluateDrone(snap, &snap.Drones[i], mission, opts))
		}
	}

	var candidates []Candidate
	var blockers []Blocker
	for _, ev := range evals {
		if ev.excluded {
			continue
		}
		if ev.eligible {
			c := Candidate{
				ResourceID: ev.id,
				Name:       ev.name,
				Kind:       kind,
				Score:      ev.score,
				Reasons:    ev.reasons,
			}
			if kind == fleet.KindPilot {
				c.Cost = ev.cost
			}
			candidates = append(candidates, c)
			continue
		}
		blockers = append(blockers, ev.exclusions...)
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].ResourceID < candidates[j].ResourceID
	})

	e.logger.Debug().
		Str("mission_id", missionID).
		Str("kind", string(kind)).
		Int("candidates", len(candidates)).
		Int("blocked", len(blockers)).
		Msg("Match completed")

	return candidates, blockers, nil
}
