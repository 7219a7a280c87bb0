package engine

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samy8144/AI-Operations-Coordinator/pkg/fleet"
)

// PlanReassignment recommends a replacement when an assigned resource
// becomes unavailable. The matcher is re-run with the target mission
// marked as vacated (so candidates are not self-excluded by links to it)
// and the outgoing resource excluded outright, regardless of its linkage.
// When no candidate passes the hard constraints, the plan's blockers
// enumerate exactly which constraint excluded every near-candidate so
// operators know what to relax. The plan never mutates data.
func (e *Engine) PlanReassignment(snap *fleet.Snapshot, missionID, resourceID string, kind fleet.ResourceKind) (*ReassignmentPlan, error) {
	mission := snap.Mission(missionID)
	if mission == nil {
		return nil, NewReferenceError(fmt.Sprintf("mission %s not in snapshot", missionID)).
			WithResource(missionID).
			WithOperation("PlanReassignment")
	}
	if err := kind.Validate(); err != nil {
		return nil, NewValidationError(err.Error()).WithOperation("PlanReassignment")
	}
	if err := checkResourceExists(snap, resourceID, kind); err != nil {
		return nil, err
	}

	candidates, blockers, err := e.match(snap, missionID, kind, matchOptions{
		vacatedMissionID:  missionID,
		excludeResourceID: resourceID,
	})
	if err != nil {
		return nil, err
	}

	plan := &ReassignmentPlan{
		ID:          uuid.New().String(),
		MissionID:   missionID,
		Priority:    mission.Priority,
		Kind:        kind,
		OutgoingID:  resourceID,
		Blockers:    blockers,
		GeneratedAt: time.Now().UTC(),
	}
	if len(candidates) > 0 {
		plan.Replacement = &candidates[0]
		plan.Alternatives = candidates[1:]
	}
	plan.BlockerSummary = summarizeBlockers(kind, blockers)
	plan.Checklist = buildChecklist(snap, mission, resourceID, kind, plan.Replacement)

	e.logger.Debug().
		Str("plan_id", plan.ID).
		Str("mission_id", missionID).
		Str("outgoing", resourceID).
		Bool("replacement_found", plan.Replacement != nil).
		Int("blockers", len(blockers)).
		Msg("Reassignment plan computed")

	return plan, nil
}

func checkResourceExists(snap *fleet.Snapshot, resourceID string, kind fleet.ResourceKind) error {
	switch kind {
	case fleet.KindPilot:
		if snap.Pilot(resourceID) == nil {
			return NewReferenceError(fmt.Sprintf("pilot %s not in snapshot", resourceID)).
				WithResource(resourceID).
				WithOperation("PlanReassignment")
		}
	case fleet.KindDrone:
		if snap.Drone(resourceID) == nil {
			return NewReferenceError(fmt.Sprintf("drone %s not in snapshot", resourceID)).
				WithResource(resourceID).
				WithOperation("PlanReassignment")
		}
	}
	return nil
}

// summarizeBlockers aggregates per-resource exclusions into operator-facing
// counts, e.g. "2 pilots double-booked: P002, P004". Output order is fixed
// by constraint name for reproducibility.
func summarizeBlockers(kind fleet.ResourceKind, blockers []Blocker) []string {
	if len(blockers) == 0 {
		return nil
	}

	byConstraint := make(map[BlockerConstraint][]string)
	for _, b := range blockers {
		ids := byConstraint[b.Constraint]
		if len(ids) == 0 || ids[len(ids)-1] != b.ResourceID {
			byConstraint[b.Constraint] = append(ids, b.ResourceID)
		}
	}

	constraints := make([]string, 0, len(byConstraint))
	for c := range byConstraint {
		constraints = append(constraints, string(c))
	}
	sort.Strings(constraints)

	labels := map[BlockerConstraint]string{
		BlockedMissingSkills: "missing required skills",
		BlockedMissingCerts:  "missing required certifications",
		BlockedWeatherRating: "under-rated for the forecast",
		BlockedDoubleBooked:  "double-booked",
	}

	summary := make([]string, 0, len(constraints))
	for _, c := range constraints {
		ids := byConstraint[BlockerConstraint(c)]
		sort.Strings(ids)
		noun := string(kind)
		if len(ids) != 1 {
			noun += "s"
		}
		summary = append(summary, fmt.Sprintf("%d %s %s: %s",
			len(ids), noun, labels[BlockerConstraint(c)], strings.Join(ids, ", ")))
	}
	return summary
}

// buildChecklist produces the fixed, ordered follow-up steps. The fourth
// step is added only when a pilot is being replaced and the mission has a
// drone linked to it, since the drone match is bound to the mission site
// and may need re-validation against the new pairing.
func buildChecklist(snap *fleet.Snapshot, mission *fleet.Mission, outgoingID string, kind fleet.ResourceKind, replacement *Candidate) []string {
	incoming := "the selected replacement"
	if replacement != nil {
		incoming = fmt.Sprintf("%s (%s)", replacement.Name, replacement.ResourceID)
	}

	checklist := []string{
		fmt.Sprintf("Confirm %s %s is unavailable and update its status", kind, outgoingID),
		fmt.Sprintf("Notify %s and the client for %s", incoming, mission.ID),
		fmt.Sprintf("Update the assignment reference on %s", mission.ID),
	}

	if kind == fleet.KindPilot {
		for i := range snap.Drones {
			d := &snap.Drones[i]
			if d.AssignedTo(mission.ID) {
				checklist = append(checklist, fmt.Sprintf(
					"Re-validate drone %s (%s) against %s: the drone match is location-bound to %s",
					d.Model, d.ID, mission.ID, mission.Location))
				break
			}
		}
	}

	return checklist
}
