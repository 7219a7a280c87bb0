package engine

import (
	"fmt"
	"strings"

	"github.com/samy8144/AI-Operations-Coordinator/pkg/fleet"
)

// matchOptions tune how availability exclusion is applied during a match.
type matchOptions struct {
	// vacatedMissionID marks one mission as being vacated: a resource's
	// link to it does not count against availability. The urgent
	// reassignment planner sets this to the target mission so candidates
	// already attached to it are not self-excluded.
	vacatedMissionID string

	// excludeResourceID removes one resource from candidacy outright,
	// regardless of linkage. Used for the outgoing resource in a
	// reassignment.
	excludeResourceID string
}

// evaluation is the full scoring outcome for one resource against one
// mission, including the hard-constraint failures that made it ineligible.
type evaluation struct {
	id         string
	name       string
	eligible   bool
	excluded   bool // removed via matchOptions.excludeResourceID
	exclusions []Blocker
	score      float64
	cost       float64
	reasons    []string
}

// evaluatePilot scores a pilot against a mission. Skills, certifications,
// and date-overlap availability are hard constraints; location and budget
// only move the score.
func (e *Engine) evaluatePilot(snap *fleet.Snapshot, p *fleet.Pilot, m *fleet.Mission, opts matchOptions) evaluation {
	ev := evaluation{id: p.ID, name: p.Name, eligible: true}

	if p.ID == opts.excludeResourceID {
		ev.eligible = false
		ev.excluded = true
		return ev
	}

	// Skill coverage (hard).
	if missing := p.Skills.Missing(m.RequiredSkills); len(missing) > 0 {
		ev.eligible = false
		ev.exclusions = append(ev.exclusions, Blocker{
			ResourceID: p.ID,
			Name:       p.Name,
			Constraint: BlockedMissingSkills,
			Detail:     "missing skills: " + strings.Join(missing, ", "),
		})
	} else {
		ev.reasons = append(ev.reasons, "covers required skills")
	}
	ev.score += coverage(e.weights.Skills, p.Skills, m.RequiredSkills)

	// Certification coverage (hard, case-insensitive).
	if missing := p.Certifications.Missing(m.RequiredCerts); len(missing) > 0 {
		ev.eligible = false
		ev.exclusions = append(ev.exclusions, Blocker{
			ResourceID: p.ID,
			Name:       p.Name,
			Constraint: BlockedMissingCerts,
			Detail:     "missing certifications: " + strings.Join(missing, ", "),
		})
	} else {
		ev.reasons = append(ev.reasons, "covers required certifications")
	}
	ev.score += coverage(e.weights.Certs, p.Certifications, m.RequiredCerts)

	// Date-overlap availability (hard, with the vacated-mission carve-out).
	ev.checkAvailability(snap, p.CurrentMissions, m, opts)

	// Location (soft).
	ev.scoreLocation(e.weights.Location, p.Location, m.Location)

	// Budget (soft): an over-budget pilot stays a candidate but loses the
	// budget weight and is flagged.
	ev.cost = p.DailyRate * float64(m.Days())
	if ev.cost <= m.Budget {
		ev.score += e.weights.Budget
		ev.reasons = append(ev.reasons, fmt.Sprintf("within budget (cost %.0f of %.0f)", ev.cost, m.Budget))
	} else {
		ev.reasons = append(ev.reasons, fmt.Sprintf("over budget (cost %.0f > budget %.0f)", ev.cost, m.Budget))
	}

	// Status is a signal, not a constraint: surface it so the operator
	// sees the disagreement, but let the assignment links decide.
	if p.Status != fleet.PilotAvailable {
		ev.reasons = append(ev.reasons, fmt.Sprintf("status: %s", p.Status))
	}

	return ev
}

// evaluateDrone scores a drone against a mission. Weather rating and
// date-overlap availability are hard constraints; location and capability
// coverage only move the score.
func (e *Engine) evaluateDrone(snap *fleet.Snapshot, d *fleet.Drone, m *fleet.Mission, opts matchOptions) evaluation {
	ev := evaluation{id: d.ID, name: d.Model, eligible: true}

	if d.ID == opts.excludeResourceID {
		ev.eligible = false
		ev.excluded = true
		return ev
	}

	// Weather rating (hard).
	required := m.Forecast.RequiredRating()
	if d.WeatherRating.Covers(required) {
		ev.reasons = append(ev.reasons, fmt.Sprintf("weather rating %s covers %s forecast", d.WeatherRating, m.Forecast))
	} else {
		ev.eligible = false
		ev.exclusions = append(ev.exclusions, Blocker{
			ResourceID: d.ID,
			Name:       d.Model,
			Constraint: BlockedWeatherRating,
			Detail:     fmt.Sprintf("rated %s but %s forecast requires %s", d.WeatherRating, m.Forecast, required),
		})
	}

	// Date-overlap availability (hard).
	ev.checkAvailability(snap, d.CurrentMissions, m, opts)

	// Location (soft).
	ev.scoreLocation(e.weights.Location, d.Location, m.Location)

	// Capability coverage against the mission's required skills (soft).
	ev.score += coverage(e.weights.Skills, d.Capabilities, m.RequiredSkills)
	if matched := d.Capabilities.Matched(m.RequiredSkills); m.RequiredSkills.Len() > 0 {
		ev.reasons = append(ev.reasons, fmt.Sprintf("covers %d of %d required capabilities", matched, m.RequiredSkills.Len()))
	}

	// Maintenance falling due before the mission starts is workable but
	// worth flagging.
	if d.MaintenanceDue != nil && !d.MaintenanceDue.IsZero() && !d.MaintenanceDue.After(m.Dates.Start) {
		ev.reasons = append(ev.reasons, fmt.Sprintf("maintenance due %s, on or before mission start", d.MaintenanceDue))
	}

	if d.Status != fleet.DroneAvailable {
		ev.reasons = append(ev.reasons, fmt.Sprintf("status: %s", d.Status))
	}

	return ev
}

// checkAvailability excludes the resource when any of its current missions
// overlaps the target mission's dates, except the mission the caller marked
// as vacated. Links to missions missing from the snapshot are ignored here;
// the conflict scanner reports them as dangling-assignment advisories.
func (ev *evaluation) checkAvailability(snap *fleet.Snapshot, linked []string, target *fleet.Mission, opts matchOptions) {
	for _, missionID := range linked {
		if missionID == opts.vacatedMissionID {
			continue
		}
		other := snap.Mission(missionID)
		if other == nil || other.ID == target.ID {
			continue
		}
		if other.Dates.Overlaps(target.Dates) {
			ev.eligible = false
			ev.exclusions = append(ev.exclusions, Blocker{
				ResourceID: ev.id,
				Name:       ev.name,
				Constraint: BlockedDoubleBooked,
				Detail:     fmt.Sprintf("double-booked with %s (%s)", other.ID, other.Dates),
			})
		}
	}
}

// normalizeLocation prepares a location cell for comparison. Locations are
// matched exactly after trimming and case folding, in one place, so the
// matcher and the conflict scanner can never disagree.
func normalizeLocation(loc string) string {
	return strings.ToLower(strings.TrimSpace(loc))
}

// scoreLocation applies the location weight on an exact (case-insensitive)
// city match. A mismatch only costs the weight; it never excludes.
func (ev *evaluation) scoreLocation(weight float64, resourceLoc, missionLoc string) {
	if normalizeLocation(resourceLoc) == normalizeLocation(missionLoc) {
		ev.score += weight
		ev.reasons = append(ev.reasons, fmt.Sprintf("location match (%s)", missionLoc))
	} else {
		ev.reasons = append(ev.reasons, fmt.Sprintf("location mismatch (%s vs %s)", resourceLoc, missionLoc))
	}
}

// coverage scales a weight by the fraction of required tags held. With no
// requirements the full weight is awarded, so missions without tag
// requirements rank resources purely on the remaining criteria.
func coverage(weight float64, held, required fleet.TagSet) float64 {
	if required.Len() == 0 {
		return weight
	}
	return weight * float64(held.Matched(required)) / float64(required.Len())
}
