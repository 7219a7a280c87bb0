package engine

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samy8144/AI-Operations-Coordinator/pkg/fleet"
)

// ScanAll runs a full conflict scan over the snapshot: every assignment
// link is checked against the complete taxonomy, and data-quality signals
// (malformed records excluded at snapshot build, status/link disagreement,
// dangling mission references) are surfaced as advisories. A single
// assignment may surface several conflicts at once; each rule is detected
// independently. The scan never fails: rule violations are its product,
// not its errors.
func (e *Engine) ScanAll(snap *fleet.Snapshot) *ScanReport {
	report := &ScanReport{
		ID:          uuid.New().String(),
		GeneratedAt: time.Now().UTC(),
	}

	for i := range snap.Issues {
		issue := &snap.Issues[i]
		report.Advisories = append(report.Advisories, Advisory{
			Code:         AdvisoryMalformedRecord,
			Severity:     SeverityLow,
			ResourceKind: issue.Kind,
			ResourceID:   issue.ID,
			Message:      issue.Message,
		})
	}

	for i := range snap.Pilots {
		e.scanPilot(snap, &snap.Pilots[i], report)
	}
	for i := range snap.Drones {
		e.scanDrone(snap, &snap.Drones[i], report)
	}

	// Stable report order: severity first, then type, mission, resources.
	sort.SliceStable(report.Conflicts, func(i, j int) bool {
		a, b := &report.Conflicts[i], &report.Conflicts[j]
		if a.Severity != b.Severity {
			return a.Severity.rank() > b.Severity.rank()
		}
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		if a.MissionID != b.MissionID {
			return a.MissionID < b.MissionID
		}
		if a.PilotID != b.PilotID {
			return a.PilotID < b.PilotID
		}
		return a.DroneID < b.DroneID
	})

	e.logger.Debug().
		Str("scan_id", report.ID).
		Int("conflicts", len(report.Conflicts)).
		Int("advisories", len(report.Advisories)).
		Msg("Conflict scan completed")

	return report
}

// scanPilot checks every mission the pilot is linked to, plus the
// pairwise double-booking and status agreement of the links themselves.
func (e *Engine) scanPilot(snap *fleet.Snapshot, p *fleet.Pilot, report *ScanReport) {
	missions := resolveLinks(snap, "pilot", p.ID, p.CurrentMissions, report)

	for _, m := range missions {
		if missing := p.Skills.Missing(m.RequiredSkills); len(missing) > 0 {
			report.Conflicts = append(report.Conflicts, ConflictRecord{
				Type:        ConflictSkillMismatch,
				Severity:    SeverityMedium,
				PilotID:     p.ID,
				MissionID:   m.ID,
				Description: fmt.Sprintf("pilot %s (%s) lacks skills required by %s: %s", p.Name, p.ID, m.ID, strings.Join(missing, ", ")),
			})
		}
		if missing := p.Certifications.Missing(m.RequiredCerts); len(missing) > 0 {
			report.Conflicts = append(report.Conflicts, ConflictRecord{
				Type:        ConflictCertMismatch,
				Severity:    SeverityMedium,
				PilotID:     p.ID,
				MissionID:   m.ID,
				Description: fmt.Sprintf("pilot %s (%s) lacks certifications required by %s: %s", p.Name, p.ID, m.ID, strings.Join(missing, ", ")),
			})
		}
		if cost := p.DailyRate * float64(m.Days()); cost > m.Budget {
			report.Conflicts = append(report.Conflicts, ConflictRecord{
				Type:        ConflictBudgetOverrun,
				Severity:    SeverityLow,
				PilotID:     p.ID,
				MissionID:   m.ID,
				Description: fmt.Sprintf("pilot %s (%s) costs %.0f over %d days but %s budget is %.0f", p.Name, p.ID, cost, m.Days(), m.ID, m.Budget),
			})
		}
		if !equalLocation(p.Location, m.Location) {
			report.Conflicts = append(report.Conflicts, ConflictRecord{
				Type:        ConflictLocationMismatch,
				Severity:    SeverityLow,
				PilotID:     p.ID,
				MissionID:   m.ID,
				Description: fmt.Sprintf("pilot %s (%s) is based in %s but mission %s is in %s", p.Name, p.ID, p.Location, m.ID, m.Location),
			})
		}
	}

	for _, c := range doubleBookings(missions) {
		c.PilotID = p.ID
		c.Description = fmt.Sprintf("pilot %s (%s) %s", p.Name, p.ID, c.Description)
		report.Conflicts = append(report.Conflicts, c)
	}

	// Status vs link agreement is a data-quality signal, not a taxonomy
	// entry: the engine reports the disagreement, it never repairs it.
	switch {
	case p.Status == fleet.PilotAssigned && len(missions) == 0:
		report.Advisories = append(report.Advisories, statusDesync("pilot", p.ID,
			fmt.Sprintf("pilot %s (%s) has status Assigned but no mission links it", p.Name, p.ID)))
	case p.Status != fleet.PilotAssigned && len(missions) > 0:
		report.Advisories = append(report.Advisories, statusDesync("pilot", p.ID,
			fmt.Sprintf("pilot %s (%s) is linked to %s but has status %s", p.Name, p.ID, missions[0].ID, p.Status)))
	}
}

// scanDrone checks every mission the drone is linked to.
func (e *Engine) scanDrone(snap *fleet.Snapshot, d *fleet.Drone, report *ScanReport) {
	missions := resolveLinks(snap, "drone", d.ID, d.CurrentMissions, report)

	for _, m := range missions {
		if d.Status == fleet.DroneMaintenance {
			report.Conflicts = append(report.Conflicts, ConflictRecord{
				Type:        ConflictDroneMaintenance,
				Severity:    SeverityHigh,
				DroneID:     d.ID,
				MissionID:   m.ID,
				Description: fmt.Sprintf("drone %s (%s) is in maintenance but still assigned to %s", d.Model, d.ID, m.ID),
			})
		}
		if required := m.Forecast.RequiredRating(); !d.WeatherRating.Covers(required) {
			report.Conflicts = append(report.Conflicts, ConflictRecord{
				Type:        ConflictWeatherRisk,
				Severity:    SeverityMedium,
				DroneID:     d.ID,
				MissionID:   m.ID,
				Description: fmt.Sprintf("drone %s (%s) is rated %s but %s forecasts %s weather", d.Model, d.ID, d.WeatherRating, m.ID, m.Forecast),
			})
		}
		if !equalLocation(d.Location, m.Location) {
			report.Conflicts = append(report.Conflicts, ConflictRecord{
				Type:        ConflictLocationMismatch,
				Severity:    SeverityLow,
				DroneID:     d.ID,
				MissionID:   m.ID,
				Description: fmt.Sprintf("drone %s (%s) is based in %s but mission %s is in %s", d.Model, d.ID, d.Location, m.ID, m.Location),
			})
		}
	}

	for _, c := range doubleBookings(missions) {
		c.DroneID = d.ID
		c.Description = fmt.Sprintf("drone %s (%s) %s", d.Model, d.ID, c.Description)
		report.Conflicts = append(report.Conflicts, c)
	}

	switch {
	case d.Status == fleet.DroneAssigned && len(missions) == 0:
		report.Advisories = append(report.Advisories, statusDesync("drone", d.ID,
			fmt.Sprintf("drone %s (%s) has status Assigned but no mission links it", d.Model, d.ID)))
	case d.Status == fleet.DroneAvailable && len(missions) > 0:
		report.Advisories = append(report.Advisories, statusDesync("drone", d.ID,
			fmt.Sprintf("drone %s (%s) is linked to %s but has status Available", d.Model, d.ID, missions[0].ID)))
	}
}

// resolveLinks maps a resource's linked mission IDs to mission records,
// reporting links that point nowhere.
func resolveLinks(snap *fleet.Snapshot, kind, resourceID string, linked []string, report *ScanReport) []*fleet.Mission {
	missions := make([]*fleet.Mission, 0, len(linked))
	for _, missionID := range linked {
		m := snap.Mission(missionID)
		if m == nil {
			report.Advisories = append(report.Advisories, Advisory{
				Code:         AdvisoryDanglingAssignment,
				Severity:     SeverityLow,
				ResourceKind: kind,
				ResourceID:   resourceID,
				MissionID:    missionID,
				Message:      fmt.Sprintf("%s %s is linked to mission %s which is not in the snapshot", kind, resourceID, missionID),
			})
			continue
		}
		missions = append(missions, m)
	}
	sort.Slice(missions, func(i, j int) bool { return missions[i].ID < missions[j].ID })
	return missions
}

// doubleBookings returns one high-severity conflict per mission in every
// overlapping pair, so both implicated missions show up in the report.
func doubleBookings(missions []*fleet.Mission) []ConflictRecord {
	var conflicts []ConflictRecord
	for i := 0; i < len(missions); i++ {
		for j := i + 1; j < len(missions); j++ {
			a, b := missions[i], missions[j]
			if !a.Dates.Overlaps(b.Dates) {
				continue
			}
			conflicts = append(conflicts,
				ConflictRecord{
					Type:        ConflictDoubleBooking,
					Severity:    SeverityHigh,
					MissionID:   a.ID,
					Description: fmt.Sprintf("is double-booked: %s (%s) overlaps %s (%s)", a.ID, a.Dates, b.ID, b.Dates),
				},
				ConflictRecord{
					Type:        ConflictDoubleBooking,
					Severity:    SeverityHigh,
					MissionID:   b.ID,
					Description: fmt.Sprintf("is double-booked: %s (%s) overlaps %s (%s)", b.ID, b.Dates, a.ID, a.Dates),
				},
			)
		}
	}
	return conflicts
}

func statusDesync(kind, id, message string) Advisory {
	return Advisory{
		Code:         AdvisoryStatusDesync,
		Severity:     SeverityLow,
		ResourceKind: kind,
		ResourceID:   id,
		Message:      message,
	}
}

func equalLocation(a, b string) bool {
	return normalizeLocation(a) == normalizeLocation(b)
}
