package engine

import (
	"time"

	"github.com/samy8144/AI-Operations-Coordinator/pkg/fleet"
)

// Severity ranks how disruptive a detected conflict is.
type Severity string

const (
	// SeverityHigh marks conflicts that make an assignment untenable.
	SeverityHigh Severity = "High"

	// SeverityMedium marks conflicts that put the mission outcome at risk.
	SeverityMedium Severity = "Medium"

	// SeverityLow marks conflicts that are commercially or logistically
	// inconvenient but workable.
	SeverityLow Severity = "Low"
)

// rank orders severities for report sorting, highest first.
func (s Severity) rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// ConflictType identifies one entry of the fixed conflict taxonomy.
type ConflictType string

const (
	// ConflictDoubleBooking: the same pilot or drone is linked to two
	// missions with overlapping date ranges.
	ConflictDoubleBooking ConflictType = "DOUBLE_BOOKING"

	// ConflictDroneMaintenance: a drone in Maintenance status is still
	// linked to a mission.
	ConflictDroneMaintenance ConflictType = "DRONE_MAINTENANCE"

	// ConflictSkillMismatch: an assigned pilot's skills do not fully cover
	// the mission's required skills.
	ConflictSkillMismatch ConflictType = "SKILL_MISMATCH"

	// ConflictCertMismatch: an assigned pilot's certifications do not fully
	// cover the mission's required certifications.
	ConflictCertMismatch ConflictType = "CERT_MISMATCH"

	// ConflictWeatherRisk: an assigned drone's weather rating is below what
	// the mission forecast requires.
	ConflictWeatherRisk ConflictType = "WEATHER_RISK"

	// ConflictBudgetOverrun: the assigned pilot's engagement cost exceeds
	// the mission budget.
	ConflictBudgetOverrun ConflictType = "BUDGET_OVERRUN"

	// ConflictLocationMismatch: an assigned pilot or drone is based in a
	// different city than the mission site.
	ConflictLocationMismatch ConflictType = "LOCATION_MISMATCH"
)

// ConflictRecord is a typed, severity-ranked description of a rule
// violation found during a full scan. It is an engine output, never
// persisted by the engine itself.
type ConflictRecord struct {
	// Type is the taxonomy entry.
	Type ConflictType `json:"type"`

	// Severity is the fixed severity for the type.
	Severity Severity `json:"severity"`

	// PilotID is the implicated pilot, if any.
	PilotID string `json:"pilot_id,omitempty"`

	// DroneID is the implicated drone, if any.
	DroneID string `json:"drone_id,omitempty"`

	// MissionID is the implicated mission.
	MissionID string `json:"mission_id"`

	// Description is a human-readable account of the violation.
	Description string `json:"description"`
}

// AdvisoryCode identifies a data-quality signal outside the conflict
// taxonomy.
type AdvisoryCode string

const (
	// AdvisoryMalformedRecord: a record was excluded from the snapshot for
	// violating a basic shape invariant.
	AdvisoryMalformedRecord AdvisoryCode = "MALFORMED_RECORD"

	// AdvisoryStatusDesync: a resource's status field disagrees with its
	// assignment links (status says Assigned but nothing is linked, or
	// vice versa).
	AdvisoryStatusDesync AdvisoryCode = "STATUS_DESYNC"

	// AdvisoryDanglingAssignment: a resource links a mission ID that does
	// not exist in the snapshot.
	AdvisoryDanglingAssignment AdvisoryCode = "DANGLING_ASSIGNMENT"
)

// Advisory is a low-severity data-quality signal surfaced alongside scan
// results rather than silently ignored.
type Advisory struct {
	// Code identifies the kind of signal.
	Code AdvisoryCode `json:"code"`

	// Severity is always low; advisories never block a scan.
	Severity Severity `json:"severity"`

	// ResourceKind is the entity kind the advisory concerns.
	ResourceKind string `json:"resource_kind,omitempty"`

	// ResourceID is the concerned record identifier.
	ResourceID string `json:"resource_id,omitempty"`

	// MissionID is the concerned mission, if any.
	MissionID string `json:"mission_id,omitempty"`

	// Message explains the signal.
	Message string `json:"message"`
}

// ScanReport is the result of a full conflict scan over one snapshot.
type ScanReport struct {
	// ID is a unique identifier for this scan run.
	ID string `json:"id"`

	// GeneratedAt is when the scan ran.
	GeneratedAt time.Time `json:"generated_at"`

	// Conflicts are the detected taxonomy violations, sorted by descending
	// severity, then type, mission, and resource for order stability.
	Conflicts []ConflictRecord `json:"conflicts"`

	// Advisories are the data-quality signals found during the scan,
	// including records excluded at snapshot construction.
	Advisories []Advisory `json:"advisories"`
}

// CountBySeverity returns how many conflicts carry the given severity.
func (r *ScanReport) CountBySeverity(sev Severity) int {
	n := 0
	for i := range r.Conflicts {
		if r.Conflicts[i].Severity == sev {
			n++
		}
	}
	return n
}

// Candidate is one ranked entry in a matching result.
type Candidate struct {
	// ResourceID is the pilot or drone identifier.
	ResourceID string `json:"resource_id"`

	// Name is the pilot name or drone model, for display.
	Name string `json:"name"`

	// Kind is the resource kind.
	Kind fleet.ResourceKind `json:"kind"`

	// Score is the composite fit score. Higher is better; equal scores are
	// ordered by ascending resource ID.
	Score float64 `json:"score"`

	// Cost is the pilot's estimated engagement cost for the mission
	// (daily rate times inclusive duration). Zero for drones.
	Cost float64 `json:"cost,omitempty"`

	// Reasons are human-readable notes explaining the score: matches,
	// soft-constraint penalties, and informational flags.
	Reasons []string `json:"reasons"`
}

// BlockerConstraint names the hard constraint that excluded a
// near-candidate from matching.
type BlockerConstraint string

const (
	// BlockedMissingSkills: the pilot lacks one or more required skills.
	BlockedMissingSkills BlockerConstraint = "missing_skills"

	// BlockedMissingCerts: the pilot lacks one or more required
	// certifications.
	BlockedMissingCerts BlockerConstraint = "missing_certs"

	// BlockedWeatherRating: the drone's weather rating is below the
	// mission forecast requirement.
	BlockedWeatherRating BlockerConstraint = "weather_rating"

	// BlockedDoubleBooked: the resource is linked to an overlapping
	// mission.
	BlockedDoubleBooked BlockerConstraint = "double_booked"
)

// Blocker records why a specific resource was excluded from candidacy.
type Blocker struct {
	// ResourceID is the excluded resource.
	ResourceID string `json:"resource_id"`

	// Name is the pilot name or drone model.
	Name string `json:"name"`

	// Constraint is the hard constraint that failed.
	Constraint BlockerConstraint `json:"constraint"`

	// Detail is a human-readable account of the failure.
	Detail string `json:"detail"`
}

// ReassignmentPlan is the engine's recommendation when an assigned
// resource becomes unavailable. It never mutates data; the surrounding
// service applies it.
type ReassignmentPlan struct {
	// ID is a unique identifier for this plan.
	ID string `json:"id"`

	// MissionID is the mission needing reassignment.
	MissionID string `json:"mission_id"`

	// Priority is the mission's scheduling priority, echoed so operators
	// can triage.
	Priority fleet.Priority `json:"priority,omitempty"`

	// Kind is the resource kind being replaced.
	Kind fleet.ResourceKind `json:"kind"`

	// OutgoingID is the resource being vacated.
	OutgoingID string `json:"outgoing_id"`

	// Replacement is the top-ranked eligible candidate, or nil when no
	// resource passes the hard constraints.
	Replacement *Candidate `json:"replacement,omitempty"`

	// Alternatives are the remaining eligible candidates in rank order.
	Alternatives []Candidate `json:"alternatives,omitempty"`

	// Blockers enumerates, per excluded near-candidate, the hard
	// constraint that kept it out. Populated regardless of whether a
	// replacement was found so operators know what to relax.
	Blockers []Blocker `json:"blockers,omitempty"`

	// BlockerSummary aggregates Blockers by constraint, e.g.
	// "2 pilots double-booked: P002, P004".
	BlockerSummary []string `json:"blocker_summary,omitempty"`

	// Checklist is the fixed, ordered list of follow-up steps for the
	// operator.
	Checklist []string `json:"checklist"`

	// GeneratedAt is when the plan was computed.
	GeneratedAt time.Time `json:"generated_at"`
}
