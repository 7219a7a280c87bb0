package fleet

import (
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
)

// recordValidator checks struct tags on the entity types. A single shared
// instance keeps tag parsing caches warm across snapshot builds.
var recordValidator = validator.New()

// RecordIssue describes a record that failed a basic shape invariant and
// was excluded from the snapshot. A bad row must not block conflict
// detection over the rest of the fleet, so issues are collected and
// surfaced alongside normal results rather than aborting the build.
type RecordIssue struct {
	// Kind is the entity kind of the offending record ("pilot", "drone",
	// "mission").
	Kind string `json:"kind"`

	// ID is the record identifier, or "(missing id)" when the identifier
	// itself is the problem.
	ID string `json:"id"`

	// Message explains the violated invariant.
	Message string `json:"message"`
}

func (i RecordIssue) String() string {
	return fmt.Sprintf("%s %s: %s", i.Kind, i.ID, i.Message)
}

// Snapshot is the complete set of pilot, drone, and mission records as of
// one point in time. It is built once, indexed, and treated as read-only
// by the engine for the duration of a call; concurrent engine invocations
// over independently built snapshots are safe.
type Snapshot struct {
	// Pilots are the well-formed pilot records, sorted by ID.
	Pilots []Pilot

	// Drones are the well-formed drone records, sorted by ID.
	Drones []Drone

	// Missions are the well-formed mission records, sorted by ID.
	Missions []Mission

	// Issues are the malformed records excluded during construction.
	Issues []RecordIssue

	pilotsByID   map[string]*Pilot
	dronesByID   map[string]*Drone
	missionsByID map[string]*Mission
}

// NewSnapshot builds an indexed snapshot from raw record slices. Records
// violating shape invariants (missing ID, negative rate or budget, end date
// before start date, unparseable enums) are excluded and reported via
// Issues; everything else is indexed for lookup. Record order in the
// snapshot is by ascending ID regardless of input order, so downstream
// results are reproducible.
func NewSnapshot(pilots []Pilot, drones []Drone, missions []Mission) *Snapshot {
	snap := &Snapshot{
		pilotsByID:   make(map[string]*Pilot, len(pilots)),
		dronesByID:   make(map[string]*Drone, len(drones)),
		missionsByID: make(map[string]*Mission, len(missions)),
	}

	for _, p := range pilots {
		if err := validatePilot(&p); err != nil {
			snap.addIssue("pilot", p.ID, err)
			continue
		}
		snap.Pilots = append(snap.Pilots, p)
	}
	for _, d := range drones {
		if err := validateDrone(&d); err != nil {
			snap.addIssue("drone", d.ID, err)
			continue
		}
		snap.Drones = append(snap.Drones, d)
	}
	for _, m := range missions {
		if err := validateMission(&m); err != nil {
			snap.addIssue("mission", m.ID, err)
			continue
		}
		snap.Missions = append(snap.Missions, m)
	}

	sort.Slice(snap.Pilots, func(i, j int) bool { return snap.Pilots[i].ID < snap.Pilots[j].ID })
	sort.Slice(snap.Drones, func(i, j int) bool { return snap.Drones[i].ID < snap.Drones[j].ID })
	sort.Slice(snap.Missions, func(i, j int) bool { return snap.Missions[i].ID < snap.Missions[j].ID })

	for i := range snap.Pilots {
		snap.pilotsByID[snap.Pilots[i].ID] = &snap.Pilots[i]
	}
	for i := range snap.Drones {
		snap.dronesByID[snap.Drones[i].ID] = &snap.Drones[i]
	}
	for i := range snap.Missions {
		snap.missionsByID[snap.Missions[i].ID] = &snap.Missions[i]
	}

	return snap
}

func (s *Snapshot) addIssue(kind, id string, err error) {
	if id == "" {
		id = "(missing id)"
	}
	s.Issues = append(s.Issues, RecordIssue{Kind: kind, ID: id, Message: err.Error()})
}

// Pilot returns the pilot with the given ID, or nil if absent.
func (s *Snapshot) Pilot(id string) *Pilot {
	return s.pilotsByID[id]
}

// Drone returns the drone with the given ID, or nil if absent.
func (s *Snapshot) Drone(id string) *Drone {
	return s.dronesByID[id]
}

// Mission returns the mission with the given ID, or nil if absent.
func (s *Snapshot) Mission(id string) *Mission {
	return s.missionsByID[id]
}

func validatePilot(p *Pilot) error {
	if err := recordValidator.Struct(p); err != nil {
		return fmt.Errorf("invalid pilot record: %w", err)
	}
	if err := p.Status.Validate(); err != nil {
		return err
	}
	return nil
}

func validateDrone(d *Drone) error {
	if err := recordValidator.Struct(d); err != nil {
		return fmt.Errorf("invalid drone record: %w", err)
	}
	if err := d.Status.Validate(); err != nil {
		return err
	}
	if err := d.WeatherRating.Validate(); err != nil {
		return err
	}
	return nil
}

func validateMission(m *Mission) error {
	if err := recordValidator.Struct(m); err != nil {
		return fmt.Errorf("invalid mission record: %w", err)
	}
	if m.Dates.Start.IsZero() || m.Dates.End.IsZero() {
		return fmt.Errorf("mission dates incomplete: %s", m.Dates)
	}
	if m.Dates.End.Before(m.Dates.Start) {
		return fmt.Errorf("mission end date %s before start date %s", m.Dates.End, m.Dates.Start)
	}
	if err := m.Forecast.Validate(); err != nil {
		return err
	}
	return nil
}
