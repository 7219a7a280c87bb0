package fleet

import "fmt"

// ResourceKind distinguishes the two assignable resource types.
type ResourceKind string

const (
	// KindPilot selects pilot resources.
	KindPilot ResourceKind = "pilot"

	// KindDrone selects drone resources.
	KindDrone ResourceKind = "drone"
)

// Validate checks that the resource kind is one of the known values.
func (k ResourceKind) Validate() error {
	switch k {
	case KindPilot, KindDrone:
		return nil
	default:
		return fmt.Errorf("invalid resource kind: %q", string(k))
	}
}

// PilotStatus represents the operator-maintained availability signal on a
// pilot record. The assignment link, not the status, is the source of truth
// for who is flying what; the conflict scanner reports disagreement between
// the two as an advisory.
type PilotStatus string

const (
	// PilotAvailable indicates the pilot can take new assignments.
	PilotAvailable PilotStatus = "Available"

	// PilotAssigned indicates the pilot is marked as working a mission.
	PilotAssigned PilotStatus = "Assigned"

	// PilotOnLeave indicates the pilot is off roster.
	PilotOnLeave PilotStatus = "On Leave"
)

// Validate checks that the pilot status is one of the known values.
func (s PilotStatus) Validate() error {
	switch s {
	case PilotAvailable, PilotAssigned, PilotOnLeave:
		return nil
	default:
		return fmt.Errorf("invalid pilot status: %q", string(s))
	}
}

// DroneStatus represents the operator-maintained availability signal on a
// drone record.
type DroneStatus string

const (
	// DroneAvailable indicates the drone can be deployed.
	DroneAvailable DroneStatus = "Available"

	// DroneAssigned indicates the drone is marked as deployed on a mission.
	DroneAssigned DroneStatus = "Assigned"

	// DroneMaintenance indicates the drone is grounded for maintenance.
	DroneMaintenance DroneStatus = "Maintenance"
)

// Validate checks that the drone status is one of the known values.
func (s DroneStatus) Validate() error {
	switch s {
	case DroneAvailable, DroneAssigned, DroneMaintenance:
		return nil
	default:
		return fmt.Errorf("invalid drone status: %q", string(s))
	}
}

// WeatherRating is a drone's weather tolerance. Ratings are ordered:
// AllWeather covers RainCapable covers ClearOnly.
type WeatherRating string

const (
	// RatingClearOnly limits the drone to dry, calm conditions.
	RatingClearOnly WeatherRating = "ClearOnly"

	// RatingRainCapable permits flight in rain but not storms.
	RatingRainCapable WeatherRating = "RainCapable"

	// RatingAllWeather permits flight in any forecast condition.
	RatingAllWeather WeatherRating = "AllWeather"
)

// rank returns the position of the rating on the coverage ordering.
// Unknown ratings rank below ClearOnly so they never satisfy a forecast.
func (r WeatherRating) rank() int {
	switch r {
	case RatingClearOnly:
		return 1
	case RatingRainCapable:
		return 2
	case RatingAllWeather:
		return 3
	default:
		return 0
	}
}

// Covers reports whether the rating satisfies the given minimum rating.
func (r WeatherRating) Covers(required WeatherRating) bool {
	return r.rank() >= required.rank()
}

// Validate checks that the weather rating is one of the known values.
func (r WeatherRating) Validate() error {
	switch r {
	case RatingClearOnly, RatingRainCapable, RatingAllWeather:
		return nil
	default:
		return fmt.Errorf("invalid weather rating: %q", string(r))
	}
}

// Forecast is the expected weather condition over a mission's date range.
// It is an input field on the mission record, not a fetched value.
type Forecast string

const (
	// ForecastSunny expects clear skies.
	ForecastSunny Forecast = "Sunny"

	// ForecastCloudy expects overcast but dry conditions.
	ForecastCloudy Forecast = "Cloudy"

	// ForecastRainy expects rain.
	ForecastRainy Forecast = "Rainy"

	// ForecastStormy expects storm conditions.
	ForecastStormy Forecast = "Stormy"
)

// RequiredRating returns the minimum drone weather rating the forecast
// demands: Sunny and Cloudy fly on ClearOnly, Rainy needs RainCapable,
// Stormy needs AllWeather. Unknown forecasts are treated as Stormy so a
// bad cell never under-constrains a match.
func (f Forecast) RequiredRating() WeatherRating {
	switch f {
	case ForecastSunny, ForecastCloudy:
		return RatingClearOnly
	case ForecastRainy:
		return RatingRainCapable
	default:
		return RatingAllWeather
	}
}

// Validate checks that the forecast is one of the known values.
func (f Forecast) Validate() error {
	switch f {
	case ForecastSunny, ForecastCloudy, ForecastRainy, ForecastStormy:
		return nil
	default:
		return fmt.Errorf("invalid forecast: %q", string(f))
	}
}

// Priority is the scheduling priority of a mission.
type Priority string

const (
	// PriorityStandard is the default mission priority.
	PriorityStandard Priority = "Standard"

	// PriorityHigh marks missions that should be staffed first.
	PriorityHigh Priority = "High"

	// PriorityUrgent marks missions needing immediate attention.
	PriorityUrgent Priority = "Urgent"
)

// Pilot is a personnel resource.
type Pilot struct {
	// ID is the unique pilot identifier (e.g. "P001").
	ID string `json:"id" validate:"required"`

	// Name is the pilot's display name.
	Name string `json:"name"`

	// Skills are the pilot's operational skill tags (e.g. Mapping, Thermal).
	Skills TagSet `json:"skills"`

	// Certifications are the pilot's certification tags, compared
	// case-insensitively (e.g. DGCA, Night Ops).
	Certifications TagSet `json:"certifications"`

	// Location is the pilot's home base city.
	Location string `json:"location"`

	// Status is the operator-maintained availability signal.
	Status PilotStatus `json:"status"`

	// DailyRate is the pilot's rate per mission day in currency units.
	DailyRate float64 `json:"daily_rate" validate:"gte=0"`

	// CurrentMissions lists the mission IDs this pilot is currently linked
	// to. A well-formed roster has at most one entry; extra entries are the
	// double-booking anomaly the conflict scanner detects.
	CurrentMissions []string `json:"current_missions,omitempty"`
}

// AssignedTo reports whether the pilot is currently linked to the mission.
func (p *Pilot) AssignedTo(missionID string) bool {
	for _, id := range p.CurrentMissions {
		if id == missionID {
			return true
		}
	}
	return false
}

// Drone is an equipment resource.
type Drone struct {
	// ID is the unique drone identifier (e.g. "D001").
	ID string `json:"id" validate:"required"`

	// Model is the airframe model name.
	Model string `json:"model"`

	// Capabilities are the drone's payload/sensor capability tags
	// (e.g. LiDAR, Thermal, RGB).
	Capabilities TagSet `json:"capabilities"`

	// WeatherRating is the drone's weather tolerance.
	WeatherRating WeatherRating `json:"weather_rating"`

	// Location is the drone's home base city.
	Location string `json:"location"`

	// Status is the operator-maintained availability signal.
	Status DroneStatus `json:"status"`

	// MaintenanceDue is the next scheduled maintenance date, if known.
	MaintenanceDue *Date `json:"maintenance_due,omitempty"`

	// CurrentMissions lists the mission IDs this drone is currently linked
	// to. Same semantics as Pilot.CurrentMissions.
	CurrentMissions []string `json:"current_missions,omitempty"`
}

// AssignedTo reports whether the drone is currently linked to the mission.
func (d *Drone) AssignedTo(missionID string) bool {
	for _, id := range d.CurrentMissions {
		if id == missionID {
			return true
		}
	}
	return false
}

// Mission is a time-bounded project needing a pilot and a drone.
type Mission struct {
	// ID is the unique mission identifier (e.g. "PRJ001").
	ID string `json:"id" validate:"required"`

	// Project is the project or client-facing name.
	Project string `json:"project"`

	// Client is the client the mission is flown for.
	Client string `json:"client,omitempty"`

	// Location is the mission site city.
	Location string `json:"location"`

	// Dates is the inclusive mission date range.
	Dates DateRange `json:"dates"`

	// RequiredSkills are the skill tags the assigned pilot must cover.
	RequiredSkills TagSet `json:"required_skills"`

	// RequiredCerts are the certification tags the assigned pilot must
	// cover, compared case-insensitively.
	RequiredCerts TagSet `json:"required_certs"`

	// Forecast is the expected weather condition for the mission window.
	Forecast Forecast `json:"forecast"`

	// Budget is the total budget for the pilot's full engagement.
	Budget float64 `json:"budget" validate:"gte=0"`

	// Priority is the scheduling priority.
	Priority Priority `json:"priority,omitempty"`
}

// Days returns the inclusive mission duration in days.
func (m *Mission) Days() int {
	return m.Dates.Days()
}
