package engine

import (
	"strings"
	"testing"

	"github.com/samy8144/AI-Operations-Coordinator/pkg/fleet"
)

func findConflicts(report *ScanReport, ct ConflictType) []ConflictRecord {
	var out []ConflictRecord
	for _, c := range report.Conflicts {
		if c.Type == ct {
			out = append(out, c)
		}
	}
	return out
}

func findAdvisories(report *ScanReport, code AdvisoryCode) []Advisory {
	var out []Advisory
	for _, a := range report.Advisories {
		if a.Code == code {
			out = append(out, a)
		}
	}
	return out
}

func TestScanAllCleanSnapshot(t *testing.T) {
	eng := newTestEngine()
	snap := fleet.NewSnapshot(
		[]fleet.Pilot{{
			ID: "P001", Name: "Asha Nair",
			Skills:          fleet.NewTagSet("Mapping"),
			Certifications:  fleet.NewTagSet("DGCA"),
			Location:        "Mumbai",
			Status:          fleet.PilotAssigned,
			DailyRate:       2000,
			CurrentMissions: []string{"PRJ001"},
		}},
		[]fleet.Drone{{
			ID: "D001", Model: "Matrice 350",
			Capabilities:    fleet.NewTagSet("Mapping"),
			WeatherRating:   fleet.RatingAllWeather,
			Location:        "Mumbai",
			Status:          fleet.DroneAssigned,
			CurrentMissions: []string{"PRJ001"},
		}},
		[]fleet.Mission{{
			ID: "PRJ001", Project: "Metro Corridor Survey",
			Location:       "Mumbai",
			Dates:          march(1, 5),
			RequiredSkills: fleet.NewTagSet("Mapping"),
			RequiredCerts:  fleet.NewTagSet("DGCA"),
			Forecast:       fleet.ForecastSunny,
			Budget:         60000,
		}},
	)

	report := eng.ScanAll(snap)

	if len(report.Conflicts) != 0 {
		t.Errorf("Conflicts = %+v, want none", report.Conflicts)
	}
	if len(report.Advisories) != 0 {
		t.Errorf("Advisories = %+v, want none", report.Advisories)
	}
	if report.ID == "" {
		t.Error("report ID is empty")
	}
	if report.GeneratedAt.IsZero() {
		t.Error("report GeneratedAt is zero")
	}
}

func TestScanAllDetectsDoubleBooking(t *testing.T) {
	eng := newTestEngine()
	snap := fleet.NewSnapshot(
		[]fleet.Pilot{{
			ID: "P001", Name: "Vikram Rao",
			Skills:          fleet.NewTagSet("Mapping", "Thermal"),
			Certifications:  fleet.NewTagSet("DGCA"),
			Location:        "Mumbai",
			Status:          fleet.PilotAssigned,
			DailyRate:       1000,
			CurrentMissions: []string{"PRJ001", "PRJ002"},
		}},
		nil,
		[]fleet.Mission{
			{
				ID: "PRJ001", Location: "Mumbai",
				Dates:          march(1, 5),
				RequiredSkills: fleet.NewTagSet("Mapping"),
				Forecast:       fleet.ForecastSunny,
				Budget:         60000,
			},
			{
				ID: "PRJ002", Location: "Mumbai",
				Dates:          march(4, 10),
				RequiredSkills: fleet.NewTagSet("Thermal"),
				Forecast:       fleet.ForecastSunny,
				Budget:         60000,
			},
		},
	)

	report := eng.ScanAll(snap)

	// One record per implicated mission, both at high severity.
	bookings := findConflicts(report, ConflictDoubleBooking)
	if len(bookings) != 2 {
		t.Fatalf("double bookings = %+v, want one per mission", bookings)
	}
	seen := map[string]bool{}
	for _, c := range bookings {
		if c.Severity != SeverityHigh {
			t.Errorf("severity = %s, want High", c.Severity)
		}
		if c.PilotID != "P001" {
			t.Errorf("pilot = %s, want P001", c.PilotID)
		}
		seen[c.MissionID] = true
	}
	if !seen["PRJ001"] || !seen["PRJ002"] {
		t.Errorf("implicated missions = %v, want both PRJ001 and PRJ002", seen)
	}
	if got := report.CountBySeverity(SeverityHigh); got != 2 {
		t.Errorf("CountBySeverity(High) = %d, want 2", got)
	}
}

func TestScanAllDetectsPilotMismatches(t *testing.T) {
	eng := newTestEngine()
	snap := fleet.NewSnapshot(
		[]fleet.Pilot{{
			ID: "P001", Name: "Meera Iyer",
			Skills:          fleet.NewTagSet("GIS"),
			Location:        "Delhi",
			Status:          fleet.PilotAssigned,
			DailyRate:       5000,
			CurrentMissions: []string{"PRJ001"},
		}},
		nil,
		[]fleet.Mission{{
			ID: "PRJ001", Location: "Mumbai",
			Dates:          march(1, 4), // 4 days: cost 20000 vs budget 15000
			RequiredSkills: fleet.NewTagSet("Thermal", "LiDAR"),
			RequiredCerts:  fleet.NewTagSet("DGCA"),
			Forecast:       fleet.ForecastSunny,
			Budget:         15000,
		}},
	)

	report := eng.ScanAll(snap)

	skill := findConflicts(report, ConflictSkillMismatch)
	if len(skill) != 1 || skill[0].Severity != SeverityMedium {
		t.Errorf("skill mismatch = %+v, want one medium record", skill)
	}
	if len(skill) == 1 && !strings.Contains(skill[0].Description, "LiDAR") {
		t.Errorf("skill mismatch description %q does not name the missing skill", skill[0].Description)
	}

	cert := findConflicts(report, ConflictCertMismatch)
	if len(cert) != 1 || cert[0].Severity != SeverityMedium {
		t.Errorf("cert mismatch = %+v, want one medium record", cert)
	}

	budget := findConflicts(report, ConflictBudgetOverrun)
	if len(budget) != 1 || budget[0].Severity != SeverityLow {
		t.Errorf("budget overrun = %+v, want one low record", budget)
	}

	location := findConflicts(report, ConflictLocationMismatch)
	if len(location) != 1 || location[0].Severity != SeverityLow {
		t.Errorf("location mismatch = %+v, want one low record", location)
	}
}

func TestScanAllDetectsDroneConflicts(t *testing.T) {
	eng := newTestEngine()
	snap := fleet.NewSnapshot(
		nil,
		[]fleet.Drone{{
			ID: "D001", Model: "Mavic 3",
			Capabilities:    fleet.NewTagSet("Mapping"),
			WeatherRating:   fleet.RatingClearOnly,
			Location:        "Pune",
			Status:          fleet.DroneMaintenance,
			CurrentMissions: []string{"PRJ001"},
		}},
		[]fleet.Mission{{
			ID: "PRJ001", Location: "Mumbai",
			Dates:    march(1, 5),
			Forecast: fleet.ForecastRainy,
			Budget:   60000,
		}},
	)

	report := eng.ScanAll(snap)

	maintenance := findConflicts(report, ConflictDroneMaintenance)
	if len(maintenance) != 1 || maintenance[0].Severity != SeverityHigh {
		t.Errorf("maintenance conflict = %+v, want one high record", maintenance)
	}

	weather := findConflicts(report, ConflictWeatherRisk)
	if len(weather) != 1 || weather[0].Severity != SeverityMedium {
		t.Errorf("weather risk = %+v, want one medium record", weather)
	}

	location := findConflicts(report, ConflictLocationMismatch)
	if len(location) != 1 || location[0].DroneID != "D001" {
		t.Errorf("location mismatch = %+v, want one record for D001", location)
	}
}

func TestScanAllAdvisories(t *testing.T) {
	eng := newTestEngine()
	snap := fleet.NewSnapshot(
		[]fleet.Pilot{
			{ID: "", Status: fleet.PilotAvailable}, // malformed, excluded
			{
				// Status says Assigned, nothing is linked.
				ID: "P001", Name: "Asha Nair",
				Location: "Mumbai", Status: fleet.PilotAssigned,
			},
			{
				// Linked to a mission that is not in the snapshot.
				ID: "P002", Name: "Vikram Rao",
				Location: "Mumbai", Status: fleet.PilotAssigned,
				CurrentMissions: []string{"PRJ404"},
			},
		},
		[]fleet.Drone{{
			// Linked but status still Available.
			ID: "D001", Model: "Matrice 350",
			WeatherRating:   fleet.RatingAllWeather,
			Location:        "Mumbai",
			Status:          fleet.DroneAvailable,
			CurrentMissions: []string{"PRJ001"},
		}},
		[]fleet.Mission{{
			ID: "PRJ001", Location: "Mumbai",
			Dates:    march(1, 5),
			Forecast: fleet.ForecastSunny,
			Budget:   60000,
		}},
	)

	report := eng.ScanAll(snap)

	if got := findAdvisories(report, AdvisoryMalformedRecord); len(got) != 1 {
		t.Errorf("malformed-record advisories = %+v, want 1", got)
	}

	dangling := findAdvisories(report, AdvisoryDanglingAssignment)
	if len(dangling) != 1 {
		t.Fatalf("dangling-assignment advisories = %+v, want 1", dangling)
	}
	if dangling[0].ResourceID != "P002" || dangling[0].MissionID != "PRJ404" {
		t.Errorf("dangling advisory = %+v, want P002 linked to PRJ404", dangling[0])
	}

	// P001 is Assigned with nothing linked, D001 is Available while
	// linked, and P002's only link points nowhere, so its Assigned
	// status has no backing mission either.
	desync := findAdvisories(report, AdvisoryStatusDesync)
	if len(desync) != 3 {
		t.Fatalf("status-desync advisories = %+v, want 3", desync)
	}
	for _, a := range desync {
		if a.Severity != SeverityLow {
			t.Errorf("advisory severity = %s, want Low", a.Severity)
		}
	}

	// Advisories never enter the conflict list.
	if len(report.Conflicts) != 0 {
		t.Errorf("Conflicts = %+v, want none", report.Conflicts)
	}
}

func TestScanAllReportOrderIsStable(t *testing.T) {
	eng := newTestEngine()
	snap := fixtureSnapshot()

	first := eng.ScanAll(snap)
	second := eng.ScanAll(snap)

	if len(first.Conflicts) != len(second.Conflicts) {
		t.Fatalf("conflict counts differ: %d vs %d", len(first.Conflicts), len(second.Conflicts))
	}
	for i := range first.Conflicts {
		a, b := first.Conflicts[i], second.Conflicts[i]
		if a.Type != b.Type || a.MissionID != b.MissionID || a.PilotID != b.PilotID || a.DroneID != b.DroneID {
			t.Errorf("conflict order changed at %d: %+v vs %+v", i, a, b)
		}
	}

	// Severity never increases down the list.
	for i := 1; i < len(first.Conflicts); i++ {
		if first.Conflicts[i].Severity.rank() > first.Conflicts[i-1].Severity.rank() {
			t.Errorf("conflict %d (%s) outranks its predecessor (%s)",
				i, first.Conflicts[i].Severity, first.Conflicts[i-1].Severity)
		}
	}
}
