package engine

import (
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/samy8144/AI-Operations-Coordinator/pkg/fleet"
)

func newTestEngine() *Engine {
	return New(zerolog.Nop())
}

// march builds a date range inside March 2026, the month all fixtures
// live in.
func march(startDay, endDay int) fleet.DateRange {
	return fleet.DateRange{
		Start: fleet.NewDate(2026, time.March, startDay),
		End:   fleet.NewDate(2026, time.March, endDay),
	}
}

// fixtureSnapshot is the shared matching fixture: one mission in Mumbai
// needing Mapping+Thermal pilots with DGCA certification, plus pilots and
// drones covering the interesting score and exclusion combinations.
func fixtureSnapshot() *fleet.Snapshot {
	pilots := []fleet.Pilot{
		{
			// Full match: location, skills, certs, budget all align.
			ID: "P001", Name: "Asha Nair",
			Skills:         fleet.NewTagSet("Mapping", "Thermal", "GIS"),
			Certifications: fleet.NewTagSet("DGCA"),
			Location:       "Mumbai",
			Status:         fleet.PilotAvailable,
			DailyRate:      5000,
		},
		{
			// Qualified but in the wrong city.
			ID: "P002", Name: "Vikram Rao",
			Skills:         fleet.NewTagSet("Mapping", "Thermal"),
			Certifications: fleet.NewTagSet("DGCA"),
			Location:       "Delhi",
			Status:         fleet.PilotAvailable,
			DailyRate:      4000,
		},
		{
			// Missing the Thermal skill and the DGCA certification.
			ID: "P003", Name: "Meera Iyer",
			Skills:   fleet.NewTagSet("Mapping"),
			Location: "Mumbai",
			Status:   fleet.PilotAvailable, DailyRate: 3000,
		},
		{
			// Qualified but linked to an overlapping mission.
			ID: "P004", Name: "Ravi Kumar",
			Skills:          fleet.NewTagSet("Mapping", "Thermal"),
			Certifications:  fleet.NewTagSet("DGCA"),
			Location:        "Mumbai",
			Status:          fleet.PilotAssigned,
			DailyRate:       4500,
			CurrentMissions: []string{"PRJ002"},
		},
		{
			// Qualified and linked only to a non-overlapping mission.
			ID: "P005", Name: "Sunita Patil",
			Skills:          fleet.NewTagSet("Mapping", "Thermal"),
			Certifications:  fleet.NewTagSet("DGCA"),
			Location:        "Mumbai",
			Status:          fleet.PilotAssigned,
			DailyRate:       6000,
			CurrentMissions: []string{"PRJ003"},
		},
	}

	drones := []fleet.Drone{
		{
			ID: "D001", Model: "Matrice 350",
			Capabilities:  fleet.NewTagSet("Mapping", "Thermal", "LiDAR"),
			WeatherRating: fleet.RatingAllWeather,
			Location:      "Mumbai",
			Status:        fleet.DroneAvailable,
		},
		{
			ID: "D002", Model: "Mavic 3",
			Capabilities:  fleet.NewTagSet("Mapping"),
			WeatherRating: fleet.RatingClearOnly,
			Location:      "Pune",
			Status:        fleet.DroneAvailable,
		},
	}

	missions := []fleet.Mission{
		{
			ID: "PRJ001", Project: "Metro Corridor Survey",
			Location:       "Mumbai",
			Dates:          march(1, 5),
			RequiredSkills: fleet.NewTagSet("Mapping", "Thermal"),
			RequiredCerts:  fleet.NewTagSet("DGCA"),
			Forecast:       fleet.ForecastSunny,
			Budget:         60000,
			Priority:       fleet.PriorityHigh,
		},
		{
			ID: "PRJ002", Project: "Port Inspection",
			Location:       "Mumbai",
			Dates:          march(4, 10),
			RequiredSkills: fleet.NewTagSet("Thermal"),
			Forecast:       fleet.ForecastRainy,
			Budget:         80000,
		},
		{
			ID: "PRJ003", Project: "Solar Farm Audit",
			Location:       "Pune",
			Dates:          march(20, 24),
			RequiredSkills: fleet.NewTagSet("Mapping"),
			Forecast:       fleet.ForecastSunny,
			Budget:         50000,
		},
	}

	return fleet.NewSnapshot(pilots, drones, missions)
}

func candidateIDs(candidates []Candidate) []string {
	ids := make([]string, len(candidates))
	for i, c := range candidates {
		ids[i] = c.ResourceID
	}
	return ids
}

func TestFindCandidatesRanksPilots(t *testing.T) {
	eng := newTestEngine()
	snap := fixtureSnapshot()

	candidates, err := eng.FindCandidates(snap, "PRJ001", fleet.KindPilot)
	if err != nil {
		t.Fatalf("FindCandidates failed: %v", err)
	}

	// P003 is out on skills and certs, P004 on the overlapping link.
	// P001 takes every weight; P005 matches everything too; P002 loses
	// only the location weight.
	want := []string{"P001", "P005", "P002"}
	got := candidateIDs(candidates)
	if len(got) != len(want) {
		t.Fatalf("candidates = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("candidates = %v, want %v", got, want)
		}
	}

	if candidates[0].Score != 100 {
		t.Errorf("P001 score = %.1f, want 100", candidates[0].Score)
	}
	if candidates[2].Score != 60 {
		t.Errorf("P002 score = %.1f, want 60", candidates[2].Score)
	}

	// Equal scores break ties by ascending ID.
	if candidates[0].Score == candidates[1].Score && candidates[0].ResourceID > candidates[1].ResourceID {
		t.Errorf("tie not broken by ascending ID: %v", got)
	}

	// Pilot candidates carry the engagement cost.
	if want := 5000.0 * 5; candidates[0].Cost != want {
		t.Errorf("P001 cost = %.0f, want %.0f", candidates[0].Cost, want)
	}
}

func TestFindCandidatesIsReproducible(t *testing.T) {
	eng := newTestEngine()
	snap := fixtureSnapshot()

	first, err := eng.FindCandidates(snap, "PRJ001", fleet.KindPilot)
	if err != nil {
		t.Fatalf("FindCandidates failed: %v", err)
	}
	second, err := eng.FindCandidates(snap, "PRJ001", fleet.KindPilot)
	if err != nil {
		t.Fatalf("second FindCandidates failed: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("result sizes differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ResourceID != second[i].ResourceID || first[i].Score != second[i].Score {
			t.Errorf("ordering changed between runs at %d: %s vs %s", i, first[i].ResourceID, second[i].ResourceID)
		}
	}
}

func TestFindCandidatesOverBudgetPilotStaysRanked(t *testing.T) {
	eng := newTestEngine()
	snap := fleet.NewSnapshot(
		[]fleet.Pilot{{
			ID: "P001", Name: "Asha Nair",
			Skills:    fleet.NewTagSet("GIS"),
			Location:  "Mumbai",
			Status:    fleet.PilotAvailable,
			DailyRate: 5000,
		}},
		nil,
		[]fleet.Mission{{
			ID: "PRJ003", Project: "Solar Farm Audit",
			Location:       "Mumbai",
			Dates:          march(1, 4), // 4 days: cost 20000 vs budget 15000
			RequiredSkills: fleet.NewTagSet("GIS"),
			Forecast:       fleet.ForecastSunny,
			Budget:         15000,
		}},
	)

	candidates, err := eng.FindCandidates(snap, "PRJ003", fleet.KindPilot)
	if err != nil {
		t.Fatalf("FindCandidates failed: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("candidates = %v, want the over-budget pilot kept", candidateIDs(candidates))
	}

	c := candidates[0]
	// Location 40 + skills 30 + certs 20 (none required), budget weight lost.
	if c.Score != 90 {
		t.Errorf("score = %.1f, want 90", c.Score)
	}
	if c.Cost != 20000 {
		t.Errorf("cost = %.0f, want 20000", c.Cost)
	}
	overBudgetFlagged := false
	for _, reason := range c.Reasons {
		if strings.Contains(reason, "over budget") {
			overBudgetFlagged = true
		}
	}
	if !overBudgetFlagged {
		t.Errorf("reasons %v do not flag the budget overrun", c.Reasons)
	}
}

func TestFindCandidatesRanksDrones(t *testing.T) {
	eng := newTestEngine()
	snap := fixtureSnapshot()

	// PRJ002 forecasts rain: the ClearOnly Mavic is excluded outright.
	candidates, err := eng.FindCandidates(snap, "PRJ002", fleet.KindDrone)
	if err != nil {
		t.Fatalf("FindCandidates failed: %v", err)
	}
	got := candidateIDs(candidates)
	if len(got) != 1 || got[0] != "D001" {
		t.Fatalf("candidates = %v, want [D001]", got)
	}
	if candidates[0].Cost != 0 {
		t.Errorf("drone cost = %.0f, want 0", candidates[0].Cost)
	}

	// PRJ001 is sunny: both drones are eligible and capability plus
	// location separates them.
	candidates, err = eng.FindCandidates(snap, "PRJ001", fleet.KindDrone)
	if err != nil {
		t.Fatalf("FindCandidates failed: %v", err)
	}
	got = candidateIDs(candidates)
	if len(got) != 2 || got[0] != "D001" || got[1] != "D002" {
		t.Fatalf("candidates = %v, want [D001 D002]", got)
	}
	// D001: location 40 + full capability coverage 30. D002: half
	// coverage 15, wrong city.
	if candidates[0].Score != 70 {
		t.Errorf("D001 score = %.1f, want 70", candidates[0].Score)
	}
	if candidates[1].Score != 15 {
		t.Errorf("D002 score = %.1f, want 15", candidates[1].Score)
	}
}

func TestFindCandidatesEmptyResultIsNotAnError(t *testing.T) {
	eng := newTestEngine()
	snap := fleet.NewSnapshot(
		[]fleet.Pilot{{
			ID: "P001", Skills: fleet.NewTagSet("Mapping"),
			Location: "Mumbai", Status: fleet.PilotAvailable,
		}},
		nil,
		[]fleet.Mission{{
			ID: "PRJ001", Location: "Mumbai",
			Dates:          march(1, 5),
			RequiredSkills: fleet.NewTagSet("LiDAR"),
			Forecast:       fleet.ForecastSunny,
			Budget:         10000,
		}},
	)

	candidates, err := eng.FindCandidates(snap, "PRJ001", fleet.KindPilot)
	if err != nil {
		t.Fatalf("FindCandidates failed: %v", err)
	}
	if len(candidates) != 0 {
		t.Errorf("candidates = %v, want none", candidateIDs(candidates))
	}
}

func TestFindCandidatesUnknownMission(t *testing.T) {
	eng := newTestEngine()
	snap := fixtureSnapshot()

	_, err := eng.FindCandidates(snap, "PRJ999", fleet.KindPilot)
	if err == nil {
		t.Fatal("FindCandidates succeeded for an unknown mission")
	}
	if !IsReference(err) {
		t.Errorf("error = %v, want a reference error", err)
	}
}

func TestFindCandidatesInvalidKind(t *testing.T) {
	eng := newTestEngine()
	snap := fixtureSnapshot()

	_, err := eng.FindCandidates(snap, "PRJ001", fleet.ResourceKind("helicopter"))
	if err == nil {
		t.Fatal("FindCandidates succeeded for an invalid kind")
	}
	if !IsValidation(err) {
		t.Errorf("error = %v, want a validation error", err)
	}
}

func TestEstimateCost(t *testing.T) {
	eng := newTestEngine()
	snap := fixtureSnapshot()

	// PRJ001 runs 5 inclusive days at 5000/day.
	cost, err := eng.EstimateCost(snap, "P001", "PRJ001")
	if err != nil {
		t.Fatalf("EstimateCost failed: %v", err)
	}
	if cost != 25000 {
		t.Errorf("cost = %.0f, want 25000", cost)
	}

	if _, err := eng.EstimateCost(snap, "P999", "PRJ001"); !IsReference(err) {
		t.Errorf("unknown pilot error = %v, want a reference error", err)
	}
	if _, err := eng.EstimateCost(snap, "P001", "PRJ999"); !IsReference(err) {
		t.Errorf("unknown mission error = %v, want a reference error", err)
	}
}
