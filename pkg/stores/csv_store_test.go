package stores

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/samy8144/AI-Operations-Coordinator/pkg/fleet"
)

const pilotCSV = `pilot_id,name,skills,certifications,location,daily_rate_inr,status,current_assignment
P001,Asha Nair,"Mapping, Thermal, GIS",DGCA,Mumbai,"5,000",Available,-
P002,Vikram Rao,"Mapping, Thermal",DGCA,Delhi,4000,Assigned,"PRJ001, PRJ002"
P003,Meera Iyer,Mapping,,Mumbai,not-a-number,Available,None
P004,Ravi Kumar,Thermal,DGCA,Pune,3000,Unavailable,-
`

const droneCSV = `drone_id,model,capabilities,weather_resistance,location,status,maintenance_due,current_assignment
D001,Matrice 350,"Mapping, Thermal, LiDAR",IP55,Mumbai,Available,2026-04-15,-
D002,Mavic 3,Mapping,None (Clear Sky Only),Pune,Deployed,-,PRJ001
D003,Anafi AI,Thermal,IP43,Delhi,Maintenance,bad-date,-
`

const missionCSV = `project_id,project,client,location,start_date,end_date,required_skills,required_certifications,weather_forecast,mission_budget_inr,priority
PRJ001,Metro Corridor Survey,MetroRail,Mumbai,2026-03-01,2026-03-05,"Mapping, Thermal",DGCA,Sunny,"60,000",High
PRJ002,Port Inspection,PortCo,Mumbai,2026-03-04,2026-03-10,Thermal,,Rainy,80000,Urgent
PRJ003,Solar Farm Audit,SunGrid,Pune,2026-03-20,2026-03-18,Mapping,,Sunny,50000,
`

func writeSheets(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range map[string]string{
		pilotSheet:   pilotCSV,
		droneSheet:   droneCSV,
		missionSheet: missionCSV,
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return dir
}

func TestLoadSnapshot(t *testing.T) {
	store := NewCSVStore(writeSheets(t), zerolog.Nop())

	snap, err := store.LoadSnapshot(context.Background())
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}

	// P003's rate cell is unparseable, PRJ003 ends before it starts, and
	// D003's maintenance date is garbage.
	if got := len(snap.Pilots); got != 3 {
		t.Errorf("kept %d pilots, want 3", got)
	}
	if got := len(snap.Drones); got != 2 {
		t.Errorf("kept %d drones, want 2", got)
	}
	if got := len(snap.Missions); got != 2 {
		t.Errorf("kept %d missions, want 2", got)
	}
	if got := len(snap.Issues); got != 3 {
		t.Errorf("issues = %v, want 3", snap.Issues)
	}

	p1 := snap.Pilot("P001")
	if p1 == nil {
		t.Fatal("P001 missing from snapshot")
	}
	if p1.DailyRate != 5000 {
		t.Errorf("P001 rate = %.0f, want the comma-formatted 5000 parsed", p1.DailyRate)
	}
	if !p1.Skills.Contains("GIS") {
		t.Errorf("P001 skills = %s, want GIS included", p1.Skills)
	}
	if len(p1.CurrentMissions) != 0 {
		t.Errorf("P001 assignments = %v, want the dash cell parsed as none", p1.CurrentMissions)
	}

	p2 := snap.Pilot("P002")
	if len(p2.CurrentMissions) != 2 || p2.CurrentMissions[0] != "PRJ001" || p2.CurrentMissions[1] != "PRJ002" {
		t.Errorf("P002 assignments = %v, want [PRJ001 PRJ002]", p2.CurrentMissions)
	}

	// Legacy cell vocabularies map onto the domain enums.
	if got := snap.Pilot("P004").Status; got != fleet.PilotOnLeave {
		t.Errorf("P004 status = %s, want Unavailable mapped to On Leave", got)
	}
	if got := snap.Drone("D001").WeatherRating; got != fleet.RatingAllWeather {
		t.Errorf("D001 rating = %s, want IP55 mapped to AllWeather", got)
	}
	if got := snap.Drone("D002").WeatherRating; got != fleet.RatingClearOnly {
		t.Errorf("D002 rating = %s, want the clear-sky cell mapped to ClearOnly", got)
	}
	if got := snap.Drone("D002").Status; got != fleet.DroneAssigned {
		t.Errorf("D002 status = %s, want Deployed mapped to Assigned", got)
	}

	d1 := snap.Drone("D001")
	if d1.MaintenanceDue == nil || !d1.MaintenanceDue.Equal(fleet.NewDate(2026, time.April, 15)) {
		t.Errorf("D001 maintenance due = %v, want 2026-04-15", d1.MaintenanceDue)
	}
	if snap.Drone("D002").MaintenanceDue != nil {
		t.Error("D002 maintenance due != nil for a dash cell")
	}

	m1 := snap.Mission("PRJ001")
	if m1.Budget != 60000 {
		t.Errorf("PRJ001 budget = %.0f, want 60000", m1.Budget)
	}
	if m1.Priority != fleet.PriorityHigh {
		t.Errorf("PRJ001 priority = %s, want High", m1.Priority)
	}
	if m1.Days() != 5 {
		t.Errorf("PRJ001 days = %d, want 5", m1.Days())
	}
	if got := snap.Mission("PRJ002").Priority; got != fleet.PriorityUrgent {
		t.Errorf("PRJ002 priority = %s, want Urgent", got)
	}
}

func TestLoadSnapshotMissingSheet(t *testing.T) {
	store := NewCSVStore(t.TempDir(), zerolog.Nop())

	if _, err := store.LoadSnapshot(context.Background()); err == nil {
		t.Fatal("LoadSnapshot succeeded with no sheets on disk")
	}
}

func TestUpdatePilotStatus(t *testing.T) {
	dir := writeSheets(t)
	store := NewCSVStore(dir, zerolog.Nop())
	ctx := context.Background()

	old, err := store.UpdatePilotStatus(ctx, "P001", fleet.PilotOnLeave)
	if err != nil {
		t.Fatalf("UpdatePilotStatus failed: %v", err)
	}
	if old != fleet.PilotAvailable {
		t.Errorf("previous status = %s, want Available", old)
	}

	// The rewrite is visible on the next load and touches nothing else.
	snap, err := store.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("LoadSnapshot after update failed: %v", err)
	}
	if got := snap.Pilot("P001").Status; got != fleet.PilotOnLeave {
		t.Errorf("P001 status = %s, want On Leave", got)
	}
	if got := snap.Pilot("P002").Status; got != fleet.PilotAssigned {
		t.Errorf("P002 status = %s, want untouched Assigned", got)
	}
	if snap.Pilot("P001").DailyRate != 5000 {
		t.Error("P001 rate changed by the status rewrite")
	}

	if _, err := store.UpdatePilotStatus(ctx, "P999", fleet.PilotAvailable); err == nil {
		t.Error("UpdatePilotStatus succeeded for an unknown pilot")
	}
	if _, err := store.UpdatePilotStatus(ctx, "P001", fleet.PilotStatus("Retired")); err == nil {
		t.Error("UpdatePilotStatus accepted an invalid status")
	}
}

func TestUpdateDroneStatus(t *testing.T) {
	dir := writeSheets(t)
	store := NewCSVStore(dir, zerolog.Nop())
	ctx := context.Background()

	old, err := store.UpdateDroneStatus(ctx, "D002", fleet.DroneMaintenance)
	if err != nil {
		t.Fatalf("UpdateDroneStatus failed: %v", err)
	}
	if old != fleet.DroneStatus("Deployed") {
		t.Errorf("previous status = %s, want the raw Deployed cell", old)
	}

	snap, err := store.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("LoadSnapshot after update failed: %v", err)
	}
	if got := snap.Drone("D002").Status; got != fleet.DroneMaintenance {
		t.Errorf("D002 status = %s, want Maintenance", got)
	}
}

func TestParseAssignments(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"-", 0},
		{"None", 0},
		{"", 0},
		{"PRJ001", 1},
		{"PRJ001, PRJ002", 2},
		{"PRJ001,,PRJ002,", 2},
	}

	for _, tt := range tests {
		if got := parseAssignments(tt.raw); len(got) != tt.want {
			t.Errorf("parseAssignments(%q) = %v, want %d entries", tt.raw, got, tt.want)
		}
	}
}
