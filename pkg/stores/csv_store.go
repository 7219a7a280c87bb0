package stores

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/samy8144/AI-Operations-Coordinator/pkg/fleet"
)

// Sheet file names inside the data directory. They mirror the tabs of the
// operations spreadsheet the data is exported from.
const (
	pilotSheet   = "pilot_roster.csv"
	droneSheet   = "drone_fleet.csv"
	missionSheet = "missions.csv"
)

// CSVStore reads and writes the fleet sheets as CSV files. Reads are
// tolerant: a row that cannot be parsed is excluded and reported as a
// snapshot issue rather than failing the whole load, since one bad row
// must not block conflict detection over the rest of the fleet.
type CSVStore struct {
	dir    string
	logger zerolog.Logger
}

var _ SnapshotStore = (*CSVStore)(nil)

// NewCSVStore creates a store over the given data directory.
func NewCSVStore(dir string, logger zerolog.Logger) *CSVStore {
	return &CSVStore{
		dir:    dir,
		logger: logger.With().Str("component", "csv-store").Logger(),
	}
}

// LoadSnapshot reads all three sheets and builds an indexed snapshot.
// Rows with unparseable cells are carried as snapshot issues.
func (s *CSVStore) LoadSnapshot(ctx context.Context) (*fleet.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pilots, pilotIssues, err := s.readPilots()
	if err != nil {
		return nil, err
	}
	drones, droneIssues, err := s.readDrones()
	if err != nil {
		return nil, err
	}
	missions, missionIssues, err := s.readMissions()
	if err != nil {
		return nil, err
	}

	snap := fleet.NewSnapshot(pilots, drones, missions)

	// Parse failures never reached NewSnapshot; surface them alongside the
	// shape issues it found.
	snap.Issues = append(snap.Issues, pilotIssues...)
	snap.Issues = append(snap.Issues, droneIssues...)
	snap.Issues = append(snap.Issues, missionIssues...)

	s.logger.Debug().
		Int("pilots", len(snap.Pilots)).
		Int("drones", len(snap.Drones)).
		Int("missions", len(snap.Missions)).
		Int("issues", len(snap.Issues)).
		Msg("Snapshot loaded")

	return snap, nil
}

func (s *CSVStore) readPilots() ([]fleet.Pilot, []fleet.RecordIssue, error) {
	rows, err := readSheet(filepath.Join(s.dir, pilotSheet))
	if err != nil {
		return nil, nil, err
	}

	var pilots []fleet.Pilot
	var issues []fleet.RecordIssue
	for _, row := range rows {
		rate, err := parseRate(row.get("daily_rate"))
		if err != nil {
			issues = append(issues, fleet.RecordIssue{
				Kind:    "pilot",
				ID:      row.get("pilot_id"),
				Message: err.Error(),
			})
			continue
		}
		pilots = append(pilots, fleet.Pilot{
			ID:              row.get("pilot_id"),
			Name:            row.get("name"),
			Skills:          fleet.ParseTags(row.get("skills")),
			Certifications:  fleet.ParseTags(row.get("certifications")),
			Location:        row.get("location"),
			Status:          mapPilotStatus(row.get("status")),
			DailyRate:       rate,
			CurrentMissions: parseAssignments(row.get("current_assignment")),
		})
	}
	return pilots, issues, nil
}

func (s *CSVStore) readDrones() ([]fleet.Drone, []fleet.RecordIssue, error) {
	rows, err := readSheet(filepath.Join(s.dir, droneSheet))
	if err != nil {
		return nil, nil, err
	}

	var drones []fleet.Drone
	var issues []fleet.RecordIssue
	for _, row := range rows {
		due, err := parseOptionalDate(row.get("maintenance_due"))
		if err != nil {
			issues = append(issues, fleet.RecordIssue{
				Kind:    "drone",
				ID:      row.get("drone_id"),
				Message: err.Error(),
			})
			continue
		}
		drones = append(drones, fleet.Drone{
			ID:              row.get("drone_id"),
			Model:           row.get("model"),
			Capabilities:    fleet.ParseTags(row.get("capabilities")),
			WeatherRating:   mapWeatherRating(row.get("weather_rating")),
			Location:        row.get("location"),
			Status:          mapDroneStatus(row.get("status")),
			MaintenanceDue:  due,
			CurrentMissions: parseAssignments(row.get("current_assignment")),
		})
	}
	return drones, issues, nil
}

func (s *CSVStore) readMissions() ([]fleet.Mission, []fleet.RecordIssue, error) {
	rows, err := readSheet(filepath.Join(s.dir, missionSheet))
	if err != nil {
		return nil, nil, err
	}

	var missions []fleet.Mission
	var issues []fleet.RecordIssue
	for _, row := range rows {
		id := row.get("project_id")
		start, startErr := fleet.ParseDate(row.get("start_date"))
		end, endErr := fleet.ParseDate(row.get("end_date"))
		budget, budgetErr := parseRate(row.get("budget"))
		if err := firstError(startErr, endErr, budgetErr); err != nil {
			issues = append(issues, fleet.RecordIssue{
				Kind:    "mission",
				ID:      id,
				Message: err.Error(),
			})
			continue
		}
		missions = append(missions, fleet.Mission{
			ID:             id,
			Project:        row.get("project"),
			Client:         row.get("client"),
			Location:       row.get("location"),
			Dates:          fleet.DateRange{Start: start, End: end},
			RequiredSkills: fleet.ParseTags(row.get("required_skills")),
			RequiredCerts:  fleet.ParseTags(row.get("required_certs")),
			Forecast:       fleet.Forecast(strings.TrimSpace(row.get("weather_forecast"))),
			Budget:         budget,
			Priority:       mapPriority(row.get("priority")),
		})
	}
	return missions, issues, nil
}

// UpdatePilotStatus rewrites the pilot's status cell in place.
func (s *CSVStore) UpdatePilotStatus(ctx context.Context, pilotID string, status fleet.PilotStatus) (fleet.PilotStatus, error) {
	if err := status.Validate(); err != nil {
		return "", err
	}
	old, err := s.updateStatusCell(ctx, pilotSheet, "pilot_id", pilotID, string(status))
	return fleet.PilotStatus(old), err
}

// UpdateDroneStatus rewrites the drone's status cell in place.
func (s *CSVStore) UpdateDroneStatus(ctx context.Context, droneID string, status fleet.DroneStatus) (fleet.DroneStatus, error) {
	if err := status.Validate(); err != nil {
		return "", err
	}
	old, err := s.updateStatusCell(ctx, droneSheet, "drone_id", droneID, string(status))
	return fleet.DroneStatus(old), err
}

func (s *CSVStore) updateStatusCell(ctx context.Context, sheet, idColumn, id, status string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, sheet)
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	records, err := csv.NewReader(file).ReadAll()
	closeErr := file.Close()
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	if closeErr != nil {
		return "", closeErr
	}
	if len(records) == 0 {
		return "", fmt.Errorf("%s is empty", path)
	}

	idIdx, statusIdx := -1, -1
	for i, name := range records[0] {
		switch normalizeHeader(name) {
		case idColumn:
			idIdx = i
		case "status":
			statusIdx = i
		}
	}
	if idIdx < 0 || statusIdx < 0 {
		return "", fmt.Errorf("%s is missing the %s or status column", path, idColumn)
	}

	old := ""
	found := false
	for _, record := range records[1:] {
		if len(record) > idIdx && strings.TrimSpace(record[idIdx]) == id {
			old = strings.TrimSpace(record[statusIdx])
			record[statusIdx] = status
			found = true
			break
		}
	}
	if !found {
		return "", fmt.Errorf("%s %s not found in %s", idColumn, id, sheet)
	}

	tmp := path + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", tmp, err)
	}
	writer := csv.NewWriter(out)
	if err := writer.WriteAll(records); err != nil {
		_ = out.Close()
		return "", fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := out.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("failed to replace %s: %w", path, err)
	}

	s.logger.Info().
		Str("sheet", sheet).
		Str("id", id).
		Str("old", old).
		Str("new", status).
		Msg("Status updated")

	return old, nil
}

// sheetRow is one CSV row with header-keyed access.
type sheetRow struct {
	header map[string]int
	cells  []string
}

func (r sheetRow) get(column string) string {
	idx, ok := r.header[column]
	if !ok || idx >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[idx])
}

func readSheet(path string) ([]sheetRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // hand-edited sheets have ragged rows
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		header[normalizeHeader(name)] = i
	}

	rows := make([]sheetRow, 0, len(records)-1)
	for _, cells := range records[1:] {
		rows = append(rows, sheetRow{header: header, cells: cells})
	}
	return rows, nil
}

// normalizeHeader maps sheet column names to canonical keys, tolerating
// the naming drift seen in exported sheets (daily_rate_inr,
// mission_budget_inr, weather_resistance).
func normalizeHeader(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	switch key {
	case "daily_rate_inr":
		return "daily_rate"
	case "mission_budget_inr", "mission_budget":
		return "budget"
	case "weather_resistance":
		return "weather_rating"
	case "required_certifications":
		return "required_certs"
	}
	return key
}

// parseAssignments splits a current_assignment cell. Sheets use "-" or
// "None" for unassigned; a cell may hold several comma-separated mission
// IDs, which is exactly the double-booking anomaly the scanner detects.
func parseAssignments(raw string) []string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "-" || trimmed == "None" {
		return nil
	}
	var ids []string
	for _, part := range strings.Split(trimmed, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func parseRate(raw string) (float64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "-" {
		return 0, nil
	}
	// Strip currency formatting commas.
	trimmed = strings.ReplaceAll(trimmed, ",", "")
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable amount: %q", raw)
	}
	return value, nil
}

func parseOptionalDate(raw string) (*fleet.Date, error) {
	date, err := fleet.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	if date.IsZero() {
		return nil, nil
	}
	return &date, nil
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// mapPilotStatus converts sheet status cells to the domain enum. The
// sheets historically used "Unavailable" for pilots off roster.
func mapPilotStatus(raw string) fleet.PilotStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "available":
		return fleet.PilotAvailable
	case "assigned":
		return fleet.PilotAssigned
	case "on leave", "onleave", "unavailable":
		return fleet.PilotOnLeave
	default:
		return fleet.PilotStatus(strings.TrimSpace(raw))
	}
}

// mapDroneStatus converts sheet status cells to the domain enum. The
// sheets historically used "Deployed" for assigned drones.
func mapDroneStatus(raw string) fleet.DroneStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "available":
		return fleet.DroneAvailable
	case "assigned", "deployed":
		return fleet.DroneAssigned
	case "maintenance":
		return fleet.DroneMaintenance
	default:
		return fleet.DroneStatus(strings.TrimSpace(raw))
	}
}

// mapWeatherRating converts sheet rating cells to the domain enum. Older
// sheets record IP ratings: IP43 flies rain, IP55 and IP67 fly anything,
// "None (Clear Sky Only)" is clear-only.
func mapWeatherRating(raw string) fleet.WeatherRating {
	cell := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(cell, "ip55"), strings.Contains(cell, "ip67"):
		return fleet.RatingAllWeather
	case strings.Contains(cell, "ip43"):
		return fleet.RatingRainCapable
	case strings.Contains(cell, "clear"), strings.Contains(cell, "none"), cell == "":
		return fleet.RatingClearOnly
	}
	switch cell {
	case "clearonly":
		return fleet.RatingClearOnly
	case "raincapable":
		return fleet.RatingRainCapable
	case "allweather":
		return fleet.RatingAllWeather
	default:
		return fleet.WeatherRating(strings.TrimSpace(raw))
	}
}

func mapPriority(raw string) fleet.Priority {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "high":
		return fleet.PriorityHigh
	case "urgent":
		return fleet.PriorityUrgent
	case "standard", "":
		return fleet.PriorityStandard
	default:
		return fleet.Priority(strings.TrimSpace(raw))
	}
}
