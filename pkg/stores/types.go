package stores

import (
	"context"
	"time"

	"github.com/samy8144/AI-Operations-Coordinator/pkg/fleet"
)

// SnapshotStore loads fleet snapshots and applies status updates back to
// the backing sheets.
type SnapshotStore interface {
	// LoadSnapshot reads all three sheets and builds an indexed snapshot.
	LoadSnapshot(ctx context.Context) (*fleet.Snapshot, error)

	// UpdatePilotStatus rewrites the pilot's status cell. Returns the
	// previous status.
	UpdatePilotStatus(ctx context.Context, pilotID string, status fleet.PilotStatus) (fleet.PilotStatus, error)

	// UpdateDroneStatus rewrites the drone's status cell. Returns the
	// previous status.
	UpdateDroneStatus(ctx context.Context, droneID string, status fleet.DroneStatus) (fleet.DroneStatus, error)
}

// ScanRecord summarizes one audited conflict scan.
type ScanRecord struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generated_at"`
	Conflicts   int       `json:"conflicts"`
	High        int       `json:"high"`
	Medium      int       `json:"medium"`
	Low         int       `json:"low"`
	Advisories  int       `json:"advisories"`
	CreatedAt   time.Time `json:"created_at"`
}

// StatusEvent is one audited status change.
type StatusEvent struct {
	ID           int64     `json:"id"`
	ResourceKind string    `json:"resource_kind"`
	ResourceID   string    `json:"resource_id"`
	OldStatus    string    `json:"old_status"`
	NewStatus    string    `json:"new_status"`
	Note         string    `json:"note,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
