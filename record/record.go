package record

import "fmt"

// Kind discriminates the telemetry entity variants. The set is closed.
type Kind string

const (
	// KindFire marks a fire observation.
	KindFire Kind = "fire"
	// KindDrone marks a drone observation.
	KindDrone Kind = "drone"
)

// Valid reports whether k is a known telemetry kind.
func (k Kind) Valid() bool {
	return k == KindFire || k == KindDrone
}

// Telemetry is implemented by all timestamped entity observations. It exposes
// the identity fields the normalizer and snapshot reconstructor operate on.
type Telemetry interface {
	// EntityID returns the stable entity identifier.
	EntityID() string
	// At returns the observation time in Unix milliseconds.
	At() int64
	// Key returns the (id, timestamp) dedupe identity.
	Key() string
}

// Fire is one timestamped fire observation.
type Fire struct {
	ID        string  `json:"id"`
	Timestamp int64   `json:"timestamp"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Intensity int     `json:"intensity"`
	Status    string  `json:"status"`
	Size      int     `json:"size"`
}

// EntityID implements Telemetry.
func (f Fire) EntityID() string { return f.ID }

// At implements Telemetry.
func (f Fire) At() int64 { return f.Timestamp }

// Key implements Telemetry.
func (f Fire) Key() string { return fmt.Sprintf("%s|%d", f.ID, f.Timestamp) }

// Drone is one timestamped drone observation.
type Drone struct {
	ID        string  `json:"id"`
	Timestamp int64   `json:"timestamp"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Battery   int     `json:"battery"`
	Water     int     `json:"water"`
	Status    string  `json:"status"`
}

// EntityID implements Telemetry.
func (d Drone) EntityID() string { return d.ID }

// At implements Telemetry.
func (d Drone) At() int64 { return d.Timestamp }

// Key implements Telemetry.
func (d Drone) Key() string { return fmt.Sprintf("%s|%d", d.ID, d.Timestamp) }

// History pairs the two telemetry collections as served by the remote
// service's bulk endpoints.
type History struct {
	Fires  []Fire  `json:"fires"`
	Drones []Drone `json:"drones"`
}

// Compile-time interface checks.
var (
	_ Telemetry = Fire{}
	_ Telemetry = Drone{}
)
