package sim

import (
	"github.com/google/uuid"

	"github.com/c360/firewatch/record"
)

const day = int64(24 * 60 * 60 * 1000)

// seedHistory builds the demo telemetry dataset with timestamps spread across
// the 24 hours before base.
func seedHistory(base int64) record.History {
	frac := func(f float64) int64 { return base - int64(float64(day)*f) }

	fires := []record.Fire{
		{ID: "F-1", Lat: 34.0899, Lng: -118.4639, Intensity: 60, Status: "Active", Size: 45, Timestamp: base - day},
		{ID: "F-1", Lat: 34.0899, Lng: -118.4639, Intensity: 75, Status: "Active", Size: 60, Timestamp: base - day/2},
		{ID: "F-1", Lat: 34.0899, Lng: -118.4639, Intensity: 85, Status: "Active", Size: 75, Timestamp: base - day/10},
		{ID: "F-2", Lat: 34.0599, Lng: -118.4239, Intensity: 45, Status: "Active", Size: 30, Timestamp: frac(0.8)},
		{ID: "F-2", Lat: 34.0599, Lng: -118.4239, Intensity: 55, Status: "Active", Size: 38, Timestamp: frac(0.4)},
		{ID: "F-2", Lat: 34.0599, Lng: -118.4239, Intensity: 65, Status: "Active", Size: 45, Timestamp: frac(0.1)},
		{ID: "F-3", Lat: 34.0799, Lng: -118.4039, Intensity: 70, Status: "Active", Size: 80, Timestamp: frac(0.7)},
		{ID: "F-3", Lat: 34.0799, Lng: -118.4039, Intensity: 85, Status: "Critical", Size: 100, Timestamp: frac(0.3)},
		{ID: "F-3", Lat: 34.0799, Lng: -118.4039, Intensity: 90, Status: "Critical", Size: 120, Timestamp: frac(0.05)},
		{ID: "F-4", Lat: 34.0499, Lng: -118.4539, Intensity: 65, Status: "Active", Size: 40, Timestamp: frac(0.6)},
		{ID: "F-4", Lat: 34.0499, Lng: -118.4539, Intensity: 50, Status: "Contained", Size: 35, Timestamp: frac(0.2)},
		{ID: "F-4", Lat: 34.0499, Lng: -118.4539, Intensity: 40, Status: "Contained", Size: 30, Timestamp: base},
	}

	drones := []record.Drone{
		{ID: "D-1", Lat: 34.0850, Lng: -118.4550, Battery: 100, Water: 95, Status: "Active", Timestamp: base - day},
		{ID: "D-1", Lat: 34.0870, Lng: -118.4530, Battery: 90, Water: 75, Status: "Active", Timestamp: base - day/2},
		{ID: "D-1", Lat: 34.0850, Lng: -118.4550, Battery: 85, Water: 60, Status: "Active", Timestamp: base - day/10},
		{ID: "D-2", Lat: 34.0650, Lng: -118.4350, Battery: 95, Water: 100, Status: "Active", Timestamp: frac(0.8)},
		{ID: "D-2", Lat: 34.0640, Lng: -118.4360, Battery: 65, Water: 95, Status: "Active", Timestamp: frac(0.4)},
		{ID: "D-2", Lat: 34.0650, Lng: -118.4350, Battery: 45, Water: 90, Status: "Active", Timestamp: frac(0.1)},
		{ID: "D-3", Lat: 34.0750, Lng: -118.4150, Battery: 88, Water: 92, Status: "Active", Timestamp: frac(0.7)},
		{ID: "D-3", Lat: 34.0760, Lng: -118.4140, Battery: 90, Water: 90, Status: "Active", Timestamp: frac(0.3)},
		{ID: "D-3", Lat: 34.0750, Lng: -118.4150, Battery: 92, Water: 88, Status: "Active", Timestamp: frac(0.05)},
		{ID: "D-4", Lat: 34.0550, Lng: -118.4450, Battery: 80, Water: 85, Status: "Active", Timestamp: frac(0.6)},
		{ID: "D-4", Lat: 34.0560, Lng: -118.4440, Battery: 45, Water: 65, Status: "Active", Timestamp: frac(0.3)},
		{ID: "D-4", Lat: 34.0550, Lng: -118.4450, Battery: 25, Water: 55, Status: "Low Battery", Timestamp: frac(0.1)},
		{ID: "D-5", Lat: 34.0700, Lng: -118.4300, Battery: 100, Water: 80, Status: "Active", Timestamp: frac(0.5)},
		{ID: "D-5", Lat: 34.0710, Lng: -118.4290, Battery: 82, Water: 40, Status: "Active", Timestamp: frac(0.25)},
		{ID: "D-5", Lat: 34.0700, Lng: -118.4300, Battery: 68, Water: 15, Status: "Low Water", Timestamp: frac(0.05)},
		{ID: "D-6", Lat: 34.0820, Lng: -118.4420, Battery: 75, Water: 70, Status: "Active", Timestamp: frac(0.4)},
		{ID: "D-6", Lat: 34.0825, Lng: -118.4425, Battery: 35, Water: 30, Status: "Low Battery", Timestamp: frac(0.15)},
		{ID: "D-6", Lat: 34.0820, Lng: -118.4420, Battery: 5, Water: 8, Status: "Critical", Timestamp: frac(0.02)},
	}

	return record.History{Fires: fires, Drones: drones}
}

// seedNotifications builds the initial notification set.
func seedNotifications(base int64) []record.Notification {
	return []record.Notification{
		{
			ID:        uuid.NewString(),
			Timestamp: base - day/4,
			Severity:  record.SeverityHigh,
			Title:     "Fire intensity change in Sector C-2",
			Message:   "Automated notification from monitoring system.",
			Source:    "Fire Detection System",
		},
		{
			ID:        uuid.NewString(),
			Timestamp: base - day/8,
			Severity:  record.SeverityMedium,
			Title:     "Drone D-4 battery at 25%",
			Message:   "Automated notification from monitoring system.",
			Source:    "Drone Management System",
		},
		{
			ID:        uuid.NewString(),
			Timestamp: base - day/20,
			Severity:  record.SeverityInfo,
			Title:     "New deployment to zone North",
			Message:   "Automated notification from monitoring system.",
			Source:    "Drone Management System",
		},
	}
}

// notificationTemplates feed the periodic generator.
var notificationTemplates = []struct {
	title  string
	source string
}{
	{"Drone D-%d battery at %d%%", "Drone Management System"},
	{"Fire intensity change in Sector %s", "Fire Detection System"},
	{"Wind speed alert: %d mph", "Weather Monitoring System"},
	{"New deployment to zone %s", "Drone Management System"},
}

var (
	sectors = []string{"A-3", "B-7", "C-2", "D-5"}
	zones   = []string{"North", "South", "East", "West"}
)

var severityCycle = []record.Severity{
	record.SeverityCritical,
	record.SeverityHigh,
	record.SeverityMedium,
	record.SeverityLow,
	record.SeverityInfo,
}
