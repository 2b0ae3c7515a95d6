package snapshot

import (
	"math"
	"sort"

	"github.com/c360/firewatch/record"
)

// At reconstructs the state of the world at target: for each entity the
// latest observation with timestamp <= target. Entities with no observation
// at or before target are absent. Output is ordered by entity id for
// determinism. Single pass over the history.
func At[T record.Telemetry](history []T, target int64) []T {
	latest := make(map[string]T, len(history))
	for _, obs := range history {
		if obs.At() > target {
			continue
		}
		if prev, ok := latest[obs.EntityID()]; !ok || obs.At() >= prev.At() {
			latest[obs.EntityID()] = obs
		}
	}

	out := make([]T, 0, len(latest))
	for _, obs := range latest {
		out = append(out, obs)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].EntityID() < out[j].EntityID()
	})
	return out
}

// World is both telemetry snapshots at a single instant.
type World struct {
	Target int64          `json:"target"`
	Fires  []record.Fire  `json:"fires"`
	Drones []record.Drone `json:"drones"`
}

// WorldAt reconstructs both telemetry collections at target.
func WorldAt(fires []record.Fire, drones []record.Drone, target int64) World {
	return World{
		Target: target,
		Fires:  At(fires, target),
		Drones: At(drones, target),
	}
}

// Summary is the dashboard quick-stats view of a snapshot.
type Summary struct {
	ActiveFires  int `json:"activeFires"`
	DronesOnline int `json:"dronesOnline"`
	AvgBattery   int `json:"avgBattery"`
	AvgWater     int `json:"avgWater"`
}

// Summarize condenses a snapshot. A fire counts as active unless contained or
// extinguished; a drone counts as online unless offline. Averages cover all
// drones in the snapshot, rounded to the nearest integer.
func Summarize(fires []record.Fire, drones []record.Drone) Summary {
	var s Summary

	for _, f := range fires {
		switch f.Status {
		case "Contained", "Extinguished":
		default:
			s.ActiveFires++
		}
	}

	if len(drones) == 0 {
		return s
	}

	var battery, water int
	for _, d := range drones {
		if d.Status != "Offline" {
			s.DronesOnline++
		}
		battery += d.Battery
		water += d.Water
	}
	s.AvgBattery = int(math.Round(float64(battery) / float64(len(drones))))
	s.AvgWater = int(math.Round(float64(water) / float64(len(drones))))
	return s
}
