package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/firewatch/record"
)

func history() []record.Fire {
	return []record.Fire{
		{ID: "fire-1", Timestamp: 100, Intensity: 40, Status: "Active"},
		{ID: "fire-1", Timestamp: 200, Intensity: 60, Status: "Active"},
		{ID: "fire-2", Timestamp: 150, Intensity: 30, Status: "Active"},
		{ID: "fire-1", Timestamp: 300, Intensity: 85, Status: "Critical"},
	}
}

func TestAt_PicksLatestPerEntity(t *testing.T) {
	fires := At(history(), 250)

	require.Len(t, fires, 2)
	assert.Equal(t, "fire-1", fires[0].ID)
	assert.Equal(t, int64(200), fires[0].Timestamp)
	assert.Equal(t, "fire-2", fires[1].ID)
	assert.Equal(t, int64(150), fires[1].Timestamp)
}

func TestAt_EntityAbsentBeforeFirstObservation(t *testing.T) {
	fires := At(history(), 120)

	require.Len(t, fires, 1)
	assert.Equal(t, "fire-1", fires[0].ID)
	assert.Equal(t, int64(100), fires[0].Timestamp)
}

func TestAt_ExactTimestampIncluded(t *testing.T) {
	fires := At(history(), 150)

	require.Len(t, fires, 2)
	assert.Equal(t, int64(100), fires[0].Timestamp)
	assert.Equal(t, int64(150), fires[1].Timestamp)
}

func TestAt_NeverReturnsFutureObservations(t *testing.T) {
	fires := At(history(), 300)
	require.Len(t, fires, 2)
	for _, f := range fires {
		assert.LessOrEqual(t, f.Timestamp, int64(300))
	}
	assert.Equal(t, 85, fires[0].Intensity, "latest observation at the target wins")
}

func TestAt_BeforeEverything(t *testing.T) {
	assert.Empty(t, At(history(), 50))
}

func TestAt_Empty(t *testing.T) {
	assert.Empty(t, At([]record.Fire{}, 100))
}

func TestAt_UnorderedInput(t *testing.T) {
	// Same history, shuffled: At must not depend on input order.
	shuffled := []record.Fire{
		{ID: "fire-1", Timestamp: 300, Intensity: 85, Status: "Critical"},
		{ID: "fire-2", Timestamp: 150, Intensity: 30, Status: "Active"},
		{ID: "fire-1", Timestamp: 100, Intensity: 40, Status: "Active"},
		{ID: "fire-1", Timestamp: 200, Intensity: 60, Status: "Active"},
	}

	fires := At(shuffled, 250)
	require.Len(t, fires, 2)
	assert.Equal(t, int64(200), fires[0].Timestamp)
}

func TestWorldAt(t *testing.T) {
	drones := []record.Drone{
		{ID: "drone-1", Timestamp: 100, Battery: 90, Status: "Deployed"},
		{ID: "drone-1", Timestamp: 400, Battery: 70, Status: "Deployed"},
	}

	w := WorldAt(history(), drones, 250)
	assert.Equal(t, int64(250), w.Target)
	assert.Len(t, w.Fires, 2)
	require.Len(t, w.Drones, 1)
	assert.Equal(t, 90, w.Drones[0].Battery)
}

func TestSummarize(t *testing.T) {
	fires := []record.Fire{
		{ID: "fire-1", Status: "Active"},
		{ID: "fire-2", Status: "Critical"},
		{ID: "fire-3", Status: "Contained"},
		{ID: "fire-4", Status: "Extinguished"},
	}
	drones := []record.Drone{
		{ID: "drone-1", Battery: 80, Water: 60, Status: "Deployed"},
		{ID: "drone-2", Battery: 50, Water: 30, Status: "Offline"},
		{ID: "drone-3", Battery: 95, Water: 100, Status: "Standby"},
	}

	s := Summarize(fires, drones)
	assert.Equal(t, 2, s.ActiveFires)
	assert.Equal(t, 2, s.DronesOnline)
	assert.Equal(t, 75, s.AvgBattery) // (80+50+95)/3 = 75
	assert.Equal(t, 63, s.AvgWater)   // (60+30+100)/3 = 63.3 rounds down
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, nil)
	assert.Zero(t, s.ActiveFires)
	assert.Zero(t, s.DronesOnline)
	assert.Zero(t, s.AvgBattery)
	assert.Zero(t, s.AvgWater)
}
