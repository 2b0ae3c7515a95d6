package cache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/firewatch/record"
)

func fire(id string, ts int64, intensity int) record.Fire {
	return record.Fire{ID: id, Timestamp: ts, Intensity: intensity, Status: "Active"}
}

func drone(id string, ts int64, battery int) record.Drone {
	return record.Drone{ID: id, Timestamp: ts, Battery: battery, Status: "Deployed"}
}

func notif(id string, ts int64, sev record.Severity) record.Notification {
	return record.Notification{ID: id, Timestamp: ts, Severity: sev, Title: "t", Message: "m"}
}

func TestStore_MergeFires_DedupesExactKey(t *testing.T) {
	s := NewStore()

	s.MergeFires(fire("fire-1", 1000, 40))
	size := s.MergeFires(fire("fire-1", 1000, 55)) // same id+timestamp, updated payload

	assert.Equal(t, 1, size)
	fires := s.Fires()
	require.Len(t, fires, 1)
	assert.Equal(t, 55, fires[0].Intensity, "incoming copy wins on key collision")
}

func TestStore_MergeFires_HistoryGrows(t *testing.T) {
	s := NewStore()

	s.MergeFires(fire("fire-1", 1000, 40))
	s.MergeFires(fire("fire-1", 2000, 60))
	s.MergeFires(fire("fire-2", 1500, 30))

	fires := s.Fires()
	require.Len(t, fires, 3)
	// Ascending by timestamp.
	assert.Equal(t, int64(1000), fires[0].Timestamp)
	assert.Equal(t, int64(1500), fires[1].Timestamp)
	assert.Equal(t, int64(2000), fires[2].Timestamp)
}

func TestStore_MergeDrones(t *testing.T) {
	s := NewStore()

	size := s.MergeDrones(drone("drone-1", 1000, 90), drone("drone-1", 1000, 85))
	assert.Equal(t, 1, size)

	drones := s.Drones()
	require.Len(t, drones, 1)
	assert.Equal(t, 85, drones[0].Battery)
}

func TestStore_MergeHistory(t *testing.T) {
	s := NewStore()

	s.MergeHistory(record.History{
		Fires:  []record.Fire{fire("fire-1", 1000, 40)},
		Drones: []record.Drone{drone("drone-1", 1100, 90)},
	})

	stats := s.Stats()
	assert.Equal(t, 1, stats.Fires)
	assert.Equal(t, 1, stats.Drones)
}

func TestStore_MergeNotifications_ReplacesByID(t *testing.T) {
	s := NewStore()

	s.MergeNotifications(notif("n1", 1000, record.SeverityLow))
	size := s.MergeNotifications(notif("n1", 2000, record.SeverityHigh))

	assert.Equal(t, 1, size)
	notifications := s.Notifications()
	require.Len(t, notifications, 1)
	assert.Equal(t, record.SeverityHigh, notifications[0].Severity)
	assert.Equal(t, int64(2000), notifications[0].Timestamp)
}

func TestStore_MergeNotifications_PreservesAcknowledgement(t *testing.T) {
	s := NewStore()

	s.MergeNotifications(notif("n1", 1000, record.SeverityHigh))
	require.True(t, s.Acknowledge("n1"))

	// The wire copy arrives again, unacknowledged.
	s.MergeNotifications(notif("n1", 1000, record.SeverityHigh))

	notifications := s.Notifications()
	require.Len(t, notifications, 1)
	assert.True(t, notifications[0].Acknowledged,
		"local acknowledgement survives a wire re-delivery")
}

func TestStore_ReplaceNotification_OverridesAcknowledgement(t *testing.T) {
	s := NewStore()

	s.MergeNotifications(notif("n1", 1000, record.SeverityHigh))
	require.True(t, s.Acknowledge("n1"))

	s.ReplaceNotification(notif("n1", 1500, record.SeverityHigh))

	notifications := s.Notifications()
	require.Len(t, notifications, 1)
	assert.False(t, notifications[0].Acknowledged)
	assert.Equal(t, int64(1500), notifications[0].Timestamp)
}

func TestStore_Acknowledge_UnknownID(t *testing.T) {
	s := NewStore()
	assert.False(t, s.Acknowledge("missing"))
}

func TestStore_AcknowledgeAll(t *testing.T) {
	s := NewStore()

	s.MergeNotifications(
		notif("n1", 1000, record.SeverityLow),
		notif("n2", 2000, record.SeverityHigh),
		notif("n3", 3000, record.SeverityMedium),
	)
	require.True(t, s.Acknowledge("n2"))

	changed := s.AcknowledgeAll()
	assert.Equal(t, 2, changed)
	assert.Equal(t, 0, s.UnacknowledgedCount())
}

func TestStore_ClearAcknowledged(t *testing.T) {
	s := NewStore()

	s.MergeNotifications(
		notif("n1", 1000, record.SeverityLow),
		notif("n2", 2000, record.SeverityHigh),
	)
	require.True(t, s.Acknowledge("n1"))

	removed := s.ClearAcknowledged()
	assert.Equal(t, 1, removed)

	notifications := s.Notifications()
	require.Len(t, notifications, 1)
	assert.Equal(t, "n2", notifications[0].ID)
}

func TestStore_FilterNotifications(t *testing.T) {
	s := NewStore()

	s.MergeNotifications(
		notif("n1", 1000, record.SeverityLow),
		notif("n2", 2000, record.SeverityHigh),
		notif("n3", 3000, record.SeverityHigh),
	)
	require.True(t, s.Acknowledge("n2"))

	high := s.FilterNotifications(NotificationFilter{Severity: record.SeverityHigh})
	require.Len(t, high, 2)
	assert.Equal(t, "n3", high[0].ID, "newest first")

	unread := s.FilterNotifications(NotificationFilter{UnacknowledgedOnly: true})
	require.Len(t, unread, 2)
	for _, n := range unread {
		assert.False(t, n.Acknowledged)
	}

	both := s.FilterNotifications(NotificationFilter{
		Severity:           record.SeverityHigh,
		UnacknowledgedOnly: true,
	})
	require.Len(t, both, 1)
	assert.Equal(t, "n3", both[0].ID)
}

func TestStore_NotificationsByRecency(t *testing.T) {
	s := NewStore()

	s.MergeNotifications(
		notif("n1", 1000, record.SeverityLow),
		notif("n2", 3000, record.SeverityLow),
		notif("n3", 2000, record.SeverityLow),
	)

	recent := s.NotificationsByRecency()
	require.Len(t, recent, 3)
	assert.Equal(t, "n2", recent[0].ID)
	assert.Equal(t, "n3", recent[1].ID)
	assert.Equal(t, "n1", recent[2].ID)
}

func TestStore_LatestTimestamp(t *testing.T) {
	s := NewStore()
	assert.Equal(t, int64(0), s.LatestTimestamp())

	s.MergeFires(fire("fire-1", 5000, 40))
	s.MergeDrones(drone("drone-1", 7000, 90))
	assert.Equal(t, int64(7000), s.LatestTimestamp())

	s.MergeFires(fire("fire-1", 9000, 50))
	assert.Equal(t, int64(9000), s.LatestTimestamp())

	// Notifications do not drive the window.
	s.MergeNotifications(notif("n1", 99000, record.SeverityLow))
	assert.Equal(t, int64(9000), s.LatestTimestamp())
}

func TestStore_ReadersGetCopies(t *testing.T) {
	s := NewStore()
	s.MergeFires(fire("fire-1", 1000, 40))

	fires := s.Fires()
	fires[0].Intensity = 99

	again := s.Fires()
	assert.Equal(t, 40, again[0].Intensity, "caller mutation must not leak into the store")
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(n int64) {
			defer wg.Done()
			s.MergeFires(fire("fire-1", n, int(n%100)))
			s.MergeNotifications(notif("n1", n, record.SeverityLow))
		}(int64(i * 100))
		go func() {
			defer wg.Done()
			_ = s.Fires()
			_ = s.LatestTimestamp()
			_ = s.UnacknowledgedCount()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, s.Stats().Notifications)
}
