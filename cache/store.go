package cache

import (
	"sort"
	"sync"

	"github.com/c360/firewatch/normalize"
	"github.com/c360/firewatch/record"
)

// Store is the reconciled in-memory state: full telemetry histories plus the
// current notification set. All methods are safe for concurrent use.
type Store struct {
	mu            sync.RWMutex
	fires         []record.Fire
	drones        []record.Drone
	notifications []record.Notification
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Sizes reports the current collection sizes (fires, drones, notifications).
type Sizes struct {
	Fires         int
	Drones        int
	Notifications int
}

// MergeFires merges a batch of fire observations into the history. Exact
// (id, timestamp) duplicates collapse; the incoming copy wins. Returns the
// history size after the merge.
func (s *Store) MergeFires(incoming ...record.Fire) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	combined := make([]record.Fire, 0, len(s.fires)+len(incoming))
	combined = append(combined, s.fires...)
	combined = append(combined, incoming...)
	s.fires = normalize.Records(combined)
	return len(s.fires)
}

// MergeDrones merges a batch of drone observations into the history. Exact
// (id, timestamp) duplicates collapse; the incoming copy wins. Returns the
// history size after the merge.
func (s *Store) MergeDrones(incoming ...record.Drone) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	combined := make([]record.Drone, 0, len(s.drones)+len(incoming))
	combined = append(combined, s.drones...)
	combined = append(combined, incoming...)
	s.drones = normalize.Records(combined)
	return len(s.drones)
}

// MergeHistory merges a bulk fetch result into both telemetry histories.
func (s *Store) MergeHistory(h record.History) {
	s.MergeFires(h.Fires...)
	s.MergeDrones(h.Drones...)
}

// MergeNotifications merges a batch of notifications by id. An incoming copy
// replaces the stored one, except that a locally acknowledged notification
// stays acknowledged even when the wire copy is unacknowledged. Returns the
// collection size after the merge.
func (s *Store) MergeNotifications(incoming ...record.Notification) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	acked := make(map[string]bool, len(s.notifications))
	for _, n := range s.notifications {
		if n.Acknowledged {
			acked[n.ID] = true
		}
	}

	combined := make([]record.Notification, 0, len(s.notifications)+len(incoming))
	combined = append(combined, s.notifications...)
	combined = append(combined, incoming...)
	merged := normalize.Notifications(combined)

	for i := range merged {
		if acked[merged[i].ID] {
			merged[i].Acknowledged = true
		}
	}
	s.notifications = merged
	return len(s.notifications)
}

// ReplaceNotification stores a notification wholesale, overriding any local
// acknowledgement state. Used for authoritative server-side updates.
func (s *Store) ReplaceNotification(n record.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notifications {
		if s.notifications[i].ID == n.ID {
			s.notifications[i] = n
			return
		}
	}
	s.notifications = normalize.Notifications(append(s.notifications, n))
}

// Acknowledge marks one notification as acknowledged. Reports whether the id
// was found.
func (s *Store) Acknowledge(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].Acknowledged = true
			return true
		}
	}
	return false
}

// AcknowledgeAll marks every notification as acknowledged and returns the
// number that changed state.
func (s *Store) AcknowledgeAll() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := 0
	for i := range s.notifications {
		if !s.notifications[i].Acknowledged {
			s.notifications[i].Acknowledged = true
			changed++
		}
	}
	return changed
}

// ClearAcknowledged removes every acknowledged notification and returns the
// number removed.
func (s *Store) ClearAcknowledged() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.notifications[:0]
	removed := 0
	for _, n := range s.notifications {
		if n.Acknowledged {
			removed++
			continue
		}
		kept = append(kept, n)
	}
	s.notifications = kept
	return removed
}

// UnacknowledgedCount returns the number of notifications awaiting
// acknowledgement.
func (s *Store) UnacknowledgedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, n := range s.notifications {
		if !n.Acknowledged {
			count++
		}
	}
	return count
}

// NotificationFilter narrows FilterNotifications results. Zero values mean
// "no constraint".
type NotificationFilter struct {
	Severity           record.Severity
	UnacknowledgedOnly bool
}

// FilterNotifications returns notifications matching the filter, newest
// first.
func (s *Store) FilterNotifications(f NotificationFilter) []record.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]record.Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if f.Severity != "" && n.Severity != f.Severity {
			continue
		}
		if f.UnacknowledgedOnly && n.Acknowledged {
			continue
		}
		out = append(out, n)
	}
	sortNotificationsDesc(out)
	return out
}

// Fires returns a copy of the fire history, ascending by timestamp.
func (s *Store) Fires() []record.Fire {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]record.Fire, len(s.fires))
	copy(out, s.fires)
	return out
}

// Drones returns a copy of the drone history, ascending by timestamp.
func (s *Store) Drones() []record.Drone {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]record.Drone, len(s.drones))
	copy(out, s.drones)
	return out
}

// Notifications returns a copy of the notification set, ascending by
// timestamp.
func (s *Store) Notifications() []record.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]record.Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

// NotificationsByRecency returns a copy of the notification set, newest
// first.
func (s *Store) NotificationsByRecency() []record.Notification {
	out := s.Notifications()
	sortNotificationsDesc(out)
	return out
}

// LatestTimestamp returns the greatest observation timestamp across both
// telemetry histories, or 0 when empty. Notifications do not drive the
// window, so they are not consulted.
func (s *Store) LatestTimestamp() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Histories are kept sorted ascending, so the last element is newest.
	var latest int64
	if n := len(s.fires); n > 0 && s.fires[n-1].Timestamp > latest {
		latest = s.fires[n-1].Timestamp
	}
	if n := len(s.drones); n > 0 && s.drones[n-1].Timestamp > latest {
		latest = s.drones[n-1].Timestamp
	}
	return latest
}

// Stats reports the current collection sizes.
func (s *Store) Stats() Sizes {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Sizes{
		Fires:         len(s.fires),
		Drones:        len(s.drones),
		Notifications: len(s.notifications),
	}
}

func sortNotificationsDesc(items []record.Notification) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Timestamp != items[j].Timestamp {
			return items[i].Timestamp > items[j].Timestamp
		}
		return items[i].ID < items[j].ID
	})
}
