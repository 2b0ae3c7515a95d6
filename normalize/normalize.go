package normalize

import (
	"sort"

	"github.com/c360/firewatch/record"
)

// Records dedupes a telemetry batch by (id, timestamp) and sorts it ascending
// by timestamp. On exact key collisions the last occurrence wins. Ties on
// timestamp are broken by entity id so the output order is deterministic.
func Records[T record.Telemetry](items []T) []T {
	keyed := make(map[string]T, len(items))
	for _, item := range items {
		keyed[item.Key()] = item
	}

	out := make([]T, 0, len(keyed))
	for _, item := range keyed {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].At() != out[j].At() {
			return out[i].At() < out[j].At()
		}
		return out[i].EntityID() < out[j].EntityID()
	})
	return out
}

// Notifications dedupes a notification batch by id (last write wins) and
// sorts it ascending by timestamp for storage. Display order is the caller's
// concern.
func Notifications(items []record.Notification) []record.Notification {
	keyed := make(map[string]record.Notification, len(items))
	for _, item := range items {
		keyed[item.ID] = item
	}

	out := make([]record.Notification, 0, len(keyed))
	for _, item := range keyed {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp != out[j].Timestamp {
			return out[i].Timestamp < out[j].Timestamp
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// History normalizes both telemetry collections of a bulk fetch result.
func History(h record.History) record.History {
	return record.History{
		Fires:  Records(h.Fires),
		Drones: Records(h.Drones),
	}
}
