package order

import "time"

// DefaultHistoryCap bounds the retained status history per order.
const DefaultHistoryCap = 200

// HistoryEntry is one recorded lifecycle event. A DroppedCount above zero
// marks a truncation entry summarizing how many older events were discarded
// to stay within the history cap.
type HistoryEntry struct {
	Status       Status    `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
	Actor        string    `json:"actor,omitempty"`
	Note         string    `json:"note,omitempty"`
	DroppedCount int       `json:"droppedCount,omitempty"`
}

// IsTruncationMarker reports whether the entry summarizes dropped events
// rather than an actual transition.
func (e HistoryEntry) IsTruncationMarker() bool {
	return e.DroppedCount > 0
}

// appendCapped appends entry to history, keeping the total length within
// limit by discarding the oldest real events. The first slot always holds a
// truncation marker once anything has been dropped, so the tail of the
// history stays the newest events and the total drop count stays visible.
func appendCapped(history []HistoryEntry, entry HistoryEntry, limit int) []HistoryEntry {
	history = append(history, entry)
	if limit <= 0 || len(history) <= limit {
		return history
	}

	dropped := 0
	if history[0].IsTruncationMarker() {
		dropped = history[0].DroppedCount
		history = history[1:]
	}

	// Drop oldest real events until the marker plus remainder fits.
	over := len(history) - (limit - 1)
	dropped += over
	history = history[over:]

	marker := HistoryEntry{
		Timestamp:    entry.Timestamp,
		DroppedCount: dropped,
	}
	return append([]HistoryEntry{marker}, history...)
}
