package service

import (
	"sync"
	"time"
)

// StatusBoard holds the last published session status for readers outside
// the UI loop, such as the HTTP status endpoint.
type StatusBoard struct {
	mu     sync.RWMutex
	status map[string]interface{}
}

// NewStatusBoard creates an empty board.
func NewStatusBoard() *StatusBoard {
	return &StatusBoard{status: map[string]interface{}{"state": "starting"}}
}

// Publish records the current state of s. It must be called from the UI loop.
func (b *StatusBoard) Publish(s *Session) {
	if b == nil || s == nil {
		return
	}
	snap := s.Controller.Snapshot()
	counts := s.Dataset.Summary.Counts()

	status := map[string]interface{}{
		"session_id":         s.ID,
		"scrobbles_path":     s.Dataset.Source.Scrobbles,
		"year":               s.Dataset.Source.Year,
		"started":            s.Started.UTC().Format(time.RFC3339),
		"uptime_seconds":     time.Since(s.Started).Seconds(),
		"events":             counts.Scrobbles,
		"artists":            counts.Artists,
		"per_day":            counts.PerDay,
		"state":              snap.State.String(),
		"selected_index":     snap.SelectedIndex,
		"highlighted_pixels": snap.HighlightedPixels,
		"points":             snap.Points,
		"window_first":       snap.Window.First,
		"window_last":        snap.Window.Last,
		"window_from":        time.UnixMilli(snap.Window.From).UTC().Format(time.RFC3339),
		"window_to":          time.UnixMilli(snap.Window.To).UTC().Format(time.RFC3339),
	}
	if snap.SelectedGenre != "" {
		status["selected_genre"] = snap.SelectedGenre
	}
	if e, ok := s.Controller.Selected(); ok {
		status["selected_artist"] = e.Artist.Name
		status["selected_track"] = e.Track.Name
	}

	b.mu.Lock()
	b.status = status
	b.mu.Unlock()
}

// GetStatus returns a copy of the last published status.
func (b *StatusBoard) GetStatus() map[string]interface{} {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make(map[string]interface{}, len(b.status))
	for k, v := range b.status {
		out[k] = v
	}
	return out
}
