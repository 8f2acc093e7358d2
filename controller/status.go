package controller

import "time"

// Phase is where a ViewController is in its initial load.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoadingSeasons
	PhaseLoadingUsers
	PhaseReady
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoadingSeasons:
		return "loading seasons"
	case PhaseLoadingUsers:
		return "loading users"
	case PhaseReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Status describes the last fetch of one section of a screen. A failed fetch
// keeps the previous data, Stale tells the UI that what it shows is old.
type Status struct {
	Loading  bool
	Err      error
	LoadedAt time.Time
}

func (s Status) Failed() bool {
	return s.Err != nil
}

// Stale is true when the last fetch failed but older data is still shown.
func (s Status) Stale() bool {
	return s.Err != nil && !s.LoadedAt.IsZero()
}
