package model

var PlatformSleeper = "sleeper"

// League is the display metadata for a league, as reported by the platform.
type League struct {
	ID       string
	Platform string
	Name     string
	Season   Season
	Status   string
}
