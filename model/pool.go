package model

import "strings"

const (
	PoolSubtypeSeasonHigh       = "season_high"
	PoolSubtypeSeasonCumulative = "season_cumulative"
)

type Pool struct {
	PoolID      string `json:"pool_id"`
	Label       string `json:"label"`
	PoolSubtype string `json:"pool_subtype"`
}

// HasLeaderboard is true for the pool subtypes that have a running leaderboard.
func (p Pool) HasLeaderboard() bool {
	return p.PoolSubtype == PoolSubtypeSeasonHigh || p.PoolSubtype == PoolSubtypeSeasonCumulative
}

// LeaderboardEntry holds the union of the fields returned for every pool subtype.
// Season high pools fill in the weekly fields, season cumulative pools fill in the
// totals.
type LeaderboardEntry struct {
	Username           string   `json:"username"`
	Week               int      `json:"week,omitempty"`
	Opponent           string   `json:"opponent,omitempty"`
	PlayerName         string   `json:"player_name,omitempty"`
	Position           Position `json:"position,omitempty"`
	Score              *float64 `json:"score,omitempty"`
	TotalWins          *int     `json:"total_wins,omitempty"`
	TotalLosses        *int     `json:"total_losses,omitempty"`
	TotalPointsFor     *float64 `json:"total_points_for,omitempty"`
	TotalPointsAgainst *float64 `json:"total_points_against,omitempty"`
}

// Leaderboard is one pool and its entries.
type Leaderboard struct {
	Pool    Pool
	Entries []LeaderboardEntry
	Err     error
}

func (l Leaderboard) IsSeasonHigh() bool {
	return strings.EqualFold(l.Pool.PoolSubtype, PoolSubtypeSeasonHigh)
}
