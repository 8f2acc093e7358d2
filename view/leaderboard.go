package view

import (
	"fmt"

	"github.com/mww/sidepools/model"
)

// LeaderboardLine is one formatted row of a leaderboard card. Empty fields are
// not shown.
type LeaderboardLine struct {
	User          string `json:"user"`
	Player        string `json:"player"`
	Position      string `json:"position"`
	Opponent      string `json:"opponent"`
	Week          string `json:"week"`
	Score         string `json:"score"`
	Record        string `json:"record"`
	Points        string `json:"points"`
	PointsAgainst string `json:"points_against"`
	NetPoints     string `json:"net_points"`
}

// LeaderboardColumns records which columns have a value in at least one line.
type LeaderboardColumns struct {
	User          bool `json:"user"`
	Player        bool `json:"player"`
	Position      bool `json:"position"`
	Opponent      bool `json:"opponent"`
	Week          bool `json:"week"`
	Score         bool `json:"score"`
	Record        bool `json:"record"`
	Points        bool `json:"points"`
	PointsAgainst bool `json:"points_against"`
	NetPoints     bool `json:"net_points"`
}

// LeaderboardCard is a titled card with its lines.
type LeaderboardCard struct {
	Title   string             `json:"title"`
	Columns LeaderboardColumns `json:"columns"`
	Lines   []LeaderboardLine  `json:"lines"`
	Failed  bool               `json:"failed"`
}

func LeaderboardLines(entries []model.LeaderboardEntry) []LeaderboardLine {
	lines := make([]LeaderboardLine, 0, len(entries))
	for _, e := range entries {
		l := LeaderboardLine{
			User:     e.Username,
			Player:   e.PlayerName,
			Position: string(e.Position),
			Opponent: e.Opponent,
		}
		if e.Week != 0 {
			l.Week = fmt.Sprint(e.Week)
		}
		if e.Score != nil && *e.Score != 0 {
			l.Score = FormatNumber(*e.Score, 2)
		}
		if e.TotalWins != nil && *e.TotalWins != 0 {
			losses := 0
			if e.TotalLosses != nil {
				losses = *e.TotalLosses
			}
			l.Record = fmt.Sprintf("%d-%d", *e.TotalWins, losses)
		}
		if e.TotalPointsFor != nil && *e.TotalPointsFor != 0 {
			l.Points = FormatNumber(*e.TotalPointsFor, 2)
		}
		if e.TotalPointsAgainst != nil && *e.TotalPointsAgainst != 0 {
			l.PointsAgainst = FormatNumber(*e.TotalPointsAgainst, 2)
		}
		if l.Points != "" && l.PointsAgainst != "" {
			l.NetPoints = FormatNumber(*e.TotalPointsFor-*e.TotalPointsAgainst, 2)
		}
		lines = append(lines, l)
	}
	return lines
}

func ColumnsFor(lines []LeaderboardLine) LeaderboardColumns {
	var c LeaderboardColumns
	for _, l := range lines {
		c.User = c.User || l.User != ""
		c.Player = c.Player || l.Player != ""
		c.Position = c.Position || l.Position != ""
		c.Opponent = c.Opponent || l.Opponent != ""
		c.Week = c.Week || l.Week != ""
		c.Score = c.Score || l.Score != ""
		c.Record = c.Record || l.Record != ""
		c.Points = c.Points || l.Points != ""
		c.PointsAgainst = c.PointsAgainst || l.PointsAgainst != ""
		c.NetPoints = c.NetPoints || l.NetPoints != ""
	}
	return c
}

// NewLeaderboardCard builds the card for a pool's leaderboard.
func NewLeaderboardCard(lb model.Leaderboard) LeaderboardCard {
	lines := LeaderboardLines(lb.Entries)
	return LeaderboardCard{
		Title:   lb.Pool.Label,
		Columns: ColumnsFor(lines),
		Lines:   lines,
		Failed:  lb.Err != nil,
	}
}
