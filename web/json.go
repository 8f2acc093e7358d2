package web

import (
	"time"

	"github.com/mww/sidepools/controller"
	"github.com/mww/sidepools/model"
	"github.com/mww/sidepools/view"
)

type errorJSON struct {
	Error string `json:"error"`
}

type statusJSON struct {
	Loading  bool       `json:"loading"`
	Error    string     `json:"error,omitempty"`
	Stale    bool       `json:"stale"`
	LoadedAt *time.Time `json:"loaded_at,omitempty"`
}

func newStatusJSON(s controller.Status) statusJSON {
	j := statusJSON{Loading: s.Loading, Stale: s.Stale()}
	if s.Err != nil {
		j.Error = s.Err.Error()
	}
	if !s.LoadedAt.IsZero() {
		t := s.LoadedAt
		j.LoadedAt = &t
	}
	return j
}

type seasonJSON struct {
	Value model.Season `json:"value"`
	Label string       `json:"label"`
}

type screenJSON struct {
	Screen       string                `json:"screen"`
	Title        string                `json:"title"`
	Selection    model.ViewSelection   `json:"selection"`
	Seasons      []seasonJSON          `json:"seasons"`
	Users        []model.UserSummary   `json:"users"`
	Details      []model.PayoutRecord  `json:"details,omitempty"`
	Payouts      []model.UserPayout    `json:"payouts,omitempty"`
	TotalResults int                   `json:"total_results"`
	PageCount    int                   `json:"page_count"`
	Chart        *view.Chart           `json:"chart,omitempty"`
	Status       map[string]statusJSON `json:"status"`
}

func newScreenJSON(v *controller.View) screenJSON {
	j := screenJSON{
		Screen:       v.Screen.Name,
		Title:        v.Screen.Title,
		Selection:    v.Selection,
		Seasons:      []seasonJSON{{Value: model.SeasonAllTime, Label: model.SeasonAllTime.Label()}},
		Users:        v.Users,
		Details:      v.Details,
		Payouts:      v.Payouts,
		TotalResults: v.TotalResults,
		PageCount:    v.PageCount,
		Status: map[string]statusJSON{
			"seasons": newStatusJSON(v.SeasonsStatus),
			"users":   newStatusJSON(v.UsersStatus),
			"records": newStatusJSON(v.RecordsStatus),
		},
	}
	for _, s := range v.Seasons {
		j.Seasons = append(j.Seasons, seasonJSON{Value: s, Label: s.Label()})
	}
	if j.Users == nil {
		j.Users = []model.UserSummary{}
	}
	if v.Screen.Chart {
		chart := v.Chart
		j.Chart = &chart
		j.Status["chart"] = newStatusJSON(v.ChartStatus)
	}
	return j
}

type leaderboardsJSON struct {
	SeasonHighs       []view.LeaderboardCard `json:"season_highs"`
	SeasonCumulatives []view.LeaderboardCard `json:"season_cumulatives"`
	Status            statusJSON             `json:"status"`
}

func newLeaderboardsJSON(v *controller.LeaderboardsView) leaderboardsJSON {
	j := leaderboardsJSON{
		SeasonHighs:       v.SeasonHighs,
		SeasonCumulatives: v.SeasonCumulatives,
		Status:            newStatusJSON(v.PoolsStatus),
	}
	if j.SeasonHighs == nil {
		j.SeasonHighs = []view.LeaderboardCard{}
	}
	if j.SeasonCumulatives == nil {
		j.SeasonCumulatives = []view.LeaderboardCard{}
	}
	return j
}
