package view

import (
	"net/url"

	"github.com/mww/sidepools/model"
)

// DetailsQuery builds the payout details query for a selection. Empty values mean
// "all" and are left out, giving one of four request shapes.
func DetailsQuery(season model.Season, username string) url.Values {
	q := url.Values{}
	if season != model.SeasonAllTime {
		q.Set("season", string(season))
	}
	if username != "" {
		q.Set("username", username)
	}
	return q
}
