package controller

import "github.com/mww/sidepools/model"

// RecordSource is the endpoint a screen's table is filled from.
type RecordSource int

const (
	// Per user totals from /api/v1/payouts/{season}.
	SourcePayouts RecordSource = iota
	// Individual payouts from /api/v1/payoutdetails.
	SourcePayoutDetails
)

// SeasonSource is the endpoint a screen's season options come from.
type SeasonSource int

const (
	SeasonsFromLeagues SeasonSource = iota
	SeasonsFromPayouts
)

// ScreenConfig describes one payout screen. Every payout screen runs the same
// ViewController, they only differ in configuration.
type ScreenConfig struct {
	Name             string
	Title            string
	Records          RecordSource
	Seasons          SeasonSource
	PageSize         int
	DefaultSort      model.SortField
	DefaultDirection model.SortDirection
	// URLSync screens keep the selection in the query string so that the view can
	// be bookmarked and restored on reload.
	URLSync bool
	Chart   bool
	// SortFields are the columns the screen allows sorting on.
	SortFields []model.SortField
}

var PayoutsScreen = ScreenConfig{
	Name:             "payouts",
	Title:            "Payouts",
	Records:          SourcePayouts,
	Seasons:          SeasonsFromPayouts,
	PageSize:         12,
	DefaultSort:      model.SortByAmount,
	DefaultDirection: model.SortDesc,
	SortFields:       []model.SortField{model.SortByUsername, model.SortByAmount},
}

var PayoutDetailsScreen = ScreenConfig{
	Name:             "payoutdetails",
	Title:            "Payout Details",
	Records:          SourcePayoutDetails,
	Seasons:          SeasonsFromLeagues,
	PageSize:         10,
	DefaultSort:      model.SortByAmount,
	DefaultDirection: model.SortDesc,
	URLSync:          true,
	Chart:            true,
	SortFields: []model.SortField{
		model.SortByUsername,
		model.SortByPool,
		model.SortBySeason,
		model.SortByWeek,
		model.SortByAmount,
	},
}

// DefaultSelection is the selection a screen starts with when nothing is restored.
func (s ScreenConfig) DefaultSelection() model.ViewSelection {
	return model.ViewSelection{
		SortField:     s.DefaultSort,
		SortDirection: s.DefaultDirection,
		Page:          1,
	}
}

// CanSort reports whether the screen has a sortable column for f.
func (s ScreenConfig) CanSort(f model.SortField) bool {
	for _, sf := range s.SortFields {
		if sf == f {
			return true
		}
	}
	return false
}
