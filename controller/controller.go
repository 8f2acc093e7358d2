package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/itbasis/go-clock"
	"github.com/mww/sidepools/api"
	"github.com/mww/sidepools/model"
	"github.com/mww/sidepools/sleeper"
)

var ErrInvalidSelection = errors.New("invalid selection")

// C encapsulates the dashboard logic without worrying about any web layers
type C interface {
	// Build the seasonal payouts screen for a selection. Fetch failures don't
	// return an error, they are reported in the View's status fields.
	PayoutsView(ctx context.Context, sel model.ViewSelection) (*View, error)
	PayoutDetailsView(ctx context.Context, sel model.ViewSelection) (*View, error)
	Leaderboards(ctx context.Context) (*LeaderboardsView, error)
	// Look up the league name and season from the league's platform.
	League(ctx context.Context) (*model.League, error)
}

type controller struct {
	clock    clock.Clock
	api      api.Client
	sleeper  sleeper.Client
	leagueID string
}

func New(clock clock.Clock, api api.Client, sleeper sleeper.Client, leagueID string) (C, error) {
	if leagueID == "" {
		return nil, errors.New("a league id must be provided")
	}
	c := &controller{
		clock:    clock,
		api:      api,
		sleeper:  sleeper,
		leagueID: leagueID,
	}
	return c, nil
}

func (c *controller) PayoutsView(ctx context.Context, sel model.ViewSelection) (*View, error) {
	return c.screenView(ctx, PayoutsScreen, sel)
}

func (c *controller) PayoutDetailsView(ctx context.Context, sel model.ViewSelection) (*View, error) {
	return c.screenView(ctx, PayoutDetailsScreen, sel)
}

func (c *controller) screenView(ctx context.Context, screen ScreenConfig, sel model.ViewSelection) (*View, error) {
	if err := sel.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSelection, err)
	}
	if !screen.CanSort(sel.SortField) {
		return nil, fmt.Errorf("%w: %s can't be sorted by %s", ErrInvalidSelection, screen.Title, sel.SortField)
	}

	vc := NewViewController(screen, c.api, c.clock)
	vc.Restore(sel)
	// Errors are already logged and recorded in the view's status.
	_ = vc.Load(ctx)
	return vc.Snapshot(), nil
}
