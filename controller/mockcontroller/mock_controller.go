package mockcontroller

import (
	"context"

	"github.com/mww/sidepools/controller"
	"github.com/mww/sidepools/model"
	"github.com/stretchr/testify/mock"
)

type C struct {
	mock.Mock
}

func (c *C) PayoutsView(ctx context.Context, sel model.ViewSelection) (*controller.View, error) {
	args := c.Called(ctx, sel)

	var v *controller.View
	if args.Get(0) != nil {
		v = args.Get(0).(*controller.View)
	}

	return v, args.Error(1)
}

func (c *C) PayoutDetailsView(ctx context.Context, sel model.ViewSelection) (*controller.View, error) {
	args := c.Called(ctx, sel)

	var v *controller.View
	if args.Get(0) != nil {
		v = args.Get(0).(*controller.View)
	}

	return v, args.Error(1)
}

func (c *C) Leaderboards(ctx context.Context) (*controller.LeaderboardsView, error) {
	args := c.Called(ctx)

	var v *controller.LeaderboardsView
	if args.Get(0) != nil {
		v = args.Get(0).(*controller.LeaderboardsView)
	}

	return v, args.Error(1)
}

func (c *C) League(ctx context.Context) (*model.League, error) {
	args := c.Called(ctx)

	var l *model.League
	if args.Get(0) != nil {
		l = args.Get(0).(*model.League)
	}

	return l, args.Error(1)
}
