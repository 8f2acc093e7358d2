package mocksleeper

import (
	"context"

	"github.com/mww/sidepools/model"
	"github.com/stretchr/testify/mock"
)

type Client struct {
	mock.Mock
}

func (c *Client) GetLeague(ctx context.Context, leagueID string) (*model.League, error) {
	args := c.Called(ctx, leagueID)

	var l *model.League
	if args.Get(0) != nil {
		l = args.Get(0).(*model.League)
	}

	return l, args.Error(1)
}
