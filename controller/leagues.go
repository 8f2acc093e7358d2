package controller

import (
	"context"
	"fmt"

	"github.com/mww/sidepools/model"
)

func (c *controller) League(ctx context.Context) (*model.League, error) {
	l, err := c.sleeper.GetLeague(ctx, c.leagueID)
	if err != nil {
		return nil, fmt.Errorf("error looking up league %s: %w", c.leagueID, err)
	}
	return l, nil
}
