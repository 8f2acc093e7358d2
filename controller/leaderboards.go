package controller

import (
	"context"
	"log"
	"slices"

	"github.com/mww/sidepools/model"
	"github.com/mww/sidepools/view"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Maximum number of leaderboards fetched at the same time.
const leaderboardFetchLimit = 4

type LeaderboardsView struct {
	SeasonHighs       []view.LeaderboardCard
	SeasonCumulatives []view.LeaderboardCard
	PoolsStatus       Status
}

func (c *controller) Leaderboards(ctx context.Context) (*LeaderboardsView, error) {
	v := &LeaderboardsView{}

	pools, err := c.api.Pools(ctx)
	if err != nil {
		log.Printf("leaderboards: error fetching pools: %v", err)
		v.PoolsStatus.Err = err
		return v, nil
	}
	v.PoolsStatus.LoadedAt = c.clock.Now()

	pools = slices.DeleteFunc(pools, func(p model.Pool) bool { return !p.HasLeaderboard() })
	sortPoolsByLabel(pools)

	// Each board writes only its own slot, a failed board doesn't affect the others.
	boards := make([]model.Leaderboard, len(pools))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(leaderboardFetchLimit)
	for i, p := range pools {
		g.Go(func() error {
			entries, err := c.api.Leaderboard(gctx, c.leagueID, p.PoolID)
			if err != nil {
				log.Printf("leaderboards: error fetching leaderboard for pool %s: %v", p.PoolID, err)
			}
			boards[i] = model.Leaderboard{Pool: p, Entries: entries, Err: err}
			return nil
		})
	}
	g.Wait()

	for _, b := range boards {
		card := view.NewLeaderboardCard(b)
		if b.IsSeasonHigh() {
			v.SeasonHighs = append(v.SeasonHighs, card)
		} else {
			v.SeasonCumulatives = append(v.SeasonCumulatives, card)
		}
	}
	return v, nil
}

func sortPoolsByLabel(pools []model.Pool) {
	col := collate.New(language.AmericanEnglish)
	slices.SortStableFunc(pools, func(a, b model.Pool) int {
		return col.CompareString(a.Label, b.Label)
	})
}
