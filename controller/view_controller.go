package controller

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"

	"github.com/itbasis/go-clock"
	"github.com/mww/sidepools/api"
	"github.com/mww/sidepools/model"
	"github.com/mww/sidepools/view"
	"golang.org/x/sync/errgroup"
)

var ErrNoSuchBar = errors.New("no bar at that index")

// ViewController owns the selection of one payout screen and the data fetched for
// it. It is safe for concurrent use. Fetches are tagged with a sequence number
// when they start and a response is only applied if no newer fetch of the same
// kind was started in the meantime, so a slow response can never overwrite a
// fresher one.
type ViewController struct {
	cfg   ScreenConfig
	api   api.Client
	clock clock.Clock

	mu    sync.Mutex
	phase Phase
	sel   model.ViewSelection

	seasons       []model.Season
	seasonsStatus Status
	users         []model.UserSummary
	usersStatus   Status

	details       []model.PayoutRecord
	payouts       []model.UserPayout
	recordsSeq    uint64
	recordsStatus Status

	chart       view.Chart
	chartSeq    uint64
	chartStatus Status
}

func NewViewController(cfg ScreenConfig, client api.Client, clock clock.Clock) *ViewController {
	return &ViewController{
		cfg:   cfg,
		api:   client,
		clock: clock,
		phase: PhaseIdle,
		sel:   cfg.DefaultSelection(),
	}
}

// Restore sets the whole selection without fetching anything. Used when the
// selection comes from a URL.
func (vc *ViewController) Restore(sel model.ViewSelection) {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	if sel.SortField == "" {
		sel.SortField = vc.cfg.DefaultSort
	}
	if sel.SortDirection == "" {
		sel.SortDirection = vc.cfg.DefaultDirection
	}
	if sel.Page < 1 {
		sel.Page = 1
	}
	vc.sel = sel
}

func (vc *ViewController) Selection() model.ViewSelection {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	return vc.sel
}

func (vc *ViewController) Phase() Phase {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	return vc.phase
}

// Mount loads the season and user options. The two fetches are independent and
// run at the same time.
func (vc *ViewController) Mount(ctx context.Context) error {
	vc.mu.Lock()
	vc.phase = PhaseLoadingSeasons
	vc.seasonsStatus.Loading = true
	vc.usersStatus.Loading = true
	vc.mu.Unlock()

	g := new(errgroup.Group)
	g.Go(func() error { return vc.fetchSeasons(ctx) })
	g.Go(func() error { return vc.fetchUsers(ctx) })
	return g.Wait()
}

// Load does everything a freshly mounted screen needs: the options, the table
// records and the chart, all at once.
func (vc *ViewController) Load(ctx context.Context) error {
	g := new(errgroup.Group)
	g.Go(func() error { return vc.Mount(ctx) })
	g.Go(func() error { return vc.fetchRecords(ctx) })
	if vc.cfg.Chart {
		g.Go(func() error { return vc.fetchChart(ctx) })
	}
	return g.Wait()
}

// Select changes the season and user, refetches the records and goes back to the
// first page. The chart only depends on the season, so it is only refetched when
// the season changes.
func (vc *ViewController) Select(ctx context.Context, season model.Season, username string) error {
	vc.mu.Lock()
	seasonChanged := vc.sel.Season != season
	vc.sel.Season = season
	vc.sel.Username = username
	vc.sel.Page = 1
	vc.mu.Unlock()

	g := new(errgroup.Group)
	g.Go(func() error { return vc.fetchRecords(ctx) })
	if vc.cfg.Chart && seasonChanged {
		g.Go(func() error { return vc.fetchChart(ctx) })
	}
	return g.Wait()
}

func (vc *ViewController) SelectSeason(ctx context.Context, season model.Season) error {
	return vc.Select(ctx, season, vc.Selection().Username)
}

func (vc *ViewController) SelectUser(ctx context.Context, username string) error {
	return vc.Select(ctx, vc.Selection().Season, username)
}

// SelectBar filters the table to the user of the chart bar at index.
func (vc *ViewController) SelectBar(ctx context.Context, index int) error {
	vc.mu.Lock()
	username := vc.chart.Label(index)
	vc.mu.Unlock()

	if username == "" {
		return fmt.Errorf("%w: %d", ErrNoSuchBar, index)
	}
	return vc.SelectUser(ctx, username)
}

// Sort handles a click on a column header.
func (vc *ViewController) Sort(field model.SortField) {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	vc.sel.SortField, vc.sel.SortDirection = view.NextSort(vc.sel.SortField, vc.sel.SortDirection, field)
}

func (vc *ViewController) SetSort(field model.SortField, dir model.SortDirection) {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	vc.sel.SortField = field
	vc.sel.SortDirection = dir
}

// SetPage changes the page without refetching. Pages past the end show nothing.
func (vc *ViewController) SetPage(page int) {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	vc.sel.Page = max(page, 1)
}

func (vc *ViewController) fetchSeasons(ctx context.Context) error {
	var seasons []model.Season
	var err error
	switch vc.cfg.Seasons {
	case SeasonsFromPayouts:
		seasons, err = vc.api.PayoutSeasons(ctx)
	default:
		seasons, err = vc.api.LeagueSeasons(ctx)
	}

	vc.mu.Lock()
	defer vc.mu.Unlock()
	vc.seasonsStatus.Loading = false
	if !vc.usersStatus.Loading {
		vc.phase = PhaseReady
	} else {
		vc.phase = PhaseLoadingUsers
	}
	if err != nil {
		log.Printf("%s: error fetching seasons: %v", vc.cfg.Name, err)
		vc.seasonsStatus.Err = err
		return fmt.Errorf("error fetching seasons: %w", err)
	}
	vc.seasons = seasons
	vc.seasonsStatus = Status{LoadedAt: vc.clock.Now()}
	return nil
}

func (vc *ViewController) fetchUsers(ctx context.Context) error {
	users, err := vc.api.Users(ctx)

	vc.mu.Lock()
	defer vc.mu.Unlock()
	vc.usersStatus.Loading = false
	if !vc.seasonsStatus.Loading {
		vc.phase = PhaseReady
	}
	if err != nil {
		log.Printf("%s: error fetching users: %v", vc.cfg.Name, err)
		vc.usersStatus.Err = err
		return fmt.Errorf("error fetching users: %w", err)
	}
	vc.users = users
	vc.usersStatus = Status{LoadedAt: vc.clock.Now()}
	return nil
}

func (vc *ViewController) fetchRecords(ctx context.Context) error {
	vc.mu.Lock()
	vc.recordsSeq++
	seq := vc.recordsSeq
	sel := vc.sel
	vc.recordsStatus.Loading = true
	vc.mu.Unlock()

	var details []model.PayoutRecord
	var payouts []model.UserPayout
	var err error
	switch vc.cfg.Records {
	case SourcePayouts:
		payouts, err = vc.api.Payouts(ctx, sel.Season)
	default:
		details, err = vc.api.PayoutDetails(ctx, sel.Season, sel.Username)
	}

	vc.mu.Lock()
	defer vc.mu.Unlock()
	if seq != vc.recordsSeq {
		log.Printf("%s: dropping records for season %q user %q, a newer request was made", vc.cfg.Name, sel.Season, sel.Username)
		return nil
	}
	vc.recordsStatus.Loading = false
	if err != nil {
		log.Printf("%s: error fetching records: %v", vc.cfg.Name, err)
		vc.recordsStatus.Err = err
		return fmt.Errorf("error fetching records: %w", err)
	}
	vc.details = details
	vc.payouts = payouts
	vc.recordsStatus = Status{LoadedAt: vc.clock.Now()}
	return nil
}

// The chart covers every user in the selected season, the user filter only
// applies to the table.
func (vc *ViewController) fetchChart(ctx context.Context) error {
	vc.mu.Lock()
	vc.chartSeq++
	seq := vc.chartSeq
	season := vc.sel.Season
	vc.chartStatus.Loading = true
	vc.mu.Unlock()

	records, err := vc.api.PayoutDetails(ctx, season, "")

	vc.mu.Lock()
	defer vc.mu.Unlock()
	if seq != vc.chartSeq {
		log.Printf("%s: dropping chart for season %q, a newer request was made", vc.cfg.Name, season)
		return nil
	}
	vc.chartStatus.Loading = false
	if err != nil {
		log.Printf("%s: error fetching chart payouts: %v", vc.cfg.Name, err)
		vc.chartStatus.Err = err
		return fmt.Errorf("error fetching chart payouts: %w", err)
	}
	vc.chart = view.Aggregate(records)
	vc.chartStatus = Status{LoadedAt: vc.clock.Now()}
	return nil
}

// View is an immutable snapshot of a screen, ready to render.
type View struct {
	Screen    ScreenConfig
	Phase     Phase
	Selection model.ViewSelection

	Seasons       []model.Season
	SeasonsStatus Status
	Users         []model.UserSummary
	UsersStatus   Status

	// Only the rows for the selected page, sorted.
	Details       []model.PayoutRecord
	Payouts       []model.UserPayout
	TotalResults  int
	PageCount     int
	RecordsStatus Status

	Chart       view.Chart
	ChartStatus Status
}

// Snapshot derives the displayed rows from the latest fetched data. The fetched
// data itself is never modified so calling it repeatedly gives the same result.
func (vc *ViewController) Snapshot() *View {
	vc.mu.Lock()
	defer vc.mu.Unlock()

	v := &View{
		Screen:        vc.cfg,
		Phase:         vc.phase,
		Selection:     vc.sel,
		Seasons:       slices.Clone(vc.seasons),
		SeasonsStatus: vc.seasonsStatus,
		Users:         slices.Clone(vc.users),
		UsersStatus:   vc.usersStatus,
		RecordsStatus: vc.recordsStatus,
		Chart:         vc.chart,
		ChartStatus:   vc.chartStatus,
	}

	switch vc.cfg.Records {
	case SourcePayouts:
		sorted := view.Sort(vc.payouts, vc.sel.SortField, vc.sel.SortDirection, view.UserPayoutKey)
		v.Payouts = view.Paginate(sorted, vc.sel.Page, vc.cfg.PageSize)
		v.TotalResults = len(sorted)
	default:
		sorted := view.Sort(vc.details, vc.sel.SortField, vc.sel.SortDirection, view.PayoutRecordKey)
		v.Details = view.Paginate(sorted, vc.sel.Page, vc.cfg.PageSize)
		v.TotalResults = len(sorted)
	}
	v.PageCount = view.PageCount(v.TotalResults, vc.cfg.PageSize)
	return v
}

// DisplayName resolves a username to the user's name using the loaded users.
func (v *View) DisplayName(username string) string {
	for _, u := range v.Users {
		if u.Username == username {
			return u.DisplayName()
		}
	}
	return username
}

// Pages lists the page numbers for the page controls.
func (v *View) Pages() []int {
	pages := make([]int, 0, v.PageCount)
	for i := 1; i <= v.PageCount; i++ {
		pages = append(pages, i)
	}
	return pages
}
