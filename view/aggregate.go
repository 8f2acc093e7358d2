package view

import (
	"slices"

	"github.com/mww/sidepools/model"
	"github.com/shopspring/decimal"
)

// Series is the stacked bar data for one pool type, aligned to Chart.Labels.
type Series struct {
	PoolType model.PoolType    `json:"pool_type"`
	Color    string            `json:"color"`
	Values   []decimal.Decimal `json:"values"`
}

// Chart is a stacked bar chart of payouts per user.
type Chart struct {
	// Usernames, ranked by total payout.
	Labels []string `json:"labels"`
	// Display names aligned to Labels.
	Names  []string          `json:"names"`
	Totals []decimal.Decimal `json:"totals"`
	Series []Series          `json:"series"`
}

// Aggregate groups payouts by user and pool type using the default palette.
func Aggregate(records []model.PayoutRecord) Chart {
	return AggregateWithPalette(records, DefaultPalette)
}

func AggregateWithPalette(records []model.PayoutRecord, palette Palette) Chart {
	type user struct {
		username string
		name     string
		sums     map[model.PoolType]decimal.Decimal
		total    decimal.Decimal
	}

	users := make([]*user, 0)
	byName := make(map[string]*user)
	seenTypes := make(map[model.PoolType]bool)
	poolTypes := make([]model.PoolType, 0)

	for _, r := range records {
		u, found := byName[r.Username]
		if !found {
			u = &user{username: r.Username, sums: make(map[model.PoolType]decimal.Decimal)}
			byName[r.Username] = u
			users = append(users, u)
		}
		if u.name == "" {
			u.name = r.Name
		}
		if !seenTypes[r.PoolType] {
			seenTypes[r.PoolType] = true
			poolTypes = append(poolTypes, r.PoolType)
		}
		u.sums[r.PoolType] = u.sums[r.PoolType].Add(r.Amount)
		u.total = u.total.Add(r.Amount)
	}

	slices.Sort(poolTypes)
	// Stable so that ties stay in discovery order.
	slices.SortStableFunc(users, func(a, b *user) int {
		return b.total.Cmp(a.total)
	})

	c := Chart{
		Labels: make([]string, 0, len(users)),
		Names:  make([]string, 0, len(users)),
		Totals: make([]decimal.Decimal, 0, len(users)),
		Series: make([]Series, 0, len(poolTypes)),
	}
	for _, u := range users {
		c.Labels = append(c.Labels, u.username)
		name := u.name
		if name == "" {
			name = u.username
		}
		c.Names = append(c.Names, name)
		c.Totals = append(c.Totals, u.total)
	}
	for _, t := range poolTypes {
		s := Series{PoolType: t, Color: palette.Color(t), Values: make([]decimal.Decimal, 0, len(users))}
		for _, u := range users {
			s.Values = append(s.Values, u.sums[t])
		}
		c.Series = append(c.Series, s)
	}
	return c
}

// Total is the sum of every value in every series.
func (c Chart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, s := range c.Series {
		for _, v := range s.Values {
			total = total.Add(v)
		}
	}
	return total
}

// Max is the largest stacked total, used to scale the bars.
func (c Chart) Max() decimal.Decimal {
	m := decimal.Zero
	for _, t := range c.Totals {
		if t.GreaterThan(m) {
			m = t
		}
	}
	return m
}

// Percent is the width of a value as a percentage of the largest bar.
func (c Chart) Percent(v decimal.Decimal) float64 {
	m := c.Max()
	if !m.IsPositive() || !v.IsPositive() {
		return 0
	}
	return v.Div(m).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
}

// Label returns the username at index i, or "" when out of range.
func (c Chart) Label(i int) string {
	if i < 0 || i >= len(c.Labels) {
		return ""
	}
	return c.Labels[i]
}
