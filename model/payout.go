package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

type PoolType string

const (
	PoolTypeMain PoolType = "main"
	PoolTypeSide PoolType = "side"
)

// Season is a league year token such as "2024". SeasonAllTime means no season filter.
type Season string

const SeasonAllTime Season = ""

func (s Season) Label() string {
	if s == SeasonAllTime {
		return "All-Time"
	}
	return string(s)
}

// The backend emits seasons as bare integers in some places and as strings in
// others, accept both.
func (s *Season) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*s = SeasonAllTime
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = Season(str)
		return nil
	}
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("season must be a string or integer, got %s", b)
	}
	*s = Season(strconv.FormatInt(n, 10))
	return nil
}

// PayoutRecord is one user's payout for one pool, season and week.
type PayoutRecord struct {
	Name     string          `json:"name"`
	Username string          `json:"username"`
	Pool     string          `json:"pool"`
	PoolType PoolType        `json:"pool_type"`
	Season   Season          `json:"season"`
	Week     int             `json:"week"`
	Amount   decimal.Decimal `json:"amount"`
}

// UserPayout is a user's summed payouts, as returned by the seasonal payouts endpoint.
type UserPayout struct {
	Username string          `json:"username"`
	Name     string          `json:"name"`
	Avatar   string          `json:"avatar"`
	Amount   decimal.Decimal `json:"amount"`
}
