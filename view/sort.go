package view

import (
	"slices"
	"strings"

	"github.com/mww/sidepools/model"
	"github.com/shopspring/decimal"
)

// Key is a sort key for one field of a row. Numeric keys compare numerically,
// everything else compares lexically.
type Key struct {
	num     decimal.Decimal
	str     string
	numeric bool
}

func NumberKey(d decimal.Decimal) Key {
	return Key{num: d, numeric: true}
}

func IntKey(i int) Key {
	return Key{num: decimal.NewFromInt(int64(i)), numeric: true}
}

func StringKey(s string) Key {
	return Key{str: s}
}

func (k Key) Compare(o Key) int {
	if k.numeric && o.numeric {
		return k.num.Cmp(o.num)
	}
	return strings.Compare(k.str, o.str)
}

// KeyFunc extracts the sort key for field from a row.
type KeyFunc[T any] func(row T, field model.SortField) Key

// Sort returns a sorted copy of rows. The sort is stable, so rows with equal keys
// keep their relative order in both directions.
func Sort[T any](rows []T, field model.SortField, dir model.SortDirection, key KeyFunc[T]) []T {
	out := slices.Clone(rows)
	if out == nil {
		out = []T{}
	}
	slices.SortStableFunc(out, func(a, b T) int {
		c := key(a, field).Compare(key(b, field))
		if dir == model.SortDesc {
			return -c
		}
		return c
	})
	return out
}

// NextSort is the result of clicking the header for clicked while the table is
// sorted by field in dir. Clicking the sorted column flips the direction, any
// other column starts out descending.
func NextSort(field model.SortField, dir model.SortDirection, clicked model.SortField) (model.SortField, model.SortDirection) {
	if clicked == field {
		return field, dir.Reverse()
	}
	return clicked, model.SortDesc
}

func PayoutRecordKey(r model.PayoutRecord, field model.SortField) Key {
	switch field {
	case model.SortByUsername:
		return StringKey(r.Username)
	case model.SortByPool:
		return StringKey(r.Pool)
	case model.SortBySeason:
		return StringKey(string(r.Season))
	case model.SortByWeek:
		return IntKey(r.Week)
	case model.SortByAmount:
		return NumberKey(r.Amount)
	default:
		return StringKey("")
	}
}

// UserPayoutKey only knows about username and amount; other fields compare equal.
func UserPayoutKey(p model.UserPayout, field model.SortField) Key {
	switch field {
	case model.SortByUsername:
		return StringKey(p.Username)
	case model.SortByAmount:
		return NumberKey(p.Amount)
	default:
		return StringKey("")
	}
}
