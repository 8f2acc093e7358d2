package view

import (
	"reflect"
	"testing"

	"github.com/mww/sidepools/model"
	"github.com/shopspring/decimal"
)

func testRecords() []model.PayoutRecord {
	return []model.PayoutRecord{
		{Username: "b", Pool: "Weekly High", PoolType: model.PoolTypeSide, Season: "2023", Week: 3, Amount: decimal.NewFromInt(20)},
		{Username: "a", Pool: "Champion", PoolType: model.PoolTypeMain, Season: "2024", Week: 17, Amount: decimal.NewFromInt(500)},
		{Username: "c", Pool: "Weekly High", PoolType: model.PoolTypeSide, Season: "2023", Week: 10, Amount: decimal.NewFromInt(20)},
		{Username: "a", Pool: "Weekly High", PoolType: model.PoolTypeSide, Season: "2024", Week: 2, Amount: decimal.RequireFromString("20.00")},
		{Username: "d", Pool: "Runner Up", PoolType: model.PoolTypeMain, Season: "2022", Week: 17, Amount: decimal.NewFromInt(150)},
	}
}

func usernames(rows []model.PayoutRecord) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Username)
	}
	return out
}

func TestSort(t *testing.T) {
	tests := []struct {
		field model.SortField
		dir   model.SortDirection
		want  []string
	}{
		{field: model.SortByAmount, dir: model.SortDesc, want: []string{"a", "d", "b", "c", "a"}},
		{field: model.SortByAmount, dir: model.SortAsc, want: []string{"b", "c", "a", "d", "a"}},
		{field: model.SortByUsername, dir: model.SortAsc, want: []string{"a", "a", "b", "c", "d"}},
		{field: model.SortByWeek, dir: model.SortAsc, want: []string{"a", "b", "c", "a", "d"}},
		{field: model.SortByWeek, dir: model.SortDesc, want: []string{"a", "d", "c", "b", "a"}},
		{field: model.SortBySeason, dir: model.SortDesc, want: []string{"a", "a", "b", "c", "d"}},
		{field: model.SortByPool, dir: model.SortAsc, want: []string{"a", "d", "b", "c", "a"}},
	}

	for _, tc := range tests {
		t.Run(string(tc.field)+"_"+string(tc.dir), func(t *testing.T) {
			rows := testRecords()
			got := Sort(rows, tc.field, tc.dir, PayoutRecordKey)
			if !reflect.DeepEqual(usernames(got), tc.want) {
				t.Errorf("expected order %v, got %v", tc.want, usernames(got))
			}
			if !reflect.DeepEqual(rows, testRecords()) {
				t.Errorf("input rows were modified")
			}
		})
	}
}

func TestSort_numericNotLexical(t *testing.T) {
	rows := []model.PayoutRecord{
		{Username: "x", Week: 10, Amount: decimal.NewFromInt(100)},
		{Username: "y", Week: 9, Amount: decimal.NewFromInt(9)},
	}
	got := Sort(rows, model.SortByWeek, model.SortAsc, PayoutRecordKey)
	if got[0].Username != "y" {
		t.Errorf("week 9 should sort before week 10, got %v", usernames(got))
	}
	got = Sort(rows, model.SortByAmount, model.SortAsc, PayoutRecordKey)
	if got[0].Username != "y" {
		t.Errorf("amount 9 should sort before amount 100, got %v", usernames(got))
	}
}

// Ascending then descending reverses the order of rows with distinct keys.
func TestSort_reverses(t *testing.T) {
	fields := []model.SortField{model.SortByUsername, model.SortByPool, model.SortBySeason, model.SortByWeek, model.SortByAmount}
	for _, f := range fields {
		t.Run(string(f), func(t *testing.T) {
			asc := Sort(testRecords(), f, model.SortAsc, PayoutRecordKey)
			desc := Sort(testRecords(), f, model.SortDesc, PayoutRecordKey)
			for i := range asc {
				for j := i + 1; j < len(asc); j++ {
					if PayoutRecordKey(asc[i], f).Compare(PayoutRecordKey(asc[j], f)) == 0 {
						continue
					}
					// asc[i] comes before asc[j], so it must come after it in desc
					if indexOf(desc, asc[i]) < indexOf(desc, asc[j]) {
						t.Errorf("rows %d and %d were not reversed", i, j)
					}
				}
			}
		})
	}
}

func indexOf(rows []model.PayoutRecord, r model.PayoutRecord) int {
	for i := range rows {
		if reflect.DeepEqual(rows[i], r) {
			return i
		}
	}
	return -1
}

func TestSort_empty(t *testing.T) {
	got := Sort[model.PayoutRecord](nil, model.SortByAmount, model.SortDesc, PayoutRecordKey)
	if got == nil || len(got) != 0 {
		t.Errorf("expected an empty, non-nil slice, got %v", got)
	}
}

func TestSortUserPayouts(t *testing.T) {
	rows := []model.UserPayout{
		{Username: "b", Amount: decimal.NewFromInt(10)},
		{Username: "a", Amount: decimal.NewFromInt(30)},
		{Username: "c", Amount: decimal.NewFromInt(20)},
	}
	got := Sort(rows, model.SortByAmount, model.SortDesc, UserPayoutKey)
	if got[0].Username != "a" || got[1].Username != "c" || got[2].Username != "b" {
		t.Errorf("unexpected order: %v", got)
	}
	// Unknown fields keep the input order
	got = Sort(rows, model.SortByWeek, model.SortDesc, UserPayoutKey)
	if !reflect.DeepEqual(got, rows) {
		t.Errorf("expected input order, got %v", got)
	}
}

func TestNextSort(t *testing.T) {
	tests := []struct {
		field     model.SortField
		dir       model.SortDirection
		clicked   model.SortField
		wantField model.SortField
		wantDir   model.SortDirection
	}{
		{field: model.SortByAmount, dir: model.SortDesc, clicked: model.SortByAmount, wantField: model.SortByAmount, wantDir: model.SortAsc},
		{field: model.SortByAmount, dir: model.SortAsc, clicked: model.SortByAmount, wantField: model.SortByAmount, wantDir: model.SortDesc},
		{field: model.SortByAmount, dir: model.SortAsc, clicked: model.SortByWeek, wantField: model.SortByWeek, wantDir: model.SortDesc},
		{field: model.SortByAmount, dir: model.SortDesc, clicked: model.SortByPool, wantField: model.SortByPool, wantDir: model.SortDesc},
	}

	for _, tc := range tests {
		f, d := NextSort(tc.field, tc.dir, tc.clicked)
		if f != tc.wantField || d != tc.wantDir {
			t.Errorf("NextSort(%s, %s, %s) = %s, %s; want %s, %s", tc.field, tc.dir, tc.clicked, f, d, tc.wantField, tc.wantDir)
		}
	}
}
