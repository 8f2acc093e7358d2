package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/mww/sidepools/api"
	"github.com/mww/sidepools/controller"
	"github.com/mww/sidepools/controller/mockcontroller"
	"github.com/mww/sidepools/model"
	"github.com/mww/sidepools/sleeper"
	"github.com/mww/sidepools/testutils"
	"github.com/stretchr/testify/mock"
)

func routerForTest(t *testing.T) (*chi.Mux, *testutils.TestController) {
	testCtrl := testutils.NewTestController()
	ctrl, err := controller.New(testCtrl.Clock, api.NewForTest(testCtrl.APIURL()), sleeper.NewForTest(testCtrl.SleeperURL()), testutils.LeagueID)
	if err != nil {
		t.Fatalf("error creating controller: %v", err)
	}
	return getRouter(ctrl, newRender(), nil), testCtrl
}

func serve(router http.Handler, req *http.Request) (*http.Response, string) {
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	resp := rr.Result()
	b, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	return resp, string(b)
}

func TestRootHandler(t *testing.T) {
	router, testCtrl := routerForTest(t)
	defer testCtrl.Close()

	resp, _ := serve(router, httptest.NewRequest(http.MethodGet, "/", nil))
	if resp.StatusCode != http.StatusFound {
		t.Errorf("unexpected status code. Got: %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/payouts" {
		t.Errorf("unexpected redirect location: %s", loc)
	}
}

func TestHealthzHandler(t *testing.T) {
	router, testCtrl := routerForTest(t)
	defer testCtrl.Close()

	resp, body := serve(router, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if resp.StatusCode != http.StatusOK || body != "ok" {
		t.Errorf("unexpected response: %d %q", resp.StatusCode, body)
	}
}

func TestNotFound(t *testing.T) {
	router, testCtrl := routerForTest(t)
	defer testCtrl.Close()

	resp, body := serve(router, httptest.NewRequest(http.MethodGet, "/players", nil))
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unexpected status code. Got: %d", resp.StatusCode)
	}
	if !strings.Contains(body, "/players was not found") {
		t.Errorf("response body does not contain expected string")
	}
}

func TestPayoutsHandler(t *testing.T) {
	router, testCtrl := routerForTest(t)
	defer testCtrl.Close()

	form := url.Values{"season": {"2023"}, "sort": {"amount"}, "dir": {"desc"}}
	req := httptest.NewRequest(http.MethodPost, "/payouts", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, body := serve(router, req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code. Got: %d", resp.StatusCode)
	}

	for _, s := range []string{"2023 Payouts", "Rob Gillies", "$520.00", "$200.00", "$70.00", "Commish Side Pools League"} {
		if !strings.Contains(body, s) {
			t.Errorf("response body does not contain %q", s)
		}
	}
	if strings.Index(body, "$520.00") > strings.Index(body, "$70.00") {
		t.Errorf("expected payouts to be sorted by amount descending")
	}
	if resp.Header.Get("Access-Control-Allow-Origin") != "" {
		t.Errorf("html pages should not send CORS headers")
	}
}

func TestPayoutDetailsHandler(t *testing.T) {
	router, testCtrl := routerForTest(t)
	defer testCtrl.Close()

	resp, body := serve(router, httptest.NewRequest(http.MethodGet, "/payoutdetails?season=2023&sort=week&dir=asc", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code. Got: %d", resp.StatusCode)
	}

	for _, s := range []string{"5 results", "Highest Scoring Week", "$500.00", `id="chart-data"`, "username=rgillies28"} {
		if !strings.Contains(body, s) {
			t.Errorf("response body does not contain %q", s)
		}
	}
	// Clicking the sorted column again flips the direction
	if !strings.Contains(body, `href="?dir=desc&amp;season=2023&amp;sort=week"`) {
		t.Errorf("response body does not contain the week sort link")
	}
}

func TestPayoutDetailsHandler_invalidSelection(t *testing.T) {
	router, testCtrl := routerForTest(t)
	defer testCtrl.Close()

	tests := []string{
		"/payoutdetails?sort=bogus",
		"/payoutdetails?dir=up",
		"/payoutdetails?page=abc",
		"/payoutdetails?page=0",
		"/payoutdetails?season=20%2023",
	}
	for _, tc := range tests {
		t.Run(tc, func(t *testing.T) {
			resp, _ := serve(router, httptest.NewRequest(http.MethodGet, tc, nil))
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("unexpected status code. Got: %d", resp.StatusCode)
			}
		})
	}
}

func TestPayoutDetailsHandler_backendDown(t *testing.T) {
	router, testCtrl := routerForTest(t)
	defer testCtrl.Close()

	testCtrl.FakeAPI.Fail("/api/v1/payoutdetails", http.StatusBadGateway)
	resp, body := serve(router, httptest.NewRequest(http.MethodGet, "/payoutdetails", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code. Got: %d", resp.StatusCode)
	}
	for _, s := range []string{"Failed to load payout details.", "Failed to load the chart."} {
		if !strings.Contains(body, s) {
			t.Errorf("response body does not contain %q", s)
		}
	}
}

func TestLeaderboardsHandler(t *testing.T) {
	router, testCtrl := routerForTest(t)
	defer testCtrl.Close()

	resp, body := serve(router, httptest.NewRequest(http.MethodGet, "/leaderboards", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code. Got: %d", resp.StatusCode)
	}
	for _, s := range []string{"Highest Scoring Week", "Most Points", "178.42", "10-4", "Failed to load leaderboard."} {
		if !strings.Contains(body, s) {
			t.Errorf("response body does not contain %q", s)
		}
	}
	if strings.Contains(body, "Weekly High Score") {
		t.Errorf("weekly pools don't have a leaderboard")
	}
}

func TestPayoutDetailsJSONHandler(t *testing.T) {
	router, testCtrl := routerForTest(t)
	defer testCtrl.Close()

	req := httptest.NewRequest(http.MethodGet, "/views/payoutdetails.json?season=2023", nil)
	req.Header.Set("Origin", "http://dashboard.example.com")
	resp, body := serve(router, req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code. Got: %d", resp.StatusCode)
	}
	if o := resp.Header.Get("Access-Control-Allow-Origin"); o != "*" {
		t.Errorf("unexpected CORS origin header: %q", o)
	}

	var got screenJSON
	if err := json.Unmarshal([]byte(body), &got); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if got.Screen != "payoutdetails" || got.TotalResults != 5 || len(got.Details) != 5 {
		t.Errorf("unexpected view: %+v", got)
	}
	if got.Chart == nil || len(got.Chart.Labels) != 3 || got.Chart.Labels[0] != "rgillies28" {
		t.Errorf("unexpected chart: %+v", got.Chart)
	}
	if len(got.Seasons) != 3 || got.Seasons[0].Label != "All-Time" {
		t.Errorf("unexpected seasons: %+v", got.Seasons)
	}
	if s := got.Status["records"]; s.Error != "" || s.LoadedAt == nil {
		t.Errorf("unexpected records status: %+v", s)
	}
}

func TestPayoutsJSONHandler_invalidSelection(t *testing.T) {
	router, testCtrl := routerForTest(t)
	defer testCtrl.Close()

	resp, body := serve(router, httptest.NewRequest(http.MethodGet, "/views/payouts.json?sort=week", nil))
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("unexpected status code. Got: %d", resp.StatusCode)
	}
	if !strings.Contains(body, "invalid selection") {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestLeaderboardsJSONHandler(t *testing.T) {
	router, testCtrl := routerForTest(t)
	defer testCtrl.Close()

	resp, body := serve(router, httptest.NewRequest(http.MethodGet, "/views/leaderboards.json", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code. Got: %d", resp.StatusCode)
	}

	var got leaderboardsJSON
	if err := json.Unmarshal([]byte(body), &got); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if len(got.SeasonHighs) != 2 || len(got.SeasonCumulatives) != 1 {
		t.Errorf("unexpected leaderboards: %+v", got)
	}
}

func TestPayoutsHandler_formClicks(t *testing.T) {
	sel := model.ViewSelection{Season: "2023", SortField: model.SortByAmount, SortDirection: model.SortAsc, Page: 2}

	ctrl := &mockcontroller.C{}
	ctrl.On("League", mock.Anything).Return(nil, errors.New("sleeper is down"))
	ctrl.On("PayoutsView", mock.Anything, sel).Return(&controller.View{Screen: controller.PayoutsScreen, Selection: sel}, nil)

	form := url.Values{
		"season": {"2023"},
		"sort":   {"amount"},
		"dir":    {"desc"},
		"page":   {"1"},
		"click":  {"amount"},
		"goto":   {"2"},
	}
	req := httptest.NewRequest(http.MethodPost, "/payouts", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, body := serve(getRouter(ctrl, newRender(), nil), req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code. Got: %d", resp.StatusCode)
	}
	if !strings.Contains(body, "League unavailable") {
		t.Errorf("expected a placeholder when the league can't be loaded")
	}
	ctrl.AssertExpectations(t)
}

func TestPayoutsHandler_controllerError(t *testing.T) {
	ctrl := &mockcontroller.C{}
	ctrl.On("PayoutsView", mock.Anything, controller.PayoutsScreen.DefaultSelection()).Return(nil, errors.New("something broke"))

	resp, body := serve(getRouter(ctrl, newRender(), nil), httptest.NewRequest(http.MethodGet, "/payouts", nil))
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("unexpected status code. Got: %d", resp.StatusCode)
	}
	if !strings.Contains(body, "something broke") {
		t.Errorf("response body does not contain expected string")
	}
	ctrl.AssertExpectations(t)
}

func TestParseSelection(t *testing.T) {
	screen := controller.PayoutDetailsScreen
	tests := []struct {
		name    string
		values  url.Values
		want    model.ViewSelection
		wantErr bool
	}{
		{
			name:   "defaults",
			values: url.Values{},
			want:   model.ViewSelection{SortField: model.SortByAmount, SortDirection: model.SortDesc, Page: 1},
		},
		{
			name:   "query",
			values: url.Values{"season": {"2024"}, "username": {"gee17"}, "sort": {"week"}, "dir": {"asc"}, "page": {"3"}},
			want:   model.ViewSelection{Season: "2024", Username: "gee17", SortField: model.SortByWeek, SortDirection: model.SortAsc, Page: 3},
		},
		{
			name:   "click sorted column",
			values: url.Values{"sort": {"week"}, "dir": {"asc"}, "click": {"week"}},
			want:   model.ViewSelection{SortField: model.SortByWeek, SortDirection: model.SortDesc, Page: 1},
		},
		{
			name:   "click new column",
			values: url.Values{"sort": {"week"}, "dir": {"asc"}, "click": {"pool"}},
			want:   model.ViewSelection{SortField: model.SortByPool, SortDirection: model.SortDesc, Page: 1},
		},
		{
			name:   "goto page",
			values: url.Values{"page": {"1"}, "goto": {"4"}},
			want:   model.ViewSelection{SortField: model.SortByAmount, SortDirection: model.SortDesc, Page: 4},
		},
		{name: "bad page", values: url.Values{"page": {"two"}}, wantErr: true},
		{name: "negative page", values: url.Values{"page": {"-1"}}, wantErr: true},
		{name: "bad goto", values: url.Values{"goto": {"x"}}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseSelection(screen, tc.values)
			if tc.wantErr {
				if !errors.Is(err, controller.ErrInvalidSelection) {
					t.Errorf("expected an invalid selection error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("expected: %+v, got: %+v", tc.want, got)
			}
		})
	}
}
