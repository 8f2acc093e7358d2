package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mww/sidepools/api"
	"github.com/mww/sidepools/controller"
	"github.com/mww/sidepools/model"
	"github.com/mww/sidepools/testutils"
)

func TestPrintPayouts(t *testing.T) {
	testCtrl := testutils.NewTestController()
	defer testCtrl.Close()

	sel := controller.PayoutsScreen.DefaultSelection()
	sel.Season = "2023"
	v, err := loadScreen(context.Background(), controller.PayoutsScreen, api.NewForTest(testCtrl.APIURL()), sel, noBar)
	if err != nil {
		t.Fatalf("error loading payouts: %v", err)
	}

	var buf bytes.Buffer
	if err := printPayouts(&buf, v); err != nil {
		t.Fatalf("error printing payouts: %v", err)
	}
	out := buf.String()
	for _, s := range []string{"2023 payouts", "Rob Gillies", "$520.00", "page 1 of 1 (3 results)"} {
		if !strings.Contains(out, s) {
			t.Errorf("output does not contain %q:\n%s", s, out)
		}
	}
}

func TestPrintDetails_bar(t *testing.T) {
	testCtrl := testutils.NewTestController()
	defer testCtrl.Close()

	sel := controller.PayoutDetailsScreen.DefaultSelection()
	v, err := loadScreen(context.Background(), controller.PayoutDetailsScreen, api.NewForTest(testCtrl.APIURL()), sel, 2)
	if err != nil {
		t.Fatalf("error loading payout details: %v", err)
	}
	if v.Selection.Username != "gee17" {
		t.Errorf("expected the third bar to be gee17, got %q", v.Selection.Username)
	}

	var buf bytes.Buffer
	if err := printDetails(&buf, v); err != nil {
		t.Fatalf("error printing payout details: %v", err)
	}
	out := buf.String()
	for _, s := range []string{"All-Time payouts for Gee", "Most Points", "$75.50", "page 1 of 1 (3 results)", "ChristianSwagner", "$670.00"} {
		if !strings.Contains(out, s) {
			t.Errorf("output does not contain %q:\n%s", s, out)
		}
	}
}

func TestPrintDetails_backendDown(t *testing.T) {
	testCtrl := testutils.NewTestController()
	defer testCtrl.Close()
	testCtrl.FakeAPI.Fail("/api/v1/payoutdetails", 500)

	v, err := loadScreen(context.Background(), controller.PayoutDetailsScreen, api.NewForTest(testCtrl.APIURL()), model.ViewSelection{}, noBar)
	if err != nil {
		t.Fatalf("fetch failures should be shown in the output: %v", err)
	}

	var buf bytes.Buffer
	if err := printDetails(&buf, v); err != nil {
		t.Fatalf("error printing payout details: %v", err)
	}
	out := buf.String()
	for _, s := range []string{"failed to load payout details", "failed to load chart", "no results"} {
		if !strings.Contains(out, s) {
			t.Errorf("output does not contain %q:\n%s", s, out)
		}
	}
}

func TestLoadScreen_invalid(t *testing.T) {
	testCtrl := testutils.NewTestController()
	defer testCtrl.Close()
	client := api.NewForTest(testCtrl.APIURL())
	ctx := context.Background()

	sel := controller.PayoutsScreen.DefaultSelection()
	sel.SortField = model.SortByWeek
	if _, err := loadScreen(ctx, controller.PayoutsScreen, client, sel, noBar); err == nil {
		t.Errorf("expected an error sorting payouts by week")
	}

	if _, err := loadScreen(ctx, controller.PayoutDetailsScreen, client, model.ViewSelection{}, 7); !errors.Is(err, controller.ErrNoSuchBar) {
		t.Errorf("expected ErrNoSuchBar, got %v", err)
	}
}

func TestWaitTimeout(t *testing.T) {
	wg := &sync.WaitGroup{}
	if err := waitTimeout(wg, time.Second); err != nil {
		t.Errorf("expected an idle wait group to finish: %v", err)
	}

	wg.Add(1)
	defer wg.Done()
	if err := waitTimeout(wg, 10*time.Millisecond); err == nil {
		t.Errorf("expected a timeout")
	}
}
