package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"text/tabwriter"

	"github.com/mww/sidepools/api"
	"github.com/mww/sidepools/controller"
	"github.com/mww/sidepools/model"
	"github.com/mww/sidepools/view"
	"github.com/spf13/cobra"
)

// noBar means no chart bar was picked.
const noBar = -1

func newPayoutsCmd() *cobra.Command {
	var season string
	cmd := &cobra.Command{
		Use:   "payouts",
		Short: "Print the payouts per user for a season",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			sel := controller.PayoutsScreen.DefaultSelection()
			sel.Season = model.Season(season)

			v, err := loadScreen(cmd.Context(), controller.PayoutsScreen, client, sel, noBar)
			if err != nil {
				return err
			}
			return printPayouts(cmd.OutOrStdout(), v)
		},
	}
	cmd.Flags().StringVar(&season, "season", "", "Season to show, all-time when empty")
	return cmd
}

func newDetailsCmd() *cobra.Command {
	var (
		season   string
		username string
		sort     string
		dir      string
		page     int
		bar      int
	)
	cmd := &cobra.Command{
		Use:   "details",
		Short: "Print individual payouts and the payouts chart",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			sel := model.ViewSelection{
				Season:        model.Season(season),
				Username:      username,
				SortField:     model.SortField(sort),
				SortDirection: model.SortDirection(dir),
				Page:          page,
			}

			v, err := loadScreen(cmd.Context(), controller.PayoutDetailsScreen, client, sel, bar)
			if err != nil {
				return err
			}
			return printDetails(cmd.OutOrStdout(), v)
		},
	}
	cmd.Flags().StringVar(&season, "season", "", "Season to show, all-time when empty")
	cmd.Flags().StringVar(&username, "username", "", "Only show payouts for this user")
	cmd.Flags().StringVar(&sort, "sort", string(model.SortByAmount), "Column to sort by: username, pool, season, week or amount")
	cmd.Flags().StringVar(&dir, "dir", string(model.SortDesc), "Sort direction: asc or desc")
	cmd.Flags().IntVar(&page, "page", 1, "Page to show")
	cmd.Flags().IntVar(&bar, "bar", noBar, "Only show payouts for the user of this chart bar, counting from 0")
	return cmd
}

// loadScreen runs a screen's view controller once and returns what it would show.
// Fetch failures are reported in the view, not as an error.
func loadScreen(ctx context.Context, screen controller.ScreenConfig, client api.Client, sel model.ViewSelection, bar int) (*controller.View, error) {
	vc := controller.NewViewController(screen, client, appClock)
	vc.Restore(sel)
	if err := vc.Selection().Validate(); err != nil {
		return nil, err
	}
	if !screen.CanSort(vc.Selection().SortField) {
		return nil, fmt.Errorf("%s can't be sorted by %s", screen.Title, vc.Selection().SortField)
	}

	if err := vc.Load(ctx); err != nil {
		log.Printf("error loading %s: %v", screen.Name, err)
	}
	if bar != noBar {
		if err := vc.SelectBar(ctx, bar); err != nil {
			return nil, err
		}
	}
	return vc.Snapshot(), nil
}

func printPayouts(out io.Writer, v *controller.View) error {
	fmt.Fprintf(out, "%s payouts\n\n", v.Selection.Season.Label())
	printStatus(out, "payouts", v.RecordsStatus)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "USER\tAMOUNT\t")
	for _, p := range v.Payouts {
		name := p.Name
		if name == "" {
			name = v.DisplayName(p.Username)
		}
		fmt.Fprintf(w, "%s\t%s\t\n", name, view.FormatCurrency(p.Amount, 2))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	printPage(out, v)
	return nil
}

func printDetails(out io.Writer, v *controller.View) error {
	user := "all users"
	if v.Selection.Username != "" {
		user = v.DisplayName(v.Selection.Username)
	}
	fmt.Fprintf(out, "%s payouts for %s\n\n", v.Selection.Season.Label(), user)
	printStatus(out, "payout details", v.RecordsStatus)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "USER\tPOOL\tTYPE\tSEASON\tWEEK\tAMOUNT")
	for _, d := range v.Details {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n", d.Username, d.Pool, d.PoolType, d.Season.Label(), d.Week, view.FormatCurrency(d.Amount, 2))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	printPage(out, v)

	fmt.Fprintf(out, "\nTotals by pool type\n\n")
	printStatus(out, "chart", v.ChartStatus)
	return printChart(out, v.Chart)
}

func printChart(out io.Writer, chart view.Chart) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	header := []string{"#", "USER"}
	for _, s := range chart.Series {
		header = append(header, strings.ToUpper(string(s.PoolType)))
	}
	header = append(header, "TOTAL")
	fmt.Fprintln(w, strings.Join(header, "\t"))

	for i, label := range chart.Labels {
		row := []string{fmt.Sprint(i), label}
		for _, s := range chart.Series {
			row = append(row, view.FormatCurrency(s.Values[i], 2))
		}
		row = append(row, view.FormatCurrency(chart.Totals[i], 2))
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}

func printStatus(out io.Writer, section string, s controller.Status) {
	if !s.Failed() {
		return
	}
	fmt.Fprintf(out, "failed to load %s: %v\n", section, s.Err)
	if s.Stale() {
		fmt.Fprintf(out, "showing %s from %s\n", section, s.LoadedAt.Format("Jan 2, 2006 3:04 PM"))
	}
}

func printPage(out io.Writer, v *controller.View) {
	if v.PageCount == 0 {
		fmt.Fprintf(out, "\nno results\n")
		return
	}
	fmt.Fprintf(out, "\npage %d of %d (%d results)\n", v.Selection.Page, v.PageCount, v.TotalResults)
}
