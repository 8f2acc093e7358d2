package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mww/sidepools/controller"
	"github.com/mww/sidepools/model"
	"github.com/mww/sidepools/view"
	"github.com/unrolled/render"
)

// Query parameters and form fields that make up a ViewSelection.
const (
	paramSeason    = "season"
	paramUsername  = "username"
	paramSort      = "sort"
	paramDirection = "dir"
	paramPage      = "page"

	// Form only: the column header or page button that was pressed.
	formClick = "click"
	formGoto  = "goto"
)

type screenBuilder func(ctx context.Context, sel model.ViewSelection) (*controller.View, error)

// page is the data every HTML template is rendered with, the layout reads the
// league and navigation from it.
type page struct {
	Title  string
	Nav    string
	League *model.League
	View   any
}

func newPage(r *http.Request, ctrl controller.C, title, nav string, v any) page {
	league, err := ctrl.League(r.Context())
	if err != nil {
		log.Printf("error getting league for page header: %v", err)
	}
	return page{Title: title, Nav: nav, League: league, View: v}
}

func rootHandler(_ controller.C, _ *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/payouts", http.StatusFound)
	}
}

func healthzHandler(render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.Text(w, http.StatusOK, "ok")
	}
}

func notFoundHandler(render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		errorPage(w, render, http.StatusNotFound, fmt.Sprintf("%s was not found", r.URL.Path))
	}
}

// The payouts screen doesn't sync its selection to the URL, it is posted from
// the page's forms instead.
func payoutsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return screenHandler(ctrl, render, controller.PayoutsScreen, ctrl.PayoutsView, func(r *http.Request) (url.Values, error) {
		if r.Method != http.MethodPost {
			return url.Values{}, nil
		}
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
		return r.PostForm, nil
	})
}

func payoutDetailsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return screenHandler(ctrl, render, controller.PayoutDetailsScreen, ctrl.PayoutDetailsView, queryValues)
}

func screenHandler(ctrl controller.C, render *render.Render, screen controller.ScreenConfig, build screenBuilder, values func(*http.Request) (url.Values, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vals, err := values(r)
		if err != nil {
			errorPage(w, render, http.StatusBadRequest, err.Error())
			return
		}

		v, err := buildScreen(r.Context(), screen, build, vals)
		if err != nil {
			renderError(w, render, err)
			return
		}

		render.HTML(w, http.StatusOK, screen.Name, newPage(r, ctrl, screen.Title, screen.Name, v))
	}
}

func leaderboardsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := ctrl.Leaderboards(r.Context())
		if err != nil {
			errorPage(w, render, http.StatusInternalServerError, err.Error())
			return
		}
		render.HTML(w, http.StatusOK, "leaderboards", newPage(r, ctrl, "Leaderboards", "leaderboards", v))
	}
}

func payoutsJSONHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return screenJSONHandler(render, controller.PayoutsScreen, ctrl.PayoutsView)
}

func payoutDetailsJSONHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return screenJSONHandler(render, controller.PayoutDetailsScreen, ctrl.PayoutDetailsView)
}

// The JSON views always take the selection from the query string.
func screenJSONHandler(render *render.Render, screen controller.ScreenConfig, build screenBuilder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := buildScreen(r.Context(), screen, build, r.URL.Query())
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, controller.ErrInvalidSelection) {
				status = http.StatusBadRequest
			}
			render.JSON(w, status, errorJSON{Error: err.Error()})
			return
		}
		render.JSON(w, http.StatusOK, newScreenJSON(v))
	}
}

func leaderboardsJSONHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := ctrl.Leaderboards(r.Context())
		if err != nil {
			render.JSON(w, http.StatusInternalServerError, errorJSON{Error: err.Error()})
			return
		}
		render.JSON(w, http.StatusOK, newLeaderboardsJSON(v))
	}
}

func queryValues(r *http.Request) (url.Values, error) {
	return r.URL.Query(), nil
}

func buildScreen(ctx context.Context, screen controller.ScreenConfig, build screenBuilder, values url.Values) (*controller.View, error) {
	sel, err := parseSelection(screen, values)
	if err != nil {
		return nil, err
	}
	return build(ctx, sel)
}

// parseSelection reads a selection from query or form values. Missing values
// fall back to the screen's defaults, validation is done by the controller.
func parseSelection(screen controller.ScreenConfig, values url.Values) (model.ViewSelection, error) {
	sel := screen.DefaultSelection()
	sel.Season = model.Season(values.Get(paramSeason))
	sel.Username = values.Get(paramUsername)
	if s := values.Get(paramSort); s != "" {
		sel.SortField = model.SortField(s)
	}
	if d := values.Get(paramDirection); d != "" {
		sel.SortDirection = model.SortDirection(d)
	}

	page, err := parsePage(values.Get(paramPage))
	if err != nil {
		return sel, err
	}
	if page != 0 {
		sel.Page = page
	}

	if c := values.Get(formClick); c != "" {
		sel.SortField, sel.SortDirection = view.NextSort(sel.SortField, sel.SortDirection, model.SortField(c))
	}
	page, err = parsePage(values.Get(formGoto))
	if err != nil {
		return sel, err
	}
	if page != 0 {
		sel.Page = page
	}
	return sel, nil
}

func parsePage(p string) (int, error) {
	if p == "" {
		return 0, nil
	}
	page, err := strconv.Atoi(p)
	if err != nil || page < 1 {
		return 0, fmt.Errorf("%w: page %q is not a positive number", controller.ErrInvalidSelection, p)
	}
	return page, nil
}

// errorPage renders the status page for status, e.g. "404".
func errorPage(w http.ResponseWriter, render *render.Render, status int, msg string) {
	render.HTML(w, status, strconv.Itoa(status), page{Title: http.StatusText(status), View: msg})
}

func renderError(w http.ResponseWriter, render *render.Render, err error) {
	if errors.Is(err, controller.ErrInvalidSelection) {
		errorPage(w, render, http.StatusBadRequest, err.Error())
		return
	}
	errorPage(w, render, http.StatusInternalServerError, err.Error())
}
