package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/mww/sidepools/controller"
	"github.com/mww/sidepools/model"
	"github.com/mww/sidepools/view"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"
)

//go:embed templates
var templates embed.FS

type Server struct {
	server *http.Server
}

// NewServer creates the dashboard web server. corsOrigins are the origins that may
// read the JSON views, an empty list allows any origin.
func NewServer(port int, ctrl controller.C, corsOrigins []string) (*Server, error) {
	if ctrl == nil {
		return nil, fmt.Errorf("a controller must be provided")
	}
	render := newRender()
	router := getRouter(ctrl, render, corsOrigins)

	s := &Server{
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		},
	}
	return s, nil
}

func (s *Server) ListenAndServe(shutdown chan bool, wg *sync.WaitGroup) {
	go func() {
		defer wg.Done()

		// Wait for the shutdown signal and safely close the server.
		<-shutdown

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.server.Shutdown(ctx); err != nil {
			log.Fatalf("fatal error shutting down server: %v", err)
		}
	}()

	log.Printf("web server is listening on %s", s.server.Addr)
	err := s.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Fatalf("fatal error with server: %v", err)
	}
}

func newRender() *render.Render {
	return render.New(render.Options{
		Directory: "templates",
		Layout:    "layout",
		FileSystem: &render.EmbedFileSystem{
			FS: templates,
		},
		Funcs: []template.FuncMap{
			{
				"currency":      currencyFormatter,
				"currency0":     wholeCurrencyFormatter,
				"date":          dateFormatter,
				"seasonLabel":   seasonLabelFormatter,
				"sortLink":      sortLink,
				"sortIndicator": sortIndicator,
				"pageLink":      pageLink,
				"barLink":       barLink,
				"barStyle":      barStyle,
				"swatch":        swatchStyle,
				"add1":          func(i int) int { return i + 1 },
			},
		},
	})
}

func currencyFormatter(d decimal.Decimal) string {
	return view.FormatCurrency(d, 2)
}

func wholeCurrencyFormatter(d decimal.Decimal) string {
	return view.FormatCurrency(d, 0)
}

func dateFormatter(t time.Time) string {
	if t.IsZero() {
		return "Never"
	}
	return t.Format("Jan 2, 2006 3:04 PM")
}

func seasonLabelFormatter(s model.Season) string {
	return s.Label()
}

// selectionQuery encodes sel using the query parameters the payout screens read.
func selectionQuery(sel model.ViewSelection) url.Values {
	q := view.DetailsQuery(sel.Season, sel.Username)
	if sel.SortField != "" {
		q.Set(paramSort, string(sel.SortField))
	}
	if sel.SortDirection != "" {
		q.Set(paramDirection, string(sel.SortDirection))
	}
	if sel.Page > 1 {
		q.Set(paramPage, strconv.Itoa(sel.Page))
	}
	return q
}

func selectionHref(sel model.ViewSelection) string {
	return "?" + selectionQuery(sel).Encode()
}

// sortLink is the link behind a column header, it applies a click on the column.
func sortLink(sel model.ViewSelection, field model.SortField) string {
	sel.SortField, sel.SortDirection = view.NextSort(sel.SortField, sel.SortDirection, field)
	return selectionHref(sel)
}

func sortIndicator(sel model.ViewSelection, field model.SortField) string {
	if sel.SortField != field {
		return ""
	}
	if sel.SortDirection == model.SortAsc {
		return "▲"
	}
	return "▼"
}

func pageLink(sel model.ViewSelection, page int) string {
	sel.Page = page
	return selectionHref(sel)
}

// barLink filters the table to the user of a chart bar.
func barLink(sel model.ViewSelection, username string) string {
	sel.Username = username
	sel.Page = 1
	return selectionHref(sel)
}

// barStyle sizes one segment of a stacked bar. Colors only come from the palette.
func barStyle(chart view.Chart, s view.Series, i int) template.CSS {
	if i < 0 || i >= len(s.Values) {
		return template.CSS("display: none")
	}
	return template.CSS(fmt.Sprintf("width: %.2f%%; background-color: %s", chart.Percent(s.Values[i]), s.Color))
}

func swatchStyle(color string) template.CSS {
	return template.CSS("background-color: " + color)
}
