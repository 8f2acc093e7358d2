package testutils

import (
	"embed"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/mww/sidepools/model"
	"github.com/shopspring/decimal"
)

const LeagueID = "978439391255322624"

//go:embed apidata
var apidata embed.FS

// FakeAPIServer serves the side pools backend API from the files in apidata.
// Every request URI is recorded so tests can check what was asked for.
type FakeAPIServer struct {
	s *httptest.Server

	mu       sync.Mutex
	requests []string
	failing  map[string]int
}

func NewFakeAPIServer() *FakeAPIServer {
	f := &FakeAPIServer{failing: make(map[string]int)}

	r := chi.NewRouter()
	r.Use(f.record)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/leagues/seasons", serveAPIFileHandler("leagues_seasons.json"))
		r.Get("/payouts/seasons", serveAPIFileHandler("payouts_seasons.json"))
		r.Get("/payouts/", payoutsHandler)
		r.Get("/payouts/{season}", payoutsHandler)
		r.Get("/payoutdetails", payoutDetailsHandler)
		r.Get("/users", serveAPIFileHandler("users.json"))
		r.Get("/pools", serveAPIFileHandler("pools.json"))
		r.Get("/pools/leaderboard", leaderboardHandler)
	})

	f.s = httptest.NewServer(r)
	return f
}

func (f *FakeAPIServer) Close() {
	f.s.Close()
}

func (f *FakeAPIServer) URL() string {
	return f.s.URL
}

// Requests returns the request URIs received so far, in order.
func (f *FakeAPIServer) Requests() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.requests))
	copy(out, f.requests)
	return out
}

// Fail makes every request for path return status until cleared with a status of 0.
func (f *FakeAPIServer) Fail(path string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if status == 0 {
		delete(f.failing, path)
		return
	}
	f.failing[path] = status
}

func (f *FakeAPIServer) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests = append(f.requests, r.URL.RequestURI())
		status, failing := f.failing[r.URL.Path]
		f.mu.Unlock()

		if failing {
			w.WriteHeader(status)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func serveAPIFileHandler(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		serveAPIFile(w, name)
	}
}

func leaderboardHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("league_id") != LeagueID {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("[]"))
		return
	}

	name := fmt.Sprintf("leaderboard_%s.json", r.URL.Query().Get("pool_id"))
	if _, err := apidata.Open("apidata/" + name); err != nil {
		// The real backend answers unknown pools with a 500 and an error message
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "'NoneType' object has no attribute 'get_leaderboard'"}`))
		return
	}
	serveAPIFile(w, name)
}

func payoutDetailsHandler(w http.ResponseWriter, r *http.Request) {
	season := model.Season(r.URL.Query().Get("season"))
	username := r.URL.Query().Get("username")

	records, err := PayoutRecords()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	result := make([]model.PayoutRecord, 0, len(records))
	for _, p := range records {
		if season != model.SeasonAllTime && p.Season != season {
			continue
		}
		if username != "" && p.Username != username {
			continue
		}
		result = append(result, p)
	}
	writeJSON(w, result)
}

// Matches the backend, which groups by username and sums the amounts.
func payoutsHandler(w http.ResponseWriter, r *http.Request) {
	season := model.Season(chi.URLParam(r, "season"))

	records, err := PayoutRecords()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	users, err := Users()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	result := make([]model.UserPayout, 0)
	index := make(map[string]int)
	for _, p := range records {
		if season != model.SeasonAllTime && p.Season != season {
			continue
		}
		i, found := index[p.Username]
		if !found {
			up := model.UserPayout{Username: p.Username, Name: p.Name, Amount: decimal.Zero}
			for _, u := range users {
				if u.Username == p.Username {
					up.Avatar = u.Avatar
				}
			}
			result = append(result, up)
			i = len(result) - 1
			index[p.Username] = i
		}
		result[i].Amount = result[i].Amount.Add(p.Amount)
	}
	writeJSON(w, result)
}

// PayoutRecords returns every payout record the fake server knows about.
func PayoutRecords() ([]model.PayoutRecord, error) {
	var records []model.PayoutRecord
	if err := readAPIFile("payoutdetails.json", &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Users returns every user the fake server knows about.
func Users() ([]model.UserSummary, error) {
	var users []model.UserSummary
	if err := readAPIFile("users.json", &users); err != nil {
		return nil, err
	}
	return users, nil
}

func readAPIFile(name string, v any) error {
	b, err := apidata.ReadFile(fmt.Sprintf("apidata/%s", name))
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

func writeJSON(w http.ResponseWriter, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Printf("error encoding fake api response: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

func serveAPIFile(w http.ResponseWriter, name string) {
	b, err := apidata.ReadFile(fmt.Sprintf("apidata/%s", name))
	if err != nil {
		log.Printf("error reading apidata/%s: %v", name, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
