package reportserver

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"quizharvest/internal/aggregate"
	"quizharvest/internal/question"
	"quizharvest/internal/report"
)

// TestSummary is one entry of the test listing.
type TestSummary struct {
	Name      string `json:"name"`
	Questions int    `json:"questions"`
}

// TestDetail is one test with its questions.
type TestDetail struct {
	Name      string              `json:"name"`
	Questions []question.Question `json:"questions"`
}

// NewHandler builds the router for the study sheet and the JSON API.
func NewHandler(results *aggregate.Results, title string) http.Handler {
	if title == "" {
		title = "quizharvest"
	}
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Method(http.MethodGet, "/", templ.Handler(report.StudySheet(title, results)))
	r.Route("/api/tests", func(r chi.Router) {
		r.Get("/", listTests(results))
		r.Get("/{name}", getTest(results))
	})
	return r
}

func listTests(results *aggregate.Results) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		out := make([]TestSummary, 0, results.Len())
		for _, entry := range results.Entries() {
			out = append(out, TestSummary{Name: entry.Name, Questions: len(entry.Questions)})
		}
		respondJSON(w, http.StatusOK, out)
	}
}

func getTest(results *aggregate.Results) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, err := url.PathUnescape(chi.URLParam(r, "name"))
		if err != nil {
			respondJSON(w, http.StatusBadRequest, errResp{Error: "invalid test name"})
			return
		}
		questions, ok := results.Questions(name)
		if !ok {
			respondJSON(w, http.StatusNotFound, errResp{Error: "test not found"})
			return
		}
		respondJSON(w, http.StatusOK, TestDetail{Name: name, Questions: questions})
	}
}

type errResp struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(v)
}
