package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/strdex/internal/domain/analysis"
	"github.com/kailas-cloud/strdex/internal/domain/nlquery"
	recordrepo "github.com/kailas-cloud/strdex/internal/repository/record"
	healthuc "github.com/kailas-cloud/strdex/internal/usecase/health"
	recorduc "github.com/kailas-cloud/strdex/internal/usecase/record"
)

type testAPI struct {
	t      *testing.T
	router http.Handler
}

func newTestAPI(t *testing.T, opts ...func(*recorduc.Service, *Server)) *testAPI {
	t.Helper()
	repo := recordrepo.New()
	records := recorduc.New(repo, analysis.New(nil), nlquery.NewParser())
	srv := NewServer(records, healthuc.New(repo), zap.NewNop())
	for _, opt := range opts {
		opt(records, srv)
	}

	r := chi.NewRouter()
	srv.Register(r)
	return &testAPI{t: t, router: r}
}

func (a *testAPI) do(method, target, body string) *httptest.ResponseRecorder {
	a.t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, http.NoBody)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)
	return rr
}

func (a *testAPI) create(values ...string) {
	a.t.Helper()
	for _, v := range values {
		b, _ := json.Marshal(map[string]string{"value": v})
		if rr := a.do("POST", "/strings", string(b)); rr.Code != http.StatusCreated {
			a.t.Fatalf("create %q: got %d: %s", v, rr.Code, rr.Body.String())
		}
	}
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rr.Body).Decode(&v); err != nil {
		t.Fatalf("decode %T: %v", v, err)
	}
	return v
}

func values(data []StringResponse) []string {
	out := make([]string, len(data))
	for i, d := range data {
		out[i] = d.Value
	}
	return out
}

func TestCreateString_201(t *testing.T) {
	api := newTestAPI(t)

	rr := api.do("POST", "/strings", `{"value":"racecar"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("got %d, want %d: %s", rr.Code, http.StatusCreated, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	resp := decode[StringResponse](t, rr)
	wantID := analysis.SHA256.Hash("racecar")
	if resp.ID != wantID || resp.Properties.SHA256Hash != wantID {
		t.Errorf("id = %q, hash = %q, want %q", resp.ID, resp.Properties.SHA256Hash, wantID)
	}
	p := resp.Properties
	if p.Length != 7 || !p.IsPalindrome || p.UniqueCharacters != 4 || p.WordCount != 1 {
		t.Errorf("unexpected properties: %+v", p)
	}
	if p.CharacterFrequencyMap["r"] != 2 || p.CharacterFrequencyMap["e"] != 1 {
		t.Errorf("character_frequency_map = %v", p.CharacterFrequencyMap)
	}
	if resp.CreatedAt.IsZero() {
		t.Error("created_at must be set")
	}
}

func TestCreateString_Duplicate_409(t *testing.T) {
	api := newTestAPI(t)
	api.create("hello")

	rr := api.do("POST", "/strings", `{"value":"hello"}`)
	if rr.Code != http.StatusConflict {
		t.Fatalf("got %d, want %d", rr.Code, http.StatusConflict)
	}
	if resp := decode[ErrorResponse](t, rr); resp.Code != ErrorCodeStringAlreadyExists {
		t.Errorf("code = %s", resp.Code)
	}
}

func TestCreateString_BadBodies(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
		code ErrorCode
	}{
		{"empty body", "", http.StatusBadRequest, ErrorCodeBadRequest},
		{"malformed json", `{"value":`, http.StatusBadRequest, ErrorCodeBadRequest},
		{"missing value", `{}`, http.StatusBadRequest, ErrorCodeBadRequest},
		{"null value", `{"value":null}`, http.StatusBadRequest, ErrorCodeBadRequest},
		{"empty value", `{"value":""}`, http.StatusBadRequest, ErrorCodeValidationFailed},
		{"number value", `{"value":123}`, http.StatusUnprocessableEntity, ErrorCodeUnprocessable},
		{"array value", `{"value":["a"]}`, http.StatusUnprocessableEntity, ErrorCodeUnprocessable},
		{"bool value", `{"value":true}`, http.StatusUnprocessableEntity, ErrorCodeUnprocessable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t)
			rr := api.do("POST", "/strings", tt.body)
			if rr.Code != tt.want {
				t.Fatalf("got %d, want %d: %s", rr.Code, tt.want, rr.Body.String())
			}
			if resp := decode[ErrorResponse](t, rr); resp.Code != tt.code {
				t.Errorf("code = %s, want %s", resp.Code, tt.code)
			}
		})
	}
}

func TestCreateString_BodyTooLarge_413(t *testing.T) {
	api := newTestAPI(t, func(_ *recorduc.Service, s *Server) { s.WithMaxBodyBytes(16) })

	rr := api.do("POST", "/strings", `{"value":"`+strings.Repeat("x", 64)+`"}`)
	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("got %d, want %d", rr.Code, http.StatusRequestEntityTooLarge)
	}
}

func TestCreateString_ValueTooLarge_400(t *testing.T) {
	api := newTestAPI(t, func(rs *recorduc.Service, _ *Server) { rs.WithMaxValueBytes(4) })

	rr := api.do("POST", "/strings", `{"value":"abcdef"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want %d", rr.Code, http.StatusBadRequest)
	}
	if resp := decode[ErrorResponse](t, rr); resp.Code != ErrorCodeValidationFailed {
		t.Errorf("code = %s", resp.Code)
	}
}

func TestGetString(t *testing.T) {
	api := newTestAPI(t)
	api.create("racecar")

	rr := api.do("GET", "/strings/racecar", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d, want %d", rr.Code, http.StatusOK)
	}
	if resp := decode[StringResponse](t, rr); resp.Value != "racecar" {
		t.Errorf("value = %q", resp.Value)
	}

	rr = api.do("GET", "/strings/Racecar", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("case-different lookup: got %d, want %d", rr.Code, http.StatusNotFound)
	}
	resp := decode[ErrorResponse](t, rr)
	if resp.Code != ErrorCodeStringNotFound {
		t.Errorf("code = %s", resp.Code)
	}
	if resp.Message != "string does not exist" {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestGetString_EscapedValues(t *testing.T) {
	api := newTestAPI(t)
	api.create("hello world", "a/b", "100%")

	for value, target := range map[string]string{
		"hello world": "/strings/hello%20world",
		"a/b":         "/strings/a%2Fb",
		"100%":        "/strings/100%25",
	} {
		rr := api.do("GET", target, "")
		if rr.Code != http.StatusOK {
			t.Errorf("GET %s: got %d, want %d", target, rr.Code, http.StatusOK)
			continue
		}
		if resp := decode[StringResponse](t, rr); resp.Value != value {
			t.Errorf("GET %s: value = %q, want %q", target, resp.Value, value)
		}
	}
}

func TestDeleteString(t *testing.T) {
	api := newTestAPI(t)
	api.create("hello")

	if rr := api.do("DELETE", "/strings/hello", ""); rr.Code != http.StatusNoContent {
		t.Fatalf("delete: got %d, want %d", rr.Code, http.StatusNoContent)
	}
	if rr := api.do("GET", "/strings/hello", ""); rr.Code != http.StatusNotFound {
		t.Errorf("get after delete: got %d, want %d", rr.Code, http.StatusNotFound)
	}
	if rr := api.do("DELETE", "/strings/hello", ""); rr.Code != http.StatusNotFound {
		t.Errorf("second delete: got %d, want %d", rr.Code, http.StatusNotFound)
	}

	// Deleted values can be analyzed again.
	api.create("hello")
}

func TestListStrings_Filters(t *testing.T) {
	api := newTestAPI(t)
	api.create("racecar", "hello world", "level", "zebra", "step on no pets")

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"racecar", "hello world", "level", "zebra", "step on no pets"}},
		{"is_palindrome=true", []string{"racecar", "level", "step on no pets"}},
		{"is_palindrome=true&word_count=1", []string{"racecar", "level"}},
		{"is_palindrome=false", []string{"hello world", "zebra"}},
		{"min_length=6&max_length=11", []string{"racecar", "hello world"}},
		{"contains_character=Z", []string{"zebra"}},
		{"word_count=4", []string{"step on no pets"}},
		{"min_length=100", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rr := api.do("GET", "/strings?"+tt.query, "")
			if rr.Code != http.StatusOK {
				t.Fatalf("got %d: %s", rr.Code, rr.Body.String())
			}
			resp := decode[StringListResponse](t, rr)
			got := values(resp.Data)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("data = %q, want %q", got, tt.want)
			}
			if resp.Count != len(tt.want) {
				t.Errorf("count = %d, want %d", resp.Count, len(tt.want))
			}
		})
	}
}

func TestListStrings_FiltersApplied(t *testing.T) {
	api := newTestAPI(t)

	rr := api.do("GET", "/strings?is_palindrome=true&min_length=3", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d", rr.Code)
	}

	var raw struct {
		FiltersApplied map[string]any `json:"filters_applied"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(raw.FiltersApplied) != 2 {
		t.Errorf("filters_applied = %v, want exactly is_palindrome and min_length", raw.FiltersApplied)
	}
	if raw.FiltersApplied["is_palindrome"] != true || raw.FiltersApplied["min_length"] != float64(3) {
		t.Errorf("filters_applied = %v", raw.FiltersApplied)
	}
}

func TestListStrings_InvalidParams_400(t *testing.T) {
	api := newTestAPI(t)

	for _, q := range []string{
		"is_palindrome=yes",
		"min_length=abc",
		"max_length=1.5",
		"word_count=-1",
		"min_length=-3",
		"contains_character=ab",
		"min_length=10&max_length=2",
	} {
		rr := api.do("GET", "/strings?"+q, "")
		if rr.Code != http.StatusBadRequest {
			t.Errorf("%s: got %d, want %d", q, rr.Code, http.StatusBadRequest)
		}
	}
}

func nlTarget(query string) string {
	return "/strings/filter-by-natural-language?query=" + url.QueryEscape(query)
}

func TestFilterByNaturalLanguage(t *testing.T) {
	api := newTestAPI(t)
	api.create("racecar", "hello world", "hello", "step on no pets")

	rr := api.do("GET", nlTarget("all single word palindromic strings"), "")
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d: %s", rr.Code, rr.Body.String())
	}

	resp := decode[NaturalLanguageResponse](t, rr)
	if got := values(resp.Data); len(got) != 1 || got[0] != "racecar" {
		t.Errorf("data = %q, want [racecar]", got)
	}
	if resp.Count != 1 {
		t.Errorf("count = %d", resp.Count)
	}

	iq := resp.InterpretedQuery
	if iq.Original != "all single word palindromic strings" {
		t.Errorf("original = %q", iq.Original)
	}
	pf := iq.ParsedFilters
	if pf.WordCount == nil || *pf.WordCount != 1 || pf.IsPalindrome == nil || !*pf.IsPalindrome {
		t.Errorf("parsed_filters = %+v", pf)
	}
	if pf.MinLength != nil || pf.MaxLength != nil || pf.ContainsCharacter != nil {
		t.Errorf("unexpected extra filters: %+v", pf)
	}
}

func TestFilterByNaturalLanguage_LongerThan(t *testing.T) {
	api := newTestAPI(t)
	api.create("short", "exactly ten", "a considerably longer string")

	rr := api.do("GET", nlTarget("strings longer than 10 characters"), "")
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d", rr.Code)
	}
	resp := decode[NaturalLanguageResponse](t, rr)
	if resp.InterpretedQuery.ParsedFilters.MinLength == nil || *resp.InterpretedQuery.ParsedFilters.MinLength != 11 {
		t.Errorf("min_length = %v, want 11", resp.InterpretedQuery.ParsedFilters.MinLength)
	}
	if got := values(resp.Data); len(got) != 2 || got[0] != "exactly ten" {
		t.Errorf("data = %q", got)
	}
}

func TestFilterByNaturalLanguage_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		want   int
		code   ErrorCode
	}{
		{"missing query", "/strings/filter-by-natural-language", http.StatusBadRequest, ErrorCodeBadRequest},
		{"empty query", nlTarget(""), http.StatusBadRequest, ""},
		{"blank query", nlTarget("   "), http.StatusBadRequest, ErrorCodeValidationFailed},
		{
			"conflicting bounds",
			nlTarget("strings longer than 10 characters and shorter than 5 characters"),
			http.StatusUnprocessableEntity, ErrorCodeConflictingFilters,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t)
			rr := api.do("GET", tt.target, "")
			if rr.Code != tt.want {
				t.Fatalf("got %d, want %d: %s", rr.Code, tt.want, rr.Body.String())
			}
			if resp := decode[ErrorResponse](t, rr); tt.code != "" && resp.Code != tt.code {
				t.Errorf("code = %s, want %s", resp.Code, tt.code)
			}
		})
	}
}

func TestFilterByNaturalLanguage_Unrecognized(t *testing.T) {
	t.Run("match all by default", func(t *testing.T) {
		api := newTestAPI(t)
		api.create("one", "two")

		rr := api.do("GET", nlTarget("show me something nice"), "")
		if rr.Code != http.StatusOK {
			t.Fatalf("got %d", rr.Code)
		}
		resp := decode[NaturalLanguageResponse](t, rr)
		if resp.Count != 2 {
			t.Errorf("count = %d, want 2", resp.Count)
		}
		if len(resp.InterpretedQuery.Recognized) != 0 {
			t.Errorf("recognized = %q", resp.InterpretedQuery.Recognized)
		}
	})

	t.Run("rejected when configured", func(t *testing.T) {
		api := newTestAPI(t, func(rs *recorduc.Service, _ *Server) { rs.WithRejectUnrecognized(true) })

		rr := api.do("GET", nlTarget("show me something nice"), "")
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("got %d, want %d", rr.Code, http.StatusBadRequest)
		}
		if resp := decode[ErrorResponse](t, rr); resp.Code != ErrorCodeUnrecognizedQuery {
			t.Errorf("code = %s", resp.Code)
		}
	})
}

type failingStore struct{}

func (failingStore) Ping(context.Context) error { return errors.New("down") }
func (failingStore) Count(context.Context) (int, error) { return 0, nil }

func TestHealthCheck(t *testing.T) {
	api := newTestAPI(t)
	api.create("a", "b")

	rr := api.do("GET", "/health", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d", rr.Code)
	}
	resp := decode[HealthResponse](t, rr)
	if resp.Status != "ok" || resp.Checks["store"] != "ok" || resp.Records != 2 {
		t.Errorf("health = %+v", resp)
	}
}

func TestHealthCheck_Unhealthy_503(t *testing.T) {
	repo := recordrepo.New()
	srv := NewServer(recorduc.New(repo, analysis.New(nil), nlquery.NewParser()),
		healthuc.New(failingStore{}), zap.NewNop())
	r := chi.NewRouter()
	srv.Register(r)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/health", http.NoBody))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("got %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
}

func TestLivenessAndRoot(t *testing.T) {
	api := newTestAPI(t)

	rr := api.do("GET", "/kaithhealth", "")
	if rr.Code != http.StatusOK || rr.Body.String() != "OK" {
		t.Errorf("/kaithhealth: %d %q", rr.Code, rr.Body.String())
	}

	rr = api.do("GET", "/", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("/: got %d", rr.Code)
	}
	if resp := decode[map[string]string](t, rr); resp["service"] != "strdex" {
		t.Errorf("/: %v", resp)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	api := newTestAPI(t)

	rr := api.do("GET", "/metrics", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "go_goroutines") {
		t.Error("expected default Go collector output")
	}
}
