package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cognicore/propdoc/internal/fetch"
	"github.com/cognicore/propdoc/pkg/propdoc"
	"github.com/cognicore/propdoc/pkg/propdoc/store/memstore"
)

func newTestServer(t *testing.T, tokens []string) *http.ServeMux {
	t.Helper()
	srv := NewServer(Options{
		Analyzer:   propdoc.New(propdoc.Options{}),
		Store:      memstore.New(),
		AuthTokens: tokens,
	})
	mux := http.NewServeMux()
	srv.RegisterRoutes(mux)
	return mux
}

func postJSON(t *testing.T, mux *http.ServeMux, path string, body map[string]any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestAnalyzeText(t *testing.T) {
	mux := newTestServer(t, nil)
	w := postJSON(t, mux, "/analyze", map[string]any{
		"text": "Project Name: Riverside Bridge Repair\nDue date: 03/15/2025",
	}, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Result *propdoc.AnalysisResult `json:"result"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Result == nil || resp.Result.Fields.ProjectName == nil {
		t.Fatalf("body = %s", w.Body.String())
	}
	if *resp.Result.Fields.ProjectName != "Riverside Bridge Repair" {
		t.Errorf("projectName = %q", *resp.Result.Fields.ProjectName)
	}
}

func TestAnalyzeEmptyTextIsOK(t *testing.T) {
	mux := newTestServer(t, nil)
	w := postJSON(t, mux, "/analyze", map[string]any{"text": ""}, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("empty text should degrade, not fail: %d %s", w.Code, w.Body.String())
	}
}

func TestAuthRequired(t *testing.T) {
	mux := newTestServer(t, []string{"secret"})

	w := postJSON(t, mux, "/analyze", map[string]any{"text": "x"}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("missing token: status = %d", w.Code)
	}

	w = postJSON(t, mux, "/analyze", map[string]any{"text": "x"},
		map[string]string{"Authorization": "Bearer wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unknown token: status = %d", w.Code)
	}

	w = postJSON(t, mux, "/analyze", map[string]any{"text": "x"},
		map[string]string{"Authorization": "Bearer secret"})
	if w.Code != http.StatusOK {
		t.Errorf("valid token: status = %d", w.Code)
	}
}

func TestPersistAndFetchRecord(t *testing.T) {
	mux := newTestServer(t, nil)
	w := postJSON(t, mux, "/analyze", map[string]any{
		"text":    "Project Name: Test\nBudget: $5,000",
		"user_id": "user-9",
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.ID == "" {
		t.Fatal("expected a record id")
	}

	req := httptest.NewRequest(http.MethodGet, "/analyses/"+resp.ID, nil)
	get := httptest.NewRecorder()
	mux.ServeHTTP(get, req)
	if get.Code != http.StatusOK {
		t.Fatalf("get status = %d", get.Code)
	}
	if !strings.Contains(get.Body.String(), "user-9") {
		t.Errorf("record body = %s", get.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/users/user-9/analyses", nil)
	list := httptest.NewRecorder()
	mux.ServeHTTP(list, req)
	if list.Code != http.StatusOK || !strings.Contains(list.Body.String(), resp.ID) {
		t.Errorf("list = %d %s", list.Code, list.Body.String())
	}
}

func TestGetMissingRecord(t *testing.T) {
	mux := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/analyses/does-not-exist", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d", w.Code)
	}
}

func TestMalformedBody(t *testing.T) {
	mux := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d", w.Code)
	}
}

func TestLinkFlowReturnsFieldsShape(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>Project Name: Linked Project</p></body></html>"))
	}))
	defer page.Close()

	srv := NewServer(Options{
		Analyzer: propdoc.New(propdoc.Options{}),
		Store:    memstore.New(),
		Fetcher:  fetch.New(fetch.Options{Client: page.Client(), RPS: 1000}),
	})
	mux := http.NewServeMux()
	srv.RegisterRoutes(mux)

	w := postJSON(t, mux, "/analyze", map[string]any{
		"link":    page.URL,
		"user_id": "user-1",
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		ID     string          `json:"id"`
		Fields json.RawMessage `json:"fields"`
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Fields) == 0 {
		t.Error("link flow should return the fields shape")
	}
	if len(resp.Result) != 0 {
		t.Error("link flow should not return the full result")
	}
	if resp.ID == "" {
		t.Error("link flow should persist for the user")
	}
	if !strings.Contains(string(resp.Fields), "Linked Project") {
		t.Errorf("fields = %s", resp.Fields)
	}
}

func TestLinkFlowExtractionFailure(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer down.Close()

	srv := NewServer(Options{
		Analyzer: propdoc.New(propdoc.Options{}),
		Fetcher:  fetch.New(fetch.Options{Client: down.Client(), RPS: 1000}),
	})
	mux := http.NewServeMux()
	srv.RegisterRoutes(mux)

	w := postJSON(t, mux, "/analyze", map[string]any{"link": down.URL}, nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d: %s", w.Code, w.Body.String())
	}
}
