package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cognicore/propdoc/pkg/propdoc/internalerr"
)

func TestHTMLToText(t *testing.T) {
	in := `<html><head><style>body{color:red}</style><script>alert(1)</script></head>
<body><h1>RFP 24-101</h1><p>Due date: 03/15/2025</p></body></html>`
	got := HTMLToText(in)

	if !strings.Contains(got, "RFP 24-101") || !strings.Contains(got, "Due date: 03/15/2025") {
		t.Errorf("text lost: %q", got)
	}
	if strings.Contains(got, "alert") || strings.Contains(got, "color:red") {
		t.Errorf("script/style leaked: %q", got)
	}
}

func TestFetchLink(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>Project Name: Test Project</body></html>"))
	}))
	defer srv.Close()

	f := New(Options{Client: srv.Client(), RPS: 1000})
	got, err := f.FetchLink(context.Background(), srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "Project Name: Test Project") {
		t.Errorf("got %q", got)
	}
}

func TestFetchLinkBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := New(Options{Client: srv.Client(), RPS: 1000})
	if _, err := f.FetchLink(context.Background(), srv.URL); !errors.Is(err, internalerr.ErrExtraction) {
		t.Errorf("err = %v, want ErrExtraction", err)
	}
}

func TestFetchFileUnsupportedType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("binary"))
	}))
	defer srv.Close()

	f := New(Options{Client: srv.Client(), RPS: 1000})
	_, err := f.FetchFile(context.Background(), srv.URL, "image/png")
	if !errors.Is(err, internalerr.ErrExtraction) {
		t.Errorf("err = %v, want ErrExtraction", err)
	}
}

func TestFetchFileNeedsExtractor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("%PDF-1.7"))
	}))
	defer srv.Close()

	f := New(Options{Client: srv.Client(), RPS: 1000})
	_, err := f.FetchFile(context.Background(), srv.URL, "application/pdf")
	if !errors.Is(err, internalerr.ErrExtraction) {
		t.Errorf("err = %v, want ErrExtraction", err)
	}
}

type stubExtractor struct{ text string }

func (s stubExtractor) Extract(_ []byte, _ string) (string, error) {
	return s.text, nil
}

func TestFetchFileWithExtractor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("%PDF-1.7"))
	}))
	defer srv.Close()

	f := New(Options{Client: srv.Client(), Extractor: stubExtractor{text: "extracted text"}, RPS: 1000})
	got, err := f.FetchFile(context.Background(), srv.URL, "application/pdf")
	if err != nil {
		t.Fatal(err)
	}
	if got != "extracted text" {
		t.Errorf("got %q", got)
	}
}

func TestFetchFileWordType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("PK"))
	}))
	defer srv.Close()

	f := New(Options{Client: srv.Client(), Extractor: stubExtractor{text: "docx text"}, RPS: 1000})
	got, err := f.FetchFile(context.Background(), srv.URL,
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	if err != nil {
		t.Fatal(err)
	}
	if got != "docx text" {
		t.Errorf("got %q", got)
	}
}
