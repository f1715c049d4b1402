package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ai-editor-be/internal/pkg/logger"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

var _ logger.ILogger = nopLogger{}

func TestFetchAllOrderAndFailures(t *testing.T) {
	okSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("plain content"))
	}))
	defer okSrv.Close()

	errSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer errSrv.Close()

	htmlSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<html><head><style>p{color:red}</style></head><body><p>visible   text</p><script>var x=1;</script></body></html>`))
	}))
	defer htmlSrv.Close()

	f := NewFetcher(2, nopLogger{})
	results := f.FetchAll(context.Background(), []string{okSrv.URL, errSrv.URL, htmlSrv.URL})

	if len(results) != 3 {
		t.Fatalf("result count = %d, want 3", len(results))
	}
	if results[0].Text != "plain content" {
		t.Errorf("results[0].Text = %q, want plain content", results[0].Text)
	}
	if results[1].Text != "" {
		t.Errorf("results[1].Text = %q, want empty for failed fetch", results[1].Text)
	}
	if results[2].Text != "visible text" {
		t.Errorf("results[2].Text = %q, want scripts and styles stripped", results[2].Text)
	}
	for i, url := range []string{okSrv.URL, errSrv.URL, htmlSrv.URL} {
		if results[i].URL != url {
			t.Errorf("results[%d].URL = %q, want %q (input order preserved)", i, results[i].URL, url)
		}
	}
}

func TestFetchAllUnreachable(t *testing.T) {
	f := NewFetcher(1, nopLogger{})

	results := f.FetchAll(context.Background(), []string{"http://127.0.0.1:1/nothing"})
	if len(results) != 1 || results[0].Text != "" {
		t.Errorf("results = %+v, want one empty result", results)
	}
}

func TestHtmlToText(t *testing.T) {
	got, err := htmlToText("<html><body><h1>Title</h1>\n<p>one  two</p></body></html>")
	if err != nil {
		t.Fatalf("htmlToText: %v", err)
	}
	if !strings.Contains(got, "Title") || !strings.Contains(got, "one two") {
		t.Errorf("htmlToText = %q, want collapsed visible text", got)
	}
}
