package websearch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const resultsPage = `
<html><body>
<div class="result">
  <h2><a class="result__a" href="https://example.com/1">SomeHack 2026 | Devfolio</a></h2>
  <a class="result__snippet">Registration closes on Apr 18, 2026. Join now.</a>
</div>
<div class="result">
  <h2><a class="result__a" href="https://example.com/2">SomeHack on Devpost</a></h2>
  <a class="result__snippet">Build something great this spring.</a>
</div>
<div class="result">
  <h2><a class="result__a" href="https://example.com/3">SomeHack blog post</a></h2>
  <a class="result__snippet">Recap of last year.</a>
</div>
<div class="result">
  <h2><a class="result__a" href="https://example.com/4">Fourth result</a></h2>
  <a class="result__snippet">Should be cut off.</a>
</div>
</body></html>`

func TestParseResults(t *testing.T) {
	results, err := parseResults(strings.NewReader(resultsPage), 3)
	if err != nil {
		t.Fatalf("parseResults failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results (bounded), got %d", len(results))
	}
	if results[0].Title != "SomeHack 2026 | Devfolio" {
		t.Errorf("unexpected first title: %q", results[0].Title)
	}
	if !strings.Contains(results[0].Snippet, "Apr 18, 2026") {
		t.Errorf("first snippet lost its date: %q", results[0].Snippet)
	}
}

func TestParseResultsEmptyPage(t *testing.T) {
	results, err := parseResults(strings.NewReader("<html><body></body></html>"), 3)
	if err != nil {
		t.Fatalf("parseResults failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestSearchAgainstStubServer(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Write([]byte(resultsPage))
	}))
	defer srv.Close()

	c := New()
	c.endpoint = srv.URL + "/"

	results, err := c.Search(context.Background(), "SomeHack hackathon registration deadline 2026", 3)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("expected 3 results, got %d", len(results))
	}
	if gotQuery != "SomeHack hackathon registration deadline 2026" {
		t.Errorf("query not passed through, got %q", gotQuery)
	}
}

func TestSearchPermanentFailure(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := New()
	c.endpoint = srv.URL + "/"

	if _, err := c.Search(context.Background(), "anything", 3); err == nil {
		t.Fatal("expected error on 403")
	}
	if calls != 1 {
		t.Errorf("4xx should not be retried, got %d calls", calls)
	}
}

func TestSearchRetriesServerErrors(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(resultsPage))
	}))
	defer srv.Close()

	c := New()
	c.endpoint = srv.URL + "/"

	results, err := c.Search(context.Background(), "anything", 3)
	if err != nil {
		t.Fatalf("Search failed after retry: %v", err)
	}
	if len(results) == 0 {
		t.Error("expected results after retry")
	}
	if calls != 2 {
		t.Errorf("expected 2 calls (1 retry), got %d", calls)
	}
}
