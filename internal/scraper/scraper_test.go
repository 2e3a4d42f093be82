package scraper

import (
	"context"
	"crypto/sha256"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/leadprep/leadprep/internal/leadprep"
	memorysnapshot "github.com/leadprep/leadprep/internal/snapshot/memory"
)

func testScraper(t *testing.T, cfg Config, snapshots leadprep.SnapshotStore) *Scraper {
	t.Helper()
	if cfg.UserAgent == "" {
		cfg.UserAgent = "test-agent"
	}
	if cfg.FetchTimeout == 0 {
		cfg.FetchTimeout = 2 * time.Second
	}
	if cfg.Budget == 0 {
		cfg.Budget = 10 * time.Second
	}
	s, err := New(cfg, snapshots, zap.NewNop())
	require.NoError(t, err)
	return s
}

// serverDomain strips the scheme so the scraper's candidate builder can
// re-derive http URLs against the fixture server.
func serverDomain(server *httptest.Server) string {
	return strings.TrimPrefix(server.URL, "http://")
}

func TestScrape_ExtractsFromLeadershipPage(t *testing.T) {
	t.Parallel()

	page := `<html><body>
		<h1>Leadership Team</h1>
		<div class="executive"><h3>Jane Doe</h3><p class="title">Chief Executive Officer</p></div>
		<div class="executive"><h3>John Roe</h3><p class="title">CFO</p></div>
	</body></html>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/about" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, page)
	}))
	defer server.Close()

	s := testScraper(t, Config{CandidatePaths: []string{"/about"}}, nil)
	leaders := s.Scrape(context.Background(), serverDomain(server))

	require.Len(t, leaders, 2)
	require.Equal(t, "Jane Doe", leaders[0].Name)
	require.Equal(t, "Chief Executive Officer", leaders[0].Title)
	require.Equal(t, "John Roe", leaders[1].Name)
	require.Contains(t, leaders[0].SourceURL, "/about")
}

func TestScrape_DeduplicatesRepeatedMentions(t *testing.T) {
	t.Parallel()

	page := `<html><body>
		<h1>Our Leadership</h1>
		<div class="executive"><h3>Tim Cook</h3><p class="title">CEO</p></div>
		<p>Tim Cook, CEO of the company, spoke at the event.</p>
	</body></html>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, page)
	}))
	defer server.Close()

	s := testScraper(t, Config{CandidatePaths: []string{""}}, nil)
	leaders := s.Scrape(context.Background(), serverDomain(server))

	require.Len(t, leaders, 1)
	require.Equal(t, "Tim Cook", leaders[0].Name)
}

func TestScrape_CapsResultsInDocumentOrder(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	sb.WriteString("<html><body><h1>Leadership</h1><p>")
	for i := 0; i < 50; i++ {
		fmt.Fprintf(&sb, "Person %c%c, CEO. ", 'A'+i/26, 'a'+i%26)
	}
	sb.WriteString("</p></body></html>")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, sb.String())
	}))
	defer server.Close()

	s := testScraper(t, Config{CandidatePaths: []string{""}, MaxLeaders: 10}, nil)
	leaders := s.Scrape(context.Background(), serverDomain(server))

	require.Len(t, leaders, 10)
	require.Equal(t, "Person Aa", leaders[0].Name)
	require.Equal(t, "Person Aj", leaders[9].Name)
}

func TestScrape_RejectsTitlesOutsideVocabulary(t *testing.T) {
	t.Parallel()

	page := `<html><body>
		<h1>Leadership</h1>
		<div class="executive"><h3>John Smith</h3><p class="title">Head of Snacks</p></div>
	</body></html>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, page)
	}))
	defer server.Close()

	s := testScraper(t, Config{CandidatePaths: []string{""}}, nil)
	require.Empty(t, s.Scrape(context.Background(), serverDomain(server)))
}

func TestScrape_SkipsFailingCandidates(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/about" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><body><h1>Leadership</h1><p>Jane Doe, CEO</p></body></html>`)
	}))
	defer server.Close()

	s := testScraper(t, Config{CandidatePaths: []string{"/about", ""}}, nil)
	leaders := s.Scrape(context.Background(), serverDomain(server))

	require.Len(t, leaders, 1)
	require.Equal(t, "Jane Doe", leaders[0].Name)
}

func TestScrape_UnreachableDomainYieldsEmpty(t *testing.T) {
	t.Parallel()

	s := testScraper(t, Config{
		CandidatePaths: []string{""},
		FetchTimeout:   500 * time.Millisecond,
		Budget:         2 * time.Second,
	}, nil)

	require.Empty(t, s.Scrape(context.Background(), "127.0.0.1:1"))
}

func TestScrape_ArchivesPageSnapshot(t *testing.T) {
	t.Parallel()

	page := `<html><body><h1>Leadership</h1><p>Jane Doe, CEO</p></body></html>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, page)
	}))
	defer server.Close()

	snaps := memorysnapshot.New()
	domain := serverDomain(server)
	s := testScraper(t, Config{CandidatePaths: []string{""}, SnapshotPrefix: "pages"}, snaps)
	leaders := s.Scrape(context.Background(), domain)
	require.Len(t, leaders, 1)

	// The https candidate fails against the plain test server, so the
	// archived page is the http one.
	urlHash := fmt.Sprintf("%x", sha256.Sum256([]byte("http://"+domain)))
	objectName := fmt.Sprintf("pages/%s/%s.html", domain, urlHash[:16])
	body, ok := snaps.GetObject(objectName)
	require.True(t, ok, "expected snapshot at %s", objectName)
	require.Equal(t, page, string(body))
}
