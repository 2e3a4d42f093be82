package scraper

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/leadprep/leadprep/internal/leadprep"
)

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func defaultExtractor() *extractor {
	return newExtractor(NewTitleMatcher(nil))
}

func TestExtract_StructuredData(t *testing.T) {
	t.Parallel()

	html := `<html><head><script type="application/ld+json">
	{"@type":"Organization","employee":[
		{"name":"Jane Doe","jobTitle":"CEO"},
		{"name":"Bob Roe","jobTitle":"Janitor"}
	]}</script></head><body></body></html>`

	leaders := defaultExtractor().Extract(parseDoc(t, html), "https://acme.com/about", 10)
	require.Len(t, leaders, 1)
	require.Equal(t, leadprep.Leader{Name: "Jane Doe", Title: "CEO", SourceURL: "https://acme.com/about"}, leaders[0])
}

func TestExtract_StructuredDataSingleEmployee(t *testing.T) {
	t.Parallel()

	html := `<html><head><script type="application/ld+json">
	{"@type":"Organization","employee":{"name":"Jane Doe","jobTitle":"Chief Revenue Officer"}}
	</script></head><body></body></html>`

	leaders := defaultExtractor().Extract(parseDoc(t, html), "", 10)
	require.Len(t, leaders, 1)
	require.Equal(t, "Chief Revenue Officer", leaders[0].Title)
}

func TestExtract_SelectorPassPairsNameAndTitle(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<div class="team-member"><h4>Ada Lovelace</h4><span class="role">CTO</span></div>
		<div class="team-member"><h4>Grace Hopper</h4><span class="role">VP of Engineering</span></div>
	</body></html>`

	leaders := defaultExtractor().Extract(parseDoc(t, html), "", 10)
	require.Len(t, leaders, 2)
	require.Equal(t, "Ada Lovelace", leaders[0].Name)
	require.Equal(t, "CTO", leaders[0].Title)
	require.Equal(t, "VP of Engineering", leaders[1].Title)
}

func TestExtract_SelectorPassTitleInElementText(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<div class="executive"><h3>Jane Doe</h3> leads the company as CEO.</div>
	</body></html>`

	leaders := defaultExtractor().Extract(parseDoc(t, html), "", 10)
	require.Len(t, leaders, 1)
	require.Equal(t, "CEO", leaders[0].Title)
}

func TestExtract_TextPatternsBothDirections(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<p>Jane Doe, CEO</p>
		<p>CFO: John Roe</p>
	</body></html>`

	leaders := defaultExtractor().Extract(parseDoc(t, html), "", 10)
	require.Len(t, leaders, 2)
	require.Equal(t, leadprep.Leader{Name: "Jane Doe", Title: "CEO"}, leaders[0])
	require.Equal(t, leadprep.Leader{Name: "John Roe", Title: "CFO"}, leaders[1])
}

func TestExtract_ChiefStarOfficerPattern(t *testing.T) {
	t.Parallel()

	m := NewTitleMatcher(nil)
	title, ok := m.Match("Maria Garcia is our Chief Revenue Officer")
	require.True(t, ok)
	require.Equal(t, "Chief Revenue Officer", title)

	_, ok = m.Match("Most Valuable Player")
	require.False(t, ok)
}

func TestExtract_DeduplicatesByNormalizedName(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<div class="executive"><h3>Tim Cook</h3><p class="title">CEO</p></div>
		<p>TIM  COOK, CEO</p>
	</body></html>`

	leaders := defaultExtractor().Extract(parseDoc(t, html), "", 10)
	require.Len(t, leaders, 1)
	require.Equal(t, "Tim Cook", leaders[0].Name)
}

func TestLooksLikeName(t *testing.T) {
	t.Parallel()

	require.True(t, looksLikeName("Jane Doe"))
	require.True(t, looksLikeName("Jean-Luc Picard"))
	require.True(t, looksLikeName("Mary Jane Watson Parker"))
	require.False(t, looksLikeName("jane doe"))
	require.False(t, looksLikeName("Jane"))
	require.False(t, looksLikeName("One Two Three Four Five"))
	require.False(t, looksLikeName("Read Our Story Here Now"))
}
