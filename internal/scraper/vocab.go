package scraper

import (
	"regexp"
	"strings"
)

// DefaultCandidatePaths is the ordered probe list for leadership pages.
// Earlier entries are assumed more likely to host executive bios.
var DefaultCandidatePaths = []string{
	"/about",
	"/about-us",
	"/about/leadership",
	"/about/team",
	"/leadership",
	"/team",
	"/executives",
	"/management",
	"/company/leadership",
	"/leadership-team",
	"/executive-team",
	"",
}

// DefaultTitleVocabulary is the controlled executive-title vocabulary. A
// candidate title must contain one of these terms (or match the
// "Chief * Officer" pattern) to be accepted; anything else is treated as a
// generic bio and rejected.
var DefaultTitleVocabulary = []string{
	"Chief Executive Officer",
	"Chief Operating Officer",
	"Chief Financial Officer",
	"Chief Technology Officer",
	"Chief Information Officer",
	"Chief Marketing Officer",
	"Chief Human Resources Officer",
	"Chief Legal Officer",
	"CEO",
	"COO",
	"CFO",
	"CTO",
	"CIO",
	"CMO",
	"CHRO",
	"CLO",
	"President",
	"Founder",
	"Co-Founder",
	"Executive Vice President",
	"Senior Vice President",
	"Vice President",
	"Managing Director",
	"General Manager",
	"EVP",
	"SVP",
	"VP",
	"Director",
}

// leadershipIndicators gate candidate pages: a fetched page must mention at
// least one of these before extraction is attempted.
var leadershipIndicators = []string{
	"leadership",
	"executive",
	"team",
	"management",
	"about us",
}

var (
	chiefOfficerPattern = regexp.MustCompile(`(?i)\bchief\s+[a-z]+\s+officer\b`)
	nameShapePattern    = regexp.MustCompile(`^[A-Z][a-zA-Z'.-]+(?: [A-Z][a-zA-Z'.-]+){1,3}$`)
)

// TitleMatcher decides whether free text contains an executive title drawn
// from the controlled vocabulary.
type TitleMatcher struct {
	terms    []string
	patterns []*regexp.Regexp
}

// NewTitleMatcher compiles a matcher over the given vocabulary. An empty
// vocabulary falls back to DefaultTitleVocabulary.
func NewTitleMatcher(vocabulary []string) *TitleMatcher {
	if len(vocabulary) == 0 {
		vocabulary = DefaultTitleVocabulary
	}
	m := &TitleMatcher{terms: vocabulary}
	for _, term := range vocabulary {
		// Word boundaries keep "VP" from matching inside "MVP".
		m.patterns = append(m.patterns, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(term)+`\b`))
	}
	return m
}

// Match reports whether text contains a vocabulary term and returns the
// canonical matched term.
func (m *TitleMatcher) Match(text string) (string, bool) {
	for i, p := range m.patterns {
		if p.MatchString(text) {
			return m.terms[i], true
		}
	}
	if loc := chiefOfficerPattern.FindString(text); loc != "" {
		return loc, true
	}
	return "", false
}

// Alternation returns the vocabulary as a regexp alternation group for use in
// the text-pattern extraction pass.
func (m *TitleMatcher) Alternation() string {
	quoted := make([]string, 0, len(m.terms)+1)
	for _, term := range m.terms {
		quoted = append(quoted, regexp.QuoteMeta(term))
	}
	quoted = append(quoted, `Chief [A-Za-z]+ Officer`)
	return "(?:" + strings.Join(quoted, "|") + ")"
}

// looksLikeName reports whether text is a plausible person name: two to four
// capitalized tokens, nothing else.
func looksLikeName(text string) bool {
	return nameShapePattern.MatchString(strings.TrimSpace(text))
}

// cleanText collapses whitespace (including non-breaking spaces) and trims.
func cleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	return strings.Join(strings.Fields(s), " ")
}

// normalizeName is the deduplication key: lowercased, whitespace-collapsed.
func normalizeName(name string) string {
	return strings.ToLower(cleanText(name))
}

// hasLeadershipIndicator reports whether the page text mentions any
// leadership-related keyword.
func hasLeadershipIndicator(text string) bool {
	lower := strings.ToLower(text)
	for _, indicator := range leadershipIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}
