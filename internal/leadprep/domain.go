package leadprep

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var alnumDot = regexp.MustCompile(`[a-zA-Z0-9.]`)

var privateHostPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^localhost$`),
	regexp.MustCompile(`^127\.`),
	regexp.MustCompile(`^192\.168\.`),
	regexp.MustCompile(`^10\.`),
	regexp.MustCompile(`^172\.(1[6-9]|2[0-9]|3[0-1])\.`),
}

// NormalizeDomain canonicalizes free-text company input into a registrable
// domain: scheme, www. prefix, port, path, and query are all discarded and
// the host is lowercased. "https://www.apple.com/about", "apple.com", and
// "APPLE.COM" all normalize to "apple.com".
func NormalizeDomain(input string) (string, error) {
	raw := strings.TrimSpace(input)
	if raw == "" || !alnumDot.MatchString(raw) {
		return "", fmt.Errorf("%w: %q", ErrInvalidInput, input)
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidInput, input)
	}
	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	host = strings.TrimSuffix(host, "/")
	if host == "" || !strings.Contains(host, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidInput, input)
	}
	return host, nil
}

// ValidateDomain reports whether a normalized domain looks like a public
// company website rather than a local or private address.
func ValidateDomain(domain string) bool {
	if len(domain) < 3 {
		return false
	}
	for _, p := range privateHostPatterns {
		if p.MatchString(domain) {
			return false
		}
	}
	return true
}

// CandidatePages builds the ordered probe URL list for a domain: each
// configured path is tried over https first, then http.
func CandidatePages(domain string, paths []string) []string {
	urls := make([]string, 0, len(paths)*2)
	for _, p := range paths {
		if p != "" && !strings.HasPrefix(p, "/") {
			p = "/" + p
		}
		urls = append(urls, fmt.Sprintf("https://%s%s", domain, p))
		urls = append(urls, fmt.Sprintf("http://%s%s", domain, p))
	}
	return urls
}
