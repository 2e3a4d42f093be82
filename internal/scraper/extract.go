package scraper

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/leadprep/leadprep/internal/leadprep"
)

// maxTitleLen bounds accepted title text; anything longer is a bio paragraph,
// not a job title.
const maxTitleLen = 80

// structuralSelectors locate repeating executive-card elements. A single
// comma-joined selector keeps goquery iteration in document order.
const structuralSelectors = ".executive, .leader, .team-member, " +
	"[class*=executive], [class*=leader], [class*=team], [class*=officer], [class*=management]"

var (
	nameChildSelectors  = []string{".name", ".executive-name", ".leader-name", "h1", "h2", "h3", "h4", "h5", "h6"}
	titleChildSelectors = []string{".title", ".job-title", ".position", ".role"}
)

// extractor runs the prioritized extraction passes over a parsed page.
type extractor struct {
	titles        *TitleMatcher
	nameThenTitle *regexp.Regexp
	titleThenName *regexp.Regexp
}

func newExtractor(titles *TitleMatcher) *extractor {
	const nameShape = `([A-Z][a-zA-Z'.-]+(?: [A-Z][a-zA-Z'.-]+){1,3})`
	alt := titles.Alternation()
	return &extractor{
		titles:        titles,
		nameThenTitle: regexp.MustCompile(nameShape + `\s*[,—–-]\s*(` + alt + `)`),
		titleThenName: regexp.MustCompile(`(` + alt + `)\s*:\s*` + nameShape),
	}
}

// Extract pulls leader name/title pairs out of the document, in priority
// order: structured data, structural selectors, then raw text patterns.
// Results are deduplicated by normalized name and capped at max, preserving
// encounter order.
func (e *extractor) Extract(doc *goquery.Document, sourceURL string, max int) []leadprep.Leader {
	var found []leadprep.Leader
	found = append(found, e.fromStructuredData(doc)...)
	found = append(found, e.fromSelectors(doc)...)
	found = append(found, e.fromTextPatterns(doc)...)

	seen := make(map[string]struct{}, len(found))
	out := make([]leadprep.Leader, 0, max)
	for _, l := range found {
		name := cleanText(l.Name)
		title := cleanText(l.Title)
		if name == "" || title == "" {
			continue
		}
		key := normalizeName(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, leadprep.Leader{Name: name, Title: title, SourceURL: sourceURL})
		if len(out) >= max {
			break
		}
	}
	return out
}

type jsonLDEntity struct {
	Type     string          `json:"@type"`
	Employee json.RawMessage `json:"employee"`
	Graph    []jsonLDEntity  `json:"@graph"`
}

type jsonLDPerson struct {
	Name     string `json:"name"`
	JobTitle string `json:"jobTitle"`
}

// fromStructuredData harvests JSON-LD Organization employee entries.
func (e *extractor) fromStructuredData(doc *goquery.Document) []leadprep.Leader {
	var leaders []leadprep.Leader
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var entity jsonLDEntity
		if err := json.Unmarshal([]byte(s.Text()), &entity); err != nil {
			return
		}
		entities := append([]jsonLDEntity{entity}, entity.Graph...)
		for _, ent := range entities {
			if !strings.EqualFold(ent.Type, "Organization") || len(ent.Employee) == 0 {
				continue
			}
			for _, person := range decodePersons(ent.Employee) {
				if person.Name == "" || person.JobTitle == "" {
					continue
				}
				if _, ok := e.titles.Match(person.JobTitle); !ok {
					continue
				}
				leaders = append(leaders, leadprep.Leader{Name: person.Name, Title: person.JobTitle})
			}
		}
	})
	return leaders
}

// decodePersons accepts both a single employee object and an array.
func decodePersons(raw json.RawMessage) []jsonLDPerson {
	var many []jsonLDPerson
	if err := json.Unmarshal(raw, &many); err == nil {
		return many
	}
	var one jsonLDPerson
	if err := json.Unmarshal(raw, &one); err == nil {
		return []jsonLDPerson{one}
	}
	return nil
}

// fromSelectors walks executive-card shaped elements, pairing a name-shaped
// heading with a vocabulary title found in the same element or an adjacent
// sibling.
func (e *extractor) fromSelectors(doc *goquery.Document) []leadprep.Leader {
	var leaders []leadprep.Leader
	doc.Find(structuralSelectors).Each(func(_ int, card *goquery.Selection) {
		name := e.findName(card)
		title := e.findTitle(card)

		if name != "" && title == "" {
			if term, ok := e.titles.Match(card.Text()); ok {
				title = term
			}
		}
		if title != "" && name == "" {
			name = e.findName(card.Prev())
			if name == "" {
				name = e.findName(card.Next())
			}
		}
		if name == "" || title == "" {
			return
		}
		leaders = append(leaders, leadprep.Leader{Name: name, Title: title})
	})
	return leaders
}

func (e *extractor) findName(sel *goquery.Selection) string {
	if sel == nil || sel.Length() == 0 {
		return ""
	}
	for _, childSel := range nameChildSelectors {
		var name string
		sel.Find(childSel).EachWithBreak(func(_ int, c *goquery.Selection) bool {
			if text := cleanText(c.Text()); looksLikeName(text) {
				name = text
				return false
			}
			return true
		})
		if name != "" {
			return name
		}
	}
	if text := cleanText(sel.Text()); looksLikeName(text) {
		return text
	}
	return ""
}

func (e *extractor) findTitle(sel *goquery.Selection) string {
	for _, childSel := range titleChildSelectors {
		var title string
		sel.Find(childSel).EachWithBreak(func(_ int, c *goquery.Selection) bool {
			text := cleanText(c.Text())
			if len(text) > maxTitleLen {
				return true
			}
			if _, ok := e.titles.Match(text); ok {
				title = text
				return false
			}
			return true
		})
		if title != "" {
			return title
		}
	}
	return ""
}

// textPatternSelectors limit the text pass to leaf-ish elements so that text
// from unrelated siblings (headings, nav) cannot bleed into a name match.
const textPatternSelectors = "p, li, td, h1, h2, h3, h4, h5, h6, figcaption, blockquote"

// fromTextPatterns scans element text for "Name, Title" and "Title: Name"
// shapes as a last resort.
func (e *extractor) fromTextPatterns(doc *goquery.Document) []leadprep.Leader {
	var leaders []leadprep.Leader
	doc.Find(textPatternSelectors).Each(func(_ int, sel *goquery.Selection) {
		text := cleanText(sel.Text())
		if text == "" {
			return
		}
		for _, m := range e.nameThenTitle.FindAllStringSubmatch(text, -1) {
			leaders = append(leaders, leadprep.Leader{Name: m[1], Title: m[2]})
		}
		for _, m := range e.titleThenName.FindAllStringSubmatch(text, -1) {
			leaders = append(leaders, leadprep.Leader{Name: m[2], Title: m[1]})
		}
	})
	return leaders
}
