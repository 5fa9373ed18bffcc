package portfolio

import (
	"fmt"
	"strings"
)

// Citation styles supported by FormatCitation.
const (
	StyleAPA     = "APA"
	StyleMLA     = "MLA"
	StyleChicago = "Chicago"
)

// CitationFields is the already-validated publication metadata a citation
// is formatted from.
type CitationFields struct {
	Title   string
	Authors string
	Venue   string
	Year    string
	DOI     string
}

// FormatCitation renders fields in the requested style. It is a pure
// template over its inputs: the same fields and style always produce the
// same string, and an absent DOI is omitted rather than leaving an empty
// placeholder.
func FormatCitation(f CitationFields, style string) (string, error) {
	authors := strings.TrimSpace(f.Authors)
	title := strings.TrimSpace(f.Title)
	venue := strings.TrimSpace(f.Venue)
	year := strings.TrimSpace(f.Year)
	doi := strings.TrimSpace(f.DOI)

	if authors == "" || title == "" || venue == "" || year == "" {
		return "", fmt.Errorf("missing required fields to format citation")
	}

	var b strings.Builder
	switch style {
	case StyleAPA:
		fmt.Fprintf(&b, "%s (%s). %s. %s.", authors, year, title, venue)
		if doi != "" {
			fmt.Fprintf(&b, " https://doi.org/%s", doi)
		}
	case StyleMLA:
		fmt.Fprintf(&b, "%s. \"%s.\" %s, %s.", authors, title, venue, year)
		if doi != "" {
			fmt.Fprintf(&b, " doi:%s.", doi)
		}
	case StyleChicago:
		fmt.Fprintf(&b, "%s. \"%s.\" %s (%s).", authors, title, venue, year)
		if doi != "" {
			fmt.Fprintf(&b, " https://doi.org/%s.", doi)
		}
	default:
		return "", fmt.Errorf("unknown citation style %q", style)
	}
	return b.String(), nil
}

// FormatAllCitations renders every supported style, keyed by lowercase
// style name the way the publication record stores them.
func FormatAllCitations(f CitationFields) (map[string]string, error) {
	out := make(map[string]string, 3)
	for _, style := range []string{StyleAPA, StyleMLA, StyleChicago} {
		s, err := FormatCitation(f, style)
		if err != nil {
			return nil, err
		}
		out[strings.ToLower(style)] = s
	}
	return out, nil
}
