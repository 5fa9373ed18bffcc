package portfolio

import (
	"strings"
	"testing"
)

var citationFields = CitationFields{
	Title:   "Topological Data Analysis for Neural Networks",
	Authors: "Garcia, M., & Gazi, N.",
	Venue:   "Nature Machine Intelligence",
	Year:    "2021",
}

func TestFormatCitationStyles(t *testing.T) {
	apa, err := FormatCitation(citationFields, StyleAPA)
	if err != nil {
		t.Fatalf("APA: %v", err)
	}
	mla, err := FormatCitation(citationFields, StyleMLA)
	if err != nil {
		t.Fatalf("MLA: %v", err)
	}
	chicago, err := FormatCitation(citationFields, StyleChicago)
	if err != nil {
		t.Fatalf("Chicago: %v", err)
	}

	if apa == mla || apa == chicago || mla == chicago {
		t.Errorf("styles should differ: apa=%q mla=%q chicago=%q", apa, mla, chicago)
	}
	for _, s := range []string{apa, mla, chicago} {
		if !strings.Contains(s, citationFields.Title) {
			t.Errorf("citation %q missing title", s)
		}
		if !strings.Contains(s, "2021") {
			t.Errorf("citation %q missing year", s)
		}
	}
}

func TestFormatCitationOmitsAbsentDOI(t *testing.T) {
	for _, style := range []string{StyleAPA, StyleMLA, StyleChicago} {
		s, err := FormatCitation(citationFields, style)
		if err != nil {
			t.Fatalf("%s: %v", style, err)
		}
		if strings.Contains(strings.ToLower(s), "doi") {
			t.Errorf("%s citation %q mentions doi without one being set", style, s)
		}
	}
}

func TestFormatCitationIncludesDOI(t *testing.T) {
	f := citationFields
	f.DOI = "10.1038/s42256-021-00456-7"
	for _, style := range []string{StyleAPA, StyleMLA, StyleChicago} {
		s, err := FormatCitation(f, style)
		if err != nil {
			t.Fatalf("%s: %v", style, err)
		}
		if !strings.Contains(s, f.DOI) {
			t.Errorf("%s citation %q missing doi", style, s)
		}
	}
}

func TestFormatCitationDeterministic(t *testing.T) {
	a, _ := FormatCitation(citationFields, StyleAPA)
	b, _ := FormatCitation(citationFields, StyleAPA)
	if a != b {
		t.Errorf("APA formatting is not deterministic: %q vs %q", a, b)
	}
}

func TestFormatCitationErrors(t *testing.T) {
	if _, err := FormatCitation(citationFields, "Harvard"); err == nil {
		t.Error("expected error for unknown style")
	}
	if _, err := FormatCitation(CitationFields{Title: "only title"}, StyleAPA); err == nil {
		t.Error("expected error for missing required fields")
	}
}

func TestFormatAllCitations(t *testing.T) {
	all, err := FormatAllCitations(citationFields)
	if err != nil {
		t.Fatalf("FormatAllCitations: %v", err)
	}
	for _, key := range []string{"apa", "mla", "chicago"} {
		if all[key] == "" {
			t.Errorf("missing %q style in %v", key, all)
		}
	}
}
