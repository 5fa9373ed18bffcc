package portfolio

import (
	"net/url"
	"strings"
)

// BlogForm carries the raw field values of a blog save request.
type BlogForm struct {
	Slug      string // empty on create, the existing slug on edit
	Title     string
	Excerpt   string
	Content   string
	ImageURL  string
	ImageHint string
	Tags      string // comma-separated
}

// PublicationForm carries the raw field values of a publication save request.
type PublicationForm struct {
	ID              string // empty on create, the existing id on edit
	Title           string
	Authors         string
	Venue           string
	Year            string
	PublicationType string
	DOI             string
	URL             string
	PDF             string
	Abstract        string
}

// validateBlogForm checks required fields in form order and returns the
// first violation's message.
func validateBlogForm(f BlogForm) string {
	if strings.TrimSpace(f.Title) == "" {
		return "Title is required."
	}
	if strings.TrimSpace(f.Excerpt) == "" {
		return "Excerpt is required."
	}
	if strings.TrimSpace(f.Content) == "" {
		return "Content is required."
	}
	if strings.TrimSpace(f.ImageURL) == "" {
		return "Image URL is required."
	}
	if !validURL(f.ImageURL) {
		return "Invalid URL."
	}
	if strings.TrimSpace(f.ImageHint) == "" {
		return "Image hint is required."
	}
	return ""
}

func validatePublicationForm(f PublicationForm) string {
	if strings.TrimSpace(f.Title) == "" {
		return "Title is required."
	}
	if strings.TrimSpace(f.Authors) == "" {
		return "Authors are required."
	}
	if strings.TrimSpace(f.Venue) == "" {
		return "Venue is required."
	}
	if strings.TrimSpace(f.Year) == "" {
		return "Year is required."
	}
	switch f.PublicationType {
	case PubTypeJournal, PubTypeConference, PubTypePreprint:
	default:
		return "Please select a publication type."
	}
	return ""
}

// validURL accepts absolute http(s) URLs and site-relative paths, which is
// what the image picker produces for uploaded files.
func validURL(s string) bool {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "/") {
		return true
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
