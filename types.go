package portfolio

import "time"

// Author identifies the writer of a blog post.
type Author struct {
	Name   string `json:"name" bson:"name"`
	Avatar string `json:"avatar" bson:"avatar"`
}

// BlogPost is a single blog entry. The slug is the primary key and is
// derived from the title on first save unless supplied explicitly.
type BlogPost struct {
	Slug      string    `json:"slug" bson:"slug"`
	Title     string    `json:"title" bson:"title"`
	Excerpt   string    `json:"excerpt" bson:"excerpt"`
	Content   string    `json:"content" bson:"content"`
	ImageURL  string    `json:"imageUrl" bson:"imageUrl"`
	ImageHint string    `json:"imageHint" bson:"imageHint"`
	Date      time.Time `json:"date" bson:"date"`
	Author    Author    `json:"author" bson:"author"`
	Tags      []string  `json:"tags" bson:"tags"`
}

// Publication types accepted by the publication form.
const (
	PubTypeJournal    = "Journal"
	PubTypeConference = "Conference"
	PubTypePreprint   = "Preprint"
)

// Publication is a single entry in the publications list. The id is an
// opaque generated key. Year stays a string because venues use values like
// "2023" and "in press" interchangeably; sorting parses it best-effort.
type Publication struct {
	ID              string            `json:"id" bson:"_id"`
	Title           string            `json:"title" bson:"title"`
	Authors         string            `json:"authors" bson:"authors"`
	Venue           string            `json:"venue" bson:"venue"`
	Year            string            `json:"year" bson:"year"`
	PublicationType string            `json:"publicationType" bson:"publicationType"`
	DOI             string            `json:"doi,omitempty" bson:"doi,omitempty"`
	URL             string            `json:"url,omitempty" bson:"url,omitempty"`
	PDF             string            `json:"pdf,omitempty" bson:"pdf,omitempty"`
	Abstract        string            `json:"abstract,omitempty" bson:"abstract,omitempty"`
	Citation        map[string]string `json:"citation,omitempty" bson:"citation,omitempty"`
	CreatedAt       time.Time         `json:"createdAt" bson:"createdAt"`
}
