package portfolio

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// SaveResult is the envelope returned by every save/delete entry point.
// Key carries the slug or id of the affected record on success.
type SaveResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Key     string `json:"key,omitempty"`
}

func failure(msg string) SaveResult {
	return SaveResult{Success: false, Message: msg}
}

// defaultTags is applied when a post is saved without any tags.
var defaultTags = []string{"New"}

// saveBlogPost validates and normalizes the submitted fields, then inserts
// or updates depending on whether the form carries an existing slug. The
// caller has already passed the admin check.
func (a *App) saveBlogPost(ctx context.Context, f BlogForm) SaveResult {
	if msg := validateBlogForm(f); msg != "" {
		return failure(msg)
	}

	tags := SplitList(f.Tags)
	if len(tags) == 0 {
		tags = defaultTags
	}

	post := BlogPost{
		Title:     f.Title,
		Excerpt:   f.Excerpt,
		Content:   f.Content,
		ImageURL:  f.ImageURL,
		ImageHint: f.ImageHint,
		Tags:      tags,
	}

	if f.Slug != "" {
		// Edit path: the slug is immutable even when the title changed, and
		// the original creation date and author survive the full-field
		// replace.
		existing, err := a.Store.GetPost(ctx, f.Slug)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return failure("Blog post not found.")
			}
			return failure("Failed to save blog post. Please try again.")
		}
		post.Slug = existing.Slug
		post.Date = existing.Date
		post.Author = existing.Author
		if err := a.Store.UpdatePost(ctx, existing.Slug, post); err != nil {
			return failure("Failed to save blog post. Please try again.")
		}
		a.Cache.Invalidate()
		return SaveResult{Success: true, Message: "Successfully updated blog post.", Key: post.Slug}
	}

	post.Slug = Slugify(f.Title)
	if post.Slug == "" {
		return failure("Title must contain at least one letter or number.")
	}
	post.Date = time.Now().UTC()
	post.Author = Author{Name: a.Config.Author, Avatar: a.Config.AuthorImage}

	if err := a.Store.InsertPost(ctx, post); err != nil {
		if errors.Is(err, ErrDuplicateSlug) {
			return failure("A blog post with this title already exists.")
		}
		return failure("Failed to save blog post. Please try again.")
	}
	a.Cache.Invalidate()
	return SaveResult{Success: true, Message: "Successfully created blog post.", Key: post.Slug}
}

func (a *App) deleteBlogPost(ctx context.Context, slug string) SaveResult {
	if err := a.Store.DeletePost(ctx, slug); err != nil {
		if errors.Is(err, ErrNotFound) {
			return failure("Blog post not found.")
		}
		return failure("Failed to delete blog post. Please try again.")
	}
	a.Cache.Invalidate()
	return SaveResult{Success: true, Message: "Successfully deleted blog post."}
}

func (a *App) savePublication(ctx context.Context, f PublicationForm) SaveResult {
	if msg := validatePublicationForm(f); msg != "" {
		return failure(msg)
	}

	pub := Publication{
		Title:           f.Title,
		Authors:         f.Authors,
		Venue:           f.Venue,
		Year:            f.Year,
		PublicationType: f.PublicationType,
		DOI:             f.DOI,
		URL:             f.URL,
		PDF:             f.PDF,
		Abstract:        f.Abstract,
	}

	if f.ID != "" {
		existing, err := a.Store.GetPublication(ctx, f.ID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return failure("Publication not found.")
			}
			return failure("Failed to save publication. Please try again.")
		}
		pub.ID = existing.ID
		pub.CreatedAt = existing.CreatedAt
		pub.Citation = existing.Citation
		if err := a.Store.UpdatePublication(ctx, existing.ID, pub); err != nil {
			return failure("Failed to save publication. Please try again.")
		}
		a.Cache.Invalidate()
		return SaveResult{Success: true, Message: "Successfully updated publication.", Key: pub.ID}
	}

	pub.ID = uuid.NewString()
	pub.CreatedAt = time.Now().UTC()
	if err := a.Store.InsertPublication(ctx, pub); err != nil {
		return failure("Failed to save publication. Please try again.")
	}
	a.Cache.Invalidate()
	return SaveResult{Success: true, Message: "Successfully created publication.", Key: pub.ID}
}

func (a *App) deletePublication(ctx context.Context, id string) SaveResult {
	if err := a.Store.DeletePublication(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return failure("Publication not found.")
		}
		return failure("Failed to delete publication. Please try again.")
	}
	a.Cache.Invalidate()
	return SaveResult{Success: true, Message: "Successfully deleted publication."}
}
