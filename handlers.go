package portfolio

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, failure("Unauthorized"))
}

func (a *App) handleListPosts(c echo.Context) error {
	posts, err := a.Cache.ListPosts(c.Request().Context(), c.QueryParam("tag"))
	if err != nil {
		return err
	}
	tags, err := a.Cache.ListTags(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"posts": posts,
		"tags":  tags,
	})
}

func (a *App) handleGetPost(c echo.Context) error {
	post, err := a.Cache.GetPost(c.Request().Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.JSON(http.StatusNotFound, failure("Blog post not found."))
		}
		return err
	}
	return c.JSON(http.StatusOK, post)
}

func (a *App) handleSavePost(c echo.Context) error {
	if !a.isAdmin(c) {
		return unauthorized(c)
	}
	form := BlogForm{
		Slug:      c.FormValue("slug"),
		Title:     c.FormValue("title"),
		Excerpt:   c.FormValue("excerpt"),
		Content:   c.FormValue("content"),
		ImageURL:  c.FormValue("imageUrl"),
		ImageHint: c.FormValue("imageHint"),
		Tags:      c.FormValue("tags"),
	}
	res := a.saveBlogPost(c.Request().Context(), form)
	return c.JSON(statusFor(res), res)
}

func (a *App) handleDeletePost(c echo.Context) error {
	if !a.isAdmin(c) {
		return unauthorized(c)
	}
	res := a.deleteBlogPost(c.Request().Context(), c.Param("slug"))
	return c.JSON(statusFor(res), res)
}

func (a *App) handleListPublications(c echo.Context) error {
	pubs, err := a.Cache.ListPublications(c.Request().Context())
	if err != nil {
		return err
	}
	if pubs == nil {
		pubs = []Publication{}
	}
	return c.JSON(http.StatusOK, map[string]any{"publications": pubs})
}

func (a *App) handleGetPublication(c echo.Context) error {
	pub, err := a.Cache.GetPublication(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.JSON(http.StatusNotFound, failure("Publication not found."))
		}
		return err
	}
	return c.JSON(http.StatusOK, pub)
}

func (a *App) handleSavePublication(c echo.Context) error {
	if !a.isAdmin(c) {
		return unauthorized(c)
	}
	form := PublicationForm{
		ID:              c.FormValue("id"),
		Title:           c.FormValue("title"),
		Authors:         c.FormValue("authors"),
		Venue:           c.FormValue("venue"),
		Year:            c.FormValue("year"),
		PublicationType: c.FormValue("publicationType"),
		DOI:             c.FormValue("doi"),
		URL:             c.FormValue("url"),
		PDF:             c.FormValue("pdf"),
		Abstract:        c.FormValue("abstract"),
	}
	res := a.savePublication(c.Request().Context(), form)
	return c.JSON(statusFor(res), res)
}

func (a *App) handleDeletePublication(c echo.Context) error {
	if !a.isAdmin(c) {
		return unauthorized(c)
	}
	res := a.deletePublication(c.Request().Context(), c.Param("id"))
	return c.JSON(statusFor(res), res)
}

// handleFormatCitation renders a citation for the submitted fields. With an
// explicit style it returns that one string; without, all three styles.
func (a *App) handleFormatCitation(c echo.Context) error {
	if !a.isAdmin(c) {
		return unauthorized(c)
	}
	fields := CitationFields{
		Title:   c.FormValue("title"),
		Authors: c.FormValue("authors"),
		Venue:   c.FormValue("venue"),
		Year:    c.FormValue("year"),
		DOI:     c.FormValue("doi"),
	}
	if style := c.FormValue("style"); style != "" {
		formatted, err := FormatCitation(fields, style)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]any{"success": true, "citation": formatted})
	}
	citations, err := FormatAllCitations(fields)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "citations": citations})
}

// statusFor maps a mutation envelope to its HTTP status. The envelope body
// is the contract; the status mirrors it for plain HTTP clients.
func statusFor(res SaveResult) int {
	if res.Success {
		return http.StatusOK
	}
	switch res.Message {
	case "Blog post not found.", "Publication not found.":
		return http.StatusNotFound
	case "A blog post with this title already exists.":
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /admin/\n\nSitemap: %s/sitemap.xml\n", a.Config.URL)
	return c.String(http.StatusOK, body)
}
