package portfolio

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	_ "golang.org/x/image/webp"
)

const (
	maxUploadSize = 5 << 20 // 5MB
	uploadsSubdir = "images/blog"
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

var allowedImageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true,
}

// imageResult is the upload response envelope.
type imageResult struct {
	Success  bool   `json:"success"`
	ImageURL string `json:"imageUrl,omitempty"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
}

// sanitizeFilename makes an uploaded filename URL- and shell-safe:
// lowercase, spaces to hyphens, ampersands to "and", everything outside
// [a-z0-9-] stripped, repeated hyphens collapsed. The extension is kept
// separately and lowercased.
func sanitizeFilename(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	base := strings.TrimSuffix(name, filepath.Ext(name))
	base = strings.ToLower(strings.TrimSpace(base))
	base = strings.ReplaceAll(base, "&", "and")
	var b strings.Builder
	prev := false
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		case r == ' ', r == '-', r == '_':
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	cleaned := strings.TrimRight(b.String(), "-")
	if cleaned == "" {
		cleaned = "image"
	}
	return cleaned + ext
}

var (
	uploadStampMu sync.Mutex
	lastStamp     int64
)

// uploadStamp returns a strictly increasing millisecond timestamp so two
// uploads in the same millisecond still get distinct filenames.
func uploadStamp() int64 {
	uploadStampMu.Lock()
	defer uploadStampMu.Unlock()
	now := time.Now().UnixMilli()
	if now <= lastStamp {
		now = lastStamp + 1
	}
	lastStamp = now
	return now
}

func (a *App) uploadsDir() string {
	return filepath.Join(a.staticDir, filepath.FromSlash(uploadsSubdir))
}

func (a *App) handleImageUpload(c echo.Context) error {
	if !a.isAdmin(c) {
		return c.JSON(http.StatusUnauthorized, imageResult{Error: "Unauthorized"})
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, imageResult{Error: "No file received."})
	}

	mimeType := file.Header.Get("Content-Type")
	if _, ok := allowedImageTypes[mimeType]; !ok {
		return c.JSON(http.StatusBadRequest, imageResult{
			Error: "Invalid file type. Only JPEG, PNG, WebP, and GIF are allowed.",
		})
	}
	if file.Size > maxUploadSize {
		return c.JSON(http.StatusBadRequest, imageResult{
			Error: "File too large. Maximum size is 5MB.",
		})
	}

	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxUploadSize))
	if err != nil {
		return fmt.Errorf("read upload: %w", err)
	}

	// The declared Content-Type is caller-controlled; the bytes must also
	// decode as one of the allowed formats.
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return c.JSON(http.StatusBadRequest, imageResult{Error: "Invalid image: " + err.Error()})
	}

	name := fmt.Sprintf("%d-%s", uploadStamp(), sanitizeFilename(file.Filename))

	dir := a.uploadsDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create uploads dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return fmt.Errorf("write image: %w", err)
	}

	return c.JSON(http.StatusOK, imageResult{
		Success:  true,
		ImageURL: "/" + path.Join(uploadsSubdir, url.PathEscape(name)),
		Message:  "Image uploaded successfully",
	})
}

func (a *App) handleImageList(c echo.Context) error {
	if !a.isAdmin(c) {
		return c.JSON(http.StatusUnauthorized, imageResult{Error: "Unauthorized"})
	}
	entries, err := os.ReadDir(a.uploadsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return c.JSON(http.StatusOK, map[string][]string{"images": {}})
		}
		return fmt.Errorf("read uploads dir: %w", err)
	}
	images := []string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if allowedImageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			images = append(images, "/"+path.Join(uploadsSubdir, url.PathEscape(e.Name())))
		}
	}
	sort.Strings(images)
	return c.JSON(http.StatusOK, map[string][]string{"images": images})
}

func (a *App) handleImageDelete(c echo.Context) error {
	if !a.isAdmin(c) {
		return c.JSON(http.StatusUnauthorized, imageResult{Error: "Unauthorized"})
	}
	filename := c.Param("filename")
	if filename == "" || filename == "." || filename == ".." || filename != filepath.Base(filename) {
		return c.JSON(http.StatusBadRequest, imageResult{Error: "Invalid filename."})
	}
	if err := os.Remove(filepath.Join(a.uploadsDir(), filename)); err != nil {
		if os.IsNotExist(err) {
			return c.JSON(http.StatusNotFound, imageResult{Error: "Image not found."})
		}
		return fmt.Errorf("delete image: %w", err)
	}
	return c.JSON(http.StatusOK, imageResult{Success: true, Message: "Image deleted."})
}
