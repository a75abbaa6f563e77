package inkpress

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"
)

const (
	maxImageWidth = 800
	jpegQuality   = 80
	maxUploadSize = 10 << 20 // 10MB
	uploadsSubdir = "uploads"
)

// processImage decodes an image from src, resizes it down to maxImageWidth
// when wider, and re-encodes it as JPEG.
func processImage(src io.Reader) ([]byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxImageWidth {
		newH := h * maxImageWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// safeImageName reduces an uploaded filename to a lowercase a-z0-9 dash
// name with a .jpg extension.
func safeImageName(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	base = strings.ToLower(strings.TrimSpace(base))
	var b strings.Builder
	prev := false
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	out := strings.TrimRight(b.String(), "-")
	if out == "" {
		out = "image"
	}
	return out + ".jpg"
}

// uniqueImagePath appends a counter until the name is free in dir.
func uniqueImagePath(dir, filename string) string {
	base := strings.TrimSuffix(filename, ".jpg")
	candidate := filename
	counter := 1
	for {
		if _, err := os.Stat(filepath.Join(dir, candidate)); err != nil {
			return filepath.Join(dir, candidate)
		}
		counter++
		candidate = fmt.Sprintf("%s-%d.jpg", base, counter)
	}
}

func (a *App) handleImageUpload(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}

	file, err := c.FormFile("image")
	if err != nil {
		return c.String(http.StatusBadRequest, "No image file provided")
	}
	if file.Size > maxUploadSize {
		return c.String(http.StatusBadRequest, "File too large (max 10MB)")
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	data, err := processImage(src)
	if err != nil {
		return c.String(http.StatusBadRequest, "Invalid image: "+err.Error())
	}

	dir := filepath.Join(a.staticDir, uploadsSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create uploads dir: %w", err)
	}
	path := uniqueImagePath(dir, safeImageName(file.Filename))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write image: %w", err)
	}

	return a.renderImageList(c)
}

func (a *App) handleImageDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	filename := filepath.Base(c.Param("filename"))
	if filename == "" || filename == "." {
		return c.String(http.StatusBadRequest, "Filename required")
	}
	_ = os.Remove(filepath.Join(a.staticDir, uploadsSubdir, filename))
	return a.renderImageList(c)
}

func (a *App) handleImageList(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	return a.renderImageList(c)
}

func (a *App) renderImageList(c echo.Context) error {
	images, err := a.listImages()
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminImages(a.Config, images, CsrfToken(c)))
}

// listImages reads the uploads directory, newest first.
func (a *App) listImages() ([]Image, error) {
	dir := filepath.Join(a.staticDir, uploadsSubdir)
	dirEntries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var images []Image
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		images = append(images, Image{
			Filename: de.Name(),
			URL:      "/public/" + uploadsSubdir + "/" + de.Name(),
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
	}
	sort.Slice(images, func(i, j int) bool {
		return images[i].Modified.After(images[j].Modified)
	})
	return images, nil
}
