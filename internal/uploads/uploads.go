package uploads

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nfnt/resize"
)

// Upload subdirectories, one per kind of document.
const (
	KindProducts = "products"
	KindProfiles = "profiles"
	KindLicenses = "licenses"
)

// Product images wider than this get downscaled on upload.
const maxImageWidth = 800

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".pdf":  true,
}

var validKinds = map[string]bool{
	KindProducts: true,
	KindProfiles: true,
	KindLicenses: true,
}

// EnsureDirs creates the upload directory tree.
func EnsureDirs(baseDir string) error {
	for kind := range validKinds {
		if err := os.MkdirAll(filepath.Join(baseDir, kind), 0o755); err != nil {
			return err
		}
	}
	return nil
}

// SaveFile stores an uploaded file under baseDir/kind with a random name,
// returning the stored filename.
func SaveFile(baseDir, kind string, fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("file type %q is not allowed", ext)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(baseDir, kind, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return name, nil
}

// SaveProductImage stores a product image, downscaling oversized JPEG and
// PNG uploads. Other allowed types are stored as-is.
func SaveProductImage(baseDir string, fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return SaveFile(baseDir, KindProducts, fh)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	img, _, err := image.Decode(src)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	if img.Bounds().Dx() > maxImageWidth {
		img = resize.Resize(maxImageWidth, 0, img, resize.Lanczos3)
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(baseDir, KindProducts, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if ext == ".png" {
		err = png.Encode(dst, img)
	} else {
		err = jpeg.Encode(dst, img, &jpeg.Options{Quality: 85})
	}
	if err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}
	return name, nil
}

// Serve writes a stored upload to the response. Filenames containing path
// separators or parent references are rejected outright.
func Serve(c *gin.Context, baseDir, kind, filename string) {
	if !validKinds[kind] {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	if strings.Contains(filename, "..") || strings.ContainsAny(filename, "/\\") {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	path := filepath.Join(baseDir, kind, filename)
	if _, err := os.Stat(path); err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	c.File(path)
}
