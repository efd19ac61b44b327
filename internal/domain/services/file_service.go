package services

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register webp decoding

	"employee-management-service/internal/infrastructure/config"
	"employee-management-service/pkg/utils"
)

const (
	profileSubdir   = "profiles"
	thumbnailSize   = 150
	thumbnailPrefix = "thumb_"
)

// allowedImageExtensions is the upload allow-list.
var allowedImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

var contentTypeByExtension = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// InterfaceFileService defines the profile picture storage interface
type InterfaceFileService interface {
	SaveProfilePicture(employeeID uint, header *multipart.FileHeader) (string, error)
	ResolveProfilePicture(relPath string, thumbnail bool) (string, string, error)
	DeleteProfilePicture(relPath string)
}

// FileService stores profile pictures and their thumbnails under the
// configured upload directory.
type FileService struct {
	Config *config.Config
}

// NewFileService creates a new file service.
func NewFileService(cfg *config.Config) InterfaceFileService {
	return &FileService{Config: cfg}
}

// 1 SaveProfilePicture validates the upload, stores the original via a
// temp-file rename and writes a JPEG thumbnail next to it. Returns the
// relative path to store on the record.
func (s *FileService) SaveProfilePicture(employeeID uint, header *multipart.FileHeader) (string, error) {
	if header == nil || header.Filename == "" {
		return "", ErrInvalidFile
	}
	if header.Size > s.Config.MaxUploadSize {
		return "", ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(utils.SanitizeFilename(header.Filename)))
	if !allowedImageExtensions[ext] {
		return "", ErrInvalidFile
	}

	src, err := header.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	// Decoding both validates the content and feeds the thumbnail.
	img, _, err := image.Decode(src)
	if err != nil {
		return "", ErrInvalidFile
	}

	uploadDir := filepath.Join(s.Config.UploadDir, profileSubdir)
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return "", err
	}

	filename := utils.UniqueFilename(header.Filename, fmt.Sprintf("employee_%d", employeeID))
	finalPath := filepath.Join(uploadDir, filename)

	// Write to a temp file and rename so a crash never leaves the record
	// pointing at a partial file.
	if _, err := src.Seek(0, 0); err != nil {
		return "", err
	}
	tmp, err := os.CreateTemp(uploadDir, ".upload-*")
	if err != nil {
		return "", err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.ReadFrom(src); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", err
	}
	if err := os.Rename(tmpPath, finalPath); err != nil {
		os.Remove(tmpPath)
		return "", err
	}

	thumbPath := filepath.Join(uploadDir, thumbnailName(filename))
	if err := writeThumbnail(img, thumbPath); err != nil {
		os.Remove(finalPath)
		return "", err
	}

	return filepath.ToSlash(filepath.Join(profileSubdir, filename)), nil
}

// 2 ResolveProfilePicture maps a stored relative path to an absolute file
// path and content type, optionally for the thumbnail.
func (s *FileService) ResolveProfilePicture(relPath string, thumbnail bool) (string, string, error) {
	if relPath == "" {
		return "", "", ErrPictureNotFound
	}

	name := filepath.Base(relPath)
	dir := filepath.Dir(relPath)
	contentType := contentTypeByExtension[strings.ToLower(filepath.Ext(name))]
	if thumbnail {
		name = thumbnailName(name)
		contentType = "image/jpeg"
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	fullPath := filepath.Join(s.Config.UploadDir, dir, name)
	if _, err := os.Stat(fullPath); err != nil {
		return "", "", ErrPictureNotFound
	}

	return fullPath, contentType, nil
}

// 3 DeleteProfilePicture removes a stored picture and its thumbnail,
// ignoring missing files.
func (s *FileService) DeleteProfilePicture(relPath string) {
	if relPath == "" {
		return
	}
	name := filepath.Base(relPath)
	dir := filepath.Join(s.Config.UploadDir, filepath.Dir(relPath))
	os.Remove(filepath.Join(dir, name))
	os.Remove(filepath.Join(dir, thumbnailName(name)))
}

// thumbnailName derives the thumbnail filename; thumbnails are always
// stored as JPEG.
func thumbnailName(filename string) string {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	return thumbnailPrefix + base + ".jpg"
}

// writeThumbnail scales img to fit within thumbnailSize and writes it as
// JPEG. Transparent images are composited onto a white background first.
func writeThumbnail(img image.Image, path string) error {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return ErrInvalidFile
	}

	scale := 1.0
	if width > thumbnailSize || height > thumbnailSize {
		sw := float64(thumbnailSize) / float64(width)
		sh := float64(thumbnailSize) / float64(height)
		if sw < sh {
			scale = sw
		} else {
			scale = sh
		}
	}
	tw := int(float64(width) * scale)
	th := int(float64(height) * scale)
	if tw < 1 {
		tw = 1
	}
	if th < 1 {
		th = 1
	}

	background := image.NewRGBA(bounds)
	draw.Draw(background, bounds, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(background, bounds, img, bounds.Min, draw.Over)

	thumb := image.NewRGBA(image.Rect(0, 0, tw, th))
	xdraw.CatmullRom.Scale(thumb, thumb.Bounds(), background, bounds, xdraw.Src, nil)

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	return jpeg.Encode(out, thumb, &jpeg.Options{Quality: 85})
}
