// Package media stores uploaded images on local disk and serves them under
// /uploads/.
package media

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"elearning/internal/apperr"
)

const (
	DefaultMaxSize int64 = 5 << 20
	PublicPrefix         = "/uploads/"
)

var allowedTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

var errFileNotFound = apperr.NotFound("file not found")

// Upload describes a stored file.
type Upload struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	Mimetype string `json:"mimetype"`
	Size     int64  `json:"size"`
}

type Storage struct {
	dir     string
	maxSize int64
	log     logrus.FieldLogger
}

func NewStorage(dir string, maxSize int64, log logrus.FieldLogger) *Storage {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Storage{dir: filepath.Clean(dir), maxSize: maxSize, log: log.WithField("area", "MEDIA")}
}

func (s *Storage) Dir() string    { return s.dir }
func (s *Storage) MaxSize() int64 { return s.maxSize }

// Save stores an uploaded multipart file.
func (s *Storage) Save(file *multipart.FileHeader) (Upload, error) {
	if file.Size > s.maxSize {
		return Upload{}, s.tooLarge()
	}
	src, err := file.Open()
	if err != nil {
		return Upload{}, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	return s.save(src)
}

// save sniffs the content, so a text file renamed to .png is rejected.
// The stored name is a fresh ObjectID with the extension of the detected type.
func (s *Storage) save(src io.ReadSeeker) (Upload, error) {
	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return Upload{}, fmt.Errorf("detect content type: %w", err)
	}
	if !mimetype.EqualsAny(mtype.String(), allowedTypes...) {
		s.log.WithField("mimetype", mtype.String()).Warn("upload rejected")
		return Upload{}, apperr.Validation("only image files are allowed (jpeg, png, gif, webp)")
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return Upload{}, fmt.Errorf("rewind upload: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return Upload{}, fmt.Errorf("create upload dir: %w", err)
	}

	filename := primitive.NewObjectID().Hex() + mtype.Extension()
	fullPath := filepath.Join(s.dir, filename)

	out, err := os.Create(fullPath)
	if err != nil {
		return Upload{}, fmt.Errorf("create file: %w", err)
	}

	// One byte past the limit tells an oversized stream apart from an exact fit.
	written, err := io.Copy(out, io.LimitReader(src, s.maxSize+1))
	closeErr := out.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && written > s.maxSize {
		err = s.tooLarge()
	}
	if err != nil {
		_ = os.Remove(fullPath)
		if errors.Is(err, apperr.ErrValidation) {
			return Upload{}, err
		}
		return Upload{}, fmt.Errorf("write file: %w", err)
	}

	s.log.WithFields(logrus.Fields{"file": filename, "size": written}).Info("file uploaded")
	return Upload{
		Filename: filename,
		Path:     PublicPrefix + filename,
		Mimetype: mtype.String(),
		Size:     written,
	}, nil
}

// Delete removes a stored file by name. Names that would resolve outside
// the upload directory are refused.
func (s *Storage) Delete(filename string) error {
	target, err := s.resolve(filename)
	if err != nil {
		return err
	}

	if err := os.Remove(target); err != nil {
		if os.IsNotExist(err) {
			return errFileNotFound
		}
		return fmt.Errorf("remove file: %w", err)
	}

	s.log.WithField("file", filepath.Base(target)).Info("file deleted")
	return nil
}

func (s *Storage) resolve(filename string) (string, error) {
	name := strings.TrimSpace(filename)
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		s.log.WithField("file", filename).Warn("refusing to delete path")
		return "", apperr.Validation("invalid filename")
	}

	target := filepath.Clean(filepath.Join(s.dir, name))
	if !strings.HasPrefix(target, s.dir+string(os.PathSeparator)) {
		s.log.WithField("file", filename).Warn("refusing to delete path outside upload dir")
		return "", apperr.Validation("invalid filename")
	}
	return target, nil
}

func (s *Storage) tooLarge() error {
	return apperr.Validation(fmt.Sprintf("file too large (max %dMB)", s.maxSize>>20))
}
