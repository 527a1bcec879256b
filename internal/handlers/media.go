package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"elearning/internal/apperr"
	"elearning/internal/media"
)

// UploadImage stores the multipart field "image".
func UploadImage(storage *media.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, storage.MaxSize()+1<<20)

		file, err := c.FormFile("image")
		if err != nil {
			var tooLarge *http.MaxBytesError
			switch {
			case errors.As(err, &tooLarge):
				respondError(c, apperr.Validation("file too large"))
			case errors.Is(err, http.ErrMissingFile):
				respondError(c, apperr.Validation("no file uploaded"))
			default:
				respondError(c, apperr.Validation("invalid multipart body"))
			}
			return
		}

		up, err := storage.Save(file)
		if err != nil {
			respondError(c, err)
			return
		}
		respondMessage(c, http.StatusCreated, "file uploaded", up)
	}
}

func DeleteImage(storage *media.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := storage.Delete(c.Param("filename")); err != nil {
			respondError(c, err)
			return
		}
		respondMessage(c, http.StatusOK, "file deleted", nil)
	}
}
