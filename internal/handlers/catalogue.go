package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"elearning/internal/apperr"
	"elearning/internal/store"
)

const defaultFeaturedLimit = 3

// ListCatalogue serves GET /courses and GET /books.
func ListCatalogue[T any](items store.Catalogue[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := parsePaginationParams(c.Query("page"), c.Query("limit"))
		if err != nil {
			respondError(c, err)
			return
		}

		featured, _ := strconv.ParseBool(c.Query("featured"))
		filter := store.Filter{
			Category:     c.Query("category"),
			Type:         c.Query("type"),
			Level:        c.Query("level"),
			FeaturedOnly: featured,
			Search:       c.Query("search"),
		}

		res, err := items.List(c.Request.Context(), filter, page)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, res)
	}
}

func FeaturedCatalogue[T any](items store.Catalogue[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, err := parseLimit(c.Query("limit"), defaultFeaturedLimit)
		if err != nil {
			respondError(c, err)
			return
		}

		res, err := items.Featured(c.Request.Context(), limit)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, res)
	}
}

func CatalogueCategories[T any](items store.Catalogue[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := items.Categories(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, res)
	}
}

func SearchCatalogue[T any](items store.Catalogue[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := strings.TrimSpace(c.Query("q"))
		if q == "" {
			respondError(c, apperr.Validation("search query is required"))
			return
		}

		res, err := items.Search(c.Request.Context(), q)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, res)
	}
}

// GetCatalogueItem serves GET /courses/:id and GET /books/:id.
func GetCatalogueItem[T any](items store.Catalogue[T], notFound string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c, "id", notFound)
		if !ok {
			return
		}

		item, err := items.FindByID(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, item)
	}
}
