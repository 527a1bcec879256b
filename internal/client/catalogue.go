package client

import (
	"context"
	"net/http"
	"net/url"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"elearning/internal/models"
	"elearning/internal/store"
)

// Catalogue reads one catalogue collection, either /courses or /books.
type Catalogue[T any] struct {
	c    *Client
	path string
}

func (c *Client) Courses() *Catalogue[models.Course] {
	return &Catalogue[models.Course]{c: c, path: "/courses"}
}

func (c *Client) Books() *Catalogue[models.Book] {
	return &Catalogue[models.Book]{c: c, path: "/books"}
}

// ListOptions narrows a listing. Level applies to courses and Type to books.
type ListOptions struct {
	Category     string
	Level        string
	Type         string
	FeaturedOnly bool
	Search       string
	Page         int64
	Limit        int64
}

func (o ListOptions) query() url.Values {
	q := pageQuery(o.Page, o.Limit)
	set := func(key, value string) {
		if value != "" {
			q.Set(key, value)
		}
	}
	set("category", o.Category)
	set("level", o.Level)
	set("type", o.Type)
	set("search", o.Search)
	if o.FeaturedOnly {
		q.Set("featured", "true")
	}
	return q
}

func (cat *Catalogue[T]) List(ctx context.Context, opts ListOptions) (store.ListResult[T], error) {
	res, err := call[store.ListResult[T]](ctx, cat.c, http.MethodGet, cat.path, opts.query(), nil)
	return res.Data, err
}

func (cat *Catalogue[T]) Get(ctx context.Context, id primitive.ObjectID) (T, error) {
	res, err := call[T](ctx, cat.c, http.MethodGet, cat.path+"/"+id.Hex(), nil, nil)
	return res.Data, err
}

func (cat *Catalogue[T]) Featured(ctx context.Context, limit int64) ([]T, error) {
	res, err := call[[]T](ctx, cat.c, http.MethodGet, cat.path+"/featured", pageQuery(0, limit), nil)
	return res.Data, err
}

func (cat *Catalogue[T]) Categories(ctx context.Context) ([]string, error) {
	res, err := call[[]string](ctx, cat.c, http.MethodGet, cat.path+"/categories", nil, nil)
	return res.Data, err
}

func (cat *Catalogue[T]) Search(ctx context.Context, query string) ([]T, error) {
	res, err := call[[]T](ctx, cat.c, http.MethodGet, cat.path+"/search", url.Values{"q": {query}}, nil)
	return res.Data, err
}
