// Package store persists users and catalogue entities.
//
// Two implementations satisfy the same interfaces: a MongoDB one used in
// production and an in-memory one used for local runs and tests. The
// driver is selected by configuration (STORE_DRIVER).
package store

import (
	"context"
	"math"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"elearning/internal/apperr"
	"elearning/internal/models"
)

const (
	DefaultPageLimit int64 = 50
	MaxPageLimit     int64 = 100

	// queryTimeout bounds a single store round trip.
	queryTimeout = 5 * time.Second
)

// FavouriteKind selects which favourites list an operation targets.
type FavouriteKind string

const (
	FavouriteCourse FavouriteKind = "course"
	FavouriteBook   FavouriteKind = "book"
)

func ParseFavouriteKind(raw string) (FavouriteKind, error) {
	switch FavouriteKind(strings.ToLower(strings.TrimSpace(raw))) {
	case FavouriteCourse:
		return FavouriteCourse, nil
	case FavouriteBook:
		return FavouriteBook, nil
	}
	return "", apperr.Validation(`invalid type, use "course" or "book"`)
}

func (k FavouriteKind) field() string {
	if k == FavouriteCourse {
		return "favourites.courses"
	}
	return "favourites.books"
}

func (k FavouriteKind) list(f *models.Favourites) *[]primitive.ObjectID {
	if k == FavouriteCourse {
		return &f.Courses
	}
	return &f.Books
}

// UserStore is the credential and preference store.
type UserStore interface {
	// Create inserts a user. It fails with apperr.ErrDuplicateEmail when the
	// email is taken.
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// Mutate applies fn to the current user document and persists the result
	// atomically with respect to other Mutate calls on the same user. If fn
	// returns an error nothing is written.
	Mutate(ctx context.Context, id primitive.ObjectID, fn func(*models.User) error) (*models.User, error)
	// AddFavourite appends itemID to the list; a no-op when already present.
	AddFavourite(ctx context.Context, id primitive.ObjectID, kind FavouriteKind, itemID primitive.ObjectID) error
	// RemoveFavourite removes itemID and reports whether it was a member.
	RemoveFavourite(ctx context.Context, id primitive.ObjectID, kind FavouriteKind, itemID primitive.ObjectID) (bool, error)
}

// Filter narrows a catalogue listing. Empty or "all" values mean no filter.
type Filter struct {
	Category     string
	Type         string
	Level        string
	FeaturedOnly bool
	Search       string
}

func (f Filter) normalized() Filter {
	clean := func(v string) string {
		v = strings.TrimSpace(v)
		if strings.EqualFold(v, "all") {
			return ""
		}
		return v
	}
	return Filter{
		Category:     clean(f.Category),
		Type:         clean(f.Type),
		Level:        clean(f.Level),
		FeaturedOnly: f.FeaturedOnly,
		Search:       strings.TrimSpace(f.Search),
	}
}

// attribute returns the filter value for a filterable attribute name.
func (f Filter) attribute(name string) string {
	switch name {
	case "type":
		return f.Type
	case "level":
		return f.Level
	}
	return ""
}

// Page is a 1-based page request.
type Page struct {
	Number int64
	Limit  int64
}

// NewPage applies defaults (1 / DefaultPageLimit), caps the limit and
// clamps the page number so the skip cannot overflow.
func NewPage(number, limit int64) Page {
	if number < 1 {
		number = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	// Keep (number-1)*limit within int64.
	if number-1 > math.MaxInt64/limit {
		number = math.MaxInt64 / limit
	}
	return Page{Number: number, Limit: limit}
}

func (p Page) skip() int64 { return (p.Number - 1) * p.Limit }

// PageCount is ceil(total / limit).
func PageCount(total, limit int64) int64 {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int64(math.Ceil(float64(total) / float64(limit)))
}

type ListResult[T any] struct {
	Items     []T   `json:"items"`
	Total     int64 `json:"total"`
	Page      int64 `json:"page"`
	PageCount int64 `json:"pageCount"`
}

// Catalogue is read-mostly access to one kind of catalogue entity.
type Catalogue[T any] interface {
	List(ctx context.Context, filter Filter, page Page) (ListResult[T], error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*T, error)
	// FindMany returns the items that exist, in the order of ids.
	FindMany(ctx context.Context, ids []primitive.ObjectID) ([]T, error)
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
	Featured(ctx context.Context, limit int64) ([]T, error)
	Search(ctx context.Context, query string) ([]T, error)
	// Categories returns "all" followed by the distinct categories in the
	// order they first appeared.
	Categories(ctx context.Context) ([]string, error)
	Insert(ctx context.Context, items ...*T) error
	Count(ctx context.Context) (int64, error)
}

// Filterable attributes per catalogue.
var (
	CourseAttributes = []string{"level"}
	BookAttributes   = []string{"type"}
)

// itemPtr constrains *T to the catalogue item methods.
type itemPtr[T any] interface {
	*T
	models.CatalogueItem
}

func orderByIDs[T any, PT itemPtr[T]](ids []primitive.ObjectID, items []T) []T {
	byID := make(map[primitive.ObjectID]T, len(items))
	for _, item := range items {
		byID[PT(&item).ItemID()] = item
	}
	ordered := make([]T, 0, len(items))
	for _, id := range ids {
		if item, ok := byID[id]; ok {
			ordered = append(ordered, item)
		}
	}
	return ordered
}

func stampItem[T any, PT itemPtr[T]](item *T, now time.Time) {
	p := PT(item)
	if p.ItemID().IsZero() {
		p.SetItemID(primitive.NewObjectID())
	}
	p.Touch(now)
}

// ensureCollections keeps array fields non-nil so $addToSet and $pull
// always operate on arrays.
func ensureCollections(u *models.User) {
	if u.Interests == nil {
		u.Interests = models.StringList{}
	}
	if u.Favourites.Courses == nil {
		u.Favourites.Courses = []primitive.ObjectID{}
	}
	if u.Favourites.Books == nil {
		u.Favourites.Books = []primitive.ObjectID{}
	}
	if u.PaymentMethods == nil {
		u.PaymentMethods = []models.PaymentMethod{}
	}
	if u.Cart == nil {
		u.Cart = []models.CartItem{}
	}
	if u.Purchased == nil {
		u.Purchased = []primitive.ObjectID{}
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
