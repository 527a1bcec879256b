package store

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"elearning/internal/apperr"
	"elearning/internal/models"
)

// MemoryUsers is a process-local UserStore. A single mutex serialises all
// writes, which makes Mutate trivially atomic per user.
type MemoryUsers struct {
	mu      sync.Mutex
	byID    map[primitive.ObjectID]*models.User
	byEmail map[string]primitive.ObjectID
}

func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{
		byID:    make(map[primitive.ObjectID]*models.User),
		byEmail: make(map[string]primitive.ObjectID),
	}
}

func (s *MemoryUsers) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := normalizeEmail(user.Email)
	if _, taken := s.byEmail[email]; taken {
		return apperr.ErrDuplicateEmail
	}

	now := time.Now()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.Email = email
	user.CreatedAt = now
	user.UpdatedAt = now
	ensureCollections(user)

	s.byID[user.ID] = user.Clone()
	s.byEmail[email] = user.ID
	return nil
}

func (s *MemoryUsers) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byID[id]
	if !ok {
		return nil, errUserNotFound
	}
	return user.Clone(), nil
}

func (s *MemoryUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	id, ok := s.byEmail[normalizeEmail(email)]
	s.mu.Unlock()
	if !ok {
		return nil, errUserNotFound
	}
	return s.FindByID(ctx, id)
}

func (s *MemoryUsers) Mutate(_ context.Context, id primitive.ObjectID, fn func(*models.User) error) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.byID[id]
	if !ok {
		return nil, errUserNotFound
	}

	next := current.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	ensureCollections(next)
	next.ID = id
	next.Revision = current.Revision + 1
	next.UpdatedAt = time.Now()

	email := normalizeEmail(next.Email)
	if email != current.Email {
		if _, taken := s.byEmail[email]; taken {
			return nil, apperr.ErrDuplicateEmail
		}
		delete(s.byEmail, current.Email)
		s.byEmail[email] = id
		next.Email = email
	}

	s.byID[id] = next
	return next.Clone(), nil
}

func (s *MemoryUsers) AddFavourite(_ context.Context, id primitive.ObjectID, kind FavouriteKind, itemID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byID[id]
	if !ok {
		return errUserNotFound
	}
	list := kind.list(&user.Favourites)
	for _, existing := range *list {
		if existing == itemID {
			return nil
		}
	}
	*list = append(*list, itemID)
	user.Revision++
	user.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryUsers) RemoveFavourite(_ context.Context, id primitive.ObjectID, kind FavouriteKind, itemID primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byID[id]
	if !ok {
		return false, errUserNotFound
	}
	list := kind.list(&user.Favourites)
	kept := make([]primitive.ObjectID, 0, len(*list))
	removed := false
	for _, existing := range *list {
		if existing == itemID {
			removed = true
			continue
		}
		kept = append(kept, existing)
	}
	if removed {
		*list = kept
		user.Revision++
		user.UpdatedAt = time.Now()
	}
	return removed, nil
}

// MemoryCatalogue is a process-local Catalogue.
type MemoryCatalogue[T any, PT itemPtr[T]] struct {
	mu         sync.RWMutex
	items      []T
	attributes []string
	notFound   string
}

func NewMemoryCourses() *MemoryCatalogue[models.Course, *models.Course] {
	return &MemoryCatalogue[models.Course, *models.Course]{attributes: CourseAttributes, notFound: "course not found"}
}

func NewMemoryBooks() *MemoryCatalogue[models.Book, *models.Book] {
	return &MemoryCatalogue[models.Book, *models.Book]{attributes: BookAttributes, notFound: "book not found"}
}

func (c *MemoryCatalogue[T, PT]) matches(item *T, f Filter) bool {
	p := PT(item)
	if f.Category != "" && p.ItemCategory() != f.Category {
		return false
	}
	for _, attr := range c.attributes {
		if v := f.attribute(attr); v != "" && p.Attribute(attr) != v {
			return false
		}
	}
	if f.FeaturedOnly && !p.ItemFeatured() {
		return false
	}
	if f.Search != "" && !containsFold(p.SearchFields(), f.Search) {
		return false
	}
	return true
}

func containsFold(fields []string, query string) bool {
	needle := strings.ToLower(query)
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// selectItems returns a copy of the items matching f, newest first.
func (c *MemoryCatalogue[T, PT]) selectItems(f Filter) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, 0)
	for i := range c.items {
		if c.matches(&c.items[i], f) {
			out = append(out, c.items[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := PT(&out[i]), PT(&out[j])
		if !a.ItemCreatedAt().Equal(b.ItemCreatedAt()) {
			return a.ItemCreatedAt().After(b.ItemCreatedAt())
		}
		ai, bi := a.ItemID(), b.ItemID()
		return bytes.Compare(ai[:], bi[:]) > 0
	})
	return out
}

func (c *MemoryCatalogue[T, PT]) List(_ context.Context, f Filter, page Page) (ListResult[T], error) {
	page = NewPage(page.Number, page.Limit)
	all := c.selectItems(f.normalized())
	total := int64(len(all))

	start := page.skip()
	if start < 0 || start > total {
		start = total
	}
	end := start + page.Limit
	if end > total {
		end = total
	}

	return ListResult[T]{
		Items:     append([]T{}, all[start:end]...),
		Total:     total,
		Page:      page.Number,
		PageCount: PageCount(total, page.Limit),
	}, nil
}

func (c *MemoryCatalogue[T, PT]) FindByID(_ context.Context, id primitive.ObjectID) (*T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for i := range c.items {
		if PT(&c.items[i]).ItemID() == id {
			item := c.items[i]
			return &item, nil
		}
	}
	return nil, apperr.NotFound(c.notFound)
}

func (c *MemoryCatalogue[T, PT]) FindMany(_ context.Context, ids []primitive.ObjectID) ([]T, error) {
	c.mu.RLock()
	items := append([]T{}, c.items...)
	c.mu.RUnlock()
	return orderByIDs[T, PT](ids, items), nil
}

func (c *MemoryCatalogue[T, PT]) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	if _, err := c.FindByID(ctx, id); err != nil {
		return false, nil
	}
	return true, nil
}

func (c *MemoryCatalogue[T, PT]) Featured(_ context.Context, limit int64) ([]T, error) {
	items := c.selectItems(Filter{FeaturedOnly: true})
	if limit > 0 && int64(len(items)) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (c *MemoryCatalogue[T, PT]) Search(_ context.Context, query string) ([]T, error) {
	return c.selectItems(Filter{Search: strings.TrimSpace(query)}), nil
}

func (c *MemoryCatalogue[T, PT]) Categories(_ context.Context) ([]string, error) {
	c.mu.RLock()
	items := append([]T{}, c.items...)
	c.mu.RUnlock()

	sort.SliceStable(items, func(i, j int) bool {
		return PT(&items[i]).ItemCreatedAt().Before(PT(&items[j]).ItemCreatedAt())
	})

	seen := make(map[string]struct{})
	categories := []string{"all"}
	for i := range items {
		category := PT(&items[i]).ItemCategory()
		if category == "" {
			continue
		}
		if _, ok := seen[category]; ok {
			continue
		}
		seen[category] = struct{}{}
		categories = append(categories, category)
	}
	return categories, nil
}

func (c *MemoryCatalogue[T, PT]) Insert(_ context.Context, items ...*T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for _, item := range items {
		stampItem[T, PT](item, now)
		c.items = append(c.items, *item)
	}
	return nil
}

func (c *MemoryCatalogue[T, PT]) Count(_ context.Context) (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return int64(len(c.items)), nil
}
