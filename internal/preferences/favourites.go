package preferences

import (
	"context"
	"slices"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"elearning/internal/apperr"
	"elearning/internal/models"
	"elearning/internal/store"
)

// FavouriteItems is the populated favourites of a user, in favourite order.
type FavouriteItems struct {
	Courses []models.Course `json:"courses"`
	Books   []models.Book   `json:"books"`
}

func (s *Service) Favourites(ctx context.Context, userID primitive.ObjectID) (FavouriteItems, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return FavouriteItems{}, err
	}

	courses, err := s.courses.FindMany(ctx, user.Favourites.Courses)
	if err != nil {
		return FavouriteItems{}, err
	}
	books, err := s.books.FindMany(ctx, user.Favourites.Books)
	if err != nil {
		return FavouriteItems{}, err
	}
	return FavouriteItems{Courses: courses, Books: books}, nil
}

func (s *Service) IsFavourite(ctx context.Context, userID primitive.ObjectID, kind store.FavouriteKind, itemID primitive.ObjectID) (bool, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return false, err
	}
	list := user.Favourites.Books
	if kind == store.FavouriteCourse {
		list = user.Favourites.Courses
	}
	return slices.Contains(list, itemID), nil
}

// AddFavourite is idempotent. The item must exist.
func (s *Service) AddFavourite(ctx context.Context, userID primitive.ObjectID, kind store.FavouriteKind, itemID primitive.ObjectID) error {
	if err := s.ensureItem(ctx, kind, itemID); err != nil {
		return err
	}
	if err := s.users.AddFavourite(ctx, userID, kind, itemID); err != nil {
		return err
	}
	s.favouriteLog(userID, kind, itemID).Info("favourite added")
	return nil
}

// RemoveFavourite reports whether the item was a favourite. Removing a
// non-member is a no-op.
func (s *Service) RemoveFavourite(ctx context.Context, userID primitive.ObjectID, kind store.FavouriteKind, itemID primitive.ObjectID) (bool, error) {
	removed, err := s.users.RemoveFavourite(ctx, userID, kind, itemID)
	if err != nil {
		return false, err
	}
	if removed {
		s.favouriteLog(userID, kind, itemID).Info("favourite removed")
	}
	return removed, nil
}

// ToggleFavourite removes the item when it is a favourite and adds it
// otherwise. It returns the membership after the call. Two concurrent
// toggles of the same item resolve last-writer-wins.
func (s *Service) ToggleFavourite(ctx context.Context, userID primitive.ObjectID, kind store.FavouriteKind, itemID primitive.ObjectID) (bool, error) {
	removed, err := s.RemoveFavourite(ctx, userID, kind, itemID)
	if err != nil {
		return false, err
	}
	if removed {
		return false, nil
	}
	if err := s.AddFavourite(ctx, userID, kind, itemID); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) ensureItem(ctx context.Context, kind store.FavouriteKind, itemID primitive.ObjectID) error {
	var (
		exists bool
		err    error
	)
	if kind == store.FavouriteCourse {
		exists, err = s.courses.Exists(ctx, itemID)
	} else {
		exists, err = s.books.Exists(ctx, itemID)
	}
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound(string(kind) + " not found")
	}
	return nil
}

func (s *Service) favouriteLog(userID primitive.ObjectID, kind store.FavouriteKind, itemID primitive.ObjectID) logrus.FieldLogger {
	return s.log.WithFields(logrus.Fields{
		"area":    "FAVOURITE",
		"user_id": userID.Hex(),
		"kind":    string(kind),
		"item_id": itemID.Hex(),
	})
}
