// Package ledger keeps each user's cart and purchased books.
//
// A book moves Available -> InCart -> Purchased. Purchased is terminal and
// removal from the cart moves it back to Available. Every transition is a
// single atomic mutation of the user document.
package ledger

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"elearning/internal/models"
	"elearning/internal/store"
)

// Reasons reported when a book is not added.
const (
	ReasonAlreadyPurchased = "already purchased"
	ReasonAlreadyInCart    = "already in cart"
	WarningEmptyCart       = "cart is empty"
)

type Ledger struct {
	users store.UserStore
	books store.Catalogue[models.Book]
	log   logrus.FieldLogger
	now   func() time.Time
}

func New(users store.UserStore, books store.Catalogue[models.Book], log logrus.FieldLogger) *Ledger {
	return &Ledger{users: users, books: books, log: log, now: time.Now}
}

type AddResult struct {
	Added  bool              `json:"added"`
	Reason string            `json:"reason,omitempty"`
	Cart   []models.CartItem `json:"cart"`
}

type CheckoutResult struct {
	Purchased int                  `json:"purchased"`
	Warning   string               `json:"warning,omitempty"`
	Owned     []primitive.ObjectID `json:"owned"`
}

// Add puts a snapshot of the book in the cart. Books already owned or
// already in the cart are reported, not treated as errors, even when they
// have since left the catalogue.
func (l *Ledger) Add(ctx context.Context, userID, bookID primitive.ObjectID) (AddResult, error) {
	var (
		reason string
		book   *models.Book
	)
	user, err := l.users.Mutate(ctx, userID, func(u *models.User) error {
		reason = ""
		switch {
		case u.HasPurchased(bookID):
			reason = ReasonAlreadyPurchased
		case u.InCart(bookID):
			reason = ReasonAlreadyInCart
		default:
			if book == nil {
				found, err := l.books.FindByID(ctx, bookID)
				if err != nil {
					return err
				}
				book = found
			}
			u.Cart = append(u.Cart, book.Snapshot(l.now()))
		}
		return nil
	})
	if err != nil {
		return AddResult{}, err
	}

	entry := l.entry(userID, bookID)
	if reason != "" {
		entry.WithField("reason", reason).Info("book not added to cart")
		return AddResult{Added: false, Reason: reason, Cart: user.Cart}, nil
	}
	entry.Info("book added to cart")
	return AddResult{Added: true, Cart: user.Cart}, nil
}

// Remove drops the book from the cart; a no-op when it is not there.
func (l *Ledger) Remove(ctx context.Context, userID, bookID primitive.ObjectID) ([]models.CartItem, error) {
	user, err := l.users.Mutate(ctx, userID, func(u *models.User) error {
		u.Cart = slices.DeleteFunc(u.Cart, func(item models.CartItem) bool { return item.BookID == bookID })
		return nil
	})
	if err != nil {
		return nil, err
	}
	l.entry(userID, bookID).Info("book removed from cart")
	return user.Cart, nil
}

// errEmptyCart aborts the checkout mutation so an empty cart writes nothing.
var errEmptyCart = errors.New("empty cart")

// Checkout moves every cart entry into the purchased set and clears the
// cart. An empty cart is a no-op carrying a warning.
func (l *Ledger) Checkout(ctx context.Context, userID primitive.ObjectID) (CheckoutResult, error) {
	var moved int
	user, err := l.users.Mutate(ctx, userID, func(u *models.User) error {
		if len(u.Cart) == 0 {
			return errEmptyCart
		}
		moved = 0
		for _, item := range u.Cart {
			if !u.HasPurchased(item.BookID) {
				u.Purchased = append(u.Purchased, item.BookID)
				moved++
			}
		}
		u.Cart = []models.CartItem{}
		return nil
	})
	if errors.Is(err, errEmptyCart) {
		user, err = l.users.FindByID(ctx, userID)
		moved = 0
	}
	if err != nil {
		return CheckoutResult{}, err
	}

	log := l.log.WithFields(logrus.Fields{"area": "CART", "user_id": userID.Hex()})
	if moved == 0 {
		log.Warn("checkout with empty cart")
		return CheckoutResult{Warning: WarningEmptyCart, Owned: user.Purchased}, nil
	}
	log.WithField("count", moved).Info("checkout completed")
	return CheckoutResult{Purchased: moved, Owned: user.Purchased}, nil
}

func (l *Ledger) Cart(ctx context.Context, userID primitive.ObjectID) ([]models.CartItem, error) {
	user, err := l.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Cart == nil {
		return []models.CartItem{}, nil
	}
	return user.Cart, nil
}

// Purchased returns the owned books that still exist in the catalogue, in
// purchase order.
func (l *Ledger) Purchased(ctx context.Context, userID primitive.ObjectID) ([]models.Book, error) {
	user, err := l.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return l.books.FindMany(ctx, user.Purchased)
}

func (l *Ledger) entry(userID, bookID primitive.ObjectID) logrus.FieldLogger {
	return l.log.WithFields(logrus.Fields{
		"area":    "CART",
		"user_id": userID.Hex(),
		"book_id": bookID.Hex(),
	})
}
