package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Card types accepted for a payment method. CardTypeGeneric is used when none is given.
const (
	CardTypeVisa       = "Visa"
	CardTypeMastercard = "Mastercard"
	CardTypeAmex       = "American Express"
	CardTypeGeneric    = "Κάρτα"
)

var CardTypes = []string{CardTypeVisa, CardTypeMastercard, CardTypeAmex, CardTypeGeneric}

// PaymentMethod is a stored card record. Only the last four digits are kept.
type PaymentMethod struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	CardType   string             `bson:"cardType" json:"cardType"`
	LastFour   string             `bson:"lastFour" json:"lastFour"`
	HolderName string             `bson:"holderName" json:"holderName"`
	Expiry     string             `bson:"expiry" json:"expiry"`
	IsDefault  bool               `bson:"isDefault" json:"isDefault"`
}

// Favourites holds the ordered ids a user bookmarked.
type Favourites struct {
	Courses []primitive.ObjectID `bson:"courses" json:"courses"`
	Books   []primitive.ObjectID `bson:"books" json:"books"`
}

// CartItem is a snapshot of a book taken when it was put in the cart.
type CartItem struct {
	BookID  primitive.ObjectID `bson:"bookId" json:"id"`
	Title   string             `bson:"title" json:"title"`
	Author  string             `bson:"author" json:"author"`
	Price   string             `bson:"price" json:"price"`
	Image   string             `bson:"image" json:"image"`
	Type    string             `bson:"type" json:"type"`
	AddedAt time.Time          `bson:"addedAt" json:"addedAt"`
}

// User represents the application user account.
type User struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name           string               `bson:"name" json:"name"`
	Email          string               `bson:"email" json:"email"`
	PasswordHash   string               `bson:"passwordHash" json:"-"`
	Interests      StringList           `bson:"interests" json:"interests"`
	Favourites     Favourites           `bson:"favourites" json:"favourites"`
	PaymentMethods []PaymentMethod      `bson:"paymentMethods" json:"paymentMethods"`
	Cart           []CartItem           `bson:"cart" json:"cart"`
	Purchased      []primitive.ObjectID `bson:"purchased" json:"purchased"`
	Revision       int64                `bson:"revision" json:"-"`
	CreatedAt      time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// PublicUser is the profile shape returned by the API.
type PublicUser struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Interests  []string   `json:"interests"`
	Favourites Favourites `json:"favourites"`
	CreatedAt  time.Time  `json:"createdAt"`
}

func (u *User) Public() PublicUser {
	interests := []string(u.Interests)
	if interests == nil {
		interests = []string{}
	}
	fav := u.Favourites
	if fav.Courses == nil {
		fav.Courses = []primitive.ObjectID{}
	}
	if fav.Books == nil {
		fav.Books = []primitive.ObjectID{}
	}
	return PublicUser{
		ID:         u.ID.Hex(),
		Name:       u.Name,
		Email:      u.Email,
		Interests:  interests,
		Favourites: fav,
		CreatedAt:  u.CreatedAt,
	}
}

// Clone returns a deep copy so callers can mutate slices without aliasing.
func (u *User) Clone() *User {
	out := *u
	out.Interests = cloneSlice(u.Interests)
	out.Favourites.Courses = cloneSlice(u.Favourites.Courses)
	out.Favourites.Books = cloneSlice(u.Favourites.Books)
	out.PaymentMethods = cloneSlice(u.PaymentMethods)
	out.Cart = cloneSlice(u.Cart)
	out.Purchased = cloneSlice(u.Purchased)
	return &out
}

// cloneSlice copies s, keeping nil and empty distinct.
func cloneSlice[S ~[]E, E any](s S) S {
	if s == nil {
		return nil
	}
	return append(make(S, 0, len(s)), s...)
}

// HasPurchased reports whether bookID is in the purchased set.
func (u *User) HasPurchased(bookID primitive.ObjectID) bool {
	return containsID(u.Purchased, bookID)
}

// InCart reports whether bookID is currently in the cart.
func (u *User) InCart(bookID primitive.ObjectID) bool {
	for _, item := range u.Cart {
		if item.BookID == bookID {
			return true
		}
	}
	return false
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}
