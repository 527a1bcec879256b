package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStringList_DecodesStringAndArray(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"topics": "TCP/IP, Routing ,, Switching, Routing"})
	require.NoError(t, err)
	var fromString Course
	require.NoError(t, bson.Unmarshal(raw, &fromString))
	assert.Equal(t, StringList{"TCP/IP", "Routing", "Switching"}, fromString.Topics)

	raw, err = bson.Marshal(bson.M{"topics": bson.A{" SQL ", "NoSQL", ""}})
	require.NoError(t, err)
	var fromArray Course
	require.NoError(t, bson.Unmarshal(raw, &fromArray))
	assert.Equal(t, StringList{"SQL", "NoSQL"}, fromArray.Topics)

	raw, err = bson.Marshal(bson.M{"topics": 42})
	require.NoError(t, err)
	var bad Course
	assert.Error(t, bson.Unmarshal(raw, &bad))
}

func TestStringList_MarshalsNilAsEmptyArray(t *testing.T) {
	raw, err := bson.Marshal(Book{Title: "Go"})
	require.NoError(t, err)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))
	assert.Equal(t, bson.A{}, doc["topics"])
}

func TestUser_CloneDoesNotAlias(t *testing.T) {
	book := primitive.NewObjectID()
	u := &User{
		Interests:  StringList{"Go"},
		Favourites: Favourites{Books: []primitive.ObjectID{book}, Courses: []primitive.ObjectID{}},
		Cart:       []CartItem{{BookID: book, Title: "Go"}},
	}

	c := u.Clone()
	c.Interests[0] = "Rust"
	c.Favourites.Books = append(c.Favourites.Books, primitive.NewObjectID())
	c.Cart[0].Title = "changed"

	assert.Equal(t, StringList{"Go"}, u.Interests)
	assert.Len(t, u.Favourites.Books, 1)
	assert.Equal(t, "Go", u.Cart[0].Title)
	assert.NotNil(t, c.Favourites.Courses)
	assert.Nil(t, c.PaymentMethods)
}

func TestUser_PublicHidesSecrets(t *testing.T) {
	u := &User{ID: primitive.NewObjectID(), Name: "Anna", Email: "anna@example.com", PasswordHash: "hash"}

	raw, err := json.Marshal(u.Public())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "hash")
	assert.Contains(t, string(raw), `"interests":[]`)
	assert.Contains(t, string(raw), `"books":[]`)

	raw, err = json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "passwordHash")
}

func TestUser_LedgerQueries(t *testing.T) {
	owned, carted := primitive.NewObjectID(), primitive.NewObjectID()
	u := &User{Purchased: []primitive.ObjectID{owned}, Cart: []CartItem{{BookID: carted}}}

	assert.True(t, u.HasPurchased(owned))
	assert.False(t, u.HasPurchased(carted))
	assert.True(t, u.InCart(carted))
	assert.False(t, u.InCart(owned))
}

func TestBook_Snapshot(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	b := &Book{ID: primitive.NewObjectID(), Title: "CCNA", Author: "Lammle", Price: "40€", Type: BookTypeBook}

	item := b.Snapshot(now)
	assert.Equal(t, CartItem{BookID: b.ID, Title: "CCNA", Author: "Lammle", Price: "40€", Type: BookTypeBook, AddedAt: now}, item)
}
