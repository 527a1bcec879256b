package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Course levels.
const (
	LevelBeginner     = "Αρχάριο"
	LevelIntermediate = "Μεσαίο"
	LevelAdvanced     = "Προχωρημένο"
)

// Book types.
const (
	BookTypeBook  = "book"
	BookTypeVideo = "video"
)

const (
	DefaultCourseImage = "assets/img/courses/default-course.jpg"
	DefaultBookImage   = "assets/img/books/default-book.jpg"
	FreePrice          = "Δωρεάν"
)

// CatalogueItem is implemented by every read-mostly catalogue entity.
// The in-memory store filters through it; the Mongo store filters in the query.
type CatalogueItem interface {
	ItemID() primitive.ObjectID
	SetItemID(id primitive.ObjectID)
	ItemCategory() string
	ItemFeatured() bool
	ItemCreatedAt() time.Time
	// Touch sets the creation time when unset and refreshes the update time.
	Touch(now time.Time)
	// Attribute returns the value of a filterable field such as "type" or "level".
	Attribute(name string) string
	// SearchFields returns the text fields matched by free-text search.
	SearchFields() []string
}

type Course struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Category    string             `bson:"category" json:"category"`
	Instructor  string             `bson:"instructor" json:"instructor"`
	Duration    string             `bson:"duration" json:"duration"`
	Level       string             `bson:"level" json:"level"`
	Students    int                `bson:"students" json:"students"`
	Rating      float64            `bson:"rating" json:"rating"`
	Image       string             `bson:"image" json:"image"`
	Featured    bool               `bson:"featured" json:"featured"`
	Topics      StringList         `bson:"topics" json:"topics"`
	Price       string             `bson:"price" json:"price"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (c *Course) ItemID() primitive.ObjectID      { return c.ID }
func (c *Course) SetItemID(id primitive.ObjectID) { c.ID = id }
func (c *Course) ItemCategory() string            { return c.Category }
func (c *Course) ItemFeatured() bool              { return c.Featured }
func (c *Course) ItemCreatedAt() time.Time        { return c.CreatedAt }

func (c *Course) Touch(now time.Time) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
}

func (c *Course) Attribute(name string) string {
	if name == "level" {
		return c.Level
	}
	return ""
}

func (c *Course) SearchFields() []string {
	return []string{c.Title, c.Description, c.Category, c.Instructor}
}

type Book struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Author      string             `bson:"author" json:"author"`
	Description string             `bson:"description" json:"description"`
	Category    string             `bson:"category" json:"category"`
	Type        string             `bson:"type" json:"type"`
	Pages       int                `bson:"pages,omitempty" json:"pages,omitempty"`
	Duration    string             `bson:"duration,omitempty" json:"duration,omitempty"`
	Year        int                `bson:"year,omitempty" json:"year,omitempty"`
	Rating      float64            `bson:"rating" json:"rating"`
	Image       string             `bson:"image" json:"image"`
	Featured    bool               `bson:"featured" json:"featured"`
	Topics      StringList         `bson:"topics" json:"topics"`
	Price       string             `bson:"price" json:"price"`
	Format      string             `bson:"format" json:"format"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (b *Book) ItemID() primitive.ObjectID      { return b.ID }
func (b *Book) SetItemID(id primitive.ObjectID) { b.ID = id }
func (b *Book) ItemCategory() string            { return b.Category }
func (b *Book) ItemFeatured() bool              { return b.Featured }
func (b *Book) ItemCreatedAt() time.Time        { return b.CreatedAt }

func (b *Book) Touch(now time.Time) {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

func (b *Book) Attribute(name string) string {
	if name == "type" {
		return b.Type
	}
	return ""
}

func (b *Book) SearchFields() []string {
	return []string{b.Title, b.Author, b.Description, b.Category}
}

// Snapshot captures the fields kept in a cart entry.
func (b *Book) Snapshot(now time.Time) CartItem {
	return CartItem{
		BookID:  b.ID,
		Title:   b.Title,
		Author:  b.Author,
		Price:   b.Price,
		Image:   b.Image,
		Type:    b.Type,
		AddedAt: now,
	}
}
