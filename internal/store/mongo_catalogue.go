package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"elearning/internal/apperr"
	"elearning/internal/models"
)

const (
	CoursesCollection = "courses"
	BooksCollection   = "books"
)

var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

// MongoCatalogue serves one catalogue collection.
type MongoCatalogue[T any, PT itemPtr[T]] struct {
	coll         *mongo.Collection
	searchFields []string
	attributes   []string
	notFound     string
}

func NewMongoCourses(db *mongo.Database) *MongoCatalogue[models.Course, *models.Course] {
	return &MongoCatalogue[models.Course, *models.Course]{
		coll:         db.Collection(CoursesCollection),
		searchFields: []string{"title", "description", "category", "instructor"},
		attributes:   CourseAttributes,
		notFound:     "course not found",
	}
}

func NewMongoBooks(db *mongo.Database) *MongoCatalogue[models.Book, *models.Book] {
	return &MongoCatalogue[models.Book, *models.Book]{
		coll:         db.Collection(BooksCollection),
		searchFields: []string{"title", "author", "description", "category"},
		attributes:   BookAttributes,
		notFound:     "book not found",
	}
}

// filterDocument translates a Filter into a query document.
func (c *MongoCatalogue[T, PT]) filterDocument(f Filter) bson.M {
	f = f.normalized()
	filter := bson.M{}

	if f.Category != "" {
		filter["category"] = f.Category
	}
	for _, attr := range c.attributes {
		if v := f.attribute(attr); v != "" {
			filter[attr] = v
		}
	}
	if f.FeaturedOnly {
		filter["featured"] = true
	}
	if f.Search != "" {
		filter["$or"] = c.searchClauses(f.Search)
	}
	return filter
}

func (c *MongoCatalogue[T, PT]) searchClauses(query string) []bson.M {
	pattern := regexp.QuoteMeta(query)
	clauses := make([]bson.M, 0, len(c.searchFields))
	for _, field := range c.searchFields {
		clauses = append(clauses, bson.M{field: bson.M{"$regex": pattern, "$options": "i"}})
	}
	return clauses
}

func (c *MongoCatalogue[T, PT]) List(ctx context.Context, f Filter, page Page) (ListResult[T], error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	page = NewPage(page.Number, page.Limit)
	filter := c.filterDocument(f)

	total, err := c.coll.CountDocuments(ctx, filter)
	if err != nil {
		return ListResult[T]{}, fmt.Errorf("count %s: %w", c.coll.Name(), err)
	}

	opts := options.Find().
		SetSkip(page.skip()).
		SetLimit(page.Limit).
		SetSort(newestFirst)

	items, err := c.find(ctx, filter, opts)
	if err != nil {
		return ListResult[T]{}, err
	}

	return ListResult[T]{
		Items:     items,
		Total:     total,
		Page:      page.Number,
		PageCount: PageCount(total, page.Limit),
	}, nil
}

func (c *MongoCatalogue[T, PT]) find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := c.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", c.coll.Name(), err)
	}
	defer cursor.Close(ctx)

	items := make([]T, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.coll.Name(), err)
	}
	return items, nil
}

func (c *MongoCatalogue[T, PT]) FindByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var item T
	err := c.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound(c.notFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find %s by id: %w", c.coll.Name(), err)
	}
	return &item, nil
}

func (c *MongoCatalogue[T, PT]) FindMany(ctx context.Context, ids []primitive.ObjectID) ([]T, error) {
	if len(ids) == 0 {
		return []T{}, nil
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	items, err := c.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	return orderByIDs[T, PT](ids, items), nil
}

func (c *MongoCatalogue[T, PT]) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	n, err := c.coll.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count %s: %w", c.coll.Name(), err)
	}
	return n > 0, nil
}

func (c *MongoCatalogue[T, PT]) Featured(ctx context.Context, limit int64) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return c.find(ctx, bson.M{"featured": true}, options.Find().SetLimit(limit).SetSort(newestFirst))
}

func (c *MongoCatalogue[T, PT]) Search(ctx context.Context, query string) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return c.find(ctx, bson.M{"$or": c.searchClauses(query)}, options.Find().SetSort(newestFirst))
}

func (c *MongoCatalogue[T, PT]) Categories(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"category": bson.M{"$nin": bson.A{nil, ""}}}}},
		{{Key: "$group", Value: bson.M{
			"_id":     "$category",
			"first":   bson.M{"$min": "$createdAt"},
			"firstID": bson.M{"$min": "$_id"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "first", Value: 1}, {Key: "firstID", Value: 1}}}},
	}

	cursor, err := c.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate %s categories: %w", c.coll.Name(), err)
	}
	defer cursor.Close(ctx)

	var groups []struct {
		Category string `bson:"_id"`
	}
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, fmt.Errorf("decode %s categories: %w", c.coll.Name(), err)
	}

	categories := make([]string, 0, len(groups)+1)
	categories = append(categories, "all")
	for _, g := range groups {
		categories = append(categories, g.Category)
	}
	return categories, nil
}

func (c *MongoCatalogue[T, PT]) Insert(ctx context.Context, items ...*T) error {
	if len(items) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	now := time.Now()
	docs := make([]interface{}, 0, len(items))
	for _, item := range items {
		stampItem[T, PT](item, now)
		docs = append(docs, item)
	}
	if _, err := c.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert %s: %w", c.coll.Name(), err)
	}
	return nil
}

func (c *MongoCatalogue[T, PT]) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	n, err := c.coll.EstimatedDocumentCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", c.coll.Name(), err)
	}
	return n, nil
}
