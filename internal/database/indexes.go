package database

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"elearning/internal/store"
)

func EnsureUserIndexes(db *mongo.Database, log logrus.FieldLogger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection(store.UsersCollection).Indexes()

	emailIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetName("email_unique").
			SetUnique(true),
	}

	log.Info("creating email_unique index")
	if _, err := indexes.CreateOne(ctx, emailIndex); err != nil {
		return fmt.Errorf("users email index: %w", err)
	}
	return nil
}

func EnsureCourseIndexes(db *mongo.Database, log logrus.FieldLogger) error {
	return ensureCatalogueIndexes(db.Collection(store.CoursesCollection), "level", log)
}

func EnsureBookIndexes(db *mongo.Database, log logrus.FieldLogger) error {
	return ensureCatalogueIndexes(db.Collection(store.BooksCollection), "type", log)
}

// ensureCatalogueIndexes covers the listing filters and the newest-first sort.
func ensureCatalogueIndexes(coll *mongo.Collection, attribute string, log logrus.FieldLogger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	idx := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "category", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("category_createdAt"),
		},
		{
			Keys:    bson.D{{Key: attribute, Value: 1}},
			Options: options.Index().SetName(attribute + "_index"),
		},
		{
			Keys:    bson.D{{Key: "featured", Value: 1}},
			Options: options.Index().SetName("featured_index"),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}},
			Options: options.Index().SetName("createdAt_desc"),
		},
	}

	log.WithField("collection", coll.Name()).Info("creating catalogue indexes")
	if _, err := coll.Indexes().CreateMany(ctx, idx); err != nil {
		return fmt.Errorf("%s indexes: %w", coll.Name(), err)
	}
	return nil
}
