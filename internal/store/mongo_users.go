package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"elearning/internal/apperr"
	"elearning/internal/models"
)

const (
	UsersCollection = "users"

	// maxMutateAttempts bounds compare-and-swap retries under contention.
	maxMutateAttempts = 5
)

var errUserNotFound = apperr.NotFound("user not found")

// MongoUsers keeps one document per user with favourites, payment methods
// and the cart ledger embedded.
type MongoUsers struct {
	coll *mongo.Collection
}

func NewMongoUsers(db *mongo.Database) *MongoUsers {
	return &MongoUsers{coll: db.Collection(UsersCollection)}
}

func (s *MongoUsers) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	now := time.Now()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.Email = normalizeEmail(user.Email)
	user.CreatedAt = now
	user.UpdatedAt = now
	ensureCollections(user)

	if _, err := s.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *MongoUsers) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *MongoUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"email": normalizeEmail(email)})
}

func (s *MongoUsers) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var user models.User
	err := s.coll.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

// Mutate is a compare-and-swap on the revision field: the document is only
// replaced when nobody else wrote it since it was read.
func (s *MongoUsers) Mutate(ctx context.Context, id primitive.ObjectID, fn func(*models.User) error) (*models.User, error) {
	for attempt := 0; attempt < maxMutateAttempts; attempt++ {
		user, err := s.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}

		read := user.Revision
		if err := fn(user); err != nil {
			return nil, err
		}
		ensureCollections(user)
		user.ID = id
		user.Revision = read + 1
		user.UpdatedAt = time.Now()

		swapped, err := s.replaceIfRevision(ctx, user, read)
		if err != nil {
			return nil, err
		}
		if swapped {
			return user, nil
		}
	}
	return nil, apperr.ErrConflict
}

func (s *MongoUsers) replaceIfRevision(ctx context.Context, user *models.User, revision int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": user.ID, "revision": revisionMatch(revision)}, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, apperr.ErrDuplicateEmail
		}
		return false, fmt.Errorf("replace user: %w", err)
	}
	return res.MatchedCount == 1, nil
}

// revisionMatch treats a missing revision as revision zero.
func revisionMatch(revision int64) interface{} {
	if revision == 0 {
		return bson.M{"$in": bson.A{int64(0), int32(0), nil}}
	}
	return revision
}

func (s *MongoUsers) AddFavourite(ctx context.Context, id primitive.ObjectID, kind FavouriteKind, itemID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := s.coll.UpdateByID(ctx, id, bson.M{
		"$addToSet": bson.M{kind.field(): itemID},
		"$set":      bson.M{"updatedAt": time.Now()},
		"$inc":      bson.M{"revision": 1},
	})
	if err != nil {
		return fmt.Errorf("add favourite: %w", err)
	}
	if res.MatchedCount == 0 {
		return errUserNotFound
	}
	return nil
}

// RemoveFavourite only matches when itemID is a member, so the returned flag
// reflects this call's effect.
func (s *MongoUsers) RemoveFavourite(ctx context.Context, id primitive.ObjectID, kind FavouriteKind, itemID primitive.ObjectID) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id, kind.field(): itemID}, bson.M{
		"$pull": bson.M{kind.field(): itemID},
		"$set":  bson.M{"updatedAt": time.Now()},
		"$inc":  bson.M{"revision": 1},
	})
	if err != nil {
		return false, fmt.Errorf("remove favourite: %w", err)
	}
	if res.MatchedCount == 1 {
		return true, nil
	}

	// Distinguish "not a member" from "no such user".
	if _, err := s.FindByID(ctx, id); err != nil {
		return false, err
	}
	return false, nil
}
