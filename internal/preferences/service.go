// Package preferences manages user accounts and what each user keeps on
// their profile: interests, favourite courses and books, and stored cards.
package preferences

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"elearning/internal/apperr"
	"elearning/internal/models"
	"elearning/internal/store"
)

const (
	MinPasswordLength = 8
	MaxNameLength     = 100

	// bcrypt only looks at the first 72 bytes and rejects longer input.
	maxPasswordBytes = 72
)

var validate = validator.New()

// Service implements registration, authentication and the per-user
// preference operations on top of a UserStore.
type Service struct {
	users      store.UserStore
	courses    store.Catalogue[models.Course]
	books      store.Catalogue[models.Book]
	bcryptCost int
	log        logrus.FieldLogger

	// dummyHash is compared against on unknown emails so both login
	// failures cost one bcrypt comparison.
	dummyHash []byte
}

func NewService(users store.UserStore, courses store.Catalogue[models.Course], books store.Catalogue[models.Book], bcryptCost int, log logrus.FieldLogger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	dummyHash, err := bcrypt.GenerateFromPassword([]byte("elearning-unknown-account"), bcryptCost)
	if err != nil {
		// Only an out-of-range cost fails; fall back to the default.
		bcryptCost = bcrypt.DefaultCost
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("elearning-unknown-account"), bcryptCost)
	}
	return &Service{
		users:      users,
		courses:    courses,
		books:      books,
		bcryptCost: bcryptCost,
		log:        log,
		dummyHash:  dummyHash,
	}
}

type RegisterInput struct {
	Name      string
	Email     string
	Password  string
	Interests []string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validate.Var(email, "required,email"); err != nil {
		return nil, apperr.Validation("a valid email is required")
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, apperr.ErrDuplicateEmail
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Interests:    models.NormalizeStrings(in.Interests),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"area": "AUTH", "user_id": user.ID.Hex()}).Info("user registered")
	return user, nil
}

// Authenticate checks credentials. Unknown email and wrong password fail
// the same way.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			s.log.WithField("area", "AUTH").Warn("login failed")
			return nil, apperr.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.log.WithFields(logrus.Fields{"area": "AUTH", "user_id": user.ID.Hex()}).Warn("login failed")
		return nil, apperr.ErrInvalidCredentials
	}
	return user, nil
}

func (s *Service) Profile(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	return s.users.FindByID(ctx, userID)
}

// ProfileUpdate carries optional changes; nil fields are left untouched.
type ProfileUpdate struct {
	Name      *string
	Interests []string
}

func (s *Service) UpdateProfile(ctx context.Context, userID primitive.ObjectID, upd ProfileUpdate) (*models.User, error) {
	var name string
	if upd.Name != nil {
		name = strings.TrimSpace(*upd.Name)
		if err := validateName(name); err != nil {
			return nil, err
		}
	}

	user, err := s.users.Mutate(ctx, userID, func(u *models.User) error {
		if upd.Name != nil {
			u.Name = name
		}
		if upd.Interests != nil {
			u.Interests = models.NormalizeStrings(upd.Interests)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"area": "USER", "user_id": userID.Hex()}).Info("profile updated")
	return user, nil
}

func (s *Service) ChangePassword(ctx context.Context, userID primitive.ObjectID, current, next string) error {
	if err := validatePassword(next); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	_, err = s.users.Mutate(ctx, userID, func(u *models.User) error {
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(current)) != nil {
			return apperr.ErrWrongPassword
		}
		u.PasswordHash = string(hash)
		return nil
	})
	if err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{"area": "USER", "user_id": userID.Hex()}).Info("password changed")
	return nil
}

func validateName(name string) error {
	if name == "" {
		return apperr.Validation("name is required")
	}
	if len([]rune(name)) > MaxNameLength {
		return apperr.Validation(fmt.Sprintf("name must be at most %d characters", MaxNameLength))
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return apperr.Validation(fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}
	if len(password) > maxPasswordBytes {
		return apperr.Validation(fmt.Sprintf("password must be at most %d bytes", maxPasswordBytes))
	}
	return nil
}
