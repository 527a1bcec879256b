package preferences

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"elearning/internal/apperr"
	"elearning/internal/models"
	"elearning/internal/store"
)

type fixture struct {
	svc     *Service
	users   *store.MemoryUsers
	courses *store.MemoryCatalogue[models.Course, *models.Course]
	books   *store.MemoryCatalogue[models.Book, *models.Book]
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	f := fixture{
		users:   store.NewMemoryUsers(),
		courses: store.NewMemoryCourses(),
		books:   store.NewMemoryBooks(),
	}
	// Use cost 4 for fast tests.
	f.svc = NewService(f.users, f.courses, f.books, 4, log)
	return f
}

func (f fixture) register(t *testing.T, email string) *models.User {
	t.Helper()
	user, err := f.svc.Register(context.Background(), RegisterInput{
		Name:     "Test User",
		Email:    email,
		Password: "password123",
	})
	require.NoError(t, err)
	return user
}

func TestRegister_NormalizesAndHashes(t *testing.T) {
	f := newFixture(t)

	user, err := f.svc.Register(context.Background(), RegisterInput{
		Name:      "  Anna  ",
		Email:     " Anna@Example.COM ",
		Password:  "password123",
		Interests: []string{"Δίκτυα", " ", "Δίκτυα", "Python"},
	})
	require.NoError(t, err)

	assert.False(t, user.ID.IsZero())
	assert.Equal(t, "Anna", user.Name)
	assert.Equal(t, "anna@example.com", user.Email)
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.Equal(t, models.StringList{"Δίκτυα", "Python"}, user.Interests)
}

func TestRegister_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := map[string]RegisterInput{
		"missing name":   {Email: "a@example.com", Password: "password123"},
		"bad email":      {Name: "A", Email: "not-an-email", Password: "password123"},
		"short password": {Name: "A", Email: "a@example.com", Password: "short"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.Register(ctx, in)
			assert.True(t, errors.Is(err, apperr.ErrValidation), "got %v", err)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.register(t, "dup@example.com")

	_, err := f.svc.Register(context.Background(), RegisterInput{
		Name: "Other", Email: "DUP@example.com", Password: "password456",
	})
	assert.True(t, errors.Is(err, apperr.ErrDuplicateEmail), "got %v", err)
}

func TestAuthenticate(t *testing.T) {
	f := newFixture(t)
	registered := f.register(t, "login@example.com")
	ctx := context.Background()

	user, err := f.svc.Authenticate(ctx, "LOGIN@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	_, wrongPassword := f.svc.Authenticate(ctx, "login@example.com", "wrong-password")
	_, unknownEmail := f.svc.Authenticate(ctx, "nobody@example.com", "password123")
	assert.True(t, errors.Is(wrongPassword, apperr.ErrInvalidCredentials))
	assert.True(t, errors.Is(unknownEmail, apperr.ErrInvalidCredentials))
	assert.Equal(t, apperr.PublicMessage(wrongPassword), apperr.PublicMessage(unknownEmail))
}

func TestAuthenticate_UnknownEmailPaysBcryptCost(t *testing.T) {
	f := newFixture(t)

	cost, err := bcrypt.Cost(f.svc.dummyHash)
	require.NoError(t, err)
	assert.Equal(t, f.svc.bcryptCost, cost)

	_, err = f.svc.Authenticate(context.Background(), "ghost@example.com", "elearning-unknown-account")
	assert.True(t, errors.Is(err, apperr.ErrInvalidCredentials))
}

func TestNewService_InvalidCostFallsBackToDefault(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	svc := NewService(store.NewMemoryUsers(), store.NewMemoryCourses(), store.NewMemoryBooks(), bcrypt.MaxCost+1, log)

	cost, err := bcrypt.Cost(svc.dummyHash)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
	assert.Equal(t, bcrypt.DefaultCost, svc.bcryptCost)
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "pw@example.com")
	ctx := context.Background()

	err := f.svc.ChangePassword(ctx, user.ID, "not-the-password", "newpassword1")
	assert.True(t, errors.Is(err, apperr.ErrWrongPassword), "got %v", err)

	err = f.svc.ChangePassword(ctx, user.ID, "password123", "short")
	assert.True(t, errors.Is(err, apperr.ErrValidation), "got %v", err)

	require.NoError(t, f.svc.ChangePassword(ctx, user.ID, "password123", "newpassword1"))

	_, err = f.svc.Authenticate(ctx, "pw@example.com", "newpassword1")
	assert.NoError(t, err)
	_, err = f.svc.Authenticate(ctx, "pw@example.com", "password123")
	assert.True(t, errors.Is(err, apperr.ErrInvalidCredentials))
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "profile@example.com")
	ctx := context.Background()

	name := "Renamed"
	updated, err := f.svc.UpdateProfile(ctx, user.ID, ProfileUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Empty(t, updated.Interests)

	updated, err = f.svc.UpdateProfile(ctx, user.ID, ProfileUpdate{Interests: []string{"Go", "Go", " Mongo "}})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, models.StringList{"Go", "Mongo"}, updated.Interests)

	blank := "   "
	_, err = f.svc.UpdateProfile(ctx, user.ID, ProfileUpdate{Name: &blank})
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestToggleFavourite(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "fav@example.com")
	ctx := context.Background()

	course := &models.Course{Title: "Go", Category: "Προγραμματισμός"}
	require.NoError(t, f.courses.Insert(ctx, course))

	on, err := f.svc.ToggleFavourite(ctx, user.ID, store.FavouriteCourse, course.ID)
	require.NoError(t, err)
	assert.True(t, on)

	is, err := f.svc.IsFavourite(ctx, user.ID, store.FavouriteCourse, course.ID)
	require.NoError(t, err)
	assert.True(t, is)

	on, err = f.svc.ToggleFavourite(ctx, user.ID, store.FavouriteCourse, course.ID)
	require.NoError(t, err)
	assert.False(t, on)

	profile, err := f.svc.Profile(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, profile.Favourites.Courses)
}

func TestToggleFavourite_MissingItem(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "fav@example.com")

	_, err := f.svc.ToggleFavourite(context.Background(), user.ID, store.FavouriteBook, primitive.NewObjectID())
	assert.True(t, errors.Is(err, apperr.ErrNotFound), "got %v", err)
}

func TestFavourites_PopulatedInOrder(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "fav@example.com")
	ctx := context.Background()

	first := &models.Book{Title: "First"}
	second := &models.Book{Title: "Second"}
	require.NoError(t, f.books.Insert(ctx, first, second))

	require.NoError(t, f.svc.AddFavourite(ctx, user.ID, store.FavouriteBook, second.ID))
	require.NoError(t, f.svc.AddFavourite(ctx, user.ID, store.FavouriteBook, first.ID))
	require.NoError(t, f.svc.AddFavourite(ctx, user.ID, store.FavouriteBook, second.ID))

	favs, err := f.svc.Favourites(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, favs.Books, 2)
	assert.Equal(t, "Second", favs.Books[0].Title)
	assert.Equal(t, "First", favs.Books[1].Title)
	assert.Empty(t, favs.Courses)

	removed, err := f.svc.RemoveFavourite(ctx, user.ID, store.FavouriteCourse, first.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestPaymentMethods_DefaultLifecycle(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "cards@example.com")
	ctx := context.Background()

	cards, err := f.svc.AddPaymentMethod(ctx, user.ID, CardInput{
		CardType: models.CardTypeVisa, LastFour: "1111", HolderName: "anna papadopoulou", Expiry: "12/27",
	})
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.True(t, cards[0].IsDefault)
	assert.Equal(t, "ANNA PAPADOPOULOU", cards[0].HolderName)

	cards, err = f.svc.AddPaymentMethod(ctx, user.ID, CardInput{
		LastFour: "2222", HolderName: "Anna", Expiry: "01/28",
	})
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.False(t, cards[1].IsDefault)
	assert.Equal(t, models.CardTypeGeneric, cards[1].CardType)

	cards, err = f.svc.SetDefaultPaymentMethod(ctx, user.ID, cards[1].ID)
	require.NoError(t, err)
	assert.False(t, cards[0].IsDefault)
	assert.True(t, cards[1].IsDefault)

	cards, err = f.svc.RemovePaymentMethod(ctx, user.ID, cards[1].ID)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.True(t, cards[0].IsDefault)
	assert.Equal(t, "1111", cards[0].LastFour)

	_, err = f.svc.RemovePaymentMethod(ctx, user.ID, primitive.NewObjectID())
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	_, err = f.svc.SetDefaultPaymentMethod(ctx, user.ID, primitive.NewObjectID())
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	cards, err = f.svc.RemovePaymentMethod(ctx, user.ID, cards[0].ID)
	require.NoError(t, err)
	assert.Empty(t, cards)
	assert.NotNil(t, cards)
}

func TestAddPaymentMethod_Validation(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "cards@example.com")

	cases := map[string]CardInput{
		"bad last four":  {LastFour: "12a4", HolderName: "A", Expiry: "12/27"},
		"bad expiry":     {LastFour: "1234", HolderName: "A", Expiry: "13/27"},
		"missing holder": {LastFour: "1234", Expiry: "12/27"},
		"bad card type":  {CardType: "Diners", LastFour: "1234", HolderName: "A", Expiry: "12/27"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.AddPaymentMethod(context.Background(), user.ID, in)
			assert.True(t, errors.Is(err, apperr.ErrValidation), "got %v", err)
		})
	}
}

func TestSetDefaultPaymentMethod_ConcurrentLeavesOneDefault(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "cards@example.com")
	ctx := context.Background()

	var cards []models.PaymentMethod
	var err error
	for _, last := range []string{"1111", "2222", "3333", "4444"} {
		cards, err = f.svc.AddPaymentMethod(ctx, user.ID, CardInput{LastFour: last, HolderName: "A", Expiry: "12/27"})
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(id primitive.ObjectID) {
			defer wg.Done()
			_, err := f.svc.SetDefaultPaymentMethod(ctx, user.ID, id)
			assert.NoError(t, err)
		}(cards[i%len(cards)].ID)
	}
	wg.Wait()

	final, err := f.svc.PaymentMethods(ctx, user.ID)
	require.NoError(t, err)
	defaults := 0
	for _, c := range final {
		if c.IsDefault {
			defaults++
		}
	}
	assert.Equal(t, 1, defaults)
}
