package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"elearning/internal/ledger"
	"elearning/internal/media"
	"elearning/internal/middleware"
	"elearning/internal/models"
	"elearning/internal/preferences"
	"elearning/internal/session"
	"elearning/internal/store"
)

const Version = "1.0.0"

// Deps is everything the HTTP layer needs.
type Deps struct {
	Log         logrus.FieldLogger
	Issuer      *session.Issuer
	Users       store.UserStore
	Courses     store.Catalogue[models.Course]
	Books       store.Catalogue[models.Book]
	Preferences *preferences.Service
	Ledger      *ledger.Ledger
	Media       *media.Storage
	AuthLimiter *middleware.RateLimiter
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = d.Media.MaxSize()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(d.Log),
		middleware.Recovery(d.Log),
		middleware.SecurityHeaders(),
	)
	r.NoRoute(notFoundRoute)

	r.GET("/health", Health())
	r.GET("/api/health", Health())
	r.GET("/api", APIInfo())
	r.Static("/uploads", d.Media.Dir())

	auth := r.Group("/auth")
	{
		limited := middleware.RateLimit(d.AuthLimiter)
		auth.POST("/register", limited, Register(d.Preferences, d.Issuer))
		auth.POST("/login", limited, Login(d.Preferences, d.Issuer))
		auth.GET("/me", middleware.UserAuth(d.Issuer, d.Users, d.Log), GetMe(d.Preferences))
	}

	courses := r.Group("/courses")
	{
		courses.GET("", ListCatalogue(d.Courses))
		courses.GET("/featured", FeaturedCatalogue(d.Courses))
		courses.GET("/categories", CatalogueCategories(d.Courses))
		courses.GET("/search", SearchCatalogue(d.Courses))
		courses.GET("/:id", GetCatalogueItem(d.Courses, "course not found"))
	}

	books := r.Group("/books")
	{
		books.GET("", ListCatalogue(d.Books))
		books.GET("/featured", FeaturedCatalogue(d.Books))
		books.GET("/categories", CatalogueCategories(d.Books))
		books.GET("/search", SearchCatalogue(d.Books))
		books.GET("/:id", GetCatalogueItem(d.Books, bookNotFound))
	}

	user := r.Group("/user")
	user.Use(middleware.UserAuth(d.Issuer, d.Users, d.Log))
	{
		user.GET("/profile", GetProfile(d.Preferences))
		user.PUT("/profile", UpdateProfile(d.Preferences))
		user.PUT("/password", ChangePassword(d.Preferences))

		user.GET("/favourites", GetFavourites(d.Preferences))
		user.GET("/favourites/:type/:id", CheckFavourite(d.Preferences))
		user.POST("/favourites/:type/:id", AddFavourite(d.Preferences))
		user.DELETE("/favourites/:type/:id", RemoveFavourite(d.Preferences))
		user.POST("/favourites/:type/:id/toggle", ToggleFavourite(d.Preferences))

		user.GET("/payment-methods", GetPaymentMethods(d.Preferences))
		user.POST("/payment-methods", AddPaymentMethod(d.Preferences))
		user.DELETE("/payment-methods/:id", RemovePaymentMethod(d.Preferences))
		user.PUT("/payment-methods/:id/default", SetDefaultPaymentMethod(d.Preferences))

		user.GET("/cart", GetCart(d.Ledger))
		user.POST("/cart/checkout", Checkout(d.Ledger))
		user.POST("/cart/:bookId", AddToCart(d.Ledger))
		user.DELETE("/cart/:bookId", RemoveFromCart(d.Ledger))
		user.GET("/purchases", GetPurchases(d.Ledger))
	}

	mediaRoutes := r.Group("/media")
	mediaRoutes.Use(middleware.UserAuth(d.Issuer, d.Users, d.Log))
	{
		mediaRoutes.POST("/upload", UploadImage(d.Media))
		mediaRoutes.DELETE("/:filename", DeleteImage(d.Media))
	}

	return r
}

func Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"message":   "E-Learning API is running",
			"timestamp": time.Now().UTC(),
		})
	}
}

func APIInfo() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "E-Learning API",
			"version": Version,
			"endpoints": gin.H{
				"auth":    "/auth",
				"courses": "/courses",
				"books":   "/books",
				"user":    "/user",
				"media":   "/media",
			},
		})
	}
}
