package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"elearning/internal/config"
	"elearning/internal/database"
	"elearning/internal/handlers"
	"elearning/internal/ledger"
	"elearning/internal/media"
	"elearning/internal/middleware"
	"elearning/internal/models"
	"elearning/internal/preferences"
	"elearning/internal/session"
	"elearning/internal/store"
)

const limiterExpiry = 10 * time.Minute

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	if err := Run(logger); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

type stores struct {
	users   store.UserStore
	courses store.Catalogue[models.Course]
	books   store.Catalogue[models.Book]
	close   func(context.Context) error
}

func Run(logger *logrus.Logger) error {
	cfg, help, err := config.Load()
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return err
	}

	logger.WithField("driver", cfg.StoreDriver).Info("starting server")
	defer logger.Info("shutdown complete")

	gin.SetMode(gin.ReleaseMode)

	ctx := context.Background()
	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.close(context.Background()); err != nil {
			logger.WithError(err).Warn("closing store")
		}
	}()

	if cfg.SeedCatalogue {
		if err := database.SeedCatalogue(ctx, st.courses, st.books, logger); err != nil {
			return fmt.Errorf("seeding catalogue: %w", err)
		}
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return fmt.Errorf("creating upload dir: %w", err)
	}

	router := handlers.NewRouter(handlers.Deps{
		Log:         logger,
		Issuer:      session.NewIssuer(cfg.JWTSecret, cfg.TokenTTL),
		Users:       st.users,
		Courses:     st.courses,
		Books:       st.books,
		Preferences: preferences.NewService(st.users, st.courses, st.books, cfg.BcryptCost, logger),
		Ledger:      ledger.New(st.users, st.books, logger),
		Media:       media.NewStorage(cfg.UploadDir, cfg.MaxFileSize, logger),
		AuthLimiter: middleware.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst, limiterExpiry),
	})

	lw := logger.Writer()
	defer lw.Close()

	api := http.Server{
		Handler:      router,
		Addr:         cfg.Addr(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorLog:     log.New(lw, "", 0),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Infof("starting api router at %s", api.Addr)
		serverErrors <- api.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Infof("shutting down: signal %s", sig)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTime)
		defer cancel()

		if err := api.Shutdown(ctx); err != nil {
			api.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}
	return nil
}

func openStores(ctx context.Context, cfg config.Config, logger *logrus.Logger) (stores, error) {
	if cfg.StoreDriver == config.DriverMemory {
		logger.Warn("using in-memory store, data is lost on restart")
		return stores{
			users:   store.NewMemoryUsers(),
			courses: store.NewMemoryCourses(),
			books:   store.NewMemoryBooks(),
			close:   func(context.Context) error { return nil },
		}, nil
	}

	client, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return stores{}, err
	}
	db := client.Database(cfg.DBName)
	logger.WithField("db", db.Name()).Info("mongodb connected")

	for _, ensure := range []func() error{
		func() error { return database.EnsureUserIndexes(db, logger) },
		func() error { return database.EnsureCourseIndexes(db, logger) },
		func() error { return database.EnsureBookIndexes(db, logger) },
	} {
		if err := ensure(); err != nil {
			_ = client.Disconnect(context.Background())
			return stores{}, fmt.Errorf("ensuring indexes: %w", err)
		}
	}

	return stores{
		users:   store.NewMongoUsers(db),
		courses: store.NewMongoCourses(db),
		books:   store.NewMongoBooks(db),
		close:   client.Disconnect,
	}, nil
}
