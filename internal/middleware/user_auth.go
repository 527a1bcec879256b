package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"elearning/internal/apperr"
	"elearning/internal/session"
	"elearning/internal/store"
)

const userIDKey = "userId"

var errUserGone = apperr.New(apperr.KindUnauthenticated, "user not found")

// UserAuth validates bearer tokens and injects the userId into the context.
// Tokens of users that no longer exist are rejected.
func UserAuth(issuer *session.Issuer, users store.UserStore, log logrus.FieldLogger) gin.HandlerFunc {
	log = log.WithField("area", "AUTH")
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("Authorization"))
		if raw == "" {
			log.Debug("missing token")
			Abort(c, apperr.ErrUnauthenticated)
			return
		}

		parts := strings.Fields(raw)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			log.Debug("invalid token format")
			Abort(c, apperr.ErrInvalidToken)
			return
		}

		userID, err := issuer.Verify(parts[1])
		if err != nil {
			log.WithError(err).Debug("token validation failed")
			Abort(c, err)
			return
		}

		if _, err := users.FindByID(c.Request.Context(), userID); err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				log.WithField("user_id", userID.Hex()).Warn("token for unknown user")
				Abort(c, errUserGone)
				return
			}
			Abort(c, err)
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID returns the authenticated user id set by UserAuth.
func UserID(c *gin.Context) (primitive.ObjectID, bool) {
	value, ok := c.Get(userIDKey)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, ok := value.(primitive.ObjectID)
	return id, ok
}

// Abort writes the error envelope and stops the chain.
func Abort(c *gin.Context, err error) {
	status := apperr.HTTPStatus(apperr.KindOf(err))
	if status == http.StatusInternalServerError && err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"message": apperr.PublicMessage(err),
	})
}
