package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"elearning/internal/preferences"
)

type profileRequest struct {
	Name      *string  `json:"name" binding:"omitempty,max=100"`
	Interests []string `json:"interests"`
}

type passwordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

func GetProfile(prefs *preferences.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}

		user, err := prefs.Profile(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, user.Public())
	}
}

func UpdateProfile(prefs *preferences.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}

		var req profileRequest
		if !bindJSON(c, &req) {
			return
		}

		user, err := prefs.UpdateProfile(c.Request.Context(), userID, preferences.ProfileUpdate{
			Name:      req.Name,
			Interests: req.Interests,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		respondMessage(c, http.StatusOK, "profile updated", user.Public())
	}
}

func ChangePassword(prefs *preferences.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}

		var req passwordRequest
		if !bindJSON(c, &req) {
			return
		}

		if err := prefs.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
			respondError(c, err)
			return
		}
		respondMessage(c, http.StatusOK, "password changed", nil)
	}
}
