package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"elearning/internal/models"
	"elearning/internal/preferences"
	"elearning/internal/session"
)

type RegisterRequest struct {
	Name      string   `json:"name" binding:"required,max=100"`
	Email     string   `json:"email" binding:"required,email"`
	Password  string   `json:"password" binding:"required,min=8"`
	Interests []string `json:"interests"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

func Register(prefs *preferences.Service, issuer *session.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if !bindJSON(c, &req) {
			return
		}

		user, err := prefs.Register(c.Request.Context(), preferences.RegisterInput{
			Name:      req.Name,
			Email:     req.Email,
			Password:  req.Password,
			Interests: req.Interests,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		token, err := issuer.Issue(user.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		respondMessage(c, http.StatusCreated, "registration successful", authResponse{Token: token, User: user.Public()})
	}
}

func Login(prefs *preferences.Service, issuer *session.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if !bindJSON(c, &req) {
			return
		}

		user, err := prefs.Authenticate(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}

		token, err := issuer.Issue(user.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		respondMessage(c, http.StatusOK, "login successful", authResponse{Token: token, User: user.Public()})
	}
}

func GetMe(prefs *preferences.Service) gin.HandlerFunc {
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
		respond(c, http.StatusOK, gin.H{"user": user.Public()})
	}
}
