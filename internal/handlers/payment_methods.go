package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"elearning/internal/preferences"
)

const paymentMethodNotFound = "payment method not found"

type paymentMethodRequest struct {
	CardType   string `json:"cardType"`
	LastFour   string `json:"lastFour" binding:"required,len=4,numeric"`
	HolderName string `json:"holderName" binding:"required,max=100"`
	Expiry     string `json:"expiry" binding:"required"`
}

func GetPaymentMethods(prefs *preferences.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}

		cards, err := prefs.PaymentMethods(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, cards)
	}
}

func AddPaymentMethod(prefs *preferences.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}

		var req paymentMethodRequest
		if !bindJSON(c, &req) {
			return
		}

		cards, err := prefs.AddPaymentMethod(c.Request.Context(), userID, preferences.CardInput{
			CardType:   req.CardType,
			LastFour:   req.LastFour,
			HolderName: req.HolderName,
			Expiry:     req.Expiry,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		respondMessage(c, http.StatusCreated, "payment method added", cards)
	}
}

func RemovePaymentMethod(prefs *preferences.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		cardID, ok := objectIDParam(c, "id", paymentMethodNotFound)
		if !ok {
			return
		}

		cards, err := prefs.RemovePaymentMethod(c.Request.Context(), userID, cardID)
		if err != nil {
			respondError(c, err)
			return
		}
		respondMessage(c, http.StatusOK, "payment method removed", cards)
	}
}

func SetDefaultPaymentMethod(prefs *preferences.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		cardID, ok := objectIDParam(c, "id", paymentMethodNotFound)
		if !ok {
			return
		}

		cards, err := prefs.SetDefaultPaymentMethod(c.Request.Context(), userID, cardID)
		if err != nil {
			respondError(c, err)
			return
		}
		respondMessage(c, http.StatusOK, "default payment method updated", cards)
	}
}
