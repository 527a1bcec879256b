package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"elearning/internal/ledger"
)

const bookNotFound = "book not found"

func GetCart(l *ledger.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}

		items, err := l.Cart(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, items)
	}
}

// AddToCart reports books already owned or in the cart with added=false
// rather than as an error.
func AddToCart(l *ledger.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		bookID, ok := objectIDParam(c, "bookId", bookNotFound)
		if !ok {
			return
		}

		res, err := l.Add(c.Request.Context(), userID, bookID)
		if err != nil {
			respondError(c, err)
			return
		}
		if !res.Added {
			respondMessage(c, http.StatusOK, res.Reason, res)
			return
		}
		respondMessage(c, http.StatusOK, "added to cart", res)
	}
}

func RemoveFromCart(l *ledger.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		bookID, ok := objectIDParam(c, "bookId", bookNotFound)
		if !ok {
			return
		}

		items, err := l.Remove(c.Request.Context(), userID, bookID)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, items)
	}
}

func Checkout(l *ledger.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}

		res, err := l.Checkout(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		if res.Warning != "" {
			respondMessage(c, http.StatusOK, res.Warning, res)
			return
		}
		respondMessage(c, http.StatusOK, "checkout completed", res)
	}
}

func GetPurchases(l *ledger.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}

		books, err := l.Purchased(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, books)
	}
}
