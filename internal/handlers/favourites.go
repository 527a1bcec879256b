package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"elearning/internal/preferences"
	"elearning/internal/store"
)

type favouriteTarget struct {
	user primitive.ObjectID
	kind store.FavouriteKind
	item primitive.ObjectID
}

// favouriteParams reads /:type/:id for the authenticated user.
func favouriteParams(c *gin.Context) (favouriteTarget, bool) {
	userID, ok := currentUser(c)
	if !ok {
		return favouriteTarget{}, false
	}

	kind, err := store.ParseFavouriteKind(c.Param("type"))
	if err != nil {
		respondError(c, err)
		return favouriteTarget{}, false
	}

	itemID, ok := objectIDParam(c, "id", string(kind)+" not found")
	if !ok {
		return favouriteTarget{}, false
	}
	return favouriteTarget{user: userID, kind: kind, item: itemID}, true
}

func GetFavourites(prefs *preferences.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}

		favs, err := prefs.Favourites(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, favs)
	}
}

func CheckFavourite(prefs *preferences.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, ok := favouriteParams(c)
		if !ok {
			return
		}

		is, err := prefs.IsFavourite(c.Request.Context(), t.user, t.kind, t.item)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, gin.H{"isFavourite": is})
	}
}

func AddFavourite(prefs *preferences.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, ok := favouriteParams(c)
		if !ok {
			return
		}

		if err := prefs.AddFavourite(c.Request.Context(), t.user, t.kind, t.item); err != nil {
			respondError(c, err)
			return
		}
		respondMessage(c, http.StatusOK, "added to favourites", gin.H{"isFavourite": true})
	}
}

func RemoveFavourite(prefs *preferences.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, ok := favouriteParams(c)
		if !ok {
			return
		}

		removed, err := prefs.RemoveFavourite(c.Request.Context(), t.user, t.kind, t.item)
		if err != nil {
			respondError(c, err)
			return
		}
		respondMessage(c, http.StatusOK, "removed from favourites", gin.H{"isFavourite": false, "removed": removed})
	}
}

func ToggleFavourite(prefs *preferences.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, ok := favouriteParams(c)
		if !ok {
			return
		}

		on, err := prefs.ToggleFavourite(c.Request.Context(), t.user, t.kind, t.item)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, gin.H{"isFavourite": on})
	}
}
