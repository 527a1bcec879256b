package client

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"elearning/internal/ledger"
	"elearning/internal/models"
	"elearning/internal/preferences"
)

// Favourite kinds accepted in favourite paths.
const (
	KindCourse = "course"
	KindBook   = "book"
)

type favouriteState struct {
	IsFavourite bool `json:"isFavourite"`
}

func favouritePath(kind string, id primitive.ObjectID) string {
	return "/user/favourites/" + kind + "/" + id.Hex()
}

func (c *Client) Favourites(ctx context.Context) (preferences.FavouriteItems, error) {
	res, err := call[preferences.FavouriteItems](ctx, c, http.MethodGet, "/user/favourites", nil, nil)
	return res.Data, err
}

func (c *Client) IsFavourite(ctx context.Context, kind string, id primitive.ObjectID) (bool, error) {
	res, err := call[favouriteState](ctx, c, http.MethodGet, favouritePath(kind, id), nil, nil)
	return res.Data.IsFavourite, err
}

func (c *Client) AddFavourite(ctx context.Context, kind string, id primitive.ObjectID) error {
	_, err := call[favouriteState](ctx, c, http.MethodPost, favouritePath(kind, id), nil, nil)
	return err
}

func (c *Client) RemoveFavourite(ctx context.Context, kind string, id primitive.ObjectID) error {
	_, err := call[favouriteState](ctx, c, http.MethodDelete, favouritePath(kind, id), nil, nil)
	return err
}

// ToggleFavourite returns the membership after the toggle.
func (c *Client) ToggleFavourite(ctx context.Context, kind string, id primitive.ObjectID) (bool, error) {
	res, err := call[favouriteState](ctx, c, http.MethodPost, favouritePath(kind, id)+"/toggle", nil, nil)
	return res.Data.IsFavourite, err
}

type Card struct {
	CardType   string `json:"cardType,omitempty"`
	LastFour   string `json:"lastFour"`
	HolderName string `json:"holderName"`
	Expiry     string `json:"expiry"`
}

func (c *Client) PaymentMethods(ctx context.Context) ([]models.PaymentMethod, error) {
	res, err := call[[]models.PaymentMethod](ctx, c, http.MethodGet, "/user/payment-methods", nil, nil)
	return res.Data, err
}

func (c *Client) AddPaymentMethod(ctx context.Context, card Card) ([]models.PaymentMethod, error) {
	res, err := call[[]models.PaymentMethod](ctx, c, http.MethodPost, "/user/payment-methods", nil, card)
	return res.Data, err
}

func (c *Client) RemovePaymentMethod(ctx context.Context, id primitive.ObjectID) ([]models.PaymentMethod, error) {
	res, err := call[[]models.PaymentMethod](ctx, c, http.MethodDelete, "/user/payment-methods/"+id.Hex(), nil, nil)
	return res.Data, err
}

func (c *Client) SetDefaultPaymentMethod(ctx context.Context, id primitive.ObjectID) ([]models.PaymentMethod, error) {
	res, err := call[[]models.PaymentMethod](ctx, c, http.MethodPut, "/user/payment-methods/"+id.Hex()+"/default", nil, nil)
	return res.Data, err
}

func (c *Client) Cart(ctx context.Context) ([]models.CartItem, error) {
	res, err := call[[]models.CartItem](ctx, c, http.MethodGet, "/user/cart", nil, nil)
	return res.Data, err
}

func (c *Client) AddToCart(ctx context.Context, bookID primitive.ObjectID) (ledger.AddResult, error) {
	res, err := call[ledger.AddResult](ctx, c, http.MethodPost, "/user/cart/"+bookID.Hex(), nil, nil)
	return res.Data, err
}

func (c *Client) RemoveFromCart(ctx context.Context, bookID primitive.ObjectID) ([]models.CartItem, error) {
	res, err := call[[]models.CartItem](ctx, c, http.MethodDelete, "/user/cart/"+bookID.Hex(), nil, nil)
	return res.Data, err
}

func (c *Client) Checkout(ctx context.Context) (ledger.CheckoutResult, error) {
	res, err := call[ledger.CheckoutResult](ctx, c, http.MethodPost, "/user/cart/checkout", nil, nil)
	return res.Data, err
}

func (c *Client) Purchases(ctx context.Context) ([]models.Book, error) {
	res, err := call[[]models.Book](ctx, c, http.MethodGet, "/user/purchases", nil, nil)
	return res.Data, err
}
