package client

import (
	"context"
	"net/http"

	"elearning/internal/models"
)

type RegisterRequest struct {
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	Interests []string `json:"interests,omitempty"`
}

type Session struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// Register creates an account and keeps the returned token on the client.
func (c *Client) Register(ctx context.Context, in RegisterRequest) (Session, error) {
	res, err := call[Session](ctx, c, http.MethodPost, "/auth/register", nil, in)
	if err != nil {
		return Session{}, err
	}
	c.SetToken(res.Data.Token)
	return res.Data, nil
}

// Login authenticates and keeps the returned token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	res, err := call[Session](ctx, c, http.MethodPost, "/auth/login", nil, map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return Session{}, err
	}
	c.SetToken(res.Data.Token)
	return res.Data, nil
}

func (c *Client) Logout() {
	c.SetToken("")
}

func (c *Client) Me(ctx context.Context) (models.PublicUser, error) {
	res, err := call[struct {
		User models.PublicUser `json:"user"`
	}](ctx, c, http.MethodGet, "/auth/me", nil, nil)
	return res.Data.User, err
}

type ProfileUpdate struct {
	Name      *string  `json:"name,omitempty"`
	Interests []string `json:"interests,omitempty"`
}

func (c *Client) UpdateProfile(ctx context.Context, upd ProfileUpdate) (models.PublicUser, error) {
	res, err := call[models.PublicUser](ctx, c, http.MethodPut, "/user/profile", nil, upd)
	return res.Data, err
}

func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	_, err := call[struct{}](ctx, c, http.MethodPut, "/user/password", nil, map[string]string{
		"currentPassword": current,
		"newPassword":     next,
	})
	return err
}
