package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestIsMatchesByKind(t *testing.T) {
	err := fmt.Errorf("lookup card: %w", NotFound("card not found"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected wrapped not-found error to match ErrNotFound")
	}
	if errors.Is(err, ErrValidation) {
		t.Fatalf("not-found error must not match ErrValidation")
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindValidation:         http.StatusBadRequest,
		KindDuplicateEmail:     http.StatusBadRequest,
		KindConflict:           http.StatusBadRequest,
		KindWrongPassword:      http.StatusBadRequest,
		KindUnauthenticated:    http.StatusUnauthorized,
		KindInvalidToken:       http.StatusUnauthorized,
		KindTokenExpired:       http.StatusUnauthorized,
		KindInvalidCredentials: http.StatusUnauthorized,
		KindNotFound:           http.StatusNotFound,
		KindRateLimited:        http.StatusTooManyRequests,
		KindInternal:           http.StatusInternalServerError,
	}
	for kind, want := range cases {
		if got := HTTPStatus(kind); got != want {
			t.Fatalf("HTTPStatus(%s) = %d, want %d", kind, got, want)
		}
	}
}

func TestPublicMessageHidesInternalCause(t *testing.T) {
	err := Internal(errors.New("connection refused by 10.0.0.4"))
	if got := PublicMessage(err); got != "internal server error" {
		t.Fatalf("expected generic message, got %q", got)
	}
	if got := PublicMessage(errors.New("raw")); got != "internal server error" {
		t.Fatalf("expected generic message for unclassified error, got %q", got)
	}
	if got := PublicMessage(Validation("name is required")); got != "name is required" {
		t.Fatalf("expected validation message, got %q", got)
	}
}

func TestKindOf(t *testing.T) {
	if got := KindOf(fmt.Errorf("x: %w", ErrTokenExpired)); got != KindTokenExpired {
		t.Fatalf("expected KindTokenExpired, got %s", got)
	}
	if got := KindOf(errors.New("plain")); got != KindInternal {
		t.Fatalf("expected KindInternal, got %s", got)
	}
}
