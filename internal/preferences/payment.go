package preferences

import (
	"regexp"
	"slices"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"elearning/internal/apperr"
	"elearning/internal/models"
)

var (
	lastFourPattern = regexp.MustCompile(`^\d{4}$`)
	expiryPattern   = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
)

var errCardNotFound = apperr.NotFound("payment method not found")

// CardInput is the client-supplied part of a payment method.
type CardInput struct {
	CardType   string
	LastFour   string
	HolderName string
	Expiry     string
}

func (in CardInput) normalize() (models.PaymentMethod, error) {
	card := models.PaymentMethod{
		CardType:   strings.TrimSpace(in.CardType),
		LastFour:   strings.TrimSpace(in.LastFour),
		HolderName: strings.ToUpper(strings.TrimSpace(in.HolderName)),
		Expiry:     strings.TrimSpace(in.Expiry),
	}
	if card.CardType == "" {
		card.CardType = models.CardTypeGeneric
	}
	if !slices.Contains(models.CardTypes, card.CardType) {
		return card, apperr.Validation("cardType must be one of " + strings.Join(models.CardTypes, ", "))
	}
	if !lastFourPattern.MatchString(card.LastFour) {
		return card, apperr.Validation("lastFour must be exactly 4 digits")
	}
	if card.HolderName == "" {
		return card, apperr.Validation("holderName is required")
	}
	if len([]rune(card.HolderName)) > 100 {
		return card, apperr.Validation("holderName must be at most 100 characters")
	}
	if !expiryPattern.MatchString(card.Expiry) {
		return card, apperr.Validation("expiry must be in MM/YY format")
	}
	return card, nil
}

// appendCard adds card to the list. The first card becomes the default.
func appendCard(cards []models.PaymentMethod, card models.PaymentMethod) []models.PaymentMethod {
	card.ID = primitive.NewObjectID()
	card.IsDefault = len(cards) == 0
	return append(cards, card)
}

// removeCard drops the card with id. When the default goes, the first
// remaining card is promoted.
func removeCard(cards []models.PaymentMethod, id primitive.ObjectID) ([]models.PaymentMethod, error) {
	idx := slices.IndexFunc(cards, func(c models.PaymentMethod) bool { return c.ID == id })
	if idx < 0 {
		return cards, errCardNotFound
	}

	wasDefault := cards[idx].IsDefault
	out := append(cards[:idx:idx], cards[idx+1:]...)
	if len(out) > 0 && (wasDefault || !hasDefault(out)) {
		out[0].IsDefault = true
	}
	return out, nil
}

// setDefaultCard marks exactly one card as default in a single pass.
func setDefaultCard(cards []models.PaymentMethod, id primitive.ObjectID) error {
	if !slices.ContainsFunc(cards, func(c models.PaymentMethod) bool { return c.ID == id }) {
		return errCardNotFound
	}
	for i := range cards {
		cards[i].IsDefault = cards[i].ID == id
	}
	return nil
}

func hasDefault(cards []models.PaymentMethod) bool {
	return slices.ContainsFunc(cards, func(c models.PaymentMethod) bool { return c.IsDefault })
}
