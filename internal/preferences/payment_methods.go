package preferences

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"elearning/internal/models"
)

func (s *Service) PaymentMethods(ctx context.Context, userID primitive.ObjectID) ([]models.PaymentMethod, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return nonNilCards(user.PaymentMethods), nil
}

func (s *Service) AddPaymentMethod(ctx context.Context, userID primitive.ObjectID, in CardInput) ([]models.PaymentMethod, error) {
	card, err := in.normalize()
	if err != nil {
		return nil, err
	}

	user, err := s.users.Mutate(ctx, userID, func(u *models.User) error {
		u.PaymentMethods = appendCard(u.PaymentMethods, card)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.paymentLog(userID).WithField("card_type", card.CardType).Info("payment method added")
	return nonNilCards(user.PaymentMethods), nil
}

func (s *Service) RemovePaymentMethod(ctx context.Context, userID, cardID primitive.ObjectID) ([]models.PaymentMethod, error) {
	user, err := s.users.Mutate(ctx, userID, func(u *models.User) error {
		cards, err := removeCard(u.PaymentMethods, cardID)
		if err != nil {
			return err
		}
		u.PaymentMethods = cards
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.paymentLog(userID).WithField("card_id", cardID.Hex()).Info("payment method removed")
	return nonNilCards(user.PaymentMethods), nil
}

func (s *Service) SetDefaultPaymentMethod(ctx context.Context, userID, cardID primitive.ObjectID) ([]models.PaymentMethod, error) {
	user, err := s.users.Mutate(ctx, userID, func(u *models.User) error {
		return setDefaultCard(u.PaymentMethods, cardID)
	})
	if err != nil {
		return nil, err
	}

	s.paymentLog(userID).WithField("card_id", cardID.Hex()).Info("default payment method set")
	return nonNilCards(user.PaymentMethods), nil
}

func (s *Service) paymentLog(userID primitive.ObjectID) logrus.FieldLogger {
	return s.log.WithFields(logrus.Fields{"area": "PAYMENT", "user_id": userID.Hex()})
}

func nonNilCards(cards []models.PaymentMethod) []models.PaymentMethod {
	if cards == nil {
		return []models.PaymentMethod{}
	}
	return cards
}
