// Package payment simulates card authorization. There is no gateway behind it:
// every well-formed card input is authorized.
package payment

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sejalm1919/E-Commerce/internal/domain"
)

const last4 = 4

var ErrInvalidInput = errors.New("invalid card payment input")

type Simulator struct {
	transactionID func() string
	now           func() time.Time
}

type Option func(*Simulator)

// WithTransactionIDs replaces the uuid based generator. Ids must stay unique per call.
func WithTransactionIDs(gen func() string) Option {
	return func(s *Simulator) {
		s.transactionID = gen
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Simulator) {
		s.now = now
	}
}

func NewSimulator(opts ...Option) *Simulator {
	s := &Simulator{
		transactionID: uuid.NewString,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Authorize builds a successful CARD payment keeping only the last four
// characters of the card number.
func (s *Simulator) Authorize(card *domain.CardInput) (domain.Payment, error) {
	if card == nil {
		return domain.Payment{}, fmt.Errorf("%w: payment details are missing", ErrInvalidInput)
	}
	number := []rune(card.Number)
	if len(number) < last4 {
		return domain.Payment{}, fmt.Errorf("%w: card number must have at least %d characters", ErrInvalidInput, last4)
	}

	return domain.Payment{
		Method:         domain.PaymentMethodCard,
		Status:         domain.PaymentStatusSuccess,
		CardHolderName: card.HolderName,
		CardLast4:      string(number[len(number)-last4:]),
		TransactionID:  s.transactionID(),
		PaidAt:         s.now(),
	}, nil
}
