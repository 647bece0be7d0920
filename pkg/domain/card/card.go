package card

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// NumberPrefix is the fixed issuer part of every card number.
	NumberPrefix = "2555 2254 4554 "
	// MaxPerClient is the number of cards a client may hold across all types.
	MaxPerClient = 6
	// MaxPerType is the number of cards of one type a client may hold.
	MaxPerType = 3
	// Validity is how long a card stays valid after issuance.
	Validity = 1 // years
)

// Type is the funding kind of a card.
type Type string

const (
	Credit Type = "CREDIT"
	Debit  Type = "DEBIT"
)

// Color is the card tier.
type Color string

const (
	Silver   Color = "SILVER"
	Gold     Color = "GOLD"
	Titanium Color = "TITANIUM"
	Platinum Color = "PLATINUM"
)

// Card is a payment card issued to a client.
type Card struct {
	ID       uuid.UUID
	Holder   string
	Number   string
	CVV      int
	Type     Type
	Color    Color
	FromDate time.Time
	ThruDate time.Time
	ClientID uuid.UUID
}

// ParseType accepts a card type name in any case.
func ParseType(s string) (Type, error) {
	switch t := Type(strings.ToUpper(strings.TrimSpace(s))); t {
	case Credit, Debit:
		return t, nil
	}
	return "", fmt.Errorf("unknown card type %q", s)
}

// ParseColor accepts a card color name in any case.
func ParseColor(s string) (Color, error) {
	switch c := Color(strings.ToUpper(strings.TrimSpace(s))); c {
	case Silver, Gold, Titanium, Platinum:
		return c, nil
	}
	return "", fmt.Errorf("unknown card color %q", s)
}

// Issue creates a card with a random number and CVV, valid from now for one year.
func Issue(clientID uuid.UUID, holder string, kind Type, color Color, now time.Time) (*Card, error) {
	suffix, err := randomDigits(4)
	if err != nil {
		return nil, fmt.Errorf("rand: %w", err)
	}
	cvv, err := rand.Int(rand.Reader, big.NewInt(900))
	if err != nil {
		return nil, fmt.Errorf("rand: %w", err)
	}
	return &Card{
		ID:       uuid.New(),
		Holder:   holder,
		Number:   NumberPrefix + suffix,
		CVV:      100 + int(cvv.Int64()),
		Type:     kind,
		Color:    color,
		FromDate: now,
		ThruDate: now.AddDate(Validity, 0, 0),
		ClientID: clientID,
	}, nil
}

// CountOfType returns how many cards in cards have the given type.
func CountOfType(cards []*Card, kind Type) int {
	n := 0
	for _, c := range cards {
		if c.Type == kind {
			n++
		}
	}
	return n
}

// randomDigits returns count uniformly distributed decimal digits.
// Bytes >= 250 are rejected to avoid modulo bias.
func randomDigits(count int) (string, error) {
	const threshold = 250
	var sb strings.Builder
	sb.Grow(count)
	buf := make([]byte, 16)
	for sb.Len() < count {
		n, err := rand.Read(buf)
		if err != nil {
			return "", err
		}
		for i := 0; i < n && sb.Len() < count; i++ {
			if b := buf[i]; b < threshold {
				sb.WriteByte('0' + b%10)
			}
		}
	}
	return sb.String(), nil
}
