package client

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client is a registered bank customer.
type Client struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created"`
}

// New creates a client. passwordHash must already be hashed.
func New(firstName, lastName, email, passwordHash string) *Client {
	return &Client{
		ID:        uuid.New(),
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  passwordHash,
		CreatedAt: time.Now().UTC(),
	}
}

// NewFromData creates a Client from raw data (used for DB hydration).
func NewFromData(
	id uuid.UUID,
	firstName, lastName, email, passwordHash string,
	created time.Time,
) *Client {
	return &Client{
		ID:        id,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  passwordHash,
		CreatedAt: created,
	}
}

// FullName is the name printed on cards.
func (c *Client) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}
