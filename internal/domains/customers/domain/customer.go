package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyName    = errors.New("customer name is required")
	ErrInvalidEmail = errors.New("email must contain '@'")
)

// Customer is a buyer referenced by orders.
type Customer struct {
	ID        int64
	Name      string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCustomer builds a customer ensuring required invariants.
func NewCustomer(name string) (*Customer, error) {
	c := &Customer{}
	if err := c.Rename(name); err != nil {
		return nil, err
	}
	return c, nil
}

// Rename trims and validates the customer name.
func (c *Customer) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	c.Name = name
	return nil
}

// UpdateContacts applies optional contact fields and validates email if present.
func (c *Customer) UpdateContacts(email, phone, address string) error {
	email = strings.TrimSpace(email)
	if email != "" && !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	c.Email = email
	c.Phone = strings.TrimSpace(phone)
	c.Address = strings.TrimSpace(address)
	return nil
}

// Validate re-applies core invariants for persistence.
func (c *Customer) Validate() error {
	if err := c.Rename(c.Name); err != nil {
		return err
	}
	return c.UpdateContacts(c.Email, c.Phone, c.Address)
}
