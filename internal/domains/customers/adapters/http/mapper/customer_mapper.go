package mapper

import (
	"github.com/Apurer/go-gin-backoffice/internal/domains/customers/domain"
	"github.com/Apurer/go-gin-backoffice/internal/domains/customers/ports"
)

// Customer is the HTTP representation of a customer. Empty contact fields render as null.
type Customer struct {
	ID      int64   `json:"id"`
	Name    string  `json:"Name"`
	Email   *string `json:"Email"`
	Phone   *string `json:"Phone"`
	Address *string `json:"Address"`
}

// CustomerMutation captures inbound create/update payloads while preserving field presence.
type CustomerMutation struct {
	Name    *string `json:"Name" form:"Name"`
	Email   *string `json:"Email" form:"Email"`
	Phone   *string `json:"Phone" form:"Phone"`
	Address *string `json:"Address" form:"Address"`
}

func ToCustomerInput(m CustomerMutation) ports.CustomerInput {
	return ports.CustomerInput{Name: m.Name, Email: m.Email, Phone: m.Phone, Address: m.Address}
}

func FromDomainCustomer(c *domain.Customer) *Customer {
	if c == nil {
		return nil
	}
	return &Customer{
		ID:      c.ID,
		Name:    c.Name,
		Email:   optional(c.Email),
		Phone:   optional(c.Phone),
		Address: optional(c.Address),
	}
}

func FromDomainCustomers(list []*domain.Customer) []*Customer {
	out := make([]*Customer, 0, len(list))
	for _, c := range list {
		out = append(out, FromDomainCustomer(c))
	}
	return out
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
