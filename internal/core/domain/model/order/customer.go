package order

import (
	"fmt"
	"strings"

	"orderdesk/internal/pkg/errs"
)

// Customer is the purchaser on record for an order. Name and email are
// required; phone is optional. Customer is an immutable value object.
type Customer struct {
	name  string
	email string
	phone string
}

// NewCustomer creates a validated Customer.
// Email must contain an "@"; deeper verification belongs to the ingestion
// side, which hands orders over already populated.
func NewCustomer(name, email, phone string) (Customer, error) {
	if strings.TrimSpace(name) == "" {
		return Customer{}, errs.NewValueIsRequiredError("customer name")
	}
	if strings.TrimSpace(email) == "" {
		return Customer{}, errs.NewValueIsRequiredError("customer email")
	}
	if !strings.Contains(email, "@") {
		return Customer{}, errs.NewValueIsInvalidErrorWithCause(
			"customer email",
			fmt.Errorf("%q is not an email address", email),
		)
	}
	return Customer{name: name, email: email, phone: phone}, nil
}

// Name returns the customer's display name.
func (c Customer) Name() string {
	return c.name
}

// Email returns the customer's email address.
func (c Customer) Email() string {
	return c.email
}

// Phone returns the customer's phone number, empty when not provided.
func (c Customer) Phone() string {
	return c.phone
}
