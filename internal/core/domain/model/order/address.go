package order

import (
	"strings"

	"orderdesk/internal/pkg/errs"
)

// Address is the shipping destination for an order. All fields except phone
// are required. Address is an immutable value object.
type Address struct {
	name    string
	street  string
	city    string
	state   string
	zip     string
	country string
	phone   string
}

// NewAddress creates a validated shipping Address.
func NewAddress(name, street, city, state, zip, country, phone string) (Address, error) {
	for param, value := range map[string]string{
		"address name":    name,
		"address street":  street,
		"address city":    city,
		"address state":   state,
		"address zip":     zip,
		"address country": country,
	} {
		if strings.TrimSpace(value) == "" {
			return Address{}, errs.NewValueIsRequiredError(param)
		}
	}
	return Address{
		name:    name,
		street:  street,
		city:    city,
		state:   state,
		zip:     zip,
		country: country,
		phone:   phone,
	}, nil
}

// Name returns the recipient name.
func (a Address) Name() string { return a.name }

// Street returns the street line.
func (a Address) Street() string { return a.street }

// City returns the city.
func (a Address) City() string { return a.city }

// State returns the state or region.
func (a Address) State() string { return a.state }

// Zip returns the postal code.
func (a Address) Zip() string { return a.zip }

// Country returns the country.
func (a Address) Country() string { return a.country }

// Phone returns the contact phone at the destination, empty when not provided.
func (a Address) Phone() string { return a.phone }
