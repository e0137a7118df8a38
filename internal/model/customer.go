package model

import (
	"fmt"
	"strings"
)

// Customer is the identity and contact record of a hotel guest.  Fields are
// unexported so that every write goes through validation; a failed write
// leaves the previous values in place.
//
// Fields:
//  id    – opaque identifier, accepted as-is (uniqueness is enforced by the
//          customers table, not here).
//  name  – non-empty display name.
//  email – basic local@domain address.
//  phone – optional phone number.
type Customer struct {
	id    string
	name  string
	email string
	phone string
}

// CustomerUpdate carries a partial update.  Nil fields are left untouched.
type CustomerUpdate struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

// CustomerDTO is the flat serialized shape of a Customer.
type CustomerDTO struct {
	CustomerID string `json:"customer_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}

// NewCustomer validates name and email and returns a new Customer.
func NewCustomer(id, name, email, phone string) (*Customer, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	if err := checkEmail(email); err != nil {
		return nil, err
	}
	return &Customer{id: id, name: strings.TrimSpace(name), email: strings.TrimSpace(email), phone: phone}, nil
}

func checkName(name string) error {
	if strings.TrimSpace(name) == "" {
		return invalid("name", "must be a non-empty string")
	}
	return nil
}

func checkEmail(email string) error {
	if !validEmail(strings.TrimSpace(email)) {
		return invalid("email", "must look like local@domain")
	}
	return nil
}

func (c *Customer) ID() string    { return c.id }
func (c *Customer) Name() string  { return c.name }
func (c *Customer) Email() string { return c.email }
func (c *Customer) Phone() string { return c.phone }

// SetName replaces the name when it is non-empty.
func (c *Customer) SetName(name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	c.name = strings.TrimSpace(name)
	return nil
}

// SetEmail replaces the email when it is well formed; otherwise the old
// value is kept.
func (c *Customer) SetEmail(email string) error {
	if err := checkEmail(email); err != nil {
		return err
	}
	c.email = strings.TrimSpace(email)
	return nil
}

// SetPhone replaces the phone number.  Any value, including empty, is valid.
func (c *Customer) SetPhone(phone string) {
	c.phone = phone
}

// Update applies u atomically: every provided field is validated first and
// nothing changes unless all of them pass.
func (c *Customer) Update(u CustomerUpdate) error {
	if u.Name != nil {
		if err := checkName(*u.Name); err != nil {
			return err
		}
	}
	if u.Email != nil {
		if err := checkEmail(*u.Email); err != nil {
			return err
		}
	}
	if u.Name != nil {
		c.name = strings.TrimSpace(*u.Name)
	}
	if u.Email != nil {
		c.email = strings.TrimSpace(*u.Email)
	}
	if u.Phone != nil {
		c.phone = *u.Phone
	}
	return nil
}

// Delete is a stub with no backing store.  It only reports whether id refers
// to this customer; removing the record is the repository's job.
func (c *Customer) Delete(id string) bool {
	return id == c.id
}

// DTO returns the serialized shape of the customer.
func (c *Customer) DTO() CustomerDTO {
	return CustomerDTO{CustomerID: c.id, Name: c.name, Email: c.email, Phone: c.phone}
}

// ToMap returns the four customer fields keyed by their wire names.
func (c *Customer) ToMap() map[string]any {
	return map[string]any{
		"customer_id": c.id,
		"name":        c.name,
		"email":       c.email,
		"phone":       c.phone,
	}
}

// CustomerFromMap rebuilds a Customer from ToMap output.  customer_id, name
// and email are required; phone is optional.
func CustomerFromMap(data map[string]any) (*Customer, error) {
	if err := requireKeys(data, "customer_id", "name", "email"); err != nil {
		return nil, err
	}
	id, err := stringField(data, "customer_id")
	if err != nil {
		return nil, err
	}
	name, err := stringField(data, "name")
	if err != nil {
		return nil, err
	}
	email, err := stringField(data, "email")
	if err != nil {
		return nil, err
	}
	var phone string
	if v, ok := data["phone"]; ok && v != nil {
		if phone, err = stringField(data, "phone"); err != nil {
			return nil, err
		}
	}
	return NewCustomer(id, name, email, phone)
}

// Display renders the customer for logs and diagnostics.
func (c *Customer) Display() string {
	phone := c.phone
	if phone == "" {
		phone = "N/A"
	}
	return fmt.Sprintf("Customer ID: %s\nName: %s\nEmail: %s\nPhone: %s", c.id, c.name, c.email, phone)
}
