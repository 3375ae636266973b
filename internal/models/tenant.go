package models

import "time"

// Tenant is an organization (a lab) owning an isolated set of records.
// Its id is never reassigned and the row is never deleted in normal
// operation.
type Tenant struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	ContactEmail string    `db:"contact_email" json:"contact_email"`
	ContactPhone *string   `db:"contact_phone" json:"contact_phone,omitempty"`
	AddressLine1 *string   `db:"address_line1" json:"address_line1,omitempty"`
	AddressLine2 *string   `db:"address_line2" json:"address_line2,omitempty"`
	City         *string   `db:"city" json:"city,omitempty"`
	State        *string   `db:"state" json:"state,omitempty"`
	Country      *string   `db:"country" json:"country,omitempty"`
	PostalCode   *string   `db:"postal_code" json:"postal_code,omitempty"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// RegisterTenantInput carries the tenant profile plus the first admin
// user. Both are created as one atomic unit.
type RegisterTenantInput struct {
	Name         string  `json:"name"`
	ContactEmail string  `json:"contact_email"`
	ContactPhone *string `json:"contact_phone"`
	AddressLine1 *string `json:"address_line1"`
	AddressLine2 *string `json:"address_line2"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	Country      *string `json:"country"`
	PostalCode   *string `json:"postal_code"`

	AdminEmail     string  `json:"admin_email"`
	AdminPassword  string  `json:"admin_password"`
	AdminFirstName string  `json:"admin_first_name"`
	AdminLastName  string  `json:"admin_last_name"`
	AdminPhone     *string `json:"admin_phone"`
}
