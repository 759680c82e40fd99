// internal/model/tenant.go
package model

import "time"

// Tenant lifecycle statuses
const (
	TenantActive    = "active"
	TenantInactive  = "inactive"
	TenantSuspended = "suspended"
	TenantDefaulter = "defaulter"
)

type Tenant struct {
	ID            int        `db:"id" json:"id"`
	Name          string     `db:"name" json:"name"`
	Phone         string     `db:"phone" json:"phone"`
	Email         string     `db:"email" json:"email,omitempty"`
	RentAmount    float64    `db:"rent_amount" json:"rent_amount"`
	DueDay        int        `db:"due_day" json:"due_day"` // day of month, 1-31
	UnitNumber    string     `db:"unit_number" json:"unit_number"`
	Status        string     `db:"status" json:"status"`
	MoveInDate    *time.Time `db:"move_in_date" json:"move_in_date,omitempty"`
	PropertyID    int        `db:"property_id" json:"property_id"`
	PropertyName  string     `db:"property_name" json:"property_name"`
	LandlordID    int        `db:"landlord_id" json:"landlord_id"`
	LandlordPhone string     `db:"landlord_phone" json:"landlord_phone"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// FormattedPhone returns the tenant's phone in international +254 form.
func (t *Tenant) FormattedPhone() string {
	return FormatPhone(t.Phone)
}
