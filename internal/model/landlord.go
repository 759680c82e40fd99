// internal/model/landlord.go
package model

import "time"

type Landlord struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Phone     string    `db:"phone" json:"phone"`
	Email     string    `db:"email" json:"email,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// FormattedPhone returns the landlord's phone in international +254 form.
func (l *Landlord) FormattedPhone() string {
	return FormatPhone(l.Phone)
}
