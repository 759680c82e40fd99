// internal/model/property.go
package model

import "time"

type Property struct {
	ID         int       `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Location   string    `db:"location" json:"location"`
	LandlordID int       `db:"landlord_id" json:"landlord_id"`
	TotalUnits int       `db:"total_units" json:"total_units"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
