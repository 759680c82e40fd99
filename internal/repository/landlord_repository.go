package repository

import (
	"database/sql"

	appErrors "github.com/payloop/propman-backend/internal/errors"
	"github.com/payloop/propman-backend/internal/model"
)

// LandlordRepositoryInterface defines methods used by services
type LandlordRepositoryInterface interface {
	GetByID(id int) (*model.Landlord, error)
}

// LandlordRepository is the concrete implementation
type LandlordRepository struct {
	DB *sql.DB
}

// GetByID fetches a landlord by ID
func (r *LandlordRepository) GetByID(id int) (*model.Landlord, error) {
	query := `
        SELECT id, name, phone, email, created_at
        FROM landlords
        WHERE id = $1
    `
	var l model.Landlord
	var email sql.NullString
	err := r.DB.QueryRow(query, id).Scan(&l.ID, &l.Name, &l.Phone, &email, &l.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewLandlordNotFound(id)
		}
		return nil, err
	}
	l.Email = email.String
	return &l, nil
}
