// internal/errors/errors.go
package appErrors

import "fmt"

// ErrTenantNotFound is a sentinel error
type ErrTenantNotFound struct {
	TenantID int
}

func (e *ErrTenantNotFound) Error() string {
	return fmt.Sprintf("tenant with ID %d not found", e.TenantID)
}

// Helper constructor
func NewTenantNotFound(id int) error {
	return &ErrTenantNotFound{TenantID: id}
}

// ErrLandlordNotFound is a sentinel error
type ErrLandlordNotFound struct {
	LandlordID int
}

func (e *ErrLandlordNotFound) Error() string {
	return fmt.Sprintf("landlord with ID %d not found", e.LandlordID)
}

func NewLandlordNotFound(id int) error {
	return &ErrLandlordNotFound{LandlordID: id}
}
