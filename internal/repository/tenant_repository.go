package repository

import (
	"database/sql"

	"github.com/lib/pq"

	appErrors "github.com/payloop/propman-backend/internal/errors"
	"github.com/payloop/propman-backend/internal/model"
)

// TenantRepositoryInterface defines methods used by services and the scheduler
type TenantRepositoryInterface interface {
	GetByID(id int) (*model.Tenant, error)
	ListByIDs(ids []int) ([]model.Tenant, error)
	FindActiveDueOn(day int) ([]model.Tenant, error)
	FindDefaultersDueOn(day int) ([]model.Tenant, error)
	FindDefaultersDueOnOrBefore(day int) ([]model.Tenant, error)
}

// TenantRepository is the concrete implementation
type TenantRepository struct {
	DB *sql.DB
}

const tenantSelect = `
    SELECT t.id, t.name, t.phone, t.email, t.rent_amount, t.due_day,
           t.unit_number, t.status, t.move_in_date,
           t.property_id, p.name, t.landlord_id, l.phone,
           t.created_at, t.updated_at
    FROM tenants t
    JOIN properties p ON p.id = t.property_id
    JOIN landlords l ON l.id = t.landlord_id
`

func scanTenant(row interface{ Scan(...any) error }) (*model.Tenant, error) {
	var t model.Tenant
	var email sql.NullString
	err := row.Scan(
		&t.ID, &t.Name, &t.Phone, &email, &t.RentAmount, &t.DueDay,
		&t.UnitNumber, &t.Status, &t.MoveInDate,
		&t.PropertyID, &t.PropertyName, &t.LandlordID, &t.LandlordPhone,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Email = email.String
	return &t, nil
}

// GetByID fetches a tenant by ID with its property and landlord joined in
func (r *TenantRepository) GetByID(id int) (*model.Tenant, error) {
	row := r.DB.QueryRow(tenantSelect+` WHERE t.id = $1`, id)
	t, err := scanTenant(row)
	if err == sql.ErrNoRows {
		return nil, appErrors.NewTenantNotFound(id)
	}
	return t, err
}

// ListByIDs fetches tenants matching the given IDs; missing IDs are skipped
func (r *TenantRepository) ListByIDs(ids []int) ([]model.Tenant, error) {
	return r.queryTenants(tenantSelect+` WHERE t.id = ANY($1) ORDER BY t.id`, pq.Array(ids))
}

// FindActiveDueOn returns active tenants whose rent due day equals the given day of month
func (r *TenantRepository) FindActiveDueOn(day int) ([]model.Tenant, error) {
	return r.queryTenants(tenantSelect+` WHERE t.status = $1 AND t.due_day = $2 ORDER BY t.id`,
		model.TenantActive, day)
}

// FindDefaultersDueOn returns defaulting tenants whose due day equals the given day
func (r *TenantRepository) FindDefaultersDueOn(day int) ([]model.Tenant, error) {
	return r.queryTenants(tenantSelect+` WHERE t.status = $1 AND t.due_day = $2 ORDER BY t.id`,
		model.TenantDefaulter, day)
}

// FindDefaultersDueOnOrBefore returns defaulting tenants whose due day is on or
// before the given day (candidate set for the weekly long-overdue notices)
func (r *TenantRepository) FindDefaultersDueOnOrBefore(day int) ([]model.Tenant, error) {
	return r.queryTenants(tenantSelect+` WHERE t.status = $1 AND t.due_day <= $2 ORDER BY t.id`,
		model.TenantDefaulter, day)
}

func (r *TenantRepository) queryTenants(query string, args ...any) ([]model.Tenant, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tenants := []model.Tenant{}
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, *t)
	}
	return tenants, rows.Err()
}
