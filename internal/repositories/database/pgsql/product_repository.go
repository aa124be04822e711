package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/emkopo/employee_lending_app/internal/apperrors"
	"github.com/emkopo/employee_lending_app/internal/core/domain"
	portsrepo "github.com/emkopo/employee_lending_app/internal/core/ports/repositories"
	"github.com/emkopo/employee_lending_app/internal/models"
	"github.com/emkopo/employee_lending_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxProductRepository struct {
	BaseRepository
}

// newPgxProductRepository creates a new repository for product terms reference data.
func newPgxProductRepository(pool PgxPool) portsrepo.ProductRepositoryFacade {
	return &PgxProductRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ProductRepositoryFacade = (*PgxProductRepository)(nil)

// FindProductByID retrieves a product's terms by its unique identifier.
func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.ProductTerms, error) {
	query := `
		SELECT product_id, provider_id, name, interest_rate, interest_type, term_period,
			min_amount, max_amount, min_term, max_term,
			processing_fee, processing_fee_type, insurance_fee, insurance_fee_type,
			is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM products
		WHERE product_id = $1;
	`
	var m models.ProductTerms
	err := r.Pool.QueryRow(ctx, query, productID).Scan(
		&m.ProductID,
		&m.ProviderID,
		&m.Name,
		&m.InterestRate,
		&m.InterestType,
		&m.TermPeriod,
		&m.MinAmount,
		&m.MaxAmount,
		&m.MinTerm,
		&m.MaxTerm,
		&m.ProcessingFee,
		&m.ProcessingFeeType,
		&m.InsuranceFee,
		&m.InsuranceFeeType,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product %s: %w", productID, err)
	}

	product := mapping.ToDomainProductTerms(m)
	return &product, nil
}
