package repositories

import (
	"context"

	"github.com/emkopo/employee_lending_app/internal/core/domain"
)

// ProductReader defines read operations for product terms reference data.
// The core never writes products; they are owned by the excluded admin surface.
type ProductReader interface {
	// FindProductByID retrieves a product's terms by its unique identifier.
	FindProductByID(ctx context.Context, productID string) (*domain.ProductTerms, error)
}

// ProductRepositoryFacade combines all product-related repository interfaces.
type ProductRepositoryFacade interface {
	ProductReader
}
