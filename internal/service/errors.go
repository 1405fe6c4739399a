package service

import (
	"errors"
	"fmt"

	"backoffice-service/internal/repository"
)

// Категории ошибок. Каждая ошибка сервиса оборачивает ровно одну из них.
var (
	ErrValidation = errors.New("validation error")
	ErrReference  = errors.New("reference error")
	ErrConstraint = errors.New("constraint error")
	ErrStorage    = errors.New("storage error")
	ErrNotFound   = errors.New("not found")
)

var (
	ErrEmptyItems        = fmt.Errorf("%w: order must contain at least one item", ErrValidation)
	ErrQuantityInvalid   = fmt.Errorf("%w: quantity must be >= 1", ErrValidation)
	ErrUnitPriceInvalid  = fmt.Errorf("%w: unit price must be >= 0 with at most 2 decimal places", ErrValidation)
	ErrUnknownTable      = fmt.Errorf("%w: unknown table", ErrValidation)
	ErrInvalidTransition = fmt.Errorf("%w: status transition not allowed", ErrValidation)

	ErrCustomerNotFound = fmt.Errorf("%w: customer does not exist", ErrReference)
	ErrProductNotFound  = fmt.Errorf("%w: product does not exist", ErrReference)
	ErrCategoryNotFound = fmt.Errorf("%w: category does not exist", ErrReference)

	ErrInsufficientStock = fmt.Errorf("%w: insufficient stock", ErrConstraint)
	ErrStillReferenced   = fmt.Errorf("%w: row is still referenced", ErrConstraint)
	ErrAlreadyExists     = fmt.Errorf("%w: already exists", ErrConstraint)

	ErrOrderNotFound = fmt.Errorf("%w: order", ErrNotFound)
)

const constraintStockNonNegative = "chk_products_stock_non_negative"

var categories = []error{ErrValidation, ErrReference, ErrConstraint, ErrStorage, ErrNotFound}

func categorized(err error) bool {
	for _, c := range categories {
		if errors.Is(err, c) {
			return true
		}
	}
	return false
}

// mapStorageErr maps anything coming out of the repository layer onto the
// service taxonomy. Foreign key violations here come from deletes, so they
// are restrict failures.
func mapStorageErr(err error) error {
	if err == nil || categorized(err) {
		return err
	}

	var dbErr *repository.DBError
	if errors.As(err, &dbErr) {
		switch {
		case errors.Is(dbErr.Kind, repository.ErrStorage):
			return fmt.Errorf("%w: %w", ErrStorage, err)
		case errors.Is(dbErr.Kind, repository.ErrUniqueViolation):
			return fmt.Errorf("%w: %w", ErrAlreadyExists, err)
		case errors.Is(dbErr.Kind, repository.ErrInvalidData):
			return fmt.Errorf("%w: %w", ErrValidation, err)
		case errors.Is(dbErr.Kind, repository.ErrForeignKeyViolation):
			return fmt.Errorf("%w: %w", ErrStillReferenced, err)
		case dbErr.Constraint == constraintStockNonNegative:
			return fmt.Errorf("%w: %w", ErrInsufficientStock, err)
		default:
			return fmt.Errorf("%w: %w", ErrConstraint, err)
		}
	}

	// context expiry, driver failures and anything unrecognised
	return fmt.Errorf("%w: %w", ErrStorage, err)
}

// mapInsertErr treats a foreign key violation as a missing referenced row.
func mapInsertErr(err error) error {
	if errors.Is(err, repository.ErrForeignKeyViolation) && !categorized(err) {
		return fmt.Errorf("%w: %w", ErrReference, err)
	}
	return mapStorageErr(err)
}
