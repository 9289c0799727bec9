package service

import (
	"errors"

	apperrors "asset-management-backend/internal/errors"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// normalizePagination clamps page and pageSize and returns the matching offset
func normalizePagination(page, pageSize int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize, (page - 1) * pageSize
}

// lookupError maps a repository read failure: a missing row becomes notFound,
// anything else a PersistenceError for op
func lookupError(err error, notFound error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return apperrors.NewPersistenceError(op, err)
}

// validationError converts validator output into a ValidationError naming the first bad field
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return apperrors.NewValidationError(fe.Field(), "failed on '"+fe.Tag()+"' rule")
	}
	return apperrors.NewValidationError("", err.Error())
}

func publish(n Notifier, collections ...string) {
	if n != nil {
		n.Publish(collections...)
	}
}
