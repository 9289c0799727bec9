package errors

import (
	"errors"
	"fmt"
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// Is enables errors.Is() comparison for NotFoundError
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// AlreadyExistsError represents an error when an entity already exists
type AlreadyExistsError struct {
	Entity  string
	Context string // Additional context like "with this code"
}

func (e *AlreadyExistsError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s already exists %s", e.Entity, e.Context)
	}
	return fmt.Sprintf("%s already exists", e.Entity)
}

// Is enables errors.Is() comparison for AlreadyExistsError
func (e *AlreadyExistsError) Is(target error) bool {
	t, ok := target.(*AlreadyExistsError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// UnresolvedCustodianError is returned when a movement destination cannot be resolved
// to an existing, eligible custodian.
type UnresolvedCustodianError struct {
	Kind   string
	ID     string
	Reason string
}

func (e *UnresolvedCustodianError) Error() string {
	msg := fmt.Sprintf("custodian %s %q could not be resolved", e.Kind, e.ID)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// ConflictError represents a write that lost against a concurrent change
type ConflictError struct {
	Entity  string
	Message string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s conflict: %s", e.Entity, e.Message)
}

// PersistenceError wraps a failure of the data store
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence error during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// ImportRowError describes a single spreadsheet row that was excluded from an import
type ImportRowError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

func (e *ImportRowError) Error() string {
	return fmt.Sprintf("line %d ignored: %s", e.Line, e.Reason)
}

// ImportBatchError means a whole import was rejected or failed
type ImportBatchError struct {
	Reason string
	Err    error
}

func (e *ImportBatchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("import failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("import failed: %s", e.Reason)
}

func (e *ImportBatchError) Unwrap() error {
	return e.Err
}

// ConfigurationError represents configuration-related errors
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// Entity Not Found Errors
var (
	ErrAssetNotFound     = &NotFoundError{Entity: "asset"}
	ErrEmployeeNotFound  = &NotFoundError{Entity: "employee"}
	ErrTeamNotFound      = &NotFoundError{Entity: "team"}
	ErrRoleNotFound      = &NotFoundError{Entity: "role"}
	ErrLeaderNotFound    = &NotFoundError{Entity: "leader"}
	ErrImportRunNotFound = &NotFoundError{Entity: "import run"}
)

// Already Exists Errors
var (
	ErrAssetExists      = &AlreadyExistsError{Entity: "asset", Context: "with this primary identifier"}
	ErrEmployeeExists   = &AlreadyExistsError{Entity: "employee", Context: "with this ID"}
	ErrTeamExists       = &AlreadyExistsError{Entity: "team", Context: "with this name in the region"}
	ErrRoleExists       = &AlreadyExistsError{Entity: "role", Context: "with this code"}
	ErrTeamMemberExists = &AlreadyExistsError{Entity: "team member", Context: "in this team"}
)

// Business Logic Errors
var (
	ErrEmptyAssetList    = &ValidationError{Field: "asset_ids", Message: "at least one asset is required"}
	ErrMovementImmutable = errors.New("movements are append-only and cannot be changed")
	ErrStaleRevision     = &ConflictError{Entity: "asset", Message: "asset was modified concurrently"}
	ErrImportNotPending  = &ConflictError{Entity: "import run", Message: "import run is not pending"}
	ErrEmptyImport       = &ImportBatchError{Reason: "no valid rows found in spreadsheet"}
	ErrMemberNotInTeam   = errors.New("employee is not a member of this team")
)

// Helper Functions

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsAlreadyExists checks if an error is an AlreadyExistsError
func IsAlreadyExists(err error) bool {
	var existsErr *AlreadyExistsError
	return errors.As(err, &existsErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsUnresolvedCustodian checks if an error is an UnresolvedCustodianError
func IsUnresolvedCustodian(err error) bool {
	var custodianErr *UnresolvedCustodianError
	return errors.As(err, &custodianErr)
}

// IsConflict checks if an error is a ConflictError
func IsConflict(err error) bool {
	var conflictErr *ConflictError
	return errors.As(err, &conflictErr)
}

// IsPersistence checks if an error is a PersistenceError
func IsPersistence(err error) bool {
	var persistenceErr *PersistenceError
	return errors.As(err, &persistenceErr)
}

// IsImportBatch checks if an error is an ImportBatchError
func IsImportBatch(err error) bool {
	var batchErr *ImportBatchError
	return errors.As(err, &batchErr)
}

// IsConfiguration checks if an error is a ConfigurationError
func IsConfiguration(err error) bool {
	var configErr *ConfigurationError
	return errors.As(err, &configErr)
}

// NewNotFoundError creates a new NotFoundError for a custom entity
func NewNotFoundError(entity string) error {
	return &NotFoundError{Entity: entity}
}

// NewAlreadyExistsError creates a new AlreadyExistsError for a custom entity
func NewAlreadyExistsError(entity, context string) error {
	return &AlreadyExistsError{Entity: entity, Context: context}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewUnresolvedCustodianError creates a new UnresolvedCustodianError
func NewUnresolvedCustodianError(kind, id, reason string) error {
	return &UnresolvedCustodianError{Kind: kind, ID: id, Reason: reason}
}

// NewConflictError creates a new ConflictError
func NewConflictError(entity, message string) error {
	return &ConflictError{Entity: entity, Message: message}
}

// NewPersistenceError wraps a data store failure for the given operation
func NewPersistenceError(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}

// NewImportBatchError creates a new ImportBatchError
func NewImportBatchError(reason string, err error) error {
	return &ImportBatchError{Reason: reason, Err: err}
}

// NewConfigurationError creates a new ConfigurationError
func NewConfigurationError(message string) error {
	return &ConfigurationError{Message: message}
}
