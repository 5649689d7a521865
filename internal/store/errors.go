package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrResourceNotFound is returned when no resource matches the requested
	// identifier or structured path.
	ErrResourceNotFound = errors.New("resource was not found")

	// ErrResourceAlreadyExists is returned when a resource with the same
	// identifier or structured path is already stored.
	ErrResourceAlreadyExists = errors.New("resource already exists")

	// ErrResourceNotSaved is returned when a write completes without error
	// but affects no rows.
	ErrResourceNotSaved = errors.New("resource was not saved")

	// ErrInvalidCollection is returned when a provisioning collection file
	// cannot be parsed or fails validation.
	ErrInvalidCollection = errors.New("invalid collection")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing an INSERT, UPDATE or
	// DELETE fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a single row fails.
	ErrScanningRow = errors.New("failed to scan resource row")

	// ErrScanningRows is returned when iterating a multi-row result fails.
	ErrScanningRows = errors.New("failed to scan resource rows")

	// ErrEncodingDocument is returned when a resource cannot be converted to
	// or from its stored JSON document.
	ErrEncodingDocument = errors.New("failed to encode resource document")
)
