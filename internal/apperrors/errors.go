package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrProjectNotFound indicates that a project with the given ID does not exist.
	ErrProjectNotFound = errors.New("project not found")

	// ErrInvestmentNotFound indicates that an investment with the given ID does not exist.
	ErrInvestmentNotFound = errors.New("investment not found")

	// ErrWithdrawalRequestNotFound indicates that a withdrawal request with the given ID does not exist.
	ErrWithdrawalRequestNotFound = errors.New("withdrawal request not found")

	// ErrTransactionNotFound indicates that a wallet transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrSnapshotNotFound indicates that no upstream snapshot has been recorded yet.
	ErrSnapshotNotFound = errors.New("snapshot not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrNegativeAmount indicates that an amount field has an invalid negative value.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrMissingRequiredField indicates that a required field is missing or empty.
	ErrMissingRequiredField = errors.New("missing required field")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data. These errors indicate that an operation failed, but not
// due to missing entities or validation issues.
var (
	// ErrUpstreamUnavailable indicates the marketplace backend could not be reached
	// or returned a non-success status.
	ErrUpstreamUnavailable = errors.New("upstream marketplace unavailable")

	// ErrFailedToRetrievePortfolio indicates the grouped portfolio view could not be built.
	ErrFailedToRetrievePortfolio = errors.New("failed to retrieve portfolio")

	// ErrFailedToRetrieveActivities indicates the activity feed could not be built.
	ErrFailedToRetrieveActivities = errors.New("failed to retrieve activities")

	// ErrFailedToRefreshSnapshot indicates a refresh run did not complete.
	ErrFailedToRefreshSnapshot = errors.New("failed to refresh snapshot")

	// ErrFailedToGetVersionInfo indicates version information could not be read.
	ErrFailedToGetVersionInfo = errors.New("failed to get version information")
)
