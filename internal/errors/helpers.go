package errors

import (
	"errors"
)

// As is a wrapper around errors.As that works with our Error type
func As(err error, target **Error) bool {
	return errors.As(err, target)
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// GetCode extracts the error code from an error
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}

	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Code
	}

	return CodeInternal
}

// GetMeta extracts metadata from an error
func GetMeta(err error) map[string]interface{} {
	if err == nil {
		return nil
	}

	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Meta
	}

	return nil
}

// GetMessage extracts the user-friendly message from an error
func GetMessage(err error) string {
	if err == nil {
		return ""
	}

	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Message
	}

	return err.Error()
}

// Type checking helpers

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return GetCode(err) == CodeNotFound
}

// IsInvalidArgument checks if an error is an invalid argument error
func IsInvalidArgument(err error) bool {
	return GetCode(err) == CodeInvalidArgument
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return GetCode(err) == CodeAlreadyExists
}

// IsInternal checks if an error is an internal error
func IsInternal(err error) bool {
	return GetCode(err) == CodeInternal
}

// IsItemNotFound checks if an error is an item not found error
func IsItemNotFound(err error) bool {
	return GetCode(err) == CodeItemNotFound
}

// IsDatabaseMissing checks if an error reports an absent item catalog
func IsDatabaseMissing(err error) bool {
	return GetCode(err) == CodeDatabaseMissing
}

// IsInvalidOperation checks if an error is an invalid operation error
func IsInvalidOperation(err error) bool {
	return GetCode(err) == CodeInvalidOperation
}

// IsInsufficientQuantity checks if an error is an insufficient quantity error
func IsInsufficientQuantity(err error) bool {
	return GetCode(err) == CodeInsufficientQuantity
}

// IsAlreadyInLocation checks if an error is an already in location error
func IsAlreadyInLocation(err error) bool {
	return GetCode(err) == CodeAlreadyInLocation
}

// IsCapacityFull checks if an error is any of the per-location "full" errors
func IsCapacityFull(err error) bool {
	return GetCode(err).IsCapacityFull()
}

// IsSlotIncompatible checks if an error is a slot incompatible error
func IsSlotIncompatible(err error) bool {
	return GetCode(err) == CodeSlotIncompatible
}
