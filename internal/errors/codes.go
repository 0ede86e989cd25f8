package errors

import "net/http"

// Code represents an error code
type Code string

// General error codes
const (
	CodeOK                 Code = "OK"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeNotFound           Code = "NOT_FOUND"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeUnimplemented      Code = "UNIMPLEMENTED"
	CodeInternal           Code = "INTERNAL"
	CodeUnavailable        Code = "UNAVAILABLE"
)

// Domain error codes for inventory, equipment and progression mutations.
// These are expected business failures and are always returned, never panicked.
const (
	CodeItemNotFound         Code = "ITEM_NOT_FOUND"
	CodeDatabaseMissing      Code = "DATABASE_MISSING"
	CodeInvalidOperation     Code = "INVALID_OPERATION"
	CodeInsufficientQuantity Code = "INSUFFICIENT_QUANTITY"
	CodeAlreadyInLocation    Code = "ALREADY_IN_LOCATION"
	CodeBagFull              Code = "BAG_FULL"
	CodePocketFull           Code = "POCKET_FULL"
	CodeStorageFull          Code = "STORAGE_FULL"
	CodeEquipmentFull        Code = "EQUIPMENT_FULL"
	CodeSlotIncompatible     Code = "SLOT_INCOMPATIBLE"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// IsCapacityFull reports whether the code is one of the per-location "full" codes
func (c Code) IsCapacityFull() bool {
	switch c {
	case CodeBagFull, CodePocketFull, CodeStorageFull, CodeEquipmentFull:
		return true
	default:
		return false
	}
}

// HTTPStatus returns the corresponding HTTP status code
func (c Code) HTTPStatus() int {
	switch c {
	case CodeOK:
		return http.StatusOK
	case CodeInvalidArgument, CodeInvalidOperation:
		return http.StatusBadRequest
	case CodeNotFound, CodeItemNotFound:
		return http.StatusNotFound
	case CodeAlreadyExists, CodeAlreadyInLocation:
		return http.StatusConflict
	case CodeFailedPrecondition, CodeInsufficientQuantity, CodeSlotIncompatible:
		return http.StatusPreconditionFailed
	case CodeBagFull, CodePocketFull, CodeStorageFull, CodeEquipmentFull:
		return http.StatusInsufficientStorage
	case CodeUnimplemented:
		return http.StatusNotImplemented
	case CodeUnavailable, CodeDatabaseMissing:
		return http.StatusServiceUnavailable
	case CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
