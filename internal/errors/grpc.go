package errors

import (
	"google.golang.org/grpc/codes"
)

// GRPCCode returns the corresponding gRPC code
func (c Code) GRPCCode() codes.Code {
	switch c {
	case CodeOK:
		return codes.OK
	case CodeInvalidArgument, CodeInvalidOperation:
		return codes.InvalidArgument
	case CodeNotFound, CodeItemNotFound:
		return codes.NotFound
	case CodeAlreadyExists, CodeAlreadyInLocation:
		return codes.AlreadyExists
	case CodeFailedPrecondition, CodeInsufficientQuantity, CodeSlotIncompatible:
		return codes.FailedPrecondition
	case CodeBagFull, CodePocketFull, CodeStorageFull, CodeEquipmentFull:
		return codes.ResourceExhausted
	case CodeUnimplemented:
		return codes.Unimplemented
	case CodeInternal:
		return codes.Internal
	case CodeUnavailable, CodeDatabaseMissing:
		return codes.Unavailable
	default:
		return codes.Unknown
	}
}

// ExitCode returns the process exit status for err: 0 on success, the gRPC
// code number for typed errors and 1 for anything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var customErr *Error
	if !As(err, &customErr) {
		return 1
	}
	return int(customErr.Code.GRPCCode())
}
