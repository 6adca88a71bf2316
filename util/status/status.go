package status

import (
	stderrors "errors"
	"flag"
	"fmt"
	"runtime"

	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var LogErrorStackTraces = flag.Bool("app.log_error_stack_traces", false, "If true, stack traces will be printed for errors that have them.")

const stackDepth = 10

type wrappedError struct {
	error
	*stack
}

func (w *wrappedError) GRPCStatus() *status.Status {
	if se, ok := w.error.(interface {
		GRPCStatus() *status.Status
	}); ok {
		return se.GRPCStatus()
	}
	return status.New(codes.Unknown, "")
}

func (w *wrappedError) Unwrap() error {
	return w.error
}

type StackTrace = errors.StackTrace
type stack []uintptr

func (s *stack) StackTrace() StackTrace {
	f := make([]errors.Frame, len(*s))
	for i := 0; i < len(f); i++ {
		f[i] = errors.Frame((*s)[i])
	}
	return f
}

func callers() *stack {
	var pcs [stackDepth]uintptr
	n := runtime.Callers(3, pcs[:])
	var st stack = pcs[0:n]
	return &st
}

// statusError wraps an error with a gRPC status code while preserving the
// underlying error for errors.Is() checks.
type statusError struct {
	code codes.Code
	err  error
}

func (e *statusError) Error() string {
	return e.GRPCStatus().String()
}

func (e *statusError) Unwrap() error {
	return e.err
}

func (e *statusError) GRPCStatus() *status.Status {
	return status.New(e.code, e.err.Error())
}

// WrapWithCode wraps an error with a gRPC status code while preserving the
// underlying error for errors.Is() checks. This allows the error to have
// both a specific status code AND maintain its identity for error comparison.
func WrapWithCode(err error, code codes.Code) error {
	return &statusError{
		code: code,
		err:  err,
	}
}

func makeStatusErrorFromMessage(code codes.Code, msg string) error {
	return makeStatusError(code, stderrors.New(msg))
}

func makeStatusError(code codes.Code, err error) error {
	statusErr := &statusError{
		code: code,
		err:  err,
	}
	if !*LogErrorStackTraces {
		return statusErr
	}
	return &wrappedError{
		statusErr,
		callers(),
	}
}

func OK() error {
	return status.Error(codes.OK, "")
}

func UnknownError(msg string) error {
	return makeStatusErrorFromMessage(codes.Unknown, msg)
}
func IsUnknownError(err error) bool {
	return status.Code(err) == codes.Unknown
}
func UnknownErrorf(format string, a ...interface{}) error {
	return UnknownError(fmt.Sprintf(format, a...))
}

func InvalidArgumentError(msg string) error {
	return makeStatusErrorFromMessage(codes.InvalidArgument, msg)
}
func IsInvalidArgumentError(err error) bool {
	return status.Code(err) == codes.InvalidArgument
}
func InvalidArgumentErrorf(format string, a ...interface{}) error {
	return InvalidArgumentError(fmt.Sprintf(format, a...))
}

func NotFoundError(msg string) error {
	return makeStatusErrorFromMessage(codes.NotFound, msg)
}
func IsNotFoundError(err error) bool {
	return status.Code(err) == codes.NotFound
}
func NotFoundErrorf(format string, a ...interface{}) error {
	return NotFoundError(fmt.Sprintf(format, a...))
}

func AlreadyExistsError(msg string) error {
	return makeStatusErrorFromMessage(codes.AlreadyExists, msg)
}
func IsAlreadyExistsError(err error) bool {
	return status.Code(err) == codes.AlreadyExists
}
func AlreadyExistsErrorf(format string, a ...interface{}) error {
	return AlreadyExistsError(fmt.Sprintf(format, a...))
}

func OutOfRangeError(msg string) error {
	return makeStatusErrorFromMessage(codes.OutOfRange, msg)
}
func IsOutOfRangeError(err error) bool {
	return status.Code(err) == codes.OutOfRange
}
func OutOfRangeErrorf(format string, a ...interface{}) error {
	return OutOfRangeError(fmt.Sprintf(format, a...))
}

func FailedPreconditionError(msg string) error {
	return makeStatusErrorFromMessage(codes.FailedPrecondition, msg)
}
func IsFailedPreconditionError(err error) bool {
	return status.Code(err) == codes.FailedPrecondition
}
func FailedPreconditionErrorf(format string, a ...interface{}) error {
	return FailedPreconditionError(fmt.Sprintf(format, a...))
}

func UnimplementedError(msg string) error {
	return makeStatusErrorFromMessage(codes.Unimplemented, msg)
}
func IsUnimplementedError(err error) bool {
	return status.Code(err) == codes.Unimplemented
}
func UnimplementedErrorf(format string, a ...interface{}) error {
	return UnimplementedError(fmt.Sprintf(format, a...))
}

func InternalError(msg string) error {
	return makeStatusErrorFromMessage(codes.Internal, msg)
}
func IsInternalError(err error) bool {
	return status.Code(err) == codes.Internal
}
func InternalErrorf(format string, a ...interface{}) error {
	return InternalError(fmt.Sprintf(format, a...))
}

func DataLossError(msg string) error {
	return makeStatusErrorFromMessage(codes.DataLoss, msg)
}
func IsDataLossError(err error) bool {
	return status.Code(err) == codes.DataLoss
}
func DataLossErrorf(format string, a ...interface{}) error {
	return DataLossError(fmt.Sprintf(format, a...))
}

// WrapError prepends additional context to an error description, preserving
// the underlying status code.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return makeStatusError(status.Code(err), fmt.Errorf("%s: %w", msg, err))
}

// WrapErrorf is the "Printf" version of WrapError.
func WrapErrorf(err error, format string, a ...interface{}) error {
	return WrapError(err, fmt.Sprintf(format, a...))
}

// Message extracts the error message from a given error, which for gRPC
// errors is just the "desc" part of the error.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if s, ok := status.FromError(err); ok {
		return s.Message()
	}
	return err.Error()
}
