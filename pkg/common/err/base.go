package err

import (
	"errors"
	"strings"
)

// Error is the base error type shared by every package in the module.
//
// Packages build their own constructors on top of it so that an error raised
// deep inside the object store still answers IsCode(err, CodeNotFound) after
// being wrapped by the repository layer and the CLI.
type Error struct {
	// Package identifies the originating package (e.g., "store", "sourcerepo").
	Package string

	// Code is the machine-readable category (one of the Code* constants).
	Code string

	// Op is the operation being performed, e.g. "put", "get", "open".
	Op string

	// Message is a short human-readable explanation.
	Message string

	// Err is the wrapped cause. Nil for leaf errors.
	Err error

	// Context holds the offending path, key or value. Allocated lazily.
	Context map[string]any
}

// Error implements the error interface.
// Format: [package][code] op: message: cause
func (e *Error) Error() string {
	var parts []string

	var prefix strings.Builder
	if e.Package != "" {
		prefix.WriteString("[" + e.Package + "]")
	}
	if e.Code != "" {
		prefix.WriteString("[" + e.Code + "]")
	}
	if prefix.Len() > 0 {
		parts = append(parts, prefix.String())
	}
	if e.Op != "" {
		parts = append(parts, e.Op)
	}
	if e.Message != "" {
		parts = append(parts, e.Message)
	}

	result := strings.Join(parts, ": ")
	if e.Err != nil {
		if result != "" {
			return result + ": " + e.Err.Error()
		}
		return e.Err.Error()
	}
	return result
}

// Unwrap returns the underlying error for errors.Is() and errors.As() support.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches two errors by code. Both codes must be non-empty.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code != "" && e.Code == t.Code
}

// WithContext adds a key-value pair to the error's context and returns the
// error for chaining.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// GetContext retrieves a value from the error's context, or nil.
func (e *Error) GetContext(key string) any {
	if e.Context == nil {
		return nil
	}
	return e.Context[key]
}

// New creates a new base error with the specified fields.
func New(pkg, code, op, message string, err error) *Error {
	return &Error{
		Package: pkg,
		Code:    code,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// Wrap wraps an error with package and operation context.
// Returns nil if err is nil.
func Wrap(err error, pkg, op string) error {
	if err == nil {
		return nil
	}
	return &Error{Package: pkg, Op: op, Err: err}
}

// WrapWithCode wraps an error with package, operation, and code.
// Returns nil if err is nil.
func WrapWithCode(err error, pkg, code, op string) error {
	if err == nil {
		return nil
	}
	return &Error{Package: pkg, Code: code, Op: op, Err: err}
}

// Error codes. Every failure the store or the locator can report maps to
// exactly one of these.
const (
	CodeNotARepository           = "NOT_A_REPOSITORY"
	CodeAlreadyExists            = "ALREADY_EXISTS"
	CodeConfigMissing            = "CONFIG_MISSING"
	CodeConfigCorrupt            = "CONFIG_CORRUPT"
	CodeUnsupportedFormatVersion = "UNSUPPORTED_FORMAT_VERSION"
	CodeSerialization            = "SERIALIZATION"
	CodeIO                       = "IO"
	CodeNotFound                 = "NOT_FOUND"
	CodeCorruptObject            = "CORRUPT_OBJECT"
	CodeUnknownObjectType        = "UNKNOWN_OBJECT_TYPE"

	// CodeAmbiguous is returned when an abbreviated key matches more than one object.
	CodeAmbiguous = "AMBIGUOUS"

	// CodeInvalidInput indicates invalid or malformed input parameters
	CodeInvalidInput = "INVALID_INPUT"
)

// IsCode checks if an error, or anything it wraps, carries the given code.
func IsCode(err error, code string) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Err
	}
	return false
}

// GetCode extracts the outermost error code from an error.
// Returns empty string if the error carries no code.
func GetCode(err error) string {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return ""
		}
		if e.Code != "" {
			return e.Code
		}
		err = e.Err
	}
	return ""
}

// GetPackage extracts the package name from an error.
// Returns empty string if the error is not a base Error.
func GetPackage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Package
	}
	return ""
}

// GetOp extracts the operation from an error.
func GetOp(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Op
	}
	return ""
}
