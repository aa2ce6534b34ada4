package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("resource conflict")

// ErrForbidden indicates the authenticated user may not perform the operation.
var ErrForbidden = errors.New("operation forbidden")

// ErrConnectivity indicates the network-backed store is unreachable.
// Surfaced before any write is attempted so the operation aborts cleanly.
var ErrConnectivity = errors.New("store unreachable")

// ErrAuthExpired indicates the backend rejected the call as unauthorized or
// session-expired. The caller is expected to force a sign-out.
var ErrAuthExpired = errors.New("authentication expired")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")
