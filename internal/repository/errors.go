package repository

import "errors"

// ErrNotFound indicates an entity was not located.
var ErrNotFound = errors.New("repository: not found")

// ErrConstraintViolation indicates an insert or update broke a uniqueness
// constraint. The unique indexes are the authoritative duplicate guard; the
// service-level pre-checks are best effort only.
var ErrConstraintViolation = errors.New("repository: constraint violation")
