package store

import "errors"

var (
	ErrDuplicate           = errors.New("record already exists")
	ErrRecordNotFound      = errors.New("record not found")
	ErrConstraintViolation = errors.New("database constraint violation")
)
