package models

import (
	"errors"

	"github.com/AnshRaj112/laporan-backend/pkg/utils"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrStorage      = errors.New("storage failure")
	ErrUserExists   = errors.New("user already exists")
)

// ValidationError reports the first input rule that failed. It is the same
// type the username and password checks return.
type ValidationError = utils.ValidationError
