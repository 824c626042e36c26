package domain

import (
	"context"
	"errors"
)

type Service interface {
	Get(context.Context) (Account, error)
	Users(context.Context) ([]User, error)
}

var (
	ErrInvalidAccount = errors.New("invalid_account")
	ErrNotFound       = errors.New("not_found")
)
