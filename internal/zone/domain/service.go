package domain

import (
	"context"
	"errors"
)

type GetZoneRequest struct {
	ID string
}

type Service interface {
	List(context.Context) ([]Zone, error)
	GetByID(context.Context, GetZoneRequest) (Zone, error)
}

var (
	ErrInvalidID = errors.New("invalid_zone_id")
	ErrNotFound  = errors.New("zone_not_found")
)
