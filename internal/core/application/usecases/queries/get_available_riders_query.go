package queries

import (
	"errors"
	"strings"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/pkg/guard"
)

var ErrGetAvailableRidersQueryIsNotConstructed = errors.New(
	"GetAvailableRidersQuery must be created via NewGetAvailableRidersQuery constructor",
)

// GetAvailableRidersQuery lists approved riders with no active delivery,
// optionally restricted to one district.
type GetAvailableRidersQuery struct {
	district string

	guard guard.ConstructorGuard
}

// NewGetAvailableRidersQuery accepts an empty district to mean every district.
func NewGetAvailableRidersQuery(district string) GetAvailableRidersQuery {
	return GetAvailableRidersQuery{
		district: strings.TrimSpace(district),
		guard:    guard.NewConstructorGuard(),
	}
}

func (q GetAvailableRidersQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableRidersQueryIsNotConstructed)
}

func (q GetAvailableRidersQuery) District() string { return q.district }

type GetAvailableRidersQueryResponse struct {
	ID       kernel.UUID
	Name     string
	Email    string
	District string
}
