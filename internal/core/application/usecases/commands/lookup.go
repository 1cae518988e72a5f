package commands

import (
	"context"
	"errors"
	"fmt"

	"parceldelivery/internal/core/domain/model/kernel"
	"parceldelivery/internal/core/domain/model/parcel"
	"parceldelivery/internal/core/domain/model/rider"
	"parceldelivery/internal/core/ports"
	"parceldelivery/internal/pkg/errs"
)

func loadParcel(ctx context.Context, repo ports.ParcelRepository, id kernel.UUID) (*parcel.Parcel, error) {
	p, err := repo.Get(ctx, id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrParcelNotFound, id)
	}
	return p, err
}

func loadRider(ctx context.Context, repo ports.RiderRepository, id kernel.UUID) (*rider.Rider, error) {
	r, err := repo.Get(ctx, id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrRiderNotFound, id)
	}
	return r, err
}
