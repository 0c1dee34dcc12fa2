package service

import (
	"context"
	"testing"

	"container_loading/internal/app/apperr"
	"container_loading/internal/app/ds"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogReads(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	types, err := svc.ContainerTypes(ctx)
	require.NoError(t, err)
	assert.Equal(t, "20GP", types[0].Code)

	_, err = svc.ShippingRoute(ctx, 404)
	var nf *apperr.NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestCreateContainerTypeDerivesCapacity(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	row := &ds.ContainerType{Code: "10GP", Name: "10' General Purpose", InternalLength: 280, InternalWidth: 235, InternalHeight: 239, MaxPayload: 8500, RentalCost: 900}
	require.NoError(t, svc.CreateContainerType(ctx, row))
	assert.NotZero(t, row.ContainerTypeID)
	assert.InDelta(t, 280*235*239/1e6, row.CubicCapacity, 1e-9)

	types, err := svc.ContainerTypes(ctx)
	require.NoError(t, err)
	assert.Equal(t, "10GP", types[0].Code)
}

func TestCreateCatalogRowsValidates(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	var ve *apperr.ValidationError

	err := svc.CreateContainerType(ctx, &ds.ContainerType{Code: "X", InternalLength: 1, InternalWidth: 1, InternalHeight: 0, MaxPayload: 1})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "internal_height", ve.Field)

	err = svc.CreateShippingRoute(ctx, &ds.ShippingRoute{OriginPort: "CNSHA", DestinationPort: "KRPUS", InsuranceRate: -0.01})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "insurance_rate", ve.Field)

	route := &ds.ShippingRoute{OriginPort: "CNSHA", DestinationPort: "KRPUS", TransitDays: 2, InsuranceRate: 0.002}
	require.NoError(t, svc.CreateShippingRoute(ctx, route))
	routes, err := svc.ShippingRoutes(ctx)
	require.NoError(t, err)
	assert.Equal(t, route.ShippingRouteID, routes[0].ShippingRouteID)
}
