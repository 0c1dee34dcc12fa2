package repository

import (
	"context"
	"testing"
	"time"

	"container_loading/internal/app/apperr"
	"container_loading/internal/app/ds"
	"container_loading/internal/app/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreCatalogIsSeededAndOrdered(t *testing.T) {
	s := NewMemoryStore(Options{})
	ctx := context.Background()

	types, err := s.GetContainerTypes(ctx)
	require.NoError(t, err)
	require.Len(t, types, len(StandardContainerTypes()))
	for i := 1; i < len(types); i++ {
		assert.LessOrEqual(t, types[i-1].RentalCost, types[i].RentalCost)
	}

	routes, err := s.GetShippingRoutes(ctx)
	require.NoError(t, err)
	for i := 1; i < len(routes); i++ {
		assert.LessOrEqual(t, routes[i-1].TransitDays, routes[i].TransitDays)
	}

	gp20, err := s.GetContainerType(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "20GP", gp20.Code)

	missing, err := s.GetShippingRoute(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryStoreCalculationLifecycle(t *testing.T) {
	s := NewMemoryStore(Options{})
	ctx := context.Background()
	tick := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}

	first, err := s.SaveCalculation(ctx, sampleCalculation())
	require.NoError(t, err)
	second, err := s.SaveCalculation(ctx, sampleCalculation())
	require.NoError(t, err)

	history, err := s.GetCalculationHistory(ctx, 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, second, history[0].CalculationID)
	assert.Nil(t, history[0].LoadingPlan)

	limited, err := s.GetCalculationHistory(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	components, err := s.GetCostComponents(ctx, first)
	require.NoError(t, err)
	require.Len(t, components, 3)
	assert.Equal(t, "rental", components[0].ComponentType)

	plan, err := s.GetLoadingPlan(ctx, first)
	require.NoError(t, err)
	require.NotNil(t, plan)
	assert.Equal(t, "5x4x4", plan.ArrangementPattern)

	require.NoError(t, s.DeleteCalculation(ctx, first))

	calc, err := s.GetCalculation(ctx, first)
	require.NoError(t, err)
	assert.Nil(t, calc)
	components, err = s.GetCostComponents(ctx, first)
	require.NoError(t, err)
	assert.Empty(t, components)
	plan, err = s.GetLoadingPlan(ctx, first)
	require.NoError(t, err)
	assert.Nil(t, plan)

	var nf *apperr.NotFoundError
	require.ErrorAs(t, s.DeleteCalculation(ctx, first), &nf)
}

func TestMemoryStoreRejectsDanglingReferences(t *testing.T) {
	s := NewMemoryStore(Options{})
	ctx := context.Background()

	calc := sampleCalculation()
	calc.ContainerTypeID = 999
	_, err := s.SaveCalculation(ctx, calc)
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)

	_, err = s.SaveLoadingPlan(ctx, &ds.LoadingPlan{CalculationID: 12345})
	require.ErrorAs(t, err, &ve)

	history, err := s.GetCalculationHistory(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestMemoryStoreUsersAndSessions(t *testing.T) {
	s := NewMemoryStore(Options{JWTKey: "k", JWTTTL: time.Hour})
	ctx := context.Background()

	user, err := s.RegisterUser(ctx, ds.User{Login: "ops", Password: "pw", Role: ds.RoleAdmin})
	require.NoError(t, err)
	assert.Empty(t, user.Password)

	_, err = s.RegisterUser(ctx, ds.User{Login: "ops", Password: "other"})
	require.Error(t, err)

	_, err = s.LoginUser(ctx, "ops", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	token, err := s.LoginUser(ctx, "ops", "pw")
	require.NoError(t, err)
	claims, err := utils.ParseJWT([]byte("k"), token)
	require.NoError(t, err)
	assert.Equal(t, ds.RoleAdmin, claims.Role)
	assert.True(t, s.SessionActive(ctx, user.UserID, token))

	require.NoError(t, s.LogoutUser(ctx, user.UserID))
	assert.False(t, s.SessionActive(ctx, user.UserID, token))
}
