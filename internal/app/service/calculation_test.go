package service

import (
	"context"
	"errors"
	"testing"

	"container_loading/internal/app/apperr"
	"container_loading/internal/app/ds"
	"container_loading/internal/app/loading"
	"container_loading/internal/app/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	gp20ID         uint = 1
	shanghaiRotter uint = 1
)

func intPtr(v int) *int { return &v }
func uintPtr(v uint) *uint { return &v }
func floatPtr(v float64) *float64 { return &v }

func newService(t *testing.T) (*CalculationService, *repository.MemoryStore) {
	t.Helper()
	store := repository.NewMemoryStore(repository.Options{})
	return NewCalculationService(store, Options{HistoryDefaultLimit: 2, HistoryMaxLimit: 3}), store
}

func scenarioA() Request {
	return Request{
		ContainerTypeID: gp20ID,
		CargoLength:     100,
		CargoWidth:      50,
		CargoHeight:     50,
		CargoWeight:     20,
		CargoQuantity:   intPtr(1000),
	}
}

func TestPreviewScenarioA(t *testing.T) {
	svc, _ := newService(t)

	res, err := svc.Preview(context.Background(), scenarioA())
	require.NoError(t, err)

	a := res.Arrangement
	assert.Equal(t, 80, a.MaxBoxes)
	assert.Equal(t, loading.ConstraintGeometry, a.Constraint)
	assert.Equal(t, "5x4x4", a.Pattern())
	// 20 m3 of a rated 33.2 m3
	assert.Equal(t, 60.24, a.Efficiency)
	assert.Equal(t, 1500.0, res.Costs.Total)
	assert.Len(t, res.Costs.Components, 3)
	assert.Zero(t, res.CalculationID)
	assert.Equal(t, "cm3", res.Presentation.VolumeUnit)
	assert.InDelta(t, 20e6, res.Presentation.TotalVolume, 1e-3)
}

func TestPreviewWithRouteAndInsurance(t *testing.T) {
	svc, _ := newService(t)
	req := scenarioA()
	req.ShippingRouteID = uintPtr(shanghaiRotter)
	req.CargoValue = floatPtr(100_000_000)

	res, err := svc.Preview(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, res.Costs.Components, 4)
	assert.Equal(t, 500_000.0, res.Costs.Components[3].Amount)
	assert.Equal(t, 501_925.0, res.Costs.Total)
	require.NotNil(t, res.ShippingRoute)
	assert.Equal(t, "NLRTM", res.ShippingRoute.DestinationPort)
}

func TestPreviewConvertsUnits(t *testing.T) {
	svc, _ := newService(t)

	res, err := svc.Preview(context.Background(), Request{
		ContainerTypeID: gp20ID,
		CargoLength:     1,
		CargoWidth:      0.5,
		CargoHeight:     0.5,
		CargoWeight:     44.09245,
		DimensionUnit:   "m",
		WeightUnit:      "lbs",
	})
	require.NoError(t, err)

	assert.Equal(t, 80, res.Arrangement.MaxBoxes)
	assert.InDelta(t, 1600, res.Arrangement.TotalWeightKg, 0.01)
	assert.Equal(t, "lb", res.Presentation.WeightUnit)
	assert.InDelta(t, 3527.4, res.Presentation.TotalWeight, 0.01)
	assert.Equal(t, "m3", res.Presentation.VolumeUnit)
	assert.InDelta(t, 20, res.Presentation.TotalVolume, 1e-9)
	assert.Equal(t, loading.Dimensions{Length: 1, Width: 0.5, Height: 0.5}, res.Presentation.PlacedBox)
}

func TestPreviewWithRotation(t *testing.T) {
	svc, _ := newService(t)
	req := Request{ContainerTypeID: gp20ID, CargoLength: 100, CargoWidth: 50, CargoHeight: 120, CargoWeight: 10}

	fixed, err := svc.Preview(context.Background(), req)
	require.NoError(t, err)
	req.AllowRotation = true
	rotated, err := svc.Preview(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 20, fixed.Arrangement.MaxBoxes)
	assert.Equal(t, 32, rotated.Arrangement.MaxBoxes)
}

func TestCargoTooLargeIsDistinctAndNotSaved(t *testing.T) {
	svc, _ := newService(t)
	req := scenarioA()
	req.CargoLength = 700

	res, err := svc.Preview(context.Background(), req)
	var tooLarge *apperr.CargoTooLargeError
	require.ErrorAs(t, err, &tooLarge)
	require.NotNil(t, res)
	assert.Equal(t, 0, res.Arrangement.MaxBoxes)
	assert.Equal(t, loading.ConstraintOversize, res.Arrangement.Constraint)

	_, err = svc.Save(context.Background(), req)
	require.ErrorAs(t, err, &tooLarge)

	history, err := svc.History(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, history)
}

type countingStore struct {
	*repository.MemoryStore
	lookups int
}

func (s *countingStore) GetContainerType(ctx context.Context, id uint) (*ds.ContainerType, error) {
	s.lookups++
	return s.MemoryStore.GetContainerType(ctx, id)
}

func TestValidationHappensBeforeStoreCalls(t *testing.T) {
	store := &countingStore{MemoryStore: repository.NewMemoryStore(repository.Options{})}
	svc := NewCalculationService(store, Options{})

	cases := map[string]Request{
		"zero length":    {ContainerTypeID: 999, CargoWidth: 1, CargoHeight: 1, CargoWeight: 1},
		"zero quantity":  {ContainerTypeID: 999, CargoLength: 1, CargoWidth: 1, CargoHeight: 1, CargoWeight: 1, CargoQuantity: intPtr(0)},
		"negative value": {ContainerTypeID: 999, CargoLength: 1, CargoWidth: 1, CargoHeight: 1, CargoWeight: 1, CargoValue: floatPtr(-1)},
		"no container":   {CargoLength: 1, CargoWidth: 1, CargoHeight: 1, CargoWeight: 1},
	}
	for name, req := range cases {
		_, err := svc.Save(context.Background(), req)
		var ve *apperr.ValidationError
		assert.ErrorAs(t, err, &ve, name)
	}

	_, err := svc.Preview(context.Background(), Request{ContainerTypeID: 999, CargoLength: 1, CargoWidth: 1, CargoHeight: 1, CargoWeight: 1, DimensionUnit: "furlong"})
	var ue *apperr.InvalidUnitError
	assert.ErrorAs(t, err, &ue)

	_, err = svc.Preview(context.Background(), Request{ContainerTypeID: 999, CargoLength: 1, CargoWidth: 1, CargoHeight: 1, CargoWeight: 1, WeightUnit: "cm"})
	assert.ErrorAs(t, err, &ue)

	assert.Zero(t, store.lookups)
}

func TestMissingCatalogRowsAreNotFound(t *testing.T) {
	svc, _ := newService(t)

	req := scenarioA()
	req.ContainerTypeID = 999
	_, err := svc.Preview(context.Background(), req)
	var nf *apperr.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "container type", nf.Entity)

	req = scenarioA()
	req.ShippingRouteID = uintPtr(999)
	_, err = svc.Save(context.Background(), req)
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "shipping route", nf.Entity)
}

func TestSaveGetDeleteRoundTrip(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	req := scenarioA()
	req.Name = "spring order"
	req.ShippingRouteID = uintPtr(shanghaiRotter)
	req.CargoValue = floatPtr(12_345.67)

	saved, err := svc.Save(ctx, req)
	require.NoError(t, err)
	require.NotZero(t, saved.CalculationID)

	rec, err := svc.Get(ctx, saved.CalculationID)
	require.NoError(t, err)
	assert.Equal(t, "spring order", rec.Name)
	assert.Equal(t, 80, rec.MaxBoxes)
	assert.Equal(t, "geometry", rec.BindingConstraint)
	assert.InDelta(t, 20, rec.TotalCBM, 1e-9)

	sum := 0.0
	for _, c := range rec.CostComponents {
		sum += c.CostAmount
	}
	assert.InDelta(t, rec.TotalCost, sum, 1e-9)
	assert.Len(t, rec.CostComponents, 4)

	require.NotNil(t, rec.LoadingPlan)
	plan := rec.LoadingPlan
	assert.Equal(t, rec.MaxBoxes, plan.LengthCount*plan.WidthCount*plan.HeightCount)
	assert.Equal(t, "5x4x4", plan.ArrangementPattern)
	assert.JSONEq(t, `{"boxes_per_layer":20,"full_layers":4,"partial_layer_boxes":0,"layers_used":4,"max_layers":4}`, plan.LayoutData)
	assert.Equal(t, 1600.0, rec.Presentation.TotalWeight)

	require.NoError(t, svc.Delete(ctx, saved.CalculationID))

	_, err = svc.Get(ctx, saved.CalculationID)
	var nf *apperr.NotFoundError
	require.ErrorAs(t, err, &nf)
	require.ErrorAs(t, svc.Delete(ctx, saved.CalculationID), &nf)
}

func TestSavePersistsPayloadOnlyZero(t *testing.T) {
	svc, _ := newService(t)
	req := scenarioA()
	req.CargoWeight = 30_000

	res, err := svc.Save(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Arrangement.MaxBoxes)
	assert.Equal(t, loading.ConstraintPayload, res.Arrangement.Constraint)
}

func TestHistoryLimits(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	var last uint
	for i := 0; i < 4; i++ {
		res, err := svc.Save(ctx, scenarioA())
		require.NoError(t, err)
		last = res.CalculationID
	}

	rows, err := svc.History(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, last, rows[0].CalculationID)

	rows, err = svc.History(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

type failingStore struct {
	*repository.MemoryStore
}

var errDown = errors.New("database is down")

func (failingStore) SaveCalculation(context.Context, *ds.ContainerCalculation) (uint, error) {
	return 0, apperr.Persistence("save calculation", errDown)
}

func TestPersistenceErrorsPropagateUnchanged(t *testing.T) {
	svc := NewCalculationService(failingStore{repository.NewMemoryStore(repository.Options{})}, Options{})

	_, err := svc.Save(context.Background(), scenarioA())
	var pe *apperr.PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.ErrorIs(t, err, errDown)
}

func TestSavedPlanKeepsGridWhenQuantityBinds(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	req := scenarioA()
	req.CargoQuantity = intPtr(10)

	saved, err := svc.Save(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, loading.ConstraintQuantity, saved.Arrangement.Constraint)

	rec, err := svc.Get(ctx, saved.CalculationID)
	require.NoError(t, err)
	assert.Equal(t, 10, rec.MaxBoxes)

	plan := rec.LoadingPlan
	require.NotNil(t, plan)
	assert.Equal(t, "5x4x4", plan.ArrangementPattern)
	assert.GreaterOrEqual(t, plan.LengthCount*plan.WidthCount*plan.HeightCount, rec.MaxBoxes)
	assert.JSONEq(t, `{"boxes_per_layer":20,"full_layers":0,"partial_layer_boxes":10,"layers_used":1,"max_layers":4}`, plan.LayoutData)
}

func TestCargoTooSmallToCountIsNotSaved(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	req := scenarioA()
	req.CargoLength, req.CargoWidth, req.CargoHeight = 0.0001, 0.0001, 0.0001
	req.CargoQuantity = nil

	_, err := svc.Save(ctx, req)
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "cargo_dimensions", ve.Field)

	history, err := svc.History(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, history)
}
