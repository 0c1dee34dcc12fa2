package export

import (
	"bytes"
	"regexp"
	"testing"
	"time"

	"container_loading/internal/app/ds"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleReport() Report {
	qty := 45
	return Report{
		Calc: &ds.ContainerCalculation{
			CalculationID:     12,
			Name:              "spring order",
			CargoLength:       100,
			CargoWidth:        50,
			CargoHeight:       50,
			CargoWeight:       20,
			CargoQuantity:     &qty,
			DimensionUnit:     "cm",
			WeightUnit:        "kg",
			MaxBoxes:          45,
			LoadingEfficiency: 33.89,
			BindingConstraint: "quantity",
			TotalWeight:       900,
			TotalCBM:          11.25,
			TotalCost:         1925,
			CreatedAt:         time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
			CostComponents: []ds.CostComponent{
				{ComponentName: "Rental", ComponentType: "rental", CostAmount: 1500},
				{ComponentName: "Handling", ComponentType: "handling", CostAmount: 350},
				{ComponentName: "Documentation", ComponentType: "documentation", CostAmount: 75},
			},
			LoadingPlan: &ds.LoadingPlan{
				LengthCount:        5,
				WidthCount:         4,
				HeightCount:        4,
				ArrangementPattern: "5x4x4",
				Orientation:        "LWH",
				LayoutData:         `{"boxes_per_layer":20,"full_layers":2,"partial_layer_boxes":5,"layers_used":3,"max_layers":4}`,
				WeightDistribution: `{"per_layer_kg":[400,400,100],"total_kg":900,"floor_load_kg_per_m2":64.91}`,
			},
		},
		ContainerType: &ds.ContainerType{Code: "20GP", Name: "20' General Purpose", InternalLength: 590, InternalWidth: 235, InternalHeight: 239, MaxPayload: 28200},
		ShippingRoute: &ds.ShippingRoute{OriginPort: "CNSHA", DestinationPort: "NLRTM", TransitDays: 32},
	}
}

func TestWorkbook(t *testing.T) {
	data, err := Workbook(sampleReport())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SummarySheet, CostsSheet, PlanSheet}, f.GetSheetList())

	costs, err := f.GetRows(CostsSheet)
	require.NoError(t, err)
	require.Len(t, costs, 5)
	assert.Equal(t, []string{"Component", "Type", "Amount"}, costs[0])
	assert.Equal(t, []string{"Handling", "handling", "350"}, costs[2])
	assert.Equal(t, "1925", costs[4][2])

	plan, err := f.GetRows(PlanSheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"Pattern", "5x4x4"}, plan[1])
	assert.Equal(t, []string{"Layer 3 (kg)", "100"}, plan[len(plan)-1])

	value, err := f.GetCellValue(SummarySheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "12", value)
}

func TestWorkbookWithoutPlan(t *testing.T) {
	r := sampleReport()
	r.Calc.LoadingPlan = nil
	r.ShippingRoute = nil

	data, err := Workbook(r)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	value, err := f.GetCellValue(PlanSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "No loading plan", value)
}

func TestNames(t *testing.T) {
	assert.Equal(t, "calculation-7.xlsx", FileName(7))
	assert.Regexp(t, regexp.MustCompile(`^reports/calculation-7/[0-9a-f-]{36}\.xlsx$`), ObjectName(7))
	assert.NotEqual(t, ObjectName(7), ObjectName(7))
}
