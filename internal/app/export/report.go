// Package export renders saved calculations as xlsx reports and uploads them
// to object storage.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"container_loading/internal/app/ds"
	"container_loading/internal/app/loading"

	"github.com/xuri/excelize/v2"
)

const (
	SummarySheet = "Summary"
	CostsSheet   = "Costs"
	PlanSheet    = "Loading Plan"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Report is everything the workbook shows. Calc must carry its cost
// components and loading plan.
type Report struct {
	Calc          *ds.ContainerCalculation
	ContainerType *ds.ContainerType
	ShippingRoute *ds.ShippingRoute
}

// FileName is the download name of the report of calculation id.
func FileName(id uint) string {
	return fmt.Sprintf("calculation-%d.xlsx", id)
}

// Workbook renders r as an xlsx document.
func Workbook(r Report) ([]byte, error) {
	if r.Calc == nil {
		return nil, fmt.Errorf("report without calculation")
	}
	f := excelize.NewFile()

	index, err := f.NewSheet(SummarySheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for _, write := range []func(*excelize.File, int, Report) error{writeSummary, writeCosts, writePlan} {
		if err := write(f, headerStyle, r); err != nil {
			f.Close()
			return nil, err
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write to buffer: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close file: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummary(f *excelize.File, headerStyle int, r Report) error {
	c := r.Calc
	rows := [][]any{
		{"Field", "Value"},
		{"Calculation", c.CalculationID},
		{"Name", c.Name},
		{"Created", c.CreatedAt.Format("2006-01-02 15:04")},
	}
	if ct := r.ContainerType; ct != nil {
		rows = append(rows,
			[]any{"Container", fmt.Sprintf("%s (%s)", ct.Name, ct.Code)},
			[]any{"Container internal (cm)", fmt.Sprintf("%gx%gx%g", ct.InternalLength, ct.InternalWidth, ct.InternalHeight)},
			[]any{"Max payload (kg)", ct.MaxPayload},
		)
	}
	if rt := r.ShippingRoute; rt != nil {
		rows = append(rows,
			[]any{"Route", rt.OriginPort + " - " + rt.DestinationPort},
			[]any{"Transit days", rt.TransitDays},
		)
	}
	rows = append(rows,
		[]any{"Cargo box (" + c.DimensionUnit + ")", fmt.Sprintf("%gx%gx%g", c.CargoLength, c.CargoWidth, c.CargoHeight)},
		[]any{"Box weight (" + c.WeightUnit + ")", c.CargoWeight},
	)
	if c.CargoQuantity != nil {
		rows = append(rows, []any{"Quantity", *c.CargoQuantity})
	}
	if c.CargoValue != nil {
		rows = append(rows, []any{"Cargo value", *c.CargoValue})
	}
	rows = append(rows,
		[]any{"Max boxes", c.MaxBoxes},
		[]any{"Binding constraint", c.BindingConstraint},
		[]any{"Loading efficiency (%)", c.LoadingEfficiency},
		[]any{"Total weight (kg)", c.TotalWeight},
		[]any{"Total volume (CBM)", loading.Round(c.TotalCBM, 3)},
		[]any{"Total cost", c.TotalCost},
	)
	if err := writeTable(f, SummarySheet, headerStyle, rows); err != nil {
		return err
	}
	return f.SetColWidth(SummarySheet, "A", "B", 28)
}

func writeCosts(f *excelize.File, headerStyle int, r Report) error {
	if _, err := f.NewSheet(CostsSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	rows := [][]any{{"Component", "Type", "Amount"}}
	for _, c := range r.Calc.CostComponents {
		rows = append(rows, []any{c.ComponentName, c.ComponentType, c.CostAmount})
	}
	rows = append(rows, []any{"Total", "", r.Calc.TotalCost})
	if err := writeTable(f, CostsSheet, headerStyle, rows); err != nil {
		return err
	}
	return f.SetColWidth(CostsSheet, "A", "C", 18)
}

func writePlan(f *excelize.File, headerStyle int, r Report) error {
	if _, err := f.NewSheet(PlanSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	plan := r.Calc.LoadingPlan
	if plan == nil {
		return writeTable(f, PlanSheet, headerStyle, [][]any{{"No loading plan"}})
	}

	rows := [][]any{
		{"Field", "Value"},
		{"Pattern", plan.ArrangementPattern},
		{"Orientation", plan.Orientation},
		{"Along length", plan.LengthCount},
		{"Along width", plan.WidthCount},
		{"Along height", plan.HeightCount},
	}

	var layout loading.Layout
	if err := json.Unmarshal([]byte(plan.LayoutData), &layout); err == nil {
		rows = append(rows,
			[]any{"Boxes per layer", layout.BoxesPerLayer},
			[]any{"Layers used", layout.LayersUsed},
			[]any{"Boxes in partial layer", layout.PartialLayerBoxes},
		)
	}

	var weights loading.WeightDistribution
	if err := json.Unmarshal([]byte(plan.WeightDistribution), &weights); err == nil {
		rows = append(rows, []any{"Floor load (kg/m2)", weights.FloorLoadKgPerM2})
		for i, kg := range weights.PerLayerKg {
			rows = append(rows, []any{fmt.Sprintf("Layer %d (kg)", i+1), kg})
		}
	}
	if err := writeTable(f, PlanSheet, headerStyle, rows); err != nil {
		return err
	}
	return f.SetColWidth(PlanSheet, "A", "B", 24)
}

// writeTable writes rows from A1 and styles the first row as a header.
func writeTable(f *excelize.File, sheet string, headerStyle int, rows [][]any) error {
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to set cell %s!%s: %w", sheet, cell, err)
			}
			if r == 0 {
				if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
					return fmt.Errorf("failed to set header style: %w", err)
				}
			}
		}
	}
	return nil
}
