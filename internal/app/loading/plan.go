package loading

// Layout describes how MaxBoxes are stacked: full layers from the floor up,
// then one partially filled layer.
type Layout struct {
	BoxesPerLayer     int `json:"boxes_per_layer"`
	FullLayers        int `json:"full_layers"`
	PartialLayerBoxes int `json:"partial_layer_boxes"`
	LayersUsed        int `json:"layers_used"`
	MaxLayers         int `json:"max_layers"`
}

type WeightDistribution struct {
	PerLayerKg       []float64 `json:"per_layer_kg"`
	TotalKg          float64   `json:"total_kg"`
	FloorLoadKgPerM2 float64   `json:"floor_load_kg_per_m2"`
}

type Visualization struct {
	Container   Dimensions  `json:"container_cm"`
	Box         Dimensions  `json:"box_cm"`
	Grid        [3]int      `json:"grid"`
	Orientation Orientation `json:"orientation"`
	Boxes       int         `json:"boxes"`
}

func (a Arrangement) Layout() Layout {
	l := Layout{
		BoxesPerLayer: a.LengthCount * a.WidthCount,
		MaxLayers:     a.HeightCount,
	}
	if l.BoxesPerLayer == 0 || a.MaxBoxes == 0 {
		return l
	}
	l.FullLayers = a.MaxBoxes / l.BoxesPerLayer
	l.PartialLayerBoxes = a.MaxBoxes % l.BoxesPerLayer
	l.LayersUsed = l.FullLayers
	if l.PartialLayerBoxes > 0 {
		l.LayersUsed++
	}
	return l
}

func (a Arrangement) WeightDistribution(c Container) WeightDistribution {
	layout := a.Layout()
	wd := WeightDistribution{
		PerLayerKg: make([]float64, 0, layout.LayersUsed),
		TotalKg:    a.TotalWeightKg,
	}
	for i := 0; i < layout.FullLayers; i++ {
		wd.PerLayerKg = append(wd.PerLayerKg, float64(layout.BoxesPerLayer)*a.BoxWeightKg)
	}
	if layout.PartialLayerBoxes > 0 {
		wd.PerLayerKg = append(wd.PerLayerKg, float64(layout.PartialLayerBoxes)*a.BoxWeightKg)
	}
	floorM2 := c.Internal.Length * c.Internal.Width / 1e4
	if floorM2 > 0 {
		wd.FloorLoadKgPerM2 = Round(a.TotalWeightKg/floorM2, 2)
	}
	return wd
}

func (a Arrangement) Visualization(c Container) Visualization {
	return Visualization{
		Container:   c.Internal,
		Box:         a.Box,
		Grid:        [3]int{a.LengthCount, a.WidthCount, a.HeightCount},
		Orientation: a.Orientation,
		Boxes:       a.MaxBoxes,
	}
}
