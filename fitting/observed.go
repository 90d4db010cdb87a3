package fitting

// WeightedObservedPoint is a single (x, y) observation with its weight.
type WeightedObservedPoint struct {
	weight float64
	x      float64
	y      float64
}

// NewWeightedObservedPoint creates a new observation.
func NewWeightedObservedPoint(weight, x, y float64) WeightedObservedPoint {
	return WeightedObservedPoint{
		weight: weight,
		x:      x,
		y:      y,
	}
}

func (p WeightedObservedPoint) Weight() float64 {
	return p.weight
}

func (p WeightedObservedPoint) X() float64 {
	return p.x
}

func (p WeightedObservedPoint) Y() float64 {
	return p.y
}

// WeightedObservedPoints keeps observations in insertion order.
// It is not safe for concurrent use.
type WeightedObservedPoints struct {
	observations []WeightedObservedPoint
}

// NewWeightedObservedPoints creates an empty collection.
func NewWeightedObservedPoints() *WeightedObservedPoints {
	return &WeightedObservedPoints{
		observations: make([]WeightedObservedPoint, 0),
	}
}

// Add adds a point with weight 1.
func (o *WeightedObservedPoints) Add(x, y float64) {
	o.AddWeighted(1, x, y)
}

// AddWeighted adds a point with the given weight.
func (o *WeightedObservedPoints) AddWeighted(weight, x, y float64) {
	o.AddPoint(NewWeightedObservedPoint(weight, x, y))
}

// AddPoint adds an existing observation.
func (o *WeightedObservedPoints) AddPoint(p WeightedObservedPoint) {
	o.observations = append(o.observations, p)
}

// ToList returns a copy of the observations, unaffected by later changes to the collection.
func (o *WeightedObservedPoints) ToList() []WeightedObservedPoint {
	list := make([]WeightedObservedPoint, len(o.observations))
	copy(list, o.observations)
	return list
}

// Clear removes all observations.
func (o *WeightedObservedPoints) Clear() {
	o.observations = make([]WeightedObservedPoint, 0)
}

// Len returns the number of observations.
func (o *WeightedObservedPoints) Len() int {
	return len(o.observations)
}
