package fitting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeightedObservedPoints_ToList(t *testing.T) {
	obs := NewWeightedObservedPoints()
	obs.Add(1, 2)
	obs.AddWeighted(3, 4, 5)
	obs.AddPoint(NewWeightedObservedPoint(0.5, 6, 7))

	list := obs.ToList()
	assert.Equal(t, 3, obs.Len())
	assert.Equal(t, []WeightedObservedPoint{
		NewWeightedObservedPoint(1, 1, 2),
		NewWeightedObservedPoint(3, 4, 5),
		NewWeightedObservedPoint(0.5, 6, 7),
	}, list)

	obs.Clear()
	assert.Equal(t, 0, obs.Len())
	assert.Empty(t, obs.ToList())
	// the snapshot survives the clear
	assert.Len(t, list, 3)
	assert.Equal(t, 4.0, list[1].X())
	assert.Equal(t, 5.0, list[1].Y())
	assert.Equal(t, 3.0, list[1].Weight())

	obs.Add(8, 9)
	assert.Len(t, list, 3)
	assert.Equal(t, 1.0, list[0].X())
}

func TestWeightedObservedPoints_SnapshotIsolation(t *testing.T) {
	obs := NewWeightedObservedPoints()
	obs.Add(1, 1)
	list := obs.ToList()
	list[0] = NewWeightedObservedPoint(2, 2, 2)
	assert.Equal(t, NewWeightedObservedPoint(1, 1, 1), obs.ToList()[0])
}
