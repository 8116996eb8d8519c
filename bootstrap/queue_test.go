package bootstrap

import (
	"math/rand"
	"sync/atomic"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestResolveQueueFamilies(t *testing.T) {
	cases := []struct {
		name     string
		graphics []bool
		present  []bool

		complete    bool
		graphicsIdx int
		presentIdx  int
	}{
		{name: "shared", graphics: []bool{true}, present: []bool{true}, complete: true},
		{name: "split", graphics: []bool{true, false}, present: []bool{false, true}, complete: true, presentIdx: 1},
		{
			name:     "earliest match beats later shared family",
			graphics: []bool{true, true},
			present:  []bool{false, true},
			complete: true, graphicsIdx: 0, presentIdx: 1,
		},
		{
			name:     "present before graphics",
			graphics: []bool{false, false, true},
			present:  []bool{true, false, false},
			complete: true, graphicsIdx: 2, presentIdx: 0,
		},
		{name: "no graphics", graphics: []bool{false, false}, present: []bool{true, true}},
		{name: "no present", graphics: []bool{true, true}, present: []bool{false, false}},
		{name: "no families"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			unit := newUnit(tc.name, tc.graphics, tc.present)
			indices, err := ResolveQueueFamilies(unit, newSurface(), Diagnostics{})
			require.NoError(t, err)
			require.Equal(t, tc.complete, indices.IsComplete())
			if !tc.complete {
				require.Nil(t, indices.Unique())
				return
			}

			graphics, _ := indices.Graphics()
			present, _ := indices.Present()
			require.Equal(t, tc.graphicsIdx, graphics)
			require.Equal(t, tc.presentIdx, present)
		})
	}
}

func TestResolveQueueFamilies_StopsWhenComplete(t *testing.T) {
	unit := newUnit("wide", []bool{true, true, true, true}, []bool{true, true, true, true})
	surface := newSurface()

	_, err := ResolveQueueFamilies(unit, surface, Diagnostics{})
	require.NoError(t, err)
	require.Equal(t, int32(1), atomic.LoadInt32(&surface.supportCalls))
}

func TestResolveQueueFamilies_QueryFailure(t *testing.T) {
	native := errors.New("VK_ERROR_SURFACE_LOST_KHR")
	surface := newSurface()
	surface.supportErr = native

	_, err := ResolveQueueFamilies(sharedUnit(), surface, Diagnostics{})
	require.True(t, errors.Is(err, ErrSurfaceQuery))
	require.True(t, errors.Is(err, native))
}

func TestResolveQueueFamilies_RandomTopologies(t *testing.T) {
	random := rand.New(rand.NewSource(7))

	for round := 0; round < 200; round++ {
		count := random.Intn(6)
		graphics := make([]bool, count)
		present := make([]bool, count)
		for i := 0; i < count; i++ {
			graphics[i] = random.Intn(2) == 0
			present[i] = random.Intn(2) == 0
		}

		unit := newUnit("random", graphics, present)
		first, err := ResolveQueueFamilies(unit, newSurface(), Diagnostics{})
		require.NoError(t, err)
		second, err := ResolveQueueFamilies(unit, newSurface(), Diagnostics{})
		require.NoError(t, err)
		require.Equal(t, first, second)

		if index, ok := first.Graphics(); ok {
			require.Less(t, index, count)
			require.True(t, graphics[index])
			for earlier := 0; earlier < index; earlier++ {
				require.False(t, graphics[earlier])
			}
		}
		if index, ok := first.Present(); ok {
			require.Less(t, index, count)
			require.True(t, present[index])
			for earlier := 0; earlier < index; earlier++ {
				require.False(t, present[earlier])
			}
		}
	}
}

func TestQueueFamilyIndicesString(t *testing.T) {
	require.Equal(t, "graphics=0 present=1", completeIndices(0, 1).String())
	require.Equal(t, "graphics=none present=none", QueueFamilyIndices{}.String())
}

func TestGetQueues(t *testing.T) {
	t.Run("shared family", func(t *testing.T) {
		device := &fakeDevice{}
		graphics, present, err := GetQueues(sharedUnit(), device, newSurface(), Diagnostics{})
		require.NoError(t, err)
		require.Same(t, graphics, present)
		require.Equal(t, 0, graphics.FamilyIndex())
	})

	t.Run("split families", func(t *testing.T) {
		device := &fakeDevice{}
		graphics, present, err := GetQueues(splitUnit(), device, newSurface(), Diagnostics{})
		require.NoError(t, err)
		require.NotSame(t, graphics, present)
		require.Equal(t, 0, graphics.FamilyIndex())
		require.Equal(t, 1, present.FamilyIndex())
	})

	t.Run("incomplete", func(t *testing.T) {
		unit := newUnit("headless", []bool{true}, []bool{false})
		_, _, err := GetQueues(unit, &fakeDevice{}, newSurface(), Diagnostics{})
		require.True(t, errors.Is(err, ErrNoSuitableQueueFamily))
	})
}
