package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocation_Negative(t *testing.T) {
	_, err := NewLocation(-1, 0)
	assert.True(t, errors.Is(err, ErrNegativeCoordinate))
	_, err = NewLocation(0, -3)
	assert.True(t, errors.Is(err, ErrNegativeCoordinate))
	l, err := NewLocation(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Location{}, l)
}

func TestMustLocation_Panics(t *testing.T) {
	assert.Panics(t, func() { MustLocation(2, -1) })
	assert.NotPanics(t, func() { MustLocation(2, 1) })
}

func TestLocation_DistanceProperties(t *testing.T) {
	pts := []Location{{0, 0}, {3, 4}, {10, 2}, {7, 7}, {1, 19}, {19, 19}}
	for _, a := range pts {
		assert.Equal(t, 0, a.Distance(a))
		for _, b := range pts {
			assert.Equal(t, a.Distance(b), b.Distance(a), "%v %v", a, b)
		}
	}
	assert.Equal(t, 4, Location{0, 0}.Distance(Location{3, 4}))
	assert.Equal(t, 8, Location{10, 2}.Distance(Location{2, 2}))
}

func TestLocation_NextNeverOvershoots(t *testing.T) {
	pts := []Location{{0, 0}, {3, 4}, {10, 2}, {7, 7}, {1, 19}, {5, 5}, {5, 9}}
	for _, from := range pts {
		for _, to := range pts {
			want := max(0, from.Distance(to)-1)
			assert.Equal(t, want, from.Next(to).Distance(to), "%v -> %v", from, to)
		}
	}
}

func TestLocation_Next(t *testing.T) {
	tests := []struct {
		name     string
		from, to Location
		want     Location
	}{
		{"diagonal", Location{1, 1}, Location{5, 5}, Location{2, 2}},
		{"horizontal", Location{1, 1}, Location{5, 1}, Location{2, 1}},
		{"vertical down", Location{4, 9}, Location{4, 2}, Location{4, 8}},
		{"mixed", Location{8, 4}, Location{1, 10}, Location{7, 5}},
		{"same", Location{3, 3}, Location{3, 3}, Location{3, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.Next(tt.to))
		})
	}
}

func TestLocation_StringAndKey(t *testing.T) {
	assert.Equal(t, "5-10", Location{5, 10}.String())
	m := map[Location]int{{1, 2}: 1}
	assert.Equal(t, 1, m[MustLocation(1, 2)])
}

func TestParseTier(t *testing.T) {
	for _, tier := range Tiers {
		got, err := ParseTier(tier.String())
		require.NoError(t, err)
		assert.Equal(t, tier, got)
	}
	got, err := ParseTier("VTC")
	require.NoError(t, err)
	assert.Equal(t, TierVTC, got)
	_, err = ParseTier("truck")
	assert.Error(t, err)

	var tier Tier
	require.NoError(t, tier.UnmarshalText([]byte("premium")))
	assert.Equal(t, TierPremium, tier)
}
