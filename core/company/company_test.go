package company

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/evcharge/core/charger"
	"github.com/kilianp07/evcharge/core/model"
	"github.com/kilianp07/evcharge/core/station"
	"github.com/kilianp07/evcharge/core/vehicle"
)

func mkVehicle(t *testing.T, c *Company, plate string, tier model.Tier) *vehicle.Vehicle {
	t.Helper()
	v, err := vehicle.New(c, vehicle.Config{Plate: plate, Name: "EV" + plate, Tier: tier, Capacity: 60,
		Start: model.MustLocation(0, 0), Destination: model.MustLocation(19, 19)})
	require.NoError(t, err)
	c.AddVehicle(v)
	return v
}

func mkStation(t *testing.T, c *Company, id string, x, y int, chargers ...*charger.Charger) *station.Station {
	t.Helper()
	st, err := station.New("Cáceres", id, model.MustLocation(x, y))
	require.NoError(t, err)
	for _, ch := range chargers {
		st.AddCharger(ch)
	}
	c.AddStation(st)
	return st
}

func mkCharger(t *testing.T, kind charger.Kind, id string) *charger.Charger {
	t.Helper()
	ch, err := charger.New(kind, id, 40, 0.4)
	require.NoError(t, err)
	return ch
}

func TestNew_DefaultName(t *testing.T) {
	assert.Equal(t, DefaultName, New("").Name())
	assert.Equal(t, "acme", New("acme").Name())
}

func TestRegistry_Lookups(t *testing.T) {
	c := New("")
	a := mkStation(t, c, "CC00", 10, 5)
	b := mkStation(t, c, "CC01", 10, 11)
	c.AddStation(nil)
	c.AddVehicle(nil)
	assert.Equal(t, 2, c.NumberOfStations())
	assert.Same(t, b, c.StationByID("CC01"))
	assert.Nil(t, c.StationByID("CC09"))
	assert.Same(t, a, c.StationAt(model.MustLocation(10, 5)))
	assert.Nil(t, c.StationAt(model.MustLocation(0, 0)))

	stations := c.Stations()
	stations[0] = nil
	assert.Same(t, a, c.Stations()[0])

	v := mkVehicle(t, c, "0CCC", model.TierStandard)
	vs := c.Vehicles()
	require.Len(t, vs, 1)
	assert.Same(t, v, vs[0])
}

func TestNotifyCharge_NoDuplicatesAndOrdering(t *testing.T) {
	c := New("")
	ch2 := mkCharger(t, charger.KindStandard, "CC01_000")
	ch1 := mkCharger(t, charger.KindStandard, "CC00_001")
	unused := mkCharger(t, charger.KindSolar, "CC00_000")
	mkStation(t, c, "CC00", 1, 1, ch1, unused)
	mkStation(t, c, "CC01", 2, 2, ch2)
	v1 := mkVehicle(t, c, "1CCC", model.TierStandard)
	v0 := mkVehicle(t, c, "0CCC", model.TierVTC)

	c.NotifyCharge(v1, ch2)
	c.NotifyCharge(v0, ch2)
	c.NotifyCharge(v1, ch2)
	c.NotifyCharge(v0, ch1)
	c.NotifyCharge(nil, ch1)
	c.NotifyCharge(v0, nil)

	ledger := c.Ledger()
	require.Len(t, ledger, 2)
	assert.Same(t, ch1, ledger[0].Charger)
	assert.Equal(t, []*vehicle.Vehicle{v0}, ledger[0].Vehicles)
	assert.Same(t, ch2, ledger[1].Charger)
	assert.Equal(t, []*vehicle.Vehicle{v1, v0}, ledger[1].Vehicles)
}

func TestLedger_SharedChargerIDsKeepNotificationOrder(t *testing.T) {
	for i := 0; i < 50; i++ {
		c := New("")
		first := mkCharger(t, charger.KindStandard, "c1")
		second := mkCharger(t, charger.KindStandard, "c1")
		mkStation(t, c, "CC00", 1, 1, first)
		mkStation(t, c, "CC01", 2, 2, second)
		a := mkVehicle(t, c, "0AAA", model.TierStandard)
		b := mkVehicle(t, c, "1BBB", model.TierStandard)

		c.NotifyCharge(a, first)
		c.NotifyCharge(b, second)

		ledger := c.Ledger()
		require.Len(t, ledger, 2)
		assert.Same(t, first, ledger[0].Charger)
		assert.Equal(t, []*vehicle.Vehicle{a}, ledger[0].Vehicles)
		assert.Same(t, second, ledger[1].Charger)
		assert.Equal(t, []*vehicle.Vehicle{b}, ledger[1].Vehicles)
	}
}

func TestReset(t *testing.T) {
	c := New("")
	ch := mkCharger(t, charger.KindStandard, "x")
	mkStation(t, c, "CC00", 1, 1, ch)
	v := mkVehicle(t, c, "0CCC", model.TierStandard)
	c.NotifyCharge(v, ch)
	c.Reset()
	assert.Empty(t, c.Vehicles())
	assert.Empty(t, c.Stations())
	assert.Empty(t, c.Ledger())
	assert.Equal(t, DefaultName, c.Name())
}

func TestCompany_VTCPicksCheapestRegardlessOfOrder(t *testing.T) {
	for _, cheapFirst := range []bool{true, false} {
		c := New("")
		cheap := func() { mkStation(t, c, "cheap", 3, 3, mustFee(t, charger.KindStandard, "c", 0.1)) }
		dear := func() { mkStation(t, c, "dear", 2, 2, mustFee(t, charger.KindSolar, "d", 0.9)) }
		if cheapFirst {
			cheap()
			dear()
		} else {
			dear()
			cheap()
		}
		v, err := vehicle.New(c, vehicle.Config{Plate: "v", Tier: model.TierVTC, Capacity: 30,
			Start: model.MustLocation(0, 0), Destination: model.MustLocation(19, 19)})
		require.NoError(t, err)
		v.CalculateRoute()
		stop, ok := v.PlannedStop()
		require.True(t, ok)
		assert.Equal(t, model.MustLocation(3, 3), stop)
	}
}

func mustFee(t *testing.T, kind charger.Kind, id string, fee float64) *charger.Charger {
	t.Helper()
	ch, err := charger.New(kind, id, 40, fee)
	require.NoError(t, err)
	return ch
}

func TestCompany_StrategiesPerTier(t *testing.T) {
	c := New("")
	mkStation(t, c, "here", 0, 0, mustFee(t, charger.KindUltraFast, "h", 0.01))
	mkStation(t, c, "far", 6, 0, mustFee(t, charger.KindUltraFast, "f", 0.05))
	mkStation(t, c, "a", 2, 3, mustFee(t, charger.KindStandard, "a", 0.3))
	mkStation(t, c, "b", 4, 0, func() *charger.Charger {
		ch, err := charger.New(charger.KindUltraFast, "b", 100, 0.9)
		require.NoError(t, err)
		return ch
	}())
	mkStation(t, c, "c", 1, 0, func() *charger.Charger {
		ch, err := charger.New(charger.KindUltraFast, "c", 150, 0.9)
		require.NoError(t, err)
		return ch
	}())
	dest := model.MustLocation(10, 0)

	tests := []struct {
		tier model.Tier
		want model.Location
	}{
		// a: 3+8=11, b: 4+6=10, c: 1+9=10 -> b wins the tie by order.
		{model.TierStandard, model.MustLocation(4, 0)},
		{model.TierDelivery, model.MustLocation(4, 0)},
		// only "a" holds a standard charger among reachable stations.
		{model.TierVTC, model.MustLocation(2, 3)},
		// c has the fastest ultra-fast charger.
		{model.TierPremium, model.MustLocation(1, 0)},
		// b is the closest reachable station to the destination.
		{model.TierPriority, model.MustLocation(4, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.tier.String(), func(t *testing.T) {
			v, err := vehicle.New(c, vehicle.Config{Plate: "p", Tier: tt.tier, Capacity: 20,
				Start: model.MustLocation(0, 0), Destination: dest})
			require.NoError(t, err)
			v.CalculateRoute()
			stop, ok := v.PlannedStop()
			require.True(t, ok)
			assert.Equal(t, tt.want, stop)
		})
	}
}
