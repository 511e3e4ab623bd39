package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeatLayoutForCapacity(t *testing.T) {
	t.Run("Known Capacities", func(t *testing.T) {
		for _, capacity := range []int{11, 14, 18, 29, 49} {
			layout := SeatLayoutForCapacity(capacity)
			assert.Equal(t, capacity, layout.Capacity)
			assert.Len(t, layout.Roles, capacity)
			assert.Equal(t, SeatRoleDriver, layout.Roles[0])
		}
	})

	t.Run("Unknown Capacity Falls Back", func(t *testing.T) {
		layout := SeatLayoutForCapacity(23)
		assert.Equal(t, 23, layout.Capacity)
		assert.Equal(t, SeatRoleDriver, layout.Roles[0])
		assert.Len(t, layout.PassengerSeats(), 22)
	})

	t.Run("Degenerate Capacity", func(t *testing.T) {
		layout := SeatLayoutForCapacity(0)
		require.NotEmpty(t, layout.Roles)
		assert.Len(t, layout.PassengerSeats(), 1)
	})
}

func TestIsBookableSeat(t *testing.T) {
	layout := SeatLayoutForCapacity(14)

	assert.False(t, layout.IsBookableSeat(0))
	assert.False(t, layout.IsBookableSeat(1)) // driver
	assert.True(t, layout.IsBookableSeat(2))
	assert.True(t, layout.IsBookableSeat(14))
	assert.False(t, layout.IsBookableSeat(15))
	assert.False(t, layout.IsBookableSeat(-3))
}

func TestPassengerSeats(t *testing.T) {
	layout := SeatLayoutForCapacity(11)

	seats := layout.PassengerSeats()
	require.Len(t, seats, 10)
	assert.Equal(t, 2, seats[0])
	assert.Equal(t, 11, seats[len(seats)-1])
}
