package models

// SeatRole describes what a position in a vehicle layout is used for
type SeatRole string

const (
	SeatRoleDriver    SeatRole = "driver"
	SeatRolePassenger SeatRole = "passenger"
)

// SeatLayout is the fixed mapping from a vehicle capacity to its
// ordered seat positions. Seat numbers are 1-based and include the
// driver position, which is never bookable.
type SeatLayout struct {
	Capacity int
	Roles    []SeatRole // index i is seat number i+1
}

// seatLayouts is the closed set of known vehicle layouts. The driver
// always occupies seat 1 in this fleet.
var seatLayouts = map[int]SeatLayout{
	11: newFrontDriverLayout(11),
	14: newFrontDriverLayout(14),
	18: newFrontDriverLayout(18),
	29: newFrontDriverLayout(29),
	49: newFrontDriverLayout(49),
}

func newFrontDriverLayout(capacity int) SeatLayout {
	roles := make([]SeatRole, capacity)
	roles[0] = SeatRoleDriver
	for i := 1; i < capacity; i++ {
		roles[i] = SeatRolePassenger
	}
	return SeatLayout{Capacity: capacity, Roles: roles}
}

// SeatLayoutForCapacity returns the layout for a known capacity. An
// unrecognized capacity falls back to a generated front-driver layout
// of that size; the fallback is intentional so new vehicle types stay
// bookable before the layout table is extended.
func SeatLayoutForCapacity(capacity int) SeatLayout {
	if layout, ok := seatLayouts[capacity]; ok {
		return layout
	}
	if capacity < 2 {
		capacity = 2
	}
	return newFrontDriverLayout(capacity)
}

// IsBookableSeat reports whether seat number n is a valid passenger
// position in the layout for the given capacity.
func (l SeatLayout) IsBookableSeat(n int) bool {
	if n < 1 || n > len(l.Roles) {
		return false
	}
	return l.Roles[n-1] == SeatRolePassenger
}

// PassengerSeats returns all bookable seat numbers in ascending order.
func (l SeatLayout) PassengerSeats() []int {
	seats := make([]int, 0, len(l.Roles))
	for i, role := range l.Roles {
		if role == SeatRolePassenger {
			seats = append(seats, i+1)
		}
	}
	return seats
}
