package domain

import (
	"fmt"
	"math"
	"sort"
)

// The auditorium layout is a fixed grid; every hall uses the same one.
const (
	SeatRows    = "ABCDEFGH"
	SeatColumns = 12
)

// SeatLabels returns every label on the grid in row-major order
// ("A1" ... "H12").
func SeatLabels() []string {
	labels := make([]string, 0, len(SeatRows)*SeatColumns)

	for _, row := range SeatRows {
		for col := 1; col <= SeatColumns; col++ {
			labels = append(labels, fmt.Sprintf("%c%d", row, col))
		}
	}

	return labels
}

// BaselineReservedSeats derives the house-held seat set for an identifier.
// The set is a pure function of the id: the seed is the sum of the id's
// bytes folded through a sine-based generator, so the same showtime always
// presents the same baseline without any backing rows or wall-clock input.
// The set size lands between 8 and 15 seats.
func BaselineReservedSeats(id string) []string {
	seed := 0
	for _, b := range []byte(id) {
		seed += int(b)
	}

	next := func() float64 {
		seed++
		x := math.Sin(float64(seed)) * 10000
		return x - math.Floor(x)
	}

	grid := SeatLabels()
	count := 8 + int(next()*8)

	reserved := make(map[string]struct{}, count)
	for len(reserved) < count {
		idx := int(next() * float64(len(grid)))
		if idx >= len(grid) {
			idx = len(grid) - 1
		}
		reserved[grid[idx]] = struct{}{}
	}

	labels := make([]string, 0, len(reserved))
	for label := range reserved {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	return labels
}
