package services

import (
	"testing"

	"nichehotel-backend/models"
)

func roomsByNumber(numbers ...string) []models.Room {
	rooms := make([]models.Room, len(numbers))
	for i, n := range numbers {
		rooms[i] = models.Room{RoomNumber: n}
	}
	return rooms
}

func numbersOf(rooms []models.Room) []string {
	out := make([]string, len(rooms))
	for i, r := range rooms {
		out[i] = r.RoomNumber
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSortRooms(t *testing.T) {
	t.Run("numeric room numbers", func(t *testing.T) {
		rooms := roomsByNumber("10", "2", "101", "9")
		sortRooms(rooms, "number", "asc")
		if got := numbersOf(rooms); !equalStrings(got, []string{"2", "9", "10", "101"}) {
			t.Errorf("ascending order = %v", got)
		}
	})

	t.Run("descending", func(t *testing.T) {
		rooms := roomsByNumber("10", "2", "101")
		sortRooms(rooms, "number", "desc")
		if got := numbersOf(rooms); !equalStrings(got, []string{"101", "10", "2"}) {
			t.Errorf("descending order = %v", got)
		}
	})

	t.Run("prefixed numbers compare by digits", func(t *testing.T) {
		rooms := roomsByNumber("B-20", "A-101", "A-9")
		sortRooms(rooms, "number", "asc")
		if got := numbersOf(rooms); !equalStrings(got, []string{"A-9", "B-20", "A-101"}) {
			t.Errorf("order = %v", got)
		}
	})

	t.Run("sort by price", func(t *testing.T) {
		rooms := []models.Room{
			{RoomNumber: "1", Price: 300},
			{RoomNumber: "2", Price: 100},
			{RoomNumber: "3", Price: 200},
		}
		sortRooms(rooms, "price", "asc")
		if got := numbersOf(rooms); !equalStrings(got, []string{"2", "3", "1"}) {
			t.Errorf("price order = %v", got)
		}
	})

	t.Run("sort by type case insensitive", func(t *testing.T) {
		rooms := []models.Room{
			{RoomNumber: "1", RoomType: "Suite"},
			{RoomNumber: "2", RoomType: "deluxe"},
		}
		sortRooms(rooms, "type", "asc")
		if got := numbersOf(rooms); !equalStrings(got, []string{"2", "1"}) {
			t.Errorf("type order = %v", got)
		}
	})
}

func TestRoomRangePattern(t *testing.T) {
	cases := []struct {
		spec string
		ok   bool
	}{
		{"101-110", true},
		{"101 - 110", true},
		{"101–110", true}, // en dash
		{"110-101", true},
		{"101", false},
		{"a-110", false},
		{"101-110-120", false},
		{"", false},
	}
	for _, tc := range cases {
		got := roomRange.MatchString(tc.spec)
		if got != tc.ok {
			t.Errorf("roomRange.MatchString(%q) = %v, want %v", tc.spec, got, tc.ok)
		}
	}
}
