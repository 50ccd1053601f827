package services

import (
	"testing"

	"nichehotel-backend/models"
)

func pool(n int) []models.Room {
	rooms := make([]models.Room, n)
	for i := range rooms {
		rooms[i] = models.Room{RoomNumber: string(rune('A' + i))}
		rooms[i].ID = uint(i + 1)
	}
	return rooms
}

func TestRandomSelection(t *testing.T) {
	strategy := RandomSelection{}

	t.Run("picks requested count", func(t *testing.T) {
		got := strategy.Pick(pool(10), 3)
		if len(got) != 3 {
			t.Errorf("picked %d rooms, want 3", len(got))
		}
	})

	t.Run("short pool returns everything", func(t *testing.T) {
		got := strategy.Pick(pool(2), 5)
		if len(got) != 2 {
			t.Errorf("picked %d rooms, want 2", len(got))
		}
	})

	t.Run("no duplicates", func(t *testing.T) {
		got := strategy.Pick(pool(10), 10)
		seen := map[uint]bool{}
		for _, room := range got {
			if seen[room.ID] {
				t.Fatalf("room %d picked twice", room.ID)
			}
			seen[room.ID] = true
		}
	})

	t.Run("does not mutate pool", func(t *testing.T) {
		p := pool(5)
		ids := make([]uint, len(p))
		for i, room := range p {
			ids[i] = room.ID
		}
		strategy.Pick(p, 3)
		for i, room := range p {
			if room.ID != ids[i] {
				t.Fatalf("pool order changed at %d", i)
			}
		}
	})

	t.Run("non positive count", func(t *testing.T) {
		if got := strategy.Pick(pool(5), 0); got != nil {
			t.Errorf("Pick(_, 0) = %v, want nil", got)
		}
		if got := strategy.Pick(nil, 3); got != nil {
			t.Errorf("Pick(nil, 3) = %v, want nil", got)
		}
	})
}

func numberedPool(numbers ...string) []models.Room {
	rooms := make([]models.Room, len(numbers))
	for i, number := range numbers {
		rooms[i] = models.Room{RoomNumber: number}
		rooms[i].ID = uint(i + 1)
	}
	return rooms
}

func TestLowestNumberSelection(t *testing.T) {
	strategy := LowestNumberSelection{}

	t.Run("lowest numbers first regardless of pool order", func(t *testing.T) {
		got := strategy.Pick(numberedPool("210", "9", "101", "12"), 3)
		want := []string{"9", "12", "101"}
		if len(got) != len(want) {
			t.Fatalf("picked %d rooms, want %d", len(got), len(want))
		}
		for i, room := range got {
			if room.RoomNumber != want[i] {
				t.Errorf("position %d got room %q, want %q", i, room.RoomNumber, want[i])
			}
		}
	})

	t.Run("prefixed numbers compare on digits", func(t *testing.T) {
		got := strategy.Pick(numberedPool("B-20", "A-101", "A-9"), 2)
		if got[0].RoomNumber != "A-9" || got[1].RoomNumber != "B-20" {
			t.Errorf("got %q, %q, want A-9, B-20", got[0].RoomNumber, got[1].RoomNumber)
		}
	})

	t.Run("digitless numbers fall back to id order after the rest", func(t *testing.T) {
		got := strategy.Pick(numberedPool("Annex", "7"), 2)
		if got[0].RoomNumber != "7" || got[1].RoomNumber != "Annex" {
			t.Errorf("got %q, %q, want 7, Annex", got[0].RoomNumber, got[1].RoomNumber)
		}
	})

	t.Run("short pool returns everything", func(t *testing.T) {
		if got := strategy.Pick(pool(2), 5); len(got) != 2 {
			t.Errorf("short pool picked %d, want 2", len(got))
		}
	})

	t.Run("does not mutate pool", func(t *testing.T) {
		p := numberedPool("210", "9", "101")
		strategy.Pick(p, 2)
		if p[0].RoomNumber != "210" || p[1].RoomNumber != "9" || p[2].RoomNumber != "101" {
			t.Errorf("pool order changed: %q %q %q", p[0].RoomNumber, p[1].RoomNumber, p[2].RoomNumber)
		}
	})
}

func TestNewAllocatorDefaultsToRandom(t *testing.T) {
	a := NewAllocator(nil)
	if _, ok := a.Strategy.(RandomSelection); !ok {
		t.Errorf("default strategy is %T, want RandomSelection", a.Strategy)
	}
}
