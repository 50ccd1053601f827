package services

import (
	"errors"
	"testing"
)

func validInput() CreateBookingInput {
	return CreateBookingInput{
		HotelID:        1,
		GuestName:      "Jo Guest",
		Checkin:        "2026-03-05",
		Checkout:       "2026-03-07",
		RequestedTypes: []RequestedType{{Type: "standard", Qty: 2}},
	}
}

func TestCreateBookingInputValidate(t *testing.T) {
	t.Run("valid input parses dates", func(t *testing.T) {
		in := validInput()
		checkin, checkout, err := in.validate()
		if err != nil {
			t.Fatalf("validate: %v", err)
		}
		if NightsBetween(checkin, checkout) != 2 {
			t.Errorf("nights = %d, want 2", NightsBetween(checkin, checkout))
		}
	})

	t.Run("missing hotel", func(t *testing.T) {
		in := validInput()
		in.HotelID = 0
		_, _, err := in.validate()
		ve := IsValidationError(err)
		if ve == nil {
			t.Fatal("expected validation error")
		}
		if _, ok := ve.Fields()["hotel_id"]; !ok {
			t.Errorf("fields = %v", ve.Fields())
		}
	})

	t.Run("blank guest name", func(t *testing.T) {
		in := validInput()
		in.GuestName = "   "
		_, _, err := in.validate()
		if ve := IsValidationError(err); ve == nil {
			t.Fatal("expected validation error")
		}
	})

	t.Run("bad date format", func(t *testing.T) {
		in := validInput()
		in.Checkin = "03/05/2026"
		_, _, err := in.validate()
		ve := IsValidationError(err)
		if ve == nil {
			t.Fatal("expected validation error")
		}
		if _, ok := ve.Fields()["checkin"]; !ok {
			t.Errorf("fields = %v", ve.Fields())
		}
	})

	t.Run("checkout must be after checkin", func(t *testing.T) {
		in := validInput()
		in.Checkout = in.Checkin
		_, _, err := in.validate()
		ve := IsValidationError(err)
		if ve == nil {
			t.Fatal("expected validation error")
		}
		if _, ok := ve.Fields()["checkout"]; !ok {
			t.Errorf("fields = %v", ve.Fields())
		}
	})

	t.Run("no requested rooms", func(t *testing.T) {
		in := validInput()
		in.RequestedTypes = []RequestedType{{Type: "standard", Qty: 0}, {Type: " ", Qty: 3}}
		_, _, err := in.validate()
		ve := IsValidationError(err)
		if ve == nil {
			t.Fatal("expected validation error")
		}
		if _, ok := ve.Fields()["rooms"]; !ok {
			t.Errorf("fields = %v", ve.Fields())
		}
	})

	t.Run("multiple problems reported together", func(t *testing.T) {
		in := CreateBookingInput{}
		_, _, err := in.validate()
		ve := IsValidationError(err)
		if ve == nil {
			t.Fatal("expected validation error")
		}
		if len(ve.Fields()) < 4 {
			t.Errorf("fields = %v, want at least hotel, guest, dates, rooms", ve.Fields())
		}
	})
}

func TestIsDuplicateKey(t *testing.T) {
	if isDuplicateKey(nil) {
		t.Error("nil should not be a duplicate key error")
	}
	if isDuplicateKey(ErrNotFound) {
		t.Error("unrelated error classified as duplicate key")
	}
}

func TestCountRequestedRooms(t *testing.T) {
	cases := []struct {
		name  string
		types []RequestedType
		want  int
	}{
		{"sums positive lines", []RequestedType{{Type: "standard", Qty: 2}, {Type: "deluxe", Qty: 1}}, 3},
		{"skips blank type", []RequestedType{{Type: "  ", Qty: 4}, {Type: "standard", Qty: 1}}, 1},
		{"skips non positive qty", []RequestedType{{Type: "standard", Qty: 0}, {Type: "deluxe", Qty: -2}}, 0},
		{"empty request", nil, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := countRequestedRooms(tc.types); got != tc.want {
				t.Errorf("countRequestedRooms = %d, want %d", got, tc.want)
			}
		})
	}
}

func stubRooms(roomType string, n int) []AllocatedRoom {
	rooms := make([]AllocatedRoom, n)
	for i := range rooms {
		rooms[i] = AllocatedRoom{RoomID: uint(i + 1), RoomType: roomType, Price: 1000, Adults: 1}
	}
	return rooms
}

func TestAllocateRequested(t *testing.T) {
	t.Run("partial shortfall proceeds with what was claimed", func(t *testing.T) {
		capacity := map[string]int{"standard": 2, "deluxe": 0}
		request := []RequestedType{{Type: "standard", Qty: 3}, {Type: "deluxe", Qty: 2}}

		allocated, err := allocateRequested(request, func(roomType string, qty int) ([]AllocatedRoom, error) {
			n := capacity[roomType]
			if qty < n {
				n = qty
			}
			return stubRooms(roomType, n), nil
		})
		if err != nil {
			t.Fatalf("allocateRequested: %v", err)
		}
		if len(allocated) != 2 {
			t.Fatalf("allocated %d rooms, want 2", len(allocated))
		}
		if requested := countRequestedRooms(request); requested != 5 {
			t.Errorf("requested = %d, want 5", requested)
		}
		for _, room := range allocated {
			if room.RoomType != "standard" {
				t.Errorf("allocated a %q room, want only standard", room.RoomType)
			}
		}
	})

	t.Run("fully empty allocation aborts", func(t *testing.T) {
		request := []RequestedType{{Type: "standard", Qty: 2}}
		_, err := allocateRequested(request, func(string, int) ([]AllocatedRoom, error) {
			return nil, nil
		})
		if !errors.Is(err, ErrInsufficientInventory) {
			t.Fatalf("err = %v, want ErrInsufficientInventory", err)
		}
	})

	t.Run("blank type lines never reach the allocator", func(t *testing.T) {
		var calls []string
		request := []RequestedType{{Type: " ", Qty: 3}, {Type: "standard", Qty: 1}, {Type: "deluxe", Qty: 0}}
		_, err := allocateRequested(request, func(roomType string, qty int) ([]AllocatedRoom, error) {
			calls = append(calls, roomType)
			return stubRooms(roomType, qty), nil
		})
		if err != nil {
			t.Fatalf("allocateRequested: %v", err)
		}
		if len(calls) != 1 || calls[0] != "standard" {
			t.Errorf("allocator called with %v, want [standard]", calls)
		}
	})

	t.Run("allocator errors propagate", func(t *testing.T) {
		wantErr := errors.New("deadlock")
		_, err := allocateRequested([]RequestedType{{Type: "standard", Qty: 1}},
			func(string, int) ([]AllocatedRoom, error) { return nil, wantErr })
		if !errors.Is(err, wantErr) {
			t.Fatalf("err = %v, want %v", err, wantErr)
		}
	})
}
