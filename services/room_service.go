package services

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"nichehotel-backend/models"
	"nichehotel-backend/utils"
)

type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

func (s *RoomService) Create(room models.Room) (models.Room, error) {
	ve := NewValidationError()
	if room.HotelID == 0 {
		ve.Add("hotel_id", "hotel is required")
	}
	if strings.TrimSpace(room.RoomNumber) == "" {
		ve.Add("room_number", "room number is required")
	}
	if strings.TrimSpace(room.RoomType) == "" {
		ve.Add("room_type", "room type is required")
	}
	if err := ve.ErrOrNil(); err != nil {
		return room, err
	}

	room.RoomType = utils.NormalizeRoomType(room.RoomType)
	if room.Status == "" {
		room.Status = models.RoomStatusAvailable
	}
	err := s.DB.Create(&room).Error
	return room, err
}

// roomRange matches bulk input like "101-110" (hyphen or en dash).
var roomRange = regexp.MustCompile(`^(\d+)\s*[-–]\s*(\d+)$`)

// BulkCreate expands a numeric range spec into individual rooms, all of the
// same type and price. A reversed range is swapped rather than rejected.
func (s *RoomService) BulkCreate(hotelID uint, rangeSpec, roomType string, price float64) ([]models.Room, error) {
	m := roomRange.FindStringSubmatch(strings.TrimSpace(rangeSpec))
	if m == nil {
		ve := NewValidationError()
		ve.Add("range", "expected a numeric range like 101-110")
		return nil, ve
	}
	lo, _ := strconv.Atoi(m[1])
	hi, _ := strconv.Atoi(m[2])
	if lo > hi {
		lo, hi = hi, lo
	}

	rooms := make([]models.Room, 0, hi-lo+1)
	for n := lo; n <= hi; n++ {
		rooms = append(rooms, models.Room{
			HotelID:    hotelID,
			RoomNumber: strconv.Itoa(n),
			RoomType:   utils.NormalizeRoomType(roomType),
			Status:     models.RoomStatusAvailable,
			Price:      price,
		})
	}
	if err := s.DB.Create(&rooms).Error; err != nil {
		return nil, fmt.Errorf("bulk create rooms: %w", err)
	}
	return rooms, nil
}

// List returns rooms ordered by the given field and direction. Sorting is
// done in memory so room numbers compare numerically ("9" before "10").
func (s *RoomService) List(hotelID uint, sortBy, direction string) ([]models.Room, error) {
	q := s.DB.Model(&models.Room{})
	if hotelID != 0 {
		q = q.Where("hotel_id = ?", hotelID)
	}
	var rooms []models.Room
	if err := q.Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	sortRooms(rooms, sortBy, direction)
	return rooms, nil
}

// AvailableForHotel returns the bookable pool, optionally narrowed to one
// type. This is what the public booking form sees.
func (s *RoomService) AvailableForHotel(hotelID uint, roomType string) ([]models.Room, error) {
	q := s.DB.Where("hotel_id = ? AND status = ?", hotelID, models.RoomStatusAvailable)
	if strings.TrimSpace(roomType) != "" {
		q = q.Where("room_type = ?", utils.NormalizeRoomType(roomType))
	}
	var rooms []models.Room
	if err := q.Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("list available rooms: %w", err)
	}
	sortRooms(rooms, "number", "asc")
	return rooms, nil
}

func (s *RoomService) GetByID(id uint) (models.Room, error) {
	var room models.Room
	if err := s.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return room, fmt.Errorf("room %d: %w", id, ErrNotFound)
		}
		return room, err
	}
	return room, nil
}

func (s *RoomService) Update(room models.Room) error {
	if room.RoomType != "" {
		room.RoomType = utils.NormalizeRoomType(room.RoomType)
	}
	res := s.DB.Model(&models.Room{}).Where("id = ?", room.ID).Updates(room)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("room %d: %w", room.ID, ErrNotFound)
	}
	return nil
}

func (s *RoomService) Delete(id uint) error {
	return s.DB.Delete(&models.Room{}, id).Error
}

var nonDigits = regexp.MustCompile(`\D`)

// numericKey strips non-digits for number-style comparison; rooms like
// "A-101" sort by 101.
func numericKey(s string) (int, bool) {
	digits := nonDigits.ReplaceAllString(s, "")
	if digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	return n, err == nil
}

func sortRooms(rooms []models.Room, sortBy, direction string) {
	desc := strings.EqualFold(direction, "desc")

	less := func(a, b models.Room) bool {
		switch sortBy {
		case "type":
			return strings.ToLower(a.RoomType) < strings.ToLower(b.RoomType)
		case "status":
			return strings.ToLower(a.Status) < strings.ToLower(b.Status)
		case "price":
			return a.Price < b.Price
		default: // number
			an, aok := numericKey(a.RoomNumber)
			bn, bok := numericKey(b.RoomNumber)
			if aok && bok && an != bn {
				return an < bn
			}
			return strings.ToLower(a.RoomNumber) < strings.ToLower(b.RoomNumber)
		}
	}

	sort.SliceStable(rooms, func(i, j int) bool {
		if desc {
			return less(rooms[j], rooms[i])
		}
		return less(rooms[i], rooms[j])
	})
}
