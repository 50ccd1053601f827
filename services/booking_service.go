// services/booking_service.go
package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"nichehotel-backend/models"
	"nichehotel-backend/utils"
)

const (
	bookingCodeLength  = 8
	bookingCodeRetries = 5
	dateLayout         = "2006-01-02"
)

// BookingService owns the booking lifecycle: allocation, pricing snapshot,
// status transitions and payment state. Every mutation returns the domain
// events it produced; dispatching them is the caller's job.
type BookingService struct {
	DB        *gorm.DB
	Allocator *Allocator
	Metrics   *Metrics
}

func NewBookingService(db *gorm.DB, allocator *Allocator, metrics *Metrics) *BookingService {
	if allocator == nil {
		allocator = NewAllocator(nil)
	}
	return &BookingService{DB: db, Allocator: allocator, Metrics: metrics}
}

// RequestedType is one "N rooms of this type" line of a booking request. The
// id carries the room type label as the booking form submits it.
type RequestedType struct {
	Type string `json:"id"`
	Qty  int    `json:"qty"`
}

// Occupancy is the party for one room of a requested type.
type Occupancy struct {
	Adults   int `json:"adult"`
	Children int `json:"child"`
}

// CreateBookingInput is everything booking creation needs. Per-type slices in
// NightOverrides and Occupants apply positionally to the rooms allocated for
// that type.
type CreateBookingInput struct {
	HotelID uint `json:"hotel_id"`

	GuestName     string `json:"guest"`
	Salutation    string `json:"salutation"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Gender        string `json:"gender"`
	BirthDate     string `json:"birth"`
	Nationality   string `json:"nationality"`
	GuestEmail    string `json:"email"`
	GuestPhone    string `json:"phone"`
	ArrivalWindow string `json:"arrival_window"`
	Notes         string `json:"notes"`

	Checkin  string `json:"checkin"`
	Checkout string `json:"checkout"`

	RequestedTypes []RequestedType        `json:"rooms"`
	NightOverrides map[string][]int       `json:"night_overrides"`
	Occupants      map[string][]Occupancy `json:"occupants"`

	PaymentMethod string `json:"payment_method"`
	PaymentRef    string `json:"payment_ref"`
	PaymentStatus string `json:"payment_status"`

	// Non-positive means the configured default applies.
	TaxRatePercent float64 `json:"-"`
}

// CreateBookingResult reports what was actually claimed next to what was
// asked for, so callers can surface partial allocation.
type CreateBookingResult struct {
	Booking        *models.Booking
	RequestedRooms int
	AllocatedRooms int
	Events         []models.Event
}

func (in *CreateBookingInput) validate() (time.Time, time.Time, error) {
	ve := NewValidationError()

	if in.HotelID == 0 {
		ve.Add("hotel_id", "hotel is required")
	}
	if strings.TrimSpace(in.GuestName) == "" {
		ve.Add("guest", "guest name is required")
	}

	var checkin, checkout time.Time
	var err error
	if checkin, err = time.Parse(dateLayout, in.Checkin); err != nil {
		ve.Add("checkin", "invalid date, expected YYYY-MM-DD")
	}
	if checkout, err = time.Parse(dateLayout, in.Checkout); err != nil {
		ve.Add("checkout", "invalid date, expected YYYY-MM-DD")
	}
	if !checkin.IsZero() && !checkout.IsZero() && !checkout.After(checkin) {
		ve.Add("checkout", "must be after checkin")
	}

	if countRequestedRooms(in.RequestedTypes) == 0 {
		ve.Add("rooms", "at least one room type with a positive quantity is required")
	}

	if err := ve.ErrOrNil(); err != nil {
		return time.Time{}, time.Time{}, err
	}
	return checkin, checkout, nil
}

// countRequestedRooms totals the quantities of usable request lines. Lines
// with a blank type or a non-positive quantity never allocate, so they do
// not count as requested either.
func countRequestedRooms(types []RequestedType) int {
	n := 0
	for _, rt := range types {
		if rt.Qty > 0 && strings.TrimSpace(rt.Type) != "" {
			n += rt.Qty
		}
	}
	return n
}

// allocateFunc claims up to qty rooms of one type. It may return fewer than
// qty when inventory is short.
type allocateFunc func(roomType string, qty int) ([]AllocatedRoom, error)

// allocateRequested runs the shortfall policy over the request lines: each
// usable line allocates what it can, per-type shortfalls are tolerated, and
// only an entirely empty allocation is an error.
func allocateRequested(types []RequestedType, alloc allocateFunc) ([]AllocatedRoom, error) {
	var allocated []AllocatedRoom
	for _, rt := range types {
		if rt.Qty <= 0 || strings.TrimSpace(rt.Type) == "" {
			continue
		}
		rooms, err := alloc(rt.Type, rt.Qty)
		if err != nil {
			return nil, err
		}
		allocated = append(allocated, rooms...)
	}
	if len(allocated) == 0 {
		return nil, ErrInsufficientInventory
	}
	return allocated, nil
}

// CreateBooking allocates rooms, freezes the pricing snapshot and persists
// the booking atomically. Shortfalls on individual types are tolerated; only
// a fully empty allocation aborts, in which case nothing is persisted.
func (s *BookingService) CreateBooking(in CreateBookingInput) (*CreateBookingResult, error) {
	checkin, checkout, err := in.validate()
	if err != nil {
		return nil, err
	}

	defaultNights := NightsBetween(checkin, checkout)
	taxRate := in.TaxRatePercent
	if taxRate <= 0 {
		taxRate = DefaultTaxRatePercent
	}

	result := &CreateBookingResult{RequestedRooms: countRequestedRooms(in.RequestedTypes)}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var hotel models.Hotel
		if err := tx.First(&hotel, in.HotelID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("hotel %d: %w", in.HotelID, ErrNotFound)
			}
			return err
		}

		allocated, err := allocateRequested(in.RequestedTypes, func(roomType string, qty int) ([]AllocatedRoom, error) {
			rooms, err := s.Allocator.Allocate(tx, hotel.ID, roomType, qty)
			if err != nil {
				return nil, err
			}
			key := utils.NormalizeRoomType(roomType)
			for i := range rooms {
				if ov := in.NightOverrides[key]; i < len(ov) {
					rooms[i].NightsOverride = ov[i]
				}
				if occ := in.Occupants[key]; i < len(occ) {
					if occ[i].Adults > 0 {
						rooms[i].Adults = occ[i].Adults
					}
					if occ[i].Children > 0 {
						rooms[i].Children = occ[i].Children
					}
				}
			}
			return rooms, nil
		})
		if err != nil {
			return err
		}

		totals := ComputeBookingTotals(allocated, defaultNights, taxRate)

		adults, children := 0, 0
		bookingRooms := make([]models.BookingRoom, 0, len(totals.Rooms))
		for _, rc := range totals.Rooms {
			adults += rc.Adults
			children += rc.Children
			bookingRooms = append(bookingRooms, models.BookingRoom{
				RoomID:     rc.RoomID,
				RoomNumber: rc.RoomNumber,
				RoomType:   rc.RoomType,
				Nights:     rc.Nights,
				Adults:     rc.Adults,
				Children:   rc.Children,
				Price:      rc.Price,
			})
		}

		booking := models.Booking{
			HotelID:        hotel.ID,
			HotelName:      hotel.Name,
			GuestName:      strings.TrimSpace(in.GuestName),
			Salutation:     in.Salutation,
			FirstName:      in.FirstName,
			LastName:       in.LastName,
			Gender:         in.Gender,
			BirthDate:      in.BirthDate,
			Nationality:    in.Nationality,
			GuestEmail:     strings.TrimSpace(in.GuestEmail),
			GuestPhone:     strings.TrimSpace(in.GuestPhone),
			ArrivalWindow:  in.ArrivalWindow,
			Notes:          in.Notes,
			CheckinDate:    &checkin,
			CheckoutDate:   &checkout,
			Nights:         defaultNights,
			Adults:         adults,
			Children:       children,
			Status:         models.BookingStatusCreated,
			PreviousStatus: models.BookingStatusCreated,
			Subtotal:       totals.Subtotal,
			Tax:            totals.Tax,
			Total:          totals.Total,
			PaymentMethod:  strings.ToLower(strings.TrimSpace(in.PaymentMethod)),
			PaymentRef:     strings.TrimSpace(in.PaymentRef),
			PaymentStatus:  ResolvePaymentStatus(in.PaymentMethod, in.PaymentRef, in.PaymentStatus),
			Rooms:          bookingRooms,
		}

		if err := s.createWithFreshCode(tx, &booking); err != nil {
			return err
		}

		result.Booking = &booking
		result.AllocatedRooms = len(allocated)
		result.Events = statusChangeEvents(booking.ID, "", models.BookingStatusCreated)
		if booking.PaymentStatus == models.PaymentStatusPaid {
			result.Events = append(result.Events, newEvent(booking.ID, models.EventPaymentReceived, map[string]any{
				"method": booking.PaymentMethod,
				"total":  booking.Total,
			}))
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	if s.Metrics != nil {
		s.Metrics.BookingsCreated.Inc()
		if result.AllocatedRooms < result.RequestedRooms {
			s.Metrics.AllocationShortfalls.Inc()
		}
	}
	if result.AllocatedRooms < result.RequestedRooms {
		log.Printf("booking %d: allocated %d of %d requested rooms",
			result.Booking.ID, result.AllocatedRooms, result.RequestedRooms)
	}

	return result, nil
}

// createWithFreshCode inserts the booking, regenerating the code on a
// duplicate-key collision. Collisions on an 8-char code are rare enough that
// a small retry budget is plenty.
func (s *BookingService) createWithFreshCode(tx *gorm.DB, booking *models.Booking) error {
	var lastErr error
	for attempt := 0; attempt < bookingCodeRetries; attempt++ {
		code, err := utils.GenerateBookingCode(bookingCodeLength)
		if err != nil {
			return fmt.Errorf("generate booking code: %w", err)
		}
		booking.BookingCode = code

		lastErr = tx.Create(booking).Error
		if lastErr == nil {
			return nil
		}
		if !isDuplicateKey(lastErr) {
			return fmt.Errorf("create booking: %w", lastErr)
		}
		booking.ID = 0
		log.Printf("booking code collision (attempt %d), retrying", attempt+1)
	}
	return fmt.Errorf("create booking after %d attempts: %w", bookingCodeRetries, lastErr)
}

func isDuplicateKey(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// UpdateStatus moves a booking to the given lifecycle status and keeps its
// rooms' statuses in step. Transitioning into checked_in stamps a check-in
// time for each room that does not have one yet.
func (s *BookingService) UpdateStatus(bookingID uint, status string) (*models.Booking, []models.Event, error) {
	roomStatus, ok := RoomStatusForBooking(status)
	if !ok {
		ve := NewValidationError()
		ve.Add("status", "unknown status "+status)
		return nil, nil, ve
	}

	var booking models.Booking
	var events []models.Event

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Rooms").
			First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("booking %d: %w", bookingID, ErrNotFound)
			}
			return err
		}

		oldStatus := booking.Status

		roomIDs := make([]uint, 0, len(booking.Rooms))
		for _, br := range booking.Rooms {
			roomIDs = append(roomIDs, br.RoomID)
		}
		if len(roomIDs) > 0 {
			if err := tx.Model(&models.Room{}).
				Where("id IN ?", roomIDs).
				Update("status", roomStatus).Error; err != nil {
				return fmt.Errorf("update room statuses: %w", err)
			}
		}

		updates := map[string]interface{}{
			"status":          status,
			"previous_status": oldStatus,
		}

		if status == models.BookingStatusCheckedIn {
			stamps := map[string]string{}
			if len(booking.RoomCheckins) > 0 {
				if err := json.Unmarshal(booking.RoomCheckins, &stamps); err != nil {
					return fmt.Errorf("decode room checkins: %w", err)
				}
			}
			merged := MergeCheckinStamps(stamps, roomIDs, time.Now())
			raw, err := json.Marshal(merged)
			if err != nil {
				return fmt.Errorf("encode room checkins: %w", err)
			}
			updates["room_checkins"] = datatypes.JSON(raw)
			booking.RoomCheckins = datatypes.JSON(raw)
		}

		if err := tx.Model(&booking).Updates(updates).Error; err != nil {
			return fmt.Errorf("update booking %d: %w", bookingID, err)
		}

		booking.PreviousStatus = oldStatus
		booking.Status = status
		events = statusChangeEvents(booking.ID, oldStatus, status)
		return nil
	})
	if txErr != nil {
		return nil, nil, txErr
	}

	if s.Metrics != nil {
		s.Metrics.StatusTransitions.WithLabelValues(status).Inc()
	}
	return &booking, events, nil
}

// BulkUpdateStatus applies UpdateStatus to each id, skipping unknown
// bookings. Returns how many were updated plus the combined events. An
// invalid target status fails the whole batch up front.
func (s *BookingService) BulkUpdateStatus(bookingIDs []uint, status string) (int, []models.Event, error) {
	if _, ok := RoomStatusForBooking(status); !ok {
		ve := NewValidationError()
		ve.Add("status", "unknown status "+status)
		return 0, nil, ve
	}

	updated := 0
	var events []models.Event
	for _, id := range bookingIDs {
		if id == 0 {
			continue
		}
		_, evs, err := s.UpdateStatus(id, status)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return updated, events, err
		}
		updated++
		events = append(events, evs...)
	}
	return updated, events, nil
}

// UpdatePayment records payment details on a booking. The stored status is
// resolved by the same rule used at creation; method and reference are only
// overwritten when supplied.
func (s *BookingService) UpdatePayment(bookingID uint, method, ref, explicitStatus string) (*models.Booking, []models.Event, error) {
	var booking models.Booking
	var events []models.Event

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("booking %d: %w", bookingID, ErrNotFound)
			}
			return err
		}

		wasPaid := booking.PaymentStatus == models.PaymentStatusPaid

		updates := map[string]interface{}{}
		if m := strings.ToLower(strings.TrimSpace(method)); m != "" {
			updates["payment_method"] = m
			booking.PaymentMethod = m
		}
		if r := strings.TrimSpace(ref); r != "" {
			updates["payment_ref"] = r
			booking.PaymentRef = r
		}
		if final := ResolvePaymentStatus(method, ref, explicitStatus); final != "" {
			updates["payment_status"] = final
			booking.PaymentStatus = final
		}

		if len(updates) > 0 {
			if err := tx.Model(&booking).Updates(updates).Error; err != nil {
				return fmt.Errorf("update payment for booking %d: %w", bookingID, err)
			}
		}

		events = append(events, newEvent(booking.ID, models.EventBookingPaymentUpdated, map[string]any{
			"payment_status": booking.PaymentStatus,
		}))
		if !wasPaid && booking.PaymentStatus == models.PaymentStatusPaid {
			events = append(events, newEvent(booking.ID, models.EventPaymentReceived, map[string]any{
				"method": booking.PaymentMethod,
				"total":  booking.Total,
			}))
		}
		return nil
	})
	if txErr != nil {
		return nil, nil, txErr
	}
	return &booking, events, nil
}

// BookingFilter narrows List. Zero values mean "no constraint"; when neither
// a status filter nor a guest search is present the active statuses
// (created, checked_in) apply so the default view is the working set.
type BookingFilter struct {
	Guest    string
	HotelID  uint
	Status   string
	Statuses []string
	From     string
	To       string
	Limit    int
}

func (s *BookingService) List(filter BookingFilter) ([]models.Booking, error) {
	q := s.DB.Model(&models.Booking{}).Preload("Rooms")

	if filter.HotelID != 0 {
		q = q.Where("hotel_id = ?", filter.HotelID)
	}

	searching := strings.TrimSpace(filter.Guest) != ""
	if searching {
		needle := "%" + strings.TrimSpace(filter.Guest) + "%"
		q = q.Where(
			"guest_name LIKE ? OR booking_code LIKE ? OR id IN (?)",
			needle, needle,
			s.DB.Model(&models.BookingRoom{}).Select("booking_id").Where("room_number LIKE ?", needle),
		)
	}

	statuses := filter.Statuses
	if filter.Status != "" {
		statuses = append(statuses, filter.Status)
	}
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	} else if !searching {
		q = q.Where("status IN ?", []string{models.BookingStatusCreated, models.BookingStatusCheckedIn})
	}

	if filter.From != "" {
		if from, err := time.Parse(dateLayout, filter.From); err == nil {
			q = q.Where("checkin_date >= ?", from)
		}
	}
	if filter.To != "" {
		if to, err := time.Parse(dateLayout, filter.To); err == nil {
			q = q.Where("checkin_date <= ?", to)
		}
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	var bookings []models.Booking
	if err := q.Order("created_at DESC").Limit(limit).Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	for i := range bookings {
		if bookings[i].Rooms == nil {
			bookings[i].Rooms = []models.BookingRoom{}
		}
	}
	return bookings, nil
}

func (s *BookingService) Get(bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.Preload("Rooms").First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("booking %d: %w", bookingID, ErrNotFound)
		}
		return nil, fmt.Errorf("load booking %d: %w", bookingID, err)
	}
	return &booking, nil
}
