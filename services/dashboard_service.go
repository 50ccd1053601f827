package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"nichehotel-backend/models"
)

const (
	dashboardCacheKey = "nichehotel:dashboard"
	dashboardCacheTTL = 60 * time.Second
	dashboardDays     = 7
)

// OccupancyDay is one day of the rolling occupancy window.
type OccupancyDay struct {
	Date     string `json:"date"`
	Occupied int64  `json:"occupied"`
}

// DashboardMetrics is the operator overview: inventory state plus a short
// occupancy and movement window.
type DashboardMetrics struct {
	TotalRooms     int64          `json:"total_rooms"`
	AvailableRooms int64          `json:"available_rooms"`
	Days           []OccupancyDay `json:"days"`
	Checkins       int64          `json:"checkins_today"`
	Checkouts      int64          `json:"checkouts_today"`
}

// DashboardService computes operator metrics, with an optional short-lived
// cache so a busy dashboard does not hammer the database. A nil Redis client
// means every call computes fresh.
type DashboardService struct {
	DB    *gorm.DB
	Cache *redis.Client
}

func NewDashboardService(db *gorm.DB, cache *redis.Client) *DashboardService {
	return &DashboardService{DB: db, Cache: cache}
}

func (s *DashboardService) Metrics(ctx context.Context) (*DashboardMetrics, error) {
	if s.Cache != nil {
		if raw, err := s.Cache.Get(ctx, dashboardCacheKey).Result(); err == nil {
			var cached DashboardMetrics
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return &cached, nil
			}
		}
	}

	out, err := s.compute()
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if raw, err := json.Marshal(out); err == nil {
			if err := s.Cache.Set(ctx, dashboardCacheKey, raw, dashboardCacheTTL).Err(); err != nil {
				log.Printf("dashboard cache write: %v", err)
			}
		}
	}
	return out, nil
}

func (s *DashboardService) compute() (*DashboardMetrics, error) {
	out := &DashboardMetrics{}

	if err := s.DB.Model(&models.Room{}).Count(&out.TotalRooms).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Room{}).
		Where("status = ?", models.RoomStatusAvailable).
		Count(&out.AvailableRooms).Error; err != nil {
		return nil, err
	}

	today := time.Now().Truncate(24 * time.Hour)
	active := []string{models.BookingStatusCreated, models.BookingStatusCheckedIn, models.BookingStatusCheckedOut}

	// A booking occupies day d when d >= checkin and d < checkout. Canceled
	// bookings never count.
	for i := 0; i < dashboardDays; i++ {
		day := today.AddDate(0, 0, i)
		var occupied int64
		err := s.DB.Model(&models.Booking{}).
			Where("status IN ?", active).
			Where("checkin_date <= ? AND checkout_date > ?", day, day).
			Count(&occupied).Error
		if err != nil {
			return nil, err
		}
		out.Days = append(out.Days, OccupancyDay{
			Date:     day.Format("2006-01-02"),
			Occupied: occupied,
		})
	}

	if err := s.DB.Model(&models.Booking{}).
		Where("status IN ?", active).
		Where("checkin_date = ?", today).
		Count(&out.Checkins).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Booking{}).
		Where("status IN ?", active).
		Where("checkout_date = ?", today).
		Count(&out.Checkouts).Error; err != nil {
		return nil, err
	}

	return out, nil
}

// TypeAvailability is the available-room count for one type label.
type TypeAvailability struct {
	RoomType  string `json:"room_type"`
	Available int64  `json:"available"`
}

// AvailableByType is what the booking form's type picker shows.
func (s *DashboardService) AvailableByType(hotelID uint) ([]TypeAvailability, error) {
	q := s.DB.Model(&models.Room{}).
		Select("room_type, COUNT(*) AS available").
		Where("status = ?", models.RoomStatusAvailable)
	if hotelID != 0 {
		q = q.Where("hotel_id = ?", hotelID)
	}
	var out []TypeAvailability
	err := q.Group("room_type").Order("room_type ASC").Scan(&out).Error
	return out, err
}
