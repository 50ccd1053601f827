package services

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"nichehotel-backend/models"
	"nichehotel-backend/utils"
)

// SelectionStrategy decides which rooms out of an available pool satisfy a
// request. The policy is explicit and swappable; the shipped default matches
// the legacy behavior of picking uniformly at random.
type SelectionStrategy interface {
	Pick(pool []models.Room, n int) []models.Room
}

// RandomSelection picks a uniform-random subset without replacement. When the
// pool is smaller than n the whole pool is returned.
type RandomSelection struct{}

func (RandomSelection) Pick(pool []models.Room, n int) []models.Room {
	if n <= 0 || len(pool) == 0 {
		return nil
	}
	out := make([]models.Room, len(pool))
	copy(out, pool)
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	if n < len(out) {
		out = out[:n]
	}
	return out
}

// LowestNumberSelection assigns the numerically lowest room numbers first,
// for deployments that want deterministic assignment. Rooms whose numbers
// carry no digits sort after the rest, by id.
type LowestNumberSelection struct{}

func (LowestNumberSelection) Pick(pool []models.Room, n int) []models.Room {
	if n <= 0 || len(pool) == 0 {
		return nil
	}
	out := make([]models.Room, len(pool))
	copy(out, pool)
	sort.SliceStable(out, func(i, j int) bool {
		a, aok := numericKey(out[i].RoomNumber)
		b, bok := numericKey(out[j].RoomNumber)
		if aok && bok && a != b {
			return a < b
		}
		if aok != bok {
			return aok
		}
		return out[i].ID < out[j].ID
	})
	if n < len(out) {
		out = out[:n]
	}
	return out
}

// Allocator claims concrete rooms for a requested type and quantity.
type Allocator struct {
	Strategy SelectionStrategy
}

func NewAllocator(strategy SelectionStrategy) *Allocator {
	if strategy == nil {
		strategy = RandomSelection{}
	}
	return &Allocator{Strategy: strategy}
}

// Allocate claims up to qty available rooms of the normalized type under the
// hotel. It must be called inside a transaction: the candidate pool is read
// under a row lock and every claim is a conditional status flip, so two
// concurrent bookings cannot end up holding the same room. Returns fewer
// rooms than qty (possibly none) when inventory is short; the caller decides
// what a shortfall means.
func (a *Allocator) Allocate(tx *gorm.DB, hotelID uint, roomType string, qty int) ([]AllocatedRoom, error) {
	if qty <= 0 {
		return nil, nil
	}

	var pool []models.Room
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("hotel_id = ? AND room_type = ? AND status = ?",
			hotelID, utils.NormalizeRoomType(roomType), models.RoomStatusAvailable).
		Order("id ASC").
		Find(&pool).Error
	if err != nil {
		return nil, fmt.Errorf("load candidate rooms: %w", err)
	}

	picked := a.Strategy.Pick(pool, qty)

	// Rooms with no price of their own bill at the catalog default for the
	// type. Resolved once per request, only when some picked room needs it.
	catalogDefault := 0.0
	for _, room := range picked {
		if room.Price > 0 {
			continue
		}
		var rt models.RoomType
		err := tx.
			Where("slug = ? OR LOWER(name) = ?",
				utils.Slugify(roomType), utils.NormalizeRoomType(roomType)).
			First(&rt).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("load catalog default for %q: %w", roomType, err)
		}
		catalogDefault = rt.DefaultPrice
		break
	}

	allocated := make([]AllocatedRoom, 0, len(picked))
	for _, room := range picked {
		res := tx.Model(&models.Room{}).
			Where("id = ? AND status = ?", room.ID, models.RoomStatusAvailable).
			Update("status", models.RoomStatusBooked)
		if res.Error != nil {
			return nil, fmt.Errorf("claim room %d: %w", room.ID, res.Error)
		}
		if res.RowsAffected == 0 {
			// Lost the room since the pool read; skip it.
			continue
		}
		allocated = append(allocated, AllocatedRoom{
			RoomID:     room.ID,
			RoomNumber: room.RoomNumber,
			RoomType:   room.RoomType,
			Price:      EffectivePrice(room.Price, catalogDefault),
			Adults:     1,
		})
	}
	return allocated, nil
}
