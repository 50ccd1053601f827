package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"nichehotel-backend/models"
	"nichehotel-backend/services"
	"nichehotel-backend/utils"
)

type RoomController struct {
	Rooms *services.RoomService
}

func NewRoomController(rooms *services.RoomService) *RoomController {
	return &RoomController{Rooms: rooms}
}

// List supports ?hotel_id=, ?sort= (number|type|status|price) and ?dir=
// (asc|desc).
func (ctl *RoomController) List(c *gin.Context) {
	var hotelID uint
	if raw := c.Query("hotel_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			respondInvalidPayload(c)
			return
		}
		hotelID = uint(id)
	}
	rooms, err := ctl.Rooms.List(hotelID, c.DefaultQuery("sort", "number"), c.DefaultQuery("dir", "asc"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

func (ctl *RoomController) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondInvalidPayload(c)
		return
	}
	room, err := ctl.Rooms.GetByID(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (ctl *RoomController) Create(c *gin.Context) {
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		respondInvalidPayload(c)
		return
	}
	created, err := ctl.Rooms.Create(room)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, created)
}

type bulkRoomsPayload struct {
	HotelID  uint    `json:"hotel_id"`
	Range    string  `json:"range"`
	RoomType string  `json:"room_type"`
	Price    float64 `json:"price"`
}

func (ctl *RoomController) BulkCreate(c *gin.Context) {
	var payload bulkRoomsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidPayload(c)
		return
	}
	rooms, err := ctl.Rooms.BulkCreate(payload.HotelID, payload.Range, payload.RoomType, payload.Price)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, gin.H{"created": len(rooms), "rooms": rooms})
}

func (ctl *RoomController) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondInvalidPayload(c)
		return
	}
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		respondInvalidPayload(c)
		return
	}
	room.ID = uint(id)
	if err := ctl.Rooms.Update(room); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (ctl *RoomController) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondInvalidPayload(c)
		return
	}
	if err := ctl.Rooms.Delete(uint(id)); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, nil)
}
