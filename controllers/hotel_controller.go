package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"nichehotel-backend/models"
	"nichehotel-backend/services"
	"nichehotel-backend/utils"
)

type HotelController struct {
	Hotels *services.HotelService
}

func NewHotelController(hotels *services.HotelService) *HotelController {
	return &HotelController{Hotels: hotels}
}

func (ctl *HotelController) List(c *gin.Context) {
	hotels, err := ctl.Hotels.GetAll()
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, hotels)
}

func (ctl *HotelController) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondInvalidPayload(c)
		return
	}
	hotel, err := ctl.Hotels.GetByID(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, hotel)
}

func (ctl *HotelController) Create(c *gin.Context) {
	var hotel models.Hotel
	if err := c.ShouldBindJSON(&hotel); err != nil {
		respondInvalidPayload(c)
		return
	}
	created, err := ctl.Hotels.Create(hotel)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, created)
}

type bulkHotelsPayload struct {
	Lines string `json:"lines"`
}

func (ctl *HotelController) BulkCreate(c *gin.Context) {
	var payload bulkHotelsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidPayload(c)
		return
	}
	hotels, err := ctl.Hotels.BulkCreate(payload.Lines)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, hotels)
}

func (ctl *HotelController) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondInvalidPayload(c)
		return
	}
	var hotel models.Hotel
	if err := c.ShouldBindJSON(&hotel); err != nil {
		respondInvalidPayload(c)
		return
	}
	hotel.ID = uint(id)
	if err := ctl.Hotels.Update(hotel); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, hotel)
}

func (ctl *HotelController) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondInvalidPayload(c)
		return
	}
	if err := ctl.Hotels.Delete(uint(id)); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, nil)
}
