package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"nichehotel-backend/models"
	"nichehotel-backend/services"
	"nichehotel-backend/utils"
)

type RoomTypeController struct {
	Types *services.RoomTypeService
}

func NewRoomTypeController(types *services.RoomTypeService) *RoomTypeController {
	return &RoomTypeController{Types: types}
}

type roomTypePayload struct {
	Name         string   `json:"name"`
	DefaultPrice float64  `json:"price"`
	Description  string   `json:"description"`
	Amenities    []string `json:"amenities"`
	// Either data-URI images to upload, or previously stored paths.
	Images []string `json:"images"`
}

func (p roomTypePayload) toModel() (models.RoomType, error) {
	rt := models.RoomType{
		Name:         p.Name,
		DefaultPrice: p.DefaultPrice,
		Description:  p.Description,
	}

	if len(p.Amenities) > 0 {
		raw, err := json.Marshal(p.Amenities)
		if err != nil {
			return rt, err
		}
		rt.Amenities = datatypes.JSON(raw)
	}

	if len(p.Images) > 0 {
		paths := make([]string, 0, len(p.Images))
		for _, img := range p.Images {
			if len(img) > 5 && img[:5] == "data:" {
				path, err := services.SaveBase64Image(img, "roomtypes")
				if err != nil {
					return rt, err
				}
				paths = append(paths, path)
				continue
			}
			paths = append(paths, img)
		}
		raw, err := json.Marshal(paths)
		if err != nil {
			return rt, err
		}
		rt.Images = datatypes.JSON(raw)
	}

	return rt, nil
}

func (ctl *RoomTypeController) List(c *gin.Context) {
	types, err := ctl.Types.GetAll()
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, types)
}

func (ctl *RoomTypeController) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondInvalidPayload(c)
		return
	}
	rt, err := ctl.Types.GetByID(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rt)
}

func (ctl *RoomTypeController) Create(c *gin.Context) {
	var payload roomTypePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidPayload(c)
		return
	}
	rt, err := payload.toModel()
	if err != nil {
		respondError(c, err)
		return
	}
	created, err := ctl.Types.Create(rt)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, created)
}

func (ctl *RoomTypeController) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondInvalidPayload(c)
		return
	}
	var payload roomTypePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidPayload(c)
		return
	}
	rt, err := payload.toModel()
	if err != nil {
		respondError(c, err)
		return
	}
	rt.ID = uint(id)
	if err := ctl.Types.Update(rt); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rt)
}

func (ctl *RoomTypeController) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondInvalidPayload(c)
		return
	}
	if err := ctl.Types.Delete(uint(id)); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, nil)
}
