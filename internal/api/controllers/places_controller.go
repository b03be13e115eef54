package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"daejeonmate/internal/services"
	"daejeonmate/pkg/utils"
)

type PlacesController struct {
	placeService services.PlaceServiceInterface
}

func NewPlacesController(placeService services.PlaceServiceInterface) *PlacesController {
	return &PlacesController{
		placeService: placeService,
	}
}

func (p *PlacesController) GetPlaceByID(c *gin.Context) {
	placeID := c.Param("id")
	if placeID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Place ID is required")
		return
	}

	place, err := p.placeService.GetPlaceByID(c.Request.Context(), placeID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, place, "Place fetched successfully")
}

func (p *PlacesController) ListPlaces(c *gin.Context) {
	pageStr := c.DefaultQuery("page", "1")
	pageSizeStr := c.DefaultQuery("pageSize", "20")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return
	}

	pageSize, err := strconv.Atoi(pageSizeStr)
	if err != nil || pageSize < 1 || pageSize > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size (must be 1-100)")
		return
	}

	places, err := p.placeService.ListPlaces(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, places, "Places fetched successfully")
}
