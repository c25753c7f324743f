package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pranavvermapv/real-estate-crm/internal/model"
	"github.com/pranavvermapv/real-estate-crm/pkg/database"
	"github.com/pranavvermapv/real-estate-crm/pkg/logger"
	"github.com/pranavvermapv/real-estate-crm/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PropertyRequest defines the structure for property creation/update
// requests. Size and budget are free text. Type and availability are not
// validated against the client-side enums: the API stores whatever string
// is supplied.
type PropertyRequest struct {
	Type         string `json:"type"`
	Size         string `json:"size"`
	Location     string `json:"location"`
	Budget       string `json:"budget"`
	Availability string `json:"availability"`
}

func (r *PropertyRequest) complete() bool {
	return r.Type != "" && r.Size != "" && r.Location != "" &&
		r.Budget != "" && r.Availability != ""
}

// ListProperties handles retrieving all properties
func ListProperties(c echo.Context) error {
	log := logger.FromContext(c)

	var properties []model.Property
	start := time.Now()
	result := database.GetDB().Find(&properties)
	prometheus.TrackDBOperation("select")(start)
	if result.Error != nil {
		log.Error("Failed to list properties", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "An error occurred while fetching properties",
		})
	}

	log.Info("Properties retrieved successfully", zap.Int("count", len(properties)))
	return c.JSON(http.StatusOK, properties)
}

// CreateProperty handles creating a new property listing
func CreateProperty(c echo.Context) error {
	log := logger.FromContext(c)

	var req PropertyRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	if !req.complete() {
		log.Warn("Property creation rejected, missing fields",
			zap.String("type", req.Type),
			zap.String("location", req.Location))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "All fields are required",
		})
	}

	property := model.Property{
		Type:         req.Type,
		Size:         req.Size,
		Location:     req.Location,
		Budget:       req.Budget,
		Availability: req.Availability,
	}

	start := time.Now()
	result := database.GetDB().Create(&property)
	prometheus.TrackDBOperation("insert")(start)
	if result.Error != nil {
		log.Error("Failed to create property",
			zap.String("location", req.Location),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "An error occurred while creating the property",
		})
	}

	prometheus.RecordOperation("property", "create")
	log.Info("Property created successfully",
		zap.Uint("property_id", property.ID),
		zap.String("location", property.Location))
	return c.JSON(http.StatusCreated, property)
}

// UpdateProperty handles updating an existing property. All mutable fields
// are overwritten together; last write wins.
func UpdateProperty(c echo.Context) error {
	log := logger.FromContext(c)

	id, ok := parseID(c)
	if !ok {
		log.Warn("Invalid property id", zap.String("property_id", c.Param("id")))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Property not found",
		})
	}

	var req PropertyRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data",
			zap.Uint("property_id", id),
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	var property model.Property
	start := time.Now()
	result := database.GetDB().First(&property, id)
	prometheus.TrackDBOperation("select")(start)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Warn("Property not found for update", zap.Uint("property_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Property not found",
			})
		}
		log.Error("Failed to fetch property for update",
			zap.Uint("property_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "An error occurred while updating the property",
		})
	}

	property.Type = req.Type
	property.Size = req.Size
	property.Location = req.Location
	property.Budget = req.Budget
	property.Availability = req.Availability

	start = time.Now()
	result = database.GetDB().Save(&property)
	prometheus.TrackDBOperation("update")(start)
	if result.Error != nil {
		log.Error("Failed to update property",
			zap.Uint("property_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "An error occurred while updating the property",
		})
	}

	prometheus.RecordOperation("property", "update")
	log.Info("Property updated successfully",
		zap.Uint("property_id", property.ID),
		zap.String("location", property.Location))
	return c.JSON(http.StatusOK, property)
}

// DeleteProperty handles removing a property
func DeleteProperty(c echo.Context) error {
	log := logger.FromContext(c)

	id, ok := parseID(c)
	if !ok {
		log.Warn("Invalid property id", zap.String("property_id", c.Param("id")))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Property not found",
		})
	}

	start := time.Now()
	result := database.GetDB().Delete(&model.Property{}, id)
	prometheus.TrackDBOperation("delete")(start)
	if result.Error != nil {
		log.Error("Failed to delete property",
			zap.Uint("property_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "An error occurred while deleting the property",
		})
	}

	if result.RowsAffected == 0 {
		log.Warn("Property not found for deletion", zap.Uint("property_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Property not found",
		})
	}

	prometheus.RecordOperation("property", "delete")
	log.Info("Property deleted successfully", zap.Uint("property_id", id))
	return c.NoContent(http.StatusNoContent)
}
