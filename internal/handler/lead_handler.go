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

// LeadRequest defines the structure for lead creation/update requests
type LeadRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
}

// ListLeads handles retrieving all leads
func ListLeads(c echo.Context) error {
	log := logger.FromContext(c)

	var leads []model.Lead
	start := time.Now()
	result := database.GetDB().Find(&leads)
	prometheus.TrackDBOperation("select")(start)
	if result.Error != nil {
		log.Error("Failed to list leads", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "An error occurred while fetching leads",
		})
	}

	log.Info("Leads retrieved successfully", zap.Int("count", len(leads)))
	return c.JSON(http.StatusOK, leads)
}

// CreateLead handles creating a new lead
func CreateLead(c echo.Context) error {
	log := logger.FromContext(c)

	var req LeadRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	// All fields are required and must be non-empty
	if req.Name == "" || req.PhoneNumber == "" {
		log.Warn("Lead creation rejected, missing fields",
			zap.String("name", req.Name),
			zap.String("phone_number", req.PhoneNumber))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Name and phone number are required",
		})
	}

	lead := model.Lead{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
	}

	start := time.Now()
	result := database.GetDB().Create(&lead)
	prometheus.TrackDBOperation("insert")(start)
	if result.Error != nil {
		log.Error("Failed to create lead",
			zap.String("name", req.Name),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "An error occurred while creating the lead",
		})
	}

	prometheus.RecordOperation("lead", "create")
	log.Info("Lead created successfully",
		zap.Uint("lead_id", lead.ID),
		zap.String("name", lead.Name))
	return c.JSON(http.StatusCreated, lead)
}

// UpdateLead handles updating an existing lead. Partial updates are not
// supported: both fields are overwritten with whatever was supplied.
// Concurrent updates to the same row are last-write-wins.
func UpdateLead(c echo.Context) error {
	log := logger.FromContext(c)

	id, ok := parseID(c)
	if !ok {
		log.Warn("Invalid lead id", zap.String("lead_id", c.Param("id")))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Lead not found",
		})
	}

	var req LeadRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data",
			zap.Uint("lead_id", id),
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	var lead model.Lead
	start := time.Now()
	result := database.GetDB().First(&lead, id)
	prometheus.TrackDBOperation("select")(start)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Warn("Lead not found for update", zap.Uint("lead_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Lead not found",
			})
		}
		log.Error("Failed to fetch lead for update",
			zap.Uint("lead_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "An error occurred while updating the lead",
		})
	}

	lead.Name = req.Name
	lead.PhoneNumber = req.PhoneNumber

	start = time.Now()
	result = database.GetDB().Save(&lead)
	prometheus.TrackDBOperation("update")(start)
	if result.Error != nil {
		log.Error("Failed to update lead",
			zap.Uint("lead_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "An error occurred while updating the lead",
		})
	}

	prometheus.RecordOperation("lead", "update")
	log.Info("Lead updated successfully",
		zap.Uint("lead_id", lead.ID),
		zap.String("name", lead.Name))
	return c.JSON(http.StatusOK, lead)
}

// DeleteLead handles removing a lead
func DeleteLead(c echo.Context) error {
	log := logger.FromContext(c)

	id, ok := parseID(c)
	if !ok {
		log.Warn("Invalid lead id", zap.String("lead_id", c.Param("id")))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Lead not found",
		})
	}

	start := time.Now()
	result := database.GetDB().Delete(&model.Lead{}, id)
	prometheus.TrackDBOperation("delete")(start)
	if result.Error != nil {
		log.Error("Failed to delete lead",
			zap.Uint("lead_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "An error occurred while deleting the lead",
		})
	}

	if result.RowsAffected == 0 {
		log.Warn("Lead not found for deletion", zap.Uint("lead_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Lead not found",
		})
	}

	prometheus.RecordOperation("lead", "delete")
	log.Info("Lead deleted successfully", zap.Uint("lead_id", id))
	return c.NoContent(http.StatusNoContent)
}
