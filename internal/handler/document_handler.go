package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pranavvermapv/real-estate-crm/internal/model"
	"github.com/pranavvermapv/real-estate-crm/internal/upload"
	"github.com/pranavvermapv/real-estate-crm/pkg/database"
	"github.com/pranavvermapv/real-estate-crm/pkg/logger"
	"github.com/pranavvermapv/real-estate-crm/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ListDocuments handles retrieving all uploaded documents
func ListDocuments(c echo.Context) error {
	log := logger.FromContext(c)

	var documents []model.Document
	start := time.Now()
	result := database.GetDB().Find(&documents)
	prometheus.TrackDBOperation("select")(start)
	if result.Error != nil {
		log.Error("Failed to list documents", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve documents.",
		})
	}

	log.Info("Documents retrieved successfully", zap.Int("count", len(documents)))
	return c.JSON(http.StatusOK, documents)
}

// UploadDocument handles POST /api/upload. The file is written first; the
// document row is only inserted after a durable write. The two steps are
// not transactional: if the insert fails the file stays behind as an
// orphan and the request reports a server error.
func UploadDocument(c echo.Context) error {
	log := logger.FromContext(c)

	stored, ok, err := saveUploadedFile(c, log)
	if !ok {
		return err
	}

	document := model.Document{
		Name:     stored.OriginalName,
		FilePath: stored.Path,
	}
	start := time.Now()
	result := database.GetDB().Create(&document)
	prometheus.TrackDBOperation("insert")(start)
	if result.Error != nil {
		// The file was already written; it is left in place.
		prometheus.RecordUpload("failed")
		log.Error("Failed to save document record",
			zap.String("file_path", stored.Path),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to save PDF file path.",
		})
	}

	prometheus.RecordUpload("accepted")
	log.Info("PDF uploaded successfully",
		zap.Uint("document_id", document.ID),
		zap.String("stored_name", stored.StoredName),
		zap.String("original_name", stored.OriginalName))
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "PDF uploaded successfully!",
		"data":    document,
	})
}

// UploadLeadDocument handles POST /api/leads/:id/documents, attaching the
// stored document to the lead.
func UploadLeadDocument(c echo.Context) error {
	log := logger.FromContext(c)

	id, ok := parseID(c)
	if !ok {
		log.Warn("Invalid lead id for document upload",
			zap.String("lead_id", c.Param("id")))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Lead not found",
		})
	}

	var lead model.Lead
	start := time.Now()
	result := database.GetDB().First(&lead, id)
	prometheus.TrackDBOperation("select")(start)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Warn("Lead not found for document upload", zap.Uint("lead_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Lead not found",
			})
		}
		log.Error("Failed to fetch lead for document upload",
			zap.Uint("lead_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "An error occurred while fetching the lead",
		})
	}

	stored, ok, err := saveUploadedFile(c, log)
	if !ok {
		return err
	}

	document := model.Document{
		Name:     stored.OriginalName,
		FilePath: stored.Path,
		LeadID:   &lead.ID,
	}
	start = time.Now()
	result = database.GetDB().Create(&document)
	prometheus.TrackDBOperation("insert")(start)
	if result.Error != nil {
		prometheus.RecordUpload("failed")
		log.Error("Failed to save document record",
			zap.Uint("lead_id", lead.ID),
			zap.String("file_path", stored.Path),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to save PDF file path.",
		})
	}

	prometheus.RecordUpload("accepted")
	log.Info("Lead document uploaded successfully",
		zap.Uint("lead_id", lead.ID),
		zap.Uint("document_id", document.ID),
		zap.String("stored_name", stored.StoredName))
	return c.JSON(http.StatusCreated, document.LeadView())
}

// saveUploadedFile runs the file phase of an upload: exactly one file under
// the "pdf" field, declared type application/pdf, durable write. When ok is
// false the error response has already been written and no document row may
// be created.
func saveUploadedFile(c echo.Context, log *zap.Logger) (*upload.StoredFile, bool, error) {
	fileHeader, err := c.FormFile(upload.FieldName)
	if err != nil {
		prometheus.RecordUpload("rejected")
		log.Warn("No file present in upload request", zap.Error(err))
		return nil, false, c.JSON(http.StatusBadRequest, echo.Map{
			"error": "No PDF file uploaded!",
		})
	}

	stored, err := upload.Default().Save(fileHeader)
	if err != nil {
		if errors.Is(err, upload.ErrNotPDF) {
			prometheus.RecordUpload("rejected")
			log.Warn("Upload rejected, declared type is not PDF",
				zap.String("file_name", fileHeader.Filename),
				zap.String("content_type", fileHeader.Header.Get("Content-Type")))
			return nil, false, c.JSON(http.StatusBadRequest, echo.Map{
				"error": "Only PDF files are allowed!",
			})
		}
		prometheus.RecordUpload("failed")
		log.Error("Failed to store uploaded file",
			zap.String("file_name", fileHeader.Filename),
			zap.Error(err))
		return nil, false, c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to store the uploaded file.",
		})
	}

	return stored, true, nil
}
