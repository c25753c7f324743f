package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pranavvermapv/real-estate-crm/internal/model"
	"github.com/pranavvermapv/real-estate-crm/internal/upload"
	"github.com/pranavvermapv/real-estate-crm/pkg/database"
	"github.com/pranavvermapv/real-estate-crm/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Database-backed tests. They run against a real postgres, typically
// local:
//
//	TEST_DATABASE_DSN="host=localhost user=postgres password=postgres dbname=crm_test sslmode=disable" go test ./...
func setupTestDB(t *testing.T) {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set; skipping database-backed tests")
	}
	require.NoError(t, database.InitForTesting(dsn))

	// Clear tables before each test
	err := database.GetDB().Exec("TRUNCATE TABLE leads, properties, documents RESTART IDENTITY").Error
	require.NoError(t, err)
}

func idContext(t *testing.T, method, path string, body interface{}, id string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	c, rec := newJSONContext(t, method, path, body)
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c, rec
}

func TestCreateLeadThenList(t *testing.T) {
	setupTestDB(t)

	c, rec := newJSONContext(t, http.MethodPost, "/api/leads",
		map[string]string{"name": "Ada Lovelace", "phone_number": "555-0100"})
	require.NoError(t, CreateLead(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created model.Lead
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Ada Lovelace", created.Name)
	assert.Equal(t, "555-0100", created.PhoneNumber)

	c, rec = newJSONContext(t, http.MethodGet, "/api/leads", nil)
	require.NoError(t, ListLeads(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var leads []model.Lead
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &leads))
	require.Len(t, leads, 1)
	assert.Equal(t, created, leads[0])
}

func TestUpdateLeadNotFound(t *testing.T) {
	setupTestDB(t)

	c, rec := idContext(t, http.MethodPut, "/api/leads/:id",
		map[string]string{"name": "Nobody", "phone_number": "555-0000"}, "9999")
	require.NoError(t, UpdateLead(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Lead not found", errorMessage(t, rec))

	// The store must be unchanged
	var count int64
	database.GetDB().Model(&model.Lead{}).Count(&count)
	assert.Zero(t, count)
}

func TestUpdateLeadOverwritesAllFields(t *testing.T) {
	setupTestDB(t)

	lead := model.Lead{Name: "Ada Lovelace", PhoneNumber: "555-0100"}
	require.NoError(t, database.GetDB().Create(&lead).Error)

	c, rec := idContext(t, http.MethodPut, "/api/leads/:id",
		map[string]string{"name": "Grace Hopper", "phone_number": "555-0199"},
		strconv.Itoa(int(lead.ID)))
	require.NoError(t, UpdateLead(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var updated model.Lead
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, lead.ID, updated.ID)
	assert.Equal(t, "Grace Hopper", updated.Name)
	assert.Equal(t, "555-0199", updated.PhoneNumber)
}

func TestDeleteLeadTwice(t *testing.T) {
	setupTestDB(t)

	lead := model.Lead{Name: "Ada Lovelace", PhoneNumber: "555-0100"}
	require.NoError(t, database.GetDB().Create(&lead).Error)
	id := strconv.Itoa(int(lead.ID))

	c, rec := idContext(t, http.MethodDelete, "/api/leads/:id", nil, id)
	require.NoError(t, DeleteLead(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.Bytes())

	c, rec = idContext(t, http.MethodDelete, "/api/leads/:id", nil, id)
	require.NoError(t, DeleteLead(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// Store calls feed the db operation duration histogram.
func TestListLeadsObservesQueryDuration(t *testing.T) {
	setupTestDB(t)

	c, rec := newJSONContext(t, http.MethodGet, "/api/leads", nil)
	require.NoError(t, ListLeads(c))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.GreaterOrEqual(t, testutil.CollectAndCount(&prometheus.DbOperationDuration), 1)
}

// A where-clause-shaped id must never widen a delete to other rows.
func TestDeleteLeadClauseShapedIDLeavesRowsIntact(t *testing.T) {
	setupTestDB(t)

	for _, name := range []string{"Ada Lovelace", "Grace Hopper"} {
		lead := model.Lead{Name: name, PhoneNumber: "555-0100"}
		require.NoError(t, database.GetDB().Create(&lead).Error)
	}

	c, rec := idContext(t, http.MethodDelete, "/api/leads/:id", nil, "1 OR 1=1")
	require.NoError(t, DeleteLead(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Lead not found", errorMessage(t, rec))

	var count int64
	database.GetDB().Model(&model.Lead{}).Count(&count)
	assert.EqualValues(t, 2, count)
}

// A failing store lookup is a server error, not a missing row.
func TestUpdateLeadStoreFailureIsServerError(t *testing.T) {
	setupTestDB(t)

	lead := model.Lead{Name: "Ada Lovelace", PhoneNumber: "555-0100"}
	require.NoError(t, database.GetDB().Create(&lead).Error)

	sqlDB, err := database.GetDB().DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	c, rec := idContext(t, http.MethodPut, "/api/leads/:id",
		map[string]string{"name": "Grace Hopper", "phone_number": "555-0199"},
		strconv.Itoa(int(lead.ID)))
	require.NoError(t, UpdateLead(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "An error occurred while updating the lead", errorMessage(t, rec))
}

func TestPropertyLifecycle(t *testing.T) {
	setupTestDB(t)

	body := map[string]string{
		"type":         "Residential",
		"size":         "1200 sqft",
		"location":     "Pune",
		"budget":       "75L",
		"availability": "Available",
	}
	c, rec := newJSONContext(t, http.MethodPost, "/api/properties", body)
	require.NoError(t, CreateProperty(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created model.Property
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)

	body["availability"] = "Sold"
	c, rec = idContext(t, http.MethodPut, "/api/properties/:id", body,
		strconv.Itoa(int(created.ID)))
	require.NoError(t, UpdateProperty(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var updated model.Property
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Sold", updated.Availability)

	c, rec = idContext(t, http.MethodDelete, "/api/properties/:id", nil,
		strconv.Itoa(int(created.ID)))
	require.NoError(t, DeleteProperty(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

// The API stores whatever strings it is given for type and availability;
// the enum restriction lives in the client forms only.
func TestPropertyAcceptsArbitraryEnumStrings(t *testing.T) {
	setupTestDB(t)

	body := map[string]string{
		"type":         "Castle",
		"size":         "huge",
		"location":     "Loire",
		"budget":       "priceless",
		"availability": "Haunted",
	}
	c, rec := newJSONContext(t, http.MethodPost, "/api/properties", body)
	require.NoError(t, CreateProperty(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created model.Property
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Castle", created.Type)
	assert.Equal(t, "Haunted", created.Availability)
}

func TestUploadCreatesDocumentRow(t *testing.T) {
	setupTestDB(t)

	c, rec := newMultipartContext(t, "/api/upload", upload.FieldName,
		"contract.pdf", "application/pdf", []byte("%PDF-1.4 test"))
	require.NoError(t, UploadDocument(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Message string         `json:"message"`
		Data    model.Document `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "PDF uploaded successfully!", resp.Message)
	assert.Equal(t, "contract.pdf", resp.Data.Name)
	assert.NotZero(t, resp.Data.ID)
	assert.Nil(t, resp.Data.LeadID)

	// The record must point at a file that exists
	_, err := os.Stat(resp.Data.FilePath)
	assert.NoError(t, err)
}

func TestUploadSameNameTwiceGetsDistinctPaths(t *testing.T) {
	setupTestDB(t)

	paths := make(map[string]bool)
	for i := 0; i < 2; i++ {
		c, rec := newMultipartContext(t, "/api/upload", upload.FieldName,
			"contract.pdf", "application/pdf", []byte("%PDF-1.4 test"))
		require.NoError(t, UploadDocument(c))
		require.Equal(t, http.StatusCreated, rec.Code)

		var resp struct {
			Data model.Document `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		paths[resp.Data.FilePath] = true
	}
	assert.Len(t, paths, 2, "stored paths must be distinct")

	var count int64
	database.GetDB().Model(&model.Document{}).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestUploadLeadDocument(t *testing.T) {
	setupTestDB(t)

	lead := model.Lead{Name: "Ada Lovelace", PhoneNumber: "555-0100"}
	require.NoError(t, database.GetDB().Create(&lead).Error)

	c, rec := newMultipartContext(t, "/api/leads/:id/documents", upload.FieldName,
		"agreement.pdf", "application/pdf", []byte("%PDF-1.4 test"))
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(lead.ID)))
	require.NoError(t, UploadLeadDocument(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var doc model.LeadDocument
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, lead.ID, doc.LeadID)
	assert.Equal(t, "agreement.pdf", doc.FileName)
	assert.NotZero(t, doc.ID)
}

func TestUploadLeadDocumentUnknownLead(t *testing.T) {
	setupTestDB(t)

	c, rec := newMultipartContext(t, "/api/leads/:id/documents", upload.FieldName,
		"agreement.pdf", "application/pdf", []byte("%PDF-1.4 test"))
	c.SetParamNames("id")
	c.SetParamValues("9999")
	require.NoError(t, UploadLeadDocument(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Lead not found", errorMessage(t, rec))

	var count int64
	database.GetDB().Model(&model.Document{}).Count(&count)
	assert.Zero(t, count)
}
