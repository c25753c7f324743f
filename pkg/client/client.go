// Package client is a typed HTTP client for the CRM REST API, plus the
// view state a frontend keeps between requests.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"time"

	"github.com/pranavvermapv/real-estate-crm/internal/model"
)

// Client talks to the CRM API server
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// APIError is the decoded error body of a non-2xx response
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// LeadRequest is the body for lead creation/update
type LeadRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
}

// PropertyRequest is the body for property creation/update
type PropertyRequest struct {
	Type         string `json:"type"`
	Size         string `json:"size"`
	Location     string `json:"location"`
	Budget       string `json:"budget"`
	Availability string `json:"availability"`
}

// UploadResponse is the envelope returned by POST /api/upload
type UploadResponse struct {
	Message string         `json:"message"`
	Data    model.Document `json:"data"`
}

// New creates a new API client instance
func New(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// ListLeads retrieves all leads
func (c *Client) ListLeads() ([]model.Lead, error) {
	var leads []model.Lead
	if err := c.doJSON(http.MethodGet, "/api/leads", nil, &leads); err != nil {
		return nil, err
	}
	return leads, nil
}

// CreateLead creates a lead and returns the stored row
func (c *Client) CreateLead(req LeadRequest) (*model.Lead, error) {
	var lead model.Lead
	if err := c.doJSON(http.MethodPost, "/api/leads", req, &lead); err != nil {
		return nil, err
	}
	return &lead, nil
}

// UpdateLead overwrites all fields of the lead with the given id
func (c *Client) UpdateLead(id uint, req LeadRequest) (*model.Lead, error) {
	var lead model.Lead
	path := fmt.Sprintf("/api/leads/%d", id)
	if err := c.doJSON(http.MethodPut, path, req, &lead); err != nil {
		return nil, err
	}
	return &lead, nil
}

// DeleteLead removes the lead with the given id
func (c *Client) DeleteLead(id uint) error {
	return c.doJSON(http.MethodDelete, fmt.Sprintf("/api/leads/%d", id), nil, nil)
}

// ListProperties retrieves all properties
func (c *Client) ListProperties() ([]model.Property, error) {
	var properties []model.Property
	if err := c.doJSON(http.MethodGet, "/api/properties", nil, &properties); err != nil {
		return nil, err
	}
	return properties, nil
}

// CreateProperty creates a property and returns the stored row
func (c *Client) CreateProperty(req PropertyRequest) (*model.Property, error) {
	var property model.Property
	if err := c.doJSON(http.MethodPost, "/api/properties", req, &property); err != nil {
		return nil, err
	}
	return &property, nil
}

// UpdateProperty overwrites all fields of the property with the given id
func (c *Client) UpdateProperty(id uint, req PropertyRequest) (*model.Property, error) {
	var property model.Property
	path := fmt.Sprintf("/api/properties/%d", id)
	if err := c.doJSON(http.MethodPut, path, req, &property); err != nil {
		return nil, err
	}
	return &property, nil
}

// DeleteProperty removes the property with the given id
func (c *Client) DeleteProperty(id uint) error {
	return c.doJSON(http.MethodDelete, fmt.Sprintf("/api/properties/%d", id), nil, nil)
}

// ListDocuments retrieves all uploaded documents
func (c *Client) ListDocuments() ([]model.Document, error) {
	var documents []model.Document
	if err := c.doJSON(http.MethodGet, "/api/documents", nil, &documents); err != nil {
		return nil, err
	}
	return documents, nil
}

// Upload submits the file at path as a PDF to POST /api/upload
func (c *Client) Upload(filePath string) (*UploadResponse, error) {
	var resp UploadResponse
	if err := c.doMultipart("/api/upload", filePath, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UploadLeadDocument submits the file at path as a PDF attached to a lead
func (c *Client) UploadLeadDocument(leadID uint, filePath string) (*model.LeadDocument, error) {
	var doc model.LeadDocument
	path := fmt.Sprintf("/api/leads/%d/documents", leadID)
	if err := c.doMultipart(path, filePath, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// doJSON performs a JSON request and decodes the response into out. Error
// bodies are decoded into APIError; internal details never reach here, the
// server only sends its public messages.
func (c *Client) doJSON(method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req, out)
}

// doMultipart posts the file at filePath as the "pdf" form field with a
// declared application/pdf content type.
func (c *Client) doMultipart(path, filePath string, out interface{}) error {
	file, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="pdf"; filename="%s"`, filepath.Base(filePath)))
	header.Set("Content-Type", "application/pdf")
	part, err := writer.CreatePart(header)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, file); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, c.BaseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errorResp struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(body, &errorResp); err != nil || errorResp.Error == "" {
			return &APIError{StatusCode: resp.StatusCode, Message: string(body)}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: errorResp.Error}
	}

	if out == nil || len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}
