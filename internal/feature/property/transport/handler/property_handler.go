// Package handler provides the HTTP handlers of the property feature.
package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"rentease_backend/internal/api"
	"rentease_backend/internal/feature/property/domain/entity"
	"rentease_backend/internal/feature/property/transport/http/dto"
	"rentease_backend/internal/feature/property/usecase"
	jwtmw "rentease_backend/internal/platform/jwt"
)

const (
	imagesField         = "images"
	existingImagesField = "existingImages"
)

// PropertyUsecase defines the listing operations the handler needs.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type PropertyUsecase interface {
	Create(ctx context.Context, ownerID string, sub usecase.Submission, uploads []usecase.Image) (*entity.Property, error)
	List(ctx context.Context) ([]entity.Property, error)
	ListByOwner(ctx context.Context, ownerID string) ([]entity.Property, error)
	Get(ctx context.Context, id string) (*entity.Property, error)
	Update(ctx context.Context, ownerID, id string, sub usecase.Submission, existing []string, uploads []usecase.Image) (*entity.Property, error)
	Delete(ctx context.Context, ownerID, id string) error
	DraftDescription(ctx context.Context, sub usecase.Submission) (string, error)
}

// PropertyHandler serves the /api/properties endpoints.
type PropertyHandler struct {
	properties PropertyUsecase
}

// NewPropertyHandler creates a PropertyHandler.
func NewPropertyHandler(properties PropertyUsecase) *PropertyHandler {
	return &PropertyHandler{properties: properties}
}

// List handles GET /api/properties.
func (h *PropertyHandler) List(c *gin.Context) {
	props, err := h.properties.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, "")
		return
	}
	c.JSON(http.StatusOK, dto.FromEntities(props))
}

// MyProperties handles GET /api/properties/my-properties.
func (h *PropertyHandler) MyProperties(c *gin.Context) {
	ownerID, ok := requireUser(c)
	if !ok {
		return
	}
	props, err := h.properties.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	c.JSON(http.StatusOK, dto.FromEntities(props))
}

// Get handles GET /api/properties/:id.
func (h *PropertyHandler) Get(c *gin.Context) {
	p, err := h.properties.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "Property not found")
		return
	}
	c.JSON(http.StatusOK, dto.ItemResponse{Property: dto.FromEntity(p)})
}

// Create handles POST /api/properties/add-property.
func (h *PropertyHandler) Create(c *gin.Context) {
	ownerID, ok := requireUser(c)
	if !ok {
		return
	}
	sub, uploads, err := readSubmission(c)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	p, err := h.properties.Create(c.Request.Context(), ownerID, sub, uploads)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	slog.Info("property created", "property_id", p.ID, "user_id", ownerID, "images", len(p.Images))
	c.JSON(http.StatusCreated, dto.MutationResponse{Message: "Property added successfully", Property: dto.FromEntity(p)})
}

// Update handles PUT /api/properties/:id.
func (h *PropertyHandler) Update(c *gin.Context) {
	ownerID, ok := requireUser(c)
	if !ok {
		return
	}
	sub, uploads, err := readSubmission(c)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	existing := usecase.ImageListFrom(sub.Fields[existingImagesField])
	p, err := h.properties.Update(c.Request.Context(), ownerID, c.Param("id"), sub, existing, uploads)
	if err != nil {
		h.fail(c, err, "Property not found or not owned by user")
		return
	}
	c.JSON(http.StatusOK, dto.MutationResponse{Message: "Property updated successfully", Property: dto.FromEntity(p)})
}

// Delete handles DELETE /api/properties/:id.
func (h *PropertyHandler) Delete(c *gin.Context) {
	ownerID, ok := requireUser(c)
	if !ok {
		return
	}
	if err := h.properties.Delete(c.Request.Context(), ownerID, c.Param("id")); err != nil {
		h.fail(c, err, "Property not found or not owned by user")
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Property deleted successfully"})
}

// Describe handles POST /api/properties/describe.
func (h *PropertyHandler) Describe(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}
	sub, _, err := readSubmission(c)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	text, err := h.properties.DraftDescription(c.Request.Context(), sub)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	c.JSON(http.StatusOK, api.DescriptionResponse{Description: text})
}

// fail translates usecase errors into status codes.
func (h *PropertyHandler) fail(c *gin.Context, err error, notFound string) {
	switch {
	case errors.Is(err, usecase.ErrMissingRequiredFields),
		errors.Is(err, usecase.ErrMissingDescribeFields),
		errors.Is(err, usecase.ErrPriceTooLarge):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
	case errors.Is(err, usecase.ErrTooManyImages):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: fmt.Sprintf("You can upload at most %d images", usecase.MaxImages)})
	case errors.Is(err, usecase.ErrImageRejected):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "One of the images was rejected", Error: err.Error()})
	case errors.Is(err, errBadRequest):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "Invalid request", Error: err.Error()})
	case errors.Is(err, usecase.ErrPropertyNotFound):
		if notFound == "" {
			notFound = "Property not found"
		}
		c.JSON(http.StatusNotFound, api.ErrorResponse{Message: notFound})
	case errors.Is(err, usecase.ErrDescriberUnavailable):
		c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Message: "Description drafts are not available"})
	default:
		slog.Error("property request failed", "error", err, "method", c.Request.Method, "path", c.FullPath(), "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ServerError(err))
	}
}

// requireUser reads the caller set by the JWT middleware.
func requireUser(c *gin.Context) (string, bool) {
	userID := c.GetString(jwtmw.ContextUserID)
	if userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Unauthorized: Invalid token"})
		return "", false
	}
	return userID, true
}

var errBadRequest = errors.New("malformed request body")

// readSubmission accepts multipart, urlencoded or JSON bodies.
func readSubmission(c *gin.Context) (usecase.Submission, []usecase.Image, error) {
	ct := c.ContentType()
	switch {
	case ct == gin.MIMEMultipartPOSTForm:
		form, err := c.MultipartForm()
		if err != nil {
			return usecase.Submission{}, nil, fmt.Errorf("%w: %v", errBadRequest, err)
		}
		files := form.File[imagesField]
		if len(files) > usecase.MaxImages {
			return usecase.Submission{}, nil, usecase.ErrTooManyImages
		}
		uploads, err := readFiles(files)
		if err != nil {
			return usecase.Submission{}, nil, err
		}
		return usecase.Submission{Fields: form.Value}, uploads, nil
	case ct == gin.MIMEJSON:
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			return usecase.Submission{}, nil, fmt.Errorf("%w: %v", errBadRequest, err)
		}
		return usecase.Submission{Fields: dto.FieldsFromJSON(body)}, nil, nil
	default:
		if err := c.Request.ParseForm(); err != nil {
			return usecase.Submission{}, nil, fmt.Errorf("%w: %v", errBadRequest, err)
		}
		return usecase.Submission{Fields: c.Request.PostForm}, nil, nil
	}
}

func readFiles(files []*multipart.FileHeader) ([]usecase.Image, error) {
	out := make([]usecase.Image, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", fh.Filename, err)
		}
		out = append(out, usecase.Image{
			Filename:    fh.Filename,
			ContentType: strings.TrimSpace(fh.Header.Get("Content-Type")),
			Data:        data,
		})
	}
	return out, nil
}
