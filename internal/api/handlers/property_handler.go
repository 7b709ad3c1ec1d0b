package handlers

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ianjohndal5/Rental/internal/api/middleware"
	"github.com/ianjohndal5/Rental/internal/config"
	"github.com/ianjohndal5/Rental/internal/models"
	"github.com/ianjohndal5/Rental/internal/services"
	"github.com/ianjohndal5/Rental/internal/storage"
	"github.com/ianjohndal5/Rental/internal/tasks"
)

// PropertyHandler handles the property listing and creation endpoints.
type PropertyHandler struct {
	propertyService services.IPropertyService
	cfg             *config.Config
	taskClient      *asynq.Client // nil disables background task enqueuing
}

// NewPropertyHandler creates a new PropertyHandler.
func NewPropertyHandler(propertyService services.IPropertyService, cfg *config.Config, taskClient *asynq.Client) *PropertyHandler {
	return &PropertyHandler{
		propertyService: propertyService,
		cfg:             cfg,
		taskClient:      taskClient,
	}
}

// ListProperties handles GET /api/properties
func (h *PropertyHandler) ListProperties(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	filter := services.PropertyFilter{
		Type:     strings.TrimSpace(c.Query("type")),
		Location: strings.TrimSpace(c.Query("location")),
		Search:   strings.TrimSpace(c.Query("search")),
	}

	result, err := h.propertyService.List(c.Request.Context(), filter, page)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to retrieve properties",
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetFeatured handles GET /api/properties/featured. Success responses carry
// the bare array; only error paths use the envelope.
func (h *PropertyHandler) GetFeatured(c *gin.Context) {
	results, err := h.propertyService.Featured(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to retrieve featured properties",
		})
		return
	}

	if results == nil {
		results = []models.Property{}
	}
	c.JSON(http.StatusOK, results)
}

// GetPropertyByID handles GET /api/properties/:id
func (h *PropertyHandler) GetPropertyByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Property not found",
		})
		return
	}

	property, err := h.propertyService.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Property not found",
			})
		} else {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Failed to retrieve property",
			})
		}
		return
	}

	c.JSON(http.StatusOK, property)
}

// CreateProperty handles POST /api/properties (multipart form with optional
// image and rapa_document files). Validation runs before any write; a valid
// submission stores media first and the row last.
func (h *PropertyHandler) CreateProperty(c *gin.Context) {
	agentID := c.GetInt64(middleware.ContextKeyAgentID)

	form, err := c.MultipartForm()
	if err != nil {
		if isBodyTooLarge(err) {
			respondTooLarge(c)
			return
		}
		// Fall back to urlencoded form bodies
		if parseErr := c.Request.ParseForm(); parseErr != nil {
			if isBodyTooLarge(parseErr) {
				respondTooLarge(c)
				return
			}
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"success": false,
				"message": "Validation failed",
				"errors":  gin.H{"form": []string{"The request body could not be parsed."}},
			})
			return
		}
	}

	values := url.Values{}
	if form != nil {
		for key, vals := range form.Value {
			values[key] = vals
		}
	} else {
		values = c.Request.PostForm
	}

	image, _ := c.FormFile("image")
	rapaDocument, _ := c.FormFile("rapa_document")

	input, validationErrs := services.ValidateCreateForm(values, image, rapaDocument, h.cfg)
	if validationErrs != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"message": "Validation failed",
			"errors":  validationErrs,
		})
		return
	}

	uploads := &services.PropertyUploads{}
	if image != nil {
		file, openErr := image.Open()
		if openErr != nil {
			h.respondCreateError(c, openErr, "property")
			return
		}
		defer file.Close()
		uploads.Image = &storage.FileUpload{
			Filename:    image.Filename,
			ContentType: image.Header.Get("Content-Type"),
			Size:        image.Size,
			Body:        file,
		}
	}
	if rapaDocument != nil {
		file, openErr := rapaDocument.Open()
		if openErr != nil {
			h.respondCreateError(c, openErr, "property")
			return
		}
		defer file.Close()
		uploads.RapaDocument = &storage.FileUpload{
			Filename:    rapaDocument.Filename,
			ContentType: rapaDocument.Header.Get("Content-Type"),
			Size:        rapaDocument.Size,
			Body:        file,
		}
	}

	property, err := h.propertyService.Create(c.Request.Context(), input, uploads, agentID)
	if err != nil {
		h.respondCreateError(c, err, "property")
		return
	}

	h.enqueueThumbnail(property)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Property created successfully",
		"data":    property,
	})
}

// CreatePropertiesBulk handles POST /api/properties/bulk (JSON body). The
// batch is validated in full before any write, and persisted atomically.
func (h *PropertyHandler) CreatePropertiesBulk(c *gin.Context) {
	agentID := c.GetInt64(middleware.ContextKeyAgentID)

	var req models.BulkCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if isBodyTooLarge(err) {
			respondTooLarge(c)
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"message": "Validation failed",
			"errors":  gin.H{"properties": []string{"The properties field is required and must be a valid JSON array."}},
		})
		return
	}

	if validationErrs := services.ValidateBulk(&req, h.cfg.BulkCreateMax); validationErrs != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"message": "Validation failed",
			"errors":  validationErrs,
		})
		return
	}

	created, err := h.propertyService.CreateBulk(c.Request.Context(), req.Properties, agentID)
	if err != nil {
		h.respondCreateError(c, err, "properties")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":       true,
		"message":       strconv.Itoa(len(created)) + " properties created successfully",
		"created_count": len(created),
		"data":          created,
	})
}

// respondCreateError writes the fixed 500 envelope, pluralized for the bulk
// path. Raw error details only leak when debug mode is on.
func (h *PropertyHandler) respondCreateError(c *gin.Context, err error, noun string) {
	_ = c.Error(err)
	detail := "An error occurred while creating the " + noun
	if h.cfg.AppDebug {
		detail = err.Error()
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"message": "Failed to create " + noun,
		"error":   detail,
	})
}

func (h *PropertyHandler) enqueueThumbnail(property *models.Property) {
	if h.taskClient == nil || property.Image == "" {
		return
	}
	task, err := tasks.NewThumbnailTask(property.Image, property.ID)
	if err != nil {
		log.Printf("ERROR building thumbnail task for property %d: %v", property.ID, err)
		return
	}
	if _, err := h.taskClient.Enqueue(task, asynq.Queue("images")); err != nil {
		log.Printf("ERROR enqueuing thumbnail task for property %d: %v", property.ID, err)
	}
}

func isBodyTooLarge(err error) bool {
	var maxBytesErr *http.MaxBytesError
	return errors.As(err, &maxBytesErr) || strings.Contains(err.Error(), "request body too large")
}

func respondTooLarge(c *gin.Context) {
	c.JSON(http.StatusRequestEntityTooLarge, gin.H{
		"success": false,
		"message": "The uploaded file is too large. Maximum file size is 20MB.",
		"error":   "File size exceeds the maximum allowed limit. Please reduce the file size and try again.",
	})
}
