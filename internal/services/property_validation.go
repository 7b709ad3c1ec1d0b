package services

import (
	"fmt"
	"mime/multipart"
	"net/url"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/ianjohndal5/Rental/internal/config"
	"github.com/ianjohndal5/Rental/internal/models"
)

// Validation rules for property submissions. Single create enforces the full
// rule set (formats, enums, file checks); bulk create deliberately checks
// only the reduced required set per item. The asymmetry mirrors the observed
// behavior of the platform and is kept on purpose (see DESIGN.md).

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

var (
	imageExtensions    = []string{".jpeg", ".jpg", ".png"}
	documentExtensions = []string{".pdf", ".doc", ".docx"}
)

// ValidateCreateForm checks a multipart single-create submission and returns
// either the normalized typed input or the complete field→reason map. No side
// effect has occurred when it reports failure.
func ValidateCreateForm(values url.Values, image, rapaDocument *multipart.FileHeader, cfg *config.Config) (*models.PropertyInput, models.ValidationErrors) {
	errs := models.ValidationErrors{}
	input := &models.PropertyInput{}

	input.Title = requiredString(values, "title", 255, errs)
	input.Description = requiredString(values, "description", 0, errs)
	input.Type = requiredString(values, "type", 255, errs)
	input.Location = requiredString(values, "location", 255, errs)
	input.Price = requiredFloat(values, "price", errs)
	input.Bedrooms = requiredInt(values, "bedrooms", errs)
	input.Bathrooms = requiredInt(values, "bathrooms", errs)

	input.PriceType = optionalEnum(values, "price_type", models.PriceTypes, errs)
	input.FloorAreaUnit = optionalEnum(values, "floor_area_unit", models.FloorAreaUnits, errs)
	input.Furnishing = optionalEnum(values, "furnishing", models.Furnishings, errs)

	input.Garage = optionalInt(values, "garage", errs)
	input.Area = optionalInt(values, "area", errs)
	input.LotArea = optionalInt(values, "lot_area", errs)

	if raw := values.Get("amenities"); raw != "" {
		amenities, err := models.ParseAmenities(raw)
		if err != nil {
			errs.Add("amenities", "The amenities field must be a valid JSON array of strings.")
		} else {
			input.Amenities = amenities
		}
	}

	input.VideoURL = optionalString(values, "video_url", 500, errs)
	if input.VideoURL != "" && !isValidURL(input.VideoURL) {
		errs.Add("video_url", "The video_url field must be a valid URL.")
	}

	input.Latitude = optionalString(values, "latitude", 50, errs)
	input.Longitude = optionalString(values, "longitude", 50, errs)
	input.ZoomLevel = optionalString(values, "zoom_level", 10, errs)

	input.Country = optionalString(values, "country", 100, errs)
	input.StateProvince = optionalString(values, "state_province", 100, errs)
	input.City = optionalString(values, "city", 100, errs)
	input.StreetAddress = values.Get("street_address")

	input.OwnerFirstname = optionalString(values, "owner_firstname", 100, errs)
	input.OwnerLastname = optionalString(values, "owner_lastname", 100, errs)
	input.OwnerPhone = optionalString(values, "owner_phone", 50, errs)
	input.OwnerEmail = optionalString(values, "owner_email", 255, errs)
	if input.OwnerEmail != "" && !emailPattern.MatchString(input.OwnerEmail) {
		errs.Add("owner_email", "The owner_email field must be a valid email address.")
	}
	input.OwnerCountry = optionalString(values, "owner_country", 100, errs)
	input.OwnerState = optionalString(values, "owner_state", 100, errs)
	input.OwnerCity = optionalString(values, "owner_city", 100, errs)
	input.OwnerStreetAddress = values.Get("owner_street_address")

	validateFile(image, "image", imageExtensions, cfg.ImageMaxSizeMB, errs)
	validateFile(rapaDocument, "rapa_document", documentExtensions, cfg.DocumentMaxSizeMB, errs)

	if errs.Any() {
		return nil, errs
	}
	return input, nil
}

// ValidateBulk checks a bulk-create request: the batch bounds plus the
// reduced required set on every element. Field keys for element violations
// are "properties.<index>.<field>".
func ValidateBulk(req *models.BulkCreateRequest, maxBatch int) models.ValidationErrors {
	errs := models.ValidationErrors{}

	if len(req.Properties) == 0 {
		errs.Add("properties", "The properties field is required and must contain at least 1 item.")
		return errs
	}
	if len(req.Properties) > maxBatch {
		errs.Add("properties", fmt.Sprintf("The properties field must not contain more than %d items.", maxBatch))
		return errs
	}

	for i := range req.Properties {
		item := &req.Properties[i]
		key := func(field string) string { return fmt.Sprintf("properties.%d.%s", i, field) }

		if strings.TrimSpace(item.Title) == "" {
			errs.Add(key("title"), "The title field is required.")
		} else if len(item.Title) > 255 {
			errs.Add(key("title"), "The title field must not exceed 255 characters.")
		}
		if strings.TrimSpace(item.Description) == "" {
			errs.Add(key("description"), "The description field is required.")
		}
		if strings.TrimSpace(item.Type) == "" {
			errs.Add(key("type"), "The type field is required.")
		} else if len(item.Type) > 255 {
			errs.Add(key("type"), "The type field must not exceed 255 characters.")
		}
		if strings.TrimSpace(item.Location) == "" {
			errs.Add(key("location"), "The location field is required.")
		} else if len(item.Location) > 255 {
			errs.Add(key("location"), "The location field must not exceed 255 characters.")
		}
		if item.Price == nil {
			errs.Add(key("price"), "The price field is required.")
		} else if *item.Price < 0 {
			errs.Add(key("price"), "The price field must be at least 0.")
		}
		if item.Bedrooms == nil {
			errs.Add(key("bedrooms"), "The bedrooms field is required.")
		} else if *item.Bedrooms < 0 {
			errs.Add(key("bedrooms"), "The bedrooms field must be at least 0.")
		}
		if item.Bathrooms == nil {
			errs.Add(key("bathrooms"), "The bathrooms field is required.")
		} else if *item.Bathrooms < 0 {
			errs.Add(key("bathrooms"), "The bathrooms field must be at least 0.")
		}
	}

	if errs.Any() {
		return errs
	}
	return nil
}

// --- field helpers ---

func requiredString(values url.Values, field string, maxLen int, errs models.ValidationErrors) string {
	s := strings.TrimSpace(values.Get(field))
	if s == "" {
		errs.Add(field, fmt.Sprintf("The %s field is required.", field))
		return ""
	}
	if maxLen > 0 && len(s) > maxLen {
		errs.Add(field, fmt.Sprintf("The %s field must not exceed %d characters.", field, maxLen))
	}
	return s
}

func optionalString(values url.Values, field string, maxLen int, errs models.ValidationErrors) string {
	s := strings.TrimSpace(values.Get(field))
	if s != "" && maxLen > 0 && len(s) > maxLen {
		errs.Add(field, fmt.Sprintf("The %s field must not exceed %d characters.", field, maxLen))
	}
	return s
}

func requiredFloat(values url.Values, field string, errs models.ValidationErrors) *float64 {
	raw := strings.TrimSpace(values.Get(field))
	if raw == "" {
		errs.Add(field, fmt.Sprintf("The %s field is required.", field))
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		errs.Add(field, fmt.Sprintf("The %s field must be a number.", field))
		return nil
	}
	if f < 0 {
		errs.Add(field, fmt.Sprintf("The %s field must be at least 0.", field))
		return nil
	}
	return &f
}

func requiredInt(values url.Values, field string, errs models.ValidationErrors) *int {
	raw := strings.TrimSpace(values.Get(field))
	if raw == "" {
		errs.Add(field, fmt.Sprintf("The %s field is required.", field))
		return nil
	}
	return parseNonNegativeInt(raw, field, errs)
}

func optionalInt(values url.Values, field string, errs models.ValidationErrors) *int {
	raw := strings.TrimSpace(values.Get(field))
	if raw == "" {
		return nil
	}
	return parseNonNegativeInt(raw, field, errs)
}

func parseNonNegativeInt(raw, field string, errs models.ValidationErrors) *int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		errs.Add(field, fmt.Sprintf("The %s field must be an integer.", field))
		return nil
	}
	if n < 0 {
		errs.Add(field, fmt.Sprintf("The %s field must be at least 0.", field))
		return nil
	}
	return &n
}

func optionalEnum(values url.Values, field string, allowed []string, errs models.ValidationErrors) string {
	s := strings.TrimSpace(values.Get(field))
	if s == "" {
		return ""
	}
	for _, v := range allowed {
		if s == v {
			return s
		}
	}
	errs.Add(field, fmt.Sprintf("The %s field must be one of: %s.", field, strings.Join(allowed, ", ")))
	return ""
}

func validateFile(fh *multipart.FileHeader, field string, allowedExts []string, maxSizeMB int, errs models.ValidationErrors) {
	if fh == nil {
		return
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	allowed := false
	for _, e := range allowedExts {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		exts := strings.ReplaceAll(strings.Join(allowedExts, ", "), ".", "")
		errs.Add(field, fmt.Sprintf("The %s field must be a file of type: %s.", field, exts))
	}
	if fh.Size > int64(maxSizeMB)*1024*1024 {
		errs.Add(field, fmt.Sprintf("The %s field must not be larger than %dMB.", field, maxSizeMB))
	}
}

func isValidURL(s string) bool {
	u, err := url.ParseRequestURI(s)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}
