package models

import (
	"time"
)

// Enumerated vocabularies for property fields. Values outside these sets are
// rejected by validation on single create.
var (
	PriceTypes     = []string{"Monthly", "Weekly", "Daily", "Yearly"}
	FloorAreaUnits = []string{"Square Meters", "Square Feet"}
	Furnishings    = []string{"Fully Furnished", "Semi Furnished", "Unfurnished"}
)

// Defaults applied to optional fields not present in a submission.
const (
	DefaultPriceType     = "Monthly"
	DefaultFloorAreaUnit = "Square Meters"
	DefaultCountry       = "Philippines"
)

// Property is a rental listing owned by an agent.
type Property struct {
	ID          int64   `bson:"_id" json:"id"`
	Title       string  `bson:"title" json:"title"`
	Description string  `bson:"description" json:"description"`
	Type        string  `bson:"type" json:"type"`
	Location    string  `bson:"location" json:"location"`
	Price       float64 `bson:"price" json:"price"`
	PriceType   string  `bson:"price_type" json:"price_type"`

	Bedrooms      int         `bson:"bedrooms" json:"bedrooms"`
	Bathrooms     int         `bson:"bathrooms" json:"bathrooms"`
	Garage        int         `bson:"garage" json:"garage"`
	Area          *int        `bson:"area,omitempty" json:"area,omitempty"`
	LotArea       *int        `bson:"lot_area,omitempty" json:"lot_area,omitempty"`
	FloorAreaUnit string      `bson:"floor_area_unit" json:"floor_area_unit"`
	Furnishing    string      `bson:"furnishing,omitempty" json:"furnishing,omitempty"`
	Amenities     AmenityList `bson:"amenities,omitempty" json:"amenities,omitempty"`

	// Media paths are keys into the media store, written before the row
	// referencing them is committed.
	Image            string `bson:"image,omitempty" json:"image,omitempty"`
	RapaDocumentPath string `bson:"rapa_document_path,omitempty" json:"rapa_document_path,omitempty"`
	VideoURL         string `bson:"video_url,omitempty" json:"video_url,omitempty"`

	Latitude  string `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude string `bson:"longitude,omitempty" json:"longitude,omitempty"`
	ZoomLevel string `bson:"zoom_level,omitempty" json:"zoom_level,omitempty"`

	Country       string `bson:"country" json:"country"`
	StateProvince string `bson:"state_province,omitempty" json:"state_province,omitempty"`
	City          string `bson:"city,omitempty" json:"city,omitempty"`
	StreetAddress string `bson:"street_address,omitempty" json:"street_address,omitempty"`

	// Owner-of-record contact details, distinct from the authenticated agent.
	OwnerFirstname     string `bson:"owner_firstname,omitempty" json:"owner_firstname,omitempty"`
	OwnerLastname      string `bson:"owner_lastname,omitempty" json:"owner_lastname,omitempty"`
	OwnerPhone         string `bson:"owner_phone,omitempty" json:"owner_phone,omitempty"`
	OwnerEmail         string `bson:"owner_email,omitempty" json:"owner_email,omitempty"`
	OwnerCountry       string `bson:"owner_country,omitempty" json:"owner_country,omitempty"`
	OwnerState         string `bson:"owner_state,omitempty" json:"owner_state,omitempty"`
	OwnerCity          string `bson:"owner_city,omitempty" json:"owner_city,omitempty"`
	OwnerStreetAddress string `bson:"owner_street_address,omitempty" json:"owner_street_address,omitempty"`

	// AgentID is always the authenticated caller's identity, never taken
	// from the request payload.
	AgentID     int64     `bson:"agent_id" json:"agent_id"`
	IsFeatured  bool      `bson:"is_featured" json:"is_featured"`
	PublishedAt time.Time `bson:"published_at" json:"published_at"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// PropertyInput is a validated, normalized property submission. Pointer
// fields distinguish "absent" from zero so defaulting can run after
// validation, field by field.
type PropertyInput struct {
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	Type          string      `json:"type"`
	Location      string      `json:"location"`
	Price         *float64    `json:"price"`
	PriceType     string      `json:"price_type"`
	Bedrooms      *int        `json:"bedrooms"`
	Bathrooms     *int        `json:"bathrooms"`
	Garage        *int        `json:"garage"`
	Area          *int        `json:"area"`
	LotArea       *int        `json:"lot_area"`
	FloorAreaUnit string      `json:"floor_area_unit"`
	Furnishing    string      `json:"furnishing"`
	Amenities     AmenityList `json:"amenities"`
	VideoURL      string      `json:"video_url"`

	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
	ZoomLevel string `json:"zoom_level"`

	Country       string `json:"country"`
	StateProvince string `json:"state_province"`
	City          string `json:"city"`
	StreetAddress string `json:"street_address"`

	OwnerFirstname     string `json:"owner_firstname"`
	OwnerLastname      string `json:"owner_lastname"`
	OwnerPhone         string `json:"owner_phone"`
	OwnerEmail         string `json:"owner_email"`
	OwnerCountry       string `json:"owner_country"`
	OwnerState         string `json:"owner_state"`
	OwnerCity          string `json:"owner_city"`
	OwnerStreetAddress string `json:"owner_street_address"`
}

// BulkCreateRequest is the JSON body of POST /api/properties/bulk.
type BulkCreateRequest struct {
	Properties []PropertyInput `json:"properties"`
}

// PaginatedProperties is the listing envelope: the page of records plus the
// counters the client needs to compute total pages.
type PaginatedProperties struct {
	Data        []Property `json:"data"`
	CurrentPage int        `json:"current_page"`
	PerPage     int        `json:"per_page"`
	Total       int64      `json:"total"`
}
