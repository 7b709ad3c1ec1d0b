package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ianjohndal5/Rental/internal/config"
	"github.com/ianjohndal5/Rental/internal/db"
	"github.com/ianjohndal5/Rental/internal/models"
	"github.com/ianjohndal5/Rental/internal/storage"
)

// PropertyFilter holds the conjunctive listing predicates. Empty fields
// impose no predicate.
type PropertyFilter struct {
	Type     string // exact match
	Location string // substring match
	Search   string // substring match on title OR description
}

// PropertyUploads carries the optional file parts of a single-create
// submission into the write pipeline. Bulk create never has uploads.
type PropertyUploads struct {
	Image        *storage.FileUpload
	RapaDocument *storage.FileUpload
}

// IPropertyService defines the interface for property query and write
// operations.
type IPropertyService interface {
	List(ctx context.Context, filter PropertyFilter, page int) (*models.PaginatedProperties, error)
	Featured(ctx context.Context) ([]models.Property, error)
	FindByID(ctx context.Context, id int64) (*models.Property, error)
	Create(ctx context.Context, input *models.PropertyInput, uploads *PropertyUploads, agentID int64) (*models.Property, error)
	CreateBulk(ctx context.Context, inputs []models.PropertyInput, agentID int64) ([]models.Property, error)
}

const (
	propertiesCollection = "properties"
	propertiesSequence   = "properties"
	featuredCacheKey     = "properties:featured"
)

// propertyService implements IPropertyService.
type propertyService struct {
	db    *mongo.Database
	cfg   *config.Config
	rdb   *redis.Client // nil disables the featured cache
	media storage.IMediaStorage
}

// NewPropertyService creates a new PropertyService.
func NewPropertyService(database *mongo.Database, cfg *config.Config, rdb *redis.Client, media storage.IMediaStorage) IPropertyService {
	return &propertyService{db: database, cfg: cfg, rdb: rdb, media: media}
}

// List runs the query pipeline: predicate composition, most-recent-first
// sort, and fixed-size pagination. The envelope always carries the full
// matching count so callers can compute total pages.
func (s *propertyService) List(ctx context.Context, filter PropertyFilter, page int) (*models.PaginatedProperties, error) {
	if page < 1 {
		page = 1
	}
	perPage := s.cfg.PageSize

	query := bson.M{}
	if filter.Type != "" {
		query["type"] = filter.Type
	}
	if filter.Location != "" {
		query["location"] = bson.M{"$regex": regexp.QuoteMeta(filter.Location), "$options": "i"}
	}
	if filter.Search != "" {
		pattern := bson.M{"$regex": regexp.QuoteMeta(filter.Search), "$options": "i"}
		query["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
		}
	}

	collection := s.db.Collection(propertiesCollection)

	total, err := collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count matching properties: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "published_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(perPage * (page - 1))).
		SetLimit(int64(perPage))

	cursor, err := collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to execute property listing query: %w", err)
	}
	defer cursor.Close(ctx)

	results := make([]models.Property, 0, perPage)
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode property listing results: %w", err)
	}

	return &models.PaginatedProperties{
		Data:        results,
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
	}, nil
}

// Featured returns up to the configured cap of featured properties,
// most-recent first. Results are served from the Redis cache when fresh;
// cache faults degrade to a direct query.
func (s *propertyService) Featured(ctx context.Context) ([]models.Property, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, featuredCacheKey).Result()
		if err == nil {
			var results []models.Property
			if jsonErr := json.Unmarshal([]byte(cached), &results); jsonErr == nil {
				return results, nil
			}
			// Corrupt cache entry; fall through to the query.
		} else if err != redis.Nil {
			log.Printf("WARN: featured cache read failed: %v", err)
		}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "published_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(s.cfg.FeaturedLimit))

	cursor, err := s.db.Collection(propertiesCollection).Find(ctx, bson.M{"is_featured": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query featured properties: %w", err)
	}
	defer cursor.Close(ctx)

	results := make([]models.Property, 0, s.cfg.FeaturedLimit)
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode featured properties: %w", err)
	}

	if s.rdb != nil {
		if payload, jsonErr := json.Marshal(results); jsonErr == nil {
			if setErr := s.rdb.Set(ctx, featuredCacheKey, payload, s.cfg.FeaturedCacheTTL).Err(); setErr != nil {
				log.Printf("WARN: featured cache write failed: %v", setErr)
			}
		}
	}

	return results, nil
}

// FindByID returns the property with the given numeric identifier, or
// mongo.ErrNoDocuments when no row matches.
func (s *propertyService) FindByID(ctx context.Context, id int64) (*models.Property, error) {
	var property models.Property
	err := s.db.Collection(propertiesCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&property)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, mongo.ErrNoDocuments
		}
		return nil, fmt.Errorf("error finding property %d: %w", id, err)
	}
	return &property, nil
}

// Create runs the single-create write pipeline for an already-validated
// submission: media writes first, then defaulting, then one row insert
// carrying the caller's identity. A database failure after the media writes
// leaves orphaned files behind; the background sweep reclaims them.
func (s *propertyService) Create(ctx context.Context, input *models.PropertyInput, uploads *PropertyUploads, agentID int64) (*models.Property, error) {
	now := time.Now().UTC()
	property := buildProperty(input, agentID, now)

	if uploads != nil && uploads.Image != nil {
		key, err := s.media.SaveImage(ctx, uploads.Image)
		if err != nil {
			return nil, fmt.Errorf("failed to store property image: %w", err)
		}
		property.Image = key
	}
	if uploads != nil && uploads.RapaDocument != nil {
		key, err := s.media.SaveDocument(ctx, uploads.RapaDocument)
		if err != nil {
			return nil, fmt.Errorf("failed to store RAPA document: %w", err)
		}
		property.RapaDocumentPath = key
	}

	err := db.WithTransaction(ctx, s.db.Client(), func(ctx context.Context) error {
		// Allocation stays inside the retried op: a duplicate-key failure
		// must get a fresh ID on the next attempt.
		return db.Try(func() error {
			id, err := db.NextSequence(ctx, s.db, propertiesSequence)
			if err != nil {
				return err
			}
			property.ID = id
			_, insertErr := s.db.Collection(propertiesCollection).InsertOne(ctx, property)
			return insertErr
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert property for agent %d: %w", agentID, err)
	}

	return &property, nil
}

// CreateBulk persists every item of an already-validated batch inside one
// transaction: either all rows commit or none do.
func (s *propertyService) CreateBulk(ctx context.Context, inputs []models.PropertyInput, agentID int64) ([]models.Property, error) {
	now := time.Now().UTC()
	var created []models.Property

	err := db.WithTransaction(ctx, s.db.Client(), func(ctx context.Context) error {
		created = make([]models.Property, 0, len(inputs))
		docs := make([]interface{}, 0, len(inputs))

		for i := range inputs {
			id, err := db.NextSequence(ctx, s.db, propertiesSequence)
			if err != nil {
				return err
			}
			property := buildProperty(&inputs[i], agentID, now)
			property.ID = id
			docs = append(docs, property)
			created = append(created, property)
		}

		_, err := s.db.Collection(propertiesCollection).InsertMany(ctx, docs)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to bulk insert %d properties for agent %d: %w", len(inputs), agentID, err)
	}

	return created, nil
}

// buildProperty turns a validated submission into a persistable record,
// applying the documented defaults for absent optional fields. The owning
// agent and publication time are always set here, never from the payload.
func buildProperty(input *models.PropertyInput, agentID int64, now time.Time) models.Property {
	property := models.Property{
		Title:       input.Title,
		Description: input.Description,
		Type:        input.Type,
		Location:    input.Location,
		PriceType:   input.PriceType,

		FloorAreaUnit: input.FloorAreaUnit,
		Furnishing:    input.Furnishing,
		Amenities:     input.Amenities,
		VideoURL:      input.VideoURL,

		Latitude:  input.Latitude,
		Longitude: input.Longitude,
		ZoomLevel: input.ZoomLevel,

		Country:       input.Country,
		StateProvince: input.StateProvince,
		City:          input.City,
		StreetAddress: input.StreetAddress,

		OwnerFirstname:     input.OwnerFirstname,
		OwnerLastname:      input.OwnerLastname,
		OwnerPhone:         input.OwnerPhone,
		OwnerEmail:         input.OwnerEmail,
		OwnerCountry:       input.OwnerCountry,
		OwnerState:         input.OwnerState,
		OwnerCity:          input.OwnerCity,
		OwnerStreetAddress: input.OwnerStreetAddress,

		AgentID:     agentID,
		PublishedAt: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if input.Price != nil {
		property.Price = *input.Price
	}
	if input.Bedrooms != nil {
		property.Bedrooms = *input.Bedrooms
	}
	if input.Bathrooms != nil {
		property.Bathrooms = *input.Bathrooms
	}
	if input.Garage != nil {
		property.Garage = *input.Garage
	}
	property.Area = input.Area
	property.LotArea = input.LotArea

	if property.PriceType == "" {
		property.PriceType = models.DefaultPriceType
	}
	if property.FloorAreaUnit == "" {
		property.FloorAreaUnit = models.DefaultFloorAreaUnit
	}
	if property.Country == "" {
		property.Country = models.DefaultCountry
	}

	return property
}
