package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ianjohndal5/Rental/internal/models"
)

const testimonialsCollection = "testimonials"

// ITestimonialService defines the interface for testimonial reads.
type ITestimonialService interface {
	List(ctx context.Context) ([]models.Testimonial, error)
}

type testimonialService struct {
	db *mongo.Database
}

// NewTestimonialService creates a new TestimonialService.
func NewTestimonialService(database *mongo.Database) ITestimonialService {
	return &testimonialService{db: database}
}

func (s *testimonialService) List(ctx context.Context) ([]models.Testimonial, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.db.Collection(testimonialsCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query testimonials: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.Testimonial
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode testimonials: %w", err)
	}
	if results == nil {
		results = []models.Testimonial{}
	}
	return results, nil
}
