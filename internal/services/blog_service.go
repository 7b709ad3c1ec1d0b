package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ianjohndal5/Rental/internal/models"
)

const blogsCollection = "blogs"

// IBlogService defines the interface for blog article reads.
type IBlogService interface {
	List(ctx context.Context) ([]models.Blog, error)
	FindByID(ctx context.Context, id int64) (*models.Blog, error)
}

type blogService struct {
	db *mongo.Database
}

// NewBlogService creates a new BlogService.
func NewBlogService(database *mongo.Database) IBlogService {
	return &blogService{db: database}
}

func (s *blogService) List(ctx context.Context) ([]models.Blog, error) {
	opts := options.Find().SetSort(bson.D{{Key: "published_at", Value: -1}})
	cursor, err := s.db.Collection(blogsCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query blogs: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.Blog
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode blogs: %w", err)
	}
	if results == nil {
		results = []models.Blog{}
	}
	return results, nil
}

func (s *blogService) FindByID(ctx context.Context, id int64) (*models.Blog, error) {
	var blog models.Blog
	err := s.db.Collection(blogsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&blog)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, mongo.ErrNoDocuments
		}
		return nil, fmt.Errorf("error finding blog %d: %w", id, err)
	}
	return &blog, nil
}
