package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ianjohndal5/Rental/internal/models"
	"github.com/ianjohndal5/Rental/internal/services"
)

// MockPropertyService is a testify mock for services.IPropertyService.
type MockPropertyService struct {
	mock.Mock
}

func (m *MockPropertyService) List(ctx context.Context, filter services.PropertyFilter, page int) (*models.PaginatedProperties, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PaginatedProperties), args.Error(1)
}

func (m *MockPropertyService) Featured(ctx context.Context) ([]models.Property, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Property), args.Error(1)
}

func (m *MockPropertyService) FindByID(ctx context.Context, id int64) (*models.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Property), args.Error(1)
}

func (m *MockPropertyService) Create(ctx context.Context, input *models.PropertyInput, uploads *services.PropertyUploads, agentID int64) (*models.Property, error) {
	args := m.Called(ctx, input, uploads, agentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Property), args.Error(1)
}

func (m *MockPropertyService) CreateBulk(ctx context.Context, inputs []models.PropertyInput, agentID int64) ([]models.Property, error) {
	args := m.Called(ctx, inputs, agentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Property), args.Error(1)
}

// MockBlogService is a testify mock for services.IBlogService.
type MockBlogService struct {
	mock.Mock
}

func (m *MockBlogService) List(ctx context.Context) ([]models.Blog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Blog), args.Error(1)
}

func (m *MockBlogService) FindByID(ctx context.Context, id int64) (*models.Blog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Blog), args.Error(1)
}

// MockTestimonialService is a testify mock for services.ITestimonialService.
type MockTestimonialService struct {
	mock.Mock
}

func (m *MockTestimonialService) List(ctx context.Context) ([]models.Testimonial, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Testimonial), args.Error(1)
}

// MockAgentService is a testify mock for services.IAgentService.
type MockAgentService struct {
	mock.Mock
}

func (m *MockAgentService) Register(ctx context.Context, name, email, phone, password string) (*models.Agent, error) {
	args := m.Called(ctx, name, email, phone, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Agent), args.Error(1)
}

func (m *MockAgentService) Authenticate(ctx context.Context, email, password string) (*models.Agent, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Agent), args.Error(1)
}

func (m *MockAgentService) FindByID(ctx context.Context, id int64) (*models.Agent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Agent), args.Error(1)
}
