package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ianjohndal5/Rental/internal/auth"
	"github.com/ianjohndal5/Rental/internal/db"
	"github.com/ianjohndal5/Rental/internal/models"
)

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

const (
	agentsCollection = "agents"
	agentsSequence   = "agents"
)

// IAgentService defines the interface for agent account operations.
type IAgentService interface {
	Register(ctx context.Context, name, email, phone, password string) (*models.Agent, error)
	Authenticate(ctx context.Context, email, password string) (*models.Agent, error)
	FindByID(ctx context.Context, id int64) (*models.Agent, error)
}

// agentService implements IAgentService.
type agentService struct {
	db *mongo.Database
}

// NewAgentService creates a new AgentService.
func NewAgentService(database *mongo.Database) IAgentService {
	return &agentService{db: database}
}

// Register creates a new agent account. The email must be unused; the unique
// index on agents.email is the authority, so concurrent registrations with
// the same address cannot both succeed.
func (s *agentService) Register(ctx context.Context, name, email, phone, password string) (*models.Agent, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	agent := models.Agent{
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	agent.ID, err = db.NextSequence(ctx, s.db, agentsSequence)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate agent id: %w", err)
	}

	_, err = s.db.Collection(agentsCollection).InsertOne(ctx, agent)
	if err != nil {
		if db.IsMongoDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to insert agent: %w", err)
	}

	return &agent, nil
}

// Authenticate verifies an email/password pair and returns the matching
// agent. An unknown email and a wrong password both map to
// ErrInvalidCredentials so callers cannot distinguish them.
func (s *agentService) Authenticate(ctx context.Context, email, password string) (*models.Agent, error) {
	var agent models.Agent
	err := s.db.Collection(agentsCollection).FindOne(ctx, bson.M{"email": email}).Decode(&agent)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error finding agent by email: %w", err)
	}

	if !auth.CheckPasswordHash(password, agent.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return &agent, nil
}

// FindByID returns the agent with the given identifier, or
// mongo.ErrNoDocuments when none exists.
func (s *agentService) FindByID(ctx context.Context, id int64) (*models.Agent, error) {
	var agent models.Agent
	err := s.db.Collection(agentsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&agent)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, mongo.ErrNoDocuments
		}
		return nil, fmt.Errorf("error finding agent %d: %w", id, err)
	}
	return &agent, nil
}
