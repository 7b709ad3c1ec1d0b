package tasks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"log"
	"time"

	"github.com/hibiken/asynq"
	"github.com/nfnt/resize"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ianjohndal5/Rental/internal/config"
	"github.com/ianjohndal5/Rental/internal/storage"
)

// Task types processed by the background worker.
const (
	TypeImageThumbnail = "image:thumbnail"
	TypeOrphanSweep    = "media:orphan_sweep"
)

// --- Task Client (Enqueuing tasks) ---

func NewClient(cfg *config.Config) *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

// ThumbnailPayload identifies the stored image to derive a thumbnail from.
type ThumbnailPayload struct {
	S3Key      string `json:"s3_key"`
	PropertyID int64  `json:"property_id"`
}

// NewThumbnailTask builds the task enqueued after a property with an image
// is created.
func NewThumbnailTask(s3Key string, propertyID int64) (*asynq.Task, error) {
	payload, err := json.Marshal(ThumbnailPayload{S3Key: s3Key, PropertyID: propertyID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal thumbnail payload: %w", err)
	}
	return asynq.NewTask(TypeImageThumbnail, payload), nil
}

// NewOrphanSweepTask builds the periodic media reconciliation task.
func NewOrphanSweepTask() *asynq.Task {
	return asynq.NewTask(TypeOrphanSweep, nil)
}

// --- Task Server (Processing tasks) ---

// TaskProcessor holds the dependencies needed by task handlers.
type TaskProcessor struct {
	cfg        *config.Config
	db         *mongo.Database
	media      storage.IMediaStorage
	taskClient *asynq.Client
}

func NewTaskProcessor(cfg *config.Config, db *mongo.Database, media storage.IMediaStorage, taskClient *asynq.Client) *TaskProcessor {
	return &TaskProcessor{
		cfg:        cfg,
		db:         db,
		media:      media,
		taskClient: taskClient,
	}
}

// SetupServer configures an Asynq server instance and its handler mux. The
// caller runs and shuts the server down.
func SetupServer(cfg *config.Config, processor *TaskProcessor) (*asynq.Server, *asynq.ServeMux) {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		},
		asynq.Config{
			Queues: map[string]int{
				"default": 3,
				"images":  5,
				"low":     1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Printf("[Asynq Error] Task Type: %s, Error: %v", task.Type(), err)
			}),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeImageThumbnail, processor.HandleImageThumbnailTask)
	mux.HandleFunc(TypeOrphanSweep, processor.HandleOrphanSweepTask)

	return srv, mux
}

// --- Task Handlers ---

// HandleImageThumbnailTask downloads a stored property image, scales it down
// to the configured bounding box and stores the JPEG result under the
// thumbnail prefix. The original object is never touched.
func (p *TaskProcessor) HandleImageThumbnailTask(ctx context.Context, t *asynq.Task) error {
	var payload ThumbnailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal thumbnail payload: %v: %w", err, asynq.SkipRetry)
	}

	body, _, err := p.media.Get(ctx, payload.S3Key)
	if err != nil {
		return fmt.Errorf("failed to download image %s: %w", payload.S3Key, err)
	}
	defer body.Close()

	imgData, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("failed to read image data for %s: %w", payload.S3Key, err)
	}

	img, format, err := image.Decode(bytes.NewReader(imgData))
	if err != nil {
		log.Printf("Unsupported or corrupt image %s (property %d): %v", payload.S3Key, payload.PropertyID, err)
		return fmt.Errorf("cannot decode image: %w", asynq.SkipRetry)
	}

	maxDim := uint(p.cfg.ThumbMaxDimension)
	thumb := resize.Thumbnail(maxDim, maxDim, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: 85}); err != nil {
		return fmt.Errorf("failed to encode thumbnail for %s: %w", payload.S3Key, err)
	}

	thumbKey, err := p.media.SaveThumbnail(ctx, payload.S3Key, buf.Bytes())
	if err != nil {
		return err
	}

	log.Printf("Thumbnail generated: %s (from %s, format %s, property %d)", thumbKey, payload.S3Key, format, payload.PropertyID)
	return nil
}

// HandleOrphanSweepTask reconciles the media store against the database:
// any image or document object older than the configured minimum age that no
// property row references gets deleted. The age floor keeps the sweep from
// deleting files belonging to a create still in flight. The task re-enqueues
// itself to run again after the configured interval.
func (p *TaskProcessor) HandleOrphanSweepTask(ctx context.Context, t *asynq.Task) error {
	cutoff := time.Now().UTC().Add(-p.cfg.OrphanMinAge)

	referenced := make(map[string]struct{})
	for _, field := range []string{"image", "rapa_document_path"} {
		values, err := p.db.Collection("properties").Distinct(ctx, field, bson.M{field: bson.M{"$ne": ""}})
		if err != nil {
			return fmt.Errorf("failed to list referenced %s keys: %w", field, err)
		}
		for _, v := range values {
			if key, ok := v.(string); ok {
				referenced[key] = struct{}{}
			}
		}
	}

	deleted := 0
	for _, prefix := range []string{storage.ImagePrefix, storage.DocumentPrefix} {
		keys, err := p.media.ListKeys(ctx, prefix, cutoff)
		if err != nil {
			return err
		}
		for _, key := range keys {
			if _, ok := referenced[key]; ok {
				continue
			}
			if err := p.media.Delete(ctx, key); err != nil {
				log.Printf("ERROR failed to delete orphaned media %s: %v", key, err)
				continue
			}
			deleted++
		}
	}

	log.Printf("Orphaned media sweep finished. Deleted %d objects.", deleted)

	if p.taskClient != nil {
		if _, err := p.taskClient.EnqueueContext(ctx, NewOrphanSweepTask(), asynq.ProcessIn(p.cfg.OrphanSweepInterval), asynq.Queue("low")); err != nil {
			log.Printf("ERROR failed to re-enqueue orphan sweep task: %v", err)
			return err
		}
	}
	return nil
}
