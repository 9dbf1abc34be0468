package thumbnail

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"filesmanager/backend/internal/models"
	"filesmanager/backend/internal/store"

	"github.com/hibiken/asynq"
)

// Widths are the rendition targets, attempted strictly in this order.
var Widths = []int{500, 250, 100}

// FileFinder resolves the file/owner pair a job references.
type FileFinder interface {
	FindOwned(ctx context.Context, ownerID, id string) (*models.File, error)
}

// BlobStore is the subset of the blob layer the worker needs.
type BlobStore interface {
	Retrieve(handle string) ([]byte, error)
	StoreAt(handle string, data []byte) error
}

// Processor consumes queue jobs. Errors wrapped with asynq.SkipRetry are
// terminal and send the job to the archive; anything else is retried by the
// queue's at-least-once delivery.
type Processor struct {
	files  FileFinder
	blobs  BlobStore
	resize Resizer
	log    *slog.Logger
}

func NewProcessor(files FileFinder, blobs BlobStore, resize Resizer, log *slog.Logger) *Processor {
	return &Processor{files: files, blobs: blobs, resize: resize, log: log}
}

// HandleGenerate renders the configured widths for one image. The first
// rendition failure aborts the remaining widths; renditions already written
// stay on disk and are overwritten if the job is redelivered.
func (p *Processor) HandleGenerate(ctx context.Context, t *asynq.Task) error {
	var payload GeneratePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
	}
	if payload.FileID == "" {
		return fmt.Errorf("missing file_id: %w", asynq.SkipRetry)
	}
	if payload.UserID == "" {
		return fmt.Errorf("missing user_id: %w", asynq.SkipRetry)
	}

	file, err := p.files.FindOwned(ctx, payload.UserID, payload.FileID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// The source file is gone; retrying cannot help.
			return fmt.Errorf("file %s not found: %w", payload.FileID, asynq.SkipRetry)
		}
		return fmt.Errorf("look up file %s: %w", payload.FileID, err)
	}

	original, err := p.blobs.Retrieve(file.LocalPath)
	if err != nil {
		return fmt.Errorf("read original blob: %w", err)
	}

	for _, width := range Widths {
		rendition, err := p.resize.Resize(original, width)
		if err != nil {
			return fmt.Errorf("file %s: %w", payload.FileID, err)
		}
		handle := fmt.Sprintf("%s_%d", file.LocalPath, width)
		if err := p.blobs.StoreAt(handle, rendition); err != nil {
			return fmt.Errorf("file %s: store %dpx rendition: %w", payload.FileID, width, err)
		}
		p.log.Info("rendition written", "file", payload.FileID, "width", width)
	}

	p.log.Info("thumbnail job completed", "file", payload.FileID)
	return nil
}

// HandleWelcome greets a new user. The original project only ever logged
// the greeting; sending a real email stays out of scope.
func (p *Processor) HandleWelcome(ctx context.Context, t *asynq.Task) error {
	var payload WelcomePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
	}
	if payload.UserID == "" {
		return fmt.Errorf("missing user_id: %w", asynq.SkipRetry)
	}
	p.log.Info("welcome new user", "user", payload.UserID)
	return nil
}

// NewMux registers the processor's handlers on a fresh asynq mux.
func NewMux(p *Processor) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeGenerate, p.HandleGenerate)
	mux.HandleFunc(TypeWelcome, p.HandleWelcome)
	return mux
}
