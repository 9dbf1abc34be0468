// Package thumbnail implements the asynchronous derived-work pipeline: one
// job per uploaded image, consumed at least once by a worker that renders
// the configured widths into sibling blobs.
package thumbnail

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	// TypeGenerate is the task type for thumbnail rendition jobs.
	TypeGenerate = "thumbnail:generate"

	// TypeWelcome is the task type enqueued once per registered user.
	TypeWelcome = "user:welcome"
)

// GeneratePayload identifies the image a thumbnail job works on.
type GeneratePayload struct {
	FileID string `json:"file_id"`
	UserID string `json:"user_id"`
}

// WelcomePayload identifies the user a welcome job greets.
type WelcomePayload struct {
	UserID string `json:"user_id"`
}

// Enqueuer is the producer side of the queue. It is passed explicitly to
// whoever needs to enqueue work; there is no module-level queue instance.
type Enqueuer struct {
	client *asynq.Client
}

func NewEnqueuer(client *asynq.Client) *Enqueuer {
	return &Enqueuer{client: client}
}

// EnqueueGenerate schedules thumbnail generation for an uploaded image.
// It returns as soon as the job is queued; it never waits for completion.
func (e *Enqueuer) EnqueueGenerate(ctx context.Context, fileID, userID string) error {
	payload, err := json.Marshal(GeneratePayload{FileID: fileID, UserID: userID})
	if err != nil {
		return fmt.Errorf("marshal thumbnail payload: %w", err)
	}
	if _, err := e.client.EnqueueContext(ctx, asynq.NewTask(TypeGenerate, payload)); err != nil {
		return fmt.Errorf("enqueue thumbnail job: %w", err)
	}
	return nil
}

// EnqueueWelcome schedules the post-registration welcome job.
func (e *Enqueuer) EnqueueWelcome(ctx context.Context, userID string) error {
	payload, err := json.Marshal(WelcomePayload{UserID: userID})
	if err != nil {
		return fmt.Errorf("marshal welcome payload: %w", err)
	}
	if _, err := e.client.EnqueueContext(ctx, asynq.NewTask(TypeWelcome, payload)); err != nil {
		return fmt.Errorf("enqueue welcome job: %w", err)
	}
	return nil
}
