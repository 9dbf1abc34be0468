package thumbnail

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"filesmanager/backend/internal/models"
	"filesmanager/backend/internal/store"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newObjectID(t *testing.T) primitive.ObjectID {
	t.Helper()
	return primitive.NewObjectID()
}

// --- fakes ---

type fakeFiles struct {
	file *models.File
}

func (f *fakeFiles) FindOwned(ctx context.Context, ownerID, id string) (*models.File, error) {
	if f.file == nil || f.file.OwnerID != ownerID || f.file.ID.Hex() != id {
		return nil, store.ErrNotFound
	}
	return f.file, nil
}

type fakeBlobs struct {
	content map[string][]byte
	readErr error
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{content: make(map[string][]byte)}
}

func (b *fakeBlobs) Retrieve(handle string) ([]byte, error) {
	if b.readErr != nil {
		return nil, b.readErr
	}
	data, ok := b.content[handle]
	if !ok {
		return nil, store.ErrNotFound
	}
	return data, nil
}

func (b *fakeBlobs) StoreAt(handle string, data []byte) error {
	b.content[handle] = data
	return nil
}

// fakeResizer fails for the widths listed in failAt.
type fakeResizer struct {
	failAt map[int]bool
	calls  []int
}

func (r *fakeResizer) Resize(data []byte, width int) ([]byte, error) {
	r.calls = append(r.calls, width)
	if r.failAt[width] {
		return nil, fmt.Errorf("resize to %dpx: broken image", width)
	}
	return []byte(fmt.Sprintf("thumb-%d", width)), nil
}

func genTask(t *testing.T, fileID, userID string) *asynq.Task {
	t.Helper()
	payload, err := json.Marshal(GeneratePayload{FileID: fileID, UserID: userID})
	require.NoError(t, err)
	return asynq.NewTask(TypeGenerate, payload)
}

func newTestFile(t *testing.T, blobs *fakeBlobs) *models.File {
	t.Helper()
	file := &models.File{
		OwnerID:   "u1",
		Name:      "cat.png",
		Kind:      models.KindImage,
		LocalPath: "/tmp/files_manager/orig",
	}
	file.ID = newObjectID(t)
	blobs.content[file.LocalPath] = []byte("original-bytes")
	return file
}

// --- tests ---

func TestHandleGenerateWritesAllRenditions(t *testing.T) {
	blobs := newFakeBlobs()
	file := newTestFile(t, blobs)
	resizer := &fakeResizer{}
	p := NewProcessor(&fakeFiles{file: file}, blobs, resizer, slog.New(slog.NewTextHandler(io.Discard, nil)))

	err := p.HandleGenerate(context.Background(), genTask(t, file.ID.Hex(), "u1"))
	require.NoError(t, err)

	assert.Equal(t, []int{500, 250, 100}, resizer.calls)
	for _, width := range Widths {
		handle := fmt.Sprintf("%s_%d", file.LocalPath, width)
		got, err := blobs.Retrieve(handle)
		require.NoError(t, err, "rendition %d", width)
		assert.Equal(t, []byte(fmt.Sprintf("thumb-%d", width)), got)
	}
}

func TestHandleGenerateAbortsAfterFirstFailure(t *testing.T) {
	blobs := newFakeBlobs()
	file := newTestFile(t, blobs)
	resizer := &fakeResizer{failAt: map[int]bool{250: true}}
	p := NewProcessor(&fakeFiles{file: file}, blobs, resizer, slog.New(slog.NewTextHandler(io.Discard, nil)))

	err := p.HandleGenerate(context.Background(), genTask(t, file.ID.Hex(), "u1"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry)

	// 500 ran and its output persists; 100 was never attempted.
	assert.Equal(t, []int{500, 250}, resizer.calls)
	_, err = blobs.Retrieve(file.LocalPath + "_500")
	assert.NoError(t, err)
	_, err = blobs.Retrieve(file.LocalPath + "_100")
	assert.Error(t, err)
}

func TestHandleGenerateRedelivery(t *testing.T) {
	blobs := newFakeBlobs()
	file := newTestFile(t, blobs)
	p := NewProcessor(&fakeFiles{file: file}, blobs, &fakeResizer{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	task := genTask(t, file.ID.Hex(), "u1")
	require.NoError(t, p.HandleGenerate(context.Background(), task))
	// A retried job re-attempts widths already written without error.
	require.NoError(t, p.HandleGenerate(context.Background(), task))
}

func TestHandleGenerateIncompletePayload(t *testing.T) {
	p := NewProcessor(&fakeFiles{}, newFakeBlobs(), &fakeResizer{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	tests := []struct {
		name   string
		fileID string
		userID string
	}{
		{"missing file id", "", "u1"},
		{"missing user id", "f1", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.HandleGenerate(context.Background(), genTask(t, tt.fileID, tt.userID))
			assert.ErrorIs(t, err, asynq.SkipRetry)
		})
	}
}

func TestHandleGenerateFileGone(t *testing.T) {
	p := NewProcessor(&fakeFiles{}, newFakeBlobs(), &fakeResizer{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	err := p.HandleGenerate(context.Background(), genTask(t, newObjectID(t).Hex(), "u1"))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestHandleGenerateBlobReadFailureIsRetriable(t *testing.T) {
	blobs := newFakeBlobs()
	file := newTestFile(t, blobs)
	blobs.readErr = errors.New("disk error")
	p := NewProcessor(&fakeFiles{file: file}, blobs, &fakeResizer{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	err := p.HandleGenerate(context.Background(), genTask(t, file.ID.Hex(), "u1"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}

func TestHandleWelcome(t *testing.T) {
	p := NewProcessor(&fakeFiles{}, newFakeBlobs(), &fakeResizer{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	payload, err := json.Marshal(WelcomePayload{UserID: "u1"})
	require.NoError(t, err)
	assert.NoError(t, p.HandleWelcome(context.Background(), asynq.NewTask(TypeWelcome, payload)))

	payload, err = json.Marshal(WelcomePayload{})
	require.NoError(t, err)
	assert.ErrorIs(t, p.HandleWelcome(context.Background(), asynq.NewTask(TypeWelcome, payload)), asynq.SkipRetry)
}
