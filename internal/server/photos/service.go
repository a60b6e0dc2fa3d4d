package photos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/smart-mailbox/backend/internal/logging"
	"github.com/smart-mailbox/backend/internal/server/notify"
	"github.com/smart-mailbox/backend/internal/server/storage"
	"github.com/smart-mailbox/backend/internal/server/users"
	"github.com/smart-mailbox/backend/internal/shared"
)

const (
	// DefaultStatus labels uploads whose client sent no status field.
	DefaultStatus = "unknown"

	defaultContentType = "image/jpeg"

	notificationTitle = "New mail arrived"
	notificationBody  = "New mail is in your mailbox. Check the photo!"
)

// OwnerDirectory resolves an owner identifier (generated id or username)
// to the account it belongs to.
type OwnerDirectory interface {
	Resolve(ctx context.Context, id string) (*users.User, error)
}

// Service runs the upload pipeline. It owns no persistent state; every
// side effect goes through the injected repository, blob store and
// dispatcher.
type Service struct {
	repo       Repository
	owners     OwnerDirectory
	blobs      storage.BlobStore
	dispatcher notify.Dispatcher
	logger     logging.Logger
}

func NewService(repo Repository, owners OwnerDirectory, blobs storage.BlobStore,
	dispatcher notify.Dispatcher, logger logging.Logger) *Service {
	return &Service{
		repo:       repo,
		owners:     owners,
		blobs:      blobs,
		dispatcher: dispatcher,
		logger:     logger.With("module", "photos"),
	}
}

// Upload stores the photo, records its metadata and best-effort notifies
// the owner's device.
//
// Failure semantics: a missing payload or owner and an unknown owner abort
// before any side effect; a blob-store failure aborts after validation;
// metadata-insert and notification failures are logged and the request
// still succeeds, so the client gets a confirmation once the photo itself
// is durably stored.
func (s *Service) Upload(ctx context.Context, ownerID, status string, data []byte, contentType string) (*Photo, error) {

	if len(data) == 0 {
		return nil, shared.ErrorMissingPhoto
	}
	if ownerID == "" {
		return nil, shared.ErrorMissingOwner
	}

	owner, err := s.owners.Resolve(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if status == "" {
		status = DefaultStatus
	}
	if contentType == "" {
		contentType = defaultContentType
	}

	now := time.Now().UTC()

	filename, err := makeFilename(now)
	if err != nil {
		return nil, fmt.Errorf("filename generation error: %w", err)
	}

	key := fmt.Sprintf("photos/%s/%s", owner.ID, filename)

	url, err := s.blobs.Put(ctx, key, data, contentType)
	if err != nil {
		return nil, fmt.Errorf("blob upload error: %w", err)
	}

	photo := &Photo{
		UID:       owner.ID,
		Username:  owner.Username,
		Filename:  filename,
		URL:       url,
		Status:    status,
		CreatedAt: now,
	}

	if err := s.repo.Insert(ctx, photo); err != nil {
		// The blob is already stored; the upload still succeeds with an
		// orphaned blob.
		s.logger.Error(ctx, "photo metadata insert failed",
			"uid", owner.ID, "filename", filename, "error", err)
	}

	if owner.DeviceToken == "" {
		s.logger.Info(ctx, "owner has no device token, skipping notification", "uid", owner.ID)
		return photo, nil
	}

	payload := map[string]string{
		"photo_url": url,
		"timestamp": now.Format(time.RFC3339),
		"status":    status,
		"uid":       owner.ID,
	}

	if err := s.dispatcher.Send(ctx, owner.DeviceToken, notificationTitle, notificationBody, payload); err != nil {
		s.logger.Warn(ctx, "push delivery failed", "uid", owner.ID, "error", err)
	}

	return photo, nil
}

// ListByOwner returns the owner's uploads newest first. The identifier is
// resolved the same way Upload resolves it, so listing by username finds
// records stored under the generated id. An unknown owner simply has no
// uploads.
func (s *Service) ListByOwner(ctx context.Context, id string) ([]*Photo, error) {

	owner, err := s.owners.Resolve(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrorNotFound) {
			return []*Photo{}, nil
		}
		return nil, err
	}

	return s.repo.ListByOwner(ctx, owner.ID)
}

// makeFilename builds a second-precision timestamp name with a short
// random suffix. The suffix is the sole collision guard for concurrent
// uploads within the same second.
func makeFilename(now time.Time) (string, error) {
	suffix, err := shared.MakeRandHexString(4)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_%s.jpg", now.Format("2006-01-02_15-04-05"), suffix), nil
}
