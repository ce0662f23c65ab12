package image

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/nekogravitycat/item-sharing-backend/internal/item"
	"github.com/nekogravitycat/item-sharing-backend/internal/pkg/storage"
)

const (
	thumbnailMaxWidth  = 300
	thumbnailMaxHeight = 300
)

type Service interface {
	// Upload stores an image for an item. Only the item owner may upload.
	Upload(ctx context.Context, uploaderID, itemID int64, filename, contentType string, content io.Reader) (*ItemImage, error)
	ListByItem(ctx context.Context, itemID int64) ([]*ItemImage, error)
	// Download returns the image metadata and an open reader of the original
	// content. The caller must close the reader.
	Download(ctx context.Context, imageID string) (*ItemImage, io.ReadCloser, error)
	// DownloadThumbnail returns the image metadata and an open reader of the
	// thumbnail. ErrNoThumbnail when thumbnail generation failed at upload.
	DownloadThumbnail(ctx context.Context, imageID string) (*ItemImage, io.ReadCloser, error)
	// Delete removes an image and its stored files. Only the item owner may
	// delete.
	Delete(ctx context.Context, actorID int64, imageID string) error
}

type service struct {
	repo  Repository
	items item.Service
	store storage.Store
	proc  *storage.ImageProcessor
}

func NewService(repo Repository, items item.Service, store storage.Store, proc *storage.ImageProcessor) Service {
	return &service{
		repo:  repo,
		items: items,
		store: store,
		proc:  proc,
	}
}

func (s *service) Upload(ctx context.Context, uploaderID, itemID int64, filename, contentType string, content io.Reader) (*ItemImage, error) {
	it, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it.OwnerID != uploaderID {
		return nil, item.ErrNotOwner
	}

	// Buffer once so the original can be both stored and decoded for the
	// thumbnail.
	data, err := io.ReadAll(content)
	if err != nil {
		return nil, fmt.Errorf("read upload content failed: %w", err)
	}

	id := uuid.New().String()
	ext := strings.ToLower(filepath.Ext(filename))
	storagePath := objectPath(id, ext)

	if err := s.store.Save(ctx, storagePath, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("save image failed: %w", err)
	}

	img := &ItemImage{
		ID:          id,
		ItemID:      itemID,
		UploaderID:  uploaderID,
		Filename:    filename,
		StoragePath: storagePath,
		ContentType: contentType,
		Size:        int64(len(data)),
	}

	// Thumbnail generation is best effort. Unsupported formats still get the
	// original stored and served.
	if thumb, err := s.proc.GenerateThumbnail(bytes.NewReader(data), thumbnailMaxWidth, thumbnailMaxHeight); err == nil {
		thumbPath := objectPath(id+"_thumb", ".jpg")
		if err := s.store.Save(ctx, thumbPath, thumb); err == nil {
			img.ThumbnailPath = &thumbPath
		}
	}

	if err := s.repo.Create(ctx, img); err != nil {
		// Stored files without a record are unreachable, clean them up.
		_ = s.store.Delete(ctx, storagePath)
		if img.ThumbnailPath != nil {
			_ = s.store.Delete(ctx, *img.ThumbnailPath)
		}
		return nil, err
	}

	return img, nil
}

func (s *service) ListByItem(ctx context.Context, itemID int64) ([]*ItemImage, error) {
	if _, err := s.items.GetByID(ctx, itemID); err != nil {
		return nil, err
	}
	return s.repo.ListByItem(ctx, itemID)
}

func (s *service) Download(ctx context.Context, imageID string) (*ItemImage, io.ReadCloser, error) {
	img, err := s.repo.GetByID(ctx, imageID)
	if err != nil {
		return nil, nil, err
	}

	content, err := s.store.Get(ctx, img.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open image content failed: %w", err)
	}
	return img, content, nil
}

func (s *service) DownloadThumbnail(ctx context.Context, imageID string) (*ItemImage, io.ReadCloser, error) {
	img, err := s.repo.GetByID(ctx, imageID)
	if err != nil {
		return nil, nil, err
	}
	if img.ThumbnailPath == nil {
		return nil, nil, ErrNoThumbnail
	}

	content, err := s.store.Get(ctx, *img.ThumbnailPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open thumbnail content failed: %w", err)
	}
	return img, content, nil
}

func (s *service) Delete(ctx context.Context, actorID int64, imageID string) error {
	img, err := s.repo.GetByID(ctx, imageID)
	if err != nil {
		return err
	}

	it, err := s.items.GetByID(ctx, img.ItemID)
	if err != nil {
		return err
	}
	if it.OwnerID != actorID {
		return ErrNotOwner
	}

	if err := s.repo.Delete(ctx, imageID); err != nil {
		return err
	}

	_ = s.store.Delete(ctx, img.StoragePath)
	if img.ThumbnailPath != nil {
		_ = s.store.Delete(ctx, *img.ThumbnailPath)
	}
	return nil
}

// objectPath shards stored objects by the first two characters of the id to
// keep directory sizes bounded.
func objectPath(id, ext string) string {
	return filepath.Join("items", id[:2], id+ext)
}
