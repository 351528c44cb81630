package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/plainbrief/plainbrief/internal/core/domain"
	"github.com/plainbrief/plainbrief/internal/core/ports"
)

// PostUseCase backs the legacy image-post endpoints kept for dashboard
// compatibility.
type PostUseCase struct {
	storage ports.ObjectStorage
	posts   ports.PostRepository
}

func NewPostUseCase(storage ports.ObjectStorage, posts ports.PostRepository) *PostUseCase {
	return &PostUseCase{storage: storage, posts: posts}
}

func (uc *PostUseCase) CreatePost(ctx context.Context, image []byte, filename, caption string) (*domain.Post, error) {
	if len(image) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "create post", errors.New("image is required"))
	}

	key := uuid.NewString() + filepath.Ext(filename)
	if err := uc.storage.Save(ctx, key, bytes.NewReader(image)); err != nil {
		return nil, fmt.Errorf("store post image: %w", err)
	}

	post := &domain.Post{
		ID:        uuid.NewString(),
		Image:     key,
		Caption:   caption,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("persist post: %w", err)
	}
	return post, nil
}

func (uc *PostUseCase) ListPosts(ctx context.Context) ([]domain.Post, error) {
	return uc.posts.List(ctx)
}

// OpenImage streams a stored post image back. Keys are flat storage names;
// anything path-like is rejected before touching storage.
func (uc *PostUseCase) OpenImage(ctx context.Context, key string) (io.ReadCloser, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return nil, domain.WrapError(domain.ErrInvalidInput, "open post image", errors.New("invalid image key"))
	}
	reader, err := uc.storage.Open(ctx, key)
	if err != nil {
		return nil, domain.WrapError(domain.ErrNotFound, "open post image", err)
	}
	return reader, nil
}
