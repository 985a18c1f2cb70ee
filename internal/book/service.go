package book

import (
	"context"
	"fmt"
	"log"
)

// Service owns the book lifecycle: it validates and normalizes input,
// coordinates the image store and the repository, and guarantees that a
// failed create or update never leaves a half-written record behind.
type Service struct {
	repo   Repository
	images ImageStore
	folder string
}

// NewService creates a new book lifecycle service. folder is the logical
// object-store folder book images are placed under.
func NewService(repo Repository, images ImageStore, folder string) *Service {
	return &Service{repo: repo, images: images, folder: folder}
}

// List returns all books.
func (s *Service) List(ctx context.Context) ([]Book, error) {
	return s.repo.List(ctx)
}

// Get returns a book by id, or ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (Book, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates the input, uploads the image if one was supplied and
// inserts the record. The upload happens strictly before the insert so a
// store failure never produces a record pointing at a missing image.
func (s *Service) Create(ctx context.Context, in Input) (Book, error) {
	b, err := Normalize(in)
	if err != nil {
		return Book{}, err
	}

	if len(in.Image) > 0 {
		url, err := s.images.Store(ctx, in.Image, s.folder)
		if err != nil {
			return Book{}, fmt.Errorf("%w: %v", ErrUploadFailed, err)
		}
		b.Image = url
	}

	return s.repo.Insert(ctx, &b)
}

// Update validates the full replacement field set and replaces the
// record. A supplied image overwrites the stored URL; without one the
// existing image is left untouched. Returns ErrNotFound for unknown ids.
func (s *Service) Update(ctx context.Context, id string, in Input) (Book, error) {
	b, err := Normalize(in)
	if err != nil {
		return Book{}, err
	}

	if len(in.Image) > 0 {
		url, err := s.images.Store(ctx, in.Image, s.folder)
		if err != nil {
			return Book{}, fmt.Errorf("%w: %v", ErrUploadFailed, err)
		}
		// TODO: the previous object is left behind in storage when an
		// image is replaced; cleaning it up needs a deletion audit first.
		b.Image = url
	}

	return s.repo.Replace(ctx, id, &b)
}

// Delete removes a book. If the record carries an image, its deletion is
// attempted first but is best-effort: a storage failure is logged and the
// record is removed regardless.
func (s *Service) Delete(ctx context.Context, id string) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if b.Image != "" {
		if err := s.images.Delete(ctx, b.Image); err != nil {
			log.Printf("image cleanup failed for book %s (%s): %v", id, b.Image, err)
		}
	}

	return s.repo.Delete(ctx, id)
}
