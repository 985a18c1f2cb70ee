package book

import (
	"context"
)

// Repository defines the contract for book data storage.
type Repository interface {
	List(ctx context.Context) ([]Book, error)
	GetByID(ctx context.Context, id string) (Book, error)
	Insert(ctx context.Context, b *Book) (Book, error)
	Replace(ctx context.Context, id string, b *Book) (Book, error)
	Delete(ctx context.Context, id string) error
}

// ImageStore defines the contract over the external object-storage
// service. Store places data under a logical folder and returns a stable
// public URL. Delete removes a previously stored object addressed by the
// URL Store returned; both sides use the same URL-to-object derivation.
type ImageStore interface {
	Store(ctx context.Context, data []byte, folder string) (string, error)
	Delete(ctx context.Context, url string) error
}
