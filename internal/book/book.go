package book

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound is returned when a book is not found.
var ErrNotFound = errors.New("book not found")

// ErrUploadFailed wraps image-store write failures. Create/Update abort
// before any persistence write when the upload fails.
var ErrUploadFailed = errors.New("image upload failed")

// Allowed values of the type field.
const (
	TypeSingle     = "single"
	TypeCollection = "collection"
)

// ValidLanguages is the fixed language enumeration for the languages field.
var ValidLanguages = []string{"EN", "AR", "FR"}

// Book represents a catalog entry. ID is assigned by the persistence
// layer on creation and immutable afterwards. Image holds the public URL
// of the associated object-store resource, empty when no image was ever
// supplied.
type Book struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Categories  []string  `json:"categories"`
	Languages   []string  `json:"languages"`
	Type        string    `json:"type"`
	Image       string    `json:"image,omitempty"`
	IsMonthly   bool      `json:"isMonthly"`
	Quantity    int       `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FieldError describes a single invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports every invalid field of a request. It is always
// returned before any image-store or persistence side effect.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
