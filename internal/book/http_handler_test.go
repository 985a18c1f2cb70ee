package book

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookstore/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testID = "6f1f18a6-6f24-4f0a-93b5-94bb6c58ab01"

func newTestHandler() (*HTTPHandler, *mockRepo, *mockImageStore) {
	repo := new(mockRepo)
	images := new(mockImageStore)
	return NewHTTPHandler(NewService(repo, images, "books")), repo, images
}

func TestHTTPHandler_List(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		handler, repo, _ := newTestHandler()
		repo.On("List", mock.Anything).Return([]Book{{ID: testID, Title: "Atlas"}}, nil)

		w := httptest.NewRecorder()
		handler.List(w, httptest.NewRequest(http.MethodGet, "/api/books", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Atlas")
	})

	t.Run("repository error", func(t *testing.T) {
		handler, repo, _ := newTestHandler()
		repo.On("List", mock.Anything).Return(nil, context.DeadlineExceeded)

		w := httptest.NewRecorder()
		handler.List(w, httptest.NewRequest(http.MethodGet, "/api/books", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestHTTPHandler_Get(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		handler, repo, _ := newTestHandler()
		repo.On("GetByID", mock.Anything, testID).Return(Book{ID: testID, Title: "Atlas"}, nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/books/"+testID, nil)
		r.SetPathValue("id", testID)
		handler.Get(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		handler, repo, _ := newTestHandler()
		repo.On("GetByID", mock.Anything, testID).Return(Book{}, ErrNotFound)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/books/"+testID, nil)
		r.SetPathValue("id", testID)
		handler.Get(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed id skips the repository", func(t *testing.T) {
		handler, repo, _ := newTestHandler()

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/books/not-a-uuid", nil)
		r.SetPathValue("id", "not-a-uuid")
		handler.Get(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}

func TestHTTPHandler_Create(t *testing.T) {
	t.Run("created without image", func(t *testing.T) {
		handler, repo, _ := newTestHandler()
		repo.On("Insert", mock.Anything, mock.Anything).Return(Book{ID: testID, Title: "Atlas"}, nil)

		w := httptest.NewRecorder()
		handler.Create(w, testutil.NewMultipartRequest(http.MethodPost, "/api/books", testutil.BookFields(), nil))

		require.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			Success bool `json:"success"`
			Data    Book `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, testID, resp.Data.ID)
	})

	t.Run("created with image", func(t *testing.T) {
		handler, repo, images := newTestHandler()
		image := []byte("fake-jpeg-bytes")

		images.On("Store", mock.Anything, image, "books").Return("https://store/books/abc123", nil)
		repo.On("Insert", mock.Anything, mock.MatchedBy(func(b *Book) bool {
			return b.Image == "https://store/books/abc123"
		})).Return(Book{ID: testID, Image: "https://store/books/abc123"}, nil)

		w := httptest.NewRecorder()
		handler.Create(w, testutil.NewMultipartRequest(http.MethodPost, "/api/books", testutil.BookFields(), image))

		assert.Equal(t, http.StatusCreated, w.Code)
		images.AssertExpectations(t)
	})

	t.Run("invalid language token", func(t *testing.T) {
		handler, repo, images := newTestHandler()

		fields := testutil.BookFields()
		fields["languages"] = "EN, XX"

		w := httptest.NewRecorder()
		handler.Create(w, testutil.NewMultipartRequest(http.MethodPost, "/api/books", fields, nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "XX")
		repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
		images.AssertNotCalled(t, "Store", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("upload failure", func(t *testing.T) {
		handler, repo, images := newTestHandler()
		image := []byte("fake-jpeg-bytes")

		images.On("Store", mock.Anything, image, "books").Return("", errors.New("unreachable"))

		w := httptest.NewRecorder()
		handler.Create(w, testutil.NewMultipartRequest(http.MethodPost, "/api/books", testutil.BookFields(), image))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "UPLOAD_FAILED")
		repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("not multipart", func(t *testing.T) {
		handler, _, _ := newTestHandler()

		w := httptest.NewRecorder()
		handler.Create(w, httptest.NewRequest(http.MethodPost, "/api/books", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHTTPHandler_Update(t *testing.T) {
	t.Run("success without image", func(t *testing.T) {
		handler, repo, images := newTestHandler()
		repo.On("Replace", mock.Anything, testID, mock.MatchedBy(func(b *Book) bool {
			return b.Image == ""
		})).Return(Book{ID: testID, Title: "Atlas"}, nil)

		w := httptest.NewRecorder()
		r := testutil.NewMultipartRequest(http.MethodPut, "/api/books/"+testID, testutil.BookFields(), nil)
		r.SetPathValue("id", testID)
		handler.Update(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		images.AssertNotCalled(t, "Store", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		handler, repo, _ := newTestHandler()
		repo.On("Replace", mock.Anything, testID, mock.Anything).Return(Book{}, ErrNotFound)

		w := httptest.NewRecorder()
		r := testutil.NewMultipartRequest(http.MethodPut, "/api/books/"+testID, testutil.BookFields(), nil)
		r.SetPathValue("id", testID)
		handler.Update(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHTTPHandler_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		handler, repo, images := newTestHandler()
		url := "https://store/books/abc123.jpg"
		repo.On("GetByID", mock.Anything, testID).Return(Book{ID: testID, Image: url}, nil)
		images.On("Delete", mock.Anything, url).Return(nil)
		repo.On("Delete", mock.Anything, testID).Return(nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodDelete, "/api/books/"+testID, nil)
		r.SetPathValue("id", testID)
		handler.Delete(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		images.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		handler, repo, _ := newTestHandler()
		repo.On("GetByID", mock.Anything, testID).Return(Book{}, ErrNotFound)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodDelete, "/api/books/"+testID, nil)
		r.SetPathValue("id", testID)
		handler.Delete(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
