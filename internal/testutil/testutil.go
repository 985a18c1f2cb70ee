// Package testutil holds shared helpers for handler tests.
package testutil

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
)

// BookFields is a complete, valid multipart field set for a book write.
func BookFields() map[string]string {
	return map[string]string{
		"title":      "Atlas",
		"price":      "1200",
		"categories": "Maps, Reference",
		"languages":  "EN, FR",
		"type":       "single",
		"quantity":   "3",
	}
}

// NewMultipartRequest builds a multipart/form-data request from string
// fields plus an optional image part.
func NewMultipartRequest(method, path string, fields map[string]string, image []byte) *http.Request {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}
	if image != nil {
		part, _ := mw.CreateFormFile("image", "cover.jpg")
		_, _ = part.Write(image)
	}
	_ = mw.Close()

	r := httptest.NewRequest(method, path, &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return r
}
