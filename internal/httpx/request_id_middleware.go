package httpx

import (
	"net/http"

	"github.com/google/uuid"
)

// HeaderRequestID is echoed back on every response and stamped onto
// access and panic log lines.
const HeaderRequestID = "X-Request-Id"

// RequestIDMiddleware tags each request with an id, reusing the one the
// client sent when present and minting a fresh one otherwise.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set(HeaderRequestID, id)
		next.ServeHTTP(w, r.WithContext(ContextWithRequestID(r.Context(), id)))
	})
}
