package common

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

const multipartMemory = 32 << 20 // parts beyond this spill to disk

// ParseMultipart caps the request body at maxBytes before parsing the
// multipart form, so an oversized upload is cut off at the wire instead of
// being buffered.
func ParseMultipart(w http.ResponseWriter, r *http.Request, maxBytes int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return NewApiError(http.StatusRequestEntityTooLarge, "upload exceeds the size limit")
		}
		return BadRequest("expected multipart form data")
	}
	return nil
}

// PathID parses a numeric path variable. Zero is never a valid ID.
func PathID(r *http.Request, name string) (uint64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, BadRequest("invalid "+name)
	}
	return id, nil
}
