package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// ParseBody decodes a JSON object request body of at most limit bytes.
// An empty or whitespace-only body yields an empty map. Anything that is not
// a JSON object fails with ErrMalformedBody; an oversized body fails with
// ErrBodyTooLarge. Other read failures are returned wrapped with neither kind.
func ParseBody(w http.ResponseWriter, r *http.Request, limit int64) (map[string]any, error) {
	const op = "api.parse_body"
	if r.Body == nil || r.Body == http.NoBody {
		return map[string]any{}, nil
	}

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, WrapKind(op, ErrBodyTooLarge, err)
		}
		return nil, Wrap(op, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]any{}, nil
	}

	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, WrapKind(op, ErrMalformedBody, err)
	}
	// A literal null decodes without error but is not an object.
	if body == nil {
		return nil, NewKind(op, ErrMalformedBody)
	}
	return body, nil
}
