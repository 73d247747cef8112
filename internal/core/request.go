// AngelaMos | 2026
// request.go

package core

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// canonicalUUIDLen is the hyphenated form Postgres accepts for a uuid
// parameter. uuid.Parse is looser (braces, urn prefix, bare hex).
const canonicalUUIDLen = 36

func IsUUID(s string) bool {
	if len(s) != canonicalUUIDLen {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// PathID returns the named route parameter. A value that is not a UUID
// can never match a row, so it is reported as resource not found.
func PathID(r *http.Request, key, resource string) (string, error) {
	id := chi.URLParam(r, key)
	if !IsUUID(id) {
		return "", NotFoundError(resource)
	}
	return id, nil
}

// QueryUUID returns an optional UUID filter. A blank value is "".
func QueryUUID(r *http.Request, key string) (string, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return "", nil
	}
	if !IsUUID(val) {
		return "", Validation(key + " must be a UUID")
	}
	return val, nil
}

func QueryInt(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}

// QueryDate parses a YYYY-MM-DD query value in loc. A blank value is nil.
func QueryDate(r *http.Request, key string, loc *time.Location) (*time.Time, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return nil, nil
	}

	t, err := time.ParseInLocation("2006-01-02", val, loc)
	if err != nil {
		return nil, Validation(key + " must be a date in YYYY-MM-DD format")
	}

	return &t, nil
}
