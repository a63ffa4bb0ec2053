package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/hongminglow/catalog-api/internal/http/respond"
	"github.com/hongminglow/catalog-api/internal/storage"
)

const maxBodyBytes = 1 << 20

var errTrailingData = errors.New("request body must contain a single JSON value")

// decodeJSON reads the request body into dst. An empty body leaves dst
// untouched so validation reports the missing fields; anything after the
// first JSON value is rejected.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errTrailingData
	}
	return nil
}

// respondStoreError maps a repository failure onto a status code by its
// storage.Kind. notFound is the message used for a missing primary record.
func respondStoreError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch storage.KindOf(err) {
	case storage.KindNotFound:
		respond.Error(w, http.StatusNotFound, notFound)
	case storage.KindReference:
		respond.Error(w, http.StatusNotFound, "Category not found")
	case storage.KindConflict:
		respond.Error(w, http.StatusBadRequest, "Email already exists")
	default:
		log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
		respond.Error(w, http.StatusInternalServerError, err.Error())
	}
}
