package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	ContentTypeJSON    = "application/json"
	ContentTypeMsgpack = "application/msgpack"
)

// Validator is an object that can be validated.
type Validator interface {
	Validate() error
}

// Encode writes the object to the response writer. It is usually used as the
// last step in a handler.
func Encode[T any](w http.ResponseWriter, status int, v T) {
	w.Header().Set("Content-Type", ContentTypeJSON)
	// Write to buffer first to ensure the object is json encodable
	// before writing to the response writer.
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error().Err(err).Msg("could not encode response")
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// EncodeAccept writes the object as msgpack if the request accepts it and
// falls back to json otherwise.
func EncodeAccept[T any](w http.ResponseWriter, r *http.Request, status int, v T) {
	if !acceptsMsgpack(r) {
		Encode(w, status, v)
		return
	}
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	// Keep the same field names as the json encoding
	enc.SetCustomStructTag("json")
	if err := enc.Encode(v); err != nil {
		log.Error().Err(err).Msg("could not encode msgpack response")
		Encode(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", ContentTypeMsgpack)
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func acceptsMsgpack(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Accept"))
	return err == nil && mediaType == ContentTypeMsgpack
}

// DecodeValid decodes the request body into the object and then validates it.
func DecodeValid[T Validator](r *http.Request) (T, error) {
	var v T
	ctype, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return v, fmt.Errorf("invalid content type: %w", err)
	}
	switch ctype {
	case ContentTypeJSON:
		if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
			return v, fmt.Errorf("decode json: %w", err)
		}
	case ContentTypeMsgpack:
		dec := msgpack.NewDecoder(r.Body)
		// This allows the message pack decoder to use the json struct tags.
		dec.SetCustomStructTag("json")
		if err := dec.Decode(&v); err != nil {
			return v, fmt.Errorf("decode msgpack: %w", err)
		}
	default:
		return v, fmt.Errorf("invalid content type %s expected application/json or application/msgpack", ctype)
	}
	// ---------------------------
	if err := v.Validate(); err != nil {
		return v, fmt.Errorf("validation error: %w", err)
	}
	// ---------------------------
	return v, nil
}
