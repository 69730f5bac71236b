package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/jamesainslie/go-sentsplit/internal/admission"
	"github.com/jamesainslie/go-sentsplit/internal/frame"
)

const requestIDHeader = "X-Request-ID"

// maxBytesPerChar bounds the JSON encoding of one character: a surrogate
// pair written as two \uXXXX escapes.
const maxBytesPerChar = 12

// bodySlack covers the object braces, key and whitespace around the text.
const bodySlack = 1 << 10

func newRequestID() string {
	return uuid.NewString()
}

type splitRequest struct {
	Text *string `json:"text"`
}

// decodeRequest reads and validates the request body, returning the text
// to split.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (string, *ValidationError) {
	limit := int64(s.cfg.MaxInputLength)*maxBytesPerChar + bodySlack
	body := http.MaxBytesReader(w, r.Body, limit)

	dec := json.NewDecoder(body)
	var req splitRequest
	if err := dec.Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.As(err, &maxErr):
			return "", bodyTooLarge()
		case errors.As(err, &typeErr) && typeErr.Field == "":
			return "", invalid(ErrMalformedBody, "model_attributes_type",
				"Input should be a valid dictionary or object to extract fields from", "body")
		case errors.As(err, &typeErr):
			return "", invalid(ErrMalformedBody, "string_type", "Input should be a valid string")
		case errors.Is(err, io.EOF):
			return "", invalid(ErrMissingText, "missing", "Field required")
		default:
			return "", jsonInvalid()
		}
	}

	// The body must hold exactly one JSON value.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return "", bodyTooLarge()
		}
		return "", jsonInvalid()
	}

	if req.Text == nil {
		return "", invalid(ErrMissingText, "missing", "Field required")
	}

	n := utf8.RuneCountInString(*req.Text)
	if n < s.cfg.MinSegmentLength {
		return "", tooShort(s.cfg.MinSegmentLength)
	}
	if n > s.cfg.MaxInputLength {
		return "", tooLong(s.cfg.MaxInputLength)
	}
	return *req.Text, nil
}

func (s *Server) handleSplit(w http.ResponseWriter, r *http.Request) {
	logger := s.requestLogger(r)

	text, verr := s.decodeRequest(w, r)
	if verr != nil {
		logger.Warn("rejected request", "type", verr.Type, "error", verr)
		writeValidationError(w, verr)
		return
	}

	if s.cfg.NormalizeInput {
		text = norm.NFC.String(text)
	}

	ctx := r.Context()
	slot, err := s.pool.Acquire(ctx)
	if err != nil {
		if errors.Is(err, admission.ErrPoolClosed) {
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{
				Detail: []errorDetail{{Type: "unavailable", Loc: []string{}, Msg: "Server is shutting down"}},
			})
			return
		}
		logger.Debug("client left while waiting for a slot", "error", err)
		return
	}
	defer s.pool.Release(slot)

	format := frame.FromAccept(r.Header.Get("Accept"))
	enc := frame.NewEncoder(format, w)
	w.Header().Set("Content-Type", enc.ContentType())
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)

	rc := http.NewResponseController(w)
	start := time.Now()
	count, err := s.stream(ctx, text, enc, rc)
	if err != nil {
		logger.Info("stream abandoned", "segments", count, "error", err)
		return
	}

	logger.Debug("stream finished",
		"slot", slot.ID(),
		"segments", count,
		"input_length", len(text),
		"duration", time.Since(start),
	)
}

// stream writes every segment of text followed by the Done record,
// flushing after each one. It stops early when ctx is cancelled.
func (s *Server) stream(ctx context.Context, text string, enc frame.Encoder, rc *http.ResponseController) (int, error) {
	count := 0
	for seg := range s.splitter.All(text) {
		if err := ctx.Err(); err != nil {
			return count, err
		}
		if err := enc.Encode(frame.Record{Text: seg.Text}); err != nil {
			return count, err
		}
		if err := flush(rc); err != nil {
			return count, err
		}
		count++
	}

	if err := enc.Encode(frame.Done()); err != nil {
		return count, err
	}
	return count, flush(rc)
}

func flush(rc *http.ResponseController) error {
	if err := rc.Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
		return err
	}
	return nil
}
