// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/vibecompass/internal/logging"
	"github.com/tomtom215/vibecompass/internal/recommend"
	"github.com/tomtom215/vibecompass/internal/validation"
)

// Recommend handles POST /api/v1/recommendations.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var body RecommendationRequest
	if status, code, msg := decodeJSON(r, &body); status != 0 {
		rw.Error(status, code, msg)
		return
	}

	if verr := validation.ValidateStruct(&body); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ErrorWithDetails(http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	vibe, err := h.resolveVibe(ctx, &body)
	if err != nil {
		h.writeEngineError(rw, r, err)
		return
	}

	resp, err := h.engine.Recommend(ctx, body.toRequest(logging.RequestIDFromContext(r.Context()), vibe))
	if err != nil {
		h.writeEngineError(rw, r, err)
		return
	}

	rw.Success(resp)
}

// resolveVibe picks the structured vibe when present, otherwise parses the
// free text. Unparseable text never fails the request.
func (h *Handler) resolveVibe(ctx context.Context, body *RecommendationRequest) (recommend.VibeProfile, error) {
	if body.Vibe != nil {
		vibe := body.Vibe.profile()
		if len(vibe.Keywords) == 0 && body.VibeText != "" {
			vibe.Keywords = recommend.Keywords(body.VibeText)
		}
		return vibe, nil
	}

	if h.parser == nil {
		vibe := recommend.DefaultVibeProfile()
		vibe.Keywords = recommend.Keywords(body.VibeText)
		return vibe, nil
	}
	return recommend.ParseVibe(ctx, h.parser, body.VibeText)
}

func (h *Handler) writeEngineError(rw *ResponseWriter, r *http.Request, err error) {
	logger := logging.Ctx(r.Context())

	switch {
	case errors.Is(err, recommend.ErrInvalidLocation):
		rw.BadRequest("location is not a valid coordinate")
	case errors.Is(err, context.DeadlineExceeded):
		logger.Warn().Err(err).Dur("timeout", h.requestTimeout).Msg("recommendation timed out")
		rw.Error(http.StatusGatewayTimeout, ErrCodeTimeout, "recommendation timed out")
	case errors.Is(err, context.Canceled):
		logger.Debug().Err(err).Msg("client went away")
		rw.ServiceUnavailable("request canceled")
	default:
		logger.Error().Err(err).Msg("recommendation failed")
		rw.InternalError("failed to generate recommendations")
	}
}

// decodeJSON reads a JSON object into dst, rejecting unknown fields. A zero
// status means success.
func decodeJSON(r *http.Request, dst interface{}) (status int, code, message string) {
	if r.Body == nil {
		return http.StatusBadRequest, ErrCodeBadRequest, "request body is required"
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return http.StatusRequestEntityTooLarge, ErrCodePayloadTooLarge, "request body too large"
		}
		return http.StatusBadRequest, ErrCodeBadRequest, "failed to read request body"
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return http.StatusBadRequest, ErrCodeBadRequest, "request body is required"
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON: " + err.Error()
	}
	return 0, "", ""
}
