package api

import (
	"encoding/json"
	"net/http"

	"github.com/patrickmn/go-cache"

	"github.com/fadedpez/dugout/internal/types"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error   string          `json:"error"`
	Code    types.ErrorCode `json:"code"`
	Message string          `json:"message"`
}

var statusByCode = map[types.ErrorCode]int{
	types.ErrRecordNotFound:  http.StatusNotFound,
	types.ErrPlayerNotFound:  http.StatusNotFound,
	types.ErrPlayerRequired:  http.StatusBadRequest,
	types.ErrPitcherRequired: http.StatusBadRequest,
	types.ErrResultRequired:  http.StatusBadRequest,
	types.ErrInvalidArgument: http.StatusBadRequest,
	types.ErrImportFailed:    http.StatusBadRequest,
	types.ErrNothingToUndo:   http.StatusConflict,
	types.ErrPlayerExists:    http.StatusConflict,
	types.ErrNetworkError:    http.StatusBadGateway,
	types.ErrDatabaseError:   http.StatusInternalServerError,
	types.ErrInternalError:   http.StatusInternalServerError,
}

// statusFor maps an error to the HTTP status its code implies
func statusFor(err error) int {
	if status, ok := statusByCode[types.CodeOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("error encoding response: %v", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.log.LogError(err)
	}

	resp := ErrorResponse{
		Error: http.StatusText(status),
		Code:  types.CodeOf(err),
	}
	var appErr *types.AppError
	if types.As(err, &appErr) {
		resp.Message = appErr.Message
	} else {
		resp.Message = "internal error"
	}
	s.respondJSON(w, status, resp)
}

// cached answers a GET from the cache, or computes, stores and answers it.
// Keys are the path plus the normalized query.
func (s *Server) cached(w http.ResponseWriter, r *http.Request, compute func() (interface{}, error)) {
	key := r.URL.Path + "?" + r.URL.Query().Encode()
	if v, ok := s.cache.Get(key); ok {
		w.Header().Set("X-Cache", "HIT")
		s.respondJSON(w, http.StatusOK, v)
		return
	}

	gen := s.generation.Load()
	v, err := compute()
	if err != nil {
		s.respondError(w, err)
		return
	}
	if s.generation.Load() == gen {
		s.cache.Set(key, v, cache.DefaultExpiration)
	}
	w.Header().Set("X-Cache", "MISS")
	s.respondJSON(w, http.StatusOK, v)
}

// invalidate drops every cached read. Reads computed before the call are
// not stored afterwards.
func (s *Server) invalidate() {
	s.generation.Add(1)
	s.cache.Flush()
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return types.WrapError(types.ErrInvalidArgument, "invalid JSON body", err)
	}
	return nil
}
