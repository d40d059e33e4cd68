package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/greeter/internal/common"
)

type errorResponse struct {
	Error string `json:"error"`
}

type renameRequest struct {
	NewName *string `json:"newName"`
}

func (s *HTTPServer) listUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := s.users.List(ctx)
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, result)
}

func (s *HTTPServer) registerUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := s.users.Register(ctx, r.FormValue("name"))
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	loggerFrom(ctx, s.logger).Info(ctx, "Registered", "id", user.ID)
	s.writeJSON(w, r, http.StatusOK, user)
}

func (s *HTTPServer) updateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	newName, err := newNameParam(r)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	user, err := s.users.Rename(ctx, id, newName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.writeJSON(w, r, http.StatusNotFound, errorResponse{Error: "user not found"})
			return
		}
		s.internalError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, user)
}

func (s *HTTPServer) deleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	removed, err := s.users.Remove(ctx, id)
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, removed)
}

func (s *HTTPServer) ping(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]string{"status": "OK"})
}

func (s *HTTPServer) internalError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	loggerFrom(ctx, s.logger).Error(ctx, err.Error())
	s.writeError(w, r, http.StatusInternalServerError, common.ErrorInternal)
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", common.ErrorInvalidID, r.PathValue("id"))
	}
	return id, nil
}

// newNameParam reads newName from a JSON body, or from the query string /
// urlencoded form otherwise. The parameter must be present; an empty value
// is accepted.
func newNameParam(r *http.Request) (string, error) {
	missing := fmt.Errorf("%w: newName", common.ErrorMissingParameter)

	if ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); ct == "application/json" {
		var req renameRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return "", fmt.Errorf("invalid request body: %w", err)
		}
		if req.NewName == nil {
			return "", missing
		}
		return *req.NewName, nil
	}

	if err := r.ParseForm(); err != nil {
		return "", fmt.Errorf("invalid request: %w", err)
	}
	values, ok := r.Form["newName"]
	if !ok || len(values) == 0 {
		return "", missing
	}
	return values[0], nil
}

func (s *HTTPServer) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ctx := r.Context()
		loggerFrom(ctx, s.logger).Error(ctx, "response encode error", "error", err)
	}
}

func (s *HTTPServer) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.writeJSON(w, r, status, errorResponse{Error: err.Error()})
}
