package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/mesh-intelligence/todos/pkg/types"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := decodeBody(w, r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		writeFailure(w, http.StatusBadRequest, msgInvalidBody, nil)
		return
	}
	s.log.Info("login attempt", "username", req.Username)

	token, err := s.auth.Login(req.Username, req.Password)
	switch {
	case err == nil:
		s.log.Info("login successful", "username", req.Username)
		writeJSON(w, http.StatusOK, types.Envelope{Success: true, Token: token, Message: msgLoginOK})
	case errors.Is(err, types.ErrCredentialsRequired):
		s.log.Warn("login rejected: missing credentials")
		writeFailure(w, http.StatusBadRequest, msgCredentialsMissing, nil)
	case errors.Is(err, types.ErrInvalidCredentials):
		s.log.Warn("login rejected: invalid credentials", "username", req.Username)
		writeFailure(w, http.StatusUnauthorized, msgInvalidCredentials, nil)
	default:
		s.log.Error("login error", "error", err)
		writeFailure(w, http.StatusInternalServerError, msgServerError, nil)
	}
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.items.List(r.Context())
	if err != nil {
		s.log.Error("list items failed", "error", err)
		writeFailure(w, http.StatusInternalServerError, "", err)
		return
	}
	if items == nil {
		items = []types.Item{}
	}
	writeJSON(w, http.StatusOK, types.ListEnvelope{Success: true, Data: items})
}

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var req types.CreateItemRequest
	if err := decodeBody(w, r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		writeFailure(w, http.StatusBadRequest, msgInvalidBody, nil)
		return
	}

	id, err := s.items.Create(r.Context(), req.Title)
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, types.Envelope{Success: true, Message: msgCreated, ID: id})
	case errors.Is(err, types.ErrTitleRequired):
		writeFailure(w, http.StatusBadRequest, msgTitleRequired, nil)
	case errors.Is(err, types.ErrDuplicateTitle):
		s.log.Warn("duplicate todo title", "title", req.Title)
		writeFailure(w, http.StatusBadRequest, msgDuplicateTitle, err)
	default:
		s.log.Error("create item failed", "error", err)
		writeFailure(w, http.StatusInternalServerError, msgCreateFailed, err)
	}
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req types.UpdateItemRequest
	if err := decodeBody(w, r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		writeFailure(w, http.StatusBadRequest, msgInvalidBody, nil)
		return
	}

	err := s.items.Update(r.Context(), id, req.Title, req.Completed)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, types.Envelope{Success: true})
	case errors.Is(err, types.ErrTitleRequired):
		writeFailure(w, http.StatusBadRequest, msgTitleRequired, nil)
	default:
		s.log.Error("update item failed", "id", id, "error", err)
		writeFailure(w, http.StatusInternalServerError, "", err)
	}
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.items.Delete(r.Context(), id); err != nil {
		s.log.Error("delete item failed", "id", id, "error", err)
		writeFailure(w, http.StatusInternalServerError, "", err)
		return
	}
	writeJSON(w, http.StatusOK, types.Envelope{Success: true})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeFailure(w, http.StatusNotFound, msgNotFound, nil)
}

// pathID parses the {id} path segment. On failure it writes a 400 envelope
// and reports false.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, msgInvalidID, nil)
		return 0, false
	}
	return id, true
}
