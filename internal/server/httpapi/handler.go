package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/timekeeper/internal/common"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type profileRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type passwordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type createRecordRequest struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Duration  *int64 `json:"duration"`
}

type authResponse struct {
	Message string   `json:"message"`
	Token   string   `json:"token"`
	User    userJSON `json:"user"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, token, err := s.users.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrValidation):
			writeMessage(w, http.StatusBadRequest, "Username, email and password are required")
		case errors.Is(err, common.ErrUsernameTaken):
			writeMessage(w, http.StatusBadRequest, "Username already exists")
		case errors.Is(err, common.ErrEmailTaken):
			writeMessage(w, http.StatusBadRequest, "Email already exists")
		case errors.Is(err, common.ErrConflict):
			writeMessage(w, http.StatusBadRequest, "User already exists")
		default:
			s.logger.Error(r.Context(), "registration failed", "error", err)
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	s.logger.Info(r.Context(), "user registered", "username", user.Username)
	writeJSON(w, http.StatusCreated, authResponse{
		Message: "User registered successfully",
		Token:   token,
		User:    toUserJSON(user),
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, token, err := s.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			writeMessage(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		s.logger.Error(r.Context(), "login failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		Message: "Login successful",
		Token:   token,
		User:    toUserJSON(user),
	})
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Authorization token is required")
		return
	}

	writeJSON(w, http.StatusOK, map[string]userJSON{"user": toUserJSON(user)})
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Authorization token is required")
		return
	}

	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := s.users.UpdateProfile(r.Context(), user, req.Username, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrUsernameTaken):
			writeMessage(w, http.StatusBadRequest, "Username already exists")
		case errors.Is(err, common.ErrEmailTaken):
			writeMessage(w, http.StatusBadRequest, "Email already exists")
		case errors.Is(err, common.ErrConflict):
			writeMessage(w, http.StatusBadRequest, "Profile values already in use")
		default:
			s.logger.Error(r.Context(), "profile update failed", "error", err)
			writeMessage(w, http.StatusInternalServerError, "Failed to update profile")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Profile updated successfully",
		"user":    toUserJSON(updated),
	})
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Authorization token is required")
		return
	}

	var req passwordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := s.users.ChangePassword(r.Context(), user, req.OldPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrValidation):
			writeMessage(w, http.StatusBadRequest, "Old and new passwords are required")
		case errors.Is(err, common.ErrPasswordMismatch):
			writeMessage(w, http.StatusBadRequest, "Old password is incorrect")
		default:
			s.logger.Error(r.Context(), "password change failed", "error", err)
			writeMessage(w, http.StatusInternalServerError, "Failed to change password")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Password changed successfully"})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Authorization token is required")
		return
	}

	stats, err := s.stats.Get(r.Context(), user.ID)
	if err != nil {
		s.logger.Error(r.Context(), "stats computation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}

	writeJSON(w, http.StatusOK, toStatsJSON(stats))
}

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Authorization token is required")
		return
	}

	records, err := s.records.List(r.Context(), user.ID)
	if err != nil {
		s.logger.Error(r.Context(), "record listing failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list records")
		return
	}

	out := make([]recordJSON, 0, len(records))
	for _, record := range records {
		out = append(out, toRecordJSON(record))
	}

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Authorization token is required")
		return
	}

	var req createRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	record, err := s.records.Create(r.Context(), user.ID, req.StartTime, req.EndTime, req.Duration)
	if err != nil {
		if errors.Is(err, common.ErrValidation) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error(r.Context(), "record creation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create record")
		return
	}

	writeJSON(w, http.StatusCreated, toRecordJSON(record))
}

func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Authorization token is required")
		return
	}

	recordID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "Record not found")
		return
	}

	if err := s.records.Delete(r.Context(), user.ID, recordID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "Record not found")
			return
		}
		s.logger.Error(r.Context(), "record deletion failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete record")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
