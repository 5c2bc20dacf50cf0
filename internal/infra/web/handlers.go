package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"ai-chat-backend/internal/domain"
)

// Request bodies accepted by the JSON API.
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type chatRequest struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.authUC.Signup(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateUsername):
			writeError(w, http.StatusBadRequest, "username already taken")
		case errors.Is(err, domain.ErrInvalidArgument):
			writeError(w, http.StatusBadRequest, "username and password are required")
		default:
			s.log.Error().Err(err).Msg("signup failed")
			writeError(w, http.StatusInternalServerError, "signup failed")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"id":       user.ID,
		"username": user.Username,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sessionID, err := s.authUC.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "invalid username or password")
		case errors.Is(err, domain.ErrInvalidArgument):
			writeError(w, http.StatusBadRequest, "username and password are required")
		default:
			s.log.Error().Err(err).Msg("login failed")
			writeError(w, http.StatusInternalServerError, "login failed")
		}
		return
	}

	if _, err := s.auth.Mint(w, sessionID); err != nil {
		s.log.Error().Err(err).Msg("mint session cookie failed")
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// handleLogout is idempotent: an absent or stale session still gets its
// cookie cleared and a 200.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	sessionID := s.auth.SessionID(r)
	if err := s.authUC.Logout(r.Context(), sessionID); err != nil {
		s.log.Warn().Err(err).Msg("logout session delete failed")
	}
	s.auth.Clear(w)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := s.authUC.CurrentUser(r.Context(), s.auth.SessionID(r))
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			writeError(w, http.StatusUnauthorized, "login required")
			return
		}
		s.log.Error().Err(err).Msg("current user lookup failed")
		writeError(w, http.StatusInternalServerError, "could not load account")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"id":       user.ID,
		"username": user.Username,
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reply, err := s.chatUC.SubmitMessage(r.Context(), s.auth.SessionID(r), req.Message)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnauthenticated):
			writeError(w, http.StatusUnauthorized, "login required")
		case errors.Is(err, domain.ErrEmptyMessage):
			writeError(w, http.StatusBadRequest, "message must not be empty")
		case domain.IsProviderError(err):
			s.log.Error().Err(err).Msg("completion provider failed")
			writeError(w, http.StatusBadGateway, "assistant is unavailable, try again later")
		case errors.Is(err, domain.ErrStorageUnavailable):
			s.log.Error().Err(err).Msg("history write failed")
			writeError(w, http.StatusInternalServerError, "could not save the exchange")
		default:
			s.log.Error().Err(err).Msg("chat failed")
			writeError(w, http.StatusInternalServerError, "chat failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

// handleHistory never returns 401: an anonymous caller just sees an
// empty conversation, which keeps the page renderable before login.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	records, err := s.chatUC.History(r.Context(), s.auth.SessionID(r))
	if err != nil {
		s.log.Error().Err(err).Msg("history fetch failed")
		writeError(w, http.StatusInternalServerError, "could not load history")
		return
	}

	type item struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
	}
	out := make([]item, 0, len(records))
	for _, rec := range records {
		out = append(out, item{Question: rec.Question, Answer: rec.Answer})
	}
	writeJSON(w, http.StatusOK, out)
}
