package httpserver

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/speechauth/internal/common"
)

// POST /auth/register
// Body: { "email": "...", "password": "<client-side hash>", "name": "..." }
func (s *HTTPServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	if req.Email == "" || req.Password == "" || req.Name == "" {
		s.metrics.RecordAuthEvent("register", "invalid")
		writeError(w, http.StatusBadRequest, msgRegisterFields)
		return
	}

	s.logger.Info(ctx, "Registration request", "email", req.Email)

	sess, err := s.accounts.Register(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorInvalidInput):
			s.metrics.RecordAuthEvent("register", "invalid")
			writeError(w, http.StatusBadRequest, msgInvalidEmail)
		case errors.Is(err, common.ErrorAlreadyExists):
			s.metrics.RecordAuthEvent("register", "duplicate")
			writeError(w, http.StatusBadRequest, msgUserExists)
		default:
			s.metrics.RecordAuthEvent("register", "error")
			s.logger.Error(ctx, err.Error())
			writeError(w, http.StatusInternalServerError, msgInternal)
		}
		return
	}

	s.metrics.RecordAuthEvent("register", "success")
	writeJSON(w, http.StatusOK, sessionResponse{
		Status:  statusSuccess,
		Message: msgRegisteredOK,
		User:    publicUser{Email: sess.Account.Email, Name: sess.Account.Name},
		Token:   sess.Token,
	})
}

// POST /auth/login
// Body: { "email": "...", "password": "<client-side hash>" }
func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	if req.Email == "" || req.Password == "" {
		s.metrics.RecordAuthEvent("login", "invalid")
		writeError(w, http.StatusBadRequest, msgLoginFields)
		return
	}

	sess, err := s.accounts.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorUnauthorized):
			s.metrics.RecordAuthEvent("login", "rejected")
			writeError(w, http.StatusUnauthorized, msgInvalidCredentials)
		case errors.Is(err, common.ErrorInvalidInput):
			s.metrics.RecordAuthEvent("login", "invalid")
			writeError(w, http.StatusBadRequest, msgLoginFields)
		default:
			s.metrics.RecordAuthEvent("login", "error")
			s.logger.Error(ctx, err.Error())
			writeError(w, http.StatusInternalServerError, msgInternal)
		}
		return
	}

	s.metrics.RecordAuthEvent("login", "success")
	writeJSON(w, http.StatusOK, sessionResponse{
		Status:  statusSuccess,
		Message: msgLoginOK,
		User:    publicUser{Email: sess.Account.Email, Name: sess.Account.Name},
		Token:   sess.Token,
	})
}

// POST /auth/verify (behind RequireAuth)
func (s *HTTPServer) handleVerify(w http.ResponseWriter, r *http.Request) {
	account, ok := AccountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, msgInvalidToken)
		return
	}

	writeJSON(w, http.StatusOK, verifyResponse{
		Status: statusSuccess,
		User:   publicUser{Email: account.Email, Name: account.Name},
	})
}

// GET /auth/users
func (s *HTTPServer) handleListUsers(w http.ResponseWriter, r *http.Request) {
	all, err := s.accounts.List(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), err.Error())
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	users := make([]listedUser, 0, len(all))
	for _, a := range all {
		users = append(users, listedUser{Email: a.Email, Name: a.Name, CreatedAt: a.CreatedAt})
	}

	writeJSON(w, http.StatusOK, usersResponse{
		Status:     statusSuccess,
		TotalUsers: len(users),
		Users:      users,
	})
}

// POST /translate
// Body: { "text": "...", "target_language": "es", "source_language": "en" }
func (s *HTTPServer) handleTranslate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req translateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	if req.Text == "" {
		writeError(w, http.StatusBadRequest, msgNoText)
		return
	}

	result, err := s.translations.Translate(ctx, req.Text, req.SourceLanguage, req.TargetLanguage)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorInvalidInput):
			writeError(w, http.StatusBadRequest, msgNoText)
		case errors.Is(err, common.ErrTranslatorUnavailable):
			writeError(w, http.StatusServiceUnavailable, msgTranslatorDown)
		default:
			s.logger.Error(ctx, "translation failed", "error", err)
			writeError(w, http.StatusInternalServerError, msgInternal)
		}
		return
	}

	writeJSON(w, http.StatusOK, translateResponse{
		OriginalText:   result.OriginalText,
		TranslatedText: result.TranslatedText,
		SourceLanguage: result.SourceLanguage,
		TargetLanguage: result.TargetLanguage,
		Status:         statusSuccess,
	})
}

// GET /healthz
func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
