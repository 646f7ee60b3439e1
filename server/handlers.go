package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/rushteam/craftrec/core"
	"github.com/rushteam/craftrec/recommend"
)

var validate = validator.New()

// maxBodyBytes 限制请求体大小
const maxBodyBytes = 1 << 20

type clickRequest struct {
	UserID    string `json:"user_id" validate:"required,max=128"`
	ProductID *int64 `json:"product_id" validate:"required"`
}

type preferenceRequest struct {
	UserID string   `json:"user_id" validate:"required,max=128"`
	City   string   `json:"city,omitempty" validate:"omitempty,max=128"`
	State  string   `json:"state,omitempty" validate:"omitempty,max=128"`
	Tags   []string `json:"tags,omitempty" validate:"omitempty,max=64,dive,max=64"`
}

type statusResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req recommend.Request
	if !s.decode(w, r, &req, true) {
		return
	}
	s.respondJSON(w, http.StatusOK, s.rec.Recommend(r.Context(), &req))
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	var req clickRequest
	if !s.decode(w, r, &req, false) {
		return
	}
	if err := s.rec.Click(r.Context(), req.UserID, *req.ProductID); err != nil {
		s.respondDomainError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

func (s *Server) handleSavePreferences(w http.ResponseWriter, r *http.Request) {
	var req preferenceRequest
	if !s.decode(w, r, &req, false) {
		return
	}
	err := s.rec.SavePreferences(r.Context(), &core.UserPreference{
		UserID: req.UserID,
		City:   req.City,
		State:  req.State,
		Tags:   req.Tags,
	})
	if err != nil {
		s.respondDomainError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, statusResponse{Status: "preferences_saved"})
}

func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	pref, err := s.rec.GetPreferences(r.Context(), chi.URLParam(r, "user_id"))
	if err != nil {
		s.respondDomainError(w, err)
		return
	}
	if pref == nil {
		s.respondJSON(w, http.StatusOK, statusResponse{Status: "no_preferences"})
		return
	}
	s.respondJSON(w, http.StatusOK, pref)
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	limit := recommend.DefaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.respondError(w, http.StatusBadRequest, core.ErrorCodeInvalidInput, "limit must be a positive integer")
			return
		}
		limit = n
	}
	s.respondJSON(w, http.StatusOK, s.rec.ListProducts(r.URL.Query().Get("q"), limit))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, s.rec.Health())
}

// decode 解析并校验 JSON 请求体；allowEmpty 为 true 时空请求体视为 {}。
// 失败时已写出 400 响应并返回 false。
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any, allowEmpty bool) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if !(allowEmpty && errors.Is(err, io.EOF)) {
			s.respondError(w, http.StatusBadRequest, core.ErrorCodeInvalidInput, "invalid JSON body")
			return false
		}
	}
	if err := validate.Struct(v); err != nil {
		s.respondError(w, http.StatusBadRequest, core.ErrorCodeInvalidInput, validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, strings.ToLower(fe.Field())+": failed "+fe.Tag())
	}
	return strings.Join(parts, "; ")
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.log.Error().Err(err).Msg("marshal response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		s.log.Debug().Err(err).Msg("write response")
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, code, message string) {
	s.respondJSON(w, status, errorResponse{Status: "error", Code: code, Message: message})
}

// respondDomainError 按 DomainError 的 Code 选择状态码，其余错误一律 500。
func (s *Server) respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case core.IsInvalidInput(err):
		s.respondError(w, http.StatusBadRequest, core.ErrorCodeInvalidInput, err.Error())
	case core.IsNotFound(err):
		s.respondError(w, http.StatusNotFound, core.ErrorCodeNotFound, err.Error())
	case core.IsUnavailable(err):
		s.respondError(w, http.StatusServiceUnavailable, core.ErrorCodeUnavailable, err.Error())
	default:
		s.log.Error().Err(err).Msg("request failed")
		s.respondError(w, http.StatusInternalServerError, core.ErrorCodeInternalError, "internal error")
	}
}
