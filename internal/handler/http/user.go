package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Humanoid-1/Web-backend/internal/service"
	"github.com/Humanoid-1/Web-backend/pkg/httputil"
	"github.com/Humanoid-1/Web-backend/pkg/middleware"
	"github.com/Humanoid-1/Web-backend/pkg/validator"
)

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type forgotPasswordResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
}

// UserHandler serves authentication, profile and address endpoints.
type UserHandler struct {
	service *service.UserService
	logger  *slog.Logger
}

func NewUserHandler(svc *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{service: svc, logger: logger}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in service.RegisterInput
	if err := decode(r, &in); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	res, err := h.service.Register(r.Context(), in)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeData(w, http.StatusCreated, res)
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in service.LoginInput
	if err := decode(r, &in); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	res, err := h.service.Login(r.Context(), in)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeData(w, http.StatusOK, res)
}

// Logout only acknowledges; tokens are stateless and expire on their own.
func (h *UserHandler) Logout(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteMessage(w, http.StatusOK, "Logged out successfully")
}

func (h *UserHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	token, err := h.service.ForgotPassword(r.Context(), req.Email)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, forgotPasswordResponse{
		Success: true,
		Message: "Password reset token generated",
		Token:   token,
	})
}

func (h *UserHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var in service.ResetPasswordInput
	if err := decode(r, &in); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	if err := h.service.ResetPassword(r.Context(), in); err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "Password has been reset")
}

func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var in service.ChangePasswordInput
	if err := decode(r, &in); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	if err := h.service.ChangePassword(r.Context(), middleware.UserIDFromContext(r.Context()), in); err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "Password changed successfully")
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.service.Profile(r.Context(), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeData(w, http.StatusOK, u)
}

func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var in service.UpdateProfileInput
	if err := decode(r, &in); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	u, err := h.service.UpdateProfile(r.Context(), middleware.UserIDFromContext(r.Context()), in)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeData(w, http.StatusOK, u)
}

func (h *UserHandler) Addresses(w http.ResponseWriter, r *http.Request) {
	addrs, err := h.service.Addresses(r.Context(), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeData(w, http.StatusOK, addrs)
}

func (h *UserHandler) AddAddress(w http.ResponseWriter, r *http.Request) {
	var in service.AddressInput
	if err := decode(r, &in); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	addr, err := h.service.AddAddress(r.Context(), middleware.UserIDFromContext(r.Context()), in)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeData(w, http.StatusCreated, addr)
}

func (h *UserHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.service.DeleteAddress(r.Context(), middleware.UserIDFromContext(r.Context()), id.String()); err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "Address deleted")
}
