package http

import (
	"log/slog"
	"net/http"

	"github.com/Humanoid-1/Web-backend/internal/service"
	"github.com/Humanoid-1/Web-backend/pkg/httputil"
	"github.com/Humanoid-1/Web-backend/pkg/validator"
)

type CreateBrandRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type brandsResponse struct {
	Success bool     `json:"success"`
	Brands  []string `json:"brands"`
}

// BrandHandler serves the brand list.
type BrandHandler struct {
	service *service.BrandService
	logger  *slog.Logger
}

func NewBrandHandler(svc *service.BrandService, logger *slog.Logger) *BrandHandler {
	return &BrandHandler{service: svc, logger: logger}
}

func (h *BrandHandler) List(w http.ResponseWriter, r *http.Request) {
	names, err := h.service.Names(r.Context())
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, brandsResponse{Success: true, Brands: names})
}

func (h *BrandHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBrandRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	b, err := h.service.Create(r.Context(), req.Name)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeData(w, http.StatusCreated, b)
}

type CreateSliderRequest struct {
	ImageURL string `json:"image_url" validate:"required"`
	Title    string `json:"title" validate:"max=200"`
	Link     string `json:"link" validate:"max=500"`
}

// SliderHandler serves home-page sliders.
type SliderHandler struct {
	service *service.SliderService
	logger  *slog.Logger
}

func NewSliderHandler(svc *service.SliderService, logger *slog.Logger) *SliderHandler {
	return &SliderHandler{service: svc, logger: logger}
}

func (h *SliderHandler) List(w http.ResponseWriter, r *http.Request) {
	sliders, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeData(w, http.StatusOK, sliders)
}

func (h *SliderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSliderRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	s, err := h.service.Create(r.Context(), req.ImageURL, req.Title, req.Link)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeData(w, http.StatusCreated, s)
}

// ContactHandler accepts contact-form submissions.
type ContactHandler struct {
	service *service.ContactService
	logger  *slog.Logger
}

func NewContactHandler(svc *service.ContactService, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{service: svc, logger: logger}
}

func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var in service.ContactInput
	if err := decode(r, &in); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	if _, err := h.service.Submit(r.Context(), in); err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	httputil.WriteMessage(w, http.StatusCreated, "Thank you for contacting us!")
}
