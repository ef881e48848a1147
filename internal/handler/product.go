package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/smartwarranty/warranty-go/internal/middleware"
	"github.com/smartwarranty/warranty-go/internal/model"
	"github.com/smartwarranty/warranty-go/internal/service"
)

// ProductHandler handles HTTP requests for product operations.
type ProductHandler struct {
	service *service.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(svc *service.ProductService) *ProductHandler {
	return &ProductHandler{service: svc}
}

// HandleCreate handles POST /api/v1/products requests.
func (h *ProductHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.CreateProductRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNameRequired),
			errors.Is(err, service.ErrPurchaseDateRequired),
			errors.Is(err, service.ErrInvalidPurchaseDate),
			errors.Is(err, service.ErrInvalidWarrantyDays):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, service.ErrOwnerNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleGet handles GET /api/v1/products/{product_id} requests.
func (h *ProductHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, productID, ok := h.callerAndProduct(w, r)
	if !ok {
		return
	}

	resp, err := h.service.Get(r.Context(), userID, productID)
	if err != nil {
		h.writeProductError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleUpdate handles PUT /api/v1/products/{product_id} requests.
// Only the product name is mutable.
func (h *ProductHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, productID, ok := h.callerAndProduct(w, r)
	if !ok {
		return
	}

	var req model.UpdateProductRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.Rename(r.Context(), userID, productID, req)
	if err != nil {
		if errors.Is(err, service.ErrProductNameRequired) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		h.writeProductError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleDelete handles DELETE /api/v1/products/{product_id} requests.
func (h *ProductHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, productID, ok := h.callerAndProduct(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, productID); err != nil {
		h.writeProductError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleQRCode handles GET /api/v1/products/{product_id}/qrcode requests,
// responding with the PNG image encoding the product ID.
func (h *ProductHandler) HandleQRCode(w http.ResponseWriter, r *http.Request) {
	userID, productID, ok := h.callerAndProduct(w, r)
	if !ok {
		return
	}

	img, err := h.service.QRCode(r.Context(), userID, productID)
	if err != nil {
		h.writeProductError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(img)
}

// HandleDashboard handles GET /api/v1/dashboard requests.
func (h *ProductHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	resp, err := h.service.Dashboard(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// callerAndProduct extracts the caller identity and the product_id URL
// parameter, writing the error response itself on failure.
func (h *ProductHandler) callerAndProduct(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return 0, 0, false
	}

	productID, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || productID <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid product id"))
		return 0, 0, false
	}

	return userID, productID, true
}

func (h *ProductHandler) writeProductError(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrProductNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		return
	}
	writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
}
