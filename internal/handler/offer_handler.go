package handler

import (
	"encoding/json"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"six-cities-api/internal/middleware"
	"six-cities-api/internal/model"
	"six-cities-api/internal/service"
	"six-cities-api/pkg/apierror"
)

type OfferHandler struct {
	offers *service.OfferService
}

func NewOfferHandler(offers *service.OfferService) *OfferHandler {
	return &OfferHandler{offers: offers}
}

func (h *OfferHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", service.DefaultOffersLimit)
	offset := queryInt(r, "offset", 0)

	offers, err := h.offers.List(r.Context(), limit, offset, viewerID(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, offers, &model.Meta{Limit: limit, Offset: offset})
}

func (h *OfferHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	var payload model.OfferPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body", ""))
		return
	}

	if fields := payload.Validate(); len(fields) > 0 {
		writeValidationErrors(w, fields)
		return
	}

	offer, err := h.offers.Create(r.Context(), identity.UserID, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, offer, nil)
}

func (h *OfferHandler) Get(w http.ResponseWriter, r *http.Request) {
	offerID, err := idParam(r, "offerId")
	if err != nil {
		writeError(w, err)
		return
	}

	offer, err := h.offers.Get(r.Context(), offerID, viewerID(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, offer, nil)
}

func (h *OfferHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	offerID, err := idParam(r, "offerId")
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.OfferPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body", ""))
		return
	}

	if fields := payload.Validate(); len(fields) > 0 {
		writeValidationErrors(w, fields)
		return
	}

	offer, err := h.offers.Update(r.Context(), offerID, identity.UserID, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, offer, nil)
}

func (h *OfferHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	offerID, err := idParam(r, "offerId")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.offers.Delete(r.Context(), offerID, identity.UserID); err != nil {
		writeError(w, err)
		return
	}

	writeNoContent(w)
}

func (h *OfferHandler) ListPremium(w http.ResponseWriter, r *http.Request) {
	city := chi.URLParam(r, "city")
	if !slices.Contains(model.Cities, city) {
		writeError(w, apierror.BadRequest("unknown city", city))
		return
	}

	limit := queryInt(r, "limit", service.DefaultOffersLimit)
	offset := queryInt(r, "offset", 0)

	offers, err := h.offers.ListPremiumByCity(r.Context(), city, limit, offset, viewerID(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, offers, &model.Meta{Limit: limit, Offset: offset})
}

// viewerID is the authenticated caller when the passthrough gate attached
// one; empty for anonymous listings.
func viewerID(r *http.Request) string {
	if identity, ok := middleware.IdentityFromContext(r.Context()); ok {
		return identity.UserID
	}
	return ""
}
