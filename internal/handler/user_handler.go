package handler

import (
	"encoding/json"
	"net/http"

	"six-cities-api/internal/middleware"
	"six-cities-api/internal/model"
	"six-cities-api/internal/service"
	"six-cities-api/pkg/apierror"
)

type UserHandler struct {
	auth      *service.AuthService
	favorites *service.FavoritesService
	offers    *service.OfferService
}

func NewUserHandler(auth *service.AuthService, favorites *service.FavoritesService, offers *service.OfferService) *UserHandler {
	return &UserHandler{auth: auth, favorites: favorites, offers: offers}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body", ""))
		return
	}

	if fields := payload.Validate(); len(fields) > 0 {
		writeValidationErrors(w, fields)
		return
	}

	user, err := h.auth.Register(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, user, nil)
}

// Login replies 204 with the issued token in the Authorization response
// header; the body stays empty.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body", ""))
		return
	}

	if fields := payload.Validate(); len(fields) > 0 {
		writeValidationErrors(w, fields)
		return
	}

	token, err := h.auth.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Authorization", token)
	writeNoContent(w)
}

// Logout removes the presented token from the store; the identity guard has
// already run, so the header is known to hold a live token.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.BearerToken(r)
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	if err := h.auth.Logout(r.Context(), token); err != nil {
		writeError(w, err)
		return
	}

	writeNoContent(w)
}

// Current returns the profile of the authenticated caller.
func (h *UserHandler) Current(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	user, err := h.auth.CurrentUser(r.Context(), identity.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, user, nil)
}

func (h *UserHandler) ListFavourites(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	offers, err := h.favorites.List(r.Context(), identity.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, offers, nil)
}

func (h *UserHandler) AddFavourite(w http.ResponseWriter, r *http.Request) {
	identity, offerID, err := h.favouriteTarget(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.favorites.Add(r.Context(), identity.UserID, offerID); err != nil {
		writeError(w, err)
		return
	}

	writeNoContent(w)
}

func (h *UserHandler) RemoveFavourite(w http.ResponseWriter, r *http.Request) {
	identity, offerID, err := h.favouriteTarget(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.favorites.Remove(r.Context(), identity.UserID, offerID); err != nil {
		writeError(w, err)
		return
	}

	writeNoContent(w)
}

// favouriteTarget resolves the caller and the offer a favourite mutation
// points at: id format first, then existence, per the route contract.
func (h *UserHandler) favouriteTarget(r *http.Request) (model.Identity, string, error) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		return model.Identity{}, "", model.ErrUnauthorized
	}

	offerID, err := idParam(r, "offerId")
	if err != nil {
		return model.Identity{}, "", err
	}

	exists, err := h.offers.Exists(r.Context(), offerID)
	if err != nil {
		return model.Identity{}, "", err
	}
	if !exists {
		return model.Identity{}, "", model.ErrOfferNotFound
	}

	return identity, offerID, nil
}
