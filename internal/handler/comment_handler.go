package handler

import (
	"encoding/json"
	"net/http"

	"six-cities-api/internal/middleware"
	"six-cities-api/internal/model"
	"six-cities-api/internal/service"
	"six-cities-api/pkg/apierror"
)

type CommentHandler struct {
	comments *service.CommentService
	offers   *service.OfferService
}

func NewCommentHandler(comments *service.CommentService, offers *service.OfferService) *CommentHandler {
	return &CommentHandler{comments: comments, offers: offers}
}

// Create saves the comment and applies its rating to the offer aggregate as
// one logical operation.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	var payload model.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body", ""))
		return
	}

	if fields := payload.Validate(); len(fields) > 0 {
		writeValidationErrors(w, fields)
		return
	}

	comment, err := h.comments.Create(r.Context(), identity.UserID, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, comment, nil)
}

func (h *CommentHandler) ListByOffer(w http.ResponseWriter, r *http.Request) {
	offerID, err := idParam(r, "offerId")
	if err != nil {
		writeError(w, err)
		return
	}

	exists, err := h.offers.Exists(r.Context(), offerID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !exists {
		writeError(w, model.ErrOfferNotFound)
		return
	}

	limit := queryInt(r, "limit", service.DefaultCommentsLimit)
	offset := queryInt(r, "offset", 0)

	comments, err := h.comments.ListByOffer(r.Context(), offerID, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, comments, &model.Meta{Limit: limit, Offset: offset})
}
