package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"six-cities-api/internal/config"
	"six-cities-api/internal/handler"
	"six-cities-api/internal/middleware"
)

type Handlers struct {
	User    *handler.UserHandler
	Offer   *handler.OfferHandler
	Comment *handler.CommentHandler
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, handlers Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))
		// The passthrough gate runs on every API route; it attaches an
		// identity when a token is presented and rejects bad tokens, but
		// never forces authentication by itself.
		api.Use(authMiddleware.Authenticate)

		api.Route("/user", func(user chi.Router) {
			user.With(authMiddleware.RequireIdentity).Get("/", handlers.User.Current)
			user.Post("/register", handlers.User.Register)
			user.Post("/login", handlers.User.Login)
			user.With(authMiddleware.RequireIdentity).Post("/logout", handlers.User.Logout)
			user.With(authMiddleware.RequireIdentity).Get("/favourite", handlers.User.ListFavourites)
			user.With(authMiddleware.RequireIdentity).Post("/favourite/{offerId}", handlers.User.AddFavourite)
			user.With(authMiddleware.RequireIdentity).Delete("/favourite/{offerId}", handlers.User.RemoveFavourite)
		})

		api.Route("/offers", func(offers chi.Router) {
			offers.Get("/", handlers.Offer.List)
			offers.With(authMiddleware.RequireIdentity).Post("/", handlers.Offer.Create)
			offers.Get("/premium/{city}", handlers.Offer.ListPremium)
			offers.Get("/{offerId}", handlers.Offer.Get)
			offers.With(authMiddleware.RequireIdentity).Put("/{offerId}", handlers.Offer.Update)
			offers.With(authMiddleware.RequireIdentity).Delete("/{offerId}", handlers.Offer.Delete)
		})

		api.Route("/comments", func(comments chi.Router) {
			comments.With(authMiddleware.RequireIdentity).Post("/", handlers.Comment.Create)
			comments.Get("/{offerId}", handlers.Comment.ListByOffer)
		})
	})

	return r
}
