package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/oizumi98/kaimono-api/internal/http/analysis"
	"github.com/oizumi98/kaimono-api/internal/http/auth"
	"github.com/oizumi98/kaimono-api/internal/http/categorize"
	"github.com/oizumi98/kaimono-api/internal/http/export"
	"github.com/oizumi98/kaimono-api/internal/http/importcsv"
	"github.com/oizumi98/kaimono-api/internal/http/purchase"
)

func New(
	jwtSecret string,
	analysisV1 *analysis.Handler,
	purchasesV1 *purchase.Handler,
	importV1 *importcsv.Handler,
	exportV1 *export.Handler,
	categorizeV1 *categorize.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware(jwtSecret))

		r.Route("/analysis", analysisV1.Routes)

		r.Route("/purchases", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			purchasesV1.Routes(r)
		})

		r.Route("/import", importV1.Routes)

		r.Route("/export", exportV1.Routes)

		r.Route("/categories", func(r chi.Router) {
			categorizeV1.Routes(r)
		})
	})

	return router
}
