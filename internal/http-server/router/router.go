package router

import (
	"net/http"

	"photo-watermarker/internal/http-server/handler/watermark"
	"photo-watermarker/internal/http-server/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/wb-go/wbf/zlog"
)

type Handler struct {
	WatermarkHandler *watermark.WatermarkHandler
}

func SetupRouter(h *Handler, logger *zlog.Zerolog) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))

	r.Route("/api", func(r chi.Router) {
		r.Post("/watermark", h.WatermarkHandler.Watermark)
		r.Get("/layouts", h.WatermarkHandler.ListLayouts)

		r.Route("/jobs", func(r chi.Router) {
			r.Post("/", h.WatermarkHandler.SubmitJob)
			r.Get("/{id}", h.WatermarkHandler.GetJob)
			r.Get("/{id}/result", h.WatermarkHandler.GetJobResult)
		})

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"ok"}`))
		})
	})

	return r
}
