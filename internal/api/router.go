package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func NewRouter(h *Handler, mw *Middleware) http.Handler {
	router := chi.NewRouter()

	router.Use(mw.Log, mw.Recover, mw.Cors)

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)

		r.Route("/clients", func(r chi.Router) {
			r.Get("/", h.GetClients)
			r.Post("/", h.CreateClient)
			r.Get("/{id}", h.GetClient)
			r.Put("/{id}", h.UpdateClient)
			r.Delete("/{id}", h.DeleteClient)

			r.Get("/{id}/receipts", h.GetClientReceipts)
			r.Get("/{id}/payments", h.GetClientPayments)
			r.Get("/{id}/account", h.GetClientAccount)
		})

		r.Route("/receipts", func(r chi.Router) {
			r.Get("/", h.GetReceipts)
			r.Post("/", h.CreateReceipt)
			r.Put("/{id}", h.UpdateReceipt)
			r.Delete("/{id}", h.DeleteReceipt)
		})

		r.Route("/payments", func(r chi.Router) {
			r.Get("/", h.GetPayments)
			r.Post("/", h.CreatePayment)
			r.Put("/{id}", h.UpdatePayment)
			r.Delete("/{id}", h.DeletePayment)
		})

		r.Route("/trash", func(r chi.Router) {
			r.Get("/", h.GetTrash)
			r.Post("/{id}/restore", h.RestoreFromTrash)
			r.Delete("/{id}", h.PurgeTrashEntry)
			r.Delete("/", h.EmptyTrash)
		})

		r.Get("/stats", h.GetStats)
	})

	return router
}
