package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alghadeer/ledger/internal/entity"
	"github.com/alghadeer/ledger/internal/service"
)

type Service interface {
	CreateClient(ctx context.Context, p service.CreateClientParams) (entity.Client, error)
	ClientByID(ctx context.Context, id string) (entity.Client, error)
	ClientsList(ctx context.Context) ([]entity.Client, error)
	UpdateClient(ctx context.Context, id string, p service.CreateClientParams) (entity.Client, error)
	SoftDeleteClient(ctx context.Context, id string) error

	CreateReceipt(ctx context.Context, p service.CreateReceiptParams) (entity.Receipt, error)
	ReceiptsList(ctx context.Context) ([]entity.Receipt, error)
	ReceiptsByClientID(ctx context.Context, clientID string) ([]entity.Receipt, error)
	UpdateReceipt(ctx context.Context, id string, p service.UpdateReceiptParams) (entity.Receipt, error)
	SoftDeleteReceipt(ctx context.Context, id string) error

	CreatePayment(ctx context.Context, p service.CreatePaymentParams) (entity.Payment, error)
	PaymentsList(ctx context.Context) ([]entity.Payment, error)
	PaymentsByClientID(ctx context.Context, clientID string) ([]entity.Payment, error)
	UpdatePayment(ctx context.Context, id string, p service.UpdatePaymentParams) (entity.Payment, error)
	SoftDeletePayment(ctx context.Context, id string) error

	ClientAccount(ctx context.Context, clientID string) (service.Account, error)
	Stats(ctx context.Context) (service.Stats, error)

	TrashList(ctx context.Context) ([]entity.TrashEntry, error)
	Restore(ctx context.Context, trashID string) (entity.TrashEntry, error)
	Purge(ctx context.Context, trashID string) error
	PurgeAll(ctx context.Context) error
}

type Handler struct {
	s Service
}

func NewHandler(s Service) *Handler {
	return &Handler{
		s,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	_, err := w.Write([]byte("ok\n"))
	if err != nil {
		SendErr(ctx, w, http.StatusInternalServerError, err, errInternalText)
	}
}

type ClientRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
}

func (h *Handler) GetClients(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clients, err := h.s.ClientsList(ctx)
	if err != nil {
		SendErr(ctx, w, http.StatusInternalServerError, err, "failed to list clients")
		return
	}

	SendJSON(ctx, w, http.StatusOK, clients)
}

func (h *Handler) GetClient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	client, err := h.s.ClientByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			SendErr(ctx, w, http.StatusNotFound, err, "client not found")
			return
		}

		SendErr(ctx, w, http.StatusInternalServerError, err, errInternalText)

		return
	}

	SendJSON(ctx, w, http.StatusOK, client)
}

func (h *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ClientRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, "malformed request body")
		return
	}

	params := service.CreateClientParams{
		Name:    req.Name,
		Phone:   req.Phone,
		Company: req.Company,
	}

	err = service.ValidateCreateClientParams(params)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, "malformed request body")
		return
	}

	client, err := h.s.CreateClient(ctx, params)
	if err != nil {
		SendErr(ctx, w, http.StatusInternalServerError, err, "failed to create client")
		return
	}

	SendJSON(ctx, w, http.StatusOK, client)
}

func (h *Handler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ClientRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, "malformed request body")
		return
	}

	params := service.CreateClientParams{
		Name:    req.Name,
		Phone:   req.Phone,
		Company: req.Company,
	}

	err = service.ValidateCreateClientParams(params)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, "malformed request body")
		return
	}

	client, err := h.s.UpdateClient(ctx, chi.URLParam(r, "id"), params)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			SendErr(ctx, w, http.StatusNotFound, err, "client not found")
			return
		}

		SendErr(ctx, w, http.StatusInternalServerError, err, "failed to update client")

		return
	}

	SendJSON(ctx, w, http.StatusOK, client)
}

func (h *Handler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	err := h.s.SoftDeleteClient(ctx, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			SendErr(ctx, w, http.StatusNotFound, err, "client not found")
			return
		}

		SendErr(ctx, w, http.StatusInternalServerError, err, "failed to delete client")

		return
	}

	SendJSON(ctx, w, http.StatusOK, ResponseMessage{Message: "client moved to trash"})
}

type ReceiptRequest struct {
	ClientID string  `json:"client_id"`
	Date     string  `json:"date"`
	Driver   string  `json:"driver"`
	Car      string  `json:"car"`
	City     string  `json:"city"`
	Note     string  `json:"note"`
	Amount   float64 `json:"amount"`
}

func (h *Handler) GetReceipts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	receipts, err := h.s.ReceiptsList(ctx)
	if err != nil {
		SendErr(ctx, w, http.StatusInternalServerError, err, "failed to list receipts")
		return
	}

	SendJSON(ctx, w, http.StatusOK, receipts)
}

func (h *Handler) GetClientReceipts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	receipts, err := h.s.ReceiptsByClientID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		SendErr(ctx, w, http.StatusInternalServerError, err, "failed to list receipts")
		return
	}

	SendJSON(ctx, w, http.StatusOK, receipts)
}

func (h *Handler) CreateReceipt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ReceiptRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, "malformed request body")
		return
	}

	params := service.CreateReceiptParams{
		ClientID: req.ClientID,
		Date:     req.Date,
		Driver:   req.Driver,
		Car:      req.Car,
		City:     req.City,
		Note:     req.Note,
		Amount:   req.Amount,
	}

	err = service.ValidateCreateReceiptParams(params)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, "malformed request body")
		return
	}

	receipt, err := h.s.CreateReceipt(ctx, params)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			SendErr(ctx, w, http.StatusNotFound, err, "client not found")
			return
		}

		SendErr(ctx, w, http.StatusInternalServerError, err, "failed to create receipt")

		return
	}

	SendJSON(ctx, w, http.StatusOK, receipt)
}

type UpdateReceiptRequest struct {
	Date   string  `json:"date"`
	Driver string  `json:"driver"`
	Car    string  `json:"car"`
	City   string  `json:"city"`
	Note   string  `json:"note"`
	Amount float64 `json:"amount"`
}

func (h *Handler) UpdateReceipt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req UpdateReceiptRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, "malformed request body")
		return
	}

	params := service.UpdateReceiptParams{
		Date:   req.Date,
		Driver: req.Driver,
		Car:    req.Car,
		City:   req.City,
		Note:   req.Note,
		Amount: req.Amount,
	}

	err = service.ValidateUpdateReceiptParams(params)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, "malformed request body")
		return
	}

	receipt, err := h.s.UpdateReceipt(ctx, chi.URLParam(r, "id"), params)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			SendErr(ctx, w, http.StatusNotFound, err, "receipt not found")
			return
		}

		SendErr(ctx, w, http.StatusInternalServerError, err, "failed to update receipt")

		return
	}

	SendJSON(ctx, w, http.StatusOK, receipt)
}

func (h *Handler) DeleteReceipt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	err := h.s.SoftDeleteReceipt(ctx, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			SendErr(ctx, w, http.StatusNotFound, err, "receipt not found")
			return
		}

		SendErr(ctx, w, http.StatusInternalServerError, err, "failed to delete receipt")

		return
	}

	SendJSON(ctx, w, http.StatusOK, ResponseMessage{Message: "receipt moved to trash"})
}

type PaymentRequest struct {
	ClientID string  `json:"client_id"`
	Date     string  `json:"date"`
	Method   string  `json:"method"`
	Note     string  `json:"note"`
	Amount   float64 `json:"amount"`
}

func (h *Handler) GetPayments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	payments, err := h.s.PaymentsList(ctx)
	if err != nil {
		SendErr(ctx, w, http.StatusInternalServerError, err, "failed to list payments")
		return
	}

	SendJSON(ctx, w, http.StatusOK, payments)
}

func (h *Handler) GetClientPayments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	payments, err := h.s.PaymentsByClientID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		SendErr(ctx, w, http.StatusInternalServerError, err, "failed to list payments")
		return
	}

	SendJSON(ctx, w, http.StatusOK, payments)
}

func (h *Handler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req PaymentRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, "malformed request body")
		return
	}

	params := service.CreatePaymentParams{
		ClientID: req.ClientID,
		Date:     req.Date,
		Method:   req.Method,
		Note:     req.Note,
		Amount:   req.Amount,
	}

	err = service.ValidateCreatePaymentParams(params)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, "malformed request body")
		return
	}

	payment, err := h.s.CreatePayment(ctx, params)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			SendErr(ctx, w, http.StatusNotFound, err, "client not found")
			return
		}

		SendErr(ctx, w, http.StatusInternalServerError, err, "failed to create payment")

		return
	}

	SendJSON(ctx, w, http.StatusOK, payment)
}

type UpdatePaymentRequest struct {
	Date   string  `json:"date"`
	Method string  `json:"method"`
	Note   string  `json:"note"`
	Amount float64 `json:"amount"`
}

func (h *Handler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req UpdatePaymentRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, "malformed request body")
		return
	}

	params := service.UpdatePaymentParams{
		Date:   req.Date,
		Method: req.Method,
		Note:   req.Note,
		Amount: req.Amount,
	}

	err = service.ValidateUpdatePaymentParams(params)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, "malformed request body")
		return
	}

	payment, err := h.s.UpdatePayment(ctx, chi.URLParam(r, "id"), params)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			SendErr(ctx, w, http.StatusNotFound, err, "payment not found")
			return
		}

		SendErr(ctx, w, http.StatusInternalServerError, err, "failed to update payment")

		return
	}

	SendJSON(ctx, w, http.StatusOK, payment)
}

func (h *Handler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	err := h.s.SoftDeletePayment(ctx, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			SendErr(ctx, w, http.StatusNotFound, err, "payment not found")
			return
		}

		SendErr(ctx, w, http.StatusInternalServerError, err, "failed to delete payment")

		return
	}

	SendJSON(ctx, w, http.StatusOK, ResponseMessage{Message: "payment moved to trash"})
}

func (h *Handler) GetClientAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	account, err := h.s.ClientAccount(ctx, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			SendErr(ctx, w, http.StatusNotFound, err, "client not found")
			return
		}

		SendErr(ctx, w, http.StatusInternalServerError, err, "failed to build account statement")

		return
	}

	SendJSON(ctx, w, http.StatusOK, account)
}

func (h *Handler) GetTrash(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	entries, err := h.s.TrashList(ctx)
	if err != nil {
		SendErr(ctx, w, http.StatusInternalServerError, err, "failed to list trash")
		return
	}

	SendJSON(ctx, w, http.StatusOK, entries)
}

func (h *Handler) RestoreFromTrash(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	_, err := h.s.Restore(ctx, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			SendErr(ctx, w, http.StatusNotFound, err, "trash entry not found")
			return
		}

		if errors.Is(err, entity.ErrAlreadyExists) {
			SendErr(ctx, w, http.StatusConflict, err, "a record with this id already exists")
			return
		}

		SendErr(ctx, w, http.StatusInternalServerError, err, "failed to restore record")

		return
	}

	SendJSON(ctx, w, http.StatusOK, ResponseMessage{Message: "record restored"})
}

func (h *Handler) PurgeTrashEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	err := h.s.Purge(ctx, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			SendErr(ctx, w, http.StatusNotFound, err, "trash entry not found")
			return
		}

		SendErr(ctx, w, http.StatusInternalServerError, err, "failed to purge trash entry")

		return
	}

	SendJSON(ctx, w, http.StatusOK, ResponseMessage{Message: "trash entry permanently deleted"})
}

func (h *Handler) EmptyTrash(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	err := h.s.PurgeAll(ctx)
	if err != nil {
		SendErr(ctx, w, http.StatusInternalServerError, err, "failed to empty trash")
		return
	}

	SendJSON(ctx, w, http.StatusOK, ResponseMessage{Message: "trash emptied"})
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := h.s.Stats(ctx)
	if err != nil {
		SendErr(ctx, w, http.StatusInternalServerError, err, "failed to compute stats")
		return
	}

	SendJSON(ctx, w, http.StatusOK, stats)
}
