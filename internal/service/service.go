package service

import (
	"context"
	"fmt"

	"github.com/alghadeer/ledger/internal/entity"
)

type Repository interface {
	CreateClient(ctx context.Context, c entity.Client) error
	ClientByID(ctx context.Context, id string) (entity.Client, error)
	ClientsList(ctx context.Context) ([]entity.Client, error)
	UpdateClient(ctx context.Context, id, name, phone, company string) error
	DeleteClient(ctx context.Context, id string) error
	CountClients(ctx context.Context) (int64, error)

	CreateReceipt(ctx context.Context, rec entity.Receipt) error
	ReceiptByID(ctx context.Context, id string) (entity.Receipt, error)
	ReceiptsList(ctx context.Context) ([]entity.Receipt, error)
	ReceiptsByClientID(ctx context.Context, clientID string) ([]entity.Receipt, error)
	UpdateReceipt(ctx context.Context, id string, rec entity.Receipt) error
	DeleteReceipt(ctx context.Context, id string) error
	DeleteReceiptsByClientID(ctx context.Context, clientID string) error
	ReceiptsStats(ctx context.Context) (int64, float64, error)

	CreatePayment(ctx context.Context, p entity.Payment) error
	PaymentByID(ctx context.Context, id string) (entity.Payment, error)
	PaymentsList(ctx context.Context) ([]entity.Payment, error)
	PaymentsByClientID(ctx context.Context, clientID string) ([]entity.Payment, error)
	UpdatePayment(ctx context.Context, id string, p entity.Payment) error
	DeletePayment(ctx context.Context, id string) error
	DeletePaymentsByClientID(ctx context.Context, clientID string) error
	PaymentsStats(ctx context.Context) (int64, float64, error)

	CreateTrashEntry(ctx context.Context, e entity.TrashEntry) error
	TrashEntryByID(ctx context.Context, id string) (entity.TrashEntry, error)
	TrashList(ctx context.Context) ([]entity.TrashEntry, error)
	DeleteTrashEntry(ctx context.Context, id string) error
	PurgeTrash(ctx context.Context) error
	PurgeExpiredTrash(ctx context.Context, before string) (int64, error)
}

// Producer publishes record lifecycle events. Publishing is fire and
// forget; failures are logged by the producer and never fail a request.
type Producer interface {
	RecordTrashed(ctx context.Context, id string, itemType entity.ItemType)
	RecordRestored(ctx context.Context, id string, itemType entity.ItemType)
	RecordPurged(ctx context.Context, id string, itemType entity.ItemType)
}

type Service struct {
	repo     Repository
	producer Producer
}

// New wires the service. producer may be nil when no broker is configured.
func New(repo Repository, producer Producer) *Service {
	return &Service{
		repo:     repo,
		producer: producer,
	}
}

type CreateClientParams struct {
	Name    string
	Phone   string
	Company string
}

func (s *Service) CreateClient(ctx context.Context, p CreateClientParams) (entity.Client, error) {
	c := entity.Client{
		ID:        entity.NewClientID(),
		Name:      p.Name,
		Phone:     p.Phone,
		Company:   p.Company,
		CreatedAt: entity.NewTimestamp(),
	}

	err := s.repo.CreateClient(ctx, c)
	if err != nil {
		return entity.Client{}, fmt.Errorf("create client: %w", err)
	}

	return c, nil
}

func (s *Service) ClientByID(ctx context.Context, id string) (entity.Client, error) {
	return s.repo.ClientByID(ctx, id)
}

func (s *Service) ClientsList(ctx context.Context) ([]entity.Client, error) {
	return s.repo.ClientsList(ctx)
}

func (s *Service) UpdateClient(ctx context.Context, id string, p CreateClientParams) (entity.Client, error) {
	err := s.repo.UpdateClient(ctx, id, p.Name, p.Phone, p.Company)
	if err != nil {
		return entity.Client{}, err
	}

	return s.repo.ClientByID(ctx, id)
}

type CreateReceiptParams struct {
	ClientID string
	Date     string
	Driver   string
	Car      string
	City     string
	Note     string
	Amount   float64
}

// CreateReceipt verifies the client reference exists, then stores the
// receipt. The reference is never re-checked after creation.
func (s *Service) CreateReceipt(ctx context.Context, p CreateReceiptParams) (entity.Receipt, error) {
	_, err := s.repo.ClientByID(ctx, p.ClientID)
	if err != nil {
		return entity.Receipt{}, fmt.Errorf("verify client %s: %w", p.ClientID, err)
	}

	rec := entity.Receipt{
		ID:        entity.NewReceiptID(),
		ClientID:  p.ClientID,
		Date:      p.Date,
		Driver:    p.Driver,
		Car:       p.Car,
		City:      p.City,
		Note:      p.Note,
		Amount:    p.Amount,
		CreatedAt: entity.NewTimestamp(),
	}

	err = s.repo.CreateReceipt(ctx, rec)
	if err != nil {
		return entity.Receipt{}, fmt.Errorf("create receipt: %w", err)
	}

	return rec, nil
}

func (s *Service) ReceiptsList(ctx context.Context) ([]entity.Receipt, error) {
	return s.repo.ReceiptsList(ctx)
}

func (s *Service) ReceiptsByClientID(ctx context.Context, clientID string) ([]entity.Receipt, error) {
	return s.repo.ReceiptsByClientID(ctx, clientID)
}

type UpdateReceiptParams struct {
	Date   string
	Driver string
	Car    string
	City   string
	Note   string
	Amount float64
}

func (s *Service) UpdateReceipt(ctx context.Context, id string, p UpdateReceiptParams) (entity.Receipt, error) {
	err := s.repo.UpdateReceipt(ctx, id, entity.Receipt{
		Date:   p.Date,
		Driver: p.Driver,
		Car:    p.Car,
		City:   p.City,
		Note:   p.Note,
		Amount: p.Amount,
	})
	if err != nil {
		return entity.Receipt{}, err
	}

	return s.repo.ReceiptByID(ctx, id)
}

type CreatePaymentParams struct {
	ClientID string
	Date     string
	Method   string
	Note     string
	Amount   float64
}

// CreatePayment verifies the client reference exists, then stores the
// payment. An empty method falls back to the default channel.
func (s *Service) CreatePayment(ctx context.Context, p CreatePaymentParams) (entity.Payment, error) {
	_, err := s.repo.ClientByID(ctx, p.ClientID)
	if err != nil {
		return entity.Payment{}, fmt.Errorf("verify client %s: %w", p.ClientID, err)
	}

	method := p.Method
	if method == "" {
		method = entity.DefaultPaymentMethod
	}

	payment := entity.Payment{
		ID:        entity.NewPaymentID(),
		ClientID:  p.ClientID,
		Date:      p.Date,
		Method:    method,
		Note:      p.Note,
		Amount:    p.Amount,
		CreatedAt: entity.NewTimestamp(),
	}

	err = s.repo.CreatePayment(ctx, payment)
	if err != nil {
		return entity.Payment{}, fmt.Errorf("create payment: %w", err)
	}

	return payment, nil
}

func (s *Service) PaymentsList(ctx context.Context) ([]entity.Payment, error) {
	return s.repo.PaymentsList(ctx)
}

func (s *Service) PaymentsByClientID(ctx context.Context, clientID string) ([]entity.Payment, error) {
	return s.repo.PaymentsByClientID(ctx, clientID)
}

type UpdatePaymentParams struct {
	Date   string
	Method string
	Note   string
	Amount float64
}

func (s *Service) UpdatePayment(ctx context.Context, id string, p UpdatePaymentParams) (entity.Payment, error) {
	method := p.Method
	if method == "" {
		method = entity.DefaultPaymentMethod
	}

	err := s.repo.UpdatePayment(ctx, id, entity.Payment{
		Date:   p.Date,
		Method: method,
		Note:   p.Note,
		Amount: p.Amount,
	})
	if err != nil {
		return entity.Payment{}, err
	}

	return s.repo.PaymentByID(ctx, id)
}
