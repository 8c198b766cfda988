package service

import (
	"context"
	"fmt"

	"github.com/alghadeer/ledger/internal/entity"
)

// Account is the derived statement for a single client. Totals use plain
// float64 addition over the fetched rows, matching the amounts' storage
// type; there is no currency rounding here.
type Account struct {
	Client        entity.Client    `json:"client"`
	TotalReceipts float64          `json:"total_receipts"`
	TotalPayments float64          `json:"total_payments"`
	Balance       float64          `json:"balance"`
	Receipts      []entity.Receipt `json:"receipts"`
	Payments      []entity.Payment `json:"payments"`
}

func (s *Service) ClientAccount(ctx context.Context, clientID string) (Account, error) {
	client, err := s.repo.ClientByID(ctx, clientID)
	if err != nil {
		return Account{}, fmt.Errorf("get client %s: %w", clientID, err)
	}

	receipts, err := s.repo.ReceiptsByClientID(ctx, clientID)
	if err != nil {
		return Account{}, fmt.Errorf("list receipts of %s: %w", clientID, err)
	}

	payments, err := s.repo.PaymentsByClientID(ctx, clientID)
	if err != nil {
		return Account{}, fmt.Errorf("list payments of %s: %w", clientID, err)
	}

	var totalReceipts, totalPayments float64

	for _, rec := range receipts {
		totalReceipts += rec.Amount
	}

	for _, p := range payments {
		totalPayments += p.Amount
	}

	return Account{
		Client:        client,
		TotalReceipts: totalReceipts,
		TotalPayments: totalPayments,
		Balance:       totalReceipts - totalPayments,
		Receipts:      receipts,
		Payments:      payments,
	}, nil
}

// Stats is the dashboard view over every client.
type Stats struct {
	ClientsCount  int64   `json:"clients_count"`
	ReceiptsCount int64   `json:"receipts_count"`
	PaymentsCount int64   `json:"payments_count"`
	TotalReceipts float64 `json:"total_receipts"`
	TotalPayments float64 `json:"total_payments"`
	Balance       float64 `json:"balance"`
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	clientsCount, err := s.repo.CountClients(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("count clients: %w", err)
	}

	receiptsCount, totalReceipts, err := s.repo.ReceiptsStats(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("receipts stats: %w", err)
	}

	paymentsCount, totalPayments, err := s.repo.PaymentsStats(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("payments stats: %w", err)
	}

	return Stats{
		ClientsCount:  clientsCount,
		ReceiptsCount: receiptsCount,
		PaymentsCount: paymentsCount,
		TotalReceipts: totalReceipts,
		TotalPayments: totalPayments,
		Balance:       totalReceipts - totalPayments,
	}, nil
}
