// Package memory is an in-memory record store with the same contract as
// the Postgres repository. It backs the unit tests and runs without any
// external collaborator.
package memory

import (
	"context"
	"sync"

	"github.com/alghadeer/ledger/internal/entity"
)

type Store struct {
	mu       sync.Mutex
	clients  []entity.Client
	receipts []entity.Receipt
	payments []entity.Payment
	trash    []entity.TrashEntry
}

func New() *Store {
	return &Store{}
}

func (s *Store) CreateClient(_ context.Context, c entity.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.clients {
		if existing.ID == c.ID {
			return entity.ErrAlreadyExists
		}
	}

	s.clients = append(s.clients, c)

	return nil
}

func (s *Store) ClientByID(_ context.Context, id string) (entity.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.clients {
		if c.ID == id {
			return c, nil
		}
	}

	return entity.Client{}, entity.ErrNotFound
}

func (s *Store) ClientsList(_ context.Context) ([]entity.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]entity.Client(nil), s.clients...), nil
}

func (s *Store) UpdateClient(_ context.Context, id, name, phone, company string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.clients {
		if c.ID == id {
			s.clients[i].Name = name
			s.clients[i].Phone = phone
			s.clients[i].Company = company

			return nil
		}
	}

	return entity.ErrNotFound
}

func (s *Store) DeleteClient(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.clients {
		if c.ID == id {
			s.clients = append(s.clients[:i], s.clients[i+1:]...)
			return nil
		}
	}

	return nil
}

func (s *Store) CountClients(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return int64(len(s.clients)), nil
}

func (s *Store) CreateReceipt(_ context.Context, rec entity.Receipt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.receipts {
		if existing.ID == rec.ID {
			return entity.ErrAlreadyExists
		}
	}

	s.receipts = append(s.receipts, rec)

	return nil
}

func (s *Store) ReceiptByID(_ context.Context, id string) (entity.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.receipts {
		if rec.ID == id {
			return rec, nil
		}
	}

	return entity.Receipt{}, entity.ErrNotFound
}

func (s *Store) ReceiptsList(_ context.Context) ([]entity.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]entity.Receipt(nil), s.receipts...), nil
}

func (s *Store) ReceiptsByClientID(_ context.Context, clientID string) ([]entity.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	receipts := make([]entity.Receipt, 0)

	for _, rec := range s.receipts {
		if rec.ClientID == clientID {
			receipts = append(receipts, rec)
		}
	}

	return receipts, nil
}

func (s *Store) UpdateReceipt(_ context.Context, id string, rec entity.Receipt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.receipts {
		if existing.ID == id {
			s.receipts[i].Date = rec.Date
			s.receipts[i].Driver = rec.Driver
			s.receipts[i].Car = rec.Car
			s.receipts[i].City = rec.City
			s.receipts[i].Note = rec.Note
			s.receipts[i].Amount = rec.Amount

			return nil
		}
	}

	return entity.ErrNotFound
}

func (s *Store) DeleteReceipt(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, rec := range s.receipts {
		if rec.ID == id {
			s.receipts = append(s.receipts[:i], s.receipts[i+1:]...)
			return nil
		}
	}

	return nil
}

func (s *Store) DeleteReceiptsByClientID(_ context.Context, clientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.receipts[:0]

	for _, rec := range s.receipts {
		if rec.ClientID != clientID {
			kept = append(kept, rec)
		}
	}

	s.receipts = kept

	return nil
}

func (s *Store) ReceiptsStats(_ context.Context) (int64, float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64

	for _, rec := range s.receipts {
		total += rec.Amount
	}

	return int64(len(s.receipts)), total, nil
}

func (s *Store) CreatePayment(_ context.Context, p entity.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.payments {
		if existing.ID == p.ID {
			return entity.ErrAlreadyExists
		}
	}

	s.payments = append(s.payments, p)

	return nil
}

func (s *Store) PaymentByID(_ context.Context, id string) (entity.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.payments {
		if p.ID == id {
			return p, nil
		}
	}

	return entity.Payment{}, entity.ErrNotFound
}

func (s *Store) PaymentsList(_ context.Context) ([]entity.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]entity.Payment(nil), s.payments...), nil
}

func (s *Store) PaymentsByClientID(_ context.Context, clientID string) ([]entity.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	payments := make([]entity.Payment, 0)

	for _, p := range s.payments {
		if p.ClientID == clientID {
			payments = append(payments, p)
		}
	}

	return payments, nil
}

func (s *Store) UpdatePayment(_ context.Context, id string, p entity.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.payments {
		if existing.ID == id {
			s.payments[i].Date = p.Date
			s.payments[i].Method = p.Method
			s.payments[i].Note = p.Note
			s.payments[i].Amount = p.Amount

			return nil
		}
	}

	return entity.ErrNotFound
}

func (s *Store) DeletePayment(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.payments {
		if p.ID == id {
			s.payments = append(s.payments[:i], s.payments[i+1:]...)
			return nil
		}
	}

	return nil
}

func (s *Store) DeletePaymentsByClientID(_ context.Context, clientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.payments[:0]

	for _, p := range s.payments {
		if p.ClientID != clientID {
			kept = append(kept, p)
		}
	}

	s.payments = kept

	return nil
}

func (s *Store) PaymentsStats(_ context.Context) (int64, float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64

	for _, p := range s.payments {
		total += p.Amount
	}

	return int64(len(s.payments)), total, nil
}

func (s *Store) CreateTrashEntry(_ context.Context, e entity.TrashEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.trash {
		if existing.ID == e.ID {
			return entity.ErrAlreadyExists
		}
	}

	s.trash = append(s.trash, e)

	return nil
}

func (s *Store) TrashEntryByID(_ context.Context, id string) (entity.TrashEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.trash {
		if e.ID == id {
			return e, nil
		}
	}

	return entity.TrashEntry{}, entity.ErrNotFound
}

func (s *Store) TrashList(_ context.Context) ([]entity.TrashEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]entity.TrashEntry(nil), s.trash...), nil
}

func (s *Store) DeleteTrashEntry(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.trash {
		if e.ID == id {
			s.trash = append(s.trash[:i], s.trash[i+1:]...)
			return nil
		}
	}

	return entity.ErrNotFound
}

func (s *Store) PurgeTrash(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.trash = nil

	return nil
}

func (s *Store) PurgeExpiredTrash(_ context.Context, before string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.trash[:0]

	var purged int64

	for _, e := range s.trash {
		if e.DeletedAt < before {
			purged++
			continue
		}

		kept = append(kept, e)
	}

	s.trash = kept

	return purged, nil
}
