package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alghadeer/ledger/internal/entity"
)

// SoftDeleteClient snapshots the client into trash, removes it, then
// permanently deletes its receipts and payments. The cascaded children are
// not trashed and the steps are not atomic: a store failure partway leaves
// the earlier steps applied.
func (s *Service) SoftDeleteClient(ctx context.Context, id string) error {
	c, err := s.repo.ClientByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get client %s: %w", id, err)
	}

	err = s.moveToTrash(ctx, entity.ItemTypeClient, c.ID, c)
	if err != nil {
		return err
	}

	err = s.repo.DeleteClient(ctx, id)
	if err != nil {
		return fmt.Errorf("delete client %s: %w", id, err)
	}

	err = s.repo.DeleteReceiptsByClientID(ctx, id)
	if err != nil {
		return fmt.Errorf("cascade delete receipts of %s: %w", id, err)
	}

	err = s.repo.DeletePaymentsByClientID(ctx, id)
	if err != nil {
		return fmt.Errorf("cascade delete payments of %s: %w", id, err)
	}

	return nil
}

func (s *Service) SoftDeleteReceipt(ctx context.Context, id string) error {
	rec, err := s.repo.ReceiptByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get receipt %s: %w", id, err)
	}

	err = s.moveToTrash(ctx, entity.ItemTypeReceipt, rec.ID, rec)
	if err != nil {
		return err
	}

	err = s.repo.DeleteReceipt(ctx, id)
	if err != nil {
		return fmt.Errorf("delete receipt %s: %w", id, err)
	}

	return nil
}

func (s *Service) SoftDeletePayment(ctx context.Context, id string) error {
	p, err := s.repo.PaymentByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get payment %s: %w", id, err)
	}

	err = s.moveToTrash(ctx, entity.ItemTypePayment, p.ID, p)
	if err != nil {
		return err
	}

	err = s.repo.DeletePayment(ctx, id)
	if err != nil {
		return fmt.Errorf("delete payment %s: %w", id, err)
	}

	return nil
}

func (s *Service) moveToTrash(ctx context.Context, itemType entity.ItemType, recordID string, record any) error {
	data, err := entity.Snapshot(record)
	if err != nil {
		return fmt.Errorf("snapshot %s %s: %w", itemType, recordID, err)
	}

	entry := entity.TrashEntry{
		ID:        entity.NewTrashID(),
		ItemType:  itemType,
		Data:      data,
		DeletedAt: entity.NewTimestamp(),
	}

	err = s.repo.CreateTrashEntry(ctx, entry)
	if err != nil {
		return fmt.Errorf("create trash entry for %s %s: %w", itemType, recordID, err)
	}

	if s.producer != nil {
		s.producer.RecordTrashed(ctx, recordID, itemType)
	}

	slog.InfoContext(ctx, "record moved to trash", "item_type", itemType, "record_id", recordID, "trash_id", entry.ID)

	return nil
}

// Restore reinserts the snapshot verbatim into its original collection,
// bypassing the constructors, then drops the trash entry. A record with
// the same id already present in the destination rejects the restore.
func (s *Service) Restore(ctx context.Context, trashID string) (entity.TrashEntry, error) {
	entry, err := s.repo.TrashEntryByID(ctx, trashID)
	if err != nil {
		return entity.TrashEntry{}, fmt.Errorf("get trash entry %s: %w", trashID, err)
	}

	switch entry.ItemType {
	case entity.ItemTypeClient:
		err = restoreRecord(ctx, entry, s.repo.CreateClient)
	case entity.ItemTypeReceipt:
		err = restoreRecord(ctx, entry, s.repo.CreateReceipt)
	case entity.ItemTypePayment:
		err = restoreRecord(ctx, entry, s.repo.CreatePayment)
	default:
		err = fmt.Errorf("unknown item type %q", entry.ItemType)
	}

	if err != nil {
		return entity.TrashEntry{}, err
	}

	err = s.repo.DeleteTrashEntry(ctx, trashID)
	if err != nil {
		return entity.TrashEntry{}, fmt.Errorf("delete trash entry %s: %w", trashID, err)
	}

	if s.producer != nil {
		s.producer.RecordRestored(ctx, trashID, entry.ItemType)
	}

	slog.InfoContext(ctx, "record restored from trash", "item_type", entry.ItemType, "trash_id", trashID)

	return entry, nil
}

func restoreRecord[T any](ctx context.Context, entry entity.TrashEntry, insert func(context.Context, T) error) error {
	record, err := entity.FromSnapshot[T](entry.Data)
	if err != nil {
		return fmt.Errorf("decode %s snapshot %s: %w", entry.ItemType, entry.ID, err)
	}

	err = insert(ctx, record)
	if err != nil {
		return fmt.Errorf("reinsert %s from trash %s: %w", entry.ItemType, entry.ID, err)
	}

	return nil
}

// Purge erases a trash entry for good.
func (s *Service) Purge(ctx context.Context, trashID string) error {
	entry, err := s.repo.TrashEntryByID(ctx, trashID)
	if err != nil {
		return fmt.Errorf("get trash entry %s: %w", trashID, err)
	}

	err = s.repo.DeleteTrashEntry(ctx, trashID)
	if err != nil {
		return fmt.Errorf("delete trash entry %s: %w", trashID, err)
	}

	if s.producer != nil {
		s.producer.RecordPurged(ctx, trashID, entry.ItemType)
	}

	return nil
}

// PurgeAll empties the trash unconditionally. Never fails on an already
// empty collection.
func (s *Service) PurgeAll(ctx context.Context) error {
	return s.repo.PurgeTrash(ctx)
}

func (s *Service) TrashList(ctx context.Context) ([]entity.TrashEntry, error) {
	return s.repo.TrashList(ctx)
}

// PurgeExpired drops trash entries older than the retention window. Run
// periodically by the job runner when retention is configured.
func (s *Service) PurgeExpired(ctx context.Context, retention time.Duration) error {
	cutoff := time.Now().UTC().Add(-retention).Format(time.RFC3339)

	purged, err := s.repo.PurgeExpiredTrash(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("purge expired trash: %w", err)
	}

	if purged > 0 {
		slog.InfoContext(ctx, "expired trash purged", "count", purged, "cutoff", cutoff)
	}

	return nil
}
