package service_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alghadeer/ledger/internal/entity"
	"github.com/alghadeer/ledger/internal/repository/memory"
	"github.com/alghadeer/ledger/internal/service"
)

// producerRecorder captures published record events instead of sending
// them anywhere.
type producerRecorder struct {
	trashed  []string
	restored []string
	purged   []string
}

func (p *producerRecorder) RecordTrashed(_ context.Context, id string, _ entity.ItemType) {
	p.trashed = append(p.trashed, id)
}

func (p *producerRecorder) RecordRestored(_ context.Context, id string, _ entity.ItemType) {
	p.restored = append(p.restored, id)
}

func (p *producerRecorder) RecordPurged(_ context.Context, id string, _ entity.ItemType) {
	p.purged = append(p.purged, id)
}

func newService(t *testing.T) (*service.Service, *memory.Store, *producerRecorder) {
	t.Helper()

	store := memory.New()
	producer := &producerRecorder{}

	return service.New(store, producer), store, producer
}

func createClient(t *testing.T, svc *service.Service, name string) entity.Client {
	t.Helper()

	c, err := svc.CreateClient(context.Background(), service.CreateClientParams{Name: name})
	require.NoError(t, err)

	return c
}

func TestCreateClient(t *testing.T) {
	t.Parallel()

	svc, _, _ := newService(t)
	ctx := context.Background()

	c, err := svc.CreateClient(ctx, service.CreateClientParams{
		Name:    "Acme Transport",
		Phone:   "+964 770 000 0000",
		Company: "Acme LLC",
	})
	require.NoError(t, err)
	require.Regexp(t, regexp.MustCompile(`^[0-9A-F]{8}$`), c.ID)
	require.Equal(t, "Acme Transport", c.Name)

	_, err = time.Parse(time.RFC3339, c.CreatedAt)
	require.NoError(t, err)

	got, err := svc.ClientByID(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, c, got)
}

func TestUpdateClient(t *testing.T) {
	t.Parallel()

	svc, _, _ := newService(t)
	ctx := context.Background()

	c := createClient(t, svc, "Acme")

	updated, err := svc.UpdateClient(ctx, c.ID, service.CreateClientParams{
		Name:    "Acme Renamed",
		Phone:   "123",
		Company: "Acme LLC",
	})
	require.NoError(t, err)
	require.Equal(t, c.ID, updated.ID)
	require.Equal(t, "Acme Renamed", updated.Name)
	require.Equal(t, c.CreatedAt, updated.CreatedAt)

	_, err = svc.UpdateClient(ctx, "DEADBEEF", service.CreateClientParams{Name: "x"})
	require.ErrorIs(t, err, entity.ErrNotFound)
}

func TestCreateReceipt(t *testing.T) {
	t.Parallel()

	svc, _, _ := newService(t)
	ctx := context.Background()

	c := createClient(t, svc, "Acme")

	rec, err := svc.CreateReceipt(ctx, service.CreateReceiptParams{
		ClientID: c.ID,
		Date:     "2025-03-14",
		Driver:   "Karim",
		Car:      "KIA 4512",
		City:     "Basra",
		Amount:   500,
	})
	require.NoError(t, err)
	require.Regexp(t, regexp.MustCompile(`^RCPT-[0-9A-F]{6}$`), rec.ID)
	require.Equal(t, c.ID, rec.ClientID)

	list, err := svc.ReceiptsByClientID(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, []entity.Receipt{rec}, list)
}

func TestCreateReceiptUnknownClient(t *testing.T) {
	t.Parallel()

	svc, _, _ := newService(t)
	ctx := context.Background()

	_, err := svc.CreateReceipt(ctx, service.CreateReceiptParams{
		ClientID: "DEADBEEF",
		Date:     "2025-03-14",
		Driver:   "Karim",
		Car:      "KIA 4512",
		City:     "Basra",
	})
	require.ErrorIs(t, err, entity.ErrNotFound)

	list, err := svc.ReceiptsList(ctx)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestCreatePaymentDefaultMethod(t *testing.T) {
	t.Parallel()

	svc, _, _ := newService(t)
	ctx := context.Background()

	c := createClient(t, svc, "Acme")

	p, err := svc.CreatePayment(ctx, service.CreatePaymentParams{
		ClientID: c.ID,
		Date:     "2025-03-15",
		Amount:   200,
	})
	require.NoError(t, err)
	require.Regexp(t, regexp.MustCompile(`^PAY-[0-9A-F]{6}$`), p.ID)
	require.Equal(t, entity.DefaultPaymentMethod, p.Method)

	transfer, err := svc.CreatePayment(ctx, service.CreatePaymentParams{
		ClientID: c.ID,
		Date:     "2025-03-16",
		Method:   "bank transfer",
		Amount:   50,
	})
	require.NoError(t, err)
	require.Equal(t, "bank transfer", transfer.Method)
}

func TestCreatePaymentUnknownClient(t *testing.T) {
	t.Parallel()

	svc, _, _ := newService(t)

	_, err := svc.CreatePayment(context.Background(), service.CreatePaymentParams{
		ClientID: "DEADBEEF",
		Date:     "2025-03-15",
	})
	require.ErrorIs(t, err, entity.ErrNotFound)
}

func TestUpdatePaymentDefaultMethod(t *testing.T) {
	t.Parallel()

	svc, _, _ := newService(t)
	ctx := context.Background()

	c := createClient(t, svc, "Acme")

	p, err := svc.CreatePayment(ctx, service.CreatePaymentParams{
		ClientID: c.ID,
		Date:     "2025-03-15",
		Method:   "bank transfer",
		Amount:   200,
	})
	require.NoError(t, err)

	updated, err := svc.UpdatePayment(ctx, p.ID, service.UpdatePaymentParams{
		Date:   "2025-03-15",
		Amount: 150,
	})
	require.NoError(t, err)
	require.Equal(t, entity.DefaultPaymentMethod, updated.Method)
	require.InDelta(t, 150, updated.Amount, 1e-9)
}

func TestSoftDeleteRestoreRoundTrip(t *testing.T) {
	t.Parallel()

	svc, _, producer := newService(t)
	ctx := context.Background()

	c := createClient(t, svc, "Acme")

	rec, err := svc.CreateReceipt(ctx, service.CreateReceiptParams{
		ClientID: c.ID,
		Date:     "2025-03-14",
		Driver:   "Karim",
		Car:      "KIA 4512",
		City:     "Basra",
		Note:     "two containers",
		Amount:   750.25,
	})
	require.NoError(t, err)

	err = svc.SoftDeleteReceipt(ctx, rec.ID)
	require.NoError(t, err)
	require.Equal(t, []string{rec.ID}, producer.trashed)

	list, err := svc.ReceiptsList(ctx)
	require.NoError(t, err)
	require.Empty(t, list)

	trash, err := svc.TrashList(ctx)
	require.NoError(t, err)
	require.Len(t, trash, 1)
	require.Equal(t, entity.ItemTypeReceipt, trash[0].ItemType)

	entry, err := svc.Restore(ctx, trash[0].ID)
	require.NoError(t, err)
	require.Equal(t, trash[0].ID, entry.ID)
	require.Equal(t, []string{trash[0].ID}, producer.restored)

	list, err = svc.ReceiptsList(ctx)
	require.NoError(t, err)
	require.Equal(t, []entity.Receipt{rec}, list)

	trash, err = svc.TrashList(ctx)
	require.NoError(t, err)
	require.Empty(t, trash)
}

func TestSoftDeleteClientCascade(t *testing.T) {
	t.Parallel()

	svc, _, _ := newService(t)
	ctx := context.Background()

	acme := createClient(t, svc, "Acme")
	other := createClient(t, svc, "Globex")

	for _, clientID := range []string{acme.ID, other.ID} {
		_, err := svc.CreateReceipt(ctx, service.CreateReceiptParams{
			ClientID: clientID,
			Date:     "2025-03-14",
			Driver:   "Karim",
			Car:      "KIA 4512",
			City:     "Basra",
			Amount:   100,
		})
		require.NoError(t, err)

		_, err = svc.CreatePayment(ctx, service.CreatePaymentParams{
			ClientID: clientID,
			Date:     "2025-03-15",
			Amount:   40,
		})
		require.NoError(t, err)
	}

	err := svc.SoftDeleteClient(ctx, acme.ID)
	require.NoError(t, err)

	// Only the client goes to trash; its receipts and payments are
	// deleted for good.
	trash, err := svc.TrashList(ctx)
	require.NoError(t, err)
	require.Len(t, trash, 1)
	require.Equal(t, entity.ItemTypeClient, trash[0].ItemType)

	receipts, err := svc.ReceiptsByClientID(ctx, acme.ID)
	require.NoError(t, err)
	require.Empty(t, receipts)

	payments, err := svc.PaymentsByClientID(ctx, acme.ID)
	require.NoError(t, err)
	require.Empty(t, payments)

	_, err = svc.ClientByID(ctx, acme.ID)
	require.ErrorIs(t, err, entity.ErrNotFound)

	otherReceipts, err := svc.ReceiptsByClientID(ctx, other.ID)
	require.NoError(t, err)
	require.Len(t, otherReceipts, 1)

	otherPayments, err := svc.PaymentsByClientID(ctx, other.ID)
	require.NoError(t, err)
	require.Len(t, otherPayments, 1)
}

func TestRestoreClientKeepsSnapshot(t *testing.T) {
	t.Parallel()

	svc, _, _ := newService(t)
	ctx := context.Background()

	c := createClient(t, svc, "Acme")

	err := svc.SoftDeleteClient(ctx, c.ID)
	require.NoError(t, err)

	trash, err := svc.TrashList(ctx)
	require.NoError(t, err)
	require.Len(t, trash, 1)

	_, err = svc.Restore(ctx, trash[0].ID)
	require.NoError(t, err)

	got, err := svc.ClientByID(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, c, got)
}

func TestRestoreConflict(t *testing.T) {
	t.Parallel()

	svc, store, _ := newService(t)
	ctx := context.Background()

	c := createClient(t, svc, "Acme")

	rec, err := svc.CreateReceipt(ctx, service.CreateReceiptParams{
		ClientID: c.ID,
		Date:     "2025-03-14",
		Driver:   "Karim",
		Car:      "KIA 4512",
		City:     "Basra",
	})
	require.NoError(t, err)

	err = svc.SoftDeleteReceipt(ctx, rec.ID)
	require.NoError(t, err)

	trash, err := svc.TrashList(ctx)
	require.NoError(t, err)
	require.Len(t, trash, 1)

	// Occupy the id before the restore.
	err = store.CreateReceipt(ctx, rec)
	require.NoError(t, err)

	_, err = svc.Restore(ctx, trash[0].ID)
	require.ErrorIs(t, err, entity.ErrAlreadyExists)

	// The conflicting restore leaves the trash entry in place.
	trash, err = svc.TrashList(ctx)
	require.NoError(t, err)
	require.Len(t, trash, 1)
}

func TestRestoreNotFound(t *testing.T) {
	t.Parallel()

	svc, _, _ := newService(t)

	_, err := svc.Restore(context.Background(), "no-such-entry")
	require.ErrorIs(t, err, entity.ErrNotFound)
}

func TestPurge(t *testing.T) {
	t.Parallel()

	svc, _, producer := newService(t)
	ctx := context.Background()

	c := createClient(t, svc, "Acme")

	err := svc.SoftDeleteClient(ctx, c.ID)
	require.NoError(t, err)

	trash, err := svc.TrashList(ctx)
	require.NoError(t, err)
	require.Len(t, trash, 1)

	err = svc.Purge(ctx, trash[0].ID)
	require.NoError(t, err)
	require.Equal(t, []string{trash[0].ID}, producer.purged)

	// Purge is final, not restorable.
	_, err = svc.Restore(ctx, trash[0].ID)
	require.ErrorIs(t, err, entity.ErrNotFound)

	err = svc.Purge(ctx, trash[0].ID)
	require.ErrorIs(t, err, entity.ErrNotFound)
}

func TestPurgeAll(t *testing.T) {
	t.Parallel()

	svc, _, _ := newService(t)
	ctx := context.Background()

	for _, name := range []string{"Acme", "Globex"} {
		c := createClient(t, svc, name)

		err := svc.SoftDeleteClient(ctx, c.ID)
		require.NoError(t, err)
	}

	err := svc.PurgeAll(ctx)
	require.NoError(t, err)

	trash, err := svc.TrashList(ctx)
	require.NoError(t, err)
	require.Empty(t, trash)

	// Emptying an already empty trash succeeds.
	err = svc.PurgeAll(ctx)
	require.NoError(t, err)
}

func TestPurgeExpired(t *testing.T) {
	t.Parallel()

	store := memory.New()
	svc := service.New(store, nil)
	ctx := context.Background()

	err := store.CreateTrashEntry(ctx, entity.TrashEntry{
		ID:        entity.NewTrashID(),
		ItemType:  entity.ItemTypeClient,
		Data:      map[string]any{"id": "OLD00000"},
		DeletedAt: "2020-01-01T00:00:00Z",
	})
	require.NoError(t, err)

	fresh := entity.TrashEntry{
		ID:        entity.NewTrashID(),
		ItemType:  entity.ItemTypeClient,
		Data:      map[string]any{"id": "NEW00000"},
		DeletedAt: entity.NewTimestamp(),
	}

	err = store.CreateTrashEntry(ctx, fresh)
	require.NoError(t, err)

	err = svc.PurgeExpired(ctx, 24*time.Hour)
	require.NoError(t, err)

	trash, err := svc.TrashList(ctx)
	require.NoError(t, err)
	require.Equal(t, []entity.TrashEntry{fresh}, trash)
}

func TestClientAccount(t *testing.T) {
	t.Parallel()

	svc, _, _ := newService(t)
	ctx := context.Background()

	c := createClient(t, svc, "Acme")

	for _, amount := range []float64{300, 200} {
		_, err := svc.CreateReceipt(ctx, service.CreateReceiptParams{
			ClientID: c.ID,
			Date:     "2025-03-14",
			Driver:   "Karim",
			Car:      "KIA 4512",
			City:     "Basra",
			Amount:   amount,
		})
		require.NoError(t, err)
	}

	_, err := svc.CreatePayment(ctx, service.CreatePaymentParams{
		ClientID: c.ID,
		Date:     "2025-03-15",
		Amount:   200,
	})
	require.NoError(t, err)

	account, err := svc.ClientAccount(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, c, account.Client)
	require.InDelta(t, 500, account.TotalReceipts, 1e-9)
	require.InDelta(t, 200, account.TotalPayments, 1e-9)
	require.InDelta(t, 300, account.Balance, 1e-9)
	require.Len(t, account.Receipts, 2)
	require.Len(t, account.Payments, 1)

	_, err = svc.ClientAccount(ctx, "DEADBEEF")
	require.ErrorIs(t, err, entity.ErrNotFound)
}

func TestStats(t *testing.T) {
	t.Parallel()

	svc, _, _ := newService(t)
	ctx := context.Background()

	acme := createClient(t, svc, "Acme")
	globex := createClient(t, svc, "Globex")

	receiptAmounts := map[string]float64{acme.ID: 120.5, globex.ID: 80}
	for clientID, amount := range receiptAmounts {
		_, err := svc.CreateReceipt(ctx, service.CreateReceiptParams{
			ClientID: clientID,
			Date:     "2025-03-14",
			Driver:   "Karim",
			Car:      "KIA 4512",
			City:     "Basra",
			Amount:   amount,
		})
		require.NoError(t, err)
	}

	_, err := svc.CreatePayment(ctx, service.CreatePaymentParams{
		ClientID: acme.ID,
		Date:     "2025-03-15",
		Amount:   60.5,
	})
	require.NoError(t, err)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), stats.ClientsCount)
	require.Equal(t, int64(2), stats.ReceiptsCount)
	require.Equal(t, int64(1), stats.PaymentsCount)
	require.InDelta(t, 200.5, stats.TotalReceipts, 1e-9)
	require.InDelta(t, 60.5, stats.TotalPayments, 1e-9)
	require.InDelta(t, 140, stats.Balance, 1e-9)
}

func TestValidators(t *testing.T) {
	t.Parallel()

	err := service.ValidateCreateClientParams(service.CreateClientParams{})
	require.ErrorIs(t, err, entity.ErrIncorrectRequestBody)

	err = service.ValidateCreateClientParams(service.CreateClientParams{Name: "Acme"})
	require.NoError(t, err)

	err = service.ValidateCreateReceiptParams(service.CreateReceiptParams{Date: "2025-03-14"})
	require.ErrorIs(t, err, entity.ErrIncorrectRequestBody)

	err = service.ValidateCreateReceiptParams(service.CreateReceiptParams{
		ClientID: "AB12CD34",
		Date:     "2025-03-14",
		Driver:   "Karim",
		Car:      "KIA 4512",
		City:     "Basra",
	})
	require.NoError(t, err)

	err = service.ValidateCreatePaymentParams(service.CreatePaymentParams{ClientID: "AB12CD34"})
	require.ErrorIs(t, err, entity.ErrIncorrectRequestBody)

	err = service.ValidateCreatePaymentParams(service.CreatePaymentParams{
		ClientID: "AB12CD34",
		Date:     "2025-03-15",
	})
	require.NoError(t, err)
}
