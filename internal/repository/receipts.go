package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/alghadeer/ledger/internal/entity"
)

const selectReceipt = `SELECT id, client_id, date, driver, car, city, note, amount, created_at FROM receipts`

func (r *Repository) CreateReceipt(ctx context.Context, rec entity.Receipt) error {
	sqlQuery :=
		`INSERT INTO receipts
			(id, client_id, date, driver, car, city, note, amount, created_at)
		VALUES
			($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(ctx, sqlQuery,
		rec.ID,
		rec.ClientID,
		rec.Date,
		rec.Driver,
		rec.Car,
		rec.City,
		rec.Note,
		rec.Amount,
		rec.CreatedAt,
	)

	if err != nil {
		return mapErr(err)
	}

	return nil
}

func (r *Repository) ReceiptByID(ctx context.Context, id string) (entity.Receipt, error) {
	var rec entity.Receipt

	err := r.db.QueryRow(ctx, selectReceipt+` WHERE id = $1`, id).Scan(
		&rec.ID,
		&rec.ClientID,
		&rec.Date,
		&rec.Driver,
		&rec.Car,
		&rec.City,
		&rec.Note,
		&rec.Amount,
		&rec.CreatedAt,
	)

	if err != nil {
		return entity.Receipt{}, mapErr(err)
	}

	return rec, nil
}

func (r *Repository) ReceiptsList(ctx context.Context) ([]entity.Receipt, error) {
	return r.receipts(ctx, selectReceipt+` LIMIT $1`, listLimit)
}

func (r *Repository) ReceiptsByClientID(ctx context.Context, clientID string) ([]entity.Receipt, error) {
	stmt := sq.Select("id", "client_id", "date", "driver", "car", "city", "note", "amount", "created_at").
		From("receipts").
		Where(sq.Eq{"client_id": clientID}).
		Limit(listLimit).
		PlaceholderFormat(sq.Dollar)

	sqlQuery, args, err := stmt.ToSql()
	if err != nil {
		return nil, err
	}

	return r.receipts(ctx, sqlQuery, args...)
}

func (r *Repository) receipts(ctx context.Context, sqlQuery string, args ...any) ([]entity.Receipt, error) {
	rows, err := r.db.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	receipts := make([]entity.Receipt, 0)

	for rows.Next() {
		var rec entity.Receipt

		err = rows.Scan(
			&rec.ID,
			&rec.ClientID,
			&rec.Date,
			&rec.Driver,
			&rec.Car,
			&rec.City,
			&rec.Note,
			&rec.Amount,
			&rec.CreatedAt,
		)

		if err != nil {
			return nil, err
		}

		receipts = append(receipts, rec)
	}

	return receipts, rows.Err()
}

// UpdateReceipt replaces every field except id, client_id and created_at.
func (r *Repository) UpdateReceipt(ctx context.Context, id string, rec entity.Receipt) error {
	stmt := sq.Update("receipts").
		Set("date", rec.Date).
		Set("driver", rec.Driver).
		Set("car", rec.Car).
		Set("city", rec.City).
		Set("note", rec.Note).
		Set("amount", rec.Amount).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar)

	sqlQuery, args, err := stmt.ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.Exec(ctx, sqlQuery, args...)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}

func (r *Repository) DeleteReceipt(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM receipts WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return nil
}

// DeleteReceiptsByClientID permanently removes a client's receipts. Used by
// the cascade on client deletion; nothing is trashed here.
func (r *Repository) DeleteReceiptsByClientID(ctx context.Context, clientID string) error {
	stmt := sq.Delete("receipts").
		Where(sq.Eq{"client_id": clientID}).
		PlaceholderFormat(sq.Dollar)

	sqlQuery, args, err := stmt.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sqlQuery, args...)
	if err != nil {
		return err
	}

	return nil
}

// ReceiptsStats returns the exact row count and amount sum.
func (r *Repository) ReceiptsStats(ctx context.Context) (int64, float64, error) {
	var (
		count int64
		total float64
	)

	err := r.db.QueryRow(ctx, `SELECT count(*), coalesce(sum(amount), 0) FROM receipts`).Scan(&count, &total)
	if err != nil {
		return 0, 0, err
	}

	return count, total, nil
}
