package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/alghadeer/ledger/internal/entity"
)

const selectPayment = `SELECT id, client_id, date, method, note, amount, created_at FROM payments`

func (r *Repository) CreatePayment(ctx context.Context, p entity.Payment) error {
	sqlQuery :=
		`INSERT INTO payments
			(id, client_id, date, method, note, amount, created_at)
		VALUES
			($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, sqlQuery,
		p.ID,
		p.ClientID,
		p.Date,
		p.Method,
		p.Note,
		p.Amount,
		p.CreatedAt,
	)

	if err != nil {
		return mapErr(err)
	}

	return nil
}

func (r *Repository) PaymentByID(ctx context.Context, id string) (entity.Payment, error) {
	var p entity.Payment

	err := r.db.QueryRow(ctx, selectPayment+` WHERE id = $1`, id).Scan(
		&p.ID,
		&p.ClientID,
		&p.Date,
		&p.Method,
		&p.Note,
		&p.Amount,
		&p.CreatedAt,
	)

	if err != nil {
		return entity.Payment{}, mapErr(err)
	}

	return p, nil
}

func (r *Repository) PaymentsList(ctx context.Context) ([]entity.Payment, error) {
	return r.payments(ctx, selectPayment+` LIMIT $1`, listLimit)
}

func (r *Repository) PaymentsByClientID(ctx context.Context, clientID string) ([]entity.Payment, error) {
	stmt := sq.Select("id", "client_id", "date", "method", "note", "amount", "created_at").
		From("payments").
		Where(sq.Eq{"client_id": clientID}).
		Limit(listLimit).
		PlaceholderFormat(sq.Dollar)

	sqlQuery, args, err := stmt.ToSql()
	if err != nil {
		return nil, err
	}

	return r.payments(ctx, sqlQuery, args...)
}

func (r *Repository) payments(ctx context.Context, sqlQuery string, args ...any) ([]entity.Payment, error) {
	rows, err := r.db.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	payments := make([]entity.Payment, 0)

	for rows.Next() {
		var p entity.Payment

		err = rows.Scan(
			&p.ID,
			&p.ClientID,
			&p.Date,
			&p.Method,
			&p.Note,
			&p.Amount,
			&p.CreatedAt,
		)

		if err != nil {
			return nil, err
		}

		payments = append(payments, p)
	}

	return payments, rows.Err()
}

// UpdatePayment replaces every field except id, client_id and created_at.
func (r *Repository) UpdatePayment(ctx context.Context, id string, p entity.Payment) error {
	stmt := sq.Update("payments").
		Set("date", p.Date).
		Set("method", p.Method).
		Set("note", p.Note).
		Set("amount", p.Amount).
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

func (r *Repository) DeletePayment(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return nil
}

// DeletePaymentsByClientID permanently removes a client's payments. Used by
// the cascade on client deletion; nothing is trashed here.
func (r *Repository) DeletePaymentsByClientID(ctx context.Context, clientID string) error {
	stmt := sq.Delete("payments").
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

// PaymentsStats returns the exact row count and amount sum.
func (r *Repository) PaymentsStats(ctx context.Context) (int64, float64, error) {
	var (
		count int64
		total float64
	)

	err := r.db.QueryRow(ctx, `SELECT count(*), coalesce(sum(amount), 0) FROM payments`).Scan(&count, &total)
	if err != nil {
		return 0, 0, err
	}

	return count, total, nil
}
