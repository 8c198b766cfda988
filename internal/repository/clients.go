package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/alghadeer/ledger/internal/entity"
)

const selectClient = `SELECT id, name, phone, company, created_at FROM clients`

func (r *Repository) CreateClient(ctx context.Context, c entity.Client) error {
	sqlQuery :=
		`INSERT INTO clients
			(id, name, phone, company, created_at)
		VALUES
			($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, sqlQuery,
		c.ID,
		c.Name,
		c.Phone,
		c.Company,
		c.CreatedAt,
	)

	if err != nil {
		return mapErr(err)
	}

	return nil
}

func (r *Repository) ClientByID(ctx context.Context, id string) (entity.Client, error) {
	var c entity.Client

	err := r.db.QueryRow(ctx, selectClient+` WHERE id = $1`, id).Scan(
		&c.ID,
		&c.Name,
		&c.Phone,
		&c.Company,
		&c.CreatedAt,
	)

	if err != nil {
		return entity.Client{}, mapErr(err)
	}

	return c, nil
}

func (r *Repository) ClientsList(ctx context.Context) ([]entity.Client, error) {
	rows, err := r.db.Query(ctx, selectClient+` LIMIT $1`, listLimit)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	clients := make([]entity.Client, 0)

	for rows.Next() {
		var c entity.Client

		err = rows.Scan(
			&c.ID,
			&c.Name,
			&c.Phone,
			&c.Company,
			&c.CreatedAt,
		)

		if err != nil {
			return nil, err
		}

		clients = append(clients, c)
	}

	return clients, rows.Err()
}

// UpdateClient replaces the mutable fields. ID and created_at never change.
func (r *Repository) UpdateClient(ctx context.Context, id, name, phone, company string) error {
	stmt := sq.Update("clients").
		Set("name", name).
		Set("phone", phone).
		Set("company", company).
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

func (r *Repository) DeleteClient(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return nil
}

func (r *Repository) CountClients(ctx context.Context) (int64, error) {
	var count int64

	err := r.db.QueryRow(ctx, `SELECT count(*) FROM clients`).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}
