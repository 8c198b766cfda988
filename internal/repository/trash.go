package repository

import (
	"context"
	"encoding/json"

	"github.com/alghadeer/ledger/internal/entity"
)

const selectTrash = `SELECT id, item_type, data, deleted_at FROM trash`

func (r *Repository) CreateTrashEntry(ctx context.Context, e entity.TrashEntry) error {
	sqlQuery :=
		`INSERT INTO trash
			(id, item_type, data, deleted_at)
		VALUES
			($1, $2, $3, $4)`

	data, err := json.Marshal(e.Data)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sqlQuery,
		e.ID,
		e.ItemType,
		data,
		e.DeletedAt,
	)

	if err != nil {
		return mapErr(err)
	}

	return nil
}

func (r *Repository) TrashEntryByID(ctx context.Context, id string) (entity.TrashEntry, error) {
	var e entity.TrashEntry

	err := r.db.QueryRow(ctx, selectTrash+` WHERE id = $1`, id).Scan(
		&e.ID,
		&e.ItemType,
		&e.Data,
		&e.DeletedAt,
	)

	if err != nil {
		return entity.TrashEntry{}, mapErr(err)
	}

	return e, nil
}

func (r *Repository) TrashList(ctx context.Context) ([]entity.TrashEntry, error) {
	rows, err := r.db.Query(ctx, selectTrash+` LIMIT $1`, listLimit)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	entries := make([]entity.TrashEntry, 0)

	for rows.Next() {
		var e entity.TrashEntry

		err = rows.Scan(
			&e.ID,
			&e.ItemType,
			&e.Data,
			&e.DeletedAt,
		)

		if err != nil {
			return nil, err
		}

		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// DeleteTrashEntry removes a single entry for good and reports whether it
// existed at all.
func (r *Repository) DeleteTrashEntry(ctx context.Context, id string) error {
	res, err := r.db.Exec(ctx, `DELETE FROM trash WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}

// PurgeTrash empties the whole collection. Idempotent.
func (r *Repository) PurgeTrash(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `DELETE FROM trash`)
	if err != nil {
		return err
	}

	return nil
}

// PurgeExpiredTrash removes entries deleted before the cutoff. Timestamps
// are RFC3339 UTC strings, so lexicographic comparison is chronological.
func (r *Repository) PurgeExpiredTrash(ctx context.Context, before string) (int64, error) {
	res, err := r.db.Exec(ctx, `DELETE FROM trash WHERE deleted_at < $1`, before)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected(), nil
}
