package entity

import (
	"encoding/json"
	"fmt"
)

type ItemType string

const (
	ItemTypeClient  ItemType = "client"
	ItemTypeReceipt ItemType = "receipt"
	ItemTypePayment ItemType = "payment"
)

func (t ItemType) String() string {
	return string(t)
}

func (t ItemType) IsValid() bool {
	switch t {
	case ItemTypeClient, ItemTypeReceipt, ItemTypePayment:
		return true
	default:
		return false
	}
}

// TrashEntry is a point-in-time snapshot of a deleted record. Data holds
// every field of the record as it was at deletion time; restore reinserts
// it verbatim, without regenerating ids or timestamps.
type TrashEntry struct {
	ID        string         `json:"id"`
	ItemType  ItemType       `json:"item_type"`
	Data      map[string]any `json:"data"`
	DeletedAt string         `json:"deleted_at"`
}

// Snapshot flattens a record into the generic field map stored in trash.
func Snapshot(record any) (map[string]any, error) {
	b, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}

	var m map[string]any

	err = json.Unmarshal(b, &m)
	if err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}

	return m, nil
}

// FromSnapshot rebuilds a typed record from a trash snapshot.
func FromSnapshot[T any](data map[string]any) (T, error) {
	var record T

	b, err := json.Marshal(data)
	if err != nil {
		return record, fmt.Errorf("marshal snapshot: %w", err)
	}

	err = json.Unmarshal(b, &record)
	if err != nil {
		return record, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	return record, nil
}
