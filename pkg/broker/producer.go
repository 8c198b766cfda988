package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"github.com/alghadeer/ledger/internal/entity"
)

const (
	EventRecordTrashed  = "record.trashed"
	EventRecordRestored = "record.restored"
	EventRecordPurged   = "record.purged"
)

type Producer struct {
	l     *slog.Logger
	w     *kafka.Writer
	topic string
}

func NewProducer(l *slog.Logger, brokers []string, topic string) *Producer {
	l = l.WithGroup("kafka").With("topic", topic)

	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  "",
		Balancer:               &kafka.LeastBytes{},
		Async:                  true,
		Logger:                 &infoLogger{l: l},
		ErrorLogger:            &errorLogger{l: l},
		AllowAutoTopicCreation: true,
	}

	return &Producer{
		l:     l,
		w:     w,
		topic: topic,
	}
}

type RecordEvent struct {
	Event    string          `json:"event"`
	RecordID string          `json:"record_id"`
	ItemType entity.ItemType `json:"item_type"`
}

func (p *Producer) RecordTrashed(ctx context.Context, id string, itemType entity.ItemType) {
	p.send(ctx, EventRecordTrashed, id, itemType)
}

func (p *Producer) RecordRestored(ctx context.Context, id string, itemType entity.ItemType) {
	p.send(ctx, EventRecordRestored, id, itemType)
}

func (p *Producer) RecordPurged(ctx context.Context, id string, itemType entity.ItemType) {
	p.send(ctx, EventRecordPurged, id, itemType)
}

func (p *Producer) send(ctx context.Context, event, id string, itemType entity.ItemType) {
	b, err := json.Marshal(RecordEvent{
		Event:    event,
		RecordID: id,
		ItemType: itemType,
	})
	if err != nil {
		p.l.Error(fmt.Sprintf("marshal event: %s", err))
		return
	}

	err = p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(id),
		Value: b,
		Topic: p.topic,
	})
	if err != nil {
		p.l.Error(fmt.Sprintf("write kafka message: %s", err))
		return
	}
}

func (p *Producer) Close() {
	err := p.w.Close()
	if err != nil {
		p.l.Error(fmt.Sprintf("close kafka writer: %s", err))
	}
}

type infoLogger struct {
	l *slog.Logger
}

func (l *infoLogger) Printf(format string, v ...any) {
	l.l.Debug(fmt.Sprintf(format, v...))
}

type errorLogger struct {
	l *slog.Logger
}

func (l *errorLogger) Printf(format string, v ...any) {
	l.l.Error(fmt.Sprintf(format, v...))
}
