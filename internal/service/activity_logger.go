package service

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"

	"socialnet/backend/internal/models"
	"socialnet/backend/internal/repository"

	"github.com/IBM/sarama"
)

// ActivityLogger appends audit rows and optionally mirrors them to Kafka.
// Logging never fails the operation being audited: every error is recorded
// and swallowed.
type ActivityLogger struct {
	repo     repository.ActivityRepository
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
}

// NewActivityLogger builds the logger. producer may be nil when no Kafka
// mirror is configured.
func NewActivityLogger(repo repository.ActivityRepository, producer sarama.SyncProducer, topic string) *ActivityLogger {
	return &ActivityLogger{
		repo:     repo,
		producer: producer,
		topic:    topic,
		logger:   slog.Default().With("component", "activity"),
	}
}

// NewAuditProducer connects a synchronous Kafka producer for the audit
// mirror. brokers is a comma-separated list.
func NewAuditProducer(brokers string) (sarama.SyncProducer, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForLocal
	return sarama.NewSyncProducer(strings.Split(brokers, ","), cfg)
}

// Log records one activity for a user. targetUserID and data may be nil.
func (l *ActivityLogger) Log(userID uint, activityType, description string, targetUserID *uint, data models.JSONMap) {
	entry := &models.ActivityLog{
		UserID:       userID,
		ActivityType: activityType,
		Description:  description,
		TargetUserID: targetUserID,
		ActivityData: data,
	}

	if err := l.repo.Append(entry); err != nil {
		l.logger.Warn("failed to append activity",
			"user_id", userID, "type", activityType, "error", err)
		return
	}
	l.mirror(entry)
}

// mirror publishes the row to the audit topic, best effort.
func (l *ActivityLogger) mirror(entry *models.ActivityLog) {
	if l.producer == nil || l.topic == "" {
		return
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		l.logger.Warn("failed to encode audit event", "error", err)
		return
	}
	_, _, err = l.producer.SendMessage(&sarama.ProducerMessage{
		Topic: l.topic,
		Key:   sarama.StringEncoder(strconv.FormatUint(uint64(entry.UserID), 10)),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		l.logger.Warn("failed to publish audit event", "error", err)
	}
}
