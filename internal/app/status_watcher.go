// internal/app/status_watcher.go
package app

import (
	"context"
	"errors"
	"time"

	"homework_status_bot/internal/domain/homework"
	domainTelegram "homework_status_bot/internal/domain/telegram" // Import from domain
	"homework_status_bot/internal/infra/metrics"

	"github.com/sirupsen/logrus"
)

// Fetcher returns the decoded homework_statuses response for statuses changed since fromDate.
type Fetcher interface {
	Fetch(ctx context.Context, fromDate int64) (any, error)
}

const failurePrefix = "Сбой в работе программы: "

// StatusWatcher runs single poll cycles and owns the from_date cursor.
// It is not safe for concurrent use; the poller calls it from one goroutine.
type StatusWatcher struct {
	fetcher        Fetcher
	telegramClient domainTelegram.Client
	chatID         string
	notifyErrors   bool
	logger         *logrus.Entry
	now            func() time.Time

	cursor       int64
	lastReported string // last failure text forwarded to the chat
}

func NewStatusWatcher(
	f Fetcher,
	tc domainTelegram.Client,
	chatID string,
	notifyErrors bool,
	logger *logrus.Entry,
) *StatusWatcher {
	s := &StatusWatcher{
		fetcher:        f,
		telegramClient: tc,
		chatID:         chatID,
		notifyErrors:   notifyErrors,
		logger:         logger,
		now:            time.Now,
	}
	s.cursor = s.now().Unix()
	metrics.SetCursor(s.cursor)
	return s
}

// Cursor returns the lower bound used for the next fetch.
func (s *StatusWatcher) Cursor() int64 {
	return s.cursor
}

// Cycle performs one fetch → validate → format → notify pass.
// The cursor moves forward only after a status change was delivered.
func (s *StatusWatcher) Cycle(ctx context.Context) error {
	started := s.now()

	payload, err := s.fetcher.Fetch(ctx, s.cursor)
	if err != nil {
		return err
	}

	rec, ok, err := homework.Latest(payload)
	if err != nil {
		return err
	}
	if !ok {
		s.logger.WithField("from_date", s.cursor).Debug("Обновлений по статусу ревью нет.")
		metrics.RecordCycle(metrics.ResultNoUpdate)
		s.lastReported = ""
		return nil
	}

	message, err := homework.Format(rec)
	if err != nil {
		return err
	}

	if err := s.telegramClient.Deliver(ctx, s.chatID, message); err != nil {
		return err
	}
	s.logger.WithFields(logrus.Fields{
		"homework": rec[homework.KeyName],
		"status":   rec[homework.KeyStatus],
	}).Info("Status change delivered")

	next, ok := homework.CurrentDate(payload)
	if !ok {
		next = started.Unix()
	}
	s.advance(next)

	metrics.RecordCycle(metrics.ResultDelivered)
	s.lastReported = ""
	return nil
}

func (s *StatusWatcher) advance(to int64) {
	if to <= s.cursor {
		return
	}
	s.logger.WithFields(logrus.Fields{"from": s.cursor, "to": to}).Debug("Cursor advanced")
	s.cursor = to
	metrics.SetCursor(to)
}

// Report logs a failed cycle and, when enabled, forwards it to the chat once per distinct failure.
func (s *StatusWatcher) Report(ctx context.Context, err error) {
	if err == nil {
		return
	}
	if ctx.Err() != nil && errors.Is(err, context.Canceled) {
		return
	}

	kind := homework.KindOf(err)
	s.logger.WithError(err).WithField("kind", kind.String()).Error("Poll cycle failed")
	metrics.RecordError(kind.String())

	if !s.notifyErrors || kind == homework.KindDelivery {
		return
	}

	text := failurePrefix + err.Error()
	if text == s.lastReported {
		s.logger.Debug("Failure already reported to chat, skipping")
		return
	}
	if deliverErr := s.telegramClient.Deliver(ctx, s.chatID, text); deliverErr != nil {
		s.logger.WithError(deliverErr).Error("Ошибка отправки сообщения")
		return
	}
	s.lastReported = text
}
