package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"org-site-backend/internal/config"
	"org-site-backend/internal/database"
	"org-site-backend/internal/mailer"
	"org-site-backend/internal/metrics"
	"org-site-backend/internal/repository"
)

// newTestDB opens an in-memory database with the full schema. The pool is
// capped at one connection because each sqlite :memory: connection is its
// own database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func newTestMetrics() *metrics.Metrics {
	return metrics.NewWith(prometheus.NewRegistry())
}

func testMailConfig() *config.MailConfig {
	return &config.MailConfig{
		BaseURL:     "http://localhost:8080",
		SendTimeout: time.Second,
		MaxWorkers:  4,
	}
}

// fakeSender records deliveries and fails the addresses listed in fail.
type fakeSender struct {
	mu   sync.Mutex
	sent []mailer.Message
	fail map[string]bool
}

func (f *fakeSender) Send(_ context.Context, msg mailer.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail[msg.To] {
		return fmt.Errorf("delivery refused for %s", msg.To)
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeSender) Close() error { return nil }

func (f *fakeSender) sentTo() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	to := make([]string, 0, len(f.sent))
	for _, msg := range f.sent {
		to = append(to, msg.To)
	}
	return to
}

func newTestDispatcher(t *testing.T, db *gorm.DB, sender mailer.Sender) (*Dispatcher, *repository.Newsletters, *repository.Subscribers) {
	t.Helper()
	newsletters := repository.NewNewsletters(db)
	subscribers := repository.NewSubscribers(db)
	return NewDispatcher(newsletters, subscribers, sender, newTestMetrics(), testMailConfig()), newsletters, subscribers
}
