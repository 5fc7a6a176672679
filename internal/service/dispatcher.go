package service

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"org-site-backend/internal/apperr"
	"org-site-backend/internal/config"
	"org-site-backend/internal/mailer"
	"org-site-backend/internal/metrics"
	"org-site-backend/internal/model"
	"org-site-backend/internal/repository"
)

// Dispatcher owns the newsletter lifecycle and the send fan-out. It reads
// the subscriber roster but never mutates it.
type Dispatcher struct {
	newsletters *repository.Newsletters
	subscribers *repository.Subscribers
	sender      mailer.Sender
	metrics     *metrics.Metrics
	cfg         *config.MailConfig

	// sendMu serializes fan-outs in this process. Together with the
	// conditional status update at commit time it guarantees a newsletter
	// is fanned out at most once per completed send.
	sendMu sync.Mutex
}

// NewDispatcher creates the newsletter dispatcher.
func NewDispatcher(newsletters *repository.Newsletters, subscribers *repository.Subscribers, sender mailer.Sender, m *metrics.Metrics, cfg *config.MailConfig) *Dispatcher {
	return &Dispatcher{
		newsletters: newsletters,
		subscribers: subscribers,
		sender:      sender,
		metrics:     m,
		cfg:         cfg,
	}
}

// Create creates a newsletter in draft.
func (d *Dispatcher) Create(ctx context.Context, title, content string) (*model.Newsletter, error) {
	if title == "" {
		return nil, apperr.Validation("title", "title is required")
	}
	if content == "" {
		return nil, apperr.Validation("content", "content is required")
	}

	nl := &model.Newsletter{
		Title:   title,
		Content: content,
		Status:  model.NewsletterDraft,
	}
	if err := d.newsletters.Create(ctx, nl); err != nil {
		return nil, apperr.Dependency("database", err)
	}

	logrus.Infof("Created newsletter %d: %s", nl.ID, nl.Title)
	return nl, nil
}

// Get returns a newsletter by id.
func (d *Dispatcher) Get(ctx context.Context, id uint) (*model.Newsletter, error) {
	nl, err := d.newsletters.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Dependency("database", err)
	}
	if nl == nil {
		return nil, apperr.NotFound("newsletter")
	}
	return nl, nil
}

// List returns a page of newsletters, optionally filtered by status.
func (d *Dispatcher) List(ctx context.Context, status model.NewsletterStatus, page, pageSize int) ([]model.Newsletter, int64, error) {
	items, total, err := d.newsletters.List(ctx, status, page, pageSize)
	if err != nil {
		return nil, 0, apperr.Dependency("database", err)
	}
	return items, total, nil
}

// Send fans the newsletter out to every active subscriber. Only a draft
// newsletter can be sent; anything else fails with InvalidStateError
// carrying the current state so idempotent callers can treat "sent" as
// success. If the send crashes mid-fan-out the newsletter stays in draft
// and a retry is safe (at-least-once: some subscribers may see duplicates).
func (d *Dispatcher) Send(ctx context.Context, id uint) (*model.Newsletter, error) {
	d.sendMu.Lock()
	defer d.sendMu.Unlock()

	nl, err := d.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if nl.Status != model.NewsletterDraft {
		return nil, apperr.InvalidState("newsletter", string(nl.Status), "only a draft newsletter can be sent")
	}

	return d.fanOut(ctx, nl, model.NewsletterDraft)
}

// Schedule moves a draft newsletter to scheduled for a future send time.
func (d *Dispatcher) Schedule(ctx context.Context, id uint, sendAt time.Time) (*model.Newsletter, error) {
	if !sendAt.After(time.Now()) {
		return nil, apperr.Validation("send_at", "send time must be in the future")
	}

	ok, err := d.newsletters.SetSchedule(ctx, id, model.NewsletterDraft, model.NewsletterScheduled, &sendAt)
	if err != nil {
		return nil, apperr.Dependency("database", err)
	}
	if !ok {
		return nil, d.stateError(ctx, id, "only a draft newsletter can be scheduled")
	}

	logrus.Infof("Newsletter %d scheduled for %s", id, sendAt.Format(time.RFC3339))
	return d.Get(ctx, id)
}

// Unschedule moves a scheduled newsletter back to draft.
func (d *Dispatcher) Unschedule(ctx context.Context, id uint) (*model.Newsletter, error) {
	ok, err := d.newsletters.SetSchedule(ctx, id, model.NewsletterScheduled, model.NewsletterDraft, nil)
	if err != nil {
		return nil, apperr.Dependency("database", err)
	}
	if !ok {
		return nil, d.stateError(ctx, id, "only a scheduled newsletter can be unscheduled")
	}
	return d.Get(ctx, id)
}

// DispatchDue sends every scheduled newsletter whose send time has passed.
// Called by the cron sweep. Returns the number of newsletters dispatched.
func (d *Dispatcher) DispatchDue(ctx context.Context) (int, error) {
	due, err := d.newsletters.DueScheduled(ctx, time.Now())
	if err != nil {
		return 0, apperr.Dependency("database", err)
	}

	dispatched := 0
	for i := range due {
		nl := &due[i]

		d.sendMu.Lock()
		_, err := d.fanOut(ctx, nl, model.NewsletterScheduled)
		d.sendMu.Unlock()

		if err != nil {
			logrus.Errorf("Failed to dispatch scheduled newsletter %d: %v", nl.ID, err)
			continue
		}
		dispatched++
	}
	return dispatched, nil
}

// fanOut snapshots the active subscriber set and delivers to each recipient
// independently. Individual delivery failures never abort the run; they
// only reduce sent_count. The status flip happens after the fan-out
// completes, guarded by a conditional update on the prior status.
// Callers must hold sendMu.
func (d *Dispatcher) fanOut(ctx context.Context, nl *model.Newsletter, from model.NewsletterStatus) (*model.Newsletter, error) {
	snapshot, err := d.subscribers.Active(ctx)
	if err != nil {
		// Snapshot failure aborts atomically; the newsletter keeps its
		// prior status so a retry is safe.
		return nil, apperr.Dependency("subscriber registry", err)
	}

	logrus.Infof("Sending newsletter %d to %d subscribers", nl.ID, len(snapshot))
	start := time.Now()

	var delivered atomic.Int64
	g := new(errgroup.Group)
	g.SetLimit(d.cfg.MaxWorkers)

	for i := range snapshot {
		sub := snapshot[i]
		g.Go(func() error {
			if err := d.deliver(ctx, nl, sub); err != nil {
				d.metrics.DeliveryFailures.Inc()
				logrus.Warnf("Failed to deliver newsletter %d to %s: %v", nl.ID, sub.Email, err)
				return nil
			}
			d.metrics.DeliverySuccesses.Inc()
			delivered.Add(1)
			return nil
		})
	}
	g.Wait()

	d.metrics.SendDuration.Observe(time.Since(start).Seconds())

	sentAt := time.Now()
	sentCount := int(delivered.Load())
	ok, err := d.newsletters.MarkSent(ctx, nl.ID, from, sentAt, sentCount)
	if err != nil {
		return nil, apperr.Dependency("database", err)
	}
	if !ok {
		return nil, apperr.InvalidState("newsletter", string(from), "newsletter state changed during send")
	}

	d.metrics.NewslettersSent.Inc()
	logrus.Infof("Newsletter %d sent to %d/%d subscribers in %v", nl.ID, sentCount, len(snapshot), time.Since(start))

	nl.Status = model.NewsletterSent
	nl.SentAt = &sentAt
	nl.SentCount = sentCount
	nl.ScheduledAt = nil
	return nl, nil
}

// deliver sends to one recipient, bounded by the per-recipient timeout so a
// single unreachable address cannot stall the fan-out.
func (d *Dispatcher) deliver(ctx context.Context, nl *model.Newsletter, sub model.Subscriber) error {
	html, err := mailer.NewsletterHTML(nl.Title, nl.Content, d.unsubscribeURL(sub.UnsubscribeToken))
	if err != nil {
		return err
	}

	sendCtx, cancel := context.WithTimeout(ctx, d.cfg.SendTimeout)
	defer cancel()

	return d.sender.Send(sendCtx, mailer.Message{
		To:      sub.Email,
		Subject: nl.Title,
		HTML:    html,
	})
}

func (d *Dispatcher) unsubscribeURL(token string) string {
	return fmt.Sprintf("%s/api/newsletter/unsubscribe?token=%s", d.cfg.BaseURL, url.QueryEscape(token))
}

func (d *Dispatcher) stateError(ctx context.Context, id uint, message string) error {
	nl, err := d.newsletters.FindByID(ctx, id)
	if err != nil {
		return apperr.Dependency("database", err)
	}
	if nl == nil {
		return apperr.NotFound("newsletter")
	}
	return apperr.InvalidState("newsletter", string(nl.Status), message)
}
