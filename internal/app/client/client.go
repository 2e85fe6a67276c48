// Package client wires the stores, the delivery client and the submission
// service into the application used by the command line.
package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/exp/slog"

	"mtadmin/internal/app/client/config"
	"mtadmin/internal/domain/delivery"
	"mtadmin/internal/domain/message"
	"mtadmin/internal/domain/record"
	"mtadmin/internal/domain/submission"
	"mtadmin/internal/domain/webhook"
	"mtadmin/internal/infrastructure/storage/jsonfile"
	"mtadmin/internal/infrastructure/storage/sqlite"
	webhookclient "mtadmin/internal/infrastructure/webhook"
)

var ErrJournalDisabled = errors.New("delivery journal is disabled")

type App struct {
	config      *config.Config
	log         *slog.Logger
	records     *jsonfile.RecordStore
	webhooks    *jsonfile.WebhookStore
	journal     *sqlite.Journal
	renderer    *message.Renderer
	deliverer   *webhookclient.Client
	submissions *submission.Service
	diagnostics []error
	now         func() time.Time
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	app := &App{
		config:   cfg,
		log:      log,
		records:  jsonfile.NewRecordStore(cfg.RecordsPath, log),
		webhooks: jsonfile.NewWebhookStore(cfg.WebhooksPath, log),
		renderer: message.NewRenderer(message.Labels(cfg.Labels)),
		now:      time.Now,
	}

	// Both stores fall back to an empty state on any load failure.
	if err := app.records.Load(); err != nil {
		app.diagnostics = append(app.diagnostics, fmt.Errorf("load records: %w", err))
	}
	if err := app.webhooks.Load(); err != nil {
		app.diagnostics = append(app.diagnostics, fmt.Errorf("load webhooks: %w", err))
	}

	// The journal is optional; without it deliveries still happen.
	var journal delivery.Journal
	if cfg.JournalEnabled {
		j, err := sqlite.NewJournal(cfg.JournalPath, log)
		if err != nil {
			log.Warn("delivery journal unavailable", "path", cfg.JournalPath, "error", err)
		} else {
			app.journal = j
			journal = j
		}
	}

	app.deliverer = webhookclient.NewClient(webhookclient.Options{
		MaxAttempts:    cfg.Delivery.MaxAttempts,
		BaseDelay:      cfg.Delivery.BaseDelay,
		AttemptTimeout: cfg.Delivery.AttemptTimeout,
	}, journal, log)

	app.submissions = submission.NewService(
		record.NewFormValidator(),
		app.renderer,
		app.records,
		app.deliverer,
		app.webhooks,
		log,
	)

	log.Debug("application ready",
		"records", app.records.Len(),
		"records_path", cfg.RecordsPath,
		"webhooks_path", cfg.WebhooksPath,
		"journal", app.journal != nil,
	)
	return app, nil
}

// Diagnostics returns the non-fatal problems found while loading.
func (a *App) Diagnostics() []error {
	return a.diagnostics
}

// Initialized reports whether the webhook configuration has been written.
func (a *App) Initialized() bool {
	_, err := os.Stat(a.config.WebhooksPath)
	return err == nil
}

func (a *App) Config() *config.Config {
	return a.config
}

// Submit runs one form submission.
func (a *App) Submit(ctx context.Context, typ record.RecType, fields record.Fields) submission.Result {
	return a.submissions.Submit(ctx, typ, fields)
}

// ListRecords returns the stored records matching filter.
func (a *App) ListRecords(filter record.Filter) []*record.Record {
	return filter.Apply(a.records.List())
}

func (a *App) GetRecord(id string) (*record.Record, error) {
	return a.records.Get(id)
}

// EditRecord validates and replaces the fields of record id.
func (a *App) EditRecord(ctx context.Context, id string, fields record.Fields) (*record.Record, error) {
	return a.submissions.Edit(ctx, id, fields)
}

func (a *App) DeleteRecord(id string) error {
	return a.records.Delete(id)
}

// Message reproduces the rendered message of rec.
func (a *App) Message(rec *record.Record) string {
	return a.submissions.Rerender(rec)
}

// ExportRecords writes the CSV export to path, or to a timestamped file in
// the export directory when path is empty. It returns the file written.
func (a *App) ExportRecords(path string) (string, error) {
	if path == "" {
		path = filepath.Join(a.config.ExportDir, jsonfile.DefaultExportName(a.now()))
	}
	if err := a.records.ExportFile(path); err != nil {
		return "", err
	}
	return path, nil
}

func (a *App) Webhooks() webhook.Config {
	return a.webhooks.Config()
}

// SetWebhooks validates and stores cfg.
func (a *App) SetWebhooks(cfg webhook.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	return a.webhooks.Save(cfg)
}

// Deliveries lists journaled delivery attempts.
func (a *App) Deliveries(ctx context.Context, q delivery.Query) ([]*delivery.Attempt, error) {
	if a.journal == nil {
		return nil, ErrJournalDisabled
	}
	return a.journal.List(ctx, q)
}

// Close releases the journal database.
func (a *App) Close() error {
	if a.journal == nil {
		return nil
	}
	return a.journal.Close()
}
