package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sevigo/bilingo/internal/config"
	"github.com/sevigo/bilingo/internal/core"
	"github.com/sevigo/bilingo/internal/github"
	"github.com/sevigo/bilingo/internal/reconcile"
)

// EntityReconciler runs a reconciliation pass on one GitHub entity and
// attaches the translated label when the body was rewritten.
type EntityReconciler struct {
	driver *reconcile.Driver
	label  string
	locks  *keyedMutex
	logger *slog.Logger
}

// NewEntityReconciler creates an EntityReconciler. An empty label disables
// labelling.
func NewEntityReconciler(driver *reconcile.Driver, label string, logger *slog.Logger) *EntityReconciler {
	if driver == nil {
		panic("driver cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &EntityReconciler{driver: driver, label: label, locks: &keyedMutex{}, logger: logger}
}

// Reconcile translates entity and writes it back through store. The label
// is only added after a successful write and only when it is absent.
func (r *EntityReconciler) Reconcile(ctx context.Context, store *github.EntityStore, entity *core.Entity) (bool, error) {
	unlock := r.locks.Lock(entity.Key())
	defer unlock()

	updated, err := r.driver.ReconcileEntity(ctx, entity, store)
	if err != nil {
		return false, err
	}
	if !updated {
		r.logger.Debug("entity already up to date", "entity", entity.Key())
		return false, nil
	}
	r.logger.Info("entity translated", "entity", entity.Key())

	// Comments are labelled on their parent issue or pull request.
	if r.label == "" {
		return true, nil
	}
	added, err := store.EnsureLabel(ctx, entity, r.label)
	if err != nil {
		// The body is already written; a missing label is not worth failing the pass.
		r.logger.Warn("failed to add label", "entity", entity.Key(), "label", r.label, "error", err)
		return true, nil
	}
	if added {
		r.logger.Info("label added", "entity", entity.Key(), "label", r.label)
	}
	return true, nil
}

// TranslateJob handles a webhook event: it loads the entity, reconciles it
// and, when a pull request receives the gating label, sweeps its comments.
type TranslateJob struct {
	cfg        *config.Config
	clients    github.ClientFactory
	reconciler *EntityReconciler
	logger     *slog.Logger
}

// NewTranslateJob creates a new TranslateJob.
func NewTranslateJob(cfg *config.Config, clients github.ClientFactory, reconciler *EntityReconciler, logger *slog.Logger) core.Job {
	if cfg == nil {
		panic("config cannot be nil")
	}
	if clients == nil {
		panic("client factory cannot be nil")
	}
	if reconciler == nil {
		panic("reconciler cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &TranslateJob{cfg: cfg, clients: clients, reconciler: reconciler, logger: logger}
}

// Run executes the translation job for a given event.
func (j *TranslateJob) Run(ctx context.Context, event *core.TranslationEvent) error {
	if err := validateEvent(event); err != nil {
		j.logger.Error("input validation failed", "error", err)
		return fmt.Errorf("input validation failed: %w", err)
	}
	log := j.logger.With("repo", event.RepoFullName, "entity", event.Key(), "action", event.Action)

	required := j.cfg.Translation.RequireLabelForPRs
	if event.OnPullRequest && required != "" && !hasLabel(event.Labels, required) {
		log.Info("pull request is not labelled for translation, skipping", "required_label", required)
		return nil
	}

	client, err := j.clients.ForInstallation(ctx, event.InstallationID)
	if err != nil {
		return fmt.Errorf("failed to create GitHub client: %w", err)
	}
	store := github.NewEntityStore(client)

	entity, err := store.Load(ctx, event)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", event.Key(), err)
	}
	if _, err := j.reconciler.Reconcile(ctx, store, entity); err != nil {
		return err
	}

	if event.Kind == core.KindPullRequest && event.Action == "labeled" &&
		required != "" && strings.EqualFold(event.LabelAdded, required) {
		return j.sweepComments(ctx, store, event, log)
	}
	return nil
}

// sweepComments reconciles every comment of a pull request that just
// became eligible for translation. Failures are logged per comment.
func (j *TranslateJob) sweepComments(ctx context.Context, store *github.EntityStore, event *core.TranslationEvent, log *slog.Logger) error {
	comments, err := store.PullRequestComments(ctx, event.RepoOwner, event.RepoName, event.Number)
	if err != nil {
		return err
	}
	log.Info("translating pull request comments", "count", len(comments))

	failed := 0
	for _, c := range comments {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if _, err := j.reconciler.Reconcile(ctx, store, c); err != nil {
			log.Error("failed to translate comment", "comment", c.Key(), "error", err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("failed to translate %d of %d comments", failed, len(comments))
	}
	return nil
}

func hasLabel(labels []string, name string) bool {
	e := core.Entity{Labels: labels}
	return e.HasLabel(name)
}
