package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Travelintrips/travelindashboard-sub001/internal/core/domain"
	portsrepo "github.com/Travelintrips/travelindashboard-sub001/internal/core/ports/repositories"
	portssvc "github.com/Travelintrips/travelindashboard-sub001/internal/core/ports/services"
)

// ErrSyncInProgress is returned when a sync run is requested while another
// run is still in flight. The marks and listings of two interleaved runs are
// not atomic against each other, so the second caller must retry later rather
// than risk double-posting an event.
var ErrSyncInProgress = errors.New("a sync run is already in progress")

// syncService drains the pending queues into the ledger. One instance owns
// all run state; construction gives a clean lifecycle per process.
type syncService struct {
	BaseService

	queue      portssvc.PendingQueueSvcFacade
	translator portssvc.TranslatorSvcFacade
	ledger     portssvc.LedgerSvcFacade
	intlog     portsrepo.IntegrationLogWriter
	notifier   portssvc.Notifier
	recipient  string

	// Single-flight guard over every run entry point.
	runMu sync.Mutex

	stateMu        sync.Mutex
	lastSyncTime   *time.Time
	syncErrorCount int
}

// NewSyncService creates the synchronization orchestrator. The integration
// log writer and notifier are best-effort collaborators; either may be nil.
func NewSyncService(
	queue portssvc.PendingQueueSvcFacade,
	translator portssvc.TranslatorSvcFacade,
	ledger portssvc.LedgerSvcFacade,
	intlog portsrepo.IntegrationLogWriter,
	notifier portssvc.Notifier,
	recipient string,
) portssvc.SyncSvcFacade {
	return &syncService{
		queue:      queue,
		translator: translator,
		ledger:     ledger,
		intlog:     intlog,
		notifier:   notifier,
		recipient:  recipient,
	}
}

var _ portssvc.SyncSvcFacade = (*syncService)(nil)

// RunSalesSync drains the pending sales queue into the ledger.
func (s *syncService) RunSalesSync(ctx context.Context) (*domain.SyncResult, error) {
	if !s.runMu.TryLock() {
		return nil, ErrSyncInProgress
	}
	defer s.runMu.Unlock()
	return s.runSalesLocked(ctx), nil
}

// RunInventorySync drains the pending inventory queue into the ledger.
func (s *syncService) RunInventorySync(ctx context.Context) (*domain.SyncResult, error) {
	if !s.runMu.TryLock() {
		return nil, ErrSyncInProgress
	}
	defer s.runMu.Unlock()
	return s.runInventoryLocked(ctx), nil
}

// RunFullSync runs the sales and inventory syncs as two independent sub-runs
// under a single guard acquisition. A failed sales run never blocks or rolls
// back the inventory run, and vice versa.
func (s *syncService) RunFullSync(ctx context.Context) (*domain.FullSyncResult, error) {
	if !s.runMu.TryLock() {
		return nil, ErrSyncInProgress
	}
	defer s.runMu.Unlock()

	return &domain.FullSyncResult{
		Sales:     *s.runSalesLocked(ctx),
		Inventory: *s.runInventoryLocked(ctx),
	}, nil
}

// Status returns a point-in-time snapshot of the pending queues and the most
// recent run.
func (s *syncService) Status(ctx context.Context) (*domain.SyncStatus, error) {
	sales, err := s.queue.ListUnsyncedSales(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending sales events: %w", err)
	}
	inventory, err := s.queue.ListUnsyncedInventory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending inventory events: %w", err)
	}

	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return &domain.SyncStatus{
		PendingSalesCount:     len(sales),
		PendingInventoryCount: len(inventory),
		LastSyncTime:          s.lastSyncTime,
		SyncErrorCount:        s.syncErrorCount,
	}, nil
}

func (s *syncService) runSalesLocked(ctx context.Context) *domain.SyncResult {
	events, err := s.queue.ListUnsyncedSales(ctx)
	if err != nil {
		return s.finishRun(ctx, &domain.SyncResult{
			Errors: []string{fmt.Sprintf("failed to list pending sales events: %v", err)},
		}, "sales")
	}
	if len(events) == 0 {
		return &domain.SyncResult{Success: true}
	}

	result := &domain.SyncResult{}
	var translatedIDs []string
	for _, ev := range events {
		txn, terr := s.translator.TranslateSales(ctx, ev)
		if terr != nil {
			result.Errors = append(result.Errors, terr.Error())
			result.FailedCount++
			s.logIntegration(ctx, ev.TransactionID, "sales", "translate", domain.IntegrationFailed, terr.Error())
			continue
		}
		result.SyncedTransactions = append(result.SyncedTransactions, *txn)
		translatedIDs = append(translatedIDs, ev.TransactionID)
	}

	s.persistAndMark(ctx, result, translatedIDs, "sales", s.queue.MarkSaleSynced)
	return s.finishRun(ctx, result, "sales")
}

func (s *syncService) runInventoryLocked(ctx context.Context) *domain.SyncResult {
	events, err := s.queue.ListUnsyncedInventory(ctx)
	if err != nil {
		return s.finishRun(ctx, &domain.SyncResult{
			Errors: []string{fmt.Sprintf("failed to list pending inventory events: %v", err)},
		}, "inventory")
	}
	if len(events) == 0 {
		return &domain.SyncResult{Success: true}
	}

	result := &domain.SyncResult{}
	var translatedIDs []string
	for _, ev := range events {
		txn, terr := s.translator.TranslateInventory(ctx, ev)
		if terr != nil {
			result.Errors = append(result.Errors, terr.Error())
			result.FailedCount++
			s.logIntegration(ctx, ev.TransactionID, "inventory", "translate", domain.IntegrationFailed, terr.Error())
			continue
		}
		result.SyncedTransactions = append(result.SyncedTransactions, *txn)
		translatedIDs = append(translatedIDs, ev.TransactionID)
	}

	s.persistAndMark(ctx, result, translatedIDs, "inventory", s.queue.MarkInventorySynced)
	return s.finishRun(ctx, result, "inventory")
}

// persistAndMark posts each translated transaction and marks its source event
// synced as soon as that transaction is stored. A persistence failure stops
// the run: the remaining events stay pending, while the ones already posted
// keep their marks and are never re-emitted. Transaction codes are
// deterministic per event, so an event posted but not yet marked replays as a
// storage no-op on the next run.
func (s *syncService) persistAndMark(ctx context.Context, result *domain.SyncResult, eventIDs []string, source string, mark func(context.Context, string) error) {
	for i := range result.SyncedTransactions {
		txn := &result.SyncedTransactions[i]
		if err := s.ledger.PostTransaction(ctx, *txn); err != nil {
			remaining := len(result.SyncedTransactions) - i
			msg := fmt.Sprintf("persistence failed for %s event %s, leaving %d events pending: %v", source, eventIDs[i], remaining, err)
			result.Errors = append(result.Errors, msg)
			result.FailedCount += remaining
			result.SyncedTransactions = result.SyncedTransactions[:i]
			s.logIntegration(ctx, txn.Reference, source, "persist", domain.IntegrationFailed, err.Error())
			s.notifyCritical(ctx, source, msg, err)
			return
		}
		s.logIntegration(ctx, txn.Reference, source, "persist", domain.IntegrationSuccess, txn.TransactionID)

		if err := mark(ctx, eventIDs[i]); err != nil {
			// The transaction is stored; the event retries next run and its
			// deterministic code makes the replay a no-op.
			result.Errors = append(result.Errors, fmt.Sprintf("failed to mark %s event %s synced: %v", source, eventIDs[i], err))
			result.FailedCount++
			s.logIntegration(ctx, eventIDs[i], source, "mark_synced", domain.IntegrationFailed, err.Error())
			continue
		}
		result.SyncedCount++
	}
}

// finishRun derives the aggregate fields and records run state. FailedCount
// tallies events that did not complete sync this run; infrastructure errors
// like a failed listing surface in Errors without inflating it.
func (s *syncService) finishRun(ctx context.Context, result *domain.SyncResult, source string) *domain.SyncResult {
	result.Success = len(result.Errors) == 0

	now := time.Now()
	s.stateMu.Lock()
	s.lastSyncTime = &now
	s.syncErrorCount += len(result.Errors)
	s.stateMu.Unlock()

	s.LogInfo(ctx, "Sync run finished",
		slog.String("source", source),
		slog.Bool("success", result.Success),
		slog.Int("synced", result.SyncedCount),
		slog.Int("failed", result.FailedCount))
	return result
}

// logIntegration appends to the integration activity log. Fire-and-forget:
// an append failure is logged locally and never surfaces to the run result.
func (s *syncService) logIntegration(ctx context.Context, sourceID, sourceSystem, action string, status domain.IntegrationStatus, detail string) {
	if s.intlog == nil {
		return
	}
	entry := domain.IntegrationLogEntry{
		LogID:               uuid.NewString(),
		SourceTransactionID: sourceID,
		SourceSystem:        sourceSystem,
		Action:              action,
		Status:              status,
		Detail:              detail,
		CreatedAt:           time.Now(),
	}
	if err := s.intlog.AppendLog(ctx, entry); err != nil {
		s.LogWarn(ctx, "Failed to append integration log entry",
			slog.String("source_transaction_id", sourceID),
			slog.String("error", err.Error()))
	}
}

// notifyCritical sends a best-effort outbound notification for errors the
// orchestrator judges critical. Failures are swallowed.
func (s *syncService) notifyCritical(ctx context.Context, source, message string, cause error) {
	if s.notifier == nil {
		return
	}
	n := domain.Notification{
		Type:      domain.NotificationSyncError,
		Message:   message,
		Source:    source,
		Error:     cause.Error(),
		Recipient: s.recipient,
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		s.LogWarn(ctx, "Failed to send sync notification",
			slog.String("source", source),
			slog.String("error", err.Error()))
	}
}
