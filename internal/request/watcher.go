package request

import (
	"context"
	"sync"
	"time"

	"github.com/zeeddd0107/GymPlify-sub000/internal/logger"
)

// AdminDirectory resolves which users should hear about pending requests.
type AdminDirectory interface {
	ListAdminIDs(ctx context.Context) ([]int, error)
}

// PendingNotifier queues a pending-request notification for an admin.
type PendingNotifier interface {
	NotifyRequestPending(ctx context.Context, adminID int, memberName, plan string) error
}

// Watcher polls for newly submitted subscription requests and notifies
// admins. It owns its goroutine through explicit Start/Stop lifecycle calls
// instead of package-global state, so the application controller decides when
// it runs.
type Watcher struct {
	repo     Repository
	admins   AdminDirectory
	notifier PendingNotifier
	interval time.Duration

	mu         sync.Mutex
	cancel     context.CancelFunc
	done       chan struct{}
	lastSeenID int
}

func NewWatcher(repo Repository, admins AdminDirectory, notifier PendingNotifier, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Watcher{
		repo:     repo,
		admins:   admins,
		notifier: notifier,
		interval: interval,
	}
}

func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.done = make(chan struct{})

	go w.run(ctx)
	logger.Info("Subscription request watcher started")
}

func (w *Watcher) Stop() {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.cancel = nil
	w.mu.Unlock()

	if cancel == nil {
		return
	}

	cancel()
	<-done
	logger.Info("Subscription request watcher stopped")
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.poll(ctx)
		}
	}
}

func (w *Watcher) poll(ctx context.Context) {
	w.mu.Lock()
	afterID := w.lastSeenID
	w.mu.Unlock()

	pending, err := w.repo.ListPendingAfter(ctx, afterID)
	if err != nil {
		logger.Errorf("Request watcher poll failed: %v", err)
		return
	}
	if len(pending) == 0 {
		return
	}

	adminIDs, err := w.admins.ListAdminIDs(ctx)
	if err != nil {
		logger.Errorf("Request watcher could not list admins: %v", err)
		return
	}

	maxID := afterID
	for _, req := range pending {
		if req.ID > maxID {
			maxID = req.ID
		}
		for _, adminID := range adminIDs {
			if err := w.notifier.NotifyRequestPending(ctx, adminID, req.MemberName, req.Plan); err != nil {
				logger.Errorf("Failed to notify admin %d about request %d: %v", adminID, req.ID, err)
			}
		}
	}

	w.mu.Lock()
	if maxID > w.lastSeenID {
		w.lastSeenID = maxID
	}
	w.mu.Unlock()
}
