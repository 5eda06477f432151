package client

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"sparks/internal/models"

	"golang.org/x/sync/errgroup"
)

// FeedController drives the same-day feed: it fetches today's sparks and
// the user's saved set in parallel, merges them, tracks the user's own
// spark for the compose/edit affordance, and re-fetches on every change
// notification. The backend stays the source of truth after mutations;
// only the save toggle is optimistic.
type FeedController struct {
	gw  Gateway
	now func() time.Time

	mu      sync.Mutex
	sparks  []models.FeedSpark
	mine    *models.FeedSpark
	loading bool

	unsubscribe func()
}

// NewFeedController creates a FeedController bound to gw.
func NewFeedController(gw Gateway) *FeedController {
	return &FeedController{
		gw:      gw,
		now:     time.Now,
		loading: true,
	}
}

// Start performs the initial fetch and registers the change subscription.
// The subscription callback re-enters Refresh; overlapping refreshes are
// safe, last write wins.
func (f *FeedController) Start(ctx context.Context) error {
	f.Refresh(ctx)

	unsubscribe, err := f.gw.SubscribeSparkChanges(func() {
		f.Refresh(context.Background())
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to spark changes: %w", err)
	}
	f.unsubscribe = unsubscribe
	return nil
}

// Stop tears the change subscription down.
func (f *FeedController) Stop() {
	if f.unsubscribe != nil {
		f.unsubscribe()
		f.unsubscribe = nil
	}
}

// Refresh re-fetches today's sparks and the saved set, merges them and
// replaces the view state. On any fetch error the previous state is kept
// and the error is logged; the next refresh or change event re-attempts.
func (f *FeedController) Refresh(ctx context.Context) {
	session := f.gw.Session()
	if session == nil {
		return
	}
	from, to := models.DayRange(f.now())

	var (
		sparks []models.Spark
		saved  map[string]bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sparks, err = f.gw.TodaySparks(gctx, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		saved, err = f.gw.SavedSparkIDs(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Printf("Error fetching sparks: %v", err)
		f.mu.Lock()
		f.loading = false
		f.mu.Unlock()
		return
	}

	merged := make([]models.FeedSpark, 0, len(sparks))
	var mine *models.FeedSpark
	for _, spark := range sparks {
		entry := models.FeedSpark{Spark: spark, IsSaved: saved[spark.ID]}
		merged = append(merged, entry)
		if spark.UserID == session.UserID {
			own := entry
			mine = &own
		}
	}

	f.mu.Lock()
	f.sparks = merged
	f.mine = mine
	f.loading = false
	f.mu.Unlock()
}

// Sparks returns the merged feed, newest first.
func (f *FeedController) Sparks() []models.FeedSpark {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.FeedSpark, len(f.sparks))
	copy(out, f.sparks)
	return out
}

// Mine returns the user's own spark for today, nil if they have not posted.
func (f *FeedController) Mine() *models.FeedSpark {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mine == nil {
		return nil
	}
	mine := *f.mine
	return &mine
}

// Count returns the number of sparks in the feed.
func (f *FeedController) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sparks)
}

// Loading reports whether the initial fetch is still in flight.
func (f *FeedController) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

// ToggleSave flips the saved state of a spark optimistically: the local
// flag changes first, then the remote mutation runs, and a failure applies
// the compensating transition back. No error surfaces to the caller.
func (f *FeedController) ToggleSave(ctx context.Context, sparkID string) {
	prev, ok := f.applySaveState(sparkID, func(saved bool) bool { return !saved })
	if !ok {
		return
	}
	target := !prev

	var err error
	if target {
		err = f.gw.SaveSpark(ctx, sparkID)
	} else {
		err = f.gw.UnsaveSpark(ctx, sparkID)
	}
	if err != nil {
		log.Printf("Error toggling save for spark %s: %v", sparkID, err)
		f.applySaveState(sparkID, func(bool) bool { return prev })
	}
}

// applySaveState transitions the local saved flag of one spark and returns
// its previous value. It is the apply/compensate primitive ToggleSave is
// built from.
func (f *FeedController) applySaveState(sparkID string, transition func(saved bool) bool) (prev bool, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.sparks {
		if f.sparks[i].ID != sparkID {
			continue
		}
		prev = f.sparks[i].IsSaved
		f.sparks[i].IsSaved = transition(prev)
		if f.mine != nil && f.mine.ID == sparkID {
			f.mine.IsSaved = f.sparks[i].IsSaved
		}
		return prev, true
	}
	return false, false
}

// Submit posts the user's daily spark: an update of the existing entry when
// one exists, an insert otherwise. Afterwards the feed re-fetches so the
// backend stays the single source of truth.
func (f *FeedController) Submit(ctx context.Context, content string) error {
	mine := f.Mine()

	if mine != nil {
		if err := f.gw.UpdateSpark(ctx, mine.ID, content); err != nil {
			return err
		}
	} else {
		if _, err := f.gw.InsertSpark(ctx, content); err != nil {
			return err
		}
	}

	f.Refresh(ctx)
	return nil
}
