package jobs

import (
	"sync"

	"github.com/ARYAMAN170/DontMessIt/engine"
	"github.com/ARYAMAN170/DontMessIt/logger"
	"github.com/ARYAMAN170/DontMessIt/vision"
)

// ScanJob is one queued plate-photo scan.
type ScanJob struct {
	UserID   uint
	Date     string
	MealType int
	ImageURL string
	Menu     []string // allowed vocabulary: the meal's raw menu items
}

// ScanUpdate is pushed to SSE subscribers when a scan finishes. Items are
// the model's serving guesses; the client shows them for review and
// confirms via the normal log endpoint.
type ScanUpdate struct {
	UserID   uint                `json:"user_id"`
	Date     string              `json:"date"`
	MealType int                 `json:"meal_type"`
	Items    []engine.LoggedItem `json:"items,omitempty"`
	Error    string              `json:"error,omitempty"`
}

// ScanWorker processes plate scans in the background so the upload request
// returns immediately.
type ScanWorker struct {
	jobs        chan ScanJob
	visionSvc   *vision.Client
	subscribers map[chan ScanUpdate]bool
	subMux      sync.RWMutex
}

var (
	worker     *ScanWorker
	workerOnce sync.Once
)

// GetWorker returns the singleton ScanWorker instance
func GetWorker() *ScanWorker {
	workerOnce.Do(func() {
		worker = &ScanWorker{
			jobs:        make(chan ScanJob, 100),
			visionSvc:   vision.NewClient(),
			subscribers: make(map[chan ScanUpdate]bool),
		}
		go worker.run()
		logger.Info("Scan worker started")
	})
	return worker
}

// Enqueue adds a scan job to the queue. Returns false if the queue is
// full; the caller should tell the user to retry rather than block.
func (w *ScanWorker) Enqueue(job ScanJob) bool {
	select {
	case w.jobs <- job:
		logger.Info("Scan job enqueued", "user_id", job.UserID, "meal_type", job.MealType)
		return true
	default:
		logger.Warn("Scan job queue full, dropping job", "user_id", job.UserID)
		return false
	}
}

// Subscribe registers a channel to receive scan updates
func (w *ScanWorker) Subscribe(ch chan ScanUpdate) {
	w.subMux.Lock()
	defer w.subMux.Unlock()
	w.subscribers[ch] = true
}

// Unsubscribe removes a channel from scan updates
func (w *ScanWorker) Unsubscribe(ch chan ScanUpdate) {
	w.subMux.Lock()
	defer w.subMux.Unlock()
	delete(w.subscribers, ch)
	close(ch)
}

func (w *ScanWorker) run() {
	for job := range w.jobs {
		w.processJob(job)
	}
}

func (w *ScanWorker) processJob(job ScanJob) {
	logger.Info("Processing scan job", "user_id", job.UserID, "meal_type", job.MealType)

	update := ScanUpdate{
		UserID:   job.UserID,
		Date:     job.Date,
		MealType: job.MealType,
	}

	items, err := w.visionSvc.ScanPlate(job.ImageURL, job.Menu)
	if err != nil {
		logger.Warn("Plate scan failed", "user_id", job.UserID, "error", err)
		update.Error = err.Error()
	} else {
		update.Items = items
		logger.Info("Plate scan complete", "user_id", job.UserID, "items", len(items))
	}

	w.subMux.RLock()
	for ch := range w.subscribers {
		select {
		case ch <- update:
		default:
			// Drop update if subscriber is slow
		}
	}
	w.subMux.RUnlock()
}
