package renderer

import (
	"sync"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Progress counts completed rows and logs at most at the limiter's rate.
// The final row is always logged.
type Progress struct {
	mu      sync.Mutex
	done    int
	total   int
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewProgress creates a progress tracker that logs whenever the limiter allows.
// A nil limiter disables intermediate reports.
func NewProgress(total int, limiter *rate.Limiter, logger *zap.Logger) *Progress {
	if limiter == nil {
		limiter = rate.NewLimiter(0, 0)
	}
	return &Progress{
		total:   total,
		limiter: limiter,
		logger:  logger,
	}
}

// Increment records one completed row
func (p *Progress) Increment() {
	p.mu.Lock()
	p.done++
	done := p.done
	p.mu.Unlock()

	if done == p.total || p.limiter.Allow() {
		p.logger.Info("render progress",
			zap.Int("rows_done", done),
			zap.Int("rows_total", p.total),
			zap.Float64("percent", 100*float64(done)/float64(p.total)))
	}
}

// Done returns the number of completed rows
func (p *Progress) Done() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}
