package jobs

import (
	"context"
	"log"
	"time"

	"signals-hub.backend/internal/domain/repositories"
	"signals-hub.backend/pkg/metrics"
)

// TokenPurgeJob periodically removes expired activation and reset
// tokens. Purging is a hygiene pass only; redemption rejects expired
// tokens on its own, so a missed tick never extends a token's life.
type TokenPurgeJob struct {
	repo     repositories.UserTokenRepository
	interval time.Duration
	stop     chan struct{}
}

func NewTokenPurgeJob(repo repositories.UserTokenRepository, interval time.Duration) *TokenPurgeJob {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &TokenPurgeJob{
		repo:     repo,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (j *TokenPurgeJob) Start(ctx context.Context) {
	log.Println("🕐 Starting token purge job...")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️ Token purge job stopped (context cancelled)")
			return
		case <-j.stop:
			log.Println("⏹️ Token purge job stopped")
			return
		case <-ticker.C:
			j.purge(ctx)
		}
	}
}

func (j *TokenPurgeJob) Stop() {
	close(j.stop)
}

func (j *TokenPurgeJob) purge(ctx context.Context) {
	purged, err := j.repo.DeleteExpired(ctx, time.Now())
	if err != nil {
		log.Printf("❌ Error purging expired tokens: %v", err)
		return
	}
	if purged == 0 {
		return
	}

	metrics.AddPurged(purged)
	log.Printf("✅ Purged %d expired tokens", purged)
}
