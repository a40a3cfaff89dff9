package services

import (
	"log"
	"time"

	"github.com/cassiozaleski/sercarne-V8.0/models"
)

// Observer receives diagnostic events from the engine. Implementations must
// be safe for concurrent use.
type Observer interface {
	FetchAttempt(url string, attempt int)
	FetchRetry(url string, attempt int, delay time.Duration, cause error)
	FetchSucceeded(url string, attempts int, size int)
	FetchFailed(url string, attempts int, cause error)
	CacheHit(key string)
	CacheMiss(key string)
	CacheStore(key string, ttl time.Duration)
	RowDropped(resource string, row int, reason string)
	AvailabilityComputed(snapshot models.AvailabilitySnapshot)
}

// LogObserver writes events through the standard logger.
type LogObserver struct{}

func (LogObserver) FetchAttempt(url string, attempt int) {
	log.Printf("[fetch] attempt %d: GET %s", attempt+1, url)
}

func (LogObserver) FetchRetry(url string, attempt int, delay time.Duration, cause error) {
	log.Printf("[fetch] attempt %d failed (%v), retrying in %s: %s", attempt+1, cause, delay.Round(time.Millisecond), url)
}

func (LogObserver) FetchSucceeded(url string, attempts int, size int) {
	log.Printf("[fetch] OK after %d attempt(s), %d bytes: %s", attempts, size, url)
}

func (LogObserver) FetchFailed(url string, attempts int, cause error) {
	log.Printf("[fetch] FAILED after %d attempt(s): %s: %v", attempts, url, cause)
}

func (LogObserver) CacheHit(key string) {
	log.Printf("[cache] HIT %s", key)
}

func (LogObserver) CacheMiss(key string) {
	log.Printf("[cache] MISS %s", key)
}

func (LogObserver) CacheStore(key string, ttl time.Duration) {
	log.Printf("[cache] stored %s (ttl %s)", key, ttl)
}

func (LogObserver) RowDropped(resource string, row int, reason string) {
	log.Printf("[parse] %s: dropped row %d: %s", resource, row, reason)
}

func (LogObserver) AvailabilityComputed(s models.AvailabilitySnapshot) {
	log.Printf("[stock] %s @ %s: baseline=%d incoming=%d reserved=%d -> available=%d",
		s.SKU, s.AsOfDate.Format(models.DateOnly), s.Baseline, s.Incoming, s.Reserved, s.Available)
}

// NopObserver discards all events. Useful in tests.
type NopObserver struct{}

func (NopObserver) FetchAttempt(string, int)                              {}
func (NopObserver) FetchRetry(string, int, time.Duration, error)          {}
func (NopObserver) FetchSucceeded(string, int, int)                       {}
func (NopObserver) FetchFailed(string, int, error)                        {}
func (NopObserver) CacheHit(string)                                       {}
func (NopObserver) CacheMiss(string)                                      {}
func (NopObserver) CacheStore(string, time.Duration)                      {}
func (NopObserver) RowDropped(string, int, string)                        {}
func (NopObserver) AvailabilityComputed(models.AvailabilitySnapshot)      {}
