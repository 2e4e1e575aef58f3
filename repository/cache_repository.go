package repository

// CacheRepository caches rendered calculation results (amortization
// schedules in particular) keyed by their input parameters.
type CacheRepository interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}
