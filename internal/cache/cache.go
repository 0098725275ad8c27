package cache

// Cache is a bounded in-process store keyed by storage key.
type Cache interface {
	Get(key string) (interface{}, bool)
	Add(key string, value interface{})
	Delete(key string)
}
