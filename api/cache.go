package api

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Public list endpoints are read-heavy and nearly static, so responses are
// cached briefly and invalidated on any mutation of the same entity.
var listCache = gocache.New(5*time.Minute, 10*time.Minute)

const (
	cacheKeyProjects     = "projects"
	cacheKeySkills       = "skills"
	cacheKeyExperiences  = "experiences"
	cacheKeyCertificates = "certificates"
)

func getCachedList(key string, fetch func() (interface{}, error)) (interface{}, error) {
	if cached, found := listCache.Get(key); found {
		return cached, nil
	}

	data, err := fetch()
	if err != nil {
		return nil, err
	}

	listCache.Set(key, data, gocache.DefaultExpiration)
	return data, nil
}

func invalidateCachedList(key string) {
	listCache.Delete(key)
}
