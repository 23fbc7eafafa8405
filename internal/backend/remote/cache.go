// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package remote

import (
	"net/url"
	"os"

	"github.com/fmctl/fmctl/internal/cacheutil"
	"github.com/fmctl/fmctl/internal/config"
)

// CacheEntryPath returns the path to the cache entry for the given key, if it
// exists. The cache is organized first by the API hostname
// (api.freshmart.example) and then by the store code. The key is hashed and
// used as the filename.
func CacheEntryPath(be *BackendRemote, key string) (string, bool) {
	hostname, store := getOverrides(be)
	p, exists := cacheutil.EntryPath([]string{hostname, store}, key)
	if !exists {
		return "", false
	}
	return p, true
}

// CacheReader reads the cache entry for the given key, if it exists. If the
// cache is disabled, or the entry does not exist, the second return value will
// be false.
func CacheReader(be *BackendRemote, key string) (*cacheutil.Entry, bool) {
	hostname, store := getOverrides(be)
	return cacheutil.Read([]string{hostname, store}, key)
}

func CacheWriter(be *BackendRemote, key string, data []byte) error {
	hostname, store := getOverrides(be)
	return cacheutil.Write([]string{hostname, store}, key, data)
}

func PurgeCache() error {
	cleanHours, _ := config.GetInt("cache.clean")
	return cacheutil.Purge(cleanHours)
}

func getOverrides(be *BackendRemote) (hostname, store string) {
	hostname = be.Endpoint
	if u, err := url.Parse(be.Endpoint); err == nil && u.Host != "" {
		hostname = u.Host
	}
	if h, ok := os.LookupEnv("FMCTL_ENDPOINT"); ok && hostname == "" {
		hostname = h
	}

	store = be.StoreOverride
	if s, ok := os.LookupEnv("FMCTL_STORE"); ok && store == "" {
		store = s
	}

	return
}
