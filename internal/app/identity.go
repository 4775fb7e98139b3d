package app

import (
	"regexp"
	"strings"
	"sync"
)

var (
	wsRun   = regexp.MustCompile(`\s+`)
	nonSlug = regexp.MustCompile(`[^a-z0-9-]`)
)

// SlugifyName derives a property id from a free-text listing name:
// lowercase, whitespace runs become a single hyphen, everything outside
// [a-z0-9-] is stripped. Total; a fully non-alphanumeric name yields "".
func SlugifyName(name string) string {
	s := strings.ToLower(name)
	s = wsRun.ReplaceAllString(s, "-")
	return nonSlug.ReplaceAllString(s, "")
}

// Resolver maps listing display names to stable property ids. It starts
// from the known deployment table and picks up new names as properties are
// renamed; old names stay registered so reviews normalized against them
// keep resolving.
type Resolver struct {
	mu    sync.RWMutex
	names map[string]string
}

func NewResolver() *Resolver {
	return &Resolver{names: map[string]string{
		"2B N1 A - 29 Shoreditch Heights": "29-shoreditch-heights",
		"1B N2 B - 15 Camden Square":      "15-camden-square",
		"Studio N3 C - 42 King's Cross":   "42-kings-cross",
		"3B N4 D - 88 Notting Hill":       "88-notting-hill",
	}}
}

// Resolve returns the table entry for the name, or the slugified fallback.
func (r *Resolver) Resolve(listingName string) string {
	r.mu.RLock()
	id, ok := r.names[listingName]
	r.mu.RUnlock()
	if ok {
		return id
	}
	return SlugifyName(listingName)
}

// Register records a (possibly new) display name for a property id.
func (r *Resolver) Register(listingName, propertyID string) {
	if listingName == "" || propertyID == "" {
		return
	}
	r.mu.Lock()
	r.names[listingName] = propertyID
	r.mu.Unlock()
}
