package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"flex_reviews/internal/domain"
)

// PropertyService serves the reference property records: in-memory map
// seeded at startup, cache-aside reads through the injected cache (nil
// cache disables caching), invalidation on update. Renames are registered
// with the resolver so newly ingested reviews resolve against the new name
// while old mappings stay valid.
type PropertyService struct {
	mu       sync.RWMutex
	props    map[string]domain.Property
	cache    domain.Cache
	cacheTTL time.Duration
	resolver *Resolver
}

func NewPropertyService(cache domain.Cache, ttl time.Duration, res *Resolver) *PropertyService {
	return &PropertyService{
		props:    seedProperties(),
		cache:    cache,
		cacheTTL: ttl,
		resolver: res,
	}
}

func propertyKey(id string) string { return fmt.Sprintf("property:%s", id) }

func (s *PropertyService) Get(ctx context.Context, id string) (domain.Property, error) {
	key := propertyKey(id)
	var p domain.Property
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &p); ok {
			return p, nil
		}
	}

	s.mu.RLock()
	p, ok := s.props[id]
	s.mu.RUnlock()
	if !ok {
		return domain.Property{}, domain.ErrNotFound
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, key, p, int(s.cacheTTL.Seconds()))
	}
	return p, nil
}

// Update applies a partial update. The id never changes regardless of the
// request body.
func (s *PropertyService) Update(ctx context.Context, id string, upd domain.PropertyUpdate) (domain.Property, error) {
	s.mu.Lock()
	p, ok := s.props[id]
	if !ok {
		s.mu.Unlock()
		return domain.Property{}, domain.ErrNotFound
	}

	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Address != nil {
		p.Address = *upd.Address
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.Price != nil {
		p.Price = *upd.Price
	}
	if upd.Status != nil {
		p.Status = *upd.Status
	}
	if upd.Bedrooms != nil {
		p.Bedrooms = *upd.Bedrooms
	}
	if upd.Bathrooms != nil {
		p.Bathrooms = *upd.Bathrooms
	}
	if upd.Guests != nil {
		p.Guests = *upd.Guests
	}
	if upd.Amenities != nil {
		p.Amenities = append([]string(nil), (*upd.Amenities)...)
	}
	if upd.Images != nil {
		p.Images = append([]string(nil), (*upd.Images)...)
	}
	p.ID = id
	s.props[id] = p
	s.mu.Unlock()

	if s.resolver != nil && upd.Name != nil {
		s.resolver.Register(p.Name, id)
	}
	if s.cache != nil {
		_ = s.cache.Del(ctx, propertyKey(id))
	}
	return p, nil
}

// IDs returns all known property ids.
func (s *PropertyService) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.props))
	for id := range s.props {
		out = append(out, id)
	}
	return out
}

func seedProperties() map[string]domain.Property {
	return map[string]domain.Property{
		"29-shoreditch-heights": {
			ID:          "29-shoreditch-heights",
			Name:        "2B N1 A - 29 Shoreditch Heights",
			Address:     "29 Shoreditch Heights, London E1 6JQ",
			Description: "Modern 2-bedroom apartment in the heart of Shoreditch. Perfect for business travelers and tourists exploring East London.",
			Price:       "£150",
			Status:      "active",
			Bedrooms:    2,
			Bathrooms:   2,
			Guests:      4,
			Amenities:   []string{"WiFi", "Kitchen", "Washing Machine", "Air Conditioning", "TV", "Parking"},
			Images: []string{
				"https://images.unsplash.com/photo-1560448204-e02f11c3d0e2?w=2070&q=80",
				"https://images.unsplash.com/photo-1560448204-603b3fc33ddc?w=2070&q=80",
			},
		},
		"15-camden-square": {
			ID:          "15-camden-square",
			Name:        "1B N2 B - 15 Camden Square",
			Address:     "15 Camden Square, London NW1 7XA",
			Description: "Cozy 1-bedroom apartment near Camden Market. Great for solo travelers and couples visiting North London.",
			Price:       "£120",
			Status:      "active",
			Bedrooms:    1,
			Bathrooms:   1,
			Guests:      2,
			Amenities:   []string{"WiFi", "Kitchen", "Washing Machine", "TV", "Garden"},
			Images: []string{
				"https://images.unsplash.com/photo-1560448204-e02f11c3d0e2?w=2070&q=80",
			},
		},
		"42-kings-cross": {
			ID:          "42-kings-cross",
			Name:        "Studio N3 C - 42 King's Cross",
			Address:     "42 King's Cross, London WC1X 9HB",
			Description: "Modern studio apartment near Kings Cross Station. Perfect for solo travelers and couples exploring London.",
			Price:       "£80",
			Status:      "active",
			Bedrooms:    0,
			Bathrooms:   1,
			Guests:      2,
			Amenities:   []string{"WiFi", "Kitchen", "Washing Machine", "Air Conditioning", "TV"},
			Images: []string{
				"https://images.unsplash.com/photo-1560448204-e02f11c3d0e2?w=2070&q=80",
			},
		},
		"88-notting-hill": {
			ID:          "88-notting-hill",
			Name:        "3B N4 D - 88 Notting Hill",
			Address:     "88 Notting Hill, London W11 3QA",
			Description: "Elegant 3-bedroom apartment in prestigious Notting Hill. Walking distance to Portobello Market and Hyde Park.",
			Price:       "£200",
			Status:      "active",
			Bedrooms:    3,
			Bathrooms:   2,
			Guests:      6,
			Amenities:   []string{"WiFi", "Kitchen", "Washing Machine", "Air Conditioning", "TV", "Parking", "Garden", "Balcony"},
			Images: []string{
				"https://images.unsplash.com/photo-1560448204-e02f11c3d0e2?w=2070&q=80",
				"https://images.unsplash.com/photo-1560448204-603b3fc33ddc?w=2070&q=80",
			},
		},
	}
}
