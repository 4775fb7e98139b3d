package app

import (
	"math"
	"strconv"
	"strings"

	"flex_reviews/internal/domain"
)

/********** alias registry (single source of truth) **********/

// Upstream Hostaway field names come first, canonical names second, so a
// record that already went through normalization maps onto itself.
var reviewAliases = map[string][]string{
	"listing":    {"listingName", "listing"},
	"guest":      {"guestName", "guest"},
	"text":       {"publicReview", "review"},
	"rating":     {"rating", "overallRating"},
	"categories": {"reviewCategory", "categories"},
	"date":       {"submittedAt", "date"},
	"channel":    {"channel"},
	"type":       {"type"},
	"status":     {"status"},
	"property":   {"propertyId"},
}

/********** tiny helpers **********/

// lookupStr returns the string at key or "".
func lookupStr(m map[string]any, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// firstNonEmptyAlias: first non-empty string for a named alias set.
func firstNonEmptyAlias(m map[string]any, key string) string {
	for _, k := range reviewAliases[key] {
		if s := lookupStr(m, k); s != "" {
			return s
		}
	}
	return ""
}

// firstIntFlexible: int from several keys (float64 from JSON, int from Go
// literals, or a numeric string).
func firstIntFlexible(m map[string]any, keys ...string) *int {
	for _, k := range keys {
		switch v := m[k].(type) {
		case float64:
			n := int(v)
			return &n
		case int:
			n := v
			return &n
		case int64:
			n := int(v)
			return &n
		case string:
			s := strings.TrimSpace(v)
			if s == "" {
				continue
			}
			if n, err := strconv.Atoi(s); err == nil {
				return &n
			}
		}
	}
	return nil
}

func firstInt64Flexible(m map[string]any, keys ...string) *int64 {
	for _, k := range keys {
		switch v := m[k].(type) {
		case float64:
			n := int64(v)
			return &n
		case int:
			n := int64(v)
			return &n
		case int64:
			n := v
			return &n
		case string:
			s := strings.TrimSpace(v)
			if s == "" {
				continue
			}
			if n, err := strconv.ParseInt(s, 10, 64); err == nil {
				return &n
			}
		}
	}
	return nil
}

// mapCategories accepts the JSON-decoded form ([]any of objects) as well as
// the already-typed slice. Absent or unusable input yields an empty slice,
// never nil.
func mapCategories(m map[string]any) []domain.CategoryRating {
	out := []domain.CategoryRating{}
	for _, k := range reviewAliases["categories"] {
		switch v := m[k].(type) {
		case []domain.CategoryRating:
			if len(v) > 0 {
				return append(out, v...)
			}
		case []any:
			for _, it := range v {
				obj, ok := it.(map[string]any)
				if !ok {
					continue
				}
				cr := domain.CategoryRating{Category: lookupStr(obj, "category")}
				if n := firstIntFlexible(obj, "rating"); n != nil {
					cr.Rating = *n
				}
				out = append(out, cr)
			}
			if len(out) > 0 {
				return out
			}
		}
	}
	return out
}

// deriveRating applies the overall-rating policy: explicit value wins, then
// the category mean rounded half up, then nil.
func deriveRating(m map[string]any, cats []domain.CategoryRating) *int {
	if n := firstIntFlexible(m, reviewAliases["rating"]...); n != nil {
		return n
	}
	if len(cats) == 0 {
		return nil
	}
	sum := 0
	for _, c := range cats {
		sum += c.Rating
	}
	mean := float64(sum) / float64(len(cats))
	n := int(math.Floor(mean + 0.5))
	return &n
}

// demoChannel cycles booking platforms for fixture records so demo screens
// show channel variety. Never applied to real upstream data.
func demoChannel(id int64) string {
	switch id % 3 {
	case 0:
		return "Airbnb"
	case 1:
		return "Booking.com"
	default:
		return "Hostaway"
	}
}

/********** review normalizer **********/

// NormalizeReview converts one raw record into the canonical shape. The
// resolve func maps a listing name to its stable property id; a resolved id
// already present on the record is reused verbatim, so edits to a property's
// display name cannot re-key old reviews. demo enables the fixture-only
// channel heuristic.
func NormalizeReview(resolve func(string) string, m map[string]any, demo bool) domain.Review {
	rv := domain.Review{
		Listing: firstNonEmptyAlias(m, "listing"),
		Guest:   firstNonEmptyAlias(m, "guest"),
		Review:  firstNonEmptyAlias(m, "text"),
		Date:    firstNonEmptyAlias(m, "date"),
		Type:    firstNonEmptyAlias(m, "type"),
		Status:  firstNonEmptyAlias(m, "status"),
	}
	if id := firstInt64Flexible(m, "id"); id != nil {
		rv.ID = *id
	}

	rv.Categories = mapCategories(m)
	rv.Rating = deriveRating(m, rv.Categories)

	rv.Channel = firstNonEmptyAlias(m, "channel")
	if rv.Channel == "" {
		if demo {
			rv.Channel = demoChannel(rv.ID)
		} else {
			rv.Channel = "Hostaway"
		}
	}

	rv.PropertyID = firstNonEmptyAlias(m, "property")
	if rv.PropertyID == "" {
		rv.PropertyID = resolve(rv.Listing)
	}
	return rv
}

// NormalizeBatch normalizes a raw payload in order.
func NormalizeBatch(resolve func(string) string, in []map[string]any, demo bool) []domain.Review {
	out := make([]domain.Review, 0, len(in))
	for _, m := range in {
		out = append(out, NormalizeReview(resolve, m, demo))
	}
	return out
}
