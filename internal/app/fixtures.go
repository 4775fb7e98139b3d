package app

// Bundled fallback reviews, same shape as the upstream payload. Served
// whenever the Hostaway call fails, times out, or returns nothing.

func cat(category string, rating int) map[string]any {
	return map[string]any{"category": category, "rating": rating}
}

// FixtureReviews returns a fresh copy per call; callers re-normalize it on
// every load, which is why normalization must be idempotent.
func FixtureReviews() []map[string]any {
	return []map[string]any{
		{
			"id":           7453,
			"type":         "host-to-guest",
			"status":       "published",
			"publicReview": "Shane and family are wonderful! Would definitely host again :)",
			"reviewCategory": []any{
				cat("cleanliness", 10),
				cat("communication", 10),
				cat("respect_house_rules", 10),
			},
			"submittedAt": "2020-08-21 22:45:14",
			"guestName":   "Shane Finkelstein",
			"listingName": "2B N1 A - 29 Shoreditch Heights",
		},
		{
			"id":           7454,
			"type":         "guest-to-host",
			"status":       "published",
			"publicReview": "Amazing stay! The apartment was spotless and the location was perfect. Highly recommend!",
			"reviewCategory": []any{
				cat("cleanliness", 9),
				cat("communication", 10),
				cat("location", 10),
				cat("value", 8),
			},
			"submittedAt":   "2020-09-15 14:30:22",
			"guestName":     "Emma Thompson",
			"listingName":   "1B N2 B - 15 Camden Square",
			"overallRating": 9,
		},
		{
			"id":           7455,
			"type":         "guest-to-host",
			"status":       "published",
			"publicReview": "Great communication and the place was exactly as described. Would stay again!",
			"reviewCategory": []any{
				cat("cleanliness", 8),
				cat("communication", 9),
				cat("accuracy", 10),
			},
			"submittedAt":   "2020-10-03 09:15:45",
			"guestName":     "Michael Chen",
			"listingName":   "Studio N3 C - 42 King's Cross",
			"overallRating": 8,
		},
		{
			"id":           7456,
			"type":         "guest-to-host",
			"status":       "published",
			"publicReview": "Perfect location for exploring London. The host was very responsive and helpful.",
			"reviewCategory": []any{
				cat("location", 10),
				cat("communication", 9),
				cat("cleanliness", 8),
				cat("value", 9),
			},
			"submittedAt":   "2020-11-12 16:20:10",
			"guestName":     "Sarah Johnson",
			"listingName":   "2B N1 A - 29 Shoreditch Heights",
			"overallRating": 9,
		},
		{
			"id":           7457,
			"type":         "host-to-guest",
			"status":       "published",
			"publicReview": "Excellent guests! Very respectful and left the place in perfect condition.",
			"reviewCategory": []any{
				cat("cleanliness", 10),
				cat("respect_house_rules", 10),
				cat("communication", 9),
			},
			"submittedAt":   "2020-12-01 11:45:33",
			"guestName":     "David Wilson",
			"listingName":   "3B N4 D - 88 Notting Hill",
			"overallRating": 10,
		},
	}
}
