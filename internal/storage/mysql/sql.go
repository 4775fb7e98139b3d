package mysql

// The persistent driver keeps whole normalized reviews as JSON; position
// preserves batch order. approved_reviews has no FK on purpose: approvals
// for unknown ids stay latent until SetReviews drops them, matching the
// in-memory semantics.

const createReviewsSQL = `
CREATE TABLE IF NOT EXISTS reviews (
  id          BIGINT       NOT NULL PRIMARY KEY,
  property_id VARCHAR(128) NOT NULL,
  position    INT          NOT NULL,
  payload     JSON         NOT NULL,
  updated_at  TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
  KEY idx_reviews_property (property_id, position)
)
`

const createApprovedSQL = `
CREATE TABLE IF NOT EXISTS approved_reviews (
  id         BIGINT    NOT NULL PRIMARY KEY,
  created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)
`

const insertReviewsPrefix = "INSERT INTO reviews (id, property_id, position, payload) VALUES "

const insertReviewsOnDup = ` ON DUPLICATE KEY UPDATE
  property_id = VALUES(property_id),
  position    = VALUES(position),
  payload     = VALUES(payload)
`

const listReviewsSQL = `
SELECT payload FROM reviews ORDER BY position, id
`

const listApprovedSQL = `
SELECT r.payload
FROM reviews r
JOIN approved_reviews a ON a.id = r.id
ORDER BY r.position, r.id
`

const approveAllSQL = `
INSERT IGNORE INTO approved_reviews (id) SELECT id FROM reviews
`

const isApprovedSQL = `
SELECT 1 FROM approved_reviews WHERE id = ?
`

const approvedCountSQL = `
SELECT COUNT(*) FROM approved_reviews
`
