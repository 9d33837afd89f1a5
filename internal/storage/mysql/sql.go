package mysql

const insertSubmissionSQL = `
INSERT INTO hotel_submissions
  (hotel_id, hotel_name, amenity_ids, status, error)
VALUES
  (?, ?, ?, ?, ?)
`

// Newest first; served by idx_status_created.
const listUnassignedSQL = `
SELECT id, hotel_id, hotel_name, amenity_ids, status, error, created_at
FROM hotel_submissions
WHERE status = ?
ORDER BY created_at DESC, id DESC
LIMIT ?
`
