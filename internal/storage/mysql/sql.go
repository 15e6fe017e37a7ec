package mysql

const selectVersionSQL = `
SELECT version FROM room_collection WHERE id = 1
`

const listRoomsSQL = `
SELECT id, name, current_price, occupancy, competitor_prices
FROM rooms
ORDER BY id
`

// Optimistic check: zero affected rows means another writer got there first.
const bumpVersionSQL = `
UPDATE room_collection
SET version = version + 1, updated_at = CURRENT_TIMESTAMP
WHERE id = 1 AND version = ?
`

const deleteRoomsSQL = `DELETE FROM rooms`

const insertRoomsPrefix = "INSERT INTO rooms\n  (id, name, current_price, occupancy, competitor_prices)\nVALUES "

const updateCompetitorPricesSQL = `
UPDATE rooms
SET competitor_prices = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`

const insertAuditSQL = `
INSERT INTO audit_entries
  (id, created_at, operator, prompt, intent, approvals, applied)
VALUES
  (?, ?, ?, ?, ?, ?, ?)
`

const listAuditSQL = `
SELECT id, created_at, operator, prompt, intent, approvals, applied
FROM audit_entries
ORDER BY created_at DESC, id DESC
LIMIT ?
`
