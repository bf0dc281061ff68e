// Package persistence provides database repository implementations.
// It uses GORM as the ORM layer to store the audit trail of signature
// verifications in SQLite or PostgreSQL.
package persistence
