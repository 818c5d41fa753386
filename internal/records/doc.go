// Package records is the database of record for stored media assets.
//
// One row exists per uploaded asset, holding every derived-variant path
// relative to the asset-class root. The store is backed by SQLite and is the
// authority the reconciliation scanner compares the filesystem against: a
// file without a row is an orphan, a row path without a file is a
// missing-file anomaly.
package records
