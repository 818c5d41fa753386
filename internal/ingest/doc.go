// Package ingest implements the per-asset upload pipeline. Each upload moves
// through received, validated, variants-produced, persisted-to-disk, and
// committed stages; a record is inserted only after every variant file is on
// disk, and any failure after the first write removes everything written for
// that asset.
package ingest
