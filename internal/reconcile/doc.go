// Package reconcile cross-references the files under an asset-class root
// with the record index. The scan reports files no record references and
// records whose paths no longer resolve; cleanup deletes an explicit,
// caller-confirmed subset of the orphaned paths.
//
// Scans only read and may run alongside uploads and renames, so a report is
// a snapshot. Cleanup therefore never acts on a report wholesale; the caller
// re-confirms each path, which keeps a file written by an upload that has
// not committed yet out of harm's way.
package reconcile
