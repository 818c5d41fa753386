// Package rename coordinates owner display-name changes across the asset
// stores and the record index. A rename resolves the owner's current folder
// in each class root, migrates its files to the folder derived from the new
// name, and rewrites every record path to reference the new token.
//
// Renames for one owner are serialized through a per-owner file lock;
// renames for different owners run independently.
package rename
