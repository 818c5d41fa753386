// Package naming derives filesystem folder tokens from owner identity.
//
// A folder token is ownerID + "_" + sanitized display name. The token is a
// cache of the display name, never an identifier: every lookup that matters
// matches on the ownerID prefix so a stale display name in the folder name
// is harmless between renames.
package naming
