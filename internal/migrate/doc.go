// Package migrate moves every file of one owner folder to another with a
// copy, verify, delete discipline per file. There is no destructive move
// primitive anywhere in the engine: a crash mid-operation leaves both copies
// present rather than losing data. Migration is best-effort per file and
// reports partial failure in full detail instead of aborting atomically.
package migrate
