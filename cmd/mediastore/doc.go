// Package main hosts the mediastore CLI entrypoint and command graph.
//
// The Cobra-based command tree surfaces the storage engine to operators:
// configuration scaffolding, reconciliation scans, opt-in orphan cleanup,
// owner folder renames, and one-off asset ingestion. It centralizes
// configuration resolution so subcommands can focus on user experience
// instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
