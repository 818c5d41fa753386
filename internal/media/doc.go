// Package media holds the shared vocabulary of the asset engine: asset
// classes and kinds, the error taxonomy every component reports through,
// and the context annotations used for correlated logging.
package media
