// Package codec defines the external transform collaborators used by the
// upload pipeline. Image tools derive the web variants of an uploaded
// picture; video tools probe stream metadata and extract a cover frame.
//
// The engine never implements image or video processing itself. The
// exec-backed implementations here shell out to configured binaries and
// speak a stdin/stdout protocol, so any tool honoring that contract can be
// swapped in through configuration.
package codec
