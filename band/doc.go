// Package band defines the equalizer band data model.
//
// A Band describes one adjustable frequency region (center frequency,
// bandwidth, linear gain). A Set is an ordered collection of bands with
// stable ids, default filling, and range validation. Sets are
// single-writer: callers serialize edits themselves.
package band
