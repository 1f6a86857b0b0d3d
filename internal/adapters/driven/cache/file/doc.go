// Package file provides a directory-backed implementation of the durable
// build cache.
//
// Each entry is stored as one file named after its key: the key kind is the
// sub-directory and the hashed reference is the file name. Writes go to a
// temporary file that is renamed into place, so readers never observe a
// partial entry. The cache directory is locked for the lifetime of the
// store, preventing two builds from sharing it at once.
package file
