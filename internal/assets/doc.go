// Package assets answers whether a stored photo path is backed by a file in
// the served uploads directory.
package assets
