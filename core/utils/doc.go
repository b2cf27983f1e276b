// Package utils provides helpers shared by the core and feature packages:
// loose type conversion for media host metadata and JSON file read/write
// with the formatting the static site expects (indented, trailing newline).
package utils
