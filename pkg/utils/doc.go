// Package utils provides concurrency and panic-recovery helpers used by the
// search core.
package utils
