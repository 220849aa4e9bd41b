// Package utils provides small helpers shared across packages:
// file name cleanup, file checks, regex group extraction and generic slice helpers.
package utils
