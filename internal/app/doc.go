// Package app wires configuration, catalog access and the export and download services
// into the three CLI commands: export, download and auth.
package app
