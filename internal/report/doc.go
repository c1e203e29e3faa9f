// Package report aggregates repository inspection records and home
// audit violations into a ScanReport and renders it for terminals and
// email bodies.
package report
