// Package checkup wires the check command: repository discovery and
// inspection, the home directory audit, report assembly, and report
// delivery by console or email.
package checkup
