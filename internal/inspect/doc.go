// Package inspect determines the dirty and unpushed status of discovered git
// repositories. Each repository produces an immutable RepositoryRecord; a
// failing repository is flagged rather than aborting the scan.
package inspect
