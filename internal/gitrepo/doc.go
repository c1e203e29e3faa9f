// Package gitrepo contains helpers for interrogating Git repositories.
//
// It exposes RepositoryManager for inspecting working tree status, commit
// presence, and branch tracking relationships through the git command-line
// interface in a structured, testable manner.
package gitrepo
