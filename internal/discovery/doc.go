// Package discovery locates git working copies beneath configured root
// directories. Traversal prunes repository internals once a .git entry is
// found and never descends into nested repositories, so large trees are
// walked without touching repository metadata.
package discovery
