package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	gitMetadataDirectoryNameConstant = ".git"
	invalidPathErrorTemplateConstant = "%s is not an existing directory"
)

// InvalidPathError reports a scan root that does not exist or is not a directory.
type InvalidPathError struct {
	Path string
}

// Error describes the invalid root path.
func (pathError InvalidPathError) Error() string {
	return fmt.Sprintf(invalidPathErrorTemplateConstant, pathError.Path)
}

// StopDescentPredicate reports whether traversal should skip a directory entirely.
type StopDescentPredicate func(directoryPath string) bool

// FilesystemRepositoryDiscoverer locates git repositories on disk.
type FilesystemRepositoryDiscoverer struct {
	stopDescent StopDescentPredicate
}

// NewFilesystemRepositoryDiscoverer constructs a repository discoverer backed by filepath.WalkDir.
func NewFilesystemRepositoryDiscoverer() *FilesystemRepositoryDiscoverer {
	return &FilesystemRepositoryDiscoverer{}
}

// NewFilesystemRepositoryDiscovererWithIgnoredSegments constructs a discoverer pruning directories whose name matches an ignored segment.
func NewFilesystemRepositoryDiscovererWithIgnoredSegments(ignoredSegments []string) *FilesystemRepositoryDiscoverer {
	return &FilesystemRepositoryDiscoverer{stopDescent: ignoredSegmentPredicate(ignoredSegments)}
}

// NewFilesystemRepositoryDiscovererWithPredicate constructs a discoverer honoring a caller-supplied stop-descent predicate.
func NewFilesystemRepositoryDiscovererWithPredicate(stopDescent StopDescentPredicate) *FilesystemRepositoryDiscoverer {
	return &FilesystemRepositoryDiscoverer{stopDescent: stopDescent}
}

// DiscoverRepositories walks the provided roots and returns directories containing a .git entry.
func (discoverer *FilesystemRepositoryDiscoverer) DiscoverRepositories(roots []string) ([]string, error) {
	for _, root := range roots {
		rootInformation, statError := os.Stat(root)
		if statError != nil || !rootInformation.IsDir() {
			return nil, InvalidPathError{Path: root}
		}
	}

	seen := make(map[string]struct{})
	var repositories []string

	for _, root := range roots {
		walkError := filepath.WalkDir(root, func(path string, directoryEntry fs.DirEntry, entryError error) error {
			if entryError != nil {
				return nil
			}
			if !directoryEntry.IsDir() {
				return nil
			}
			if directoryEntry.Name() == gitMetadataDirectoryNameConstant {
				return fs.SkipDir
			}
			if discoverer.stopDescent != nil && path != root && discoverer.stopDescent(path) {
				return fs.SkipDir
			}

			if !containsGitMetadata(path) {
				return nil
			}

			if _, alreadySeen := seen[path]; !alreadySeen {
				seen[path] = struct{}{}
				repositories = append(repositories, path)
			}

			// Prune the repository subtree so metadata and nested checkouts stay untouched.
			return fs.SkipDir
		})
		if walkError != nil {
			return nil, walkError
		}
	}

	sort.Strings(repositories)
	return repositories, nil
}

// containsGitMetadata reports whether the directory holds a .git entry of any kind.
// Worktrees and submodules store a .git file rather than a directory.
func containsGitMetadata(directoryPath string) bool {
	_, statError := os.Stat(filepath.Join(directoryPath, gitMetadataDirectoryNameConstant))
	return statError == nil
}

func ignoredSegmentPredicate(ignoredSegments []string) StopDescentPredicate {
	ignoredSegmentSet := make(map[string]struct{}, len(ignoredSegments))
	for _, ignoredSegment := range ignoredSegments {
		trimmedSegment := strings.TrimSpace(ignoredSegment)
		if len(trimmedSegment) == 0 {
			continue
		}
		ignoredSegmentSet[trimmedSegment] = struct{}{}
	}
	if len(ignoredSegmentSet) == 0 {
		return nil
	}
	return func(directoryPath string) bool {
		_, ignored := ignoredSegmentSet[filepath.Base(directoryPath)]
		return ignored
	}
}
