// Package vfs implements the read-only virtual filesystem the terminal
// browses. A Filesystem is a flat map from absolute path to node, built once
// from a profile and never mutated afterwards, so one value can be shared by
// any number of sessions.
package vfs

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Kind distinguishes directories from files.
type Kind int

const (
	KindDir Kind = iota
	KindFile
)

func (k Kind) String() string {
	switch k {
	case KindDir:
		return "dir"
	case KindFile:
		return "file"
	default:
		return "unknown"
	}
}

// Node is a directory (ordered child names) or a file (content).
type Node struct {
	Kind     Kind
	Children []string // KindDir only, in listing order
	Content  string   // KindFile only
}

// IsDir reports whether the node is a directory.
func (n Node) IsDir() bool { return n.Kind == KindDir }

// Entry is one row of a directory listing.
type Entry struct {
	Name  string
	IsDir bool
}

// Filesystem maps absolute paths ("/" or "/a/b", no trailing slash) to nodes.
type Filesystem struct {
	nodes map[string]Node
	home  string
}

// New validates nodes and wraps them in a Filesystem. The root must be a
// directory and every child name must resolve to a node.
func New(nodes map[string]Node, home string) (*Filesystem, error) {
	root, ok := nodes["/"]
	if !ok || root.Kind != KindDir {
		return nil, fmt.Errorf("root directory missing")
	}
	own := make(map[string]Node, len(nodes))
	for path, n := range nodes {
		if n.Kind == KindDir {
			for _, child := range n.Children {
				if _, ok := nodes[ChildPath(path, child)]; !ok {
					return nil, fmt.Errorf("%s lists missing child %q", path, child)
				}
			}
			n.Children = slices.Clone(n.Children)
		}
		own[path] = n
	}
	if home != "" {
		if h, ok := own[home]; !ok || h.Kind != KindDir {
			return nil, fmt.Errorf("home directory %s missing", home)
		}
	}
	return &Filesystem{nodes: own, home: home}, nil
}

// ChildPath joins a directory path and a child name.
func ChildPath(dir, name string) string {
	if dir == "/" {
		return "/" + name
	}
	return dir + "/" + name
}

// Home returns the home directory used by `cd` without arguments.
func (f *Filesystem) Home() string {
	return f.home
}

// Lookup returns the node stored at path.
func (f *Filesystem) Lookup(path string) (Node, bool) {
	n, ok := f.nodes[path]
	if !ok {
		return Node{}, false
	}
	n.Children = slices.Clone(n.Children)
	return n, true
}

// IsDir reports whether path names a directory.
func (f *Filesystem) IsDir(path string) bool {
	n, ok := f.nodes[path]
	return ok && n.Kind == KindDir
}

// IsFile reports whether path names a file.
func (f *Filesystem) IsFile(path string) bool {
	n, ok := f.nodes[path]
	return ok && n.Kind == KindFile
}

// List returns the entries of the directory at path in stored order.
func (f *Filesystem) List(path string) ([]Entry, bool) {
	n, ok := f.nodes[path]
	if !ok || n.Kind != KindDir {
		return nil, false
	}
	entries := make([]Entry, 0, len(n.Children))
	for _, child := range n.Children {
		entries = append(entries, Entry{Name: child, IsDir: f.IsDir(ChildPath(path, child))})
	}
	return entries, true
}

// Paths returns every path in lexical order.
func (f *Filesystem) Paths() []string {
	paths := make([]string, 0, len(f.nodes))
	for p := range f.nodes {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Len returns the number of nodes.
func (f *Filesystem) Len() int {
	return len(f.nodes)
}

// Resolve turns path into an absolute path relative to cwd. Absolute input
// is returned unchanged. ".." never climbs above the root and "." is dropped.
func Resolve(path, cwd string) string {
	if strings.HasPrefix(path, "/") {
		return path
	}

	parts := splitPath(cwd)
	for _, seg := range splitPath(path) {
		switch seg {
		case "..":
			if len(parts) > 0 {
				parts = parts[:len(parts)-1]
			}
		case ".":
		default:
			parts = append(parts, seg)
		}
	}
	return "/" + strings.Join(parts, "/")
}

func splitPath(p string) []string {
	raw := strings.Split(p, "/")
	parts := make([]string, 0, len(raw))
	for _, s := range raw {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return parts
}

// DisplayPath abbreviates the home directory to "~" for prompts.
func DisplayPath(path, home string) string {
	if home == "" {
		return path
	}
	if path == home {
		return "~"
	}
	if strings.HasPrefix(path, home+"/") {
		return "~" + path[len(home):]
	}
	return path
}
