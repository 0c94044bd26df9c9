// Package discovery collects the regular files below a sample root.
//
// A root that is itself a file yields a set holding only that file, which lets
// the join and scan commands run against a single fragment or sample.
package discovery
