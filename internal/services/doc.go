// Package services defines shared utilities consumed by the join and scan
// commands and the external tool wrappers.
//
// It provides context helpers that stamp run identifiers and pair names for
// logging, plus structured error markers and the Wrap helper so failures from
// external programs, validation and the filesystem can be told apart.
package services
