// Package scan groups named samples and reports channel conflicts.
//
// Sample stems follow "<round robin> <velocity> <note> <instrument> <channel>".
// Samples are indexed by parent directory, instrument, note and channel. A
// conflict is an instrument whose channels repeat across its notes within one
// directory. Files below a one-shot directory are exempt from the naming rule
// but must be alone in their directory.
package scan
