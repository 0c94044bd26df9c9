// Package pairing matches start and stop fragments into join pairs.
//
// A fragment is named "<name> STA<suffix>" or "<name> STP<suffix>". Both
// fragments of one name form a Pair whose Target is "<name><target ext>" in the
// same directory. Names are compared in Unicode NFC so fragments written by
// filesystems that store decomposed names still meet.
package pairing
