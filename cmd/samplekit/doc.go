// Command samplekit reorganizes sample-library audio.
//
//	samplekit join PATH     join "<name> STA" and "<name> STP" fragments into "<name>.flac"
//	samplekit scan PATH     report instruments whose channels repeat across notes
//	samplekit deps          show the external tools join relies on
//	samplekit config init   write a sample configuration file
package main
