// Package deps checks that the external audio tools are installed.
package deps
