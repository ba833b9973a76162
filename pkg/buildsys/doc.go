// Package buildsys runs the external build tools (cmake, valgrind, ...) through mvdan.cc/sh.
// Commands are plain shell strings so they can be logged, printed in dry runs and compared in
// tests without spawning anything.
package buildsys
