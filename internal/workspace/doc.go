// Package workspace manages the timestamped build directories under dist/.
//
// Every build gets a fresh directory named by formatting the build start time
// with the configured layout (e.g. dist/20240301_101500). Two builds started
// within the same formatted instant get a numeric suffix instead of sharing a
// directory.
package workspace
