// Package site runs a full blog build.
//
// A Generator executes a fixed sequence of stages against a blog directory:
// prepare, load, index, output, render, assets, feeds, analytics, report and
// archive. Each stage is timed and reported to the metrics Recorder; the
// context is checked before every stage so a canceled build stops between
// stages. The posts directory and theme are checked before any output is
// written.
//
// Documents that fail to parse are logged and skipped. Any other stage error
// aborts the build with a fatal ClassifiedError.
package site
