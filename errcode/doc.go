// Copyright 2026 The httpremote Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package errcode classifies the low-level failure of a transport
// primitive into a small, closed set of codes: none, exception,
// http-error, abort, timeout, and unknown.
//
// Transport primitives use Categorize to turn a Go error into a Code
// and ForStatus to decide whether an HTTP status is a failure. The
// remote reports the resulting Code to callers on the network-failed
// path.
//
// Like the rest of the low-level packages, errcode depends only on the
// standard library.
package errcode
