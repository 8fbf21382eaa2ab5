// Copyright 2026 The httpremote Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package timeout defines policies for the request timeout enforced by
// the HTTP transport primitive. The remote itself never owns a timer:
// when a transport's timeout expires, the transport reports an error
// with code errcode.Timeout and the remote classifies it as such.
package timeout
