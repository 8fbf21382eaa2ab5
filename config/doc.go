// Copyright 2026 The httpremote Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package config loads the configuration of an httpremote.HTTPRemote from
a YAML or TOML file and the environment, and builds the remote from it.

Loading is layered. Later layers override earlier ones:

 1. Built-in defaults (see Defaults).
 2. A YAML (.yaml, .yml) or TOML (.toml) file, named by the path argument
    to Load or by the HTTPREMOTE_CONFIG environment variable.
 3. HTTPREMOTE_* environment variables.
 4. Validation.

A typical YAML file:

	url: /api
	base_url: https://example.com
	codec: transit+json
	timeout: 30s
	parallel: false
	http2: true
	csrf_token: s3cret
	request_id: true
	rate_limit:
	  per_second: 20
	  burst: 5
	metrics:
	  namespace: myapp

Build turns a loaded Config into a ready to use remote:

	cfg, err := config.Load("")
	...
	remote, err := config.Build(cfg, prometheus.DefaultRegisterer)
*/
package config
