// Copyright 2021 The fetcher Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package cli implements the fetch command, a small command-line front end
to the fetcher package.

	fetch [flags] METHOD URL

The command sends METHOD to URL one or more times through a
fetcher.Fetcher, prints the response body (or a gjson query over it) to
standard output, and exits with a code derived from the outcome of the
last call:

	0   success
	1   response failure (status 400 or above)
	2   timeout
	3   abort (interrupted)
	4   network failure
	64  usage or configuration error

Defaults can be read from a YAML file, by default .fetch.yaml in the
current directory. Flags override the file.
*/
package cli
