// Copyright 2021 The fetcher Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command fetch sends HTTP requests through a fetcher. See package
// github.com/gogama/fetcher/internal/cli for usage.
package main

import (
	"os"

	"github.com/gogama/fetcher/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
