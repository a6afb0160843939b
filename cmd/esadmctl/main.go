/*
Copyright © 2025 esadmctl authors
SPDX-License-Identifier: Apache-2.0
*/
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/esadmin/esadmctl/pkg/cli"
)

// version is injected at build time via ldflags.
var version = "dev"

func main() {
	if err := cli.RootCommand(version).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
