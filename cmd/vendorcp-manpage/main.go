package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/vendorcp/cmd/vendorcp"
	"github.com/arthur-debert/vendorcp/internal/version"
)

func main() {
	rootCmd := vendorcp.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "VENDORCP",
		Section: "1",
		Source:  "vendorcp " + version.Version,
		Manual:  "vendorcp manual",
	}

	err := doc.GenMan(rootCmd, header, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
