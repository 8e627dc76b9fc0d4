// Package main provides the gnsubsample CLI application.
// gnsubsample selects focal and context samples of aligned genomic
// sequences.
package main

import "github.com/gnames/gnsubsample/cmd"

func main() {
	cmd.Execute()
}
