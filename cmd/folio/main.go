package main

import "github.com/jmcleod/folio/cmd/folio/cmd"

func main() {
	cmd.Execute()
}
