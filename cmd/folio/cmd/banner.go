package cmd

import (
	"fmt"
)

const banner = `
  ______    _ _
 |  ____|  | (_)
 | |__ ___ | |_  ___
 |  __/ _ \| | |/ _ \
 | | | (_) | | | (_) |
 |_|  \___/|_|_|\___/

`

func printBanner() {
	fmt.Printf("\x1b[34m%s\x1b[0m", banner)
	fmt.Printf("\x1b[32m  Personal Portfolio Service - Version %s\x1b[0m\n\n", Version)
}
