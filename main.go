package main

import "github.com/lumiere-atelier/storefront/cmd"

func main() {
	cmd.Start()
}
