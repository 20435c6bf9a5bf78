package main

import "delivery-sync/cmd"

func main() {
	cmd.Execute()
}
