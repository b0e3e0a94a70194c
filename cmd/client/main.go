package main

import "bookshelf/cmd/client/cmd"

func main() {
	cmd.Execute()
}
