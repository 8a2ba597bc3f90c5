package main

import "github.com/wolfitem/newsradar/cmd"

func main() {
	cmd.Execute()
}
