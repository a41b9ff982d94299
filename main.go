package main

import "github.com/freshmarket/commerce-api/cmd"

func main() {
	cmd.Execute()
}
