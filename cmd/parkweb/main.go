package main

import "github.com/openpark/parkweb/cmd/parkweb/command"

func main() {
	command.Execute()
}
