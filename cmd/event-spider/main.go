package main

import "github.com/luvbee/event-spider/internal/cli"

func main() {
	cli.Execute()
}
