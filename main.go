package main

import "github.com/klytics/diffkit/cmd"

func main() {
	cmd.Execute()
}
