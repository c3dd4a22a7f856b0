package main

import "github.com/ozkatz/cloudbytes/cmd"

func main() {
	cmd.Execute()
}
