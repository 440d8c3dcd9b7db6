package main

import "github.com/alexei38/disk-cpu-load/cmd"

func main() {
	cmd.Execute()
}
