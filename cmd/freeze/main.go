package main

import "github.com/thirdweb-dev/freeze/cmd"

func main() {
	cmd.Execute()
}
