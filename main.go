package main

import "github.com/user/cinelist/cmd"

func main() {
	cmd.Execute()
}
