package main

import "github.com/ThatOtherAndrew/Flasher/cmd"

func main() {
	cmd.Execute()
}
