package main

import "postcard-gallery/cmd"

func main() {
	cmd.Execute()
}
