package main

import "mahjong/cmd"

func main() {
	cmd.Execute()
}
