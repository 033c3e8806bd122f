package main

import "github.com/getaltair/altair-sub003/cmd/altair/root"

func main() {
	root.Execute()
}
