package main

import "github.com/sirawit/asset-borrowing/cmd"

func main() {
	cmd.Execute()
}
