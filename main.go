package main

import "github.com/cryptodevs/whitelist-dapp/cmd"

func main() {
	cmd.Execute()
}
