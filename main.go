package main

import "github.com/bouwofferte/quote-service/cmd"

func main() {
	cmd.Execute()
}
