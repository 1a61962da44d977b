package main

import (
	"os"

	"github.com/JonMunkholm/countycontacts/cmd/contactsctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
