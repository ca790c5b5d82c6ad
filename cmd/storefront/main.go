// Command storefront is the retail storefront and admin console client.
package main

import (
	"os"

	"github.com/qmexai/storefront-client/cmd/storefront/commands"
)

func main() {
	os.Exit(commands.Execute())
}
