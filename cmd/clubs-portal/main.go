// @title           Clubs Portal API
// @version         1.0
// @description     Club management portal: clubs, member credentials, events and the guest feed.
// @BasePath        /
//
// @securityDefinitions.apikey BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT token.
package main

import (
	"os"

	"github.com/medicaps/clubs-portal/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
