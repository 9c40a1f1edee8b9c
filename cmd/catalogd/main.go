// @title                      KRM Catalog API
// @version                    1.0
// @description                Product catalog behind a stateless Basic authentication gate.
// @BasePath                   /
// @securityDefinitions.basic  BasicAuth
package main

import "github.com/krm/catalog-api/cmd/catalogd/cmd"

func main() {
	cmd.Execute()
}
