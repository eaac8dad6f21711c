package main

import "github.com/kardexlab/inventory-api/cmd"

// @title                      Inventory System API
// @version                    1.0
// @description                Multi-tenant inventory management backend with JWT authentication and role-based access control.
//
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
// @description                Bearer token issued by /api/auth/login
func main() {
	cmd.Execute()
}
