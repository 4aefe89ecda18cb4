package main

import (
	"os"

	_ "task_tracker/docs"
)

// @title                       Task Tracker API
// @version                     1.0
// @description                 Multi-tenant task tracker: bearer-token auth and per-user task CRUD.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
