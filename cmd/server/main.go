package main

import (
	"fmt"
	"os"

	"github.com/williamsgomess/seubarriga-api/internal/logger"
)

// @title Seu Barriga API
// @version 1.0
// @description Personal finance ledger: accounts, transactions and transfers.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()
	defer logger.Log.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
