// migrate applies the embedded SQL migrations: go run ./cmd/migrate -direction up
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"business-onboarding/pkg/database"
	"business-onboarding/pkg/utils"
)

func main() {
	direction := flag.String("direction", "up", "Migration direction: up or down")
	flag.Parse()

	config, err := utils.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if config.Database.Name == "" {
		fmt.Fprintln(os.Stderr, "DB_NAME is not set; create a .env or export the DB_* variables")
		os.Exit(1)
	}

	if err := database.Migrate(config.Database.URL(), *direction); err != nil {
		if errors.Is(err, database.ErrNoChange) {
			fmt.Println("migrate: no change")
			return
		}
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}

	fmt.Printf("migrate %s: done\n", *direction)
}
