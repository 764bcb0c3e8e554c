// Command migrate applies or reverts the embedded database schema.
//
//	migrate up | down | version
package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	_ "github.com/lib/pq"

	"github.com/Apurer/go-gin-backoffice/internal/platform/migrations"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: migrate up|down|version")
	}
	dsn := strings.TrimSpace(os.Getenv("POSTGRES_DSN"))
	if dsn == "" {
		log.Fatal("POSTGRES_DSN not set")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("ping database: %v", err)
	}

	switch os.Args[1] {
	case "up":
		err = migrations.RunSQL(db)
	case "down":
		err = migrations.Down(db)
	case "version":
		var (
			version uint
			dirty   bool
		)
		version, dirty, err = migrations.Version(db)
		if err == nil {
			fmt.Printf("version=%d dirty=%t\n", version, dirty)
		}
	default:
		log.Fatalf("unknown command %q", os.Args[1])
	}
	if err != nil {
		log.Fatalf("migrate %s: %v", os.Args[1], err)
	}
	log.Printf("migrate %s completed", os.Args[1])
}
