package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/casaviva/hogar-backend/config"
	"github.com/casaviva/hogar-backend/internal/app/repository"
	"github.com/casaviva/hogar-backend/internal/db"
	"github.com/casaviva/hogar-backend/internal/seed"
	"github.com/casaviva/hogar-backend/pkg/logger"
)

func main() {
	demo := flag.Bool("demo", false, "load the built-in demo catalog")
	file := flag.String("file", "", "import products from an .xlsx file in the admin export layout")
	yes := flag.Bool("yes", false, "skip the confirmation prompt")
	flag.Parse()

	if *demo == (*file != "") {
		fmt.Fprintln(os.Stderr, "Usage: seed -demo | seed -file <catalog.xlsx> [-yes]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger.Initialize(logger.Config{
		Level:       cfg.Log.Level,
		Format:      "console",
		EnableColor: true,
		Service:     "casaviva-seed",
	})

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	var rows []seed.Row
	var skipped []seed.RowError
	if *demo {
		rows = seed.DemoProducts()
	} else {
		fmt.Printf("Reading XLSX file: %s\n", *file)
		f, err := os.Open(*file)
		if err != nil {
			log.Fatal("Failed to open XLSX:", err)
		}
		rows, skipped, err = seed.ReadWorkbook(f)
		f.Close()
		if err != nil {
			log.Fatal("Failed to read XLSX:", err)
		}
	}

	for _, s := range skipped {
		fmt.Printf("  skipping row %d: %s\n", s.Line, s.Reason)
	}
	fmt.Printf("Products to import: %d\n", len(rows))

	if !*yes {
		fmt.Print("Do you want to proceed with the import? (yes/no): ")
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "yes" && confirm != "y" {
			fmt.Println("Import cancelled.")
			return
		}
	}

	importer := seed.NewImporter(
		repository.NewProductRepository(db.GetDB()),
		repository.NewCategoryRepository(db.GetDB()),
	)
	result, err := importer.Import(rows)
	if err != nil {
		log.Fatal("Import failed:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Created: %d, updated: %d, skipped: %d\n", result.Created, result.Updated, len(skipped))
}
