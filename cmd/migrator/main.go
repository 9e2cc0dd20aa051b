package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"app/cfg"
	"app/db"

	"gopkg.in/yaml.v3"
)

const migrationsFolder = "db/migrations"

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "cfg-path", "cfg/cfg.yaml", "path to config file")
	flag.Parse()

	var cfg *cfg.Config
	if cfgFile, err := os.ReadFile(cfgPath); err != nil {
		log.Fatalf("can't open %s file: %v", cfgPath, err)
	} else if err = yaml.Unmarshal(cfgFile, &cfg); err != nil {
		log.Fatal("can't unmarshal cfg.yaml file", err)
	}

	createDbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	pg, err := db.New(createDbCtx, &cfg.DB)
	if err != nil {
		log.Fatal("failed to init postgre db: ", err)
	}
	defer pg.Close()

	files, err := os.ReadDir(migrationsFolder)
	if err != nil {
		log.Fatalf("can't read migrations folder: %v", err)
	}

	names := make([]string, 0, len(files))
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != ".sql" {
			continue
		}

		names = append(names, file.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		query, err := os.ReadFile(filepath.Join(migrationsFolder, name))
		if err != nil {
			log.Fatalf("can't read migration %s: %v", name, err)
		}

		if _, err := pg.Exec(context.Background(), string(query)); err != nil {
			log.Fatalf("migration %s failed: %v", name, err)
		}

		log.Printf("applied %s", name)
	}
}
