package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/wuwenbin0122/userdash/internal/db"
	"github.com/wuwenbin0122/userdash/internal/models"
	"github.com/wuwenbin0122/userdash/internal/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("config: no .env file loaded: %v", err)
	}

	cfg, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	users := models.SampleUsers()

	if cfg.Postgres.Enabled() {
		gormDB, err := db.NewGORM(cfg.Postgres.BuildDSN())
		if err != nil {
			log.Fatalf("connect postgres: %v", err)
		}

		n, err := db.SeedUsers(gormDB, users)
		if err != nil {
			log.Fatalf("seed postgres users: %v", err)
		}
		log.Printf("seeded %d users into postgres", n)
	}

	if cfg.Mongo.URI != "" {
		ctx := context.Background()
		mongoStore, err := db.NewMongo(ctx, cfg.Mongo)
		if err != nil {
			log.Fatalf("connect mongo: %v", err)
		}
		defer mongoStore.Close(ctx)

		if err := mongoStore.EnsureCollections(ctx); err != nil {
			log.Fatalf("ensure mongo collections: %v", err)
		}
		if err := mongoStore.UpsertUsers(ctx, users); err != nil {
			log.Fatalf("seed mongo users: %v", err)
		}
		log.Printf("seeded %d users into mongo", len(users))
	}

	if !cfg.Postgres.Enabled() && cfg.Mongo.URI == "" {
		log.Println("no database configured; set POSTGRES_DSN or MONGO_URI")
	}
}
