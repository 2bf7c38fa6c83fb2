package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/wuwenbin0122/userdash/internal/client"
	"github.com/wuwenbin0122/userdash/internal/dashboard"
	"github.com/wuwenbin0122/userdash/internal/models"
	"github.com/wuwenbin0122/userdash/internal/utils"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: .env not loaded: %v", err)
	}

	cfg, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("config: failed to load: %v", err)
	}

	url := flag.String("url", cfg.Users.URL, "users endpoint")
	search := flag.String("search", "", "filter users by text")
	sortBy := flag.String("sort", "", "sort category: name or email")
	desc := flag.Bool("desc", false, "sort descending")
	asJSON := flag.Bool("json", false, "print users as JSON")
	flag.Parse()

	logger, err := utils.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("logger: failed to build: %v", err)
	}
	defer logger.Sync()

	category := dashboard.CategoryNone
	if *sortBy != "" {
		c, ok := dashboard.ParseCategory(strings.ToLower(*sortBy))
		if !ok {
			fmt.Fprintf(os.Stderr, "unknown sort category %q, expected one of %s\n", *sortBy, strings.Join(dashboard.AcceptedCategories, ", "))
			os.Exit(2)
		}
		category = c
	}

	c := client.New(*url,
		client.WithToken(cfg.Users.Token),
		client.WithTimeout(cfg.Users.Timeout),
		client.WithLogger(logger),
	)

	state := dashboard.NewState()
	state.Ascending = !*desc

	users, err := c.FetchUsers(context.Background())
	if err != nil {
		state = state.Failed(err)
		logger.Debug("fetch failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, state.Error)
		os.Exit(1)
	}

	state = state.Loaded(users).WithSearch(*search)
	if category != dashboard.CategoryNone {
		state = state.SelectCategory(category)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(state.Visible()); err != nil {
			log.Fatalf("encode users: %v", err)
		}
		return
	}

	printCards(os.Stdout, state.Visible())
}

func printCards(w io.Writer, users []models.User) {
	if len(users) == 0 {
		fmt.Fprintln(w, "No users found.")
		return
	}
	for _, u := range users {
		fmt.Fprintf(w, "#%d %s\n", u.ID, u.Name)
		for _, field := range u.Fields()[2:] {
			if field.Value == "" {
				continue
			}
			fmt.Fprintf(w, "    %-9s %s\n", dashboard.Capitalize(field.Key)+":", field.Value)
		}
		if u.Address.City != "" {
			fmt.Fprintf(w, "    %-9s %s, %s\n", "Address:", u.Address.Street, u.Address.City)
		}
		if u.Company.Name != "" {
			fmt.Fprintf(w, "    %-9s %s\n", "Company:", u.Company.Name)
		}
	}
}
