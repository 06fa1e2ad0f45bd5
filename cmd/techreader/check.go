package main

import (
	"context"
	"fmt"
	"time"

	"github.com/eringen/techreader/strapi"
)

// runCheck pings the CMS and reports how many posts and categories it serves.
func runCheck() error {
	cfg, logger, cms, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	fmt.Printf("Checking CMS at %s\n", cfg.StrapiURL)
	if cfg.StrapiToken == "" {
		fmt.Println("  token:      not set (public access only)")
	} else {
		fmt.Println("  token:      set")
	}

	n, err := cms.Ping(ctx)
	if err != nil {
		return fmt.Errorf("posts endpoint: %s", strapi.FormatError(err))
	}
	fmt.Printf("  posts:      %d\n", n)

	cats, err := cms.FetchCategories(ctx)
	if err != nil {
		fmt.Printf("  categories: unavailable (%s)\n", strapi.FormatError(err))
	} else {
		fmt.Printf("  categories: %d\n", len(cats))
	}

	fmt.Println("OK")
	return nil
}
