package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/setidure/blog-api/api"
	"github.com/setidure/blog-api/config"
	"github.com/setidure/blog-api/database"
	"github.com/setidure/blog-api/services"
	"github.com/setidure/blog-api/store"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	c := config.New()

	if config.GetString(c, "API_KEY", "") == "" {
		log.Warn().Msg("API_KEY is not set; all mutating requests will be rejected")
	}

	blogStore, err := newBlogStore(c)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize blog store")
	}

	service := services.NewBlogService(blogStore, services.Defaults{
		Author: config.GetString(c, "DEFAULT_AUTHOR", "Setidure Technologies Team"),
		Image:  config.GetString(c, "DEFAULT_IMAGE", "/api/placeholder/800/400"),
	})

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(service, c)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// newBlogStore picks the persistence backend. The default is the site's
// blogs.js data file; STORE_DRIVER=sqlite switches to the SQLite store.
func newBlogStore(c map[string]string) (store.BlogStore, error) {
	switch driver := config.GetString(c, "STORE_DRIVER", "file"); driver {
	case "file":
		return store.NewFileStore(config.GetString(c, "BLOG_DATA_PATH", "data/blogs.js")), nil
	case "sqlite":
		return database.Open(config.GetString(c, "SQLITE_PATH", "blog.db"))
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q", driver)
	}
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
