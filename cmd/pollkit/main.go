package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/calder-r/pollkit/pkg/fetch"
	"github.com/calder-r/pollkit/pkg/tick"
	"github.com/calder-r/pollkit/pkg/token"
	"github.com/calder-r/pollkit/types"
)

const (
	defaultURL        = "https://jsonplaceholder.typicode.com/todos/1"
	defaultIntervalMS = 1000
)

func main() {
	url := os.Getenv("POLLKIT_URL")
	if url == "" {
		url = defaultURL
	}

	intervalMS := defaultIntervalMS
	if v := os.Getenv("POLLKIT_INTERVAL_MS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("POLLKIT_INTERVAL_MS is not a number: %v", err)
		}
		intervalMS = n
	}

	client := fetch.NewClient(clientOptions()...)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	todos := fetch.NewAPI[types.Todo](client)
	todo, err := todos.Get(ctx, url)
	if err != nil {
		// Already logged at the detection site; decide the exit here.
		var serr *fetch.StatusError
		if errors.As(err, &serr) {
			log.Fatalf("server rejected the request with status %d", serr.Code)
		}
		log.Fatalf("fetch failed: %v", err)
	}
	log.Printf("fetched todo %d (owner %d): %q completed=%t",
		todo.ID, todo.OwnerID, todo.Title, todo.Completed)

	source, err := tick.New(time.Duration(intervalMS)*time.Millisecond, func(n int) {
		fmt.Printf("Timer updated: %d seconds\n", n)
	})
	if err != nil {
		log.Fatalf("invalid timer configuration: %v", err)
	}

	log.Println("Starting...")
	if err := source.Start(); err != nil {
		log.Fatalf("unable to start timer: %v", err)
	}

	<-ctx.Done()

	log.Println("Stopping...")
	source.Stop()
	log.Println("Timer stopped.")
}

func clientOptions() []fetch.ClientOption {
	var opts []fetch.ClientOption
	if f := os.Getenv("POLLKIT_TOKEN_FILE"); f != "" {
		tp, err := token.NewFileProvider(f)
		if err != nil {
			log.Fatalf("unable to read token file %q: %v", f, err)
		}
		opts = append(opts, fetch.WithToken(tp))
	} else if t := os.Getenv("POLLKIT_TOKEN"); t != "" {
		opts = append(opts, fetch.WithToken(token.NewStatic(t)))
	}
	return opts
}
