// Command checkout drives one checkout attempt against a running API
// server: it loads the saved draft and token from a local state
// directory, arms the countdown controller, and reports events until the
// order is placed or cancelled.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodexpress/internal/checkout"
	"foodexpress/internal/clock"
	"foodexpress/internal/config"
	"foodexpress/internal/pricing"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		apiURL   = flag.String("api", "http://localhost:8080", "order API base URL")
		stateDir = flag.String("state", ".checkout", "directory for draft and session state")
		duration = flag.Int("duration", 60, "countdown length in seconds")
	)
	flag.Parse()

	logger := config.NewLogger(config.LoggerConfig{Level: "info", Format: "console"})

	sessionKV, err := checkout.NewFileKV(*stateDir)
	if err != nil {
		return err
	}
	// The draft is session-scoped; it shares the state directory so a
	// restarted process resumes the same checkout attempt.
	drafts := checkout.NewDraftStore(sessionKV)
	session := checkout.NewSessionStore(sessionKV)

	client := checkout.NewClient(*apiURL, session, logger)

	controller := checkout.New(
		checkout.Config{Duration: *duration, Interval: time.Second},
		drafts,
		session,
		client,
		pricing.DefaultRules(),
		clock.NewSystem(),
		logger,
	)
	defer controller.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := controller.Arm(ctx); err != nil {
		switch {
		case errors.Is(err, checkout.ErrNotAuthenticated):
			return fmt.Errorf("no auth token in %s: log in first", *stateDir)
		case errors.Is(err, checkout.ErrNoDraft):
			return fmt.Errorf("no valid checkout draft in %s: fill the cart first", *stateDir)
		default:
			return err
		}
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case event, ok := <-controller.Events():
			if !ok {
				return nil
			}
			switch event.Kind {
			case checkout.EventTick:
				fmt.Printf("\rOrder in progress: %02d:%02d", event.Remaining/60, event.Remaining%60)
			case checkout.EventHalfway:
				fmt.Println("\nHalfway done! It'll be ready soon!")
			case checkout.EventPlaced:
				fmt.Printf("\nYour order has been placed! id=%s total=%.2f\n", event.Order.ID, event.Order.Total)
			case checkout.EventFailed:
				fmt.Printf("\nFailed to place order: %v\n", event.Err)
				fmt.Println("Draft kept; rerun to retry.")
				return event.Err
			case checkout.EventCancelled:
				fmt.Println("\nYour order has been cancelled.")
			}
		case <-interrupt:
			controller.Cancel()
		}
	}
}
