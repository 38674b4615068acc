package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"mannerisms/internal/userclient"
)

func main() {
	username := flag.String("username", "", "account username (required)")
	server := flag.String("server", "http://127.0.0.1:8080", "quiz service base URL")
	culture := flag.String("culture", "", "default culture for play and advanced")
	register := flag.Bool("register", false, "create the account before logging in")
	timeout := flag.Duration("timeout", 45*time.Second, "HTTP timeout; advanced answers wait on the grader")
	flag.Parse()

	if *username == "" {
		fmt.Fprintln(os.Stderr, "error: --username is required")
		os.Exit(1)
	}
	password := os.Getenv("QUIZ_PASSWORD")
	if password == "" {
		fmt.Fprintln(os.Stderr, "error: QUIZ_PASSWORD must be set")
		os.Exit(1)
	}

	err := userclient.Run(context.Background(), os.Stdin, os.Stdout, userclient.Config{
		Username:    *username,
		Password:    password,
		ServerURL:   *server,
		Culture:     *culture,
		Register:    *register,
		HTTPTimeout: *timeout,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
