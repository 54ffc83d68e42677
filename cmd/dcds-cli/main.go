package main

import (
	"fmt"
	"net/http"
	"os"
	"time"
)

// Version is set at build time
var Version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	cli := &CLI{
		BaseURL: getEnv("DCDS_URL", "http://localhost:8080"),
		Token:   os.Getenv("DCDS_TOKEN"),
		Client:  &http.Client{Timeout: 30 * time.Second},
	}

	var err error
	switch cmd {
	case "signup":
		err = cli.signupCommand(args)
	case "signin", "login":
		err = cli.signinCommand(args)
	case "user", "users":
		err = cli.usersCommand()
	case "whoami":
		err = cli.whoamiCommand()
	case "version":
		fmt.Printf("dcds-cli %s\n", Version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`dcds-cli - DCDS Authentication Service Command Line Interface

Usage:
  dcds-cli <command> [options]

Environment Variables:
  DCDS_URL    Base URL of the DCDS server (default: http://localhost:8080)
  DCDS_TOKEN  Session token for authenticated commands

Commands:
  signup   <username> <email> <password>   Register a new account
  signin   <username> <password>           Log in and print a session token
  users                                    List registered accounts
  whoami                                   Show the claims of DCDS_TOKEN
  version                                  Print the CLI version
`)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
