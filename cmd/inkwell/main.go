package main

import (
	"fmt"
	"os"
	"syscall"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	"github.com/crowfix/inkwell"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	cmd := "serve"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "serve":
		if err := runServe(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "maintain":
		if err := runMaintain(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "useradd":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: inkwell useradd <username>")
			os.Exit(1)
		}
		if err := runUseradd(os.Args[2]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("inkwell %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func loadConfig() (inkwell.SiteConfig, error) {
	return inkwell.LoadConfigFile(inkwell.EnvOr("INKWELL_CONFIG", "inkwell.yaml"))
}

func runServe() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	app := inkwell.New(cfg)
	defer app.Close()
	return app.Start()
}

// runMaintain prunes expired sessions and orphaned tags, then exits. Run it
// from cron; the server never prunes on its own.
func runMaintain() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := inkwell.NewStore(cfg.DatabasePath, nil)
	if err != nil {
		return err
	}
	defer store.Close()

	settings, err := inkwell.NewSettings(store)
	if err != nil {
		return err
	}
	return inkwell.Maintain(store, inkwell.NewSessions(store, settings))
}

func runUseradd(username string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := inkwell.NewStore(cfg.DatabasePath, nil)
	if err != nil {
		return err
	}
	defer store.Close()

	fmt.Fprintf(os.Stderr, "Password for %s: ", username)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	if len(password) == 0 {
		return fmt.Errorf("empty password")
	}

	hash, err := bcrypt.GenerateFromPassword(password, bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := store.CreateUser(username, string(hash)); err != nil {
		return err
	}
	fmt.Printf("Created user %s\n", username)
	return nil
}

func printUsage() {
	fmt.Println(`inkwell - a small personal blogging engine

Usage:
  inkwell [command]

Commands:
  serve            Run the blog server (default)
  maintain         Prune expired sessions and unused tags, then exit
  useradd <name>   Create an admin user (prompts for a password)
  version          Print the inkwell version
  help             Show this help message

Configuration is read from inkwell.yaml, or the file named by INKWELL_CONFIG.`)
}
