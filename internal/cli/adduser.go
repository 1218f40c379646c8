package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/pmaren/bookannex/internal/annex"
	"github.com/pmaren/bookannex/internal/config"
)

// AddUserCommand creates a user account without going through the HTTP API,
// useful for bootstrapping before the server is first exposed.
type AddUserCommand struct {
	AnnexPath string
	Username  string
	Password  string
}

// NewAddUserCommand creates a new AddUserCommand
func NewAddUserCommand() *AddUserCommand {
	return &AddUserCommand{}
}

// ParseFlags parses command line flags
func (cmd *AddUserCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("add-user", flag.ExitOnError)

	fs.StringVar(&cmd.AnnexPath, "annex", config.DefaultAnnexPath, "Path to the annex database")
	fs.StringVar(&cmd.Username, "username", "", "Username for the new account")
	fs.StringVar(&cmd.Password, "password", "", "Password for the new account")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s add-user -username <name> -password <secret> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create a user account in the annex database.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Username == "" || cmd.Password == "" {
		fs.Usage()
		return errors.New("username and password are required")
	}
	return nil
}

// Run executes the add-user command
func (cmd *AddUserCommand) Run() error {
	store, err := annex.Open(cmd.AnnexPath)
	if err != nil {
		return fmt.Errorf("failed to open annex database: %w", err)
	}
	defer store.Close()

	user, err := store.AddUser(cmd.Username, cmd.Password)
	if err != nil {
		if errors.Is(err, annex.ErrUserExists) {
			return fmt.Errorf("username %q is already taken", cmd.Username)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Printf("Created user %s (id %d)\n", user.Username, user.ID)
	return nil
}
