package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/moses-ramoeletsi/copyshop/internal/auth"
	"github.com/moses-ramoeletsi/copyshop/internal/cli"
)

func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login [username]",
		Short: "Log in as an operator",
		Long: `Authenticate against the user table and store a session token so
subsequent commands run as this operator.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runLogin,
	}

	cmd.Flags().String("password", "", "password (prompted when omitted)")

	return cmd
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	reader := bufio.NewReader(os.Stdin)

	username := ""
	if len(args) > 0 {
		username = args[0]
	} else {
		username, err = promptString(reader, "Username")
		if err != nil {
			return fmt.Errorf("failed to read username: %w", err)
		}
	}

	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		password, err = promptString(reader, "Password")
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
	}

	user, err := auth.NewManager(store).Authenticate(ctx, username, password)
	if err != nil {
		return err
	}

	if err := newSessionManager().Login(user); err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Logged in as %s (%s)", user.Username, user.Role))) //nolint:forbidigo // User-facing output
	return nil
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := newSessionManager().Logout(); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Logged out")) //nolint:forbidigo // User-facing output
			return nil
		},
	}
}
