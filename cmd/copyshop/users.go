package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/moses-ramoeletsi/copyshop/internal/auth"
	"github.com/moses-ramoeletsi/copyshop/internal/cli"
	"github.com/moses-ramoeletsi/copyshop/internal/common"
	"github.com/moses-ramoeletsi/copyshop/internal/model"
	"github.com/moses-ramoeletsi/copyshop/internal/service"
)

func usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage operator accounts (admin only)",
	}

	cmd.AddCommand(usersListCmd())
	cmd.AddCommand(usersAddCmd())
	cmd.AddCommand(usersUpdateCmd())
	cmd.AddCommand(usersDeleteCmd())

	return cmd
}

func usersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all user accounts",
		Args:  cobra.NoArgs,
		RunE:  runUsersList,
	}
}

func usersAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <username>",
		Short: "Create a user account",
		Args:  cobra.ExactArgs(1),
		RunE:  runUsersAdd,
	}

	cmd.Flags().String("password", "", "password (prompted if omitted)")
	cmd.Flags().String("full-name", "", "full name of the operator")
	cmd.Flags().String("role", string(model.RoleUser), "role: admin or user")

	return cmd
}

func usersUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <username>",
		Short: "Update a user account",
		Args:  cobra.ExactArgs(1),
		RunE:  runUsersUpdate,
	}

	cmd.Flags().String("password", "", "set a new password")
	cmd.Flags().String("full-name", "", "set a new full name")
	cmd.Flags().String("role", "", "set a new role: admin or user")

	return cmd
}

func usersDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <username>",
		Short: "Delete a user account",
		Args:  cobra.ExactArgs(1),
		RunE:  runUsersDelete,
	}
}

func runUsersList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if _, err := requireAdmin(); err != nil {
		return err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	users, err := store.ListUsers(ctx)
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatTitle("Users")) //nolint:forbidigo // User-facing output
	for _, u := range users {
		name := u.FullName
		if name == "" {
			name = "-"
		}
		fmt.Printf("%-16s %-6s %-24s created %s by %s\n", //nolint:forbidigo // User-facing output
			u.Username, u.Role, name, u.CreatedAt.Format("2006-01-02"), u.CreatedBy)
	}

	return nil
}

func runUsersAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	session, err := requireAdmin()
	if err != nil {
		return err
	}

	username := strings.TrimSpace(args[0])
	roleName, _ := cmd.Flags().GetString("role")
	role := model.Role(roleName)
	if !role.Valid() {
		return fmt.Errorf("unknown role %q, expected admin or user", roleName)
	}
	fullName, _ := cmd.Flags().GetString("full-name")

	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		reader := bufio.NewReader(os.Stdin)
		password, err = promptString(reader, "Password")
		if err != nil {
			return err
		}
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	manager := auth.NewManager(store)
	if err := manager.Register(ctx, username, password, role, fullName, session.Username); err != nil {
		if errors.Is(err, common.ErrDuplicateEntry) {
			return fmt.Errorf("user %q already exists", username)
		}
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created %s account %q", role, username))) //nolint:forbidigo // User-facing output

	return nil
}

func runUsersUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if _, err := requireAdmin(); err != nil {
		return err
	}

	username := strings.TrimSpace(args[0])

	var update service.UserUpdate
	if password, _ := cmd.Flags().GetString("password"); password != "" {
		hash, err := auth.HashPassword(password)
		if err != nil {
			return err
		}
		update.PasswordHash = &hash
	}
	if fullName := cmd.Flags().Lookup("full-name"); fullName.Changed {
		value := fullName.Value.String()
		update.FullName = &value
	}
	if roleName, _ := cmd.Flags().GetString("role"); roleName != "" {
		role := model.Role(roleName)
		if !role.Valid() {
			return fmt.Errorf("unknown role %q, expected admin or user", roleName)
		}
		update.Role = &role
	}
	if update.PasswordHash == nil && update.FullName == nil && update.Role == nil {
		return fmt.Errorf("nothing to update, pass --password, --full-name or --role")
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	if err := store.UpdateUser(ctx, username, update); err != nil {
		switch {
		case errors.Is(err, common.ErrNotFound):
			return fmt.Errorf("user %q not found", username)
		case errors.Is(err, common.ErrLastAdmin):
			return fmt.Errorf("cannot demote %q: at least one admin account must remain", username)
		}
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated user %q", username))) //nolint:forbidigo // User-facing output

	return nil
}

func runUsersDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	session, err := requireAdmin()
	if err != nil {
		return err
	}

	username := strings.TrimSpace(args[0])
	if username == session.Username {
		return fmt.Errorf("cannot delete the account you are logged in as")
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	if err := store.DeleteUser(ctx, username); err != nil {
		switch {
		case errors.Is(err, common.ErrNotFound):
			return fmt.Errorf("user %q not found", username)
		case errors.Is(err, common.ErrLastAdmin):
			return fmt.Errorf("cannot delete %q: at least one admin account must remain", username)
		}
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted user %q", username))) //nolint:forbidigo // User-facing output

	return nil
}
