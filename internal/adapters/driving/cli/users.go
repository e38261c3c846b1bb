package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/queryspan-labs/queryspan-cli/internal/core/domain"
)

var (
	createName    string
	createEmail   string
	createAddress string
	createPhone   string

	updateName    string
	updateEmail   string
	updateAddress string
	updatePhone   string
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage user records",
	Long:  `Commands for listing, creating, updating, and deleting user records.`,
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	RunE:  runUsersList,
}

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user",
	RunE:  runUsersCreate,
}

var usersUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update a user",
	Long:  `Updates the given fields of a user record. Unset flags leave fields unchanged.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersUpdate,
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a user",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersDelete,
}

func init() {
	usersCreateCmd.Flags().StringVar(&createName, "name", "", "full name (required)")
	usersCreateCmd.Flags().StringVar(&createEmail, "email", "", "email address (required)")
	usersCreateCmd.Flags().StringVar(&createAddress, "address", "", "postal address")
	usersCreateCmd.Flags().StringVar(&createPhone, "phone", "", "phone number")

	usersUpdateCmd.Flags().StringVar(&updateName, "name", "", "new full name")
	usersUpdateCmd.Flags().StringVar(&updateEmail, "email", "", "new email address")
	usersUpdateCmd.Flags().StringVar(&updateAddress, "address", "", "new postal address")
	usersUpdateCmd.Flags().StringVar(&updatePhone, "phone", "", "new phone number")

	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersCreateCmd)
	usersCmd.AddCommand(usersUpdateCmd)
	usersCmd.AddCommand(usersDeleteCmd)
	rootCmd.AddCommand(usersCmd)
}

func runUsersList(cmd *cobra.Command, _ []string) error {
	if userService == nil {
		return errors.New("user service not configured")
	}

	users, err := userService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing users: %w", err)
	}

	if len(users) == 0 {
		cmd.Println("No users found.")
		return nil
	}

	cmd.Printf("Users (%s backend):\n\n", userBackend)
	for _, u := range users {
		cmd.Printf("  [%s] %s <%s>\n", u.ID, u.Name, u.Email)
		if u.Address != "" {
			cmd.Printf("      %s\n", u.Address)
		}
		if u.Phone != "" {
			cmd.Printf("      %s\n", u.Phone)
		}
	}
	return nil
}

func runUsersCreate(cmd *cobra.Command, _ []string) error {
	if userService == nil {
		return errors.New("user service not configured")
	}

	id, err := userService.Create(cmd.Context(), domain.CreateUser{
		Name:    createName,
		Email:   createEmail,
		Address: createAddress,
		Phone:   createPhone,
	})
	if err != nil {
		return fmt.Errorf("creating user: %w", err)
	}

	cmd.Printf("User created with ID: %s\n", id)
	return nil
}

func runUsersUpdate(cmd *cobra.Command, args []string) error {
	if userService == nil {
		return errors.New("user service not configured")
	}

	var update domain.UserUpdate
	if cmd.Flags().Changed("name") {
		update.Name = &updateName
	}
	if cmd.Flags().Changed("email") {
		update.Email = &updateEmail
	}
	if cmd.Flags().Changed("address") {
		update.Address = &updateAddress
	}
	if cmd.Flags().Changed("phone") {
		update.Phone = &updatePhone
	}

	if err := userService.Update(cmd.Context(), args[0], update); err != nil {
		return fmt.Errorf("updating user: %w", err)
	}

	cmd.Printf("User %s updated\n", args[0])
	return nil
}

func runUsersDelete(cmd *cobra.Command, args []string) error {
	if userService == nil {
		return errors.New("user service not configured")
	}

	if err := userService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}

	cmd.Printf("User %s deleted\n", args[0])
	return nil
}
