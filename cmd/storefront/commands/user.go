package commands

import (
	"errors"
	"strconv"

	"github.com/ToNga156/FinalProject/cmd/storefront/output"
	"github.com/ToNga156/FinalProject/internal/models"
	"github.com/ToNga156/FinalProject/internal/shop"
	"github.com/spf13/cobra"
)

var userFlags struct {
	password string
	role     string

	username string
	email    string
	phone    string
	address  string
	avatar   string
}

func newUserCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "user",
		Aliases: []string{"users"},
		Short:   "Manage accounts",
	}

	addCmd := &cobra.Command{
		Use:   "add <username>",
		Short: "Register an account",
		Long: `Register an account. New accounts are customers unless --role admin is given.

Examples:
  storefront user add lan --password secret1
  storefront user add boss --password secret1 --role admin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			role := models.Role(userFlags.role)
			if !role.Valid() {
				return errors.New("--role must be user or admin")
			}

			id, err := a.shop.Signup(ctx, shop.SignupRequest{Username: args[0], Password: userFlags.password})
			if err != nil {
				return err
			}
			if role == models.RoleAdmin {
				if err := a.store.SetRole(ctx, id, role); err != nil {
					return err
				}
			}

			if jsonOutput {
				return output.JSON(map[string]any{"id": id, "role": role})
			}
			output.Success("Created %s %q with id %d", role, args[0], id)
			return nil
		},
	}
	addCmd.Flags().StringVarP(&userFlags.password, "password", "p", "", "Password")
	addCmd.Flags().StringVar(&userFlags.role, "role", string(models.RoleUser), "Role (user or admin)")
	_ = addCmd.MarkFlagRequired("password")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := a.store.ListUsers(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput {
				return output.JSON(users)
			}
			rows := make([][]string, 0, len(users))
			for i := range users {
				u := &users[i]
				rows = append(rows, []string{adminMark(u), strconv.Itoa(u.ID), u.Username, string(u.Role), u.Email, u.Phone})
			}
			return output.Table([]string{"", "ID", "USERNAME", "ROLE", "EMAIL", "PHONE"}, rows)
		},
	}

	showCmd := &cobra.Command{
		Use:   "show <username>",
		Short: "Show one account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.lookupUser(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput {
				return output.JSON(u)
			}
			return output.Table([]string{"FIELD", "VALUE"}, [][]string{
				{"id", strconv.Itoa(u.ID)},
				{"username", u.Username},
				{"role", string(u.Role)},
				{"admin", strconv.FormatBool(u.IsAdmin())},
				{"email", u.Email},
				{"phone", u.Phone},
				{"address", u.Address},
				{"avatar", u.Avatar},
			})
		},
	}

	loginCmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Check a username and password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.shop.Login(cmd.Context(), args[0], userFlags.password)
			if err != nil {
				return err
			}
			if u == nil {
				return errors.New("invalid username or password")
			}
			if jsonOutput {
				return output.JSON(u)
			}
			output.Success("Logged in as %s (%s)", u.Username, u.Role)
			return nil
		},
	}
	loginCmd.Flags().StringVarP(&userFlags.password, "password", "p", "", "Password")
	_ = loginCmd.MarkFlagRequired("password")

	roleCmd := &cobra.Command{
		Use:   "role <username> <user|admin>",
		Short: "Change an account's role",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			u, err := a.lookupUser(ctx, args[0])
			if err != nil {
				return err
			}
			if err := a.store.SetRole(ctx, u.ID, models.Role(args[1])); err != nil {
				return err
			}
			output.Success("%s is now %s", u.Username, args[1])
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <username>",
		Short: "Delete an account and its cart; orders are kept",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			u, err := a.lookupUser(ctx, args[0])
			if err != nil {
				return err
			}
			if err := a.store.DeleteUser(ctx, u.ID); err != nil {
				return err
			}
			output.Success("Deleted %s", u.Username)
			return nil
		},
	}

	profileCmd := &cobra.Command{
		Use:   "profile <username>",
		Short: "Edit the given profile fields",
		Long: `Edit profile fields. Only the flags given are written; an empty value
clears an optional field.

Examples:
  storefront user profile lan --email lan@example.com --phone 0912345678
  storefront user profile lan --password newsecret`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			u, err := a.lookupUser(ctx, args[0])
			if err != nil {
				return err
			}

			var req shop.ProfileRequest
			flags := cmd.Flags()
			set := func(name string, v *string) *string {
				if flags.Changed(name) {
					return v
				}
				return nil
			}
			req.Username = set("username", &userFlags.username)
			req.NewPassword = set("password", &userFlags.password)
			req.Email = set("email", &userFlags.email)
			req.Phone = set("phone", &userFlags.phone)
			req.Address = set("address", &userFlags.address)
			req.Avatar = set("avatar", &userFlags.avatar)

			if err := a.shop.EditProfile(ctx, u.ID, req); err != nil {
				return err
			}
			output.Success("Updated profile of %s", u.Username)
			return nil
		},
	}
	profileCmd.Flags().StringVar(&userFlags.username, "username", "", "New username")
	profileCmd.Flags().StringVarP(&userFlags.password, "password", "p", "", "New password")
	profileCmd.Flags().StringVar(&userFlags.email, "email", "", "Email address")
	profileCmd.Flags().StringVar(&userFlags.phone, "phone", "", "Phone number")
	profileCmd.Flags().StringVar(&userFlags.address, "address", "", "Shipping address")
	profileCmd.Flags().StringVar(&userFlags.avatar, "avatar", "", "Avatar file name")

	cmd.AddCommand(addCmd, listCmd, showCmd, loginCmd, roleCmd, deleteCmd, profileCmd)
	return cmd
}
