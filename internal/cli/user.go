package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/rcliao/wellness/internal/auth"
)

func init() {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage the local account",
		Long:  "Local accounts live only in this database. Nothing is sent anywhere.",
	}

	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		Run:   runUserRegister,
	}
	registerCmd.Flags().String("email", "", "Email (required)")
	registerCmd.Flags().String("password", "", "Password, at least 6 characters (required)")
	registerCmd.Flags().String("confirm", "", "Password again (required)")
	registerCmd.MarkFlagRequired("email")
	registerCmd.MarkFlagRequired("password")
	registerCmd.MarkFlagRequired("confirm")

	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in",
		Args:  cobra.NoArgs,
		Run:   runUserLogin,
	}
	loginCmd.Flags().String("email", "", "Email (required)")
	loginCmd.Flags().String("password", "", "Password (required)")
	loginCmd.MarkFlagRequired("email")
	loginCmd.MarkFlagRequired("password")

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		Args:  cobra.NoArgs,
		Run:   runUserLogout,
	}

	whoamiCmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		Run:   runUserWhoami,
	}

	avatarCmd := &cobra.Command{
		Use:   "avatar [uri]",
		Short: "Show or set the avatar URI",
		Args:  cobra.MaximumNArgs(1),
		Run:   runUserAvatar,
	}

	cmd.AddCommand(registerCmd, loginCmd, logoutCmd, whoamiCmd, avatarCmd)
	RootCmd.AddCommand(cmd)
}

func runUserRegister(cmd *cobra.Command, args []string) {
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	confirm, _ := cmd.Flags().GetString("confirm")

	if err := errors.Join(
		auth.ValidateEmail(email),
		auth.ValidatePassword(password),
		auth.ValidatePasswordConfirm(password, confirm),
	); err != nil {
		exitErr("register", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	u, err := auth.New(s).Register(cmd.Context(), email, password)
	if err != nil {
		exitErr("register", err)
	}
	printJSON(cmd, u)
}

func runUserLogin(cmd *cobra.Command, args []string) {
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	u, err := auth.New(s).Login(cmd.Context(), email, password)
	if err != nil {
		exitErr("login", err)
	}
	printJSON(cmd, u)
}

func runUserLogout(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := auth.New(s).Logout(cmd.Context()); err != nil {
		exitErr("logout", err)
	}
	printJSON(cmd, map[string]any{"ok": true})
}

func runUserWhoami(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	u, err := auth.New(s).Current(cmd.Context())
	if err != nil {
		exitErr("whoami", err)
	}
	printJSON(cmd, u)
}

func runUserAvatar(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	a := auth.New(s)
	if len(args) == 1 {
		u, err := a.SaveAvatar(cmd.Context(), args[0])
		if err != nil {
			exitErr("avatar", err)
		}
		printJSON(cmd, u)
		return
	}

	uri, err := a.Avatar(cmd.Context())
	if err != nil {
		exitErr("avatar", err)
	}
	printJSON(cmd, map[string]any{"avatar_uri": uri})
}
