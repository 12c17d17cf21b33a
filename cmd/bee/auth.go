package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"bee-go/internal/bee"
	"bee-go/internal/token"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// promptPassword reads a password without echo when stdin is a terminal,
// and falls back to a plain line read otherwise (piped input, tests).
func promptPassword(label string) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Printf("%s: ", label)
		data, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(data), nil
	}

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		username, _ := cmd.Flags().GetString("username")

		password, err := promptPassword("Password")
		if err != nil {
			return err
		}

		a, err := newApp(cmd, "Signup")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Record(username); err != nil {
			return err
		}

		resp, err := a.Client().Auth.Signup(cmd.Context(), &bee.SignupRequest{
			Name:     name,
			Email:    email,
			Username: username,
			Password: password,
		})
		if err != nil {
			a.Fail()
			return fmt.Errorf("signup failed: %w", err)
		}

		fmt.Println(resp.Message)
		fmt.Println("Account created. Run 'bee login' to sign in.")
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and persist the session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")

		password, err := promptPassword("Password")
		if err != nil {
			return err
		}

		a, err := newApp(cmd, "Login")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Record(email); err != nil {
			return err
		}

		tok, err := a.Client().Auth.Login(cmd.Context(), &bee.LoginRequest{
			Email:    email,
			Password: password,
		})
		if err != nil {
			a.Fail()
			return fmt.Errorf("login failed: %w", err)
		}

		if err := a.Session().Login(cmd.Context(), tok); err != nil {
			a.Fail()
			return err
		}

		user := a.Session().CurrentUser()
		fmt.Printf("Logged in as %s (%s)\n", user.Username, user.Name)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and remove the persisted token",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "Logout")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Record(""); err != nil {
			return err
		}

		if err := a.Session().Logout(); err != nil {
			a.Fail()
			return err
		}

		fmt.Println("Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "Whoami")
		if err != nil {
			return err
		}
		defer a.Close()

		user, err := a.RequireUser(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("User:      %s (#%d)\n", user.Username, user.ID)
		fmt.Printf("Name:      %s\n", user.Name)
		fmt.Printf("Email:     %s\n", user.Email)
		fmt.Printf("Following: %d  Followers: %d\n", len(user.Following), len(user.Followers))

		// The token is opaque to the protocol; when it happens to be a JWT
		// we can surface its expiry.
		if claims, ok := token.Inspect(a.Session().Token()); ok && !claims.ExpiresAt.IsZero() {
			state := "valid"
			if claims.Expired(time.Now()) {
				state = "EXPIRED"
			}
			fmt.Printf("Token:     %s until %s\n", state, claims.ExpiresAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Re-fetch the current user record",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "Refresh")
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.RequireUser(cmd.Context()); err != nil {
			return err
		}
		if err := a.Session().Refresh(cmd.Context()); err != nil {
			return err
		}

		user := a.Session().CurrentUser()
		if user == nil {
			return fmt.Errorf("session expired: run 'bee login' again")
		}
		fmt.Printf("Session refreshed for %s\n", user.Username)
		return nil
	},
}

func init() {
	signupCmd.Flags().String("name", "", "Display name")
	signupCmd.Flags().String("email", "", "Email address")
	signupCmd.Flags().String("username", "", "Username")
	signupCmd.MarkFlagRequired("name")
	signupCmd.MarkFlagRequired("email")
	signupCmd.MarkFlagRequired("username")

	loginCmd.Flags().String("email", "", "Email address")
	loginCmd.MarkFlagRequired("email")

	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(refreshCmd)
}
