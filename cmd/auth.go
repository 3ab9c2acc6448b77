package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/bnema/walletwise-cli/internal/application"
	"github.com/bnema/walletwise-cli/internal/domain"
	"github.com/spf13/cobra"
)

const passwordEnv = "WW_PASSWORD"

func newAuthCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage profile authentication",
	}

	cmd.AddCommand(newAuthSetCmd(app), newAuthRemoveCmd(app), newAuthLoginCmd(app))

	return cmd
}

func newAuthSetCmd(app *app) *cobra.Command {
	var profileID string
	var method string
	var secretKey string
	var token string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store an API token or session cookie for a profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			authMethod, err := parseAuthMethod(method)
			if err != nil {
				return err
			}
			id, err := resolveProfileID(app, profileID)
			if err != nil {
				return err
			}
			if strings.TrimSpace(secretKey) == "" {
				secretKey = application.SecretKey(id, authMethod)
			}

			return app.service.SetAuth(cmd.Context(), id, authMethod, secretKey, token)
		},
	}

	cmd.Flags().StringVar(&profileID, "profile", "", "Profile ID (default: profiles.default)")
	cmd.Flags().StringVar(&method, "method", string(domain.AuthMethodToken), "Auth method (token|session)")
	cmd.Flags().StringVar(&secretKey, "secret-key", "", "Secret-store key (default: walletwise://<profile>/<method>)")
	cmd.Flags().StringVar(&token, "token", "", "Bearer token or accessToken cookie value")
	_ = cmd.MarkFlagRequired("token")

	return cmd
}

func newAuthRemoveCmd(app *app) *cobra.Command {
	var profileID string

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove profile authentication and its cached snapshot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.service.RemoveAuth(cmd.Context(), domain.ProfileID(profileID))
		},
	}

	cmd.Flags().StringVar(&profileID, "profile", "", "Profile ID")
	_ = cmd.MarkFlagRequired("profile")

	return cmd
}

func newAuthLoginCmd(app *app) *cobra.Command {
	var profileID string
	var baseURL string
	var email string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with email and password and store the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := resolveProfileID(app, profileID)
			if err != nil {
				return err
			}
			if password == "" {
				password = os.Getenv(passwordEnv)
			}
			if password == "" {
				return fmt.Errorf("password is required: pass --password or set %s", passwordEnv)
			}

			if err := app.service.Login(cmd.Context(), application.LoginCommand{
				ID:       id,
				BaseURL:  baseURL,
				Email:    email,
				Password: password,
			}); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Authenticated profile %s\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&profileID, "profile", "", "Profile ID (default: profiles.default)")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "WalletWise API base URL (default: api.base_url)")
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password (default: $"+passwordEnv+")")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func parseAuthMethod(raw string) (domain.AuthMethod, error) {
	method := domain.AuthMethod(strings.TrimSpace(raw))
	switch method {
	case domain.AuthMethodToken:
		return method, nil
	case domain.AuthMethodSession:
		return method, nil
	default:
		return "", fmt.Errorf("unsupported auth method %q", raw)
	}
}
