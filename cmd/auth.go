package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quietdesk/deskmcp/internal/config"
	"github.com/quietdesk/deskmcp/internal/google"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize Google access and store the OAuth token",
		Long: `Authorize access to Gmail, Calendar and Tasks.

Prints the Google consent URL, waits for the authorization code on stdin,
exchanges it for tokens and stores them at GOOGLE_TOKEN_FILE (or its
default location). Requires the OAuth client JSON at
GOOGLE_CREDENTIALS_FILE.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			return runAuth(cmd, cfg)
		},
	}
	return cmd
}

func runAuth(cmd *cobra.Command, cfg config.Config) error {
	oauthCfg, err := google.ReadCredentials(cfg.CredentialsFile)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), `Visit this URL in your browser to authorize access:

  %s

Paste the authorization code here and press enter: `, google.AuthCodeURL(oauthCfg))

	reader := bufio.NewReader(os.Stdin)
	code, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read authorization code: %w", err)
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return fmt.Errorf("no authorization code provided")
	}

	if err := google.ExchangeAndSave(cmd.Context(), oauthCfg, code, cfg.TokenFile); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Authorization successful. Token saved to %s\n", cfg.TokenFile)
	return nil
}
