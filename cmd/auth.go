package cmd

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rwestgarth/linkedin-engine/internal/google"
)

func newAuthCmd() *cobra.Command {
	var credentialsFile, tokenFile string

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize Google API access and save a token",
		Long: `Run the one-time OAuth consent flow for the Google Docs and Gmail scopes.
Prints the consent URL, reads the authorization code from stdin and writes
the authorized user token. The base64 form of the token is printed so it
can be stored as a GOOGLE_CREDENTIALS secret for scheduled runs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			flow, err := google.NewAuthFlow(credentialsFile)
			if err != nil {
				return err
			}

			fmt.Printf("Visit this URL to authorize access:\n\n%s\n\n", flow.AuthURL())
			fmt.Print("Enter the authorization code: ")

			var code string
			if _, err := fmt.Scanln(&code); err != nil {
				return fmt.Errorf("failed to read authorization code: %w", err)
			}

			if err := flow.Exchange(context.Background(), code, tokenFile); err != nil {
				return err
			}
			fmt.Printf("Token saved to %s\n\n", tokenFile)

			data, err := os.ReadFile(tokenFile)
			if err != nil {
				return fmt.Errorf("failed to read saved token: %w", err)
			}
			fmt.Println("--- Copy this value as your GOOGLE_CREDENTIALS secret ---")
			fmt.Println(base64.StdEncoding.EncodeToString(data))
			fmt.Println("--- End ---")
			return nil
		},
	}

	cmd.Flags().StringVar(&credentialsFile, "credentials", "credentials.json", "OAuth client secrets file")
	cmd.Flags().StringVar(&tokenFile, "token", "token.json", "Path to write the authorized user token")
	return cmd
}
