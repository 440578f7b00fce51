package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rwestgarth/linkedin-engine/internal/config"
	"github.com/rwestgarth/linkedin-engine/internal/content"
	"github.com/rwestgarth/linkedin-engine/internal/digest"
	"github.com/rwestgarth/linkedin-engine/internal/gmail"
	"github.com/rwestgarth/linkedin-engine/internal/google"
	"github.com/rwestgarth/linkedin-engine/internal/logging"
)

func newTestEmailCmd() *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "test-email",
		Short: "Send a fixture digest to verify Gmail send access",
		Long: `Render a digest from fixed sample drafts and send it via the Gmail API.
Use this after running auth to confirm the token carries the gmail.send
scope and the digest formatting looks right in a real inbox.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.Setup()
			cfg := config.Load()

			recipient := to
			if recipient == "" {
				recipient = cfg.RecipientEmail
			}
			if recipient == "" {
				return fmt.Errorf("no recipient: pass --to or set RECIPIENT_EMAIL")
			}

			ctx := context.Background()
			creds, err := google.LoadCredentials(ctx, cfg.GoogleTokenPath)
			if err != nil {
				return err
			}
			client, err := gmail.NewClient(ctx, creds, logger)
			if err != nil {
				return err
			}

			dg, err := digest.Render(sampleDrafts(), sampleDistribution(), time.Now())
			if err != nil {
				return err
			}

			id, err := client.SendDigest(ctx, &gmail.DigestMessage{
				To:       recipient,
				Subject:  "[TEST] " + dg.Subject,
				HTMLBody: dg.HTML,
				TextBody: dg.Text,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Test email sent to %s (message id %s)\n", recipient, id)
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Recipient override (defaults to RECIPIENT_EMAIL)")
	return cmd
}

func sampleDrafts() []*content.Draft {
	return []*content.Draft{
		{
			Persona: config.Personas[0].Name,
			Post: "Most teams buy an AI tool before they know what problem it solves.\n\n" +
				"The ones that get value do it the other way round: name the bottleneck " +
				"first, then shop. Boring, but it works.",
			AltHooks: []string{
				"Your AI budget is solving a problem you haven't named yet.",
				"The best AI rollout I've seen started with a spreadsheet, not a demo.",
			},
			ImagePrompt: "A cluttered desk with a single highlighted sticky note",
			Article: &content.Article{
				Title:      "Survey: most AI pilots stall before production",
				Source:     "Sample Newsletter",
				Category:   "AI",
				TotalScore: 41,
			},
		},
		{
			Persona: config.Personas[1].Name,
			Post: "Discount codes train customers to wait.\n\n" +
				"The stores growing fastest this year are the ones that stopped " +
				"negotiating with their own price list.",
			AltHooks: []string{
				"Your January sale is why December was quiet.",
				"Loyalty beats discounts, but only if you measure it.",
			},
			ImagePrompt: "A storefront window with a torn discount poster",
			Article: &content.Article{
				Title:      "Retailers rethink permanent discounting",
				Source:     "Sample Feed",
				Category:   "eCommerce",
				TotalScore: 36,
			},
		},
	}
}

func sampleDistribution() []content.CategoryCount {
	dist := make([]content.CategoryCount, 0, len(config.Categories))
	for i, c := range config.Categories {
		dist = append(dist, content.CategoryCount{Category: c, Count: i % 3})
	}
	return dist
}
