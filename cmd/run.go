package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/rwestgarth/linkedin-engine/internal/classify"
	"github.com/rwestgarth/linkedin-engine/internal/config"
	"github.com/rwestgarth/linkedin-engine/internal/docs"
	"github.com/rwestgarth/linkedin-engine/internal/feeds"
	"github.com/rwestgarth/linkedin-engine/internal/generate"
	"github.com/rwestgarth/linkedin-engine/internal/gmail"
	"github.com/rwestgarth/linkedin-engine/internal/google"
	"github.com/rwestgarth/linkedin-engine/internal/history"
	"github.com/rwestgarth/linkedin-engine/internal/logging"
	"github.com/rwestgarth/linkedin-engine/internal/pipeline"
)

func newRunCmd() *cobra.Command {
	var dryRun, emailOnly, noEmail, feedsOnly bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the daily content pipeline",
		Long: `Fetch articles published in the last 24 hours, score and categorise them,
generate LinkedIn post drafts and deliver the digest to Google Docs and
email. Flags narrow the run to a subset of those steps.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := pipeline.ResolveMode(dryRun, emailOnly, noEmail, feedsOnly)
			if err != nil {
				return err
			}

			logger := logging.Setup()
			cfg := config.Load()
			ctx := context.Background()

			if mode != pipeline.FeedsOnly {
				if err := cfg.RequireCohereKey(); err != nil {
					return err
				}
			}

			p := buildPipeline(ctx, cfg, mode, logger)
			if _, err := p.Run(ctx, mode); err != nil {
				return fmt.Errorf("pipeline failed: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Render the digest without sending anything or updating history")
	cmd.Flags().BoolVar(&emailOnly, "email-only", false, "Send the email digest only, skip the Docs push and history")
	cmd.Flags().BoolVar(&noEmail, "no-email", false, "Run everything except the email digest")
	cmd.Flags().BoolVar(&feedsOnly, "feeds-only", false, "Fetch and process articles, print them and stop")
	return cmd
}

// buildPipeline assembles the pipeline from the configuration. Unavailable
// collaborators are skipped with a warning; the pipeline reports their
// absence per channel instead of refusing to start.
func buildPipeline(ctx context.Context, cfg *config.Config, mode pipeline.Mode, logger *slog.Logger) *pipeline.Pipeline {
	p := &pipeline.Pipeline{
		Cfg:     cfg,
		Logger:  logger,
		History: history.Load(cfg.HistoryPath),
	}

	if feedCfgs, err := feeds.LoadConfig(cfg.FeedsConfigPath); err != nil {
		logger.Warn("rss feeds config not loaded, skipping rss source", logging.Err(err))
	} else {
		p.Sources = append(p.Sources, feeds.NewFetcher(feedCfgs, logger))
	}

	creds, err := google.LoadCredentials(ctx, cfg.GoogleTokenPath)
	if err != nil {
		logger.Warn("google credentials unavailable, skipping gmail source and sends", logging.Err(err))
	} else {
		if client, cerr := gmail.NewClient(ctx, creds, logger); cerr != nil {
			logger.Warn("gmail client unavailable", logging.Err(cerr))
		} else {
			newsletters, nerr := gmail.LoadNewsletterConfig(cfg.NewslettersConfig)
			if nerr != nil {
				logger.Warn("newsletters config not loaded, senders will be unmapped", logging.Err(nerr))
			}
			p.Sources = append(p.Sources, &gmail.NewsletterSource{Client: client, Newsletters: newsletters})
			p.Email = client
		}

		if docsClient, derr := docs.NewClient(ctx, creds, logger); derr != nil {
			logger.Warn("docs client unavailable", logging.Err(derr))
		} else {
			p.Docs = docsClient
		}
	}

	if mode != pipeline.FeedsOnly {
		p.Classifier = classify.NewClassifier(cfg.CohereAPIKey, logger)
		p.Generator = generate.NewGenerator(cfg.CohereAPIKey, logger)
	}

	return p
}
