package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/rwestgarth/linkedin-engine/internal/config"
	"github.com/rwestgarth/linkedin-engine/internal/content"
	"github.com/rwestgarth/linkedin-engine/internal/digest"
	"github.com/rwestgarth/linkedin-engine/internal/docs"
	"github.com/rwestgarth/linkedin-engine/internal/generate"
	"github.com/rwestgarth/linkedin-engine/internal/gmail"
	"github.com/rwestgarth/linkedin-engine/internal/history"
	"github.com/rwestgarth/linkedin-engine/internal/logging"
)

// ErrNoArticles reports that every source came back empty. Without input
// the run cannot produce drafts, so this is fatal.
var ErrNoArticles = errors.New("no articles fetched")

// ArticleSource yields articles published after a cutoff. Implemented by
// the RSS fetcher and the Gmail newsletter client.
type ArticleSource interface {
	Name() string
	Fetch(ctx context.Context, cutoff time.Time) ([]*content.Article, error)
}

// Classifier categorises and scores a batch of articles.
type Classifier interface {
	Classify(ctx context.Context, articles []*content.Article) ([]*content.Article, error)
}

// Generator produces one draft for an article in a persona's voice.
type Generator interface {
	Generate(ctx context.Context, article *content.Article, persona string) (*content.Draft, error)
}

// DocsSink prepends a rendered digest block to a document.
type DocsSink interface {
	Prepend(ctx context.Context, documentID, body string) error
}

// EmailSink delivers the digest email and returns the provider message id.
type EmailSink interface {
	SendDigest(ctx context.Context, msg *gmail.DigestMessage) (string, error)
}

// ChannelResult is the outcome of one delivery channel. A failed channel
// carries its error here instead of aborting the run.
type ChannelResult struct {
	Channel      string
	OK           bool
	Err          error
	MessageID    string
	FallbackPath string
}

// Summary aggregates what one run produced and delivered.
type Summary struct {
	Mode     Mode
	Articles int
	Drafts   int
	Channels []ChannelResult
}

// Pipeline wires the fetch, classify, generate and delivery stages
// together. Collaborators are injected so tests can substitute fakes;
// Now and Out default to time.Now and os.Stdout when nil.
type Pipeline struct {
	Cfg         *config.Config
	Logger      *slog.Logger
	Sources     []ArticleSource
	Classifier  Classifier
	Generator   Generator
	Docs        DocsSink
	Email       EmailSink
	History     *history.Store
	FallbackDir string
	Now         func() time.Time
	Out         io.Writer
}

func (p *Pipeline) clock() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func (p *Pipeline) out() io.Writer {
	if p.Out != nil {
		return p.Out
	}
	return os.Stdout
}

// Run executes the step list for the given mode and returns the run
// summary. Delivery failures are reported per channel in the summary;
// only missing input, a classification failure, zero generated drafts or
// a failed mandatory channel make Run return an error.
func (p *Pipeline) Run(ctx context.Context, mode Mode) (*Summary, error) {
	now := p.clock()
	summary := &Summary{Mode: mode}
	logger := p.Logger.With(logging.Mode(mode.String()))

	logger.Info("starting pipeline")

	cutoff := now.Add(-config.LookbackHours * time.Hour)
	articles := p.fetchAll(ctx, cutoff, logger)
	if len(articles) == 0 {
		return summary, ErrNoArticles
	}

	articles = content.Process(articles, config.DedupThreshold, logger)
	summary.Articles = len(articles)
	logger.Info("articles after processing", slog.Int("count", len(articles)))

	if mode == FeedsOnly {
		p.printArticles(articles)
		return summary, nil
	}

	classified, err := p.Classifier.Classify(ctx, articles)
	if err != nil {
		return summary, fmt.Errorf("classification failed: %w", err)
	}

	selected := generate.SelectStories(classified, p.History, now, config.DraftCount)
	personas := generate.AssignPersonas(selected, p.History)
	for i, a := range selected {
		logger.Info("selected story",
			slog.String("title", a.Title),
			slog.String("category", a.Category),
			slog.Int("score", a.TotalScore),
			logging.Persona(personas[i]))
	}

	drafts := p.generateDrafts(ctx, selected, personas, logger)
	if len(drafts) == 0 {
		return summary, digest.ErrNoDrafts
	}
	summary.Drafts = len(drafts)

	dist := p.History.CategoryDistribution(now, config.HistoryLookbackDays, config.Categories)

	dg, err := digest.Render(drafts, dist, now)
	if err != nil {
		return summary, err
	}

	if mode == DryRun {
		fmt.Fprintln(p.out(), dg.DocBody)
		logger.Info("dry run complete, nothing sent")
		return summary, nil
	}

	if mode.SendsDocs() {
		res := p.sendDocs(ctx, dg, now, logger)
		summary.Channels = append(summary.Channels, res)
		if !res.OK && res.FallbackPath == "" && mode == NoEmail {
			return summary, fmt.Errorf("docs channel failed: %w", res.Err)
		}
	}

	// An email failure is reported in the summary but never changes the
	// run's outcome, even in email-only mode.
	if mode.SendsEmail() {
		summary.Channels = append(summary.Channels, p.sendEmail(ctx, dg, logger))
	}

	if mode.RecordsHistory() {
		p.recordHistory(drafts, now, logger)
	}

	logger.Info("pipeline complete",
		slog.Int("articles", summary.Articles),
		slog.Int("drafts", summary.Drafts))
	return summary, nil
}

// fetchAll collects articles from every source. A failed source is logged
// and skipped so the remaining sources still contribute.
func (p *Pipeline) fetchAll(ctx context.Context, cutoff time.Time, logger *slog.Logger) []*content.Article {
	var articles []*content.Article
	for _, src := range p.Sources {
		got, err := src.Fetch(ctx, cutoff)
		if err != nil {
			logger.Warn("source fetch failed, continuing with remaining sources",
				logging.Source(src.Name()), logging.Err(err))
			continue
		}
		logger.Info("fetched articles",
			logging.Source(src.Name()), slog.Int("count", len(got)))
		articles = append(articles, got...)
	}
	return articles
}

func (p *Pipeline) generateDrafts(ctx context.Context, selected []*content.Article, personas []string, logger *slog.Logger) []*content.Draft {
	drafts := make([]*content.Draft, 0, len(selected))
	for i, a := range selected {
		d, err := p.Generator.Generate(ctx, a, personas[i])
		if err != nil {
			logger.Warn("draft generation failed, skipping article",
				slog.String("title", a.Title),
				logging.Persona(personas[i]),
				logging.Err(err))
			continue
		}
		drafts = append(drafts, d)
	}
	return drafts
}

// sendDocs pushes the digest to the configured document. On failure the
// digest is preserved as a local markdown file so the run's output is
// never lost.
func (p *Pipeline) sendDocs(ctx context.Context, dg *digest.Digest, now time.Time, logger *slog.Logger) ChannelResult {
	res := ChannelResult{Channel: "docs"}
	logger = logging.WithChannel(logger, "docs")

	err := p.Cfg.RequireDocID()
	if err == nil && p.Docs == nil {
		err = errors.New("docs client unavailable, check Google credentials")
	}
	if err == nil {
		err = p.Docs.Prepend(ctx, p.Cfg.GoogleDocID, dg.DocBody)
	}
	if err != nil {
		res.Err = err
		logger.Warn("docs push failed, saving markdown fallback", logging.Err(err))
		path, ferr := docs.SaveMarkdownFallback(p.FallbackDir, dg.DocBody, now)
		if ferr != nil {
			logger.Error("markdown fallback failed", logging.Err(ferr))
			return res
		}
		res.FallbackPath = path
		logger.Info("saved markdown fallback", slog.String("path", path))
		return res
	}

	res.OK = true
	logger.Info("docs push complete", logging.Status("ok"))
	return res
}

// sendEmail delivers the digest email. A failure here is reported in the
// channel result and never aborts the rest of the run.
func (p *Pipeline) sendEmail(ctx context.Context, dg *digest.Digest, logger *slog.Logger) ChannelResult {
	res := ChannelResult{Channel: "email"}
	logger = logging.WithChannel(logger, "email")

	if err := p.Cfg.RequireRecipient(); err != nil {
		res.Err = err
		logger.Warn("email skipped", logging.Err(err))
		return res
	}
	if p.Email == nil {
		res.Err = errors.New("gmail client unavailable, check Google credentials")
		logger.Warn("email skipped", logging.Err(res.Err))
		return res
	}

	msg := &gmail.DigestMessage{
		To:       p.Cfg.RecipientEmail,
		Subject:  dg.Subject,
		HTMLBody: dg.HTML,
		TextBody: dg.Text,
	}
	id, err := p.Email.SendDigest(ctx, msg)
	if err != nil {
		res.Err = err
		logger.Warn("email digest failed, pipeline continues", logging.Err(err))
		return res
	}

	res.OK = true
	res.MessageID = id
	logger.Info("email digest sent", slog.String("message_id", id))
	return res
}

func (p *Pipeline) recordHistory(drafts []*content.Draft, now time.Time, logger *slog.Logger) {
	for _, d := range drafts {
		a := d.Article
		p.History.Record(now, a.Category, d.Persona, a.Source, a.OneLineSummary)
	}
	if err := p.History.Save(); err != nil {
		logger.Warn("failed to save post history", logging.Err(err))
		return
	}
	logger.Info("post history updated", slog.Int("posts", len(drafts)))
}

func (p *Pipeline) printArticles(articles []*content.Article) {
	w := p.out()
	fmt.Fprintf(w, "\n--- Feeds Only Mode ---\nTotal articles: %d\n\n", len(articles))
	for i, a := range articles {
		if i >= 20 {
			break
		}
		fmt.Fprintf(w, "%d. [%s] %s\n", i+1, a.Source, a.Title)
	}
}
