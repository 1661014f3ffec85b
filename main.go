package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"html2wp/document"
	"html2wp/excerpt"
	"html2wp/publisher"
	"html2wp/wordpress"
)

// Layouts accepted for -schedule, tried in order.
var scheduleLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

func main() {
	configPath := flag.String("config", "config.json", "path to the JSON config file")
	file := flag.String("file", "", "path to the document to synchronize (HTML, or Markdown with front matter)")
	publish := flag.Bool("publish", false, "publish the post instead of saving a draft")
	schedule := flag.String("schedule", "", "publish at the given time, e.g. \"2026-01-02 15:00:00\" (cannot be combined with -publish)")
	commentStatus := flag.String("comment-status", publisher.CommentStatusClosed, "comment status for the post (open|closed)")
	attrs := flag.String("attr", "", "JSON object of extra post fields, merged last over computed ones")
	dryRun := flag.Bool("dry-run", false, "report what would happen without contacting the blog or rewriting the file")
	genExcerpt := flag.Bool("gen-excerpt", false, "generate the post excerpt with the configured LLM")
	verbose := flag.Bool("v", false, "enable debug logs")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if err := run(*configPath, *file, *publish, *schedule, *commentStatus, *attrs, *dryRun, *genExcerpt); err != nil {
		var fault *wordpress.Fault
		if errors.As(err, &fault) {
			log.Error().Int("code", fault.Code).Str("message", fault.Message).Msg("remote fault")
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, file string, publish bool, schedule, commentStatus, attrs string, dryRun, genExcerpt bool) error {
	if file == "" {
		return errors.New("-file is required")
	}
	if publish && schedule != "" {
		return errors.New("at most one of -publish and -schedule may be given")
	}
	if commentStatus != publisher.CommentStatusOpen && commentStatus != publisher.CommentStatusClosed {
		return fmt.Errorf("comment status must be %q or %q", publisher.CommentStatusOpen, publisher.CommentStatusClosed)
	}

	var scheduleAt *time.Time
	if schedule != "" {
		at, err := parseSchedule(schedule)
		if err != nil {
			return err
		}
		scheduleAt = &at
	}

	extra, err := publisher.ParseAttributes(attrs)
	if err != nil {
		return err
	}

	cfg, err := publisher.LoadConfig(configPath)
	if err != nil {
		return err
	}

	doc, err := document.Load(file)
	if err != nil {
		return err
	}

	ctx := context.Background()
	opts := publisher.Options{
		Publish:       publish,
		Schedule:      scheduleAt,
		CommentStatus: commentStatus,
		Extra:         extra,
		DryRun:        dryRun,
	}

	if genExcerpt {
		llm, err := excerpt.NewFromSettings(llmSettings(cfg.LLM))
		if err != nil {
			return err
		}
		gen, err := excerpt.NewGenerator(llm)
		if err != nil {
			return err
		}
		opts.Excerpt, err = gen.Generate(ctx, doc.Meta.Title, doc.Body)
		if err != nil {
			return fmt.Errorf("generate excerpt: %w", err)
		}
		log.Debug().Str("excerpt", opts.Excerpt).Msg("generated excerpt")
	}

	client := wordpress.NewXMLRPC(cfg.Endpoint, cfg.Username, cfg.Password, cfg.BlogID, nil)
	res, err := publisher.New(client).Run(ctx, doc, opts)
	if err != nil {
		return err
	}

	switch res.Action {
	case publisher.ActionDryRun:
		log.Info().Msg("dry run complete, nothing was changed")
	default:
		log.Info().Str("action", res.Action.String()).Str("post_id", res.PostID).Msg("synchronized")
		fmt.Println(res.PostID)
	}
	return nil
}

func llmSettings(cfg *publisher.LLMConfig) *excerpt.Settings {
	if cfg == nil {
		return nil
	}
	return &excerpt.Settings{
		Provider: cfg.Provider,
		Model:    cfg.Model,
		APIKey:   cfg.APIKey,
		BaseURL:  cfg.BaseURL,
	}
}

func parseSchedule(s string) (time.Time, error) {
	for _, layout := range scheduleLayouts {
		if at, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return at, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse schedule time %q", s)
}
