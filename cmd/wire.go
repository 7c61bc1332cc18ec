package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/bnema/doctowatch/internal/adapters/booking"
	"github.com/bnema/doctowatch/internal/adapters/notify"
	"github.com/bnema/doctowatch/internal/adapters/prompt"
	sessionrepo "github.com/bnema/doctowatch/internal/adapters/repo/session"
	"github.com/bnema/doctowatch/internal/adapters/transport"
	"github.com/bnema/doctowatch/internal/application"
	"github.com/bnema/doctowatch/internal/logging"
	"github.com/bnema/doctowatch/internal/ports"
)

type app struct {
	service   *application.WatchService
	sessions  *sessionrepo.Repository
	transport *transport.Client
	prompter  ports.Prompter
	log       zerolog.Logger
	now       func() time.Time
}

type wireOptions struct {
	Debug bool
}

func wireApp(opts wireOptions) (*app, error) {
	log := logging.New(os.Stderr, opts.Debug)

	captureDir := ""
	if opts.Debug {
		captureDir = filepath.Join(os.TempDir(), "doctowatch_session_"+uuid.NewString())
		log.Info().Str("dir", captureDir).Msg("capturing raw http exchanges")
	}

	httpClient, err := transport.New(transport.Options{
		BaseURL:    envOrDefault("DW_BASE_URL", "https://www.doctolib.fr"),
		Logger:     log,
		CaptureDir: captureDir,
	})
	if err != nil {
		return nil, fmt.Errorf("wire http transport: %w", err)
	}

	sessions, err := sessionrepo.NewRepository(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire session repository: %w", err)
	}

	prompter := prompt.NewTerminal()
	client := booking.NewClient(httpClient, prompter, log)
	notifier := notify.NewConsole(log)

	return &app{
		service:   application.NewWatchService(client, client, client, notifier, prompter, ports.SystemClock{}, log),
		sessions:  sessions,
		transport: httpClient,
		prompter:  prompter,
		log:       log,
		now:       time.Now,
	}, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
