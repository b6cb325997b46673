package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/sangkips/loyalty-admin/internal/application/service"
	infraRepo "github.com/sangkips/loyalty-admin/internal/infrastructure/repository"
	"github.com/sangkips/loyalty-admin/internal/infrastructure/upstream"
	"github.com/spf13/cobra"
)

const defaultBaseURL = "http://localhost:5000/api"

// options are the persistent flags of adminctl
type options struct {
	profilePath string
	baseURL     string
	timeout     time.Duration
	asJSON      bool
	debug       bool
	getenv      func(string) string
}

// session is what a command needs to talk to the loyalty API
type session struct {
	ctx      context.Context
	services *service.Services
	out      io.Writer
	asJSON   bool
}

// NewRootCommand builds the adminctl command tree
func NewRootCommand() *cobra.Command {
	opts := &options{getenv: os.Getenv}

	root := &cobra.Command{
		Use:           "adminctl",
		Short:         "Operate the loyalty programme from the terminal",
		Long:          `adminctl lists and edits loyalty records, previews settlements and reorders the featured stores, using the same loyalty API as the admin console.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := root.PersistentFlags()
	flags.StringVar(&opts.profilePath, "profile", DefaultProfilePath(), "Path to the operator profile")
	flags.StringVar(&opts.baseURL, "base-url", "", "Loyalty API base URL (overrides the profile)")
	flags.DurationVar(&opts.timeout, "timeout", 0, "Per-request timeout (overrides the profile)")
	flags.BoolVar(&opts.asJSON, "json", false, "Print JSON instead of tables")
	flags.BoolVar(&opts.debug, "debug", false, "Log every call to the loyalty API")

	root.AddCommand(
		newSettlementCommand(opts),
		newListCommand(opts),
		newGetCommand(opts),
		newStoresCommand(opts),
	)
	return root
}

// Execute runs adminctl and returns the process exit code
func Execute() int {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

// open loads the profile and builds the services. The context of cmd carries
// the operator's credentials.
func (o *options) open(cmd *cobra.Command) (*session, error) {
	profile, err := LoadProfile(o.profilePath)
	if err != nil {
		return nil, err
	}

	baseURL := o.baseURL
	if baseURL == "" {
		baseURL = profile.BaseURL
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := o.timeout
	if timeout <= 0 && profile.TimeoutSeconds > 0 {
		timeout = time.Duration(profile.TimeoutSeconds) * time.Second
	}
	if !o.debug {
		log.SetOutput(io.Discard)
	}

	client := upstream.NewClient(upstream.Config{
		BaseURL: baseURL,
		Timeout: timeout,
		Debug:   o.debug,
	})
	repos := infraRepo.NewLoyaltyRepositories(client, upstream.ResolveResources(profile.Paths))
	services := service.NewServices(repos, service.CatalogDeps{
		Audit: service.NewAuditService(nil),
	})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return &session{
		ctx:      profile.Authorize(ctx, o.getenv),
		services: services,
		out:      cmd.OutOrStdout(),
		asJSON:   o.asJSON,
	}, nil
}
