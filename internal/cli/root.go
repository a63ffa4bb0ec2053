// Package cli implements catalogctl, a command-line consumer of the catalog
// API.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hongminglow/catalog-api/internal/client/api"
	"github.com/hongminglow/catalog-api/internal/client/cache"
)

type app struct {
	apiURL    string
	tokenFile string
	timeout   time.Duration

	client *api.Client
	store  *cache.Store
}

// NewRootCommand builds the catalogctl command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "CLI client for the catalog REST API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.client = api.New(a.apiURL,
				api.WithTokenStore(NewFileTokenStore(a.tokenFile)),
				api.WithTimeout(a.timeout),
			)
			a.store = cache.New(a.client)
		},
	}

	defaultURL := os.Getenv("CATALOG_API_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:4000"
	}
	root.PersistentFlags().StringVarP(&a.apiURL, "api", "a", defaultURL, "Catalog API base URL")
	root.PersistentFlags().StringVar(&a.tokenFile, "token-file", DefaultTokenPath(), "Where the login token is kept")
	root.PersistentFlags().DurationVar(&a.timeout, "timeout", api.DefaultTimeout, "Per-request timeout")

	root.AddCommand(
		a.registerCmd(),
		a.loginCmd(),
		a.logoutCmd(),
		a.profileCmd(),
		a.categoriesCmd(),
		a.itemsCmd(),
	)
	return root
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
