package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"bookshelf.dev/storefront/internal/storefront"
	"bookshelf.dev/storefront/pkg/cart"
	"bookshelf.dev/storefront/pkg/client"
	"bookshelf.dev/storefront/pkg/global"
)

type options struct {
	apiURL  string
	dataDir string
	timeout time.Duration
}

func main() {
	loadEnv()

	ctx, cancel := context.WithCancel(context.Background())
	err := newRootCmd().ExecuteContext(ctx)
	cancel()
	if err != nil {
		os.Exit(1)
	}
}

// loadEnv reads .env files into the environment. A missing file is not worth mentioning.
func loadEnv(filenames ...string) {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Error loading .env file: %v", err)
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".bookshelf"
	}
	return filepath.Join(home, ".bookshelf")
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	var (
		shop   *storefront.Storefront
		cancel context.CancelFunc
	)

	root := &cobra.Command{
		Use:          "shelf",
		Short:        "Browse and buy from the BookShelf store in the terminal",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log.SetOutput(cmd.ErrOrStderr())

			api, err := client.New(opts.apiURL, nil)
			if err != nil {
				return err
			}
			store := cart.NewFileStore(opts.dataDir)

			var ctx context.Context
			ctx, cancel = context.WithTimeout(cmd.Context(), opts.timeout)
			cmd.SetContext(ctx)

			shop = storefront.New(api, store, cmd.OutOrStdout())
			return nil
		},
		// Skipped when RunE fails. Cancelling the context passed to ExecuteContext covers that path.
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if cancel != nil {
				cancel()
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.apiURL, "api", global.GetEnvOrDefault("BOOKSHELF_API_URL", "http://localhost:4567"), "BookShelf API base URL")
	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", defaultDataDir(), "directory holding the local cart")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", global.DefaultTimeout, "overall timeout for one command")

	get := func() *storefront.Storefront { return shop }

	root.AddCommand(
		newHomeCmd(get),
		newBooksCmd(get),
		newBookCmd(get),
		newCategoriesCmd(get),
		newCartCmd(get),
		newCheckoutCmd(get),
	)

	return root
}
