package cli

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/graphlayout/layered/internal/cache"
	"github.com/graphlayout/layered/internal/httpapi"
	"github.com/graphlayout/layered/internal/store"
)

// serveCommand builds the "serve" subcommand: run the layout pipeline
// as an HTTP service.
func (c *CLI) serveCommand(configPath *string) *cobra.Command {
	var (
		addr      string
		redisAddr string
		storeURI  string
		storeDB   string
		storeColl string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			var ch cache.Cache = cache.NewNullCache()
			if redisAddr != "" {
				ch = cache.NewRedisCache(redisAddr, cache.DefaultTTL)
			}
			defer ch.Close()

			var st *store.Store
			if storeURI != "" {
				st, err = store.Connect(cmd.Context(), storeURI, storeDB, storeColl)
				if err != nil {
					return fmt.Errorf("connect store: %w", err)
				}
				defer st.Close(cmd.Context())
			}

			handler := httpapi.New(cfg, c.Logger, ch, st)
			c.Logger.Info("listening", "addr", addr)
			return http.ListenAndServe(addr, handler)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "address to listen on")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "redis address for layout caching (disabled when empty)")
	cmd.Flags().StringVar(&storeURI, "store", "", "mongo URI for named-graph persistence (disabled when empty)")
	cmd.Flags().StringVar(&storeDB, "store-db", "layered", "mongo database for named-graph persistence")
	cmd.Flags().StringVar(&storeColl, "store-collection", "graphs", "mongo collection for named-graph persistence")
	return cmd
}
