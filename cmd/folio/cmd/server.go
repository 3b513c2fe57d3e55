package cmd

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/netip"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/jmcleod/folio/api"
	"github.com/jmcleod/folio/auth"
	"github.com/jmcleod/folio/content"
	"github.com/jmcleod/folio/storage"
	bboltstorage "github.com/jmcleod/folio/storage/bbolt"
	memorystorage "github.com/jmcleod/folio/storage/memory"
	postgresstorage "github.com/jmcleod/folio/storage/postgres"
	"github.com/jmcleod/folio/web"
)

var (
	port           int
	dataDir        string
	storageBackend string
	databaseURL    string
	tlsCert        string
	tlsKey         string
	trustedProxies []string
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the portfolio web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
		slog.SetDefault(logger)

		repo, cleanup, err := openRepository(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		authority := auth.New(auth.Config{
			AdminCredential: os.Getenv("ADMIN_PASSWORD"),
			SigningSecret:   os.Getenv("ADMIN_SECRET_KEY"),
		})
		if !authority.Configured() {
			logger.Warn("ADMIN_PASSWORD or ADMIN_SECRET_KEY not set; admin login is disabled")
		}

		prefixes, err := parseTrustedProxies(trustedProxies)
		if err != nil {
			return err
		}

		store := content.NewStore(repo)
		a := api.New(store, authority,
			api.WithLogger(logger),
			api.WithTrustedProxies(prefixes),
			api.WithAlertFunc(func(ev api.AlertEvent) {
				logger.Warn("anomaly detected",
					"type", string(ev.Type),
					"message", ev.Message,
					"count", ev.Count,
					"threshold", ev.Threshold)
			}),
		)

		r := chi.NewRouter()
		r.Use(middleware.Logger)
		r.Use(middleware.Recoverer)
		r.Use(api.SecurityHeaders)

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("OK"))
		})

		r.Mount("/api/v1", a.Router())

		webHandler, err := web.Handler()
		if err != nil {
			return err
		}
		r.Handle("/*", webHandler)

		server := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		useTLS := tlsCert != "" && tlsKey != ""
		if useTLS {
			cert, err := tls.LoadX509KeyPair(tlsCert, tlsKey)
			if err != nil {
				return fmt.Errorf("failed to load TLS key pair: %w", err)
			}
			server.TLSConfig = &tls.Config{
				Certificates: []tls.Certificate{cert},
				MinVersion:   tls.VersionTLS12,
			}
		}

		// Graceful shutdown on SIGINT/SIGTERM.
		done := make(chan error, 1)
		go func() {
			var err error
			if useTLS {
				err = server.ListenAndServeTLS("", "")
			} else {
				err = server.ListenAndServe()
			}
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				done <- fmt.Errorf("server failed: %w", err)
				return
			}
			done <- nil
		}()

		printBanner()
		fmt.Printf("Starting server on port %d (storage: %s)...\n", port, storageBackend)

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			fmt.Printf("\nReceived %s, shutting down...\n", sig)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("server shutdown failed: %w", err)
			}
			return nil
		case err := <-done:
			return err
		}
	},
}

// openRepository builds the document repository named by the
// --storage flag. The returned cleanup releases backend resources.
func openRepository(ctx context.Context) (storage.Repository, func(), error) {
	switch storageBackend {
	case "bbolt":
		if err := os.MkdirAll(dataDir, 0o700); err != nil {
			return nil, nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		repo, err := bboltstorage.NewRepositoryFromFile(dataDir+"/folio.db", nil)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open content storage: %w", err)
		}
		return repo, func() { repo.Close() }, nil
	case "postgres":
		dsn := databaseURL
		if dsn == "" {
			dsn = os.Getenv("DATABASE_URL")
		}
		if dsn == "" {
			return nil, nil, errors.New("postgres storage requires --database-url or DATABASE_URL")
		}
		repo, err := postgresstorage.NewRepositoryFromDSN(ctx, dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open postgres storage: %w", err)
		}
		return repo, repo.Close, nil
	case "memory":
		return memorystorage.NewRepository(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q (expected bbolt, postgres, or memory)", storageBackend)
	}
}

func parseTrustedProxies(cidrs []string) ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(cidrs))
	for _, cidr := range cidrs {
		prefix, err := netip.ParsePrefix(cidr)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy CIDR %q: %w", cidr, err)
		}
		prefixes = append(prefixes, prefix)
	}
	return prefixes, nil
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().IntVarP(&port, "port", "p", 8080, "Port to listen on")
	serverCmd.Flags().StringVar(&dataDir, "data-dir", "./data", "Directory for persistent data (bbolt backend)")
	serverCmd.Flags().StringVar(&storageBackend, "storage", "bbolt", "Storage backend: bbolt, postgres, or memory")
	serverCmd.Flags().StringVar(&databaseURL, "database-url", "", "PostgreSQL connection string (postgres backend)")
	serverCmd.Flags().StringVar(&tlsCert, "tls-cert", "", "Path to TLS certificate file")
	serverCmd.Flags().StringVar(&tlsKey, "tls-key", "", "Path to TLS key file")
	serverCmd.Flags().StringSliceVar(&trustedProxies, "trusted-proxies", nil, "CIDR ranges of proxies whose forwarding headers are trusted")
}
