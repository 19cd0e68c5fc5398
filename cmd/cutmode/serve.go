package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cnckit/cutmode"
	"github.com/cnckit/cutmode/internal/logging"
	httpAdapter "github.com/cnckit/cutmode/pkg/adapters/http"
	redisAdapter "github.com/cnckit/cutmode/pkg/adapters/redis"
	"github.com/cnckit/cutmode/pkg/observability"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the advisor HTTP server",
	Long: `Starts the cutmode engine in server mode, exposing the session API as
JSON over HTTP. With --redis-addr (or REDIS_ADDR) sessions survive restarts
and multiple replicas can share them.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Missing .env is fine; real env vars still apply.
		_ = godotenv.Load()

		port := flagOrEnv(cmd, "port", "PORT", "8080")
		redisAddr := flagOrEnv(cmd, "redis-addr", "REDIS_ADDR", "")
		level, _ := cmd.Flags().GetString("log-level")
		logger := logging.New(logging.ParseLevel(level))

		metrics := observability.NewRecorder(prometheus.DefaultRegisterer)
		opts := []cutmode.Option{
			cutmode.WithLogger(logger),
			cutmode.WithMetrics(metrics),
		}

		if redisAddr != "" {
			ttl, err := time.ParseDuration(envOr("SESSION_TTL", "24h"))
			if err != nil {
				fmt.Printf("Invalid SESSION_TTL: %v\n", err)
				os.Exit(1)
			}
			prefix := envOr("REDIS_PREFIX", "cutmode:session:")
			store := redisAdapter.New(redisAddr, os.Getenv("REDIS_PASSWORD"), 0,
				redisAdapter.WithTTL(ttl),
				redisAdapter.WithPrefix(prefix),
			)
			opts = append(opts,
				cutmode.WithStore(store),
				cutmode.WithLocker(redisAdapter.NewLocker(store.Client(), prefix)),
			)
		}

		engine, err := cutmode.New(opts...)
		if err != nil {
			fmt.Printf("Error initializing cutmode: %v\n", err)
			os.Exit(1)
		}

		r := chi.NewRouter()
		r.Mount("/", httpAdapter.NewHandler(engine, httpAdapter.WithLogger(logger)))
		r.Handle("/metrics", promhttp.Handler())

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: r,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting cutmode server on %s\n", srv.Addr)
			if redisAddr != "" {
				fmt.Printf("Sessions stored in redis at %s\n", redisAddr)
			}
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("cutmode server stopped gracefully")
		}
	},
}

// flagOrEnv prefers the flag when set explicitly, then the env var, then the default.
func flagOrEnv(cmd *cobra.Command, flag, env, def string) string {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetString(flag)
		return v
	}
	if v := os.Getenv(env); v != "" {
		return v
	}
	v, _ := cmd.Flags().GetString(flag)
	if v != "" {
		return v
	}
	return def
}

func envOr(env, def string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	return def
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("redis-addr", "", "Redis address for shared session storage (host:port)")
}
