package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/matt-g-everett/valuetx/api"
	"github.com/matt-g-everett/valuetx/config"
	"github.com/matt-g-everett/valuetx/logging"
	"github.com/matt-g-everett/valuetx/store"
	"github.com/matt-g-everett/valuetx/stream"
)

type app struct {
	ctx      context.Context
	config   *config.Config
	logger   *slog.Logger
	client   mqtt.Client
	store    *store.Memory
	registry *prometheus.Registry
	streamer *stream.Streamer
	bus      *stream.Bus
}

func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	a := &app{
		ctx:      ctx,
		config:   cfg,
		logger:   logger,
		registry: prometheus.NewRegistry(),
	}

	m, err := cfg.NewStore()
	if err != nil {
		return nil, fmt.Errorf("build store: %w", err)
	}
	a.store = m

	opts := []stream.Option{
		stream.WithLogger(logger),
		stream.WithMetrics(stream.NewMetrics(a.registry)),
	}
	if cfg.Mqtt.URL != "" {
		options := mqtt.NewClientOptions().
			AddBroker(cfg.Mqtt.URL).
			SetClientID(cfg.Mqtt.ClientID).
			SetUsername(cfg.Mqtt.Username).
			SetPassword(cfg.Mqtt.Password).
			SetKeepAlive(30 * time.Second).
			SetPingTimeout(5 * time.Second).
			SetOnConnectHandler(a.handleOnConnect)
		a.client = mqtt.NewClient(options)
		a.bus = stream.NewBus(a.client, cfg.Mqtt.Topics.Writes, cfg.Mqtt.Topics.Start, logger)
		opts = append(opts, stream.WithPublisher(a.bus))
	}

	a.streamer, err = stream.NewStreamer(cfg, a.store, opts...)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (a *app) handleOnConnect(client mqtt.Client) {
	a.logger.Info("connected", "broker", a.config.Mqtt.URL)
	if err := a.bus.Subscribe(a.ctx, a.streamer); err != nil {
		a.logger.Error("subscribe failed", "error", err)
	}
}

func (a *app) run() error {
	if a.client != nil {
		if token := a.client.Connect(); token.Wait() && token.Error() != nil {
			return fmt.Errorf("connect %s: %w", a.config.Mqtt.URL, token.Error())
		}
		defer a.client.Disconnect(250)
	}

	server := api.NewApi(a.streamer, a.store,
		api.WithLogger(a.logger),
		api.WithGatherer(a.registry),
	)

	ctx, cancel := context.WithCancel(a.ctx)
	defer cancel()

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Serve(ctx, a.config.HTTP.Listen)
	}()
	streamErrors := make(chan error, 1)
	go func() {
		streamErrors <- a.streamer.Run(ctx)
	}()

	select {
	case err := <-serverErrors:
		cancel()
		<-streamErrors
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http: %w", err)
		}
		return nil
	case err := <-streamErrors:
		cancel()
		srvErr := <-serverErrors
		if srvErr != nil && !errors.Is(srvErr, http.ErrServerClosed) {
			return fmt.Errorf("http: %w", srvErr)
		}
		if a.ctx.Err() != nil {
			return nil
		}
		return err
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "valuetx",
		Short:         "valuetx animates typed property values over time",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", "config.yaml", "YAML config file.")
	root.AddCommand(newRunCmd(), newValidateCmd())
	return root
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the transition daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			logger := logging.New(logging.ParseLevel(cfg.Log.Level))
			mqtt.ERROR = slog.NewLogLogger(logger.Handler(), slog.LevelError)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, cfg, logger)
			if err != nil {
				return err
			}
			return a.run()
		},
	}
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check a config file and list its transitions",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			if _, err := cfg.NewStore(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, t := range cfg.Transitions {
				target := t.Owner
				if t.Property != "" {
					target += "." + t.Property
				}
				fmt.Fprintf(out, "%s\t%s\t%s\t%v\n", t.Name, t.Mode, target, t.Duration)
			}
			return nil
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
