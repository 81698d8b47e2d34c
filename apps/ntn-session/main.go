// Package main はNTNセッション制御サービスのエントリーポイント。
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/oyaguma3/ntn-session-poc/apps/ntn-session/internal/config"
	"github.com/oyaguma3/ntn-session-poc/apps/ntn-session/internal/controller"
	"github.com/oyaguma3/ntn-session-poc/apps/ntn-session/internal/eventloop"
	"github.com/oyaguma3/ntn-session-poc/apps/ntn-session/internal/events"
	"github.com/oyaguma3/ntn-session-poc/apps/ntn-session/internal/handler"
	"github.com/oyaguma3/ntn-session-poc/apps/ntn-session/internal/modem"
	"github.com/oyaguma3/ntn-session-poc/apps/ntn-session/internal/server"
	"github.com/oyaguma3/ntn-session-poc/apps/ntn-session/internal/store"
	"github.com/oyaguma3/ntn-session-poc/pkg/logging"
	"github.com/oyaguma3/ntn-session-poc/pkg/model"
)

// simulatorMaxBytesPerDatagram はシミュレーターが報告する1データグラムの最大バイト数
const simulatorMaxBytesPerDatagram = 340

func main() {
	// 1. 設定読み込み
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// 2. ロガー初期化
	initLogger(cfg)

	slog.Info("starting ntn-session",
		"listen_addr", cfg.ListenAddr,
		"log_level", cfg.LogLevel,
		"simulator", cfg.UseSimulator(),
		"attach_required", cfg.AttachRequired,
	)

	// 3. Valkey接続
	valkeyClient, err := store.NewValkeyClient(cfg)
	if err != nil {
		slog.Error("failed to connect to Valkey", "event_id", "VALKEY_CONN_ERR", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	slog.Info("connected to Valkey", "addr", cfg.RedisAddr())

	provisionStore := store.NewProvisionStore(valkeyClient)
	inboxStore := store.NewInboxStore(valkeyClient, config.InboxCapacity)
	statsStore := store.NewStatsStore(valkeyClient)
	stateStore := store.NewStateStore(valkeyClient)

	// 4. モデムゲートウェイ
	var gw modem.Gateway
	var sim *modem.Simulator
	if cfg.UseSimulator() {
		sim = modem.NewSimulator(modem.SimulatorConfig{
			Supported:      cfg.SatelliteSupported,
			Provisioned:    true,
			AttachRequired: cfg.AttachRequired,
			Capabilities: model.Capabilities{
				RadioTechnologies:   []string{"NB_IOT_NTN"},
				MaxBytesPerDatagram: simulatorMaxBytesPerDatagram,
			},
		})
		gw = sim
		slog.Warn("modem simulator enabled")
	} else {
		gw = modem.NewClient(cfg)
		slog.Info("using modem gateway", "url", cfg.ModemGatewayURL)
	}

	// 5. イベントループとセッション制御
	loop := eventloop.New()
	ctrl := controller.New(loop, gw, cfg,
		controller.WithProvisionStore(provisionStore),
		controller.WithInbox(inboxStore),
		controller.WithRecorder(statsStore),
		controller.WithLogFields(logging.NewCommonFields(logging.NewMasker(cfg.LogMaskPayload))),
	)
	if sim != nil {
		sim.SetSink(ctrl)
	}
	ctrl.RegisterSessionListener(stateStore)

	// 6. NATS（任意）
	var nc *nats.Conn
	var subscriber *events.Subscriber
	if cfg.NATSURL != "" {
		nc, err = events.Connect(cfg.NATSURL)
		if err != nil {
			slog.Error("failed to connect to NATS", "event_id", "NATS_CONN_ERR", "error", err)
			os.Exit(1)
		}
		defer nc.Close()

		ctrl.RegisterSessionListener(events.NewPublisher(nc, cfg.NATSSubjectPrefix))
		if !cfg.UseSimulator() {
			subscriber = events.NewSubscriber(nc, cfg.NATSSubjectPrefix, ctrl)
			if err := subscriber.Start(); err != nil {
				slog.Error("failed to subscribe modem events", "event_id", "NATS_CONN_ERR", "error", err)
				os.Exit(1)
			}
			defer subscriber.Stop()
		}
		slog.Info("connected to NATS", "url", cfg.NATSURL, "prefix", cfg.NATSSubjectPrefix)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go stateStore.Run(ctx)

	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("event loop stopped", "error", err)
		}
	}()

	// 7. 初期状態の取得
	startCtx, startCancel := context.WithTimeout(modem.WithTraceID(ctx, uuid.NewString()), config.GatewayRequestTimeout*4)
	err = ctrl.Start(startCtx)
	startCancel()
	if err != nil {
		slog.Error("failed to start session controller", "event_id", "START_ERR", "error", err)
		os.Exit(1)
	}

	// 8. サーバー起動
	h := handler.NewSessionHandler(ctrl, inboxStore, statsStore)
	srv := server.New(cfg, h)

	go func() {
		if err := srv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// 9. シグナル待機
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	cancel()
	<-loopDone

	slog.Info("server stopped")
}

// initLogger はロガーを初期化する。
func initLogger(cfg *config.Config) {
	level := slog.LevelInfo
	switch strings.ToUpper(cfg.LogLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewJSONHandler(os.Stdout, opts)
	logger := slog.New(handler).With("app", "ntn-session")
	slog.SetDefault(logger)
}
