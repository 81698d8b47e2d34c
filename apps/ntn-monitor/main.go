// NTN Monitor - NTNセッション制御サービスの状態モニター
package main

import (
	"context"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/oyaguma3/ntn-session-poc/apps/ntn-monitor/internal/config"
	"github.com/oyaguma3/ntn-session-poc/apps/ntn-monitor/internal/store"
	"github.com/oyaguma3/ntn-session-poc/apps/ntn-monitor/internal/ui"
	"github.com/oyaguma3/ntn-session-poc/pkg/valkey"
)

// displayLimit は履歴・受信一覧の表示件数
const displayLimit = 20

func main() {
	cfg := config.Load()

	opts := valkey.TUIOptions().
		WithAddr(cfg.ValkeyAddr).
		WithPassword(cfg.ValkeyPassword)

	client, err := valkey.NewClient(opts)
	if err != nil {
		log.Fatalf("failed to connect to Valkey at %s: %v", cfg.ValkeyAddr, err)
	}
	defer client.Close()

	dashboardStore := store.NewDashboardStore(client, displayLimit)
	screen := ui.NewDashboardScreen(dashboardStore)
	app := ui.NewApp(screen.GetFlex())

	refresh := func() {
		ctx, cancel := context.WithTimeout(context.Background(), opts.ReadTimeout)
		defer cancel()
		if err := screen.Load(ctx); err != nil {
			app.StatusBar().ShowError("Failed to refresh: " + err.Error())
			return
		}
		app.StatusBar().ShowDefault()
	}

	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyCtrlQ || event.Key() == tcell.KeyEsc {
			app.Stop()
			return nil
		}
		switch event.Rune() {
		case 'q':
			app.Stop()
			return nil
		case 'r':
			refresh()
			return nil
		case 'c':
			ctx, cancel := context.WithTimeout(context.Background(), opts.WriteTimeout)
			defer cancel()
			if err := dashboardStore.ClearInbox(ctx); err != nil {
				app.StatusBar().ShowError(err.Error())
				return nil
			}
			refresh()
			app.StatusBar().ShowSuccess("Inbox cleared")
			return nil
		}
		return event
	})

	// 自動更新
	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(cfg.RefreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				app.QueueUpdateDraw(refresh)
			}
		}
	}()

	refresh()
	if err := app.Run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
	close(stop)
}
