package ui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/oyaguma3/ntn-session-poc/apps/ntn-monitor/internal/format"
	"github.com/oyaguma3/ntn-session-poc/apps/ntn-monitor/internal/store"
)

// payloadPreviewBytes は受信一覧に表示するペイロードのバイト数
const payloadPreviewBytes = 16

// DashboardSource はDashboardの取得元。
type DashboardSource interface {
	Get(ctx context.Context) (*store.Dashboard, error)
}

// DashboardScreen はセッション状態・送信メトリクス・受信一覧を表示する画面。
type DashboardScreen struct {
	flex    *tview.Flex
	session *tview.TextView
	stats   *tview.TextView
	inbox   *tview.TextView
	source  DashboardSource
}

// NewDashboardScreen は新しいDashboardScreenを生成する。
func NewDashboardScreen(source DashboardSource) *DashboardScreen {
	session := newPanel(" Session ")
	stats := newPanel(" Datagram Statistics ")
	inbox := newPanel(" Inbox ")

	top := tview.NewFlex().
		AddItem(session, 0, 1, false).
		AddItem(stats, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(top, 0, 1, false).
		AddItem(inbox, 0, 1, true)

	return &DashboardScreen{
		flex:    flex,
		session: session,
		stats:   stats,
		inbox:   inbox,
		source:  source,
	}
}

// GetFlex は内部のtview.Flexを返す。
func (s *DashboardScreen) GetFlex() *tview.Flex {
	return s.flex
}

// Load はデータを読み込んで再描画する。
func (s *DashboardScreen) Load(ctx context.Context) error {
	d, err := s.source.Get(ctx)
	if err != nil {
		s.session.SetText("[red]Error loading dashboard: " + err.Error() + "[-]")
		return err
	}
	s.session.SetText(RenderSession(d))
	s.stats.SetText(RenderStats(d))
	s.inbox.SetText(RenderInbox(d))
	return nil
}

func newPanel(title string) *tview.TextView {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	tv.SetTitle(title).
		SetTitleAlign(tview.AlignCenter).
		SetBorder(true).
		SetBorderColor(tcell.ColorBlue)
	return tv
}

// RenderSession は現在のセッション状態と履歴を描画する。
func RenderSession(d *store.Dashboard) string {
	var b strings.Builder
	b.WriteString("[yellow::b]Current[-::-]\n")
	if d.Current == nil {
		b.WriteString("  [gray]no state recorded[-]\n")
	} else {
		fmt.Fprintf(&b, "  [%s::b]%s[-::-]  since %s\n",
			stateColor(d.Current.State), d.Current.State, format.DateTimeMilli(d.Current.ChangedAt))
	}

	b.WriteString("\n[yellow::b]History[-::-]\n")
	for _, e := range d.History {
		fmt.Fprintf(&b, "  %s  [%s]%s[-]\n", format.DateTimeMilli(e.ChangedAt), stateColor(e.State), e.State)
	}
	fmt.Fprintf(&b, "\n[gray]Last updated: %s[-]\n", d.UpdatedAt.Format("15:04:05"))
	return b.String()
}

// RenderStats は優先度ごとの送信メトリクスを描画する。
func RenderStats(d *store.Dashboard) string {
	var b strings.Builder
	renderStats(&b, "Emergency", d.Emergency)
	b.WriteString("\n")
	renderStats(&b, "Normal", d.Normal)
	return b.String()
}

func renderStats(b *strings.Builder, title string, s store.SendStats) {
	fmt.Fprintf(b, "[yellow::b]%s[-::-]\n", title)
	fmt.Fprintf(b, "  [cyan]Sent:[-]        %d (demo %d)\n", s.Count, s.DemoCount)
	fmt.Fprintf(b, "  [cyan]Bytes:[-]       %s\n", format.Bytes(s.Bytes))
	fmt.Fprintf(b, "  [cyan]Avg latency:[-] %s\n", format.AverageMs(s.LatencyMsTotal, s.Count))

	results := make([]string, 0, len(s.Results))
	for r := range s.Results {
		results = append(results, r)
	}
	sort.Strings(results)
	for _, r := range results {
		fmt.Fprintf(b, "    %-20s %d\n", r, s.Results[r])
	}
}

// RenderInbox は受信データグラム一覧を描画する。
func RenderInbox(d *store.Dashboard) string {
	if len(d.Inbox) == 0 {
		return "[gray]no datagrams received[-]\n"
	}
	var b strings.Builder
	for _, r := range d.Inbox {
		fmt.Fprintf(&b, "  %s  %4d B  pending=%d  %s\n",
			format.DateTimeMilli(r.ReceivedAt), len(r.Payload), r.Pending,
			format.PayloadPreview(r.Payload, payloadPreviewBytes))
	}
	return b.String()
}

// stateColor はセッション状態の表示色を返す。
func stateColor(state string) string {
	switch state {
	case "IDLE", "CONNECTED", "LISTENING":
		return "green"
	case "TRANSFERRING", "ENABLING", "DISABLING":
		return "yellow"
	case "NOT_CONNECTED":
		return "orange"
	case "UNAVAILABLE":
		return "red"
	default:
		return "gray"
	}
}
