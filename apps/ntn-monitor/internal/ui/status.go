package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// defaultStatusText はステータスバーの既定表示
const defaultStatusText = " r:Refresh | c:Clear inbox | q/Ctrl+Q:Quit"

// StatusBar はステータスバーを管理する。
type StatusBar struct {
	view *tview.TextView
}

// NewStatusBar は新しいStatusBarを生成する。
func NewStatusBar() *StatusBar {
	view := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)

	view.SetBackgroundColor(tcell.ColorDarkBlue)
	view.SetTextColor(tcell.ColorWhite)
	view.SetText(defaultStatusText)

	return &StatusBar{view: view}
}

// ShowDefault は既定のメッセージを表示する。
func (s *StatusBar) ShowDefault() {
	s.view.SetText(defaultStatusText)
}

// ShowSuccess は成功メッセージを表示する。
func (s *StatusBar) ShowSuccess(message string) {
	s.view.SetText("[green::b] ✓ " + message + " [-::-]")
}

// ShowError はエラーメッセージを表示する。
func (s *StatusBar) ShowError(message string) {
	s.view.SetText("[red::b] ✗ " + message + " [-::-]")
}
