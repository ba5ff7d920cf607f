package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/festify/internal/editor"
)

var (
	_ editor.Notifier  = (*bridge)(nil)
	_ editor.Navigator = (*bridge)(nil)
)

// bridge turns controller callbacks into messages for the program loop.
type bridge struct {
	msgs chan tea.Msg
}

func newBridge() *bridge {
	return &bridge{msgs: make(chan tea.Msg, 16)}
}

func (b *bridge) Success(msg string)   { b.msgs <- noticeMsg(msg, false) }
func (b *bridge) Failure(msg string)   { b.msgs <- noticeMsg(msg, true) }
func (b *bridge) Navigate(path string) { b.msgs <- navigateMsg(path) }

// wait blocks until the next bridged message.
func (b *bridge) wait() tea.Cmd {
	return func() tea.Msg {
		return <-b.msgs
	}
}
