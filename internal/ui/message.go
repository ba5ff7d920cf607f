package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/festify/internal/editor"
	"github.com/desertthunder/festify/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgArtistsFetched MsgKind = iota
	MsgArtistLoaded
	MsgSubmitDone
	MsgNotice
	MsgNoticeExpired
	MsgNavigate
)

type artistsFetched struct {
	artists []models.Artist
	err     error
}

type artistLoaded struct {
	ctrl *editor.Controller
	err  error
}

type notice struct {
	id      int
	text    string
	failure bool
}

// artistsFetchedMsg is the constructor for [MsgArtistsFetched]
func artistsFetchedMsg(artists []models.Artist, err error) Msg {
	return Msg{kind: MsgArtistsFetched, data: artistsFetched{artists, err}}
}

// artistLoadedMsg is the constructor for [MsgArtistLoaded]
func artistLoadedMsg(ctrl *editor.Controller, err error) Msg {
	return Msg{kind: MsgArtistLoaded, data: artistLoaded{ctrl, err}}
}

// submitDoneMsg is the constructor for [MsgSubmitDone]
func submitDoneMsg(err error) Msg {
	return Msg{kind: MsgSubmitDone, data: err}
}

// noticeMsg is the constructor for [MsgNotice]
func noticeMsg(text string, failure bool) Msg {
	return Msg{kind: MsgNotice, data: notice{text: text, failure: failure}}
}

// noticeExpiredMsg is the constructor for [MsgNoticeExpired]
func noticeExpiredMsg(id int) Msg {
	return Msg{kind: MsgNoticeExpired, data: id}
}

// navigateMsg is the constructor for [MsgNavigate]
func navigateMsg(path string) Msg {
	return Msg{kind: MsgNavigate, data: path}
}
