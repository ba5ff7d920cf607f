package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/festify/internal/editor"
	"github.com/desertthunder/festify/internal/models"
	"github.com/desertthunder/festify/internal/services"
	"github.com/desertthunder/festify/internal/shared"
)

// PathEditArtist prefixes the edit route; the artist id follows it.
const PathEditArtist = "/edit-artist/"

const noticeTTL = 4 * time.Second

// ViewState represents the current view in the TUI.
type ViewState int

const (
	HomeView ViewState = iota
	ArtistListView
	EditArtistView
	ErrorView
)

// EditPath returns the route of the edit view for id.
func EditPath(id string) string {
	return PathEditArtist + id
}

// Options configures a [Model].
type Options struct {
	// StartPath is the first route shown. Defaults to the home view.
	StartPath string
	Logger    *log.Logger
}

// Model represents the TUI application state.
type Model struct {
	ctx        context.Context
	view       ViewState
	service    services.ArtistService
	logger     *log.Logger
	bridge     *bridge
	start      string
	width      int
	height     int
	artistList list.Model
	artists    []models.Artist
	listReady  bool
	listErr    error
	editor     *editView
	errDetail  string
	notice     notice
	noticeSeq  int
	help       help.Model
	keys       keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, service services.ArtistService, opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(io.Discard)
	}
	if opts.StartPath == "" {
		opts.StartPath = editor.PathHome
	}
	return &Model{
		ctx:     ctx,
		view:    HomeView,
		service: service,
		logger:  opts.Logger,
		bridge:  newBridge(),
		start:   opts.StartPath,
		width:   80,
		height:  24,
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// Init opens the start route and begins listening for controller feedback.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.navigate(m.start), m.bridge.wait())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.listReady {
			m.artistList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.view {
		case HomeView:
			return m.handleHomeKeys(msg)
		case ArtistListView:
			return m.handleListKeys(msg)
		case EditArtistView:
			return m.handleEditKeys(msg)
		case ErrorView:
			return m.handleErrorKeys(msg)
		}
		return m, nil

	case Msg:
		return m, m.handleMsg(msg)
	}

	switch {
	case m.view == ArtistListView && m.listReady:
		var cmd tea.Cmd
		m.artistList, cmd = m.artistList.Update(msg)
		return m, cmd
	case m.view == EditArtistView && m.editor != nil:
		return m, m.editor.forward(msg)
	}
	return m, nil
}

func (m *Model) handleMsg(msg Msg) tea.Cmd {
	switch msg.kind {
	case MsgArtistsFetched:
		data := msg.data.(artistsFetched)
		if data.err != nil {
			m.logger.Error("failed to list artists", "err", data.err)
			m.listErr = data.err
			return nil
		}
		m.setArtists(data.artists)
		return nil

	case MsgArtistLoaded:
		data := msg.data.(artistLoaded)
		if m.editor == nil || m.editor.ctrl != data.ctrl || errors.Is(data.err, editor.ErrDisposed) {
			return nil
		}
		if data.ctrl.Failed() {
			m.errDetail = data.ctrl.LoadError()
			m.closeEditor()
			m.view = ErrorView
			return nil
		}
		m.editor.loading = false
		m.editor.sync()
		return m.editor.focusField()

	case MsgSubmitDone:
		if err, _ := msg.data.(error); err != nil && !errors.Is(err, editor.ErrDisposed) {
			m.logger.Debug("submit finished", "err", err)
		}
		return nil

	case MsgNotice:
		n := msg.data.(notice)
		m.noticeSeq++
		n.id = m.noticeSeq
		m.notice = n
		return tea.Batch(m.bridge.wait(), tea.Tick(noticeTTL, func(time.Time) tea.Msg {
			return noticeExpiredMsg(n.id)
		}))

	case MsgNoticeExpired:
		if id, _ := msg.data.(int); id == m.notice.id {
			m.notice = notice{}
		}
		return nil

	case MsgNavigate:
		path, _ := msg.data.(string)
		return tea.Batch(m.bridge.wait(), m.navigate(path))
	}
	return nil
}

// navigate switches to the view for path. Leaving the edit view closes its session.
func (m *Model) navigate(path string) tea.Cmd {
	m.closeEditor()
	m.logger.Debug("navigate", "path", path)

	switch {
	case path == editor.PathHome:
		m.view = HomeView
		return nil
	case path == editor.PathArtists:
		m.view = ArtistListView
		return m.fetchArtists()
	case path == editor.PathNewArtist:
		return m.openCreator()
	case strings.HasPrefix(path, PathEditArtist):
		return m.openEditor(strings.TrimPrefix(path, PathEditArtist))
	default:
		m.logger.Warn("unknown route", "path", path)
		m.view = HomeView
		return nil
	}
}

func (m *Model) editorOptions() editor.Options {
	return editor.Options{
		Service:   m.service,
		Notifier:  m.bridge,
		Navigator: m.bridge,
		Logger:    m.logger,
	}
}

func (m *Model) openEditor(id string) tea.Cmd {
	ctrl := editor.NewController(id, m.editorOptions())
	m.editor = newEditView(ctrl, m.width)
	m.view = EditArtistView
	return tea.Batch(m.editor.focusField(), m.loadArtist(ctrl))
}

// openCreator shows the form for a new artist; there is nothing to load.
func (m *Model) openCreator() tea.Cmd {
	ctrl := editor.NewCreateController(m.editorOptions())
	m.editor = newEditView(ctrl, m.width)
	m.view = EditArtistView
	return m.editor.focusField()
}

func (m *Model) closeEditor() {
	if m.editor != nil {
		m.editor.ctrl.Dispose()
		m.editor = nil
	}
}

func (m *Model) setArtists(artists []models.Artist) {
	m.artists = artists
	m.listErr = nil
	items := make([]list.Item, len(artists))
	for i, a := range artists {
		items[i] = artistItem{artist: a}
	}
	m.artistList = list.New(items, list.NewDefaultDelegate(), m.width-4, m.height-8)
	m.artistList.Title = "Artists"
	m.listReady = true
}

func (m *Model) handleHomeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.enter):
		return m, m.navigate(editor.PathArtists)
	case key.Matches(msg, m.keys.create):
		return m, m.navigate(editor.PathNewArtist)
	}
	return m, nil
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.listReady && m.artistList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.artistList, cmd = m.artistList.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		return m, m.navigate(editor.PathHome)
	case key.Matches(msg, m.keys.refresh):
		return m, m.fetchArtists()
	case key.Matches(msg, m.keys.create):
		return m, m.navigate(editor.PathNewArtist)
	case key.Matches(msg, m.keys.enter):
		if !m.listReady {
			return m, nil
		}
		if item, ok := m.artistList.SelectedItem().(artistItem); ok {
			return m, m.navigate(EditPath(item.artist.ID))
		}
		return m, nil
	}

	if !m.listReady {
		return m, nil
	}
	var cmd tea.Cmd
	m.artistList, cmd = m.artistList.Update(msg)
	return m, cmd
}

func (m *Model) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		return m, m.navigate(editor.PathArtists)
	case m.editor == nil || m.editor.loading:
		return m, nil
	case key.Matches(msg, m.keys.save):
		return m, m.submit()
	case key.Matches(msg, m.keys.reset):
		return m, m.editor.reset()
	}
	return m, m.editor.update(msg, m.keys)
}

func (m *Model) handleErrorKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.home):
		return m, m.navigate(editor.PathHome)
	}
	return m, nil
}

func (m *Model) fetchArtists() tea.Cmd {
	return func() tea.Msg {
		artists, err := m.service.ListArtists(m.ctx)
		return artistsFetchedMsg(artists, err)
	}
}

func (m *Model) loadArtist(ctrl *editor.Controller) tea.Cmd {
	return func() tea.Msg {
		return artistLoadedMsg(ctrl, ctrl.Load(m.ctx))
	}
}

// submit starts a save unless the controller refuses it.
func (m *Model) submit() tea.Cmd {
	if !m.editor.ctrl.CanSubmit() {
		return nil
	}
	ctrl := m.editor.ctrl
	return func() tea.Msg {
		return submitDoneMsg(ctrl.Submit(m.ctx))
	}
}

// View renders the current view between the fixed header and footer.
func (m *Model) View() string {
	var body string
	switch m.view {
	case HomeView:
		body = m.renderHome()
	case ArtistListView:
		body = m.renderList()
	case EditArtistView:
		body = m.renderEdit()
	case ErrorView:
		body = m.renderError()
	}

	sections := []string{m.renderHeader(), body}
	if m.notice.text != "" {
		style := styles.ok
		if m.notice.failure {
			style = styles.err
		}
		sections = append(sections, style.Render(m.notice.text))
	}
	sections = append(sections, m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderHeader() string {
	return styles.header.Render("Festify") + "\n"
}

func (m *Model) renderFooter() string {
	return styles.footer.Render("Festify · artist administration")
}

func (m *Model) renderHome() string {
	title := styles.title.Render("Welcome to Festify")
	menu := "Manage the artists of your festivals.\n\n  › Artists\n  › New artist"
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.create, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n\n%s", title, menu, helpView)
}

func (m *Model) renderList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.create, m.keys.refresh, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	switch {
	case m.listErr != nil:
		return fmt.Sprintf("%s\n\n%s", styles.err.Render(fmt.Sprintf("Could not load artists: %v", m.listErr)), helpView)
	case !m.listReady:
		return fmt.Sprintf("%s\n\n%s", styles.help.Render("Loading artists..."), helpView)
	}
	return fmt.Sprintf("%s\n\n%s", m.artistList.View(), helpView)
}

func (m *Model) renderEdit() string {
	if m.editor == nil {
		return ""
	}
	helpKeys := []key.Binding{m.keys.next, m.keys.left, m.keys.right, m.keys.save, m.keys.reset, m.keys.back}
	return fmt.Sprintf("%s\n\n%s", m.editor.view(), m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderError() string {
	title := styles.err.Render("Error")
	info := fmt.Sprintf("Unexpected error\n\n%s\n\nBack to home: %s", m.errDetail, editor.PathHome)
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.home, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n\n%s", title, info, helpView)
}
