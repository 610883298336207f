// Package ui provides the Bubble Tea terminal interface for vibetui.
package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vibesocial/vibetui/internal/session"
	"github.com/vibesocial/vibetui/internal/state"
	"github.com/vibesocial/vibetui/internal/vibe"
)

// View represents the current active view.
type View int

const (
	ViewFeed View = iota
	ViewStories
	ViewReels
	ViewSearch
)

// Service is the slice of application actions the UI drives. Implemented by
// *app.Service.
type Service interface {
	ToggleFollow(ctx context.Context, targetID string) <-chan error
	ToggleLike(ctx context.Context, postID string) <-chan error
	RefreshFeed(ctx context.Context) error
	RefreshStories(ctx context.Context) error
	RefreshReels(ctx context.Context) error
	LikeReel(ctx context.Context, reelID string) error
	UserProfile(ctx context.Context, userID string) (vibe.User, error)
	PostComments(ctx context.Context, postID string) ([]vibe.Comment, error)
	CommentOnPost(ctx context.Context, postID, text string) ([]vibe.Comment, error)
	ReelComments(ctx context.Context, reelID string) ([]vibe.Comment, error)
	CommentOnReel(ctx context.Context, reelID, text string) ([]vibe.Comment, error)
	OpenNotificationsPanel(ctx context.Context) error
	CloseNotificationsPanel()
	RemoveNotification(ctx context.Context, notificationID string) error
	ClearNotifications(ctx context.Context) error
}

// Searcher runs user and post queries. Implemented by *vibe.Client.
type Searcher interface {
	Search(ctx context.Context, query string) (vibe.SearchResult, error)
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Service   Service
	Search    Searcher
	Store     *state.Store
	Session   *session.Store
	ThemeName string
	PollTick  time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Collaborators
	ctx      context.Context
	service  Service
	search   Searcher
	store    *state.Store
	session  *session.Store
	pollTick time.Duration

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool

	// Data state
	snapshot    state.Snapshot
	lastUpdated time.Time

	// Feed state
	selectedRow int

	// Stories state
	selectedStory int

	// Reels state
	selectedReel int

	// Notification panel state
	notifSelected int

	// Profile overlay
	profileOpen bool
	profileUser vibe.User

	// Comments overlay. commentsReel marks the thread as belonging to a
	// reel rather than a feed post.
	commentsOpen bool
	commentsReel bool
	commentsID   string
	comments     []vibe.Comment
	commentInput textinput.Model

	// Search state
	searchInput   textinput.Model
	searchSpinner spinner.Model
	searching     bool
	searchResult  vibe.SearchResult
	searchDone    bool

	// Transient status line, cleared on the next completed action
	statusLine  string
	statusIsErr bool

	// Help overlay
	showHelp bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = time.Second
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}

	input := textinput.New()
	input.Placeholder = "Search users and posts"
	input.CharLimit = 80

	comment := textinput.New()
	comment.Placeholder = "Add a comment"
	comment.CharLimit = 200

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return Model{
		ctx:           ctx,
		service:       opts.Service,
		search:        opts.Search,
		store:         opts.Store,
		session:       opts.Session,
		pollTick:      pollTick,
		theme:         GetTheme(themeName),
		currentView:   ViewFeed,
		searchInput:   input,
		commentInput:  comment,
		searchSpinner: spin,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(m.pollTick),
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.lastUpdated = time.Now()
		m.clampSelections()
		return m, nil

	case actionDoneMsg:
		if msg.err != nil {
			m.statusLine = userMessage(msg.err)
			m.statusIsErr = true
		} else {
			m.statusLine = ""
			m.statusIsErr = false
		}
		return m, fetchSnapshotCmd(m.store)

	case profileMsg:
		if msg.err != nil {
			m.statusLine = userMessage(msg.err)
			m.statusIsErr = true
			return m, nil
		}
		m.profileUser = msg.user
		m.profileOpen = true
		return m, nil

	case commentsMsg:
		if msg.err != nil {
			m.statusLine = userMessage(msg.err)
			m.statusIsErr = true
			return m, nil
		}
		m.comments = msg.items
		m.commentsOpen = true
		m.commentInput.SetValue("")
		m.commentInput.Blur()
		m.statusLine = ""
		m.statusIsErr = false
		return m, nil

	case searchDoneMsg:
		m.searching = false
		m.searchDone = true
		if msg.err != nil {
			m.statusLine = userMessage(msg.err)
			m.statusIsErr = true
			m.searchResult = vibe.SearchResult{}
		} else {
			m.searchResult = msg.result
		}
		return m, nil

	case spinner.TickMsg:
		if !m.searching {
			return m, nil
		}
		var cmd tea.Cmd
		m.searchSpinner, cmd = m.searchSpinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.commentsOpen {
		return m.renderComments()
	}

	if m.profileOpen {
		return m.renderProfile()
	}

	if m.snapshot.PanelOpen {
		return m.renderNotificationsPanel()
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.commentsOpen {
		return m.handleCommentsKey(msg)
	}

	if m.profileOpen {
		return m.handleProfileKey(msg)
	}

	if m.snapshot.PanelOpen {
		return m.handlePanelKey(msg)
	}

	if m.currentView == ViewSearch && m.searchInput.Focused() {
		return m.handleSearchInputKey(msg)
	}

	// Global keys
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "h", "?":
		m.showHelp = true
		return m, nil

	case "T":
		m.theme = GetTheme(NextTheme(m.theme.Name))
		return m, nil

	case "n":
		// Open the notification panel: polling pauses and everything is
		// marked read.
		return m, openPanelCmd(m.ctx, m.service)

	case "r":
		return m, tea.Batch(
			refreshCmd(m.ctx, m.service),
			fetchSnapshotCmd(m.store),
		)

	case "/":
		m.currentView = ViewSearch
		m.searchDone = false
		m.searchInput.SetValue("")
		m.searchInput.Focus()
		return m, textinput.Blink

	case "s":
		m.currentView = ViewStories
		return m, nil

	case "v":
		m.currentView = ViewReels
		return m, refreshReelsCmd(m.ctx, m.service)

	case "esc":
		m.currentView = ViewFeed
		return m, nil
	}

	switch m.currentView {
	case ViewFeed:
		return m.handleFeedKey(msg)
	case ViewStories:
		return m.handleStoriesKey(msg)
	case ViewReels:
		return m.handleReelsKey(msg)
	case ViewSearch:
		return m.handleSearchKey(msg)
	}

	return m, nil
}

// handleFeedKey processes keyboard input for the feed view.
func (m Model) handleFeedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	posts := m.snapshot.Feed
	if len(posts) == 0 {
		return m, nil
	}

	switch msg.String() {
	case "j", "down":
		if m.selectedRow < len(posts)-1 {
			m.selectedRow++
		}
	case "k", "up":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case "g", "home":
		m.selectedRow = 0
	case "G", "end":
		m.selectedRow = len(posts) - 1

	case "l", "enter":
		// Toggle like on the selected post. The local flip is already
		// visible when the command returns.
		post := posts[m.selectedRow]
		return m, tea.Batch(
			actionCmd(m.service.ToggleLike(m.ctx, post.ID.String())),
			fetchSnapshotCmd(m.store),
		)

	case "f":
		// Toggle follow on the selected post's author.
		author := posts[m.selectedRow].AuthorRef()
		if author.ID == "" {
			return m, nil
		}
		return m, actionCmd(m.service.ToggleFollow(m.ctx, author.ID.String()))

	case "c":
		post := posts[m.selectedRow]
		m.commentsID = post.ID.String()
		m.commentsReel = false
		return m, commentsCmd(m.ctx, m.service, m.commentsID, false)

	case "p":
		author := posts[m.selectedRow].AuthorRef()
		if author.ID == "" {
			return m, nil
		}
		return m, profileCmd(m.ctx, m.service, author.ID.String())
	}

	return m, nil
}

// handleReelsKey processes keyboard input for the reels view.
func (m Model) handleReelsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	reels := m.snapshot.Reels
	if len(reels) == 0 {
		return m, nil
	}

	switch msg.String() {
	case "j", "down":
		if m.selectedReel < len(reels)-1 {
			m.selectedReel++
		}
	case "k", "up":
		if m.selectedReel > 0 {
			m.selectedReel--
		}
	case "g", "home":
		m.selectedReel = 0
	case "G", "end":
		m.selectedReel = len(reels) - 1

	case "l", "enter":
		reel := reels[m.selectedReel]
		return m, likeReelCmd(m.ctx, m.service, reel.ID.String())

	case "f":
		author := reels[m.selectedReel].Author
		if author.ID == "" {
			return m, nil
		}
		return m, actionCmd(m.service.ToggleFollow(m.ctx, author.ID.String()))

	case "c":
		m.commentsID = reels[m.selectedReel].ID.String()
		m.commentsReel = true
		return m, commentsCmd(m.ctx, m.service, m.commentsID, true)

	case "p":
		author := reels[m.selectedReel].Author
		if author.ID == "" {
			return m, nil
		}
		return m, profileCmd(m.ctx, m.service, author.ID.String())
	}

	return m, nil
}

// handleProfileKey processes keyboard input while the profile overlay is
// open.
func (m Model) handleProfileKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc", "p", "q":
		m.profileOpen = false
		return m, nil

	case "f":
		if m.profileUser.ID == "" {
			return m, nil
		}
		return m, actionCmd(m.service.ToggleFollow(m.ctx, m.profileUser.ID.String()))
	}

	return m, nil
}

// handleCommentsKey processes keyboard input while the comments overlay is
// open.
func (m Model) handleCommentsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.commentInput.Focused() {
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			m.commentInput.Blur()
			return m, nil

		case "enter":
			text := strings.TrimSpace(m.commentInput.Value())
			if text == "" {
				return m, nil
			}
			return m, addCommentCmd(m.ctx, m.service, m.commentsID, m.commentsReel, text)
		}

		var cmd tea.Cmd
		m.commentInput, cmd = m.commentInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc", "c", "q":
		m.commentsOpen = false
		return m, nil

	case "a", "i":
		m.commentInput.Focus()
		return m, textinput.Blink
	}

	return m, nil
}

// handleStoriesKey processes keyboard input for the stories view.
func (m Model) handleStoriesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	stories := m.snapshot.Stories
	if len(stories) == 0 {
		return m, nil
	}

	switch msg.String() {
	case "j", "down", "right":
		if m.selectedStory < len(stories)-1 {
			m.selectedStory++
		}
	case "k", "up", "left":
		if m.selectedStory > 0 {
			m.selectedStory--
		}
	}
	return m, nil
}

// handlePanelKey processes keyboard input while the notification panel is
// open.
func (m Model) handlePanelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.snapshot.Notifications

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc", "n":
		m.service.CloseNotificationsPanel()
		return m, fetchSnapshotCmd(m.store)

	case "j", "down":
		if m.notifSelected < len(items)-1 {
			m.notifSelected++
		}
	case "k", "up":
		if m.notifSelected > 0 {
			m.notifSelected--
		}

	case "x", "d":
		if len(items) == 0 {
			return m, nil
		}
		id := items[m.notifSelected].ID.String()
		return m, removeNotificationCmd(m.ctx, m.service, id)

	case "X":
		if len(items) == 0 {
			return m, nil
		}
		return m, clearNotificationsCmd(m.ctx, m.service)
	}

	return m, nil
}

// handleSearchInputKey processes keys while the search input is focused.
func (m Model) handleSearchInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.searchInput.Blur()
		m.currentView = ViewFeed
		return m, nil

	case "enter":
		query := strings.TrimSpace(m.searchInput.Value())
		if query == "" {
			return m, nil
		}
		m.searchInput.Blur()
		m.searching = true
		m.searchDone = false
		return m, tea.Batch(
			searchCmd(m.ctx, m.search, query),
			m.searchSpinner.Tick,
		)
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleSearchKey processes keys on the search results view.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "/", "i":
		m.searchDone = false
		m.searchInput.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

// handleTick processes the polling tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return m, tea.Batch(cmds...)
}

// clampSelections keeps row cursors inside the refreshed lists.
func (m *Model) clampSelections() {
	if n := len(m.snapshot.Feed); m.selectedRow >= n {
		m.selectedRow = max(0, n-1)
	}
	if n := len(m.snapshot.Stories); m.selectedStory >= n {
		m.selectedStory = max(0, n-1)
	}
	if n := len(m.snapshot.Reels); m.selectedReel >= n {
		m.selectedReel = max(0, n-1)
	}
	if n := len(m.snapshot.Notifications); m.notifSelected >= n {
		m.notifSelected = max(0, n-1)
	}
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	switch m.currentView {
	case ViewStories:
		b.WriteString(m.renderStories())
	case ViewReels:
		b.WriteString(m.renderReels())
	case ViewSearch:
		b.WriteString(m.renderSearch())
	default:
		b.WriteString(m.renderFeed())
	}

	return b.String()
}

// userMessage prefers the server-provided text when the error carries one.
func userMessage(err error) string {
	var apiErr *vibe.APIError
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}
	return err.Error()
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type actionDoneMsg struct{ err error }

type profileMsg struct {
	user vibe.User
	err  error
}

type commentsMsg struct {
	items []vibe.Comment
	err   error
}

type searchDoneMsg struct {
	result vibe.SearchResult
	err    error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func actionCmd(done <-chan error) tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg{err: <-done}
	}
}

func openPanelCmd(ctx context.Context, svc Service) tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg{err: svc.OpenNotificationsPanel(ctx)}
	}
}

func refreshCmd(ctx context.Context, svc Service) tea.Cmd {
	return func() tea.Msg {
		if err := svc.RefreshFeed(ctx); err != nil {
			return actionDoneMsg{err: err}
		}
		if err := svc.RefreshStories(ctx); err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{err: svc.RefreshReels(ctx)}
	}
}

func refreshReelsCmd(ctx context.Context, svc Service) tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg{err: svc.RefreshReels(ctx)}
	}
}

func likeReelCmd(ctx context.Context, svc Service, id string) tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg{err: svc.LikeReel(ctx, id)}
	}
}

func profileCmd(ctx context.Context, svc Service, userID string) tea.Cmd {
	return func() tea.Msg {
		user, err := svc.UserProfile(ctx, userID)
		return profileMsg{user: user, err: err}
	}
}

func commentsCmd(ctx context.Context, svc Service, id string, reel bool) tea.Cmd {
	return func() tea.Msg {
		var items []vibe.Comment
		var err error
		if reel {
			items, err = svc.ReelComments(ctx, id)
		} else {
			items, err = svc.PostComments(ctx, id)
		}
		return commentsMsg{items: items, err: err}
	}
}

func addCommentCmd(ctx context.Context, svc Service, id string, reel bool, text string) tea.Cmd {
	return func() tea.Msg {
		var items []vibe.Comment
		var err error
		if reel {
			items, err = svc.CommentOnReel(ctx, id, text)
		} else {
			items, err = svc.CommentOnPost(ctx, id, text)
		}
		return commentsMsg{items: items, err: err}
	}
}

func removeNotificationCmd(ctx context.Context, svc Service, id string) tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg{err: svc.RemoveNotification(ctx, id)}
	}
}

func clearNotificationsCmd(ctx context.Context, svc Service) tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg{err: svc.ClearNotifications(ctx)}
	}
}

func searchCmd(ctx context.Context, searcher Searcher, query string) tea.Cmd {
	return func() tea.Msg {
		if searcher == nil {
			return searchDoneMsg{}
		}
		result, err := searcher.Search(ctx, query)
		return searchDoneMsg{result: result, err: err}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
