package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/osoko/erpdeck/internal"
	"github.com/spf13/cobra"
)

var chatMode string

var (
	userLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	assistantLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("135"))

	failedLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("196"))

	analysisStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Italic(true).
			Padding(0, 2)

	errorTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Padding(0, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	introStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			MarginBottom(1)

	exampleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	viewTagStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive assistant session",
	Long: `Open the interactive assistant console.

Submit free-text queries; responses with data render as per-dataset panels
you can expand, page through and switch between card/table/chart views.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		mode := internal.Mode(cfg.Mode)
		if chatMode != "" {
			mode = internal.Mode(chatMode)
		}

		client := internal.NewHTTPClient(cfg.BackendURL)
		model := newChatModel(client, mode, cfg.PageSize)

		dbPath, err := cfg.HistoryDBPath()
		if err == nil {
			store, storeErr := internal.OpenHistoryStore(dbPath)
			if storeErr != nil {
				internal.LogWarn("History disabled: %v", storeErr)
			} else {
				defer func() { _ = store.Close() }()
				model.history = store
			}
		}

		program := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("chat session failed: %w", err)
		}

		if model.history != nil && model.session.Len() > 0 {
			id, err := model.history.SaveSession(model.session)
			if err != nil {
				internal.LogWarn("Failed to save conversation: %v", err)
			} else {
				fmt.Printf("Conversation saved: %s\n", id)
			}
		}
		return nil
	},
}

type chatFocus int

const (
	focusInput chatFocus = iota
	focusData
)

// capsLoadedMsg carries the session-start capabilities fetch.
type capsLoadedMsg struct {
	caps internal.Capabilities
	err  error
}

// queryResolvedMsg carries the resolved backend result for the in-flight
// query. Transport errors have already been folded into a failed result.
type queryResolvedMsg struct {
	result internal.QueryResult
}

// chatModel is the bubbletea model for the assistant console. Every state
// mutation happens inside Update, which realizes the engine's cooperative
// event model: one handler at a time, no locks.
type chatModel struct {
	session  *internal.Session
	client   internal.QueryClient
	renderer *internal.Renderer
	history  *internal.HistoryStore
	mode     internal.Mode

	viewType internal.ViewType // session-scoped, shared by every dataset
	focus    chatFocus
	selected int // index into refs()

	caps     *internal.Capabilities
	capsErr  error
	input    textinput.Model
	spin     spinner.Model
	viewport viewport.Model
	width    int
	height   int
	ready    bool
}

func newChatModel(client internal.QueryClient, mode internal.Mode, pageSize int) *chatModel {
	input := textinput.New()
	input.Placeholder = "Ask about inventory, work orders, invoices..."
	input.Focus()
	input.CharLimit = 500

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))

	return &chatModel{
		session:  internal.NewSession(pageSize),
		client:   client,
		renderer: internal.NewRenderer(pageSize, nil),
		mode:     mode,
		viewType: internal.ViewCards,
		input:    input,
		spin:     spin,
	}
}

// Init fetches capabilities once per session start.
func (m *chatModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.fetchCapabilities())
}

func (m *chatModel) fetchCapabilities() tea.Cmd {
	return func() tea.Msg {
		caps, err := m.client.Capabilities(context.Background())
		return capsLoadedMsg{caps: caps, err: err}
	}
}

func (m *chatModel) submitQuery(text string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.client.Query(context.Background(), text, m.mode)
		if err != nil {
			result = internal.FailedResult(err)
		}
		return queryResolvedMsg{result: result}
	}
}

// datasetEntry pairs a view-state ref with the dataset it addresses, in
// render order.
type datasetEntry struct {
	ref internal.DatasetRef
	ds  internal.Dataset
}

// refs lists every rendered dataset across the whole log, in order.
func (m *chatModel) refs() []datasetEntry {
	var entries []datasetEntry
	for i := range m.session.Messages() {
		msg := &m.session.Messages()[i]
		for _, ds := range msg.Datasets() {
			entries = append(entries, datasetEntry{
				ref: m.session.Ref(msg, ds.Key),
				ds:  ds,
			})
		}
	}
	return entries
}

func (m *chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		footer := 4
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-footer)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - footer
		}
		m.refreshContent()

	case capsLoadedMsg:
		if msg.err != nil {
			m.capsErr = msg.err
			internal.LogWarn("Failed to fetch capabilities: %v", msg.err)
		} else {
			caps := msg.caps
			m.caps = &caps
		}
		m.refreshContent()

	case queryResolvedMsg:
		m.session.Resolve(msg.result)
		m.selectLastDataset()
		m.refreshContent()
		m.viewport.GotoBottom()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		if m.session.Busy() {
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		cmd, consumed := m.handleKey(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		if consumed {
			return m, tea.Batch(cmds...)
		}
	}

	if m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	} else {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *chatModel) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit, true

	case "ctrl+n":
		// new chat: the whole log and all view state go together
		m.session.Clear()
		m.selected = 0
		m.refreshContent()
		return nil, true

	case "tab":
		if m.focus == focusInput {
			m.focus = focusData
			m.input.Blur()
		} else {
			m.focus = focusInput
			m.input.Focus()
		}
		m.refreshContent()
		return nil, true

	case "enter":
		if m.focus != focusInput {
			return nil, true
		}
		text := strings.TrimSpace(m.input.Value())
		if text == "" || m.session.Busy() {
			// in-flight queries block a second submission; paging and
			// expansion below stay live
			return nil, true
		}
		if _, err := m.session.Submit(text); err != nil {
			return nil, true
		}
		m.input.Reset()
		m.refreshContent()
		m.viewport.GotoBottom()
		return tea.Batch(m.spin.Tick, m.submitQuery(text)), true
	}

	if m.focus == focusInput {
		// digit shortcuts populate the input from example queries while the
		// log is still empty
		if m.session.Len() == 0 && m.caps != nil && m.input.Value() == "" {
			if n, err := strconv.Atoi(msg.String()); err == nil && n >= 1 && n <= len(m.caps.Examples) {
				m.input.SetValue(m.caps.Examples[n-1])
				m.input.CursorEnd()
				return nil, true
			}
		}
		return nil, false
	}

	entries := m.refs()
	switch msg.String() {
	case "esc":
		m.focus = focusInput
		m.input.Focus()

	case "j", "down":
		if m.selected < len(entries)-1 {
			m.selected++
		}

	case "k", "up":
		if m.selected > 0 {
			m.selected--
		}

	case "v":
		switch m.viewType {
		case internal.ViewCards:
			m.viewType = internal.ViewTable
		case internal.ViewTable:
			m.viewType = internal.ViewCharts
		default:
			m.viewType = internal.ViewCards
		}

	case "e", " ":
		if entry, ok := m.selectedEntry(entries); ok {
			m.session.Expanded.Toggle(entry.ref)
		}

	case "]", "l", "right":
		if entry, ok := m.selectedEntry(entries); ok {
			m.session.Pages.Next(entry.ref, len(entry.ds.Records))
		}

	case "[", "h", "left":
		if entry, ok := m.selectedEntry(entries); ok {
			m.session.Pages.Prev(entry.ref, len(entry.ds.Records))
		}

	default:
		return nil, false
	}
	m.refreshContent()
	return nil, true
}

func (m *chatModel) selectedEntry(entries []datasetEntry) (datasetEntry, bool) {
	if m.selected < 0 || m.selected >= len(entries) {
		return datasetEntry{}, false
	}
	return entries[m.selected], true
}

// selectLastDataset moves the selection to the first dataset of the newest
// message and expands it.
func (m *chatModel) selectLastDataset() {
	entries := m.refs()
	if len(entries) == 0 {
		return
	}
	messages := m.session.Messages()
	lastID := messages[len(messages)-1].ID
	for i, entry := range entries {
		if entry.ref.MessageID == lastID {
			m.selected = i
			if !m.session.Expanded.IsExpanded(entry.ref) {
				m.session.Expanded.Toggle(entry.ref)
			}
			return
		}
	}
	m.selected = len(entries) - 1
}

func (m *chatModel) refreshContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderLog())
}

func (m *chatModel) renderLog() string {
	if m.session.Len() == 0 {
		return m.renderWelcome()
	}

	var b strings.Builder
	entryIdx := 0
	messages := m.session.Messages()
	for i := range messages {
		msg := &messages[i]
		b.WriteString(m.renderMessage(msg, &entryIdx))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *chatModel) renderWelcome() string {
	var b strings.Builder
	if m.caps != nil {
		b.WriteString(introStyle.Render(wordwrap.String(m.caps.Intro, m.contentWidth())))
		b.WriteString("\n")
		for _, capability := range m.caps.Capabilities {
			b.WriteString(fmt.Sprintf("  • %s\n", capability))
		}
		if len(m.caps.Examples) > 0 {
			b.WriteString("\n")
			b.WriteString(helpStyle.Render("Try an example (press its number):"))
			b.WriteString("\n")
			for i, example := range m.caps.Examples {
				b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, exampleStyle.Render(example)))
			}
		}
	} else if m.capsErr != nil {
		b.WriteString(helpStyle.Render("Could not reach the assistant backend yet; queries may fail."))
		b.WriteString("\n")
	} else {
		b.WriteString(helpStyle.Render("Connecting to the assistant backend..."))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *chatModel) renderMessage(msg *internal.Message, entryIdx *int) string {
	var b strings.Builder

	switch msg.Actor {
	case internal.ActorUser:
		b.WriteString(userLabelStyle.Render("👤 You"))
		b.WriteString("\n")
		b.WriteString(wordwrap.String(msg.Content, m.contentWidth()))
		b.WriteString("\n")

	case internal.ActorAssistant:
		if msg.Success != nil && !*msg.Success {
			b.WriteString(failedLabelStyle.Render("🤖 Assistant (failed)"))
			b.WriteString("\n")
			if msg.Content != "" {
				b.WriteString(wordwrap.String(msg.Content, m.contentWidth()))
				b.WriteString("\n")
			}
			if msg.Error != "" {
				b.WriteString(errorTextStyle.Render(msg.Error))
				b.WriteString("\n")
			}
			break
		}

		b.WriteString(assistantLabelStyle.Render("🤖 Assistant"))
		b.WriteString("\n")
		b.WriteString(m.renderMarkdown(msg.Content))
		if msg.Analysis != "" {
			b.WriteString(analysisStyle.Render(wordwrap.String(msg.Analysis, m.contentWidth()-4)))
			b.WriteString("\n")
		}

		for _, ds := range msg.Datasets() {
			ref := m.session.Ref(msg, ds.Key)
			state := internal.DatasetState{
				Page:      m.session.Pages.Page(ref, len(ds.Records)),
				PageCount: m.session.Pages.PageCount(len(ds.Records)),
				Expanded:  m.session.Expanded.IsExpanded(ref),
				Selected:  m.focus == focusData && *entryIdx == m.selected,
			}
			b.WriteString(m.renderer.Dataset(ds, state, m.viewType))
			b.WriteString("\n")
			*entryIdx++
		}
	}
	return b.String()
}

func (m *chatModel) renderMarkdown(content string) string {
	if content == "" {
		return ""
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(m.contentWidth()),
	)
	if err != nil {
		return wordwrap.String(content, m.contentWidth()) + "\n"
	}
	out, err := r.Render(content)
	if err != nil {
		return wordwrap.String(content, m.contentWidth()) + "\n"
	}
	return out
}

func (m *chatModel) contentWidth() int {
	if m.width <= 4 {
		return 76
	}
	return m.width - 4
}

func (m *chatModel) View() string {
	if !m.ready {
		return "loading..."
	}

	status := viewTagStyle.Render(fmt.Sprintf("[%s]", m.viewType))
	if m.session.Busy() {
		status += " " + m.spin.View() + helpStyle.Render("querying...")
	}

	var help string
	if m.focus == focusInput {
		help = helpStyle.Render("enter submit · tab datasets · ctrl+n new chat · ctrl+c quit")
	} else {
		help = helpStyle.Render("j/k select · e expand · [/] page · v view · tab input · ctrl+c quit")
	}

	return fmt.Sprintf("%s\n%s\n%s %s",
		m.viewport.View(),
		m.input.View(),
		status,
		help)
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringVar(&chatMode, "mode", "", "Query mode: system or general (default from config)")
}
