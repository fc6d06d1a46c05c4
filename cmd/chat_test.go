package cmd

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/osoko/erpdeck/internal"
	"github.com/osoko/erpdeck/testutil"
)

func newTestChat(t *testing.T, client internal.QueryClient) *chatModel {
	t.Helper()
	m := newChatModel(client, internal.ModeSystem, 6)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestChatModel_SubmitAppendsAndBlocks(t *testing.T) {
	client := testutil.SuccessClient()
	m := newTestChat(t, client)

	m.input.SetValue("show low stock")
	_, _ = m.Update(keyMsg("enter"))

	if m.session.Len() != 1 {
		t.Fatalf("log length = %d, want 1 after submit", m.session.Len())
	}
	if !m.session.Busy() {
		t.Fatal("session should be busy while the query is in flight")
	}

	// a second submission while busy is ignored
	m.input.SetValue("another query")
	_, _ = m.Update(keyMsg("enter"))
	if m.session.Len() != 1 {
		t.Errorf("log length = %d, blocked submit must not append", m.session.Len())
	}

	m.Update(queryResolvedMsg{result: client.Result})
	if m.session.Busy() {
		t.Error("session should be idle after the result resolves")
	}
	if m.session.Len() != 2 {
		t.Errorf("log length = %d, want 2 after resolve", m.session.Len())
	}
}

func TestChatModel_RefsSpanMessagesInOrder(t *testing.T) {
	client := testutil.SuccessClient()
	m := newTestChat(t, client)

	m.input.SetValue("first")
	_, _ = m.Update(keyMsg("enter"))
	m.Update(queryResolvedMsg{result: client.Result})

	m.input.SetValue("second")
	_, _ = m.Update(keyMsg("enter"))
	m.Update(queryResolvedMsg{result: client.Result})

	entries := m.refs()
	if len(entries) != 4 {
		t.Fatalf("got %d dataset entries, want 4 (two per response)", len(entries))
	}
	if entries[0].ds.Key != "inventory" || entries[1].ds.Key != "work_orders" {
		t.Errorf("first response datasets out of order: %s, %s", entries[0].ds.Key, entries[1].ds.Key)
	}
	if entries[0].ref.MessageID == entries[2].ref.MessageID {
		t.Error("datasets of different messages must have distinct refs")
	}
}

func TestChatModel_DatasetNavigation(t *testing.T) {
	client := testutil.SuccessClient()
	m := newTestChat(t, client)

	m.input.SetValue("query")
	_, _ = m.Update(keyMsg("enter"))
	m.Update(queryResolvedMsg{result: client.Result})

	// resolve selects and expands the newest message's first dataset
	entries := m.refs()
	if !m.session.Expanded.IsExpanded(entries[m.selected].ref) {
		t.Fatal("newest dataset should auto-expand")
	}

	_, _ = m.Update(keyMsg("tab")) // focus datasets
	if m.focus != focusData {
		t.Fatal("tab should switch focus to the dataset pane")
	}

	// paging the selected dataset must not touch the other one
	selected := entries[m.selected].ref
	other := entries[(m.selected+1)%len(entries)].ref
	_, _ = m.Update(keyMsg("]"))
	if got := m.session.Pages.Page(other, 13); got != 1 {
		t.Errorf("other dataset page = %d, want untouched 1", got)
	}
	_ = selected

	// v cycles the session-scoped view type
	if m.viewType != internal.ViewCards {
		t.Fatalf("initial view = %s", m.viewType)
	}
	_, _ = m.Update(keyMsg("v"))
	if m.viewType != internal.ViewTable {
		t.Errorf("view after v = %s, want table", m.viewType)
	}
	_, _ = m.Update(keyMsg("v"))
	if m.viewType != internal.ViewCharts {
		t.Errorf("view after vv = %s, want charts", m.viewType)
	}
	_, _ = m.Update(keyMsg("v"))
	if m.viewType != internal.ViewCards {
		t.Errorf("view after vvv = %s, want cards", m.viewType)
	}
}

func TestChatModel_FailedQueryRendering(t *testing.T) {
	client := testutil.FailingClient("backend down")
	m := newTestChat(t, client)

	m.input.SetValue("show revenue")
	_, _ = m.Update(keyMsg("enter"))
	before := m.session.Len()
	m.Update(queryResolvedMsg{result: internal.FailedResult(clientErr(client))})

	if got := m.session.Len() - before; got != 1 {
		t.Fatalf("resolve appended %d messages, want 1", got)
	}

	out := m.renderLog()
	if !strings.Contains(out, "failed") {
		t.Errorf("failed message should have a distinct treatment, got:\n%s", out)
	}
	if !strings.Contains(out, "backend down") {
		t.Error("the literal error text should render")
	}
	if !strings.Contains(out, "show revenue") {
		t.Error("the user's message must stay in the log on failure")
	}
}

// clientErr extracts the scripted error from a failing stub.
func clientErr(c *testutil.StubQueryClient) error {
	return c.Err
}

func TestChatModel_NewChatClearsEverything(t *testing.T) {
	client := testutil.SuccessClient()
	m := newTestChat(t, client)

	m.input.SetValue("query")
	_, _ = m.Update(keyMsg("enter"))
	m.Update(queryResolvedMsg{result: client.Result})

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	if m.session.Len() != 0 {
		t.Errorf("log length after ctrl+n = %d, want 0", m.session.Len())
	}
	if m.selected != 0 {
		t.Errorf("selection after ctrl+n = %d, want 0", m.selected)
	}
}

func TestChatModel_ExamplesPopulateInput(t *testing.T) {
	client := testutil.SuccessClient()
	client.Caps = internal.Capabilities{
		Intro:    "Hello.",
		Examples: []string{"show low stock", "list overdue work orders"},
	}
	m := newTestChat(t, client)
	m.Update(capsLoadedMsg{caps: client.Caps})

	_, _ = m.Update(keyMsg("2"))
	if got := m.input.Value(); got != "list overdue work orders" {
		t.Errorf("input = %q, want the second example", got)
	}
}
