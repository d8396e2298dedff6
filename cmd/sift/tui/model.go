/*
Package tui implements the interactive inventory browser. It is a thin
terminal front end over the browse engine: every data decision - merging,
filtering, overlays - is made by the engine, the model here only tracks the
cursor, the viewport and the search input.
*/
package tui

import (
	"context"

	"github.com/siftinv/sift/browse"
	"github.com/siftinv/sift/types"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Steps of the minimal duplicate size filter
var sizeSteps = []int64{0, 1 << 20, 10 << 20, 100 << 20, 1 << 30}

//
// Messages
//

// Engine finished a debounced search and updated its overlays
type engineEventMsg struct{}

// Engine startup finished
type readyMsg struct {
	err error
}

// An engine call finished, the row set may have changed
type refreshMsg struct {
	err error
}

type model struct {
	eng		*browse.Engine
	root	string
	host	string	// configured host to narrow to on startup, empty - all
	events	chan struct{}

	rows	[]types.Row
	cursor	int
	offset	int
	width	int
	height	int

	ready	bool
	loading	bool
	status	string

	sortCol		int
	sortDesc	bool
	catIdx		int	// index into types.Categories(), -1 - no category filter
	sizeIdx		int	// index into sizeSteps

	searching	bool
	hashSearch	bool
	input		textinput.Model

	spin	spinner.Model
	keys	keyMap
	help	help.Model
	st		styles
}

func newModel(eng *browse.Engine, root, host string) model {
	input := textinput.New()
	input.Prompt = "/"
	input.CharLimit = 128

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	m := model{
		eng:	eng,
		root:	root,
		host:	host,
		events:	make(chan struct{}, 1),
		catIdx:	-1,
		input:	input,
		spin:	spin,
		keys:	newKeyMap(),
		help:	help.New(),
		st:		newStyles(),
	}

	// Start the size-floor stepping from the configured threshold
	for i, step := range sizeSteps {
		if step == eng.MinDupSize() {
			m.sizeIdx = i
			break
		}
	}

	return m
}

// Run starts the interactive browser, rooted at root. host, when not empty,
// narrows the startup selection to that host if the server knows it.
func Run(eng *browse.Engine, root, host string) error {
	_, err := tea.NewProgram(newModel(eng, root, host), tea.WithAltScreen()).Run()
	return err
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.startEngine(), m.listen())
}

//
// Commands
//

func (m model) startEngine() tea.Cmd {
	eng, root, host := m.eng, m.root, m.host
	return func() tea.Msg {
		if err := eng.Init(context.Background()); err != nil {
			return readyMsg{err: err}
		}

		// A configured host narrows the view from the start, but only when
		// the server actually knows it
		if host != "" {
			for _, h := range eng.Hosts() {
				if h.Host == host {
					eng.SelectHosts(host)
					break
				}
			}
		}

		if root != "" && root != "/" {
			return readyMsg{err: eng.SetRoot(context.Background(), root, "")}
		}

		return readyMsg{}
	}
}

// listen waits for the next engine notification. Re-armed from Update after
// every received event.
func (m model) listen() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		<-events
		return engineEventMsg{}
	}
}

// notify wakes the model up from an engine debounce callback without
// blocking the engine
func (m model) notify() {
	select {
		case m.events <- struct{}{}:
		default:
	}
}

func (m model) toggleDir(path string) tea.Cmd {
	eng := m.eng
	return func() tea.Msg {
		_, err := eng.ToggleDir(context.Background(), path)
		return refreshMsg{err: err}
	}
}

func (m model) setDupesOnly(on bool) tea.Cmd {
	eng := m.eng
	return func() tea.Msg {
		return refreshMsg{err: eng.SetDupesOnly(context.Background(), on)}
	}
}

func (m model) setMinDupSize(size int64) tea.Cmd {
	eng := m.eng
	return func() tea.Msg {
		return refreshMsg{err: eng.SetMinDupSize(context.Background(), size)}
	}
}

func (m model) pinRow(row *types.Row) tea.Cmd {
	eng := m.eng
	path, hash, isDir := row.Path, row.Entry.Hash, row.IsDir()
	return func() tea.Msg {
		if isDir {
			return refreshMsg{err: eng.PinDirDuplicate(context.Background(), path)}
		}
		eng.PinCopies(context.Background(), hash, path)
		return refreshMsg{}
	}
}

func (m model) selectHosts(hosts []string) tea.Cmd {
	eng := m.eng
	return func() tea.Msg {
		eng.SelectHosts(hosts...)
		// A newly selected host may have no cached listings for the open tree
		return refreshMsg{err: eng.EnsureExpanded(context.Background())}
	}
}

func (m model) showSubtree(path string) tea.Cmd {
	eng := m.eng
	return func() tea.Msg {
		return refreshMsg{err: eng.ShowSubtreeDupes(context.Background(), path)}
	}
}

//
// Shared state helpers
//

// refresh pulls the current row set from the engine and keeps the cursor
// on a valid row
func (m *model) refresh() {
	m.rows = m.eng.Rows()

	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	m.clampOffset()
}

func (m *model) clampOffset() {
	visible := m.viewRows()
	if visible < 1 {
		visible = 1
	}

	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// viewRows returns the number of listing rows that fit between the header
// and the footer
func (m *model) viewRows() int {
	return m.height - 3
}

func (m *model) hostNames() []string {
	entries := m.eng.Hosts()
	names := make([]string, 0, len(entries))
	for _, h := range entries {
		names = append(names, h.Host)
	}

	return names
}

func (m *model) current() *types.Row {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return &m.rows[m.cursor]
}
