package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/siftinv/sift/browse"
	"github.com/siftinv/sift/types"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
		case tea.WindowSizeMsg:
			m.width, m.height = msg.Width, msg.Height
			m.help.Width = msg.Width
			m.clampOffset()
			return m, nil

		case readyMsg:
			m.ready = true
			m.loading = false
			if msg.err != nil {
				m.status = fmt.Sprintf("startup failed: %v", msg.err)
			}
			m.refresh()
			return m, nil

		case refreshMsg:
			m.loading = false
			if msg.err != nil {
				m.status = fmt.Sprintf("request failed: %v", msg.err)
			}
			m.refresh()
			return m, nil

		case engineEventMsg:
			// A debounced search settled, pull the overlay rows and keep listening
			m.refresh()
			return m, m.listen()

		case spinner.TickMsg:
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd

		case tea.KeyMsg:
			if m.searching {
				return m.updateSearch(msg)
			}
			return m.updateKeys(msg)
	}

	return m, nil
}

// updateSearch routes keystrokes to the search input and re-queues the
// debounced query on every change
func (m model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
		case "esc":
			// Drop the query together with its overlay
			m.searching = false
			m.input.Blur()
			m.queueSearch("")
			m.refresh()
			return m, nil

		case "enter":
			// Keep the overlay, release the input
			m.searching = false
			m.input.Blur()
			return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.queueSearch(m.input.Value())

	return m, cmd
}

func (m *model) queueSearch(query string) {
	if m.hashSearch {
		m.eng.QueueHashSearch(context.Background(), query, m.notify)
	} else {
		m.eng.QueueNameSearch(context.Background(), query, m.notify)
	}
}

func (m model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil

		// Navigation
		case key.Matches(msg, m.keys.Up):
			m.move(-1)
		case key.Matches(msg, m.keys.Down):
			m.move(1)
		case key.Matches(msg, m.keys.PageUp):
			m.move(-m.viewRows())
		case key.Matches(msg, m.keys.PageDown):
			m.move(m.viewRows())
		case key.Matches(msg, m.keys.Home):
			m.cursor = 0
			m.clampOffset()
		case key.Matches(msg, m.keys.End):
			m.cursor = len(m.rows) - 1
			m.clampOffset()

		// Tree manipulation
		case key.Matches(msg, m.keys.Toggle):
			if row := m.current(); row != nil && row.IsDir() {
				m.loading = true
				return m, m.toggleDir(row.Path)
			}
		case key.Matches(msg, m.keys.Collapse):
			m.collapseCurrent()

		// Sorting and filtering
		case key.Matches(msg, m.keys.Sort):
			m.sortCol = (m.sortCol + 1) % len(browse.SortColumns())
			m.eng.SetSort(m.sortCol, m.sortDesc)
			m.refresh()
		case key.Matches(msg, m.keys.Order):
			m.sortDesc = !m.sortDesc
			m.eng.SetSort(m.sortCol, m.sortDesc)
			m.refresh()
		case key.Matches(msg, m.keys.Hosts):
			return m.cycleHosts()
		case key.Matches(msg, m.keys.DupesOnly):
			m.loading = true
			return m, m.setDupesOnly(!m.eng.DupesOnly())
		case key.Matches(msg, m.keys.Category):
			m.cycleCategory()
		case key.Matches(msg, m.keys.SizeUp):
			return m.stepSize(1)
		case key.Matches(msg, m.keys.SizeDown):
			return m.stepSize(-1)

		// Search and overlays
		case key.Matches(msg, m.keys.SearchName):
			return m.startSearch(false)
		case key.Matches(msg, m.keys.SearchHash):
			return m.startSearch(true)
		case key.Matches(msg, m.keys.Pin):
			if row := m.current(); row != nil && !row.GroupHeader {
				m.loading = true
				return m, m.pinRow(row)
			}
		case key.Matches(msg, m.keys.Subtree):
			if row := m.current(); row != nil && row.IsDir() {
				m.loading = true
				return m, m.showSubtree(row.Path)
			}
		case key.Matches(msg, m.keys.Back):
			m.eng.ClearOverlays()
			m.refresh()
	}

	return m, nil
}

func (m *model) move(delta int) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	m.clampOffset()
}

// collapseCurrent folds the current directory, or jumps to and folds the
// parent when the cursor is on a file
func (m *model) collapseCurrent() {
	row := m.current()
	if row == nil {
		return
	}

	path := row.Path
	if !row.IsDir() {
		path = row.Parent
	}

	m.eng.CollapseDir(path)
	m.refresh()

	// Land on the folded directory
	for i := range m.rows {
		if m.rows[i].Path == path {
			m.cursor = i
			break
		}
	}
	m.clampOffset()
}

func (m *model) cycleCategory() {
	cats := types.Categories()

	m.catIdx++
	if m.catIdx >= len(cats) {
		m.catIdx = -1
	}

	if m.catIdx < 0 {
		m.eng.SetCategories()
	} else {
		m.eng.SetCategories(cats[m.catIdx])
	}

	m.refresh()
}

// cycleHosts steps the selection: all hosts, then each host alone in server
// order, then all hosts again
func (m model) cycleHosts() (tea.Model, tea.Cmd) {
	all := m.hostNames()
	if len(all) < 2 {
		return m, nil
	}

	next := hostCycle(all, m.eng.SelectedHosts())
	m.loading = true
	m.status = "hosts: " + strings.Join(next, ", ")

	return m, m.selectHosts(next)
}

// hostCycle returns the selection following selected in the cycle
// all -> all[0] -> all[1] -> ... -> all
func hostCycle(all, selected []string) []string {
	if len(selected) != 1 {
		return all[:1]
	}

	for i, h := range all {
		if h == selected[0] {
			if i+1 < len(all) {
				return all[i+1 : i+2]
			}
			return all
		}
	}

	// The selected host is gone from the server's list, restart the cycle
	return all[:1]
}

func (m model) stepSize(dir int) (tea.Model, tea.Cmd) {
	next := m.sizeIdx + dir
	if next < 0 || next >= len(sizeSteps) {
		return m, nil
	}

	m.sizeIdx = next
	m.loading = true
	m.status = "duplicate size floor: " + sizeLabel(sizeSteps[next])

	return m, m.setMinDupSize(sizeSteps[next])
}

func (m model) startSearch(hash bool) (tea.Model, tea.Cmd) {
	m.searching = true
	m.hashSearch = hash
	m.input.Prompt = "/"
	if hash {
		m.input.Prompt = "#"
	}
	m.input.SetValue("")

	return m, m.input.Focus()
}

func sizeLabel(n int64) string {
	if n == 0 {
		return "off"
	}
	return humanize.IBytes(uint64(n))
}
