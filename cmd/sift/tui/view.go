package tui

import (
	"fmt"
	"strings"

	"github.com/siftinv/sift/browse"
	"github.com/siftinv/sift/common/tools"
	"github.com/siftinv/sift/types"

	"github.com/dustin/go-humanize"
)

func (m model) View() string {
	if !m.ready {
		return m.spin.View() + " connecting to the inventory server..."
	}

	var b strings.Builder

	b.WriteString(m.headerView())
	b.WriteByte('\n')

	selected := tools.NewSet(m.eng.SelectedHosts()...)

	visible := m.viewRows()
	for i := m.offset; i < len(m.rows) && i < m.offset+visible; i++ {
		b.WriteString(m.rowView(&m.rows[i], selected, i == m.cursor))
		b.WriteByte('\n')
	}

	// Keep the footer at the bottom of the screen
	for i := len(m.rows) - m.offset; i < visible; i++ {
		b.WriteByte('\n')
	}

	b.WriteString(m.footerView())

	return b.String()
}

func (m model) headerView() string {
	head := m.st.title.Render(" sift ") + " " + m.eng.Root()

	if label := m.modeLabel(); label != "" {
		head += "  " + m.st.badge.Render(label)
	}

	if sel := m.eng.SelectedHosts(); len(sel) < len(m.eng.Hosts()) {
		head += "  " + m.st.badge.Render("[host: "+strings.Join(sel, ",")+"]")
	}

	if m.eng.DupesOnly() {
		head += "  " + m.st.badge.Render("[dupes]")
	}
	if m.catIdx >= 0 {
		head += "  " + m.st.dim.Render("[cat: "+types.Categories()[m.catIdx]+"]")
	}
	if size := m.eng.MinDupSize(); size > 0 {
		head += "  " + m.st.dim.Render("[≥ "+humanize.IBytes(uint64(size))+"]")
	}

	head += "  " + m.st.dim.Render("sort: "+m.sortLabel())

	if m.loading {
		head += "  " + m.spin.View()
	}

	return head
}

func (m model) modeLabel() string {
	switch m.eng.Overlay().Mode() {
		case browse.ModeName:
			return "[name search]"
		case browse.ModeHash:
			return "[hash search]"
		case browse.ModePinned:
			return "[pinned copies]"
		case browse.ModeSubtree:
			return "[subtree duplicates: " + m.eng.Overlay().SubtreeRoot() + "]"
		default:
			return ""
	}
}

func (m model) sortLabel() string {
	label := browse.SortColumns()[m.sortCol]
	if m.sortDesc {
		return label + "↓"
	}
	return label + "↑"
}

func (m model) rowView(row *types.Row, selected tools.Set[string], cursor bool) string {
	var line string

	switch {
		case row.GroupHeader:
			line = m.st.groupHead.Render(fmt.Sprintf("═ %s  %s  %d copies",
				row.Entry.Filename, humanize.IBytes(uint64(row.Entry.SizeBytes)), row.GroupCount))

		case row.IsDir():
			line = m.dirView(row)

		default:
			line = m.fileView(row, selected)
	}

	if cursor {
		return m.st.cursor.Render("▶") + line
	}
	return " " + line
}

func (m model) dirView(row *types.Row) string {
	marker := "▸"
	if m.eng.IsExpanded(row.Path) {
		marker = "▾"
	}

	name := m.st.dir.Render(row.Entry.DisplaySegment() + "/")

	info := fmt.Sprintf("%s, %d files", humanize.IBytes(uint64(row.Entry.TotalBytes)), row.Entry.FileCount)
	if extra := browse.ExtraCopies(&row.Entry); extra > 0 {
		info += m.st.badge.Render(fmt.Sprintf(", +%d copies", extra))
	}

	return indent(row.Depth) + marker + " " + name + "  " + m.st.dim.Render(info) + m.hostsView(row)
}

func (m model) fileView(row *types.Row, selected tools.Set[string]) string {
	style := m.st.file
	badge := ""

	switch {
		case browse.IsHardLinked(&row.Entry):
			style = m.st.hardLink
			badge = m.st.hardLink.Render("  =")
		case browse.IsDuplicateFile(&row.Entry, selected):
			style = m.st.duplicate
			badge = m.st.badge.Render("  ⚠ dup")
	}

	name := style.Render(row.Entry.DisplaySegment())
	size := m.st.dim.Render(humanize.IBytes(uint64(row.Entry.SizeBytes)))

	return indent(row.Depth) + "  " + name + "  " + size + badge + m.hostsView(row)
}

// hostsView renders the contributing hosts when more than one host is in view
func (m model) hostsView(row *types.Row) string {
	if len(m.eng.SelectedHosts()) < 2 || len(row.Entry.Hosts) == 0 {
		return ""
	}
	return m.st.dim.Render("  [" + strings.Join(row.Entry.Hosts, ",") + "]")
}

func (m model) footerView() string {
	if m.searching {
		return m.input.View()
	}

	if m.status != "" {
		return m.st.status.Render(m.status)
	}

	return m.help.View(m.keys)
}

func indent(depth int) string {
	return strings.Repeat("  ", depth)
}
