package ui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nwalker/sheetview/internal/export"
	"github.com/nwalker/sheetview/internal/types"
	"github.com/nwalker/sheetview/internal/workbook"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

type state int

const (
	statePicker state = iota
	stateLoading
	stateBrowse
	stateError
)

const flashDuration = 3 * time.Second

type Model struct {
	state state

	filepicker filepicker.Model
	spinner    spinner.Model
	table      table.Model
	search     textinput.Model
	help       help.Model
	keys       keyMap

	initialFile string
	loadingFile string
	// loadSeq tags each load command; results carrying a stale sequence
	// are dropped so a slow parse cannot overwrite a newer one.
	loadSeq int

	workbook *types.Workbook
	active   int
	// truncated records whether the preview filter actually cut rows off,
	// as opposed to matching exactly MaxPreviewRows.
	truncated bool

	errTitle   string
	errDetail  string
	pickerNote string

	flash    string
	flashErr bool
	flashSeq int

	width  int
	height int
}

type workbookLoadedMsg struct {
	seq      int
	workbook *types.Workbook
	err      error
}

type exportDoneMsg struct {
	path string
	err  error
}

type clearFlashMsg struct {
	seq int
}

func InitialModel(initialFile string) Model {
	fp := filepicker.New()
	fp.AllowedTypes = workbook.AllowedExtensions
	fp.CurrentDirectory, _ = os.Getwd()

	fp.Styles.Cursor = lipgloss.NewStyle().Foreground(lipgloss.Color("#38BDF8"))
	fp.Styles.Directory = lipgloss.NewStyle().Foreground(lipgloss.Color("#5EEAD4"))
	fp.Styles.Symlink = lipgloss.NewStyle().Foreground(lipgloss.Color("#5EEAD4"))
	fp.Styles.File = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))
	fp.Styles.Permission = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	fp.Styles.Selected = lipgloss.NewStyle().Foreground(lipgloss.Color("#38BDF8")).Bold(true)
	fp.Styles.FileSize = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#38BDF8"))),
	)

	search := textinput.New()
	search.Prompt = "/ "
	search.PromptStyle = SearchPromptStyle
	search.Placeholder = "type to filter rows"

	m := Model{
		state:       statePicker,
		filepicker:  fp,
		spinner:     sp,
		search:      search,
		help:        help.New(),
		keys:        defaultKeyMap(),
		initialFile: initialFile,
	}
	if initialFile != "" {
		m.state = stateLoading
		m.loadingFile = initialFile
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.initialFile != "" {
		return tea.Batch(m.spinner.Tick, loadWorkbook(m.initialFile, m.loadSeq))
	}
	return m.filepicker.Init()
}

func loadWorkbook(path string, seq int) tea.Cmd {
	return func() tea.Msg {
		wb, err := workbook.Load(path)
		return workbookLoadedMsg{seq: seq, workbook: wb, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		height := msg.Height - 14
		if height < 5 {
			height = 5
		}
		m.filepicker.SetHeight(height)

		if m.state == stateBrowse {
			m = m.rebuildTable()
		}
		return m, nil

	case spinner.TickMsg:
		if m.state != stateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case workbookLoadedMsg:
		if msg.seq != m.loadSeq {
			// A newer upload owns the UI; discard this result.
			return m, nil
		}
		if msg.err != nil {
			m.workbook = nil
			m.active = 0
			m.search.SetValue("")
			m.search.Blur()
			m.errTitle, m.errDetail = presentError(msg.err)
			m.state = stateError
			return m, nil
		}
		m.workbook = msg.workbook
		m.active = 0
		m.search.SetValue("")
		m.search.Blur()
		m.errTitle, m.errDetail = "", ""
		m.flash = ""
		m.state = stateBrowse
		m = m.rebuildTable()
		return m, nil

	case exportDoneMsg:
		m.flashSeq++
		if msg.err != nil {
			m.flash = fmt.Sprintf("Export failed: %v", msg.err)
			m.flashErr = true
		} else {
			m.flash = fmt.Sprintf("Exported %s", msg.path)
			m.flashErr = false
		}
		seq := m.flashSeq
		return m, tea.Tick(flashDuration, func(time.Time) tea.Msg {
			return clearFlashMsg{seq: seq}
		})

	case clearFlashMsg:
		if msg.seq == m.flashSeq {
			m.flash = ""
		}
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case statePicker, stateLoading:
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			}

		case stateBrowse:
			return m.updateBrowse(msg)

		case stateError:
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "enter", "o", "esc":
				m.state = statePicker
				return m, m.filepicker.Init()
			}
		}
	}

	// Handle filepicker updates
	if m.state == statePicker {
		var cmd tea.Cmd
		m.filepicker, cmd = m.filepicker.Update(msg)

		if didSelect, path := m.filepicker.DidSelectFile(msg); didSelect {
			m.pickerNote = ""
			return m.startLoad(path)
		}
		if didSelect, path := m.filepicker.DidSelectDisabledFile(msg); didSelect {
			m.pickerNote = fmt.Sprintf("%s is not a supported file type", filepath.Base(path))
		}

		return m, cmd
	}

	return m, nil
}

func (m Model) startLoad(path string) (Model, tea.Cmd) {
	m.loadSeq++
	m.loadingFile = path
	m.state = stateLoading
	return m, tea.Batch(m.spinner.Tick, loadWorkbook(path, m.loadSeq))
}

func (m Model) updateBrowse(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.search.Focused() {
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc", "enter":
			m.search.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			m = m.refreshRows()
			return m, cmd
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Search):
		m.search.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.NextSheet):
		m = m.switchSheet(m.active + 1)
		return m, nil

	case key.Matches(msg, m.keys.PrevSheet):
		m = m.switchSheet(m.active - 1)
		return m, nil

	case key.Matches(msg, m.keys.ExportJSON):
		return m, m.exportActive(export.FormatJSON)

	case key.Matches(msg, m.keys.ExportCSV):
		return m, m.exportActive(export.FormatCSV)

	case key.Matches(msg, m.keys.Open):
		m.state = statePicker
		m.pickerNote = ""
		return m, m.filepicker.Init()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) switchSheet(index int) Model {
	if m.workbook == nil || len(m.workbook.Sheets) == 0 {
		return m
	}
	n := len(m.workbook.Sheets)
	m.active = ((index % n) + n) % n
	return m.rebuildTable()
}

func (m Model) activeSheet() *types.Sheet {
	if m.workbook == nil || m.active >= len(m.workbook.Sheets) {
		return nil
	}
	return &m.workbook.Sheets[m.active]
}

// exportActive serializes the active sheet's full record set next to the
// source file. The preview filter never affects the export.
func (m Model) exportActive(format export.Format) tea.Cmd {
	sheet := m.activeSheet()
	if sheet == nil {
		return nil
	}
	dir := filepath.Dir(m.workbook.SourceFile)
	s := *sheet
	return func() tea.Msg {
		path, err := export.WriteSheet(s, dir, format)
		return exportDoneMsg{path: path, err: err}
	}
}

func (m Model) rebuildTable() Model {
	sheet := m.activeSheet()
	if sheet == nil || sheet.ColumnCount == 0 {
		return m
	}

	colWidth := columnWidth(m.width, sheet.ColumnCount)
	columns := make([]table.Column, sheet.ColumnCount)
	for i, header := range sheet.Headers {
		columns[i] = table.Column{Title: header, Width: colWidth}
	}

	rows, truncated := previewRows(sheet, m.search.Value())
	m.truncated = truncated

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(m.tableHeight()),
	)

	// Arrow-only line movement; j and c are taken by the export bindings.
	t.KeyMap.LineUp = key.NewBinding(key.WithKeys("up"))
	t.KeyMap.LineDown = key.NewBinding(key.WithKeys("down"))

	styles := table.DefaultStyles()
	styles.Header = TableHeaderStyle
	styles.Selected = TableSelectedStyle
	t.SetStyles(styles)

	m.table = t
	return m
}

func (m Model) refreshRows() Model {
	sheet := m.activeSheet()
	if sheet == nil || sheet.ColumnCount == 0 {
		return m
	}
	rows, truncated := previewRows(sheet, m.search.Value())
	m.truncated = truncated
	m.table.SetRows(rows)
	return m
}

// previewRows builds the visible table rows and reports whether the cap cut
// any matches off. Fetching one record past the cap distinguishes "exactly
// MaxPreviewRows matched" from "more were dropped".
func previewRows(sheet *types.Sheet, term string) ([]table.Row, bool) {
	records := workbook.FilterRecords(sheet.Records, sheet.Headers, term, workbook.MaxPreviewRows+1)
	truncated := len(records) > workbook.MaxPreviewRows
	if truncated {
		records = records[:workbook.MaxPreviewRows]
	}
	rows := make([]table.Row, len(records))
	for i, record := range records {
		row := make(table.Row, len(sheet.Headers))
		for j, header := range sheet.Headers {
			row[j] = record[header]
		}
		rows[i] = row
	}
	return rows, truncated
}

func (m Model) tableHeight() int {
	height := m.height - 12
	if height < 5 {
		height = 5
	}
	return height
}

func columnWidth(totalWidth, columns int) int {
	if totalWidth <= 0 {
		totalWidth = 80
	}
	width := (totalWidth-4)/columns - 2
	if width < 6 {
		width = 6
	}
	if width > 32 {
		width = 32
	}
	return width
}

// presentError splits a load failure into the title and detail shown on the
// error screen.
func presentError(err error) (string, string) {
	var loadErr *workbook.LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Title, loadErr.Detail
	}
	return "Error", err.Error()
}

func (m Model) View() string {
	switch m.state {
	case statePicker:
		return m.viewFilePicker()
	case stateLoading:
		return m.viewLoading()
	case stateBrowse:
		return m.viewBrowse()
	case stateError:
		return m.viewError()
	}
	return ""
}

func (m Model) viewFilePicker() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("▤ Sheetview"))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render("Select a spreadsheet to preview (" + strings.Join(workbook.AllowedExtensions, ", ") + ")"))
	s.WriteString("\n\n")
	s.WriteString(m.filepicker.View())
	s.WriteString("\n")
	if m.pickerNote != "" {
		s.WriteString(ErrorStyle.Render(m.pickerNote))
		s.WriteString("\n")
	}
	s.WriteString(HelpStyle.Render("Press q to quit"))

	return s.String()
}

func (m Model) viewLoading() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("▤ Loading"))
	s.WriteString("\n\n")
	s.WriteString(fmt.Sprintf("%s Reading %s...", m.spinner.View(), filepath.Base(m.loadingFile)))

	return BoxStyle.Render(s.String())
}

func (m Model) viewBrowse() string {
	sheet := m.activeSheet()
	if sheet == nil {
		return ""
	}

	var s strings.Builder

	name := filepath.Base(m.workbook.SourceFile)
	size := humanize.Bytes(uint64(m.workbook.SourceSize))
	s.WriteString(TitleStyle.Render("▤ " + name))
	s.WriteString(StatusStyle.Render("  " + size))
	s.WriteString("\n")
	s.WriteString(m.viewSheetTabs())
	s.WriteString("\n\n")
	s.WriteString(m.search.View())
	s.WriteString("\n\n")

	if sheet.ColumnCount == 0 {
		s.WriteString(SubtitleStyle.Render("(empty sheet)"))
		s.WriteString("\n")
	} else {
		s.WriteString(m.table.View())
		s.WriteString("\n")
		s.WriteString(StatusStyle.Render(m.statusLine(sheet)))
		s.WriteString("\n")
	}

	if m.flash != "" {
		style := SuccessStyle
		if m.flashErr {
			style = ErrorStyle
		}
		s.WriteString(style.Render(m.flash))
		s.WriteString("\n")
	}

	s.WriteString(HelpStyle.Render(m.help.View(m.keys)))

	return s.String()
}

func (m Model) viewSheetTabs() string {
	tabs := make([]string, len(m.workbook.Sheets))
	for i, sheet := range m.workbook.Sheets {
		label := sheet.Name
		if i == m.active {
			tabs[i] = ActiveTabStyle.Render("[" + label + "]")
		} else {
			tabs[i] = TabStyle.Render(" " + label + " ")
		}
	}
	return strings.Join(tabs, " ")
}

func (m Model) statusLine(sheet *types.Sheet) string {
	shown := len(m.table.Rows())
	status := fmt.Sprintf("%d of %d rows · %d columns", shown, sheet.RowCount, sheet.ColumnCount)
	if m.truncated {
		status += fmt.Sprintf(" · preview capped at %d, exports include every row", workbook.MaxPreviewRows)
	}
	return status
}

func (m Model) viewError() string {
	var s strings.Builder

	s.WriteString(ErrorStyle.Render("✗ " + m.errTitle))
	s.WriteString("\n\n")
	s.WriteString(m.errDetail)
	s.WriteString("\n\n")
	s.WriteString(HelpStyle.Render("enter: choose another file • q: quit"))

	return BoxStyle.Render(s.String())
}
