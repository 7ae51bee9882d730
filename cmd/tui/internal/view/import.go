package view

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/revdash/internal/dashboard"
	"github.com/MrJamesThe3rd/revdash/internal/report"
)

const keyUseSample = "use_sample"

type importState int

const (
	importStateSource importState = iota
	importStateFilePick
	importStateImporting
	importStateResult
)

type ImportModel struct {
	CommonModel
	reportService *report.Service

	state      importState
	form       *huh.Form
	filePicker filepicker.Model

	status string
	err    error
}

func NewImportModel(reportSvc *report.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".xlsx"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.Height = 15

	return ImportModel{
		reportService: reportSvc,
		form:          buildSourceForm(),
		filePicker:    fp,
	}
}

func (m ImportModel) Title() string { return "Load Data" }

func (m ImportModel) ShortHelp() string {
	if m.state == importStateFilePick {
		return "Esc: back | Enter: open"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

	case importResultMsg:
		if msg.err != nil {
			m.state = importStateResult
			m.err = msg.err
			m.status = "데이터 해석 오류: " + dashboard.ErrorMessage(msg.err)

			return m, nil
		}

		rep := msg.report

		return m, func() tea.Msg { return ReportLoadedMsg{Report: rep} }
	}

	switch m.state {
	case importStateSource:
		return m.updateSource(msg)
	case importStateFilePick:
		return m.updateFilePick(msg)
	}

	return m, nil
}

func (m ImportModel) updateSource(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.form.GetBool(keyUseSample) {
		m.state = importStateImporting
		m.status = "Loading sample data..."

		return m, m.sampleCmd()
	}

	m.state = importStateFilePick

	return m, m.filePicker.Init()
}

func (m ImportModel) updateFilePick(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateImporting
		m.status = fmt.Sprintf("Importing from %s...", path)

		return m, m.importCmd(path)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateFilePick, importStateResult:
		m.state = importStateSource
		m.form = buildSourceForm()
		m.err = nil
		m.status = ""

		return m, m.form.Init()
	}

	return m, Back
}

func buildSourceForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key(keyUseSample).
				Title("샘플 데이터 사용").
				Description("No: pick a CSV or XLSX file (월, 매출액, 전년동월, 증감률)").
				Affirmative("Yes").
				Negative("No"),
		),
	).WithWidth(60).WithShowHelp(false)
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateSource:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Select file to load:\n\n%s", m.filePicker.View()),
		)
	case importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStateResult:
		return lipgloss.NewStyle().Padding(2).Render(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(m.status) +
				"\n\n(Esc to go back)",
		)
	}

	return ""
}

// Messages

type importResultMsg struct {
	report *report.Report
	err    error
}

func (m ImportModel) sampleCmd() tea.Cmd {
	return func() tea.Msg {
		rep, err := m.reportService.Build(report.Source{UseSample: true})
		return importResultMsg{report: rep, err: err}
	}
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		rep, err := m.reportService.Build(report.Source{
			Filename: filepath.Base(path),
			Body:     f,
		})

		return importResultMsg{report: rep, err: err}
	}
}
