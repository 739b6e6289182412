package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/nconklindev/peaksheet/internal/batch"
	"github.com/nconklindev/peaksheet/internal/config"
	"github.com/nconklindev/peaksheet/internal/types"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// maxListedFailures caps the failure list on the result screens.
const maxListedFailures = 8

type state int

const (
	stateFilePicker state = iota
	stateProcessing
	stateComplete
	stateError
)

type Model struct {
	state        state
	cfg          *config.Config
	log          *slog.Logger
	filepicker   filepicker.Model
	selectedPath string
	report       *batch.Report
	err          error
	width        int
	height       int
	progress     progress.Model
	progressChan chan float64
	resultChan   chan processResultMsg
}

type processResultMsg struct {
	report *batch.Report
	err    error
}

type processCompleteMsg struct {
	report *batch.Report
	err    error
}

type progressMsg float64

type waitForProgressMsg struct{}

func InitialModel(cfg *config.Config, log *slog.Logger) Model {
	fp := filepicker.New()
	fp.DirAllowed = true
	fp.FileAllowed = true
	fp.CurrentDirectory, _ = os.Getwd()

	fp.Styles.Cursor = lipgloss.NewStyle().Foreground(accent)
	fp.Styles.Symlink = lipgloss.NewStyle().Foreground(soft)
	fp.Styles.Directory = lipgloss.NewStyle().Foreground(soft)
	fp.Styles.File = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))
	fp.Styles.Permission = lipgloss.NewStyle().Foreground(muted)
	fp.Styles.Selected = lipgloss.NewStyle().Foreground(accent).Bold(true)
	fp.Styles.FileSize = lipgloss.NewStyle().Foreground(muted)

	return Model{
		state:      stateFilePicker,
		cfg:        cfg,
		log:        log,
		filepicker: fp,
		progress:   progress.New(progress.WithGradient("#2EC4B6", "#9BE3DA")),
	}
}

func (m Model) Init() tea.Cmd {
	return m.filepicker.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		height := msg.Height - 14
		if height < 5 {
			height = 5
		}
		m.filepicker.SetHeight(height)
		m.progress.Width = max(20, min(msg.Width-12, 80))

		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case stateFilePicker:
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			}

		case stateProcessing:
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil

		case stateComplete, stateError:
			switch msg.String() {
			case "ctrl+c", "q", "enter", "esc":
				return m, tea.Quit
			}
		}

	case processCompleteMsg:
		m.report = msg.report
		if msg.err != nil {
			m.err = msg.err
			m.state = stateError
			return m, nil
		}
		m.state = stateComplete
		return m, nil

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd

	case progressMsg:
		if m.state == stateProcessing {
			cmd := m.progress.SetPercent(float64(msg))
			return m, tea.Batch(cmd, waitForProgress(m.progressChan, m.resultChan))
		}
		return m, nil

	case waitForProgressMsg:
		return m, waitForProgress(m.progressChan, m.resultChan)
	}

	if m.state == stateFilePicker {
		var cmd tea.Cmd
		m.filepicker, cmd = m.filepicker.Update(msg)

		if didSelect, path := m.filepicker.DidSelectFile(msg); didSelect {
			return m.process(path)
		}

		return m, cmd
	}

	return m, nil
}

// process runs the batch for path in the background and streams progress
// back through progressChan until the result arrives on resultChan.
func (m Model) process(path string) (Model, tea.Cmd) {
	m.state = stateProcessing
	m.selectedPath = path
	m.progressChan = make(chan float64, 100)
	m.resultChan = make(chan processResultMsg, 1)

	progressChan := m.progressChan
	resultChan := m.resultChan
	cfg := m.cfg
	log := m.log

	start := func() tea.Msg {
		go func() {
			report, err := batch.Process(context.Background(), path, cfg, log, func(done, total int) {
				select {
				case progressChan <- float64(done) / float64(total):
				default:
				}
			})

			resultChan <- processResultMsg{report: report, err: err}
			close(progressChan)
			close(resultChan)
		}()
		return waitForProgressMsg{}
	}

	return m, tea.Batch(start, m.progress.Init())
}

func waitForProgress(progressChan chan float64, resultChan chan processResultMsg) tea.Cmd {
	return func() tea.Msg {
		if progressChan == nil {
			return nil
		}

		p, ok := <-progressChan
		if !ok {
			res, ok := <-resultChan
			if ok {
				return processCompleteMsg(res)
			}
			return nil
		}

		return progressMsg(p)
	}
}

func (m Model) View() string {
	switch m.state {
	case stateFilePicker:
		return m.viewFilePicker()
	case stateProcessing:
		return m.viewProcessing()
	case stateComplete:
		return m.viewComplete()
	case stateError:
		return m.viewError()
	}
	return ""
}

func (m Model) viewFilePicker() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("⚗ peaksheet - LC-MS export extractor"))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render(fmt.Sprintf("Select a %s export or a folder of exports", m.cfg.Batch.Extension)))
	s.WriteString("\n\n")
	s.WriteString(m.filepicker.View())
	s.WriteString("\n\n")
	s.WriteString(HelpStyle.Render("enter: process file or folder • →/l: open folder • ←/h: back • q: quit"))

	return s.String()
}

func (m Model) viewProcessing() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("⚗ Processing..."))
	s.WriteString("\n\n")
	s.WriteString(fmt.Sprintf("Extracting analyte tables from %s", filepath.Base(m.selectedPath)))
	s.WriteString("\n\n")
	s.WriteString(m.progress.View())

	return BoxStyle.Render(s.String())
}

func (m Model) viewComplete() string {
	var s strings.Builder
	sum := m.report.Summary
	maxPathLen := max(m.width-20, 30)

	s.WriteString(TitleStyle.Render("✓ Extraction Complete!"))
	s.WriteString("\n\n")
	s.WriteString(field("Input", truncatePath(m.report.Input, maxPathLen)))
	s.WriteString(SuccessStyle.Render(field("Output", truncatePath(m.report.Output, maxPathLen))))
	s.WriteString("\n")
	s.WriteString(field("Files parsed", fmt.Sprintf("%d of %d (%s read)", sum.Parsed, sum.Files, humanize.Bytes(uint64(sum.Bytes)))))
	s.WriteString(field("Rows", humanize.Comma(int64(sum.Rows))))
	s.WriteString(field("Analytes", fmt.Sprintf("%d in %d sections", sum.Analytes, sum.Blocks)))

	if len(m.report.Result.Failures) > 0 {
		s.WriteString("\n")
		s.WriteString(WarnStyle.Render(fmt.Sprintf("⚠ %d file(s) skipped", len(m.report.Result.Failures))))
		s.WriteString("\n")
		s.WriteString(failureList(m.report.Result.Failures, maxPathLen))
	}

	s.WriteString("\n")
	s.WriteString(HelpStyle.Render("Press any key to exit"))

	return BoxStyle.Render(s.String())
}

func (m Model) viewError() string {
	var s strings.Builder

	s.WriteString(ErrorStyle.Render("✗ Error"))
	s.WriteString("\n\n")
	s.WriteString(m.err.Error())
	s.WriteString("\n")

	if errors.Is(m.err, types.ErrNothingParsed) && m.report != nil && m.report.Result != nil {
		s.WriteString("\n")
		s.WriteString(failureList(m.report.Result.Failures, max(m.width-20, 30)))
	}

	s.WriteString("\n")
	s.WriteString(HelpStyle.Render("Press any key to exit"))

	return BoxStyle.Render(s.String())
}

func field(label, value string) string {
	return LabelStyle.Render(label+":") + " " + value + "\n"
}

func failureList(failures []types.FileFailure, maxPathLen int) string {
	var s strings.Builder
	for i, f := range failures {
		if i == maxListedFailures {
			s.WriteString(fmt.Sprintf("  … and %d more\n", len(failures)-i))
			break
		}
		reason := f.Err
		var fe *types.FileError
		if errors.As(reason, &fe) {
			reason = fe.Err
		}
		s.WriteString(fmt.Sprintf("  %s: %v\n", truncatePath(filepath.Base(f.Path), maxPathLen), reason))
	}
	return s.String()
}

// truncatePath shortens p from the left so it fits in n characters.
func truncatePath(p string, n int) string {
	if n < 4 || len(p) <= n {
		return p
	}
	return "..." + p[len(p)-n+3:]
}
