package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/paysponge/spongewallet-go/models"
)

type LoginStage string

const (
	StageRequesting LoginStage = "requesting"
	StageAwaiting   LoginStage = "awaiting"
	StageApproved   LoginStage = "approved"
	StageFailed     LoginStage = "failed"
	StageCancelled  LoginStage = "cancelled"
)

const maxNotices = 5

type Model struct {
	stage    LoginStage
	code     *models.DeviceCodeResponse
	issuedAt time.Time
	notices  []string
	attempts int
	banner   string
	err      error
	spinner  spinner.Model
	progress progress.Model
	width    int
}

type CodeIssued struct {
	Code *models.DeviceCodeResponse
}

type Notice struct {
	Message string
}

type PollAttempt struct {
	Attempt int
}

type LoginSucceeded struct {
	Banner string
}

type LoginFailed struct {
	Err error
}

func NewModel() Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	pr := progress.New(progress.WithDefaultGradient())
	pr.Width = 40

	return Model{
		stage:    StageRequesting,
		notices:  []string{},
		spinner:  sp,
		progress: pr,
		width:    80,
	}
}

// Stage returns where the login currently is.
func (m Model) Stage() LoginStage {
	return m.stage
}

// Cancelled reports whether the user quit before the login finished.
func (m Model) Cancelled() bool {
	return m.stage == StageCancelled
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.handleKeyMsg(msg) {
			m.stage = StageCancelled
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Width > 20 {
			m.progress.Width = msg.Width - 20
		}

	case CodeIssued:
		m.code = msg.Code
		m.issuedAt = time.Now()
		m.stage = StageAwaiting

	case Notice:
		m.notices = append(m.notices, msg.Message)
		if len(m.notices) > maxNotices {
			m.notices = m.notices[len(m.notices)-maxNotices:]
		}

	case PollAttempt:
		m.attempts = msg.Attempt

	case LoginSucceeded:
		m.stage = StageApproved
		m.banner = msg.Banner
		return m, tea.Quit

	case LoginFailed:
		m.stage = StageFailed
		m.err = msg.Err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m.stage == StageRequesting || m.stage == StageAwaiting
	}
	return false
}

// expiryFraction is the share of the device code lifetime already used.
func (m Model) expiryFraction() float64 {
	if m.code == nil || m.code.ExpiresIn <= 0 {
		return 0
	}
	used := time.Since(m.issuedAt).Seconds() / float64(m.code.ExpiresIn)
	if used > 1 {
		return 1
	}
	return used
}

func (m Model) View() string {
	switch m.stage {
	case StageApproved:
		return m.banner + "\n"
	case StageFailed:
		return errorStyle.Render(fmt.Sprintf("Login failed: %v", m.err)) + "\n"
	case StageCancelled:
		return mutedStyle.Render("Login cancelled.") + "\n"
	}

	var s strings.Builder

	s.WriteString(headerStyle.Render("SpongeWallet Login"))
	s.WriteString("\n\n")

	if m.code == nil {
		s.WriteString(m.spinner.View() + " Requesting a device code...\n")
		return s.String()
	}

	s.WriteString("Visit: " + m.code.VerificationURI + "\n")
	s.WriteString("Enter code:\n")
	s.WriteString(codeStyle.Render(m.code.UserCode))
	s.WriteString("\n\n")

	for _, notice := range m.notices {
		s.WriteString(mutedStyle.Render(notice) + "\n")
	}

	status := fmt.Sprintf("%s Waiting for approval", m.spinner.View())
	if m.attempts > 0 {
		status += fmt.Sprintf(" (checked %d times)", m.attempts)
	}
	s.WriteString("\n" + status + "\n")
	s.WriteString(m.progress.ViewAs(m.expiryFraction()) + " code expiry\n\n")

	s.WriteString(mutedStyle.Render("Press 'q' to cancel"))
	return s.String()
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

var codeStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("205")).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("62")).
	Padding(0, 2)
