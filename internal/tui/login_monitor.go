package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/paysponge/spongewallet-go/auth"
	"github.com/paysponge/spongewallet-go/internal/logger"
	"github.com/paysponge/spongewallet-go/models"
)

// LoginMonitor draws a device-flow login in the terminal. It is an auth.Presenter.
type LoginMonitor struct {
	program *tea.Program
	done    chan struct{}
}

var _ auth.Presenter = (*LoginMonitor)(nil)

func NewLoginMonitor(opts ...tea.ProgramOption) *LoginMonitor {
	return &LoginMonitor{
		program: tea.NewProgram(NewModel(), opts...),
		done:    make(chan struct{}),
	}
}

// Start runs the UI in the background. cancel is called when the user quits
// before the login finished.
func (lm *LoginMonitor) Start(cancel context.CancelFunc) {
	go func() {
		defer close(lm.done)

		final, err := lm.program.Run()
		if err != nil {
			logger.Error("Login monitor failed: %v", err)
			cancel()
			return
		}
		if m, ok := final.(Model); ok && m.Cancelled() {
			cancel()
		}
	}()
}

// Finish reports the login outcome and waits for the UI to exit.
func (lm *LoginMonitor) Finish(err error) {
	if err != nil {
		lm.program.Send(LoginFailed{Err: err})
	} else {
		lm.program.Quit()
	}
	<-lm.done
}

func (lm *LoginMonitor) DeviceCode(code *models.DeviceCodeResponse) {
	lm.program.Send(CodeIssued{Code: code})
}

func (lm *LoginMonitor) Notice(msg string) {
	lm.program.Send(Notice{Message: msg})
}

func (lm *LoginMonitor) Pending(attempt int) {
	lm.program.Send(PollAttempt{Attempt: attempt})
}

func (lm *LoginMonitor) Success(token *models.TokenResponse, master bool, credentialsPath string) {
	lm.program.Send(LoginSucceeded{Banner: auth.SuccessBanner(token, master, credentialsPath)})
}
