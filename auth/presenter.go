package auth

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/paysponge/spongewallet-go/models"
)

// Presenter shows the login handshake to a human.
type Presenter interface {
	DeviceCode(code *models.DeviceCodeResponse)
	Notice(msg string)
	Pending(attempt int)
	// Success receives the path credentials were saved to, or "" when nothing was saved.
	Success(token *models.TokenResponse, master bool, credentialsPath string)
}

// NopPresenter discards everything.
type NopPresenter struct{}

func (NopPresenter) DeviceCode(*models.DeviceCodeResponse) {}
func (NopPresenter) Notice(string) {}
func (NopPresenter) Pending(int) {}
func (NopPresenter) Success(*models.TokenResponse, bool, string) {}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
)

var codeStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("205")).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("62")).
	Padding(0, 2)

// TextPresenter writes line-oriented output.
type TextPresenter struct {
	Out io.Writer
}

func (p TextPresenter) DeviceCode(code *models.DeviceCodeResponse) {
	fmt.Fprintln(p.Out)
	fmt.Fprintln(p.Out, titleStyle.Render("SpongeWallet Login"))
	fmt.Fprintln(p.Out)
	fmt.Fprintf(p.Out, "Visit: %s\n", code.VerificationURI)
	fmt.Fprintln(p.Out, "Enter code:")
	fmt.Fprintln(p.Out, codeStyle.Render(code.UserCode))
	fmt.Fprintln(p.Out)
}

func (p TextPresenter) Notice(msg string) {
	fmt.Fprintln(p.Out, mutedStyle.Render(msg))
}

func (p TextPresenter) Pending(int) {
	fmt.Fprint(p.Out, ".")
}

func (p TextPresenter) Success(token *models.TokenResponse, master bool, credentialsPath string) {
	fmt.Fprintln(p.Out)
	fmt.Fprint(p.Out, SuccessBanner(token, master, credentialsPath))
}

// SuccessBanner renders the post-login message with the new API key and how to use it.
func SuccessBanner(token *models.TokenResponse, master bool, credentialsPath string) string {
	var s strings.Builder
	rule := strings.Repeat("=", 60)

	s.WriteString(rule + "\n")
	s.WriteString(successStyle.Render("Authentication successful!") + "\n\n")

	if master {
		fmt.Fprintf(&s, "Your master API key: %s\n\n", token.APIKey)
		s.WriteString("Use this key to create agents programmatically:\n")
		s.WriteString("  - Set SPONGE_MASTER_KEY environment variable, or\n")
		s.WriteString("  - Pass it as Config.APIKey to spongewallet.NewAdmin\n\n")
	} else {
		fmt.Fprintf(&s, "Your API key: %s\n\n", token.APIKey)
		s.WriteString("Save this key for other machines/deployments:\n")
		s.WriteString("  - Set SPONGE_API_KEY environment variable, or\n")
		s.WriteString("  - Pass it as Config.APIKey to spongewallet.Connect\n\n")
		if credentialsPath != "" {
			fmt.Fprintf(&s, "Key cached locally at %s\n", credentialsPath)
		}
	}
	s.WriteString(rule + "\n")
	return s.String()
}
