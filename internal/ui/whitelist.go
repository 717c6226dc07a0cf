package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cryptodevs/whitelist-dapp/internal/dapp"
)

// WhitelistClient is the part of dapp.Client the screen drives.
type WhitelistClient interface {
	Connect(ctx context.Context) (dapp.ConnectResult, error)
	Submit(ctx context.Context) (string, error)
	Await(ctx context.Context, hash string) (dapp.JoinResult, error)
	RefreshCount(ctx context.Context) (uint64, error)
}

const (
	pageTitle   = "Welcome to Crypto Devs!"
	pageTagline = "It's an NFT collection for developers in Crypto"
	pageFooter  = "Made with ❤ by Crypto Devs"
)

// Messages reported back by the client commands.
type (
	connectDoneMsg struct {
		res dapp.ConnectResult
		err error
	}
	joinSubmittedMsg struct {
		hash string
		err  error
	}
	joinDoneMsg struct {
		res dapp.JoinResult
		err error
	}
	countMsg struct {
		count uint64
		err   error
	}
	spinTickMsg time.Time
)

// WhitelistModel is the Bubble Tea model for the whitelist page. All state
// transitions go through dapp.Reduce inside Update.
type WhitelistModel struct {
	ctx      context.Context
	client   WhitelistClient
	network  string
	contract string

	state    dapp.State
	alert    string
	notice   string
	frame    int
	spinning bool
	quitting bool
}

// NewWhitelistModel builds the page for contract on network.
func NewWhitelistModel(ctx context.Context, client WhitelistClient, network, contract string) WhitelistModel {
	return WhitelistModel{
		ctx:      ctx,
		client:   client,
		network:  network,
		contract: contract,
	}
}

// NewWhitelistProgram wraps m in a full-screen program bound to m's context.
func NewWhitelistProgram(m WhitelistModel) *tea.Program {
	return tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
}

// State returns the current view state.
func (m WhitelistModel) State() dapp.State { return m.state }

// Alert returns the blocking alert text, if one is showing.
func (m WhitelistModel) Alert() string { return m.alert }

func (m WhitelistModel) Init() tea.Cmd {
	return tea.SetWindowTitle("Whitelist Dapp")
}

func (m WhitelistModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinTickMsg:
		if !m.busy() {
			m.spinning = false
			return m, nil
		}
		m.frame = (m.frame + 1) % len(spinnerFrames)
		return m, spinTick()

	case connectDoneMsg:
		if msg.err != nil {
			m.state = dapp.Reduce(m.state, dapp.ConnectFailed{Err: msg.err})
			if dapp.KindOf(msg.err) == dapp.KindNetworkMismatch {
				m.alert = "Change the network to " + displayNetwork(m.network)
			}
			return m, nil
		}
		m.state = dapp.Reduce(m.state, msg.res.Event())
		return m, nil

	case joinSubmittedMsg:
		if msg.err != nil {
			m.state = dapp.Reduce(m.state, dapp.JoinFailed{Err: msg.err})
			return m, nil
		}
		m.state = dapp.Reduce(m.state, dapp.JoinSubmitted{TxHash: msg.hash})
		return m, m.awaitCmd(msg.hash)

	case joinDoneMsg:
		if msg.err != nil {
			m.state = dapp.Reduce(m.state, dapp.JoinFailed{Err: msg.err})
			return m, nil
		}
		m.state = dapp.Reduce(m.state, msg.res.Event())
		if msg.res.CountErr != nil {
			m.notice = "Joined, but the member count could not be refreshed (press r)"
		}
		return m, nil

	case countMsg:
		if msg.err != nil {
			m.notice = "Refresh failed: " + msg.err.Error()
			return m, nil
		}
		m.notice = ""
		m.state = dapp.Reduce(m.state, dapp.CountRefreshed{Count: msg.count})
		return m, nil
	}
	return m, nil
}

func (m WhitelistModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	// The alert blocks everything until it is dismissed.
	if m.alert != "" {
		switch key {
		case "enter", "esc", " ":
			m.alert = ""
		}
		return m, nil
	}

	switch key {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "enter", " ":
		return m.activate()
	case "r":
		if m.state.WalletConnected() {
			m.notice = ""
			return m, m.refreshCmd()
		}
	}
	return m, nil
}

// activate performs the rendered button's action.
func (m WhitelistModel) activate() (tea.Model, tea.Cmd) {
	btn := m.state.Button()
	if btn.Disabled || btn.Message {
		return m, nil
	}
	m.notice = ""
	switch btn.Action {
	case dapp.ActionConnect:
		next := dapp.Reduce(m.state, dapp.ConnectRequested{})
		if next.Phase == m.state.Phase {
			return m, nil
		}
		m.state = next
		cmd := tea.Batch(m.connectCmd(), m.startSpinner())
		return m, cmd
	case dapp.ActionJoin:
		next := dapp.Reduce(m.state, dapp.JoinRequested{})
		if next.Phase == m.state.Phase {
			return m, nil
		}
		m.state = next
		cmd := tea.Batch(m.submitCmd(), m.startSpinner())
		return m, cmd
	}
	return m, nil
}

func (m WhitelistModel) busy() bool {
	return m.state.Phase == dapp.PhaseConnecting || m.state.Phase == dapp.PhaseJoining
}

func (m *WhitelistModel) startSpinner() tea.Cmd {
	if m.spinning {
		return nil
	}
	m.spinning = true
	return spinTick()
}

func spinTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg { return spinTickMsg(t) })
}

func (m WhitelistModel) connectCmd() tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		res, err := client.Connect(ctx)
		return connectDoneMsg{res: res, err: err}
	}
}

func (m WhitelistModel) submitCmd() tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		hash, err := client.Submit(ctx)
		return joinSubmittedMsg{hash: hash, err: err}
	}
}

func (m WhitelistModel) awaitCmd(hash string) tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		res, err := client.Await(ctx, hash)
		return joinDoneMsg{res: res, err: err}
	}
}

func (m WhitelistModel) refreshCmd() tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		n, err := client.RefreshCount(ctx)
		return countMsg{count: n, err: err}
	}
}

func (m WhitelistModel) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(StyleTitle.Render(pageTitle))
	sb.WriteString("\n")
	sb.WriteString("  " + pageTagline + "\n")
	sb.WriteString(fmt.Sprintf("  %s have already joined the Whitelist\n\n",
		StyleValue.Render(fmt.Sprintf("%d", m.state.NumberOfWhitelisted))))

	sb.WriteString("  " + m.renderButton() + "\n\n")

	if m.alert != "" {
		sb.WriteString(StyleAlert.Render(m.alert+"\n\n"+StyleMeta.Render("press enter to dismiss")) + "\n\n")
	}

	sb.WriteString(m.renderStatus())

	sb.WriteString("\n")
	sb.WriteString(StyleMeta.Render("  enter activate  ·  r refresh  ·  q quit"))
	sb.WriteString("\n\n")
	sb.WriteString(StyleMeta.Render("  " + pageFooter))
	sb.WriteString("\n")
	return sb.String()
}

func (m WhitelistModel) renderButton() string {
	btn := m.state.Button()
	switch {
	case btn.Message:
		return StyleSuccess.Render(btn.Label)
	case btn.Disabled, m.state.Phase == dapp.PhaseConnecting:
		return StyleButtonDisabled.Render(spinnerFrames[m.frame] + " " + btn.Label)
	default:
		return StyleButton.Render(btn.Label)
	}
}

func (m WhitelistModel) renderStatus() string {
	var sb strings.Builder
	s := m.state
	if s.WalletConnected() {
		sb.WriteString("  " + Meta("wallet   ") + Addr(s.Address) + "\n")
		sb.WriteString("  " + Meta("network  ") + ChainName(displayNetwork(m.network)) + Meta(fmt.Sprintf(" (%d)", s.ChainID)) + "\n")
	}
	if m.contract != "" {
		sb.WriteString("  " + Meta("contract ") + Addr(m.contract) + "\n")
	}
	if s.TxHash != "" {
		line := "  " + Meta("tx       ") + Addr(s.TxHash)
		switch s.Join {
		case dapp.JoinPending:
			line += " " + StyleWarning.Render("pending")
		case dapp.JoinConfirmed:
			line += " " + StyleSuccess.Render("confirmed")
		case dapp.JoinFailed:
			line += " " + StyleError.Render("failed")
		}
		sb.WriteString(line + "\n")
	}
	if s.Err != nil && m.alert == "" {
		sb.WriteString("  " + Err(describeError(s.Err)) + "\n")
	}
	if m.notice != "" {
		sb.WriteString("  " + Warn(m.notice) + "\n")
	}
	return sb.String()
}

// describeError turns a client failure into one line for the status area.
func describeError(err error) string {
	switch dapp.KindOf(err) {
	case dapp.KindWalletRejected:
		return "Wallet request rejected: " + err.Error()
	case dapp.KindReverted:
		return "Transaction reverted: " + err.Error()
	case dapp.KindNotConnected:
		return "Connect your wallet first"
	case dapp.KindNoContract:
		return "No Whitelist contract configured; run `whitelist deploy` or `whitelist config set-contract`"
	case dapp.KindNetworkMismatch:
		return err.Error()
	default:
		return "RPC error: " + err.Error()
	}
}

// displayNetwork capitalises a registry network name: goerli → Goerli.
func displayNetwork(name string) string {
	if name == "" {
		return "the expected network"
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
