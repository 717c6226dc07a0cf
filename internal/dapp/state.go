package dapp

// Phase is where the client sits in the connect/join flow.
type Phase int

const (
	PhaseDisconnected Phase = iota
	PhaseConnecting
	PhaseConnected
	PhaseJoining
)

func (p Phase) String() string {
	switch p {
	case PhaseConnecting:
		return "connecting"
	case PhaseConnected:
		return "connected"
	case PhaseJoining:
		return "joining"
	default:
		return "disconnected"
	}
}

// JoinStatus tracks the last join transaction.
type JoinStatus int

const (
	JoinIdle JoinStatus = iota
	JoinPending
	JoinConfirmed
	JoinFailed
)

func (s JoinStatus) String() string {
	switch s {
	case JoinPending:
		return "pending"
	case JoinConfirmed:
		return "confirmed"
	case JoinFailed:
		return "failed"
	default:
		return "idle"
	}
}

// State is everything the view renders. It only changes through Reduce.
type State struct {
	Phase   Phase
	Address string
	ChainID int64

	JoinedWhitelist     bool
	NumberOfWhitelisted uint64

	// Loading is true exactly while a join transaction is pending.
	Loading bool
	Join    JoinStatus
	TxHash  string

	// Err is the last failure; cleared by the next successful transition.
	Err error
}

// WalletConnected reports whether a session is open.
func (s State) WalletConnected() bool {
	return s.Phase == PhaseConnected || s.Phase == PhaseJoining
}

// Button renders the state's call to action.
func (s State) Button() Button {
	return RenderButton(s.WalletConnected(), s.JoinedWhitelist, s.Loading)
}

// Event drives a State transition.
type Event interface{ event() }

type (
	// ConnectRequested: the user activated "Connect your wallet".
	ConnectRequested struct{}
	// ConnectSucceeded carries the two post-connect reads.
	ConnectSucceeded struct {
		Address string
		ChainID int64
		Joined  bool
		Count   uint64
	}
	// ConnectFailed returns the flow to Disconnected.
	ConnectFailed struct{ Err error }
	// JoinRequested: the user activated "Join The Whitelist".
	JoinRequested struct{}
	// JoinSubmitted records the broadcast transaction.
	JoinSubmitted struct{ TxHash string }
	// JoinConfirmed: the receipt was mined with status 1. Stale means the
	// count could not be re-read and the cached value is kept.
	JoinConfirmed struct {
		Count uint64
		Stale bool
	}
	// JoinFailed: submission failed or the receipt reverted.
	JoinFailed struct{ Err error }
	// CountRefreshed carries a fresh numAddressesWhitelisted read.
	CountRefreshed struct{ Count uint64 }
	// Disconnected tears the session down.
	Disconnected struct{}
)

func (ConnectRequested) event() {}
func (ConnectSucceeded) event() {}
func (ConnectFailed) event()    {}
func (JoinRequested) event()    {}
func (JoinSubmitted) event()    {}
func (JoinConfirmed) event()    {}
func (JoinFailed) event()       {}
func (CountRefreshed) event()   {}
func (Disconnected) event()     {}

// Reduce applies ev to s. Events that are not valid in the current phase
// leave the state unchanged.
func Reduce(s State, ev Event) State {
	switch ev := ev.(type) {
	case ConnectRequested:
		if s.Phase != PhaseDisconnected {
			return s
		}
		s.Phase = PhaseConnecting
		s.Err = nil

	case ConnectSucceeded:
		if s.Phase != PhaseConnecting {
			return s
		}
		s.Phase = PhaseConnected
		s.Address = ev.Address
		s.ChainID = ev.ChainID
		s.JoinedWhitelist = ev.Joined
		s.NumberOfWhitelisted = ev.Count
		s.Join = JoinIdle
		s.Err = nil

	case ConnectFailed:
		if s.Phase != PhaseConnecting {
			return s
		}
		s.Phase = PhaseDisconnected
		s.Err = ev.Err

	case JoinRequested:
		if s.Phase != PhaseConnected || s.JoinedWhitelist || s.Loading {
			return s
		}
		s.Phase = PhaseJoining
		s.Loading = true
		s.Join = JoinPending
		s.TxHash = ""
		s.Err = nil

	case JoinSubmitted:
		if s.Phase != PhaseJoining {
			return s
		}
		s.TxHash = ev.TxHash

	case JoinConfirmed:
		if s.Phase != PhaseJoining {
			return s
		}
		s.Phase = PhaseConnected
		s.JoinedWhitelist = true
		if !ev.Stale {
			s.NumberOfWhitelisted = ev.Count
		}
		s.Loading = false
		s.Join = JoinConfirmed

	case JoinFailed:
		if s.Phase != PhaseJoining {
			return s
		}
		s.Phase = PhaseConnected
		s.Loading = false
		s.Join = JoinFailed
		s.Err = ev.Err

	case CountRefreshed:
		if !s.WalletConnected() {
			return s
		}
		s.NumberOfWhitelisted = ev.Count

	case Disconnected:
		return State{}
	}
	return s
}

// Action is what activating a button does.
type Action int

const (
	ActionNone Action = iota
	ActionConnect
	ActionJoin
)

// Button is the rendered call to action. A Message has no action and is
// shown as plain text.
type Button struct {
	Label    string
	Action   Action
	Disabled bool
	Message  bool
}

// Button labels.
const (
	LabelConnect = "Connect your wallet"
	LabelThanks  = "Thanks for joining the Whitelist!"
	LabelLoading = "Loading..."
	LabelJoin    = "Join The Whitelist"
)

// RenderButton maps the three view flags to the button. It is the only
// place that decides what the user can do next.
func RenderButton(walletConnected, joined, loading bool) Button {
	switch {
	case !walletConnected:
		return Button{Label: LabelConnect, Action: ActionConnect}
	case joined:
		return Button{Label: LabelThanks, Message: true}
	case loading:
		return Button{Label: LabelLoading, Disabled: true}
	default:
		return Button{Label: LabelJoin, Action: ActionJoin}
	}
}
