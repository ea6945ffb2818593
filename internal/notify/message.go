package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vietddude/sentinel/internal/core/domain"
)

// Message is one outbound alert, fully formatted before delivery.
type Message struct {
	EventID string
	Node    string
	Kind    domain.VerdictKind
	Lines   []string
	At      time.Time
}

// Render produces the human-readable webhook text.
func (m Message) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "**[%s]** node %s\n", m.Kind, m.Node)
	for _, line := range m.Lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "at %s | event %s", m.At.UTC().Format(time.RFC3339), m.EventID)
	return b.String()
}

// NewAlertMessage builds the message for a non-healthy verdict.
func NewAlertMessage(node string, v domain.Verdict, snap domain.Snapshot) Message {
	msg := Message{
		EventID: uuid.NewString(),
		Node:    node,
		Kind:    v.Kind,
		At:      snap.ObservedAt,
	}

	switch v.Kind {
	case domain.VerdictLagging:
		msg.Lines = append(msg.Lines,
			fmt.Sprintf("local node is %d blocks behind the reference", v.BlocksBehind),
			fmt.Sprintf("local: %d | remote: %d", snap.Local.Height, snap.Remote.Height))
	case domain.VerdictLocalUnreachable:
		msg.Lines = append(msg.Lines, "local node is unreachable")
		if snap.Local.Err != nil {
			msg.Lines = append(msg.Lines, fmt.Sprintf("cause: %v", snap.Local.Err))
		}
	case domain.VerdictRemoteUnreachable:
		msg.Lines = append(msg.Lines, "remote reference node is unreachable, cannot judge sync state")
		if snap.Remote.Err != nil {
			msg.Lines = append(msg.Lines, fmt.Sprintf("cause: %v", snap.Remote.Err))
		}
	}
	return msg
}

// NewRecoveryMessage builds the message for a return to healthy.
func NewRecoveryMessage(node string, cleared domain.VerdictKind, since time.Time, snap domain.Snapshot) Message {
	lines := []string{
		fmt.Sprintf("recovered from %s (alerting since %s)", cleared, since.UTC().Format(time.RFC3339)),
	}
	if snap.Local.OK() && snap.Remote.OK() {
		lines = append(lines,
			fmt.Sprintf("local: %d | remote: %d", snap.Local.Height, snap.Remote.Height))
	}
	return Message{
		EventID: uuid.NewString(),
		Node:    node,
		Kind:    domain.VerdictHealthy,
		Lines:   lines,
		At:      snap.ObservedAt,
	}
}
