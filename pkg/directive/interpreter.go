package directive

import (
	"context"
	"log/slog"

	"github.com/jwebster45206/adventure-engine/pkg/session"
)

// Interpreter applies scanned directives to a session. The four dispatch
// paths are independent and unconditional: one text block may start combat,
// grant an item, move the player and journal an event all at once, in the
// order the tags appear.
type Interpreter struct {
	session *session.Session
	logger  *slog.Logger
}

// NewInterpreter creates an interpreter bound to one session.
func NewInterpreter(s *session.Session, logger *slog.Logger) *Interpreter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Interpreter{session: s, logger: logger}
}

// Apply scans raw narrator text, applies every directive in order of
// appearance and returns the tag-stripped display text plus notice lines
// describing the applied effects. Nothing here is fatal: malformed
// directives are skipped and unknown entity names are synthesized.
// Location synthesis may call the narrator and block on ctx.
func (in *Interpreter) Apply(ctx context.Context, raw string) (string, []string) {
	matches, display := Scan(raw)

	var notices []string
	for _, m := range matches {
		in.logger.Debug("Applying directive", "tag", string(m.Tag), "payload", m.Payload)
		switch m.Tag {
		case TagCombat:
			notices = append(notices, in.session.StartCombat(m.Payload)...)
		case TagItem:
			notices = append(notices, in.session.FindItem(m.Payload)...)
		case TagLocation:
			notices = append(notices, in.session.ChangeLocation(ctx, m.Payload)...)
		case TagEvent:
			in.session.RecordEvent(m.Payload)
		}
	}
	return display, notices
}
