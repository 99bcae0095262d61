package sources

import (
	"context"

	"github.com/agentstation/roster/pkg/fields"
	"github.com/agentstation/roster/pkg/logging"
)

// gate applies the admission rule shared by every format: the email must be
// valid and the phone must normalize. It returns the normalized phone.
func gate(ctx context.Context, b *Batch, email, phone, where string) (string, bool) {
	if !fields.ValidateEmail(email) {
		b.reject(ReasonInvalidEmail)
		logging.FromContext(ctx).Debug().
			Str("at", where).
			Str("reason", string(ReasonInvalidEmail)).
			Msg("Dropped record")
		return "", false
	}
	normalized, ok := fields.NormalizePhone(phone)
	if !ok {
		b.reject(ReasonInvalidPhone)
		logging.FromContext(ctx).Debug().
			Str("at", where).
			Str("reason", string(ReasonInvalidPhone)).
			Msg("Dropped record")
		return "", false
	}
	return normalized, true
}
