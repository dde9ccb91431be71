package dispatch

import (
	"strings"

	"github.com/sirwalterjones/sessionremind/internal/model"
)

// RenderBody substitutes the record's contact snapshot into its free-text
// body. Plain find/replace on fixed tokens, not a templating language;
// unknown tokens are left untouched.
func RenderBody(msg *model.Message) string {
	r := strings.NewReplacer(
		"{name}", msg.RecipientName,
		"{first_name}", firstName(msg.RecipientName),
		"{session}", msg.SessionTitle,
		"{time}", msg.SessionTime,
		"{email}", msg.RecipientEmail,
		"{phone}", msg.RecipientPhone,
	)
	return r.Replace(msg.Body)
}

func firstName(full string) string {
	if i := strings.IndexByte(full, ' '); i > 0 {
		return full[:i]
	}
	return full
}
