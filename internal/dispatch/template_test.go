package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sirwalterjones/sessionremind/internal/model"
)

func TestRenderBody(t *testing.T) {
	msg := &model.Message{
		RecipientName:  "Sarah Jones",
		RecipientPhone: "6788978571",
		RecipientEmail: "sarah@example.com",
		SessionTitle:   "Fall Mini Session",
		SessionTime:    "Saturday, Oct 12 at 3:30 PM",
		Body:           "Hi {first_name}! Your {session} is {time}. Reply to {phone} with questions.",
	}

	got := RenderBody(msg)
	assert.Equal(t, "Hi Sarah! Your Fall Mini Session is Saturday, Oct 12 at 3:30 PM. Reply to 6788978571 with questions.", got)
}

func TestRenderBodyLeavesUnknownTokens(t *testing.T) {
	msg := &model.Message{
		RecipientName: "Sarah",
		Body:          "Hi {name}, see you {tomorrow}",
	}
	assert.Equal(t, "Hi Sarah, see you {tomorrow}", RenderBody(msg))
}
