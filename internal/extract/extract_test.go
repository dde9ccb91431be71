package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const bookingPage = `
Fall Mini Sessions
Sarah Jones
sarah.jones@example.com
+1 (678) 897-8571
Saturday, Oct 12 at 3:30 PM
Location: Piedmont Park
`

func TestExtractFromBookingPage(t *testing.T) {
	info := Extract(bookingPage)

	assert.Equal(t, "Sarah Jones", info.Name)
	assert.Equal(t, "sarah.jones@example.com", info.Email)
	assert.Equal(t, "+1 (678) 897-8571", info.Phone)
	assert.Equal(t, "Fall Mini Sessions", info.SessionTitle)
	assert.Equal(t, "Saturday, Oct 12 at 3:30 PM", info.SessionTime)
}

func TestExtractLabeledFieldsWin(t *testing.T) {
	raw := `
Client: Maria Garcia-Lopez
Session: Newborn Session
Some Other Person
maria@example.com
`
	info := Extract(raw)

	assert.Equal(t, "Maria Garcia-Lopez", info.Name)
	assert.Equal(t, "Newborn Session", info.SessionTitle)
}

func TestExtractPartialResult(t *testing.T) {
	info := Extract("no structured data here at all")

	assert.Empty(t, info.Name)
	assert.Empty(t, info.Phone)
	assert.Empty(t, info.Email)
	assert.Empty(t, info.SessionTime)
}

func TestExtractTimeOnlyFallback(t *testing.T) {
	info := Extract("see you at 4:15 pm sharp")
	assert.Equal(t, "4:15 pm", info.SessionTime)
}
