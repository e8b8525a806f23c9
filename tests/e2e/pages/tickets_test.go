package pages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTickets(t *testing.T) {
	fp := newFakePage()
	rows := fp.show(ticketRows)
	rows.items = []string{"GW4A7K2M"}
	fp.showAll(ticketGenerateButton, dialogRoot, ticketCount, ticketExpiresIn, toast)
	fp.show(ticketConfirm).onClick = func() {
		rows.items = append(rows.items, "A", "B", "C", "D", "E")
	}

	p := NewGoldenTicketsPage(fp, testConfig())
	before, err := p.TicketCount()
	require.NoError(t, err)

	require.NoError(t, p.GenerateTickets(5, 30))
	assert.True(t, fp.did(typed(ticketCount, "5")))
	assert.True(t, fp.did(typed(ticketExpiresIn, "30")))

	after, err := p.TicketCount()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, after, before+5)
}

func TestTicketCountEmptyGrid(t *testing.T) {
	n, err := NewGoldenTicketsPage(newFakePage(), testConfig()).TicketCount()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestTicketRowExists(t *testing.T) {
	fp := newFakePage()
	fp.show(rowWith.Format("GW4A7K2M"))

	p := NewGoldenTicketsPage(fp, testConfig())
	assert.True(t, p.TicketRowExists("GW4A7K2M"))
	assert.False(t, p.TicketRowExists("ZZZZZZZZ"))
}

func TestTicketCountReadsPaginationTotal(t *testing.T) {
	fp := newFakePage()
	rows := make([]string, 25)
	fp.show(ticketRows).items = rows
	footer := fp.show(ticketPagination)
	footer.text = "1–25 of 130"

	p := NewGoldenTicketsPage(fp, testConfig())
	before, err := p.TicketCount()
	require.NoError(t, err)
	assert.Equal(t, 130, before, "a full page of rows must not cap the count")

	footer.text = "1–25 of 135"
	after, err := p.TicketCount()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, after, before+5)
}

func TestParseDisplayedRows(t *testing.T) {
	tests := []struct {
		text  string
		total int
		ok    bool
	}{
		{"1–25 of 130", 130, true},
		{"1–25 из 31", 31, true},
		{"0–0 of 0", 0, true},
		{"1–25 of more than 50", 50, true},
		{"Rows per page", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			total, ok := parseDisplayedRows(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.total, total)
		})
	}
}
