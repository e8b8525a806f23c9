package pages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBase(fp *fakePage) Base {
	return NewBase(fp, testConfig(), "/tasks")
}

func TestOpenNavigatesToRoute(t *testing.T) {
	fp := newFakePage()
	b := newTestBase(fp)

	require.NoError(t, b.Open())
	assert.Equal(t, "http://factory.test/tasks", fp.URL())
}

func TestFindReportsLocator(t *testing.T) {
	fp := newFakePage()
	b := newTestBase(fp)

	_, err := b.Find(XPath("//missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xpath=//missing")
}

func TestTypeForceClearsThenTypes(t *testing.T) {
	fp := newFakePage()
	field := XPath("//input[@type='number']")
	el := fp.show(field)
	el.value = "100"
	b := newTestBase(fp)

	require.NoError(t, b.TypeForce(field, "85"))
	assert.Equal(t, "85", el.value)
	assert.Equal(t, []string{
		clicked(field),
		"press xpath=//input[@type='number'] ControlOrMeta+a",
		"press xpath=//input[@type='number'] Backspace",
		typed(field, "85"),
	}, fp.actions)
}

func TestSetNativeValue(t *testing.T) {
	fp := newFakePage()
	el := fp.show(excursionStartTime)
	b := newTestBase(fp)

	require.NoError(t, b.SetNativeValue(excursionStartTime, "2030-05-01T10:30"))
	assert.Equal(t, "2030-05-01T10:30", el.value)
}

func TestPresenceChecksNeverFail(t *testing.T) {
	fp := newFakePage()
	shown := XPath("//shown")
	hidden := XPath("//hidden")
	fp.show(shown)
	fp.show(hidden).visible = false
	b := newTestBase(fp)

	assert.True(t, b.IsVisible(shown, 0))
	assert.False(t, b.IsVisible(hidden, 0))
	assert.False(t, b.IsVisible(XPath("//absent"), 0))

	assert.NoError(t, b.WaitGone(hidden, 0))
	assert.NoError(t, b.WaitGone(XPath("//absent"), 0))
	assert.Error(t, b.WaitGone(shown, 0))
}

func TestWaitURL(t *testing.T) {
	fp := newFakePage()
	fp.url = "http://factory.test/tasks"
	b := newTestBase(fp)

	assert.True(t, b.WaitURLContains("/tasks", 0))
	assert.False(t, b.WaitURLContains("/users", 0))
	assert.True(t, b.WaitURLLeaves("/login", 0))
}

func TestTextAndAttribute(t *testing.T) {
	fp := newFakePage()
	loc := XPath("//span")
	el := fp.show(loc)
	el.text = "  В работе \n"
	el.attrs["data-value"] = "IN_PROGRESS"
	b := newTestBase(fp)

	text, err := b.Text(loc)
	require.NoError(t, err)
	assert.Equal(t, "В работе", text)

	value, err := b.Attribute(loc, "data-value")
	require.NoError(t, err)
	assert.Equal(t, "IN_PROGRESS", value)
}

func TestOpenDialogRequiresDialog(t *testing.T) {
	fp := newFakePage()
	trigger := XPath("//button[contains(text(), 'Создать')]")
	fp.show(trigger)
	b := newTestBase(fp)

	err := b.OpenDialog(trigger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dialog did not open")

	fp.show(dialogRoot)
	assert.NoError(t, b.OpenDialog(trigger))
}

func TestCount(t *testing.T) {
	fp := newFakePage()
	fp.show(ticketRows).items = []string{"a", "b", "c"}
	b := newTestBase(fp)

	n, err := b.Count(ticketRows)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = b.Count(XPath("//none"))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestScreensOpenTheirRoutes(t *testing.T) {
	fp := newFakePage()
	cfg := testConfig()
	screens := map[string]Screen{
		"/login":      NewLoginPage(fp, cfg),
		"/users":      NewUsersPage(fp, cfg),
		"/tasks":      NewTasksPage(fp, cfg),
		"/equipment":  NewEquipmentPage(fp, cfg),
		"/excursions": NewExcursionsPage(fp, cfg),
		"/tickets":    NewGoldenTicketsPage(fp, cfg),
		"/booking":    NewPublicBookingPage(fp, cfg),
	}
	for route, screen := range screens {
		t.Run(route, func(t *testing.T) {
			require.NoError(t, screen.Open())
			assert.Equal(t, "http://factory.test"+route, fp.URL())
		})
	}
}
