package live

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"communitypulse-be/models"
)

func mirrorIssue(title string) models.Issue {
	return models.Issue{
		ID:        primitive.NewObjectID(),
		Title:     title,
		Category:  models.Pothole,
		Status:    models.StatusNew,
		CreatedAt: time.Now().UTC(),
	}
}

func TestCollectionIgnoresEventsUntilLoaded(t *testing.T) {
	c := NewCollection()

	c.ApplyEvent(Event{Type: EventInsert, Issue: mirrorIssue("too early")})

	assert.False(t, c.Loaded())
	assert.Zero(t, c.Len())
}

func TestCollectionLoadCopiesAndMarksWarm(t *testing.T) {
	c := NewCollection()
	rows := []models.Issue{mirrorIssue("first"), mirrorIssue("second")}

	c.Load(rows)
	rows[0].Title = "mutated after load"

	assert.True(t, c.Loaded())
	require.Equal(t, 2, c.Len())
	assert.Equal(t, "first", c.Snapshot()[0].Title)
}

func TestCollectionInsertPrepends(t *testing.T) {
	c := NewCollection()
	c.Load([]models.Issue{mirrorIssue("older")})

	fresh := mirrorIssue("just reported")
	c.ApplyEvent(Event{Type: EventInsert, Issue: fresh})

	snap := c.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, fresh.ID, snap[0].ID)
	assert.Equal(t, "older", snap[1].Title)
}

func TestCollectionSpamInsertNeverEntersState(t *testing.T) {
	c := NewCollection()
	c.Load(nil)

	spam := mirrorIssue("buy followers")
	spam.IsSpam = true
	c.ApplyEvent(Event{Type: EventInsert, Issue: spam})

	assert.Zero(t, c.Len())
}

func TestCollectionUpdateReplacesInPlace(t *testing.T) {
	c := NewCollection()
	first := mirrorIssue("first")
	second := mirrorIssue("second")
	c.Load([]models.Issue{first, second})

	second.Status = models.StatusResolved
	second.PublicNotes = "crew dispatched"
	c.ApplyEvent(Event{Type: EventUpdate, Issue: second})

	snap := c.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, first.ID, snap[0].ID)
	assert.Equal(t, models.StatusResolved, snap[1].Status)
	assert.Equal(t, "crew dispatched", snap[1].PublicNotes)
}

func TestCollectionUpdateForUnknownRowIsIgnored(t *testing.T) {
	c := NewCollection()
	c.Load([]models.Issue{mirrorIssue("known")})

	c.ApplyEvent(Event{Type: EventUpdate, Issue: mirrorIssue("stranger")})

	assert.Equal(t, 1, c.Len())
	assert.Equal(t, "known", c.Snapshot()[0].Title)
}

func TestCollectionDeleteIsIgnored(t *testing.T) {
	c := NewCollection()
	row := mirrorIssue("sticks around")
	c.Load([]models.Issue{row})

	c.ApplyEvent(Event{Type: EventDelete, Issue: row})

	assert.Equal(t, 1, c.Len())
}

func TestCollectionSpamUpdateLeavesVisibleSet(t *testing.T) {
	c := NewCollection()
	row := mirrorIssue("looked fine at first")
	c.Load([]models.Issue{row, mirrorIssue("legit")})

	row.IsSpam = true
	c.ApplyEvent(Event{Type: EventUpdate, Issue: row})

	// the raw mirror keeps the row, the public projection must not
	assert.Equal(t, 2, c.Len())
	visible := c.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "legit", visible[0].Title)
	assert.Equal(t, 1, c.ActiveCount())
}

func TestCollectionSnapshotIsACopy(t *testing.T) {
	c := NewCollection()
	c.Load([]models.Issue{mirrorIssue("original")})

	snap := c.Snapshot()
	snap[0].Title = "scribbled on"

	assert.Equal(t, "original", c.Snapshot()[0].Title)
}

func TestCollectionActiveCountSkipsResolvedAndSpam(t *testing.T) {
	open := mirrorIssue("open")
	working := mirrorIssue("working")
	working.Status = models.StatusInProgress
	fixed := mirrorIssue("fixed")
	fixed.Status = models.StatusResolved
	junk := mirrorIssue("junk")
	junk.IsSpam = true

	c := NewCollection()
	c.Load([]models.Issue{open, working, fixed, junk})

	assert.Equal(t, 2, c.ActiveCount())
}

func TestCollectionConsumeMergesUntilClosed(t *testing.T) {
	h := NewHub()
	sub := h.Subscribe()

	c := NewCollection()
	c.Load(nil)

	done := make(chan struct{})
	go func() {
		c.Consume(sub)
		close(done)
	}()

	h.Publish(Event{Type: EventInsert, Issue: mirrorIssue("streamed in")})
	sub.Close()
	<-done

	require.Equal(t, 1, c.Len())
	assert.Equal(t, "streamed in", c.Snapshot()[0].Title)
}
