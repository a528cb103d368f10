package live

import (
	"sync"

	"communitypulse-be/models"
)

// Collection mirrors the public issue list in memory: warmed once from the
// database (newest first, spam excluded) and kept current by merging feed
// events. Until Load has run every event is ignored, so a mirror that never
// warmed stays empty instead of showing a partial list.
type Collection struct {
	mu     sync.RWMutex
	loaded bool
	issues []models.Issue
}

func NewCollection() *Collection {
	return &Collection{}
}

// Load replaces the mirror with the given rows and marks it warm.
func (c *Collection) Load(issues []models.Issue) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.issues = make([]models.Issue, len(issues))
	copy(c.issues, issues)
	c.loaded = true
}

// ApplyEvent merges one feed event into the mirror:
//   - insert prepends the row, keeping newest-first order; spam inserts are
//     skipped entirely
//   - update replaces the matching row in place and is ignored for rows the
//     mirror does not hold
//   - delete is ignored: rows leave the public view through the spam flag,
//     never by removal
func (c *Collection) ApplyEvent(evt Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded {
		return
	}

	switch evt.Type {
	case EventInsert:
		if evt.Issue.IsSpam {
			return
		}
		c.issues = append([]models.Issue{evt.Issue}, c.issues...)
	case EventUpdate:
		for i := range c.issues {
			if c.issues[i].ID == evt.Issue.ID {
				c.issues[i] = evt.Issue
				return
			}
		}
	case EventDelete:
	}
}

// Consume merges events from sub until it is closed.
func (c *Collection) Consume(sub *Subscription) {
	for evt := range sub.Events() {
		c.ApplyEvent(evt)
	}
}

// Snapshot copies out the raw mirror, including rows an update has since
// flagged as spam.
func (c *Collection) Snapshot() []models.Issue {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.Issue, len(c.issues))
	copy(out, c.issues)
	return out
}

// Visible copies out the rows the public list may show: everything not
// flagged as spam.
func (c *Collection) Visible() []models.Issue {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.Issue, 0, len(c.issues))
	for _, iss := range c.issues {
		if !iss.IsSpam {
			out = append(out, iss)
		}
	}
	return out
}

func (c *Collection) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.issues)
}

// ActiveCount tallies visible issues still waiting on the city: not spam and
// not resolved.
func (c *Collection) ActiveCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, iss := range c.issues {
		if !iss.IsSpam && iss.Status != models.StatusResolved {
			n++
		}
	}
	return n
}
