// Package live carries issue changes from the handlers that write them to
// everything that watches: the in-memory mirror behind the public list and
// every open websocket.
package live

// Shared broker and mirror. main warms Feed from the database and attaches
// it to Events; handlers publish to Events after every successful write.
var (
	Events = NewHub()
	Feed   = NewCollection()
)
