// Package broadcast implements the WebSocket relay hub using the actor pattern.
//
// The Hub owns the registry of live connections and fans every received message
// out to all other registered clients. Uses single goroutine + command channel
// (no mutexes). Per-connection write goroutines handle slow clients gracefully.
package broadcast
