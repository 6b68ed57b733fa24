// Package msgs provides the event messages published by the
// transmitter front end.
package msgs

// Events are protobuf messages wrapped in a Typed envelope carrying the
// type ID, so a consumer subscribed to a single stream can decode
// every message kind.
//
// Producer: txbench
// Consumer: txmon, websocket clients
