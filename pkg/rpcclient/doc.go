// Package rpcclient implements a JSON-RPC 2.0 client for the Neo N3
// node API: request/response framing with monotonic ids, typed
// decoders for every method's result, batch submission, and iterator
// session traversal. The client itself never dials a socket: it is
// handed a transport function that turns one Request into one
// Response, so tests (and alternative transports) can substitute their
// own without a real node listening anywhere.
package rpcclient
