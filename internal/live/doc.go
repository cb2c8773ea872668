// Package live maintains the SignWarpX websocket push channel.
//
// A Channel cycles through Connecting, Open and Closed. After any close it
// waits a fixed delay (5s by default, no growth, no attempt cap) and dials
// again. While open it sends a "ping" text frame on every keepalive tick;
// "ping" and "pong" frames from the server are dropped before decoding.
//
// Every other frame must be a JSON object with a type discriminator. Frames
// are checked against an embedded JSON schema, and a frame that fails is
// logged and dropped while the connection stays up.
//
// Decoded events and local state changes (KindState) arrive on Events. The
// channel blocks its read loop when the buffer is full rather than dropping
// events.
//
// SetURL retargets the channel: the transport is torn down and the channel
// reconnects to the new address after the shorter retarget delay. The dialer,
// both delays, the keepalive interval and the clock are injectable for tests.
package live
