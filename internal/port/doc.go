// Package port implements host port availability scanning.
//
// Before `janus dev up` publishes the Redis port, the scanner verifies
// the configured host port is actually free, so the stack fails with a
// precise diagnostic instead of a half-started container. Availability
// is probed with net.Listen/net.ListenPacket, asking the OS directly
// rather than parsing /proc/net/* or shelling out to lsof/ss.
package port
