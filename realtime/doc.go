// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package realtime pushes event notifications to server-sent event streams.
// Messages carry only an event name; clients refetch the resource it names.
package realtime
