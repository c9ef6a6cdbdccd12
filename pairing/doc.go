// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package pairing seats players into pods for each round, spreading
// opponents so that players meet as many different people as possible.
// An event may open with hosts, one at the head of each first-round pod.
package pairing
