/*
Package cutmode is a conversational advisor for machining cutting parameters.

It walks a user through a fixed sequence of questions (workpiece material,
operation, tool type, tool subtype or insert dimension, then the geometry the
chosen path needs) and answers with recommended cutting parameters: speed,
feed, spindle speed, feed rate and radial stepover. Recommendations come from
an embedded catalog of ranges; derived values use the standard shop-floor
formulas (n = 1000v/πd and friends).

The core is transport-agnostic. A host delivers one raw text input per turn
and renders the reply, which is either the next prompt (with the legal
options at the current catalog path) or a terminal message. This repository
ships two hosts: an interactive CLI REPL and a JSON HTTP API.

# Usage

	eng, err := cutmode.New()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	reply, _ := eng.Start(ctx, "session-123") // material prompt
	reply, _ = eng.Advance(ctx, "session-123", "steel")
	reply, _ = eng.Advance(ctx, "session-123", "drilling")
	// ... until reply.Terminal()

Sessions default to an in-memory store; pass WithStore with the Redis
adapter for durable, multi-replica hosting. Each session is advanced
strictly serially under its own lock; the catalog is immutable and shared.
*/
package cutmode
