// Package games implements the timed speed challenge and the swipe
// BUY/SELL game on top of the session engine.
package games
