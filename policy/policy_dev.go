// +build dev

// Package policy, dev variant: looser ceilings for local fuzzing and
// benchmark runs, where the caller wants to push past the production
// limits without editing the production constants.
package policy

const MaxChunkBytes = 512 << 20

const MaxImageBytes = 2 << 30

const MaxSuggestedPaletteEntries = 1 << 20
