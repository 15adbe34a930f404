// Package role is the closed catalog of roles a participant can hold.
//
// Every role is a Kind constant; Describe returns its immutable Descriptor
// (team, night effect, resolution priority, targeting rules and vote
// weight). The night engine dispatches on Effect, never on role names.
package role
