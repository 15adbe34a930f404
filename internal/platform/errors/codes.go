// Package errors provides the typed error taxonomy shared by the game engine.
package errors

// Code is a machine-readable error code.
type Code string

// Class groups codes into the recoverable error families a caller branches on.
type Class int

const (
	// ClassUnknown represents an unclassified error.
	ClassUnknown Class = iota
	// ClassInvalidSubmission rejects a night action; the caller re-prompts.
	ClassInvalidSubmission
	// ClassRoster rejects a roster change.
	ClassRoster
	// ClassInsufficientPlayers rejects role assignment below a ruleset minimum.
	ClassInsufficientPlayers
	// ClassInvalidVote rejects a nomination or confirmation.
	ClassInvalidVote
	// ClassInvalidPhase rejects an operation that the current phase does not allow.
	ClassInvalidPhase
)

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Night submission errors
	CodeSubmissionUnknownActor      Code = "SUBMISSION_UNKNOWN_ACTOR"
	CodeSubmissionActorDead         Code = "SUBMISSION_ACTOR_DEAD"
	CodeSubmissionAbilityBlocked    Code = "SUBMISSION_ABILITY_BLOCKED"
	CodeSubmissionNoNightAction     Code = "SUBMISSION_NO_NIGHT_ACTION"
	CodeSubmissionEffectNotAllowed  Code = "SUBMISSION_EFFECT_NOT_ALLOWED"
	CodeSubmissionTargetRequired    Code = "SUBMISSION_TARGET_REQUIRED"
	CodeSubmissionUnknownTarget     Code = "SUBMISSION_UNKNOWN_TARGET"
	CodeSubmissionSelfTarget        Code = "SUBMISSION_SELF_TARGET"
	CodeSubmissionTargetDead        Code = "SUBMISSION_TARGET_DEAD"
	CodeSubmissionTargetAlive       Code = "SUBMISSION_TARGET_ALIVE"
	CodeSubmissionAbilitySpent      Code = "SUBMISSION_ABILITY_SPENT"
	CodeSubmissionNothingToWithdraw Code = "SUBMISSION_NOTHING_TO_WITHDRAW"

	// Roster errors
	CodeRosterGameStarted        Code = "ROSTER_GAME_STARTED"
	CodeRosterEmptyName          Code = "ROSTER_EMPTY_NAME"
	CodeRosterDuplicateName      Code = "ROSTER_DUPLICATE_NAME"
	CodeRosterUnknownParticipant Code = "ROSTER_UNKNOWN_PARTICIPANT"
	CodeRosterTooManyPlayers     Code = "ROSTER_TOO_MANY_PLAYERS"
	CodeRosterUnknownRuleset     Code = "ROSTER_UNKNOWN_RULESET"
	CodeRosterUnknownRole        Code = "ROSTER_UNKNOWN_ROLE"

	// Role assignment errors
	CodeInsufficientPlayers Code = "INSUFFICIENT_PLAYERS"

	// Vote errors
	CodeVoteUnknownVoter  Code = "VOTE_UNKNOWN_VOTER"
	CodeVoteVoterDead     Code = "VOTE_VOTER_DEAD"
	CodeVoteVoterSilenced Code = "VOTE_VOTER_SILENCED"
	CodeVoteAlreadyCast   Code = "VOTE_ALREADY_CAST"
	CodeVoteUnknownTarget Code = "VOTE_UNKNOWN_TARGET"
	CodeVoteTargetDead    Code = "VOTE_TARGET_DEAD"
	CodeVoteSelf          Code = "VOTE_SELF"

	// Phase errors
	CodePhaseMismatch Code = "PHASE_MISMATCH"
	CodeGameOver      Code = "GAME_OVER"
)

// Class maps a code to its error family.
func (c Code) Class() Class {
	switch c {
	case CodeSubmissionUnknownActor,
		CodeSubmissionActorDead,
		CodeSubmissionAbilityBlocked,
		CodeSubmissionNoNightAction,
		CodeSubmissionEffectNotAllowed,
		CodeSubmissionTargetRequired,
		CodeSubmissionUnknownTarget,
		CodeSubmissionSelfTarget,
		CodeSubmissionTargetDead,
		CodeSubmissionTargetAlive,
		CodeSubmissionAbilitySpent,
		CodeSubmissionNothingToWithdraw:
		return ClassInvalidSubmission

	case CodeRosterGameStarted,
		CodeRosterEmptyName,
		CodeRosterDuplicateName,
		CodeRosterUnknownParticipant,
		CodeRosterTooManyPlayers,
		CodeRosterUnknownRuleset,
		CodeRosterUnknownRole:
		return ClassRoster

	case CodeInsufficientPlayers:
		return ClassInsufficientPlayers

	case CodeVoteUnknownVoter,
		CodeVoteVoterDead,
		CodeVoteVoterSilenced,
		CodeVoteAlreadyCast,
		CodeVoteUnknownTarget,
		CodeVoteTargetDead,
		CodeVoteSelf:
		return ClassInvalidVote

	case CodePhaseMismatch,
		CodeGameOver:
		return ClassInvalidPhase

	default:
		return ClassUnknown
	}
}

// String returns the family name used in logs and scenario assertions.
func (c Class) String() string {
	switch c {
	case ClassInvalidSubmission:
		return "INVALID_SUBMISSION"
	case ClassRoster:
		return "ROSTER_ERROR"
	case ClassInsufficientPlayers:
		return "INSUFFICIENT_PLAYERS"
	case ClassInvalidVote:
		return "INVALID_VOTE"
	case ClassInvalidPhase:
		return "INVALID_PHASE"
	default:
		return "UNKNOWN"
	}
}
