package constants

import "time"

// Context keys
const (
	ContextKeyUserID = "user_id"
	ContextKeyTaskID = "task_id"
)

// Task defaults and well-known tag values
const (
	DefaultTaskPriority = "medium"
	DefaultTaskStatus   = "active"
	TaskStatusCompleted = "completed"
	TaskPriorityHigh    = "high"
)

// Bot-check challenge parameters. Operands are drawn from [Min, Min+Span).
const (
	ChallengeOperand1Min  = 5
	ChallengeOperand1Span = 10
	ChallengeOperand2Min  = 2
	ChallengeOperand2Span = 10

	DefaultChallengeTTL = 5 * time.Minute
)

// MockToken is returned by signup and login. It carries no meaning; the
// server-side session holder is the only source of identity.
const MockToken = "mock-token"

// DateLayout is the wire format of task due dates.
const DateLayout = "2006-01-02"

// Credential limits. bcrypt ignores input past 72 bytes and refuses to hash it,
// and usernames must fit the varchar(255) column.
const (
	MaxUsernameLength = 255
	MaxPasswordBytes  = 72
)
