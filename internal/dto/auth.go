package dto

// ChallengeDTO is returned by signup. The answer stays on the server.
type ChallengeDTO struct {
	ChallengeID string `json:"challengeId"`
	Num1        int    `json:"num1"`
	Num2        int    `json:"num2"`
}

// AuthResponse is returned by a successful challenge submission or login.
type AuthResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}
