package llm

// GenerateParams holds tuning parameters for completion requests.
type GenerateParams struct {
	// MaxTokens caps generated length. 0 means no limit.
	MaxTokens int

	// Temperature controls output randomness. Kept low so answers stay close
	// to the supplied context.
	Temperature float32
}

// DefaultGenerateParams returns the standard parameters.
func DefaultGenerateParams() GenerateParams {
	return GenerateParams{
		MaxTokens:   1024,
		Temperature: 0.2,
	}
}
