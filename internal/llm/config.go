package llm

// GenerationType identifies which chart kind a generation request targets.
type GenerationType string

const (
	TypeGantt GenerationType = "gantt"
	TypeRACI  GenerationType = "raci"
)

// Config holds the chat-completion client settings.
type Config struct {
	Endpoint    string // base URL of an OpenAI-compatible API
	APIKey      string
	Model       string
	Temperature float64
	TimeoutMs   int
	MaxRetries  int
}

// DefaultConfig returns a Config with the defaults the service ships with.
// The API key always comes from deployment configuration.
func DefaultConfig() Config {
	return Config{
		Endpoint:    "https://api.openai.com/v1",
		Model:       "gpt-4",
		Temperature: 0.3,
		TimeoutMs:   30000,
		MaxRetries:  1,
	}
}
