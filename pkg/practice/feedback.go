package practice

// FeedbackLevel is the qualitative tier derived from a score.
type FeedbackLevel string

const (
	Neutral FeedbackLevel = "neutral"
	Success FeedbackLevel = "success"
	Warning FeedbackLevel = "warning"
	Danger  FeedbackLevel = "danger"
)

const (
	successThreshold = 80
	warningThreshold = 60
)

// FeedbackFor maps a score onto a feedback level. Neutral is never returned;
// it only marks a session that has no score yet.
func FeedbackFor(score float64) FeedbackLevel {
	switch {
	case score >= successThreshold:
		return Success
	case score >= warningThreshold:
		return Warning
	default:
		return Danger
	}
}

// Color names the badge color family used to render a value.
type Color string

const (
	Green  Color = "green"
	Yellow Color = "yellow"
	Red    Color = "red"
	Gray   Color = "gray"
)

// DifficultyColor returns the badge color for a difficulty.
func DifficultyColor(d Difficulty) Color {
	switch d {
	case Beginner:
		return Green
	case Intermediate:
		return Yellow
	case Advanced:
		return Red
	default:
		return Gray
	}
}
