// internal/domain/homework/homework.go
package homework

// Status is the review state reported by the Practicum API.
type Status string

const (
	StatusApproved  Status = "approved"
	StatusReviewing Status = "reviewing"
	StatusRejected  Status = "rejected"
)

// Keys of a homework object in the API response.
const (
	KeyName   = "homework_name"
	KeyStatus = "status"
)

// verdicts is the notification text per known status.
var verdicts = map[Status]string{
	StatusApproved:  "Работа проверена: ревьюеру всё понравилось. Ура!",
	StatusReviewing: "Работа взята на проверку ревьюером.",
	StatusRejected:  "Работа проверена: у ревьюера есть замечания.",
}

// Verdict returns the verdict text for s and whether s is known.
func Verdict(s Status) (string, bool) {
	v, ok := verdicts[s]
	return v, ok
}

// Record is one homework object from the "homeworks" array.
type Record map[string]any
