package homework

import "fmt"

// Format renders the status-change message for rec.
// Records with a missing key or an unknown status are rejected here so they never reach the chat.
func Format(rec Record) (string, error) {
	name, ok := rec[KeyName].(string)
	if !ok {
		return "", MissingFieldError(KeyName)
	}
	status, ok := rec[KeyStatus].(string)
	if !ok {
		return "", MissingFieldError(KeyStatus)
	}
	verdict, known := Verdict(Status(status))
	if !known {
		return "", UnknownStatusError(status)
	}
	return fmt.Sprintf("Изменился статус проверки работы \"%s\". %s", name, verdict), nil
}
