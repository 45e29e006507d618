package conversation

// FormatError reports a date or time string that does not match the format
// the script asked for. Always recovered locally: the offending turn is
// rolled back and the prompt re-issued.
type FormatError struct {
	Message string
}

func (e *FormatError) Error() string { return e.Message }

// OrderError reports an end time that is not after the start time.
// Recovered the same way as a FormatError.
type OrderError struct {
	Message string
}

func (e *OrderError) Error() string { return e.Message }

const (
	dateFormatMsg = "Date must be in DD-MM-YYYY format."
	timeFormatMsg = "Time must be in HH:MM AM/PM format."
	orderMsg      = "End time must be after start time."
)
