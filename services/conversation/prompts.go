package conversation

// Bot-side script text. The restart keywords are matched as whole inputs,
// case-insensitively, at every stage.
const (
	msgGreeting   = "Hi! How may I assist you?"
	msgRestarted  = "Conversation restarted. Hi! How may I assist you?"
	msgIntentHelp = "I can help you book an appointment. Please say 'Book an appointment' to start."
	msgAskPurpose = "What is the purpose of the appointment?"
	msgAskDateFmt = "Great! You want to create an event for '%s'. What is the date? (DD-MM-YYYY)"
	msgAskStart   = "What is the start time? (HH:MM AM/PM)"
	msgAskEnd     = "What is the end time? (HH:MM AM/PM)"

	msgInvalidDateFmt = "Invalid date format: %s Please enter the date in DD-MM-YYYY format."
	msgInvalidTime    = "Invalid time format. Please enter the time in HH:MM AM/PM format (e.g., 02:30 PM)."
	msgInvalidEndFmt  = "Invalid time: %s Please enter a valid end time in HH:MM AM/PM format."
	msgGatewayErrFmt  = "Error: %v Please enter the end time again to retry. (HH:MM AM/PM)"

	msgCreatedFmt = "Event %q created successfully!"
	msgAskAnother = "Do you need to book any other appointments? (yes/no)"
	msgYesOrNo    = "Please answer with 'yes' or 'no'."
	msgGoodbye    = "Thank you! Have a nice day."
	msgEnded      = "This conversation has ended. Type 'restart' to book another appointment."
)

var restartKeywords = []string{"restart", "start over", "reset"}
