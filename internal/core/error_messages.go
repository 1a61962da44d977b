package core

// error_messages.go maps technical errors to user-facing messages with codes
// that can be quoted to support.
//
// Classified errors (*Error) map by kind and keep their own message, since
// those messages are written for the caller (for example the list of missing
// CSV columns). Anything else is matched against known substrings.
//
//	VAL004  - Import is missing required columns or is not readable CSV
//	VAL007  - Contact failed validation (email address)
//	REG001  - County is not in the canonical list
//	STO001  - Contact storage could not be read or written
//	FILE001 - Import payload exceeds the size limit
//	FILE002 - Payload is not valid CSV
//	FILE004 - No file in the upload form
//	FILE006 - Uploaded file is not a .csv
//	IMP001  - Too many imports in progress
//	REQ001  - Request was cancelled
//	REQ002  - Request timed out
//	REQ003  - Request body is not valid JSON
//	RATE001 - Too many requests
//	ERR000  - Anything else; check server logs

import (
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

var kindMessages = map[ErrorKind]UserMessage{
	KindMalformedInput: {
		Message: "The import file is not in the expected format",
		Action:  "Use the header row county,name,phone,email",
		Code:    "VAL004",
	},
	KindInvalidContact: {
		Message: "The contact details are not valid",
		Action:  "Check the email address",
		Code:    "VAL007",
	},
	KindUnknownKey: {
		Message: "Unknown county",
		Action:  "Use a county name from the county list",
		Code:    "REG001",
	},
	KindStorageUnavailable: {
		Message: "Contacts could not be saved or loaded",
		Action:  "Please try again in a few moments",
		Code:    "STO001",
	},
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns are matched case-insensitively with strings.Contains.
// The first match wins, so specific patterns go before general ones.
var errorPatterns = []errorPattern{
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds the maximum import size",
			Action:  "Split the file into smaller chunks",
			Code:    "FILE001",
		},
	},
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "File exceeds the maximum import size",
			Action:  "Split the file into smaller chunks",
			Code:    "FILE001",
		},
	},
	{
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "File is not a valid CSV",
			Action:  "Ensure file is comma-separated with consistent quoting",
			Code:    "FILE002",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Please select a CSV file to upload",
			Code:    "FILE004",
		},
	},
	{
		pattern: "upload a csv file",
		msg: UserMessage{
			Message: "Upload a CSV file",
			Action:  "Save the spreadsheet as .csv and try again",
			Code:    "FILE006",
		},
	},
	{
		pattern: "invalid request body",
		msg: UserMessage{
			Message: "Request body is not valid JSON",
			Action:  "Send a JSON object with name, phone and email",
			Code:    "REQ003",
		},
	},
	{
		pattern: "too many imports",
		msg: UserMessage{
			Message: "System is busy processing other imports",
			Action:  "Please wait a moment and try again",
			Code:    "IMP001",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try a smaller file or check your connection",
			Code:    "REQ002",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts an error to a user-friendly message.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var e *Error
	if errors.As(err, &e) {
		if msg, ok := kindMessages[e.Kind]; ok {
			// Storage messages can carry paths or connection details.
			if e.Message != "" && e.Kind != KindStorageUnavailable {
				msg.Message = e.Message
			}
			return msg
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError formats err as "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to something more specific than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
