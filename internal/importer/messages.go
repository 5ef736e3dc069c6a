package importer

// messages.go translates technical errors into user-facing messages with
// support codes. Patterns are matched case-insensitively with
// strings.Contains; the first match wins, so specific patterns sit above
// general ones.

import "strings"

// UserMessage is user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string `json:"message"`
	Action  string `json:"action"`
	Code    string `json:"code"`
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// File and parse errors (FILE001-FILE099)
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds the maximum upload size",
			Action:  "Export a smaller range or split the file",
			Code:    "FILE001",
		},
	},
	{
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "File could not be read as delimited text",
			Action:  "Export the sheet as CSV and try again",
			Code:    "FILE002",
		},
	},
	{
		pattern: "invalid workbook",
		msg: UserMessage{
			Message: "File could not be read as an Excel workbook",
			Action:  "Save as .xlsx or export as CSV and try again",
			Code:    "FILE003",
		},
	},
	{
		pattern: "no data rows",
		msg: UserMessage{
			Message: "File contains headers but no data rows",
			Action:  "Check that the export includes result rows",
			Code:    "FILE004",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "File is empty",
			Action:  "Check the export and try again",
			Code:    "FILE005",
		},
	},
	{
		pattern: "missing file",
		msg: UserMessage{
			Message: "No file was attached to the upload",
			Action:  "Attach the spreadsheet under the \"file\" form field",
			Code:    "FILE006",
		},
	},

	// Import session errors (IMP001-IMP099)
	{
		pattern: "import not found",
		msg: UserMessage{
			Message: "Import session not found",
			Action:  "The session may have expired. Upload the file again",
			Code:    "IMP001",
		},
	},
	{
		pattern: "already committed",
		msg: UserMessage{
			Message: "This import has already been committed",
			Action:  "Start a new import to load more results",
			Code:    "IMP002",
		},
	},
	{
		pattern: "rows failed validation",
		msg: UserMessage{
			Message: "Some rows failed validation",
			Action:  "Fix the mapping or source rows, or commit with force to skip them",
			Code:    "IMP003",
		},
	},
	{
		pattern: "unknown target field",
		msg: UserMessage{
			Message: "The mapping names a target field that does not exist",
			Action:  "Fetch /api/schema for the list of valid fields",
			Code:    "IMP005",
		},
	},
	{
		pattern: "malformed",
		msg: UserMessage{
			Message: "The request body could not be read",
			Action:  "Check the request format and try again",
			Code:    "REQ003",
		},
	},
	{
		pattern: "too many imports",
		msg: UserMessage{
			Message: "Too many imports in progress",
			Action:  "Wait a moment and try again",
			Code:    "IMP004",
		},
	},

	// Database errors (DB001-DB099)
	{
		pattern: "foreign key",
		msg: UserMessage{
			Message: "A record references an athlete that no longer exists",
			Action:  "Refresh the roster and validate again",
			Code:    "DB001",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to reach the database",
			Action:  "Try again in a few moments",
			Code:    "DB002",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "The operation timed out",
			Action:  "Try a smaller file or try again later",
			Code:    "DB003",
		},
	},

	// Request lifecycle (REQ001-REQ099)
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "The request was cancelled",
			Action:  "Try again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "The request timed out",
			Action:  "Try a smaller file or check your connection",
			Code:    "REQ002",
		},
	},
}

// TranslateError maps a technical error to a UserMessage. Unmatched errors
// fall back to a generic message with code ERR000; the technical detail
// belongs in logs, not in the response.
func TranslateError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}
	lower := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(lower, ep.pattern) {
			return ep.msg
		}
	}
	return UserMessage{
		Message: "An unexpected error occurred",
		Action:  "Try again or contact support",
		Code:    "ERR000",
	}
}
