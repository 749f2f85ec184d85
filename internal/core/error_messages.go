// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support reference.
// Error codes are grouped by category:
//
// # CSV Import Errors (CSV001-CSV099)
//
//	CSV001 - Malformed file: fewer than two non-blank lines
//	         Patterns: "at least a header row"
//	CSV002 - Missing name column: no header matches name/company_name/business_name/company
//	         Patterns: "name/company_name column"
//	CSV003 - Nothing to import: every row was short or had a blank name
//	         Patterns: "no valid supplier data"
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large      Patterns: "file too large"
//	FILE002 - Not a CSV file      Patterns: "invalid file type"
//	FILE004 - No file             Patterns: "no file provided"
//
// # Supplier and Enquiry Errors (SUP001-SUP099, LEAD001-LEAD099)
//
//	SUP001  - Supplier not found  Patterns: "supplier not found"
//	SUP002  - Invalid supplier    Patterns: "invalid supplier"
//	LEAD001 - Invalid enquiry     Patterns: "invalid enquiry"
//
// # Auth Errors (AUTH001-AUTH099)
//
//	AUTH001 - Bad credentials     Patterns: "invalid credentials"
//	AUTH002 - Not signed in       Patterns: "unauthorized"
//
// # Import, Database, Request Errors
//
//	IMP001  - Too many imports    Patterns: "too many concurrent imports"
//	DB001   - Duplicate key       Patterns: "duplicate key"
//	DB004   - Connection refused  Patterns: "connection refused"
//	REQ001  - Bad request body    Patterns: "invalid request body"
//	UPL004  - Request cancelled   Patterns: "context canceled"
//	UPL005  - Request timeout     Patterns: "context deadline exceeded"
//	RATE001 - Rate limited        Patterns: "rate limit"
//
// # Default Error (ERR000)
//
// Fallback when no specific pattern matches. Check the server log for the
// technical error; it is logged with the request id.
//
// Typed errors (*ParseError kinds and the package sentinels) are classified
// with errors.As/errors.Is first, so wrapping text such as an uploaded file
// name never changes the code. Patterns are the fallback: matched
// case-insensitively with strings.Contains, first match wins, so specific
// patterns come before general ones.

package core

import (
	"context"
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

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// =========================================================================
	// CSV Import Errors (CSV001-CSV003)
	// =========================================================================
	{
		pattern: "at least a header row",
		msg: UserMessage{
			Message: "CSV must contain at least a header row and one data row",
			Action:  "Add a header row followed by one supplier per line",
			Code:    "CSV001",
		},
	},
	{
		pattern: "name/company_name column",
		msg: UserMessage{
			Message: "CSV must contain a name/company_name column",
			Action:  "Add a column headed name, company_name, business_name or company",
			Code:    "CSV002",
		},
	},
	{
		pattern: "no valid supplier data",
		msg: UserMessage{
			Message: "No valid supplier data found in CSV",
			Action:  "Check that rows have a name and as many cells as the header",
			Code:    "CSV003",
		},
	},

	// =========================================================================
	// File Errors (FILE001-FILE004)
	// =========================================================================
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File size must be less than 5MB",
			Action:  "Split the file into smaller chunks",
			Code:    "FILE001",
		},
	},
	{
		pattern: "invalid file type",
		msg: UserMessage{
			Message: "Please upload a CSV file",
			Action:  "Save the spreadsheet as .csv and try again",
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

	// =========================================================================
	// Supplier and Enquiry Errors
	// =========================================================================
	{
		pattern: "supplier not found",
		msg: UserMessage{
			Message: "Supplier not found",
			Action:  "The supplier may have been removed. Return to the directory",
			Code:    "SUP001",
		},
	},
	{
		pattern: "invalid supplier",
		msg: UserMessage{
			Message: "Supplier details are incomplete or invalid",
			Action:  "A name is required and the email must be valid",
			Code:    "SUP002",
		},
	},
	{
		pattern: "invalid enquiry",
		msg: UserMessage{
			Message: "Please complete all required fields",
			Action:  "Check your name, email address and message",
			Code:    "LEAD001",
		},
	},

	// =========================================================================
	// Auth Errors (AUTH001-AUTH002)
	// =========================================================================
	{
		pattern: "invalid credentials",
		msg: UserMessage{
			Message: "Invalid username or password",
			Action:  "Check your credentials and try again",
			Code:    "AUTH001",
		},
	},
	{
		pattern: "unauthorized",
		msg: UserMessage{
			Message: "You need to sign in to do that",
			Action:  "Sign in to the admin console",
			Code:    "AUTH002",
		},
	},

	// =========================================================================
	// Import, Database and Request Errors
	// =========================================================================
	{
		pattern: "too many concurrent imports",
		msg: UserMessage{
			Message: "System is busy processing other imports",
			Action:  "Please wait a moment and try again",
			Code:    "IMP001",
		},
	},
	{
		pattern: "duplicate key",
		msg: UserMessage{
			Message: "A supplier with this ID already exists",
			Action:  "Review your data for duplicates",
			Code:    "DB001",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to database",
			Action:  "Please try again in a few moments",
			Code:    "DB004",
		},
	},
	{
		pattern: "invalid request body",
		msg: UserMessage{
			Message: "The request could not be read",
			Action:  "Send a valid JSON body",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "UPL004",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try a smaller file or check your connection",
			Code:    "UPL005",
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

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// If no pattern matches, a generic fallback with code ERR000 is returned.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	if code := typedCode(err); code != "" {
		return messageForCode(code)
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// typedCode returns the code for errors recognised by type, or "".
func typedCode(err error) string {
	var pe *ParseError
	if errors.As(err, &pe) {
		switch pe.Kind {
		case KindMalformedInput:
			return "CSV001"
		case KindSchema:
			return "CSV002"
		case KindEmptyResult:
			return "CSV003"
		}
	}

	switch {
	case errors.Is(err, ErrFileTooLarge):
		return "FILE001"
	case errors.Is(err, ErrNotCSV):
		return "FILE002"
	case errors.Is(err, ErrNoFile):
		return "FILE004"
	case errors.Is(err, ErrNotFound):
		return "SUP001"
	case errors.Is(err, ErrTooManyImports):
		return "IMP001"
	case errors.Is(err, context.Canceled):
		return "UPL004"
	case errors.Is(err, context.DeadlineExceeded):
		return "UPL005"
	}
	return ""
}

func messageForCode(code string) UserMessage {
	for _, ep := range errorPatterns {
		if ep.msg.Code == code {
			return ep.msg
		}
	}
	return defaultMessage
}

// FormatUserError creates a formatted error string for display:
// "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matches a known pattern rather than
// the ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
