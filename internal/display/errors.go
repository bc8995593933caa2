package display

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"syscall"

	"github.com/tidworth/sicp/internal/protocol"
)

// Error types for display communication operations

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeNetwork indicates a network-level error (connection refused, timeout, etc.)
	ErrTypeNetwork ErrorType = iota
	// ErrTypeTimeout indicates the display did not answer in time
	ErrTypeTimeout
	// ErrTypeConnectionRefused indicates the display refused the connection
	ErrTypeConnectionRefused
	// ErrTypeDNS indicates a DNS resolution failure
	ErrTypeDNS
	// ErrTypeNotSupported indicates the display answered NAV: the command is
	// not supported or not available in the current state
	ErrTypeNotSupported
	// ErrTypeChecksumFormat indicates the display answered NACK: it rejected
	// the request as corrupt or ill-formed
	ErrTypeChecksumFormat
	// ErrTypeMalformed indicates the display's reply could not be decoded
	ErrTypeMalformed
	// ErrTypeValidation indicates an invalid argument caught before any I/O
	ErrTypeValidation
	// ErrTypeUnknownValue indicates a label that resolves in no value domain
	ErrTypeUnknownValue
	// ErrTypeUnknown indicates an unknown or unexpected error
	ErrTypeUnknown
)

// NetworkErrorSubtype provides more specific network error classification
type NetworkErrorSubtype int

const (
	NetworkErrorGeneral NetworkErrorSubtype = iota
	NetworkErrorTimeout
	NetworkErrorConnectionRefused
	NetworkErrorDNS
	NetworkErrorHostUnreachable
	NetworkErrorNetworkUnreachable
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeConnectionRefused:
		return "Connection Refused"
	case ErrTypeDNS:
		return "DNS Error"
	case ErrTypeNotSupported:
		return "Not Supported"
	case ErrTypeChecksumFormat:
		return "Checksum/Format Error"
	case ErrTypeMalformed:
		return "Malformed Response"
	case ErrTypeValidation:
		return "Validation Error"
	case ErrTypeUnknownValue:
		return "Unknown Value"
	case ErrTypeUnknown:
		return "Unknown Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// DisplayError represents an error that occurred while talking to a display
type DisplayError struct {
	Type           ErrorType           // Category of error
	Message        string              // Human-readable error message
	Command        byte                // SICP opcode in flight (if applicable)
	Err            error               // Underlying error (if any)
	NetworkSubtype NetworkErrorSubtype // More specific network error type
	Addr           string              // Display address (for context)
	Retryable      bool                // Whether the error is retryable
}

// Error implements the error interface
func (e *DisplayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *DisplayError) Unwrap() error {
	return e.Err
}

// ClassifyNetworkError analyzes an error and returns a more specific error type
func ClassifyNetworkError(err error, addr string) *DisplayError {
	if err == nil {
		return nil
	}

	// Check for timeout errors. os.IsTimeout does not unwrap, so the serial
	// transport's wrapped deadline error needs the errors.Is check.
	if os.IsTimeout(err) || errors.Is(err, os.ErrDeadlineExceeded) {
		return &DisplayError{
			Type:           ErrTypeTimeout,
			Message:        "Display did not respond in time",
			Err:            err,
			NetworkSubtype: NetworkErrorTimeout,
			Addr:           addr,
			Retryable:      true,
		}
	}

	// Check for DNS errors
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &DisplayError{
			Type:           ErrTypeDNS,
			Message:        fmt.Sprintf("DNS resolution failed for %s", dnsErr.Name),
			Err:            err,
			NetworkSubtype: NetworkErrorDNS,
			Addr:           addr,
			Retryable:      false,
		}
	}

	// Check for connection refused
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if errors.Is(opErr.Err, syscall.ECONNREFUSED) {
			return &DisplayError{
				Type:           ErrTypeConnectionRefused,
				Message:        "Display refused connection",
				Err:            err,
				NetworkSubtype: NetworkErrorConnectionRefused,
				Addr:           addr,
				Retryable:      true,
			}
		}
		if errors.Is(opErr.Err, syscall.EHOSTUNREACH) {
			return &DisplayError{
				Type:           ErrTypeNetwork,
				Message:        "Host unreachable",
				Err:            err,
				NetworkSubtype: NetworkErrorHostUnreachable,
				Addr:           addr,
				Retryable:      true,
			}
		}
		if errors.Is(opErr.Err, syscall.ENETUNREACH) {
			return &DisplayError{
				Type:           ErrTypeNetwork,
				Message:        "Network unreachable",
				Err:            err,
				NetworkSubtype: NetworkErrorNetworkUnreachable,
				Addr:           addr,
				Retryable:      true,
			}
		}
	}

	// Generic network error
	return &DisplayError{
		Type:           ErrTypeNetwork,
		Message:        "Network error occurred",
		Err:            err,
		NetworkSubtype: NetworkErrorGeneral,
		Addr:           addr,
		Retryable:      true,
	}
}

// NewNetworkError creates a network-level error with automatic classification
func NewNetworkError(message string, err error, addr string) *DisplayError {
	classified := ClassifyNetworkError(err, addr)
	if classified != nil {
		classified.Message = message
		return classified
	}
	return &DisplayError{
		Type:      ErrTypeNetwork,
		Message:   message,
		Err:       err,
		Addr:      addr,
		Retryable: true,
	}
}

// NewNotSupportedError creates an error for a NAV reply
func NewNotSupportedError(command byte) *DisplayError {
	return &DisplayError{
		Type:      ErrTypeNotSupported,
		Message:   fmt.Sprintf("%s not supported or not available", protocol.CommandName(command)),
		Command:   command,
		Retryable: false,
	}
}

// NewChecksumFormatError creates an error for a NACK reply
func NewChecksumFormatError(command byte) *DisplayError {
	return &DisplayError{
		Type:      ErrTypeChecksumFormat,
		Message:   fmt.Sprintf("display rejected %s (checksum or format error)", protocol.CommandName(command)),
		Command:   command,
		Retryable: false,
	}
}

// NewMalformedError creates an error for an undecodable reply
func NewMalformedError(command byte, message string) *DisplayError {
	return &DisplayError{
		Type:      ErrTypeMalformed,
		Message:   message,
		Command:   command,
		Retryable: false,
	}
}

// NewValidationError creates a validation error
func NewValidationError(message string) *DisplayError {
	return &DisplayError{
		Type:      ErrTypeValidation,
		Message:   message,
		Retryable: false,
	}
}

// NewUnknownValueError wraps a value-domain resolution failure
func NewUnknownValueError(err *protocol.UnknownValueError) *DisplayError {
	return &DisplayError{
		Type:      ErrTypeUnknownValue,
		Message:   err.Error(),
		Err:       err,
		Retryable: false,
	}
}

// IsNetworkError checks if an error is a network error (including timeout, connection refused, DNS, etc.)
func IsNetworkError(err error) bool {
	var dispErr *DisplayError
	if errors.As(err, &dispErr) {
		return dispErr.Type == ErrTypeNetwork ||
			dispErr.Type == ErrTypeTimeout ||
			dispErr.Type == ErrTypeConnectionRefused ||
			dispErr.Type == ErrTypeDNS
	}
	return false
}

// IsNotSupported checks if an error came from a NAV reply
func IsNotSupported(err error) bool {
	var dispErr *DisplayError
	if errors.As(err, &dispErr) {
		return dispErr.Type == ErrTypeNotSupported
	}
	return false
}

// IsChecksumFormatError checks if an error came from a NACK reply
func IsChecksumFormatError(err error) bool {
	var dispErr *DisplayError
	if errors.As(err, &dispErr) {
		return dispErr.Type == ErrTypeChecksumFormat
	}
	return false
}

// IsMalformedError checks if an error came from an undecodable reply
func IsMalformedError(err error) bool {
	var dispErr *DisplayError
	if errors.As(err, &dispErr) {
		return dispErr.Type == ErrTypeMalformed
	}
	return false
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	var dispErr *DisplayError
	if errors.As(err, &dispErr) {
		return dispErr.Type == ErrTypeValidation
	}
	return false
}

// IsUnknownValueError checks if an error is a value-domain resolution failure,
// whether wrapped in a DisplayError or raw from the protocol package
func IsUnknownValueError(err error) bool {
	var dispErr *DisplayError
	if errors.As(err, &dispErr) && dispErr.Type == ErrTypeUnknownValue {
		return true
	}
	var unknownErr *protocol.UnknownValueError
	return errors.As(err, &unknownErr)
}

// IsRetryable checks if an error should be retried
func IsRetryable(err error) bool {
	var dispErr *DisplayError
	if errors.As(err, &dispErr) {
		return dispErr.Retryable
	}
	// Unknown errors are not retryable by default
	return false
}

// GetTroubleshootingHint returns user-friendly troubleshooting advice for an error
func GetTroubleshootingHint(err error) string {
	var dispErr *DisplayError
	if !errors.As(err, &dispErr) {
		return "An unexpected error occurred. Please try again."
	}

	switch dispErr.Type {
	case ErrTypeTimeout:
		return strings.Join([]string{
			"The display did not respond in time.",
			"Troubleshooting:",
			"  • Check that the display is powered (standby still answers SICP)",
			"  • Verify the IP address and that port 5000 is reachable",
			"  • Some commands stall when the display is mid power transition - retry",
			"  • Try increasing the timeout in the display registry",
		}, "\n")

	case ErrTypeConnectionRefused:
		return strings.Join([]string{
			"The display refused the connection.",
			"Troubleshooting:",
			"  • Another controller may hold the SICP socket - displays accept one at a time",
			"  • Check that network control is enabled in the display's settings menu",
			"  • The display may be booting - wait a moment and retry",
		}, "\n")

	case ErrTypeDNS:
		return strings.Join([]string{
			"Could not resolve the display hostname.",
			"Troubleshooting:",
			"  • Use the IP address instead of hostname",
			"  • Check your network DNS settings",
		}, "\n")

	case ErrTypeNotSupported:
		return strings.Join([]string{
			"The display reported the command as not available (NAV).",
			"Troubleshooting:",
			"  • Some commands only work in a specific power state - try powering on first",
			"  • Video parameter commands need an external source with the menu active",
			"  • The feature may not exist on this model or firmware",
		}, "\n")

	case ErrTypeChecksumFormat:
		return strings.Join([]string{
			"The display rejected the request as corrupt (NACK).",
			"Troubleshooting:",
			"  • A flaky network link can corrupt frames - retry the command",
			"  • If it persists, the parameter bytes may be invalid for this model",
		}, "\n")

	case ErrTypeNetwork:
		hint := []string{"Network communication failed."}

		switch dispErr.NetworkSubtype {
		case NetworkErrorHostUnreachable:
			host := dispErr.Addr
			if h, _, splitErr := net.SplitHostPort(host); splitErr == nil {
				host = h
			}
			hint = append(hint, "The display is not reachable on the network.",
				"Troubleshooting:",
				"  • Verify the display IP address is correct",
				"  • Check that you're on the same network as the display",
				"  • Try pinging the display: ping "+host)

		case NetworkErrorNetworkUnreachable:
			hint = append(hint, "Your computer cannot reach the display's network.",
				"Troubleshooting:",
				"  • Check your network adapter settings",
				"  • Verify the route to the display's subnet")

		default:
			hint = append(hint, "Troubleshooting:",
				"  • Check your network connection",
				"  • Verify the display is powered on",
				"  • Ensure port 5000 is not blocked by a firewall")
		}

		return strings.Join(hint, "\n")

	case ErrTypeMalformed:
		return strings.Join([]string{
			"Failed to decode the display's reply.",
			"Troubleshooting:",
			"  • Enable debug logging to capture the raw frame",
			"  • Some firmware revisions echo the opcode or truncate replies",
		}, "\n")

	case ErrTypeValidation, ErrTypeUnknownValue:
		return "The command arguments are invalid. Check the error message for details."

	default:
		return "An error occurred. Please check the error message for details."
	}
}

// GetShortErrorMessage returns a concise, user-friendly error message
func GetShortErrorMessage(err error) string {
	var dispErr *DisplayError
	if !errors.As(err, &dispErr) {
		return err.Error()
	}

	switch dispErr.Type {
	case ErrTypeTimeout:
		return "Display not responding (timeout)"
	case ErrTypeConnectionRefused:
		return "Display refused connection - another controller active?"
	case ErrTypeDNS:
		return "Cannot resolve display hostname"
	case ErrTypeNotSupported:
		return "Command not supported by this display"
	case ErrTypeChecksumFormat:
		return "Display rejected request (checksum/format)"
	case ErrTypeNetwork:
		switch dispErr.NetworkSubtype {
		case NetworkErrorHostUnreachable:
			return "Display unreachable - check network connection"
		case NetworkErrorNetworkUnreachable:
			return "Network unreachable - check routing"
		default:
			return "Network error - check connection"
		}
	case ErrTypeMalformed:
		return "Could not decode display response"
	default:
		return dispErr.Message
	}
}
