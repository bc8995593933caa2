package display

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"syscall"
	"testing"

	"github.com/tidworth/sicp/internal/protocol"
)

func TestClassifyNetworkError_Timeout(t *testing.T) {
	err := &net.OpError{
		Op:  "read",
		Net: "tcp",
		Err: &timeoutError{},
	}

	dispErr := ClassifyNetworkError(err, "192.168.45.210:5000")

	if dispErr == nil {
		t.Fatal("Expected DisplayError, got nil")
	}

	if dispErr.Type != ErrTypeTimeout {
		t.Errorf("Expected error type %v, got %v", ErrTypeTimeout, dispErr.Type)
	}

	if dispErr.NetworkSubtype != NetworkErrorTimeout {
		t.Errorf("Expected network subtype %v, got %v", NetworkErrorTimeout, dispErr.NetworkSubtype)
	}

	if !dispErr.Retryable {
		t.Error("Expected timeout error to be retryable")
	}
}

func TestClassifyNetworkError_WrappedDeadline(t *testing.T) {
	// the serial transport reports a silent display as a wrapped deadline error
	err := fmt.Errorf("no reply from /dev/ttyUSB0: %w", os.ErrDeadlineExceeded)

	dispErr := ClassifyNetworkError(err, "/dev/ttyUSB0")

	if dispErr.Type != ErrTypeTimeout {
		t.Errorf("Expected error type %v, got %v", ErrTypeTimeout, dispErr.Type)
	}

	if !dispErr.Retryable {
		t.Error("Expected wrapped deadline error to be retryable")
	}
}

func TestClassifyNetworkError_ConnectionRefused(t *testing.T) {
	err := &net.OpError{
		Op:  "dial",
		Net: "tcp",
		Err: syscall.ECONNREFUSED,
	}

	dispErr := ClassifyNetworkError(err, "192.168.45.210:5000")

	if dispErr == nil {
		t.Fatal("Expected DisplayError, got nil")
	}

	if dispErr.Type != ErrTypeConnectionRefused {
		t.Errorf("Expected error type %v, got %v", ErrTypeConnectionRefused, dispErr.Type)
	}

	if !dispErr.Retryable {
		t.Error("Expected connection refused error to be retryable")
	}
}

func TestClassifyNetworkError_DNS(t *testing.T) {
	err := &net.DNSError{
		Err:        "no such host",
		Name:       "display.invalid",
		IsNotFound: true,
	}

	dispErr := ClassifyNetworkError(err, "display.invalid:5000")

	if dispErr == nil {
		t.Fatal("Expected DisplayError, got nil")
	}

	if dispErr.Type != ErrTypeDNS {
		t.Errorf("Expected error type %v, got %v", ErrTypeDNS, dispErr.Type)
	}

	if dispErr.Retryable {
		t.Error("Expected DNS error to be non-retryable")
	}
}

func TestClassifyNetworkError_HostUnreachable(t *testing.T) {
	err := &net.OpError{
		Op:  "dial",
		Net: "tcp",
		Err: syscall.EHOSTUNREACH,
	}

	dispErr := ClassifyNetworkError(err, "192.168.45.210:5000")

	if dispErr == nil {
		t.Fatal("Expected DisplayError, got nil")
	}

	if dispErr.Type != ErrTypeNetwork {
		t.Errorf("Expected error type %v, got %v", ErrTypeNetwork, dispErr.Type)
	}

	if dispErr.NetworkSubtype != NetworkErrorHostUnreachable {
		t.Errorf("Expected network subtype %v, got %v", NetworkErrorHostUnreachable, dispErr.NetworkSubtype)
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("socket closed")
	err := NewNetworkError("PowerStateGet failed", cause, "192.168.45.210:5000")

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestIsHelpers(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		want  bool
	}{
		{"nav error detected", NewNotSupportedError(0x6D), IsNotSupported, true},
		{"nav error is not network", NewNotSupportedError(0x6D), IsNetworkError, false},
		{"nack error detected", NewChecksumFormatError(0x18), IsChecksumFormatError, true},
		{"malformed detected", NewMalformedError(0x19, "empty data payload"), IsMalformedError, true},
		{"validation detected", NewValidationError("volume must be between 0 and 100"), IsValidationError, true},
		{"network detected", NewNetworkError("send failed", errors.New("broken pipe"), "x:5000"), IsNetworkError, true},
		{"bare domain resolution failure detected", &protocol.UnknownValueError{Domain: "input source", Value: "hdmi9"}, IsUnknownValueError, true},
		{"wrapped domain resolution failure detected", NewUnknownValueError(&protocol.UnknownValueError{Domain: "input source", Value: "hdmi9"}), IsUnknownValueError, true},
		{"plain error matches nothing", errors.New("whatever"), IsNetworkError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.check(tt.err); got != tt.want {
				t.Errorf("check(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{
			name:      "network error is retryable",
			err:       NewNetworkError("send failed", errors.New("broken pipe"), "x:5000"),
			retryable: true,
		},
		{
			name:      "NAV is not retryable",
			err:       NewNotSupportedError(0x6D),
			retryable: false,
		},
		{
			name:      "validation error is not retryable",
			err:       NewValidationError("bad argument"),
			retryable: false,
		},
		{
			name:      "unknown error is not retryable",
			err:       errors.New("unknown error"),
			retryable: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.retryable {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.retryable)
			}
		})
	}
}

func TestGetShortErrorMessage(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedText string
	}{
		{
			name:         "timeout",
			err:          &DisplayError{Type: ErrTypeTimeout},
			expectedText: "Display not responding (timeout)",
		},
		{
			name:         "connection refused",
			err:          &DisplayError{Type: ErrTypeConnectionRefused},
			expectedText: "Display refused connection - another controller active?",
		},
		{
			name:         "not supported",
			err:          &DisplayError{Type: ErrTypeNotSupported},
			expectedText: "Command not supported by this display",
		},
		{
			name:         "checksum/format",
			err:          &DisplayError{Type: ErrTypeChecksumFormat},
			expectedText: "Display rejected request (checksum/format)",
		},
		{
			name: "host unreachable",
			err: &DisplayError{
				Type:           ErrTypeNetwork,
				NetworkSubtype: NetworkErrorHostUnreachable,
			},
			expectedText: "Display unreachable - check network connection",
		},
		{
			name:         "validation passes message through",
			err:          &DisplayError{Type: ErrTypeValidation, Message: "volume must be between 0 and 100"},
			expectedText: "volume must be between 0 and 100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetShortErrorMessage(tt.err)
			if got != tt.expectedText {
				t.Errorf("GetShortErrorMessage() = %q, want %q", got, tt.expectedText)
			}
		})
	}
}

func TestGetTroubleshootingHint(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		expectedTexts []string
	}{
		{
			name: "timeout",
			err:  &DisplayError{Type: ErrTypeTimeout},
			expectedTexts: []string{
				"did not respond in time",
				"Troubleshooting:",
				"port 5000",
			},
		},
		{
			name: "connection refused",
			err:  &DisplayError{Type: ErrTypeConnectionRefused},
			expectedTexts: []string{
				"refused the connection",
				"one at a time",
				"network control is enabled",
			},
		},
		{
			name: "not supported",
			err:  &DisplayError{Type: ErrTypeNotSupported},
			expectedTexts: []string{
				"not available (NAV)",
				"power state",
				"model or firmware",
			},
		},
		{
			name: "nack",
			err:  &DisplayError{Type: ErrTypeChecksumFormat},
			expectedTexts: []string{
				"rejected the request as corrupt",
				"retry the command",
			},
		},
		{
			name: "host unreachable",
			err: &DisplayError{
				Type:           ErrTypeNetwork,
				NetworkSubtype: NetworkErrorHostUnreachable,
				Addr:           "192.168.45.210:5000",
			},
			expectedTexts: []string{
				"not reachable",
				"ping 192.168.45.210",
				"same network",
			},
		},
		{
			name: "malformed",
			err:  &DisplayError{Type: ErrTypeMalformed},
			expectedTexts: []string{
				"Failed to decode",
				"debug logging",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hint := GetTroubleshootingHint(tt.err)

			for _, expectedText := range tt.expectedTexts {
				if !strings.Contains(hint, expectedText) {
					t.Errorf("GetTroubleshootingHint() missing expected text %q\nGot: %s", expectedText, hint)
				}
			}
		})
	}
}

func TestErrorTypeString(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		expected  string
	}{
		{ErrTypeNetwork, "Network Error"},
		{ErrTypeTimeout, "Timeout"},
		{ErrTypeConnectionRefused, "Connection Refused"},
		{ErrTypeDNS, "DNS Error"},
		{ErrTypeNotSupported, "Not Supported"},
		{ErrTypeChecksumFormat, "Checksum/Format Error"},
		{ErrTypeMalformed, "Malformed Response"},
		{ErrTypeValidation, "Validation Error"},
		{ErrTypeUnknownValue, "Unknown Value"},
		{ErrTypeUnknown, "Unknown Error"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.errorType.String(); got != tt.expected {
				t.Errorf("ErrorType.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

// timeoutError is a mock error that implements timeout behavior
type timeoutError struct{}

func (e *timeoutError) Error() string   { return "i/o timeout" }
func (e *timeoutError) Timeout() bool   { return true }
func (e *timeoutError) Temporary() bool { return true }
