// Package errors maps failures to user-facing messages and suggestions.
package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"

	"github.com/tessro/aiosctl/internal/aios"
)

// Error types for common failure scenarios.
var (
	ErrNoHost                = errors.New("no device host configured")
	ErrVolumeControlInternal = errors.New("volume is controlled by the player, not the receiver")
	ErrNotSetUp              = errors.New("device identity unavailable")
	ErrConfigNotFound        = errors.New("config file not found")
	ErrInvalidConfig         = errors.New("invalid configuration")
)

// SuggestedError wraps an error with a user-friendly suggestion.
type SuggestedError struct {
	Err        error
	Suggestion string
}

func (e *SuggestedError) Error() string {
	return e.Err.Error()
}

func (e *SuggestedError) Unwrap() error {
	return e.Err
}

// WithSuggestion wraps an error with a helpful suggestion.
func WithSuggestion(err error, suggestion string) error {
	return &SuggestedError{
		Err:        err,
		Suggestion: suggestion,
	}
}

// GetSuggestion returns a suggestion for the given error.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	// Check if it's already a SuggestedError with suggestion
	var suggested *SuggestedError
	if errors.As(err, &suggested) && suggested.Suggestion != "" {
		return suggested.Suggestion
	}

	// Configuration
	if errors.Is(err, ErrNoHost) {
		return "Set device.host with 'aiosctl config set device.host <ip>' or export AIOS_HOST"
	}
	if errors.Is(err, ErrVolumeControlInternal) {
		return "Run 'aiosctl config set device.volume_control external' to nudge the receiver volume"
	}
	if errors.Is(err, ErrConfigNotFound) {
		return "Run 'aiosctl config init' to create a configuration file"
	}
	if errors.Is(err, ErrInvalidConfig) {
		return "Run 'aiosctl config show' and fix the reported values"
	}
	if errors.Is(err, ErrNotSetUp) {
		return "Run 'aiosctl info' to read the receiver's device description"
	}

	// Device replies
	var transportErr *aios.TransportError
	if errors.As(err, &transportErr) {
		if transportErr.StatusCode >= 500 {
			return "The receiver rejected the command. It may not support this action in its current input or power state"
		}
		return "The receiver did not recognize the request. Check that device.host points at a Denon AIOS receiver"
	}
	var malformedErr *aios.MalformedResponseError
	if errors.As(err, &malformedErr) {
		return "The receiver sent an unexpected reply. Its firmware may differ from the supported models; rerun with --verbose for details"
	}

	// Network
	if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
		return "The receiver did not answer in time. Check that it is on the network or raise device.timeout"
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.EHOSTUNREACH) ||
		strings.Contains(strings.ToLower(err.Error()), "connection refused") {
		return "Check device.host and that the receiver is powered and on the network"
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return "The device host name did not resolve. Use the receiver's IP address"
	}

	return ""
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// Format returns a formatted error message with suggestion if available.
func Format(err error) string {
	if err == nil {
		return ""
	}

	suggestion := GetSuggestion(err)
	if suggestion != "" {
		return fmt.Sprintf("Error: %s\n\nSuggestion: %s", err.Error(), suggestion)
	}

	return fmt.Sprintf("Error: %s", err.Error())
}

// PartialResult represents a result that may have partial failures.
type PartialResult[T any] struct {
	Data   T
	Errors []error
}

// HasErrors returns true if there were any errors.
func (p *PartialResult[T]) HasErrors() bool {
	return len(p.Errors) > 0
}

// AddError adds an error to the partial result.
func (p *PartialResult[T]) AddError(err error) {
	if err != nil {
		p.Errors = append(p.Errors, err)
	}
}

// ErrorSummary returns a summary of all errors.
func (p *PartialResult[T]) ErrorSummary() string {
	if len(p.Errors) == 0 {
		return ""
	}
	if len(p.Errors) == 1 {
		return p.Errors[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d errors occurred:\n", len(p.Errors))
	for i, err := range p.Errors {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}
