package services

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"equiptrack/inventory/schema"
)

type codedError struct {
	err  error
	code int
}

func (e *codedError) Error() string {
	return e.err.Error()
}

func (e *codedError) Unwrap() error {
	return e.err
}

func CodedError(err error, code int) error {
	return &codedError{err: err, code: code}
}

func GetResponseCode(err error) int {
	var cerr *codedError
	if errors.As(err, &cerr) {
		return cerr.code
	}
	slog.Error("non coded error passed to GetResponseCode", "error", err)
	return http.StatusInternalServerError
}

// validateEquipmentInput applies the form-level rules: name is required, a
// status (if given) must be a known value, and a networked record must name
// its associated computer. Checked at input time, never against stored state.
func validateEquipmentInput(eq schema.Equipment) error {
	if eq.Name == "" {
		return CodedError(fmt.Errorf("equipment name must be specified"), http.StatusBadRequest)
	}
	if eq.Status != "" && !schema.ValidStatus(eq.Status) {
		return CodedError(fmt.Errorf("invalid equipment status %q", eq.Status), http.StatusBadRequest)
	}
	if eq.OnNetwork && eq.ComputerAssociated == "" {
		return CodedError(fmt.Errorf("equipment on the network must specify an associated computer"), http.StatusBadRequest)
	}
	return nil
}
