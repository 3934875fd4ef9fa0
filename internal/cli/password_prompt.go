package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
)

var errPasswordMismatch = errors.New("passwords do not match")

func promptNewPassword(in *os.File, out io.Writer) (string, error) {
	fmt.Fprint(out, "New password: ")
	first, err := readPasswordNoEcho(in)
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	fmt.Fprint(out, "Repeat password: ")
	second, err := readPasswordNoEcho(in)
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	if string(first) != string(second) {
		return "", errPasswordMismatch
	}
	return string(first), nil
}
