// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// prompter reads answers line by line and re-asks until an answer is valid.
// Every method returns io.EOF once input is exhausted.
type prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
	fd      int // terminal file descriptor for hidden input, -1 when in is not a terminal
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	fd := -1
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd = int(f.Fd())
	}
	return &prompter{scanner: bufio.NewScanner(in), out: out, fd: fd}
}

// password reads a non-empty secret. On a terminal the input is not echoed;
// piped input is read as a plain line.
func (p *prompter) password(label string) (string, error) {
	if p.fd < 0 {
		return p.required(label)
	}
	for {
		fmt.Fprintf(p.out, "%s: ", label)
		b, err := term.ReadPassword(p.fd)
		fmt.Fprintln(p.out)
		if err != nil {
			return "", err
		}
		if s := strings.TrimSpace(string(b)); s != "" {
			return s, nil
		}
		fmt.Fprintln(p.out, "  Este campo es obligatorio.")
	}
}

func (p *prompter) line(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.scanner.Text()), nil
}

// required re-asks until the answer is non-empty
func (p *prompter) required(label string) (string, error) {
	for {
		s, err := p.line(label)
		if err != nil || s != "" {
			return s, err
		}
		fmt.Fprintln(p.out, "  Este campo es obligatorio.")
	}
}

// withDefault returns def for an empty answer
func (p *prompter) withDefault(label, def string) (string, error) {
	s, err := p.line(fmt.Sprintf("%s [%s]", label, def))
	if err != nil {
		return "", err
	}
	if s == "" {
		return def, nil
	}
	return s, nil
}

// number re-asks until the answer is an integer in [lo, hi]
func (p *prompter) number(label string, lo, hi int) (int, error) {
	for {
		s, err := p.line(fmt.Sprintf("%s (%d-%d)", label, lo, hi))
		if err != nil {
			return 0, err
		}
		n, convErr := strconv.Atoi(s)
		if convErr == nil && n >= lo && n <= hi {
			return n, nil
		}
		fmt.Fprintf(p.out, "  Introduce un número entre %d y %d.\n", lo, hi)
	}
}

// choice lists options numbered from 1 and returns the zero-based index picked
func (p *prompter) choice(label string, options []string) (int, error) {
	fmt.Fprintln(p.out, label)
	for i, o := range options {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, o)
	}
	n, err := p.number("Opción", 1, len(options))
	if err != nil {
		return 0, err
	}
	return n - 1, nil
}

func (p *prompter) confirm(label string) (bool, error) {
	for {
		s, err := p.line(label + " (s/n)")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(s) {
		case "s", "si", "sí", "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
	}
}
