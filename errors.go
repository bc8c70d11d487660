/*
 * errors.go, part of sslayout.
 *
 * Copyright 2024 Raul Mera <rauldotmeraatusachdotcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package sslayout

import "fmt"

// Errorer is the interface implemented by all the errors returned by the packages
// of this module.
type Errorer interface {
	Error() string
	Decorate(string) []string //Decorate adds a string to the error's decoration slice and returns the slice.
	Critical() bool
}

// Error is the error type for the sslayout package.
type Error struct {
	message  string
	cause    error //can be nil
	deco     []string
	critical bool
}

// Error returns a string with an error message.
func (err Error) Error() string {
	if err.cause != nil {
		return fmt.Sprintf("%s: %s", err.message, err.cause.Error())
	}
	return err.message
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

// Critical return whether the error is critical or it can be ignored
func (err Error) Critical() bool { return err.critical }

// Unwrap returns the error that caused err, if any.
func (err Error) Unwrap() error { return err.cause }

// errDecorate adds caller to the decoration of err, if err is an Error of this package.
// Other errors are returned unchanged.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	err2, ok := err.(Error)
	if !ok {
		return err
	}
	err2.deco = err2.Decorate(caller)
	return err2
}

// PanicMsg is a message used for panics, even though it does satisfy the error interface.
// for errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	// ErrLength is the cause of the errors returned when the notation length does not
	// match the sum of the chain lengths.
	ErrLength = PanicMsg("sslayout: notation length does not match the chain lengths")
	// ErrChains is the cause of the errors returned for empty or non-positive chain lengths.
	ErrChains = PanicMsg("sslayout: invalid chain lengths")
	// ErrOptions is the cause of the errors returned by Options.Validate.
	ErrOptions = PanicMsg("sslayout: invalid options")
)
