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

package xy

import "fmt"

// Error is the error type for the xy package.
type Error struct {
	message  string
	filename string //the file in which the error happened, if any
	deco     []string
	critical bool
}

// Error returns a string with an error message.
func (err Error) Error() string {
	if err.filename == "" {
		return err.message
	}
	return fmt.Sprintf("%s (file: %s)", err.message, err.filename)
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

// FileName returns the name of the file involved in the error, if any.
func (err Error) FileName() string { return err.filename }

// Critical returns whether the error is critical or it can be ignored.
func (err Error) Critical() bool { return err.critical }

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

// fileErr sets the file name of err, if it is an Error without one.
func fileErr(err error, name string) error {
	e, ok := err.(Error)
	if !ok || e.filename != "" {
		return err
	}
	e.filename = name
	return e
}
